package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-tailor/internal/resume"
	"resume-tailor/internal/shared/util"
)

const fontFamily = "Helvetica"

type rgb struct{ r, g, b int }

var (
	colorAccent = rgb{44, 95, 138}
	colorDark   = rgb{26, 26, 26}
	colorBody   = rgb{51, 51, 51}
	colorMuted  = rgb{102, 102, 102}
)

// Renderer lays out a Resume on A4 pages using a single core font.
type Renderer struct {
	// Compress deflates page streams. Disabled in tests to inspect output.
	Compress bool
	// Now stamps the document creation date.
	Now func() time.Time
}

// New returns a Renderer with compression enabled.
func New() *Renderer {
	return &Renderer{Compress: true, Now: time.Now}
}

// Render produces PDF bytes for r. Sections without content are omitted entirely,
// header included.
func (rd *Renderer) Render(r resume.Resume) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(rd.Compress)
	if rd.Now != nil {
		pdf.SetCreationDate(rd.Now())
	}
	pdf.SetMargins(18, 15, 18)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(ToASCII(r.Name), false)
	pdf.AddPage()

	l := &layout{pdf: pdf}
	l.header(r)
	l.summary(r.Summary)
	l.skills(r.Skills)
	l.experience(r.Experience)
	l.education(r.Education)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from the candidate name.
func Filename(r resume.Resume) string {
	name := strings.Join(strings.Fields(ToASCII(r.Name)), "_")
	if name == "" {
		return "resume.pdf"
	}
	clean, err := util.SanitizeFileName(name)
	if err != nil {
		return "resume.pdf"
	}
	return clean + ".pdf"
}

type layout struct {
	pdf *fpdf.Fpdf
}

func (l *layout) font(style string, size float64, c rgb) {
	l.pdf.SetFont(fontFamily, style, size)
	l.pdf.SetTextColor(c.r, c.g, c.b)
}

func (l *layout) contentWidth() float64 {
	w, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return w - left - right
}

func (l *layout) centered(text string, style string, size, height float64, c rgb) {
	text = strings.TrimSpace(ToASCII(text))
	if text == "" {
		return
	}
	l.font(style, size, c)
	l.pdf.CellFormat(0, height, text, "", 1, "C", false, 0, "")
}

func (l *layout) header(r resume.Resume) {
	l.centered(r.Name, "B", 20, 10, colorDark)
	l.centered(r.Title, "", 13, 7, colorAccent)
	l.centered(r.Contact, "", 9.5, 6, colorMuted)
	l.pdf.Ln(4)
}

func (l *layout) sectionHeader(title string) {
	l.font("B", 12, colorAccent)
	l.pdf.CellFormat(0, 8, strings.ToUpper(title), "", 1, "L", false, 0, "")
	left, _, right, _ := l.pdf.GetMargins()
	w, _ := l.pdf.GetPageSize()
	y := l.pdf.GetY()
	l.pdf.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
	l.pdf.Line(left, y, w-right, y)
	l.pdf.Ln(3)
}

func (l *layout) summary(text string) {
	text = strings.TrimSpace(ToASCII(text))
	if text == "" {
		return
	}
	l.sectionHeader("Summary")
	l.font("", 10, colorBody)
	l.pdf.MultiCell(0, 5, text, "", "L", false)
	l.pdf.Ln(3)
}

func (l *layout) skills(skills []resume.SkillCategory) {
	rows := make([]resume.SkillCategory, 0, len(skills))
	for _, s := range skills {
		cat := strings.TrimSpace(ToASCII(s.Category))
		items := strings.TrimSpace(ToASCII(s.Items))
		if cat == "" && items == "" {
			continue
		}
		rows = append(rows, resume.SkillCategory{Category: cat, Items: items})
	}
	if len(rows) == 0 {
		return
	}
	l.sectionHeader("Skills")
	left, _, _, _ := l.pdf.GetMargins()
	for _, s := range rows {
		l.pdf.SetX(left)
		if s.Category != "" {
			label := s.Category + ": "
			l.font("B", 9.5, colorBody)
			l.pdf.CellFormat(l.pdf.GetStringWidth(label)+1, 5, label, "", 0, "L", false, 0, "")
		}
		l.font("", 9.5, colorBody)
		remaining := left + l.contentWidth() - l.pdf.GetX()
		l.pdf.MultiCell(remaining, 4.5, s.Items, "", "L", false)
		l.pdf.Ln(1)
	}
	l.pdf.Ln(2)
}

func (l *layout) experience(all []resume.Experience) {
	jobs := make([]resume.Experience, 0, len(all))
	for _, job := range all {
		if hasContent(job) {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return
	}
	l.sectionHeader("Experience")
	left, _, _, _ := l.pdf.GetMargins()
	for _, job := range jobs {
		if title := strings.TrimSpace(ToASCII(job.JobTitle)); title != "" {
			l.font("B", 11, colorDark)
			l.pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
		}

		org := joinNonEmpty(" -- ", ToASCII(job.Company), ToASCII(job.Context))
		meta := joinNonEmpty("  |  ", ToASCII(job.Dates), ToASCII(job.Location))
		if org != "" || meta != "" {
			if org != "" {
				l.font("", 9.5, colorAccent)
				l.pdf.CellFormat(l.pdf.GetStringWidth(org)+2, 5, org, "", 0, "L", false, 0, "")
			}
			if meta != "" {
				if org != "" {
					meta = "  |  " + meta
				}
				l.font("", 9.5, colorMuted)
				l.pdf.CellFormat(0, 5, meta, "", 0, "L", false, 0, "")
			}
			l.pdf.Ln(5)
		}
		l.pdf.Ln(1)

		for _, b := range job.Bullets {
			b = strings.TrimSpace(ToASCII(b))
			if b == "" {
				continue
			}
			l.font("", 9.5, colorBody)
			l.pdf.SetX(left + 8)
			l.pdf.MultiCell(l.contentWidth()-8, 4.5, "- "+b, "", "L", false)
			l.pdf.Ln(0.5)
		}
		l.pdf.Ln(3)
	}
}

func hasContent(job resume.Experience) bool {
	for _, s := range []string{job.JobTitle, job.Company, job.Context, job.Dates, job.Location} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	for _, b := range job.Bullets {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

func (l *layout) education(edu *resume.Education) {
	if edu.IsZero() {
		return
	}
	l.sectionHeader("Education")
	if degree := strings.TrimSpace(ToASCII(edu.Degree)); degree != "" {
		l.font("B", 10.5, colorBody)
		l.pdf.CellFormat(0, 6, degree, "", 1, "L", false, 0, "")
	}
	if meta := joinNonEmpty("  |  ", ToASCII(edu.School), ToASCII(edu.Dates), ToASCII(edu.Location)); meta != "" {
		l.font("", 10, colorMuted)
		l.pdf.CellFormat(0, 5, meta, "", 1, "L", false, 0, "")
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
