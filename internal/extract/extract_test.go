package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/resume"
	"resume-tailor/internal/resume/render"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Staff </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Go, Postgres</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func sampleDocx(t *testing.T) []byte {
	return buildDocx(t, map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	})
}

func TestNormalizeDocx(t *testing.T) {
	text, err := Normalize(context.Background(), sampleDocx(t), "resume.docx")
	if err != nil {
		t.Fatalf("Normalize docx: %v", err)
	}
	want := "Jane Doe\nStaff Engineer\nGo, Postgres"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestNormalizePDF(t *testing.T) {
	r := render.New()
	r.Compress = false
	data, err := r.Render(resume.Resume{
		Name:    "Jane Doe",
		Title:   "Staff Engineer",
		Summary: "Builds reliable backend systems.",
	})
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}

	text, err := Normalize(context.Background(), data, "application/pdf")
	if err != nil {
		t.Fatalf("Normalize pdf: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Fatalf("expected name in extracted text, got %q", text)
	}
}

func TestNormalizeText(t *testing.T) {
	text, err := Normalize(context.Background(), []byte("plain resume\xff"), ".txt")
	if err != nil {
		t.Fatalf("Normalize txt: %v", err)
	}
	if !strings.HasPrefix(text, "plain resume") {
		t.Fatalf("text = %q", text)
	}
}

func TestNormalizeCorrupt(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
	}{
		{name: "pdf garbage", data: []byte("definitely not a pdf"), declared: "cv.pdf"},
		{name: "pdf empty", data: nil, declared: "cv.pdf"},
		{name: "docx garbage", data: []byte("PK\x03\x04broken"), declared: "cv.docx"},
		{name: "docx without document.xml", data: buildDocx(t, map[string]string{"notes.txt": "hello"}), declared: "cv.docx"},
		{name: "txt blank", data: []byte("   \n\t"), declared: "cv.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Normalize(context.Background(), tt.data, tt.declared)
			if !errors.Is(err, apperr.ErrExtraction) {
				t.Fatalf("expected extraction error, got text=%q err=%v", text, err)
			}
			if text != "" {
				t.Fatalf("expected no text on failure, got %q", text)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		declared string
		want     Format
		wantErr  bool
	}{
		{declared: "Resume.DOCX", want: FormatDOCX},
		{declared: "resume.pdf", want: FormatPDF},
		{declared: "txt", want: FormatText},
		{declared: ".txt", want: FormatText},
		{declared: "application/pdf", want: FormatPDF},
		{declared: "text/plain; charset=utf-8", want: FormatText},
		{declared: mimeDOCX, want: FormatDOCX},
		{declared: "resume.odt", wantErr: true},
		{declared: "application/zip", wantErr: true},
		{declared: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got, err := DetectFormat(tt.declared)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUnsupportedFormat) {
					t.Fatalf("expected unsupported format error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat(%q): %v", tt.declared, err)
			}
			if got != tt.want {
				t.Fatalf("DetectFormat(%q) = %q, want %q", tt.declared, got, tt.want)
			}
		})
	}
}
