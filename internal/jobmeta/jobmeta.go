// Package jobmeta guesses the hiring platform, company and position of a job posting
// from its URL and page title. The rules are best-effort heuristics; nothing downstream
// relies on them for correctness.
package jobmeta

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlatformOther is reported when no rule recognizes the URL's domain.
const PlatformOther = "Other"

// Metadata is the extracted job posting summary.
type Metadata struct {
	Platform string `json:"platform"`
	Company  string `json:"company"`
	Position string `json:"position"`
	URL      string `json:"url"`
}

type parseFunc func(title string) (company, position string)

// rule recognizes one platform by a substring of the URL host.
type rule struct {
	domains  []string
	platform string
	parse    parseFunc
}

var (
	dashSplit = regexp.MustCompile(`\s*[-–—]\s*`)
	pipeSplit = regexp.MustCompile(`\s*\|\s*`)

	// "Job Title at Company | LinkedIn"
	linkedInTitle = regexp.MustCompile(`^(.+?)\s+at\s+(.+?)(?:\s*\||\s*[-–]|\s*$)`)
	// "Company hiring Job Title in Location | Glassdoor"
	glassdoorTitle = regexp.MustCompile(`^(.+?)\s+hiring\s+(.+?)(?:\s+in\s+|\s*\||\s*$)`)
)

// rules are evaluated in order; the first domain match wins.
var rules = []rule{
	{domains: []string{"linkedin.com"}, platform: "LinkedIn", parse: parseLinkedIn},
	{domains: []string{"indeed.com"}, platform: "Indeed", parse: parseIndeed},
	{domains: []string{"glassdoor.com"}, platform: "Glassdoor", parse: parseGlassdoor},
	{domains: []string{"welcometothejungle.com"}, platform: "Welcome to the Jungle", parse: parseCompanyFirst},
	{domains: []string{"ziprecruiter.com"}, platform: "ZipRecruiter"},
	{domains: []string{"monster.com"}, platform: "Monster"},
	{domains: []string{"dice.com"}, platform: "Dice"},
	{domains: []string{"lever.co"}, platform: "Lever"},
	{domains: []string{"greenhouse.io"}, platform: "Greenhouse"},
	{domains: []string{"myworkdayjobs.com", "workday.com"}, platform: "Workday"},
	{domains: []string{"smartrecruiters.com"}, platform: "SmartRecruiters"},
	{domains: []string{"angel.co"}, platform: "AngelList"},
	{domains: []string{"wellfound.com"}, platform: "Wellfound"},
	{domains: []string{"builtin.com"}, platform: "Built In"},
	{domains: []string{"simplyhired.com"}, platform: "SimplyHired"},
	{domains: []string{"careerbuilder.com"}, platform: "CareerBuilder"},
}

// brandNames are title fragments that name a job board rather than an employer.
var brandNames = func() []string {
	names := []string{"linkedin", "indeed", "glassdoor", "otta", "welcome to the jungle"}
	for _, r := range rules {
		names = append(names, strings.ToLower(r.platform))
	}
	return names
}()

// Extract derives metadata from raw page HTML or pasted posting text.
// HTML input is searched for og:title and then <title>; plain text uses its first
// non-empty line as the title.
func Extract(rawHTMLOrText, sourceURL string) Metadata {
	return FromTitle(sourceURL, titleOf(rawHTMLOrText))
}

// FromTitle derives metadata from an already known page title.
func FromTitle(sourceURL, title string) Metadata {
	meta := Metadata{Platform: PlatformOther, URL: sourceURL}
	r, ok := match(sourceURL)
	if !ok {
		return meta
	}
	meta.Platform = r.platform

	title = strings.TrimSpace(title)
	if title == "" {
		return meta
	}
	if r.parse != nil {
		meta.Company, meta.Position = r.parse(title)
	}
	if meta.Company == "" && meta.Position == "" {
		meta.Company, meta.Position = parseGeneric(title)
	}
	return meta
}

// Platform returns the platform name for a URL, or PlatformOther.
func Platform(sourceURL string) string {
	if r, ok := match(sourceURL); ok {
		return r.platform
	}
	return PlatformOther
}

func match(sourceURL string) (rule, bool) {
	host := hostOf(sourceURL)
	if host == "" {
		return rule{}, false
	}
	for _, r := range rules {
		for _, d := range r.domains {
			if strings.Contains(host, d) {
				return r, true
			}
		}
	}
	return rule{}, false
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func titleOf(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if looksLikeHTML(trimmed) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
		if err == nil {
			if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(og) != "" {
				return strings.TrimSpace(og)
			}
			if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
				return t
			}
			return firstLine(doc.Find("body").Text())
		}
	}
	return firstLine(trimmed)
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<title") || strings.Contains(lower, "<head")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

func parseLinkedIn(title string) (string, string) {
	m := linkedInTitle.FindStringSubmatch(title)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
}

func parseIndeed(title string) (string, string) {
	main := pipeSplit.Split(title, 2)[0]
	parts := dashSplit.Split(main, -1)
	if len(parts) < 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
}

func parseGlassdoor(title string) (string, string) {
	m := glassdoorTitle.FindStringSubmatch(title)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// parseCompanyFirst handles "Company - Role | Board".
func parseCompanyFirst(title string) (string, string) {
	main := pipeSplit.Split(title, 2)[0]
	parts := dashSplit.Split(main, 2)
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(parts[0])
}

// parseGeneric drops job-board branding and splits the first remaining part on a dash.
func parseGeneric(title string) (string, string) {
	pipeParts := pipeSplit.Split(title, -1)
	content := make([]string, 0, len(pipeParts))
	for _, p := range pipeParts {
		if p = strings.TrimSpace(p); p != "" && !isBrand(p) {
			content = append(content, p)
		}
	}
	if len(content) == 0 {
		content = pipeParts
	}
	return parseCompanyFirst(content[0])
}

func isBrand(part string) bool {
	lower := strings.ToLower(part)
	for _, name := range brandNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}
