package resume

import (
	"fmt"
	"strings"
)

// PlainText renders a Resume as readable text for use as prompt context.
func PlainText(r Resume) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "\nSummary:\n%s\n", r.Summary)

	b.WriteString("\nSkills:\n")
	for _, s := range r.Skills {
		fmt.Fprintf(&b, "  %s: %s\n", s.Category, s.Items)
	}

	b.WriteString("\nExperience:\n")
	for _, job := range r.Experience {
		fmt.Fprintf(&b, "\n  %s at %s (%s)\n", job.JobTitle, job.Company, job.Dates)
		for _, bullet := range job.Bullets {
			fmt.Fprintf(&b, "    - %s\n", bullet)
		}
	}

	if !r.Education.IsZero() {
		fmt.Fprintf(&b, "\nEducation: %s - %s\n", r.Education.Degree, r.Education.School)
	}
	return strings.TrimRight(b.String(), "\n")
}
