package tailoring

import (
	"encoding/json"
	"strings"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/jobmeta"
	"resume-tailor/internal/resume"
)

// TailorResponse is returned by POST /tailor.
type TailorResponse struct {
	Success        bool              `json:"success"`
	Data           resume.Resume     `json:"data"`
	Job            *jobmeta.Metadata `json:"job,omitempty"`
	TrackerEntryID string            `json:"trackerEntryId,omitempty"`
}

// AnswersResponse is returned by POST /answer-questions.
type AnswersResponse struct {
	Success bool            `json:"success"`
	Answers []resume.Answer `json:"answers"`
}

// ScrapeResponse is returned by POST /scrape-jd.
type ScrapeResponse struct {
	Success  bool             `json:"success"`
	Text     string           `json:"text"`
	Title    string           `json:"title"`
	Metadata jobmeta.Metadata `json:"metadata"`
}

type answersRequest struct {
	Provider  string          `json:"provider"`
	APIKey    string          `json:"api_key"`
	Questions json.RawMessage `json:"questions"`
	JD        string          `json:"jd"`
	Resume    resume.Resume   `json:"resume"`
}

type scrapeRequest struct {
	URL        string `json:"url"`
	ApifyToken string `json:"apify_token"`
}

// questionsText accepts either one pasted block or a list of questions.
func questionsText(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", apperr.Validation("questions must be a string or a list of strings")
	}
	lines := make([]string, 0, len(list))
	for _, q := range list {
		if q = strings.TrimSpace(q); q != "" {
			lines = append(lines, q)
		}
	}
	return strings.Join(lines, "\n"), nil
}
