package resume

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"resume-tailor/internal/apperr"
)

const sampleJSON = `{
  "name": "Jane Doe",
  "title": "Staff Engineer",
  "contact": "Austin, TX | jane@example.com",
  "summary": "Builds reliable systems.",
  "skills": [{"category": "Languages", "items": "Go, SQL"}],
  "experience": [
    {
      "job_title": "Senior Engineer",
      "company": "Acme Corp",
      "context": "Payments",
      "dates": "01/2020 - Present",
      "location": "Remote",
      "bullets": ["Cut p99 latency by 40%", "Led migration to Postgres"]
    }
  ],
  "education": {"degree": "BS Computer Science", "school": "UT Austin", "dates": "2012 - 2016", "location": "Austin, TX"}
}`

func TestParseFencedMatchesUnfenced(t *testing.T) {
	plain, err := Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse plain: %v", err)
	}

	variants := map[string]string{
		"json fence":       "```json\n" + sampleJSON + "\n```",
		"bare fence":       "```\n" + sampleJSON + "\n```",
		"padded":           "  \n```json\n" + sampleJSON + "\n```  \n",
		"inline fence":     "```json " + sampleJSON + "```",
		"leading only":     "```json\n" + sampleJSON,
		"uppercase marker": "```JSON\n" + sampleJSON + "\n```",
	}
	for name, raw := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got, plain) {
				t.Fatalf("fenced decode differs:\n got %+v\nwant %+v", got, plain)
			}
		})
	}

	if plain.Experience[0].Company != "Acme Corp" || len(plain.Experience[0].Bullets) != 2 {
		t.Fatalf("unexpected experience: %+v", plain.Experience)
	}
	if plain.Education == nil || plain.Education.School != "UT Austin" {
		t.Fatalf("unexpected education: %+v", plain.Education)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "prose", raw: "Sure! Here is your tailored resume."},
		{name: "truncated", raw: `{"name": "Jane", "skills": [`},
		{name: "array root", raw: `[{"name": "Jane"}]`},
		{name: "wrong type", raw: `{"name": "Jane", "skills": "Go, SQL"}`},
		{name: "bullet not string", raw: `{"experience": [{"bullets": [1, 2]}]}`},
		{name: "empty", raw: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if !errors.Is(err, apperr.ErrMalformedResponse) {
				t.Fatalf("expected malformed response error, got %v", err)
			}
			if !reflect.DeepEqual(got, Resume{}) {
				t.Fatalf("expected zero Resume on failure, got %+v", got)
			}
			var e *apperr.Error
			if !errors.As(err, &e) || e.Raw != tt.raw {
				t.Fatalf("expected raw text preserved, got %+v", e)
			}
		})
	}
}

func TestParseToleratesMissingAndNullFields(t *testing.T) {
	got, err := Parse(`{"name": "Jane", "summary": null, "experience": null, "education": null}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Name != "Jane" || got.Summary != "" || got.Experience != nil || got.Education != nil {
		t.Fatalf("unexpected resume: %+v", got)
	}
}

func TestParseAnswers(t *testing.T) {
	raw := "```json\n[{\"question\": \"Why us?\", \"answer\": \"Because.\"}]\n```"
	got, err := ParseAnswers(raw)
	if err != nil {
		t.Fatalf("ParseAnswers: %v", err)
	}
	want := []Answer{{Question: "Why us?", Answer: "Because."}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if _, err := ParseAnswers(`{"question": "Why us?"}`); !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Fatalf("expected malformed response for object root, got %v", err)
	}
}

func TestPlainText(t *testing.T) {
	r, err := Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	text := PlainText(r)
	for _, want := range []string{
		"Name: Jane Doe",
		"  Languages: Go, SQL",
		"  Senior Engineer at Acme Corp (01/2020 - Present)",
		"    - Led migration to Postgres",
		"Education: BS Computer Science - UT Austin",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("PlainText missing %q:\n%s", want, text)
		}
	}

	if strings.Contains(PlainText(Resume{Name: "X"}), "Education:") {
		t.Fatalf("education line should be omitted when absent")
	}
}
