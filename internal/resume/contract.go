package resume

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-tailor/internal/apperr"
)

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z]*[ \t]*\\r?\\n?")
	trailingFence = regexp.MustCompile("\\r?\\n?[ \t]*```$")

	resumeContract  = mustSchema(resumeSchema)
	answersContract = mustSchema(answersSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("resume: invalid embedded schema: %v", err))
	}
	return schema
}

// StripFences removes a leading ``` or ```json marker and a trailing ``` marker.
// Nothing else about the text is altered.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Parse decodes a generation reply into a Resume. Failure of any kind returns a
// malformed-response error carrying the raw reply; no partial Resume is returned.
func Parse(raw string) (Resume, error) {
	body := StripFences(raw)
	if err := validate(resumeContract, body, raw); err != nil {
		return Resume{}, err
	}
	var out Resume
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return Resume{}, apperr.Malformed("failed to parse AI response as JSON", raw, err)
	}
	return out, nil
}

// ParseAnswers decodes a generation reply into a list of answers, under the same
// policy as Parse.
func ParseAnswers(raw string) ([]Answer, error) {
	body := StripFences(raw)
	if err := validate(answersContract, body, raw); err != nil {
		return nil, err
	}
	var out []Answer
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, apperr.Malformed("failed to parse AI response as JSON", raw, err)
	}
	return out, nil
}

func validate(schema *gojsonschema.Schema, body, raw string) error {
	if !json.Valid([]byte(body)) {
		return apperr.Malformed("failed to parse AI response as JSON", raw, fmt.Errorf("invalid JSON"))
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return apperr.Malformed("failed to validate AI response", raw, err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violations = append(violations, field+": "+desc.Description())
	}
	return apperr.Malformed("AI response does not match the resume schema", raw, fmt.Errorf("%s", strings.Join(violations, "; ")))
}
