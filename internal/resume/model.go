package resume

// Resume is the structured document the generation backend returns.
// Every field is optional; consumers must tolerate absent or empty values.
type Resume struct {
	Name       string          `json:"name"`
	Title      string          `json:"title"`
	Contact    string          `json:"contact"`
	Summary    string          `json:"summary"`
	Skills     []SkillCategory `json:"skills"`
	Experience []Experience    `json:"experience"`
	Education  *Education      `json:"education,omitempty"`
}

// SkillCategory is one labeled line of the skills section.
type SkillCategory struct {
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Experience is a single role.
type Experience struct {
	JobTitle string   `json:"job_title"`
	Company  string   `json:"company"`
	Context  string   `json:"context"`
	Dates    string   `json:"dates"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

// Education is the optional education block.
type Education struct {
	Degree   string `json:"degree"`
	School   string `json:"school"`
	Dates    string `json:"dates"`
	Location string `json:"location"`
}

// IsZero reports whether the education block carries no text at all.
func (e *Education) IsZero() bool {
	return e == nil || (e.Degree == "" && e.School == "" && e.Dates == "" && e.Location == "")
}

// Answer is one generated response to an application question.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
