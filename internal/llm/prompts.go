package llm

import (
	_ "embed"
	"fmt"
	"strings"

	"resume-tailor/internal/resume"
)

var (
	//go:embed prompts/tailor_default.txt
	defaultTailorInstructions string
	//go:embed prompts/answers_system.txt
	answersSystemPrompt string
)

// DefaultTailorInstructions returns the built-in tailoring instructions used when the
// caller supplies none.
func DefaultTailorInstructions() string {
	return strings.TrimSpace(defaultTailorInstructions)
}

// TailorPrompt combines the tailoring instructions, the resume and the job description
// into a single prompt that demands the resume JSON contract and nothing else.
func TailorPrompt(instructions, resumeText, jobDescription string) string {
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		instructions = DefaultTailorInstructions()
	}
	return fmt.Sprintf(`%s

Here are the two inputs:

=== CANDIDATE RESUME ===
%s

=== JOB DESCRIPTION ===
%s

=== INSTRUCTIONS ===
Apply every phase from your instructions to these inputs.

IMPORTANT: Return ONLY the tailored resume as a JSON object with this exact structure (no change log, no interview prep, just the resume):

%s

Return ONLY the JSON object, no markdown code fences, no extra text. Just pure JSON.
`, instructions, strings.TrimSpace(resumeText), strings.TrimSpace(jobDescription), resume.SchemaExample)
}

// AnswersPrompt asks for a JSON array of {question, answer} objects grounded in the
// tailored resume and job description.
func AnswersPrompt(tailored resume.Resume, jobDescription, questions string) string {
	return fmt.Sprintf(`%s

Here is the candidate's resume:

%s

Here is the job description they are applying to:

%s

Please answer each of the following application questions. Format your response as a JSON array where each
element has "question" (the original question) and "answer" (your crafted response).

Questions:
%s

Return ONLY a JSON array, no markdown code fences, no extra text. Example format:
[{"question": "Why do you want this role?", "answer": "Your answer here..."}]
`, strings.TrimSpace(answersSystemPrompt), resume.PlainText(tailored), strings.TrimSpace(jobDescription), strings.TrimSpace(questions))
}
