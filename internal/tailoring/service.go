// Package tailoring turns a resume and a job description into a tailored resume,
// answers application questions against it, and renders it to PDF.
package tailoring

import (
	"context"
	"strings"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/jobmeta"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/resume"
	"resume-tailor/internal/resume/render"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/tracker"
)

// Generator sends a prompt to the selected provider. *llm.Gateway satisfies it.
type Generator interface {
	Generate(ctx context.Context, provider llm.Provider, credential, prompt string) (string, error)
}

// Recorder stores a tracker entry for a posting. *tracker.Service satisfies it.
type Recorder interface {
	RecordApplication(ctx context.Context, clientID string, meta jobmeta.Metadata) (tracker.Entry, error)
}

// Renderer lays out a resume as PDF. *render.Renderer satisfies it.
type Renderer interface {
	Render(r resume.Resume) ([]byte, error)
}

// Service runs the tailoring flows.
type Service struct {
	LLM      Generator
	Tracker  Recorder
	Renderer Renderer
}

// TailorInput is one tailoring request after uploads have been normalized to text.
type TailorInput struct {
	Provider       llm.Provider
	Credential     string
	JobDescription string
	ResumeText     string
	Instructions   string
	JobURL         string
	ClientID       string
}

// TailorResult is the tailored resume plus what was recorded about the posting.
type TailorResult struct {
	Resume         resume.Resume
	Job            *jobmeta.Metadata
	TrackerEntryID string
}

// Tailor asks the provider for a tailored resume and decodes it under the resume contract.
func (s *Service) Tailor(ctx context.Context, in TailorInput) (TailorResult, error) {
	if strings.TrimSpace(in.Credential) == "" {
		return TailorResult{}, apperr.Validation("API key is required.")
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return TailorResult{}, apperr.Validation("Job description is required.")
	}
	if strings.TrimSpace(in.ResumeText) == "" {
		return TailorResult{}, apperr.Validation("Please upload a resume file or paste resume text.")
	}

	prompt := llm.TailorPrompt(in.Instructions, in.ResumeText, in.JobDescription)
	raw, err := s.LLM.Generate(ctx, in.Provider, in.Credential, prompt)
	if err != nil {
		return TailorResult{}, err
	}
	tailored, err := resume.Parse(raw)
	if err != nil {
		telemetry.Warn("tailor.malformed_response", map[string]any{
			"provider":  string(in.Provider),
			"raw_chars": len(raw),
		})
		return TailorResult{}, err
	}

	result := TailorResult{Resume: tailored}
	if jobURL := strings.TrimSpace(in.JobURL); jobURL != "" {
		meta := jobmeta.Extract(in.JobDescription, jobURL)
		result.Job = &meta
		if s.Tracker != nil {
			entry, err := s.Tracker.RecordApplication(ctx, in.ClientID, meta)
			if err != nil {
				// The tailored resume is still returned; tracking is best-effort.
				telemetry.Warn("tailor.track_failed", map[string]any{
					"client_id": in.ClientID,
					"error":     err.Error(),
				})
			} else {
				result.TrackerEntryID = entry.ID
			}
		}
	}
	return result, nil
}

// AnswersInput asks for answers to application questions.
type AnswersInput struct {
	Provider       llm.Provider
	Credential     string
	Questions      string
	JobDescription string
	Resume         resume.Resume
}

// AnswerQuestions drafts first-person answers grounded in the tailored resume.
func (s *Service) AnswerQuestions(ctx context.Context, in AnswersInput) ([]resume.Answer, error) {
	if strings.TrimSpace(in.Credential) == "" {
		return nil, apperr.Validation("API key is required.")
	}
	if strings.TrimSpace(in.Questions) == "" {
		return nil, apperr.Validation("Please paste at least one question.")
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, apperr.Validation("Job description context is missing.")
	}

	raw, err := s.LLM.Generate(ctx, in.Provider, in.Credential, llm.AnswersPrompt(in.Resume, in.JobDescription, in.Questions))
	if err != nil {
		return nil, err
	}
	return resume.ParseAnswers(raw)
}

// RenderPDF returns the PDF bytes and download filename for r.
func (s *Service) RenderPDF(r resume.Resume) ([]byte, string, error) {
	pdf, err := s.Renderer.Render(r)
	if err != nil {
		return nil, "", apperr.New(apperr.KindInternal, "Could not generate the PDF.", err)
	}
	return pdf, render.Filename(r), nil
}
