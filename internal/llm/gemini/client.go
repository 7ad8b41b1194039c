// Package gemini adapts the Gemini API to llm.Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/telemetry"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 8000
)

// Options configures every client built by Factory.
type Options struct {
	Model      string
	MaxTokens  int
	BaseURL    string
	HTTPClient *http.Client
}

// Client sends one-shot text prompts to generateContent.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

var _ llm.Generator = (*Client)(nil)

// NewClient builds a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperr.Validation("API key is required.")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, apperr.Provider("could not create Gemini client", err)
	}
	return &Client{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

// Factory returns an llm.Factory that builds a Client per credential.
func Factory(opts Options) llm.Factory {
	return func(ctx context.Context, credential string) (llm.Generator, error) {
		return NewClient(ctx, credential, opts)
	}
}

// Generate returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", mapError(err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", apperr.Provider("Gemini returned no text content", nil)
	}

	fields := map[string]any{
		"provider": string(llm.ProviderGemini),
		"model":    c.model,
	}
	if u := resp.UsageMetadata; u != nil {
		fields["input_tokens"] = u.PromptTokenCount
		fields["output_tokens"] = u.CandidatesTokenCount
	}
	telemetry.Info("llm.usage", fields)
	return text, nil
}

func mapError(err error) error {
	if apperr.IsTimeout(err) {
		return apperr.Timeout("Gemini request timed out", err)
	}
	if apiErr, ok := asAPIError(err); ok {
		if isAuthFailure(apiErr) {
			return apperr.Auth("Invalid Gemini API key. Check your key and try again.", err)
		}
		if apiErr.Code == http.StatusTooManyRequests {
			return apperr.RateLimited("Gemini rate limit reached; wait a moment and try again", err)
		}
		return apperr.Provider(fmt.Sprintf("Gemini API error (status %d)", apiErr.Code), err)
	}
	return apperr.Provider("Gemini request failed", err)
}

// asAPIError accepts both value and pointer forms of genai.APIError.
func asAPIError(err error) (genai.APIError, bool) {
	var val genai.APIError
	if errors.As(err, &val) {
		return val, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

// Gemini reports a bad key as 400 INVALID_ARGUMENT rather than 401.
func isAuthFailure(apiErr genai.APIError) bool {
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		msg := strings.ToLower(apiErr.Message)
		return strings.Contains(msg, "api key") || strings.Contains(msg, "api_key_invalid")
	}
	return apiErr.Status == "UNAUTHENTICATED" || apiErr.Status == "PERMISSION_DENIED"
}
