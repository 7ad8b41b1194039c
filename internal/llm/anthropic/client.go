// Package anthropic adapts the Anthropic Messages API to llm.Generator.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/telemetry"
)

const (
	DefaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 8000
)

// Options configures every client built by Factory.
type Options struct {
	Model      string
	MaxTokens  int
	BaseURL    string
	HTTPClient *http.Client
}

// Client sends one-shot user prompts to the Messages API.
type Client struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

var _ llm.Generator = (*Client)(nil)

// NewClient builds a client for apiKey. SDK retries are disabled so the gateway's
// single-attempt contract holds.
func NewClient(apiKey string, opts Options) (*Client, error) {
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

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Client{
		client:    sdk.NewClient(reqOpts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

// Factory returns an llm.Factory that builds a Client per credential.
func Factory(opts Options) llm.Factory {
	return func(ctx context.Context, credential string) (llm.Generator, error) {
		return NewClient(credential, opts)
	}
}

// Generate returns the concatenated text blocks of the model's reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{{
			Role: sdk.MessageParamRoleUser,
			Content: []sdk.ContentBlockParamUnion{{
				OfText: &sdk.TextBlockParam{Text: prompt},
			}},
		}},
	})
	if err != nil {
		return "", mapError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", apperr.Provider("Anthropic returned no text content", nil)
	}

	telemetry.Info("llm.usage", map[string]any{
		"provider":      string(llm.ProviderAnthropic),
		"model":         c.model,
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
		"stop_reason":   string(msg.StopReason),
	})
	return text, nil
}

func mapError(err error) error {
	if apperr.IsTimeout(err) {
		return apperr.Timeout("Anthropic request timed out", err)
	}
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Auth("Invalid Anthropic API key. Check your key and try again.", err)
		case http.StatusTooManyRequests:
			return apperr.RateLimited("Anthropic rate limit reached; wait a moment and try again", err)
		default:
			return apperr.Provider(fmt.Sprintf("Anthropic API error (status %d)", apiErr.StatusCode), err)
		}
	}
	return apperr.Provider("Anthropic request failed", err)
}
