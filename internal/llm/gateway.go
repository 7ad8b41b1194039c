package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
)

const defaultTimeout = 120 * time.Second

// Gateway routes a prompt to one of the registered backends. Each call is a single
// attempt bounded by the gateway timeout.
type Gateway struct {
	factories map[Provider]Factory
	timeout   time.Duration
}

// NewGateway registers backend factories. A non-positive timeout selects the default.
func NewGateway(timeout time.Duration, factories map[Provider]Factory) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	registered := make(map[Provider]Factory, len(factories))
	for p, f := range factories {
		if f != nil {
			registered[p] = f
		}
	}
	return &Gateway{factories: registered, timeout: timeout}
}

// Generate sends prompt to provider using credential and returns the raw text reply.
func (g *Gateway) Generate(ctx context.Context, provider Provider, credential, prompt string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", apperr.Validation("API key is required.")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", apperr.Validation("prompt is required")
	}
	factory, ok := g.factories[provider]
	if !ok {
		return "", apperr.Validation(fmt.Sprintf("provider %q is not available", provider))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	metrics.IncGenerateStarted()
	start := time.Now()
	text, err := call(ctx, factory, credential, prompt)
	latency := time.Since(start)
	metrics.ObserveGenerateDurationMs(float64(latency.Milliseconds()))
	if err != nil {
		metrics.IncGenerateFailed()
		err = classify(ctx, provider, err)
		telemetry.Error("llm.generate.failed", map[string]any{
			"provider":   string(provider),
			"kind":       string(apperr.KindOf(err)),
			"latency_ms": latency.Milliseconds(),
			"error":      err.Error(),
		})
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		metrics.IncGenerateFailed()
		return "", apperr.Provider(fmt.Sprintf("%s returned an empty response", provider), nil)
	}

	metrics.IncGenerateCompleted()
	telemetry.Info("llm.generate", map[string]any{
		"provider":     string(provider),
		"latency_ms":   latency.Milliseconds(),
		"prompt_chars": len(prompt),
		"reply_chars":  len(text),
	})
	return text, nil
}

// call builds the backend for credential and sends prompt once.
func call(ctx context.Context, factory Factory, credential, prompt string) (string, error) {
	gen, err := factory(ctx, credential)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, prompt)
}

// classify makes sure every failure leaving the gateway carries a kind.
// An exceeded gateway deadline wins over whatever the backend reported.
func classify(ctx context.Context, provider Provider, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || apperr.IsTimeout(err) {
		return apperr.Timeout(fmt.Sprintf("%s request timed out; try again", provider), err)
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Provider(fmt.Sprintf("%s request failed", provider), err)
}
