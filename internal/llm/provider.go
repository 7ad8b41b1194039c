package llm

import (
	"context"
	"fmt"
	"strings"

	"resume-tailor/internal/apperr"
)

// Provider identifies a text-generation backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// DefaultProvider is used when a request does not name one.
const DefaultProvider = ProviderAnthropic

// Providers lists every supported backend.
var Providers = []Provider{ProviderAnthropic, ProviderGemini}

// ParseProvider validates a provider name. An empty name selects DefaultProvider.
func ParseProvider(raw string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultProvider, nil
	case ProviderAnthropic, "claude":
		return ProviderAnthropic, nil
	case ProviderGemini, "google":
		return ProviderGemini, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("unknown provider %q; use anthropic or gemini", raw))
	}
}

// Generator is the single capability every backend offers: prompt in, text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Factory builds a Generator bound to a caller-supplied credential.
type Factory func(ctx context.Context, credential string) (Generator, error)

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
