package llm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
)

// metricLine returns the sample line for name from the metrics page.
func metricLine(name string) string {
	for _, line := range strings.Split(metrics.Render(), "\n") {
		if strings.HasPrefix(line, name+" ") {
			return line
		}
	}
	return ""
}

func staticFactory(reply string, err error, calls *int) Factory {
	return func(ctx context.Context, credential string) (Generator, error) {
		return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			if calls != nil {
				*calls++
			}
			return reply, err
		}), nil
	}
}

func TestParseProvider(t *testing.T) {
	cases := map[string]Provider{
		"":          ProviderAnthropic,
		"anthropic": ProviderAnthropic,
		" Claude ":  ProviderAnthropic,
		"GEMINI":    ProviderGemini,
		"google":    ProviderGemini,
	}
	for in, want := range cases {
		got, err := ParseProvider(in)
		if err != nil {
			t.Fatalf("ParseProvider(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseProvider(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseProvider("openai"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGatewayRoutesToProvider(t *testing.T) {
	var aCalls, gCalls int
	gw := NewGateway(time.Second, map[Provider]Factory{
		ProviderAnthropic: staticFactory("from anthropic", nil, &aCalls),
		ProviderGemini:    staticFactory("from gemini", nil, &gCalls),
	})

	text, err := gw.Generate(context.Background(), ProviderGemini, "key", "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "from gemini" || gCalls != 1 || aCalls != 0 {
		t.Fatalf("unexpected routing: text=%q anthropic=%d gemini=%d", text, aCalls, gCalls)
	}
}

func TestGatewayRequiresCredential(t *testing.T) {
	var calls int
	gw := NewGateway(time.Second, map[Provider]Factory{ProviderAnthropic: staticFactory("x", nil, &calls)})
	_, err := gw.Generate(context.Background(), ProviderAnthropic, "  ", "hello")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("backend should not be called without a credential")
	}
}

func TestGatewayUnregisteredProvider(t *testing.T) {
	gw := NewGateway(time.Second, nil)
	_, err := gw.Generate(context.Background(), ProviderGemini, "key", "hello")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGatewayKeepsAuthKind(t *testing.T) {
	var calls int
	gw := NewGateway(time.Second, map[Provider]Factory{
		ProviderAnthropic: staticFactory("", apperr.Auth("invalid API key", nil), &calls),
	})
	_, err := gw.Generate(context.Background(), ProviderAnthropic, "bad", "hello")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestGatewayWrapsUnknownErrors(t *testing.T) {
	gw := NewGateway(time.Second, map[Provider]Factory{
		ProviderAnthropic: staticFactory("", errors.New("boom"), nil),
	})
	_, err := gw.Generate(context.Background(), ProviderAnthropic, "key", "hello")
	if !errors.Is(err, apperr.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestGatewayFactoryFailureIsLoggedAndTimed(t *testing.T) {
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	gw := NewGateway(time.Second, map[Provider]Factory{
		ProviderGemini: func(ctx context.Context, credential string) (Generator, error) {
			return nil, apperr.Auth("invalid API key", nil)
		},
	})
	durationBefore := metricLine("llm_generate_duration_ms_count")
	failedBefore := metricLine("llm_generate_failed_total")

	_, err := gw.Generate(context.Background(), ProviderGemini, "bad", "hello")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if !strings.Contains(buf.String(), "llm.generate.failed") {
		t.Fatalf("expected failure log line, got %q", buf.String())
	}
	if metricLine("llm_generate_duration_ms_count") == durationBefore {
		t.Fatalf("expected duration to be observed")
	}
	if metricLine("llm_generate_failed_total") == failedBefore {
		t.Fatalf("expected failure to be counted")
	}
}

func TestGatewayEmptyReply(t *testing.T) {
	gw := NewGateway(time.Second, map[Provider]Factory{
		ProviderAnthropic: staticFactory("   ", nil, nil),
	})
	_, err := gw.Generate(context.Background(), ProviderAnthropic, "key", "hello")
	if !errors.Is(err, apperr.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestGatewayTimeout(t *testing.T) {
	slow := func(ctx context.Context, credential string) (Generator, error) {
		return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}), nil
	}
	gw := NewGateway(20*time.Millisecond, map[Provider]Factory{ProviderGemini: slow})
	_, err := gw.Generate(context.Background(), ProviderGemini, "key", "hello")
	if !errors.Is(err, apperr.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestTailorPromptLayout(t *testing.T) {
	prompt := TailorPrompt("", "Jane Doe\nGo engineer", "Senior Go Engineer at Acme")
	for _, want := range []string{
		DefaultTailorInstructions(),
		"=== CANDIDATE RESUME ===\nJane Doe\nGo engineer",
		"=== JOB DESCRIPTION ===\nSenior Go Engineer at Acme",
		`"job_title"`,
		"Return ONLY the JSON object",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	custom := TailorPrompt("Be brief.", "r", "jd")
	if !strings.HasPrefix(custom, "Be brief.") {
		t.Fatalf("custom instructions should lead the prompt")
	}
	if strings.Contains(custom, DefaultTailorInstructions()) {
		t.Fatalf("custom instructions should replace the default")
	}
}
