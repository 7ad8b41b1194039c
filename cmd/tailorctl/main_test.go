package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-tailor/internal/llm"
)

func TestAPIKeyEnv(t *testing.T) {
	if got := apiKeyEnv(llm.ProviderAnthropic); got != "ANTHROPIC_API_KEY" {
		t.Fatalf("got %q", got)
	}
	if got := apiKeyEnv(llm.ProviderGemini); got != "GEMINI_API_KEY" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "resume.json")
	body := `{"name":"Jane Doe","title":"Engineer","contact":"jane@example.com","summary":"Builds things.",
"skills":[{"category":"Languages","items":"Go, SQL"}],
"experience":[{"job_title":"Engineer","company":"Acme","location":"Remote","dates":"2020 - Present","bullets":["Shipped it"]}]}`
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", in, "--out-dir", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	path := strings.TrimSpace(out.String())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF at %s", path)
	}
}

func TestNormalizeRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "resume.rtf")
	if err := os.WriteFile(in, []byte("{\\rtf1}"), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetArgs([]string{"normalize", in})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
