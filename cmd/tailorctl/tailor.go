package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-tailor/internal/bootstrap"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to a job description and print the structured JSON",
	RunE:  runTailor,
}

var (
	tailorResumeFile string
	tailorJDFile     string
	tailorPromptFile string
	tailorProvider   string
	tailorAPIKey     string
	tailorOutFile    string
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorResumeFile, "resume", "r", "", "Path to the resume (.pdf, .docx or .txt)")
	tailorCmd.Flags().StringVarP(&tailorJDFile, "jd", "j", "", "Path to a text file holding the job description")
	tailorCmd.Flags().StringVar(&tailorPromptFile, "prompt", "", "Optional instructions file (.txt, .pdf or .docx)")
	tailorCmd.Flags().StringVarP(&tailorProvider, "provider", "p", string(llm.DefaultProvider), "LLM provider: anthropic or gemini")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Provider API key (defaults to ANTHROPIC_API_KEY or GEMINI_API_KEY)")
	tailorCmd.Flags().StringVarP(&tailorOutFile, "out", "o", "", "Write JSON here instead of stdout")
	_ = tailorCmd.MarkFlagRequired("resume")
	_ = tailorCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	provider, err := llm.ParseProvider(tailorProvider)
	if err != nil {
		return err
	}
	apiKey := tailorAPIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv(provider))
	}

	resumeText, err := readDocument(cmd, tailorResumeFile)
	if err != nil {
		return err
	}
	jd, err := os.ReadFile(tailorJDFile)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}
	var instructions string
	if tailorPromptFile != "" {
		if instructions, err = readDocument(cmd, tailorPromptFile); err != nil {
			return err
		}
	}

	svc := &tailoring.Service{LLM: bootstrap.NewGateway(config.Load())}
	res, err := svc.Tailor(cmd.Context(), tailoring.TailorInput{
		Provider:       provider,
		Credential:     apiKey,
		JobDescription: string(jd),
		ResumeText:     resumeText,
		Instructions:   instructions,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res.Resume, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	if tailorOutFile != "" {
		return os.WriteFile(tailorOutFile, out, 0o644)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func apiKeyEnv(p llm.Provider) string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}
