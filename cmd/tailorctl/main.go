// Command tailorctl runs the tailoring pipeline from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "tailorctl",
	Short:         "Tailor resumes to job descriptions from the command line",
	Long:          "tailorctl extracts resume text, calls an LLM provider to tailor it to a job description, and renders the result as a PDF.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
