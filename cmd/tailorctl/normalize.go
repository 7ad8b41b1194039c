package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-tailor/internal/extract"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Print the plain text extracted from a .pdf, .docx or .txt resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	text, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return extract.Normalize(cmd.Context(), data, filepath.Base(path))
}
