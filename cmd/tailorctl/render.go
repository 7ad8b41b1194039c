package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-tailor/internal/resume"
	"resume-tailor/internal/resume/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <resume.json>",
	Short: "Render tailored resume JSON to a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var renderOutDir string

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "d", ".", "Directory for the generated PDF")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read resume json: %w", err)
	}
	var r resume.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("decode resume json: %w", err)
	}

	pdf, err := render.New().Render(r)
	if err != nil {
		return err
	}
	path := filepath.Join(renderOutDir, render.Filename(r))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
