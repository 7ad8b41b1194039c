package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-tailor/internal/jobmeta"
	"resume-tailor/internal/scrape"
	"resume-tailor/internal/shared/config"
)

var metaCmd = &cobra.Command{
	Use:   "meta <job-url>",
	Short: "Infer platform, company and position for a job posting",
	Long:  "Infer job metadata from a posting URL. With --jd the text is read from a file, otherwise the page is scraped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeta,
}

var (
	metaJDFile     string
	metaApifyToken string
)

func init() {
	metaCmd.Flags().StringVar(&metaJDFile, "jd", "", "Job description or saved HTML to parse instead of scraping")
	metaCmd.Flags().StringVar(&metaApifyToken, "apify-token", os.Getenv("APIFY_API_TOKEN"), "Apify token; without one the page is fetched directly")
	rootCmd.AddCommand(metaCmd)
}

func runMeta(cmd *cobra.Command, args []string) error {
	url := args[0]
	var meta jobmeta.Metadata
	if metaJDFile != "" {
		raw, err := os.ReadFile(metaJDFile)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		meta = jobmeta.Extract(string(raw), url)
	} else {
		cfg := config.Load()
		svc := scrape.NewService(
			scrape.NewApifyScraper(cfg.ApifyBaseURL, cfg.ScrapeTimeout),
			scrape.NewDirectScraper(cfg.ScrapeTimeout),
		)
		res, err := svc.Scrape(cmd.Context(), url, metaApifyToken)
		if err != nil {
			return err
		}
		meta = res.Metadata
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
