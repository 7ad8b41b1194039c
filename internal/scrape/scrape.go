// Package scrape fetches job posting text from a URL, either through the Apify
// website-content-crawler actor or by fetching the page directly.
package scrape

import (
	"context"
	"net/url"
	"strings"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/jobmeta"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
)

// Result is the text of a scraped posting plus what could be inferred about it.
type Result struct {
	Text     string           `json:"text"`
	Title    string           `json:"title"`
	Metadata jobmeta.Metadata `json:"metadata"`
}

// Service picks a scraper for each request.
type Service struct {
	apify  *ApifyScraper
	direct *DirectScraper
}

// NewService wires the scrapers. direct may be nil to require an Apify token.
func NewService(apify *ApifyScraper, direct *DirectScraper) *Service {
	return &Service{apify: apify, direct: direct}
}

// Scrape returns the posting at pageURL. A token routes through Apify; without one the
// direct fetcher is used when enabled.
func (s *Service) Scrape(ctx context.Context, pageURL, token string) (Result, error) {
	pageURL = strings.TrimSpace(pageURL)
	token = strings.TrimSpace(token)
	if pageURL == "" {
		return Result{}, apperr.Validation("Job URL is required.")
	}
	if err := validateURL(pageURL); err != nil {
		return Result{}, err
	}

	var (
		res    Result
		err    error
		method string
	)
	switch {
	case token != "" && s.apify != nil:
		method = "apify"
		res, err = s.apify.Scrape(ctx, pageURL, token)
	case s.direct != nil:
		method = "direct"
		res, err = s.direct.Scrape(ctx, pageURL)
	default:
		return Result{}, apperr.Validation("Apify API token is required.")
	}

	fields := map[string]any{
		"method":   method,
		"platform": res.Metadata.Platform,
		"url":      pageURL,
	}
	metrics.IncScrape(err == nil)
	if err != nil {
		fields["kind"] = string(apperr.KindOf(err))
		telemetry.Warn("scrape.failed", fields)
		return Result{}, err
	}
	fields["chars"] = len(res.Text)
	telemetry.Info("scrape.done", fields)
	return res, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apperr.Validation("Job URL must be an absolute http(s) URL.")
	}
	return nil
}

// metadataFor prefers the page title and falls back to the page text.
func metadataFor(pageURL, title, text string) jobmeta.Metadata {
	if strings.TrimSpace(title) != "" {
		return jobmeta.FromTitle(pageURL, title)
	}
	return jobmeta.Extract(text, pageURL)
}
