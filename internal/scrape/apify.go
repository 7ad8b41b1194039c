package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-tailor/internal/apperr"
)

const (
	DefaultApifyBaseURL = "https://api.apify.com"
	crawlerActor        = "apify~website-content-crawler"
	waitForFinishSecs   = 120
	defaultScrapeWait   = 180 * time.Second
)

// ApifyScraper runs the website-content-crawler actor synchronously for one page.
type ApifyScraper struct {
	baseURL    string
	httpClient *http.Client
}

// NewApifyScraper builds a scraper against baseURL with a per-request timeout.
func NewApifyScraper(baseURL string, timeout time.Duration) *ApifyScraper {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultApifyBaseURL
	}
	if timeout <= 0 {
		timeout = defaultScrapeWait
	}
	return &ApifyScraper{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type startURL struct {
	URL string `json:"url"`
}

type proxyConfig struct {
	UseApifyProxy bool `json:"useApifyProxy"`
}

type runInput struct {
	StartURLs          []startURL  `json:"startUrls"`
	MaxCrawlPages      int         `json:"maxCrawlPages"`
	CrawlerType        string      `json:"crawlerType"`
	MaxConcurrency     int         `json:"maxConcurrency"`
	ProxyConfiguration proxyConfig `json:"proxyConfiguration"`
}

type runResponse struct {
	Data struct {
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

type datasetItem struct {
	Text     string `json:"text"`
	Title    string `json:"title"`
	Metadata struct {
		Title string `json:"title"`
	} `json:"metadata"`
}

// Scrape crawls pageURL with token and returns the first dataset item.
func (s *ApifyScraper) Scrape(ctx context.Context, pageURL, token string) (Result, error) {
	datasetID, err := s.run(ctx, pageURL, token)
	if err != nil {
		return Result{}, err
	}
	item, err := s.firstItem(ctx, datasetID, token)
	if err != nil {
		return Result{}, err
	}

	title := item.Metadata.Title
	if title == "" {
		title = item.Title
	}
	return Result{
		Text:     item.Text,
		Title:    title,
		Metadata: metadataFor(pageURL, title, item.Text),
	}, nil
}

func (s *ApifyScraper) run(ctx context.Context, pageURL, token string) (string, error) {
	payload, err := json.Marshal(runInput{
		StartURLs:          []startURL{{URL: pageURL}},
		MaxCrawlPages:      1,
		CrawlerType:        "playwright:firefox",
		MaxConcurrency:     1,
		ProxyConfiguration: proxyConfig{UseApifyProxy: true},
	})
	if err != nil {
		return "", apperr.New(apperr.KindInternal, "encode crawler input", err)
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("waitForFinish", fmt.Sprint(waitForFinishSecs))
	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs?%s", s.baseURL, crawlerActor, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.New(apperr.KindInternal, "build crawler request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := s.do(req)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		return "", apperr.Auth("Invalid Apify API token.", nil)
	}
	if status < 200 || status >= 300 {
		return "", apperr.Scrape(fmt.Sprintf("Apify API error: %d %s", status, truncate(string(body), 200)), nil)
	}

	var run runResponse
	if err := json.Unmarshal(body, &run); err != nil {
		return "", apperr.Scrape("Apify returned an unreadable run response", err)
	}
	if run.Data.Status != "SUCCEEDED" {
		return "", apperr.Scrape(fmt.Sprintf("Apify crawl did not succeed (status: %s). Try again.", run.Data.Status), nil)
	}
	if run.Data.DefaultDatasetID == "" {
		return "", apperr.Scrape("No dataset returned from Apify.", nil)
	}
	return run.Data.DefaultDatasetID, nil
}

func (s *ApifyScraper) firstItem(ctx context.Context, datasetID, token string) (datasetItem, error) {
	q := url.Values{}
	q.Set("token", token)
	q.Set("format", "json")
	endpoint := fmt.Sprintf("%s/v2/datasets/%s/items?%s", s.baseURL, url.PathEscape(datasetID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return datasetItem{}, apperr.New(apperr.KindInternal, "build dataset request", err)
	}
	body, status, err := s.do(req)
	if err != nil {
		return datasetItem{}, err
	}
	if status < 200 || status >= 300 {
		return datasetItem{}, apperr.Scrape("Failed to fetch crawl results.", nil)
	}

	var items []datasetItem
	if err := json.Unmarshal(body, &items); err != nil {
		return datasetItem{}, apperr.Scrape("Apify returned unreadable crawl results", err)
	}
	if len(items) == 0 {
		return datasetItem{}, apperr.Scrape("No content was extracted from the URL. The page may require login.", nil)
	}
	if strings.TrimSpace(items[0].Text) == "" {
		return datasetItem{}, apperr.Scrape("Page was loaded but no text content was found.", nil)
	}
	return items[0], nil
}

func (s *ApifyScraper) do(req *http.Request) ([]byte, int, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if apperr.IsTimeout(err) {
			return nil, 0, apperr.Timeout("Apify request timed out. Try again.", err)
		}
		return nil, 0, apperr.Scrape("Apify request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if apperr.IsTimeout(err) {
			return nil, 0, apperr.Timeout("Apify request timed out. Try again.", err)
		}
		return nil, 0, apperr.Scrape("read Apify response", err)
	}
	return body, resp.StatusCode, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
