package scrape

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"resume-tailor/internal/apperr"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DirectScraper fetches a posting page itself. Pages rendered client-side come back
// mostly empty; Apify handles those.
type DirectScraper struct {
	timeout time.Duration
}

func NewDirectScraper(timeout time.Duration) *DirectScraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DirectScraper{timeout: timeout}
}

// Scrape fetches pageURL and returns its visible body text and title.
func (s *DirectScraper) Scrape(ctx context.Context, pageURL string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, apperr.Timeout("scrape cancelled", err)
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(s.timeout)

	var body []byte
	var reqErr error
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(pageURL); err != nil && reqErr == nil {
		reqErr = err
	}
	c.Wait()
	if reqErr != nil {
		if apperr.IsTimeout(reqErr) {
			return Result{}, apperr.Timeout("Fetching the job page timed out. Try again.", reqErr)
		}
		return Result{}, apperr.Scrape("Could not fetch the job page.", reqErr)
	}

	title, text, err := pageText(body)
	if err != nil {
		return Result{}, apperr.Scrape("Could not parse the job page.", err)
	}
	if text == "" {
		return Result{}, apperr.Scrape("Page was loaded but no text content was found.", nil)
	}
	return Result{Text: text, Title: title, Metadata: metadataFor(pageURL, title, string(body))}, nil
}

// pageText drops script, style and noscript, then returns the title and one line per
// non-empty text run.
func pageText(html []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", "", err
	}
	doc.Find("script, style, noscript, template").Remove()
	title := strings.TrimSpace(doc.Find("title").First().Text())

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var lines []string
	for _, line := range strings.Split(root.Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return title, strings.Join(lines, "\n"), nil
}
