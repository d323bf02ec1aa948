// Package article fetches web pages and extracts their readable text.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	fetchTimeout     = 30 * time.Second
	maxPageBytes     = 10 << 20
)

// Article is the readable part of a web page.
type Article struct {
	Title string
	Text  string
}

// Fetcher downloads pages and runs readability extraction on them.
type Fetcher struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		log:        logger.With("adapter", "article"),
	}
}

// Fetch downloads rawURL and returns its main text content.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return nil, fmt.Errorf("article: invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("article: create request: %w", err)
	}
	// Some sites refuse requests that do not look like a browser.
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("article: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("article: read body: %w", err)
	}

	return f.Extract(ctx, bytes.NewReader(body), pageURL)
}

// Extract runs readability over an already downloaded page.
func (f *Fetcher) Extract(ctx context.Context, r io.Reader, pageURL *url.URL) (*Article, error) {
	parsed, err := readability.FromReader(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("article: extract: %w", err)
	}

	f.log.DebugContext(ctx, "article extracted",
		slog.String("url", pageURL.String()),
		slog.String("title", parsed.Title),
		slog.Int("chars", len(parsed.TextContent)),
	)

	return &Article{Title: parsed.Title, Text: parsed.TextContent}, nil
}
