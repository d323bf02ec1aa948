package wiktionary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html"

	"github.com/heartmarshall/vocab/internal/provider"
)

const (
	defaultBaseURL   = "https://en.wiktionary.org/wiki"
	defaultUserAgent = "vocab-cli/0.1 (https://github.com/vocab-cli; educational tool)"
	defaultTimeout   = 5 * time.Second
	maxBodyBytes     = 8 << 20
)

// Provider scrapes etymology and related terms from English Wiktionary pages.
type Provider struct {
	baseURL    string
	userAgent  string
	maxRelated int
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the wiki base URL.
func WithBaseURL(u string) Option {
	return func(p *Provider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Provider) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithMaxRelated caps the number of related words returned.
func WithMaxRelated(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.maxRelated = n
		}
	}
}

// NewProvider creates a Provider.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		maxRelated: defaultMaxRelated,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "wiktionary"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// FetchEtymology downloads the page for word and extracts the etymology
// paragraphs and related/derived terms. A page that does not exist yields
// nil, nil.
func (p *Provider) FetchEtymology(ctx context.Context, word string) (*provider.EtymologyResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wiktionary: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiktionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiktionary: unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("wiktionary: parse html: %w", err)
	}

	result := &provider.EtymologyResult{
		EtymologyText: extractEtymology(doc),
		RelatedWords:  extractRelated(doc, p.maxRelated),
	}

	p.log.DebugContext(ctx, "wiktionary page parsed",
		slog.String("word", word),
		slog.Int("etymology_chars", len(result.EtymologyText)),
		slog.Int("related", len(result.RelatedWords)),
	)

	return result, nil
}
