// Package scan picks the less common words out of a web article.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab/internal/adapter/provider/article"
)

// Defaults for Options.
const (
	DefaultMaxZipf = 3.5
	DefaultLimit   = 25
)

// ErrNoFrequencyData is returned when no frequency table is indexed.
var ErrNoFrequencyData = errors.New("scan: no frequency data (build the index with --frequency)")

type articleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*article.Article, error)
}

type zipfSource interface {
	Zipf(ctx context.Context, word string) (zipf float64, ok bool, err error)
}

// Options bound a scan.
type Options struct {
	// MaxZipf keeps words at or below this Zipf score.
	MaxZipf float64
	// Limit caps the number of words returned; 0 means DefaultLimit.
	Limit int
}

// Word is one selected word with its Zipf score.
type Word struct {
	Text string
	Zipf float64
}

// Result is the outcome of a scan.
type Result struct {
	Title string
	// Total is the number of distinct words in the article.
	Total int
	Words []Word
}

// Service scans articles.
type Service struct {
	log     *slog.Logger
	fetcher articleFetcher
	freq    zipfSource
}

// NewService creates a scan service. freq may be nil, in which case every
// scan fails with ErrNoFrequencyData.
func NewService(logger *slog.Logger, fetcher articleFetcher, freq zipfSource) *Service {
	return &Service{
		log:     logger.With("service", "scan"),
		fetcher: fetcher,
		freq:    freq,
	}
}

// Scan fetches rawURL and returns its rare words in order of first
// appearance.
func (s *Service) Scan(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	if s.freq == nil {
		return nil, ErrNoFrequencyData
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	art, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	words := article.Words(art.Text)
	res := &Result{Title: art.Title, Total: len(words)}

	for _, w := range words {
		if len(res.Words) == opts.Limit {
			break
		}
		zipf, ok, err := s.freq.Zipf(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("scan: frequency %q: %w", w, err)
		}
		if !ok {
			return nil, ErrNoFrequencyData
		}
		if zipf <= opts.MaxZipf {
			res.Words = append(res.Words, Word{Text: w, Zipf: zipf})
		}
	}

	s.log.DebugContext(ctx, "article scanned",
		slog.String("url", rawURL),
		slog.Int("distinct", res.Total),
		slog.Int("selected", len(res.Words)),
	)
	return res, nil
}
