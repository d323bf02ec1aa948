// Package lookup merges every word source into a single record: cache,
// frequency table, remote dictionary, lexical database, etymology scrape and
// base-form recursion.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/provider"
)

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type lexicalDatabase interface {
	Lookup(ctx context.Context, word string) (*provider.LexicalResult, error)
	Lemmatize(ctx context.Context, word string) (string, error)
	RootWords(ctx context.Context, word string) ([]string, error)
}

type etymologyProvider interface {
	FetchEtymology(ctx context.Context, word string) (*provider.EtymologyResult, error)
}

type frequencyProvider interface {
	Frequency(ctx context.Context, word string) (*domain.Frequency, error)
}

type recordCache interface {
	Get(ctx context.Context, word string) (*domain.WordRecord, bool)
	Set(ctx context.Context, word string, record *domain.WordRecord)
}

type recorder interface {
	SourceCall(source string, status provider.Status, d time.Duration)
	CacheLookup(hit bool)
	Lookup(d time.Duration)
}

// Source names used in logs and metrics.
const (
	SourceDictionary = "dictionary"
	SourceLexicon    = "lexicon"
	SourceEtymology  = "etymology"
	SourceFrequency  = "frequency"
	SourceRoots      = "roots"
	SourceLemmatizer = "lemmatizer"
)

// Defaults for Config.
const (
	DefaultCallTimeout = 5 * time.Second
	DefaultMaxDepth    = 5
)

// Config bounds a lookup.
type Config struct {
	// CallTimeout limits every individual source call.
	CallTimeout time.Duration
	// MaxDepth caps base-form recursion. A record at this depth keeps its
	// base word but gets no base record.
	MaxDepth int
}

// Sources are the collaborators a lookup draws from. Any of them may be nil,
// which makes that source permanently absent.
type Sources struct {
	Dictionary dictionaryProvider
	Lexicon    lexicalDatabase
	Etymology  etymologyProvider
	Frequency  frequencyProvider
}

// Options select what a single lookup does.
type Options struct {
	// Offline suppresses every network-backed source.
	Offline bool
	// NoCache bypasses both cache reads and writes.
	NoCache bool
	// Sections restricts the populated sections; empty means all.
	Sections domain.SectionSet
}

// Service is the merge orchestrator.
type Service struct {
	log     *slog.Logger
	cfg     Config
	src     Sources
	cache   recordCache
	metrics recorder
}

// Option configures optional collaborators.
type Option func(*Service)

// WithCache enables caching of merged records.
func WithCache(c recordCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRecorder reports source outcomes and cache traffic.
func WithRecorder(r recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// NewService creates a new lookup service.
func NewService(logger *slog.Logger, cfg Config, src Sources, opts ...Option) *Service {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	s := &Service{
		log:     logger.With("service", "lookup"),
		cfg:     cfg,
		src:     src,
		metrics: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the merged record for word. It fails with a validation
// error for a word that is empty after normalization and with ctx's error
// when ctx is cancelled; source and cache failures degrade to missing fields.
func (s *Service) Lookup(ctx context.Context, word string, opts Options) (*domain.WordRecord, error) {
	normalized := domain.NormalizeText(word)
	if normalized == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	rec := s.lookup(ctx, normalized, opts, 0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

type nopRecorder struct{}

func (nopRecorder) SourceCall(string, provider.Status, time.Duration) {}
func (nopRecorder) CacheLookup(bool)                                  {}
func (nopRecorder) Lookup(time.Duration)                              {}
