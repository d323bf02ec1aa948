// Package app wires configuration, adapters and services for the vocab CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/heartmarshall/vocab/internal/adapter/cache"
	"github.com/heartmarshall/vocab/internal/adapter/cache/rediscache"
	"github.com/heartmarshall/vocab/internal/adapter/provider/article"
	"github.com/heartmarshall/vocab/internal/adapter/provider/freedict"
	"github.com/heartmarshall/vocab/internal/adapter/provider/wiktionary"
	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	lexiconrepo "github.com/heartmarshall/vocab/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/vocab/internal/config"
	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/metrics"
	"github.com/heartmarshall/vocab/internal/service/frequency"
	"github.com/heartmarshall/vocab/internal/service/lexicon"
	"github.com/heartmarshall/vocab/internal/service/lookup"
)

// Cache is a record cache backend that can also be emptied.
type Cache interface {
	Get(ctx context.Context, word string) (*domain.WordRecord, bool)
	Set(ctx context.Context, word string, record *domain.WordRecord)
	Clear(ctx context.Context) (int, error)
}

// App holds the wired services. Optional parts are nil when unavailable:
// Lexicon, Frequency and Index without a lexicon index, Cache when caching
// is disabled or its backend is unreachable.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Lookup    *lookup.Service
	Lexicon   *lexicon.Service
	Frequency *frequency.Service
	Index     *lexiconrepo.Repo
	Cache     Cache
	Metrics   *metrics.Recorder
	Articles  *article.Fetcher

	closers []func() error
}

// New builds an App from cfg. Missing optional backends are logged once
// and left out; New fails only on context cancellation.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      logger,
		Metrics:  metrics.NewRecorder(),
		Articles: article.NewFetcher(logger),
	}

	a.openIndex(ctx)
	a.Cache = a.openCache(ctx)

	src := lookup.Sources{
		Dictionary: freedict.NewProviderWithURL(cfg.Sources.DictionaryURL, logger),
		Etymology: wiktionary.NewProvider(logger,
			wiktionary.WithBaseURL(cfg.Sources.WiktionaryURL),
			wiktionary.WithUserAgent(cfg.Sources.UserAgent),
			wiktionary.WithMaxRelated(cfg.Sources.MaxRelated),
		),
	}
	// Assign only non-nil services so the interfaces stay nil when absent.
	if a.Lexicon != nil {
		src.Lexicon = a.Lexicon
	}
	if a.Frequency != nil {
		src.Frequency = a.Frequency
	}

	opts := []lookup.Option{lookup.WithRecorder(a.Metrics)}
	if a.Cache != nil {
		opts = append(opts, lookup.WithCache(a.Cache))
	}

	a.Lookup = lookup.NewService(logger, lookup.Config{
		CallTimeout: cfg.Lookup.CallTimeout,
		MaxDepth:    cfg.Lookup.MaxDepth,
	}, src, opts...)

	logger.DebugContext(ctx, "app ready",
		slog.String("version", BuildVersion()),
		slog.Bool("lexicon", a.Lexicon != nil),
		slog.Bool("cache", a.Cache != nil),
	)

	return a, nil
}

func (a *App) openIndex(ctx context.Context) {
	path := a.Config.Lexicon.Path
	db, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.Log.WarnContext(ctx, "lexicon index not found, offline lexical data disabled (run `vocab index build`)",
				slog.String("path", path))
		} else {
			a.Log.WarnContext(ctx, "lexicon index unavailable",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return
	}
	a.closers = append(a.closers, db.Close)

	a.Index = lexiconrepo.New(db)
	a.Lexicon = lexicon.NewService(a.Log, a.Index)
	a.Frequency = frequency.NewService(a.Log, a.Index)
}

func (a *App) openCache(ctx context.Context) Cache {
	cfg := a.Config.Cache
	if cfg.Disabled {
		return nil
	}

	switch cfg.Backend {
	case "redis":
		store, err := rediscache.Connect(ctx, cfg.RedisURL, cfg.RedisPrefix, cfg.TTL, a.Log)
		if err != nil {
			a.Log.WarnContext(ctx, "redis cache unavailable, caching disabled",
				slog.String("error", err.Error()))
			return nil
		}
		a.closers = append(a.closers, store.Close)
		return store
	default:
		return cache.NewDiskStore(cfg.Dir, a.Log, cache.WithTTL(cfg.TTL))
	}
}

// Close flushes metrics to the configured textfile and releases backends.
func (a *App) Close() error {
	var errs []error

	if path := a.Config.Metrics.TextfilePath; path != "" {
		if err := a.Metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("app: write metrics: %w", err))
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	return errors.Join(errs...)
}
