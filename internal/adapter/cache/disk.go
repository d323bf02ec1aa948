package cache

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
)

// DiskStore keeps one JSON file per word under a directory. All failures are
// treated as a miss or a no-op.
type DiskStore struct {
	log *slog.Logger
	dir string
	ttl time.Duration
	now func() time.Time
}

// Option configures a DiskStore.
type Option func(*DiskStore)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *DiskStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *DiskStore) { s.now = now }
}

// NewDiskStore creates a store rooted at dir. The directory is created on
// the first write.
func NewDiskStore(dir string, logger *slog.Logger, opts ...Option) *DiskStore {
	s := &DiskStore{
		log: logger.With("adapter", "disk_cache"),
		dir: dir,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the cache directory.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) path(word string) string {
	return filepath.Join(s.dir, Key(word)+".json")
}

// Get returns the cached record of word if present and fresh. Expired
// entries are deleted.
func (s *DiskStore) Get(ctx context.Context, word string) (*domain.WordRecord, bool) {
	path := s.path(word)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.DebugContext(ctx, "cache read failed", slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil, false
	}

	entry, err := Decode(data)
	if err != nil {
		s.log.DebugContext(ctx, "cache entry unreadable", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}

	if entry.Expired(s.now(), s.ttl) {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.DebugContext(ctx, "cache evict failed", slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil, false
	}

	rec, err := entry.Record()
	if err != nil {
		s.log.DebugContext(ctx, "cache payload unreadable", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}
	return rec, true
}

// Set stores record under word, replacing any previous entry atomically.
func (s *DiskStore) Set(ctx context.Context, word string, record *domain.WordRecord) {
	if err := s.write(word, record); err != nil {
		s.log.DebugContext(ctx, "cache write failed", slog.String("word", word), slog.String("error", err.Error()))
	}
}

func (s *DiskStore) write(word string, record *domain.WordRecord) error {
	data, err := Encode(record, s.now())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(word)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Clear removes every entry and returns how many were removed. A missing
// directory holds zero entries.
func (s *DiskStore) Clear(ctx context.Context) (int, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.DebugContext(ctx, "cache remove failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		count++
	}

	s.log.InfoContext(ctx, "cache cleared", slog.Int("entries", count))
	return count, nil
}
