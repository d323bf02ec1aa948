// Package rediscache is a Redis-backed record cache with native key expiry.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/vocab/internal/adapter/cache"
	"github.com/heartmarshall/vocab/internal/domain"
)

// DefaultPrefix namespaces vocab keys in a shared database.
const DefaultPrefix = "vocab:"

const scanBatch = 100

// Store keeps entries as "<prefix><key>" strings expiring after ttl.
type Store struct {
	log    *slog.Logger
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Connect parses a redis:// URL, pings the server and returns a Store.
func Connect(ctx context.Context, redisURL, prefix string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("rediscache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("rediscache: ping %s: %w", opts.Addr, err)
	}

	return New(client, prefix, ttl, logger), nil
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Store{
		log:    logger.With("adapter", "redis_cache"),
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(word string) string {
	return s.prefix + cache.Key(word)
}

// Get returns the cached record of word. Misses and errors both yield false.
func (s *Store) Get(ctx context.Context, word string) (*domain.WordRecord, bool) {
	data, err := s.client.Get(ctx, s.key(word)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.DebugContext(ctx, "redis get failed", slog.String("word", word), slog.String("error", err.Error()))
		}
		return nil, false
	}

	entry, err := cache.Decode(data)
	if err != nil {
		s.log.DebugContext(ctx, "redis entry unreadable", slog.String("word", word), slog.String("error", err.Error()))
		return nil, false
	}
	rec, err := entry.Record()
	if err != nil {
		s.log.DebugContext(ctx, "redis payload unreadable", slog.String("word", word), slog.String("error", err.Error()))
		return nil, false
	}
	return rec, true
}

// Set stores record under word with the configured expiry.
func (s *Store) Set(ctx context.Context, word string, record *domain.WordRecord) {
	data, err := cache.Encode(record, time.Now())
	if err != nil {
		s.log.DebugContext(ctx, "redis encode failed", slog.String("word", word), slog.String("error", err.Error()))
		return
	}
	if err := s.client.Set(ctx, s.key(word), data, s.ttl).Err(); err != nil {
		s.log.DebugContext(ctx, "redis set failed", slog.String("word", word), slog.String("error", err.Error()))
	}
}

// Clear deletes every key under the prefix and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("rediscache: scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("rediscache: del: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	s.log.InfoContext(ctx, "cache cleared", slog.Int("entries", removed))
	return removed, nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
