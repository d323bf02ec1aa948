package rediscache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/vocab/internal/adapter/cache"
	"github.com/heartmarshall/vocab/internal/domain"
)

func unreachableStore(t *testing.T) *Store {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := New(client, "", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := unreachableStore(t)
	assert.Equal(t, DefaultPrefix, s.prefix)
	assert.Equal(t, cache.DefaultTTL, s.ttl)
	assert.Equal(t, "vocab:"+cache.Key("Word"), s.key("word"))
}

func TestStore_FailOpen(t *testing.T) {
	t.Parallel()

	s := unreachableStore(t)
	ctx := context.Background()

	s.Set(ctx, "word", domain.NewWordRecord("word"))
	got, ok := s.Get(ctx, "word")
	assert.False(t, ok)
	assert.Nil(t, got)

	_, err := s.Clear(ctx)
	assert.Error(t, err)
}
