package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type termSourceMock struct {
	AllTermsFunc func(ctx context.Context) ([]string, error)
	calls        int
}

func (m *termSourceMock) AllTerms(ctx context.Context) ([]string, error) {
	m.calls++
	return m.AllTermsFunc(ctx)
}

func staticTerms(words ...string) *termSourceMock {
	return &termSourceMock{AllTermsFunc: func(context.Context) ([]string, error) {
		return words, nil
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTerms_LoadedOnce(t *testing.T) {
	t.Parallel()

	src := staticTerms("run", "fast", "run")
	terms := NewTerms(discardLogger(), src)
	ctx := context.Background()

	assert.Equal(t, 0, src.calls, "terms must load lazily")
	assert.True(t, terms.Contains(ctx, "run"))
	assert.False(t, terms.Contains(ctx, "slow"))
	assert.Equal(t, []string{"fast", "run"}, terms.Prefixed(ctx, "", 10))
	assert.Equal(t, 1, src.calls)
}

func TestTerms_LoadError(t *testing.T) {
	t.Parallel()

	src := &termSourceMock{AllTermsFunc: func(context.Context) ([]string, error) {
		return nil, errors.New("db closed")
	}}
	terms := NewTerms(discardLogger(), src)

	assert.False(t, terms.Contains(context.Background(), "run"))
	assert.Empty(t, terms.Corrections(context.Background(), "run", 3, 0.7))
}

func TestTerms_NilSource(t *testing.T) {
	t.Parallel()

	terms := NewTerms(discardLogger(), nil)
	assert.False(t, terms.Contains(context.Background(), "run"))
	assert.Empty(t, terms.Prefixed(context.Background(), "ru", 5))
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	terms := NewTerms(discardLogger(), staticTerms("rumble", "run", "rune", "running", "runt", "fast"))
	c := NewCompleter(terms, 3)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "  ", nil},
		{"slash lists all", "/", Commands},
		{"command prefix", "/clear-", []string{"/clear-cache", "/clear-history"}},
		{"command case-insensitive", "/HE", []string{"/help"}},
		{"unknown command", "/zz", nil},
		{"one letter is too short", "r", nil},
		{"word prefix capped", "run", []string{"run", "rune", "running"}},
		{"word prefix lowercased", "RUM", []string{"rumble"}},
		{"no word match", "zz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Complete(ctx, tt.text))
		})
	}
}

func TestNewCompleter_DefaultMax(t *testing.T) {
	t.Parallel()

	c := NewCompleter(NewTerms(discardLogger(), nil), 0)
	assert.Equal(t, DefaultMaxCompletions, c.max)
}
