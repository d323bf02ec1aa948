package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/lookup"
	"github.com/heartmarshall/vocab/internal/transport/render"
)

type lookupMock struct {
	LookupFunc func(ctx context.Context, word string, opts lookup.Options) (*domain.WordRecord, error)
	words      []string
}

func (m *lookupMock) Lookup(ctx context.Context, word string, opts lookup.Options) (*domain.WordRecord, error) {
	m.words = append(m.words, word)
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, word, opts)
	}
	rec := domain.NewWordRecord(word)
	rec.BriefDefinition = "meaning of " + word
	return rec, nil
}

type clearerMock struct {
	n   int
	err error
}

func (m *clearerMock) Clear(context.Context) (int, error) { return m.n, m.err }

type sessionFixture struct {
	session *Session
	lookup  *lookupMock
	history *History
	histDir string
}

func newSessionFixture(t *testing.T, cache cacheClearer, terms ...string) *sessionFixture {
	t.Helper()

	dir := t.TempDir()
	hist, err := LoadHistory(filepath.Join(dir, "history"))
	require.NoError(t, err)

	var src termSource
	if len(terms) > 0 {
		src = staticTerms(terms...)
	}

	lm := &lookupMock{}
	s := NewSession(discardLogger(), Config{
		Lookup:  lm,
		Cache:   cache,
		History: hist,
		Terms:   NewTerms(discardLogger(), src),
		Text:    render.NewText(io.Discard, render.Options{Brief: true, NoColor: true}),
		Options: lookup.Options{Offline: true},
	})
	return &sessionFixture{session: s, lookup: lm, history: hist, histDir: dir}
}

func TestSession_Quit(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"/exit", "/quit", "exit", " quit "} {
		f := newSessionFixture(t, nil)
		assert.True(t, f.session.Handle(context.Background(), cmd).Quit, cmd)
	}
}

func TestSession_EmptyLine(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	assert.Equal(t, Reply{}, f.session.Handle(context.Background(), "   "))
	assert.Empty(t, f.history.Entries())
}

func TestSession_Clear(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	r := f.session.Handle(context.Background(), "/clear")
	assert.True(t, r.ClearScreen)
	assert.Empty(t, r.Output)
}

func TestSession_ClearCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	f := newSessionFixture(t, nil)
	assert.Equal(t, "Cache is disabled.", f.session.Handle(ctx, "/clear-cache").Output)

	f = newSessionFixture(t, &clearerMock{n: 3})
	assert.Equal(t, "Cleared 3 cached entries.", f.session.Handle(ctx, "/clear-cache").Output)

	f = newSessionFixture(t, &clearerMock{err: errors.New("permission denied")})
	assert.Contains(t, f.session.Handle(ctx, "/clear-cache").Output, "permission denied")
}

func TestSession_ClearHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSessionFixture(t, nil)
	f.session.Handle(ctx, "run")

	r := f.session.Handle(ctx, "/clear-history")
	assert.Equal(t, "History cleared.", r.Output)
	assert.Empty(t, f.history.Entries())
	_, err := os.Stat(filepath.Join(f.histDir, "history"))
	assert.True(t, os.IsNotExist(err))
}

func TestSession_Help(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	out := f.session.Handle(context.Background(), "/help").Output
	for _, want := range []string{"/clear-cache", "/clear-history", "/file", "Type any word to look it up."} {
		assert.Contains(t, out, want)
	}
}

func TestSession_UnknownCommand(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	r := f.session.Handle(context.Background(), "/frobnicate now")
	assert.Equal(t, "Unknown command /frobnicate. Type /help for commands.", r.Output)
	assert.Empty(t, f.lookup.words)
}

func TestSession_File(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("Run\n  fast\n"), 0o600))
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0o600))

	t.Run("usage", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		assert.Equal(t, "Usage: /file <path>", f.session.Handle(ctx, "/file").Output)
	})

	t.Run("unreadable", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		out := f.session.Handle(ctx, "/file "+filepath.Join(dir, "missing.txt")).Output
		assert.True(t, strings.HasPrefix(out, "Error reading file: "), out)
	})

	t.Run("empty", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		assert.Equal(t, "File is empty.", f.session.Handle(ctx, "/file "+empty).Output)
	})

	t.Run("words", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		out := f.session.Handle(ctx, "/file "+words).Output
		assert.Equal(t, []string{"run", "fast"}, f.lookup.words)
		assert.Equal(t,
			"Looking up 2 word(s) from words.txt\nrun\nmeaning of run\nfast\nmeaning of fast",
			out)
	})
}

func TestSession_LookupFirstToken(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	r := f.session.Handle(context.Background(), "Running fast")

	assert.Equal(t, []string{"running"}, f.lookup.words)
	assert.Equal(t, "running\nmeaning of running", r.Output)
	assert.Equal(t, []string{"Running fast"}, f.history.Entries())
}

func TestSession_KnownWordSkipsCorrection(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil, "hello", "help", "halo")
	f.session.Handle(context.Background(), "hello")

	assert.Equal(t, []string{"hello"}, f.lookup.words)
	assert.Equal(t, PromptWord, f.session.Prompt())
}

func TestSession_LookupInvalidWord(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	f.lookup.LookupFunc = func(context.Context, string, lookup.Options) (*domain.WordRecord, error) {
		return nil, domain.NewValidationError("word", "required")
	}
	assert.Equal(t, `Invalid word "!!"`, f.session.Handle(context.Background(), "!!").Output)
}

func TestSession_LookupCancelled(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, nil)
	f.lookup.LookupFunc = func(ctx context.Context, _ string, _ lookup.Options) (*domain.WordRecord, error) {
		return nil, ctx.Err()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "Lookup cancelled.", f.session.Handle(ctx, "fast").Output)
}

func TestSession_Correction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	terms := []string{"hello", "help", "halo", "world"}

	t.Run("offers suggestions", func(t *testing.T) {
		f := newSessionFixture(t, nil, terms...)
		r := f.session.Handle(ctx, "helo")

		assert.Equal(t, "Not found. Did you mean:  [1] hello  [2] help  [3] halo", r.Output)
		assert.Equal(t, PromptChoice, f.session.Prompt())
		assert.Empty(t, f.lookup.words)
	})

	t.Run("accept", func(t *testing.T) {
		f := newSessionFixture(t, nil, terms...)
		f.session.Handle(ctx, "helo")
		r := f.session.Handle(ctx, "2")

		assert.Equal(t, []string{"help"}, f.lookup.words)
		assert.Equal(t, "help\nmeaning of help", r.Output)
		assert.Equal(t, PromptWord, f.session.Prompt())
		assert.Equal(t, []string{"helo"}, f.history.Entries(), "choices are not history")
	})

	t.Run("enter skips silently", func(t *testing.T) {
		f := newSessionFixture(t, nil, terms...)
		f.session.Handle(ctx, "helo")
		assert.Equal(t, Reply{}, f.session.Handle(ctx, ""))
		assert.Empty(t, f.lookup.words)
	})

	for _, choice := range []string{"x", "4", "0", "+1"} {
		t.Run("skips "+choice, func(t *testing.T) {
			f := newSessionFixture(t, nil, terms...)
			f.session.Handle(ctx, "helo")
			assert.Equal(t, "Skipped.", f.session.Handle(ctx, choice).Output)
			assert.Empty(t, f.lookup.words)
			assert.Equal(t, PromptWord, f.session.Prompt())
		})
	}

	t.Run("cancel", func(t *testing.T) {
		f := newSessionFixture(t, nil, terms...)
		f.session.Handle(ctx, "helo")
		f.session.Cancel()
		assert.Equal(t, PromptWord, f.session.Prompt())
	})

	t.Run("no close match looks up anyway", func(t *testing.T) {
		f := newSessionFixture(t, nil, terms...)
		f.session.Handle(ctx, "zzzz")
		assert.Equal(t, []string{"zzzz"}, f.lookup.words)
	})
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "words.txt"), expandHome("~/words.txt"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/tmp/words.txt", expandHome("/tmp/words.txt"))
}
