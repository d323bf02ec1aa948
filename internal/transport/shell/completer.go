package shell

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Commands lists the shell's slash commands in completion order.
var Commands = []string{"/clear", "/clear-cache", "/clear-history", "/exit", "/file", "/help", "/quit"}

// DefaultMaxCompletions caps word completions.
const DefaultMaxCompletions = 20

const minCompletionPrefix = 2

// termSource provides the full set of known words.
type termSource interface {
	AllTerms(ctx context.Context) ([]string, error)
}

// Terms is the lazily loaded word list used for completion and correction.
// It is loaded on first use and kept for the life of the shell. A nil source
// or a failed load yields an empty list.
type Terms struct {
	log *slog.Logger
	src termSource

	once  sync.Once
	words []string
	set   map[string]struct{}
}

// NewTerms creates a term list backed by src, which may be nil.
func NewTerms(logger *slog.Logger, src termSource) *Terms {
	return &Terms{log: logger, src: src}
}

func (t *Terms) load(ctx context.Context) {
	t.once.Do(func() {
		t.set = make(map[string]struct{})
		if t.src == nil {
			return
		}
		words, err := t.src.AllTerms(ctx)
		if err != nil {
			t.log.WarnContext(ctx, "load terms for completion", slog.String("error", err.Error()))
			return
		}
		words = slices.Clone(words)
		slices.Sort(words)
		t.words = slices.Compact(words)
		for _, w := range t.words {
			t.set[w] = struct{}{}
		}
		t.log.DebugContext(ctx, "terms loaded", slog.Int("count", len(t.words)))
	})
}

// Contains reports whether word is a known term.
func (t *Terms) Contains(ctx context.Context, word string) bool {
	t.load(ctx)
	_, ok := t.set[word]
	return ok
}

// Prefixed returns up to limit terms starting with prefix, sorted.
func (t *Terms) Prefixed(ctx context.Context, prefix string, limit int) []string {
	t.load(ctx)
	lo := sort.SearchStrings(t.words, prefix)
	var out []string
	for _, w := range t.words[lo:] {
		if len(out) == limit || !strings.HasPrefix(w, prefix) {
			break
		}
		out = append(out, w)
	}
	return out
}

// Corrections suggests known terms close to word.
func (t *Terms) Corrections(ctx context.Context, word string, n int, cutoff float64) []string {
	t.load(ctx)
	return CloseMatches(word, t.words, n, cutoff)
}

// Completer completes slash commands and words.
type Completer struct {
	terms *Terms
	max   int
}

// NewCompleter creates a completer returning at most maxWords word
// completions.
func NewCompleter(terms *Terms, maxWords int) *Completer {
	if maxWords <= 0 {
		maxWords = DefaultMaxCompletions
	}
	return &Completer{terms: terms, max: maxWords}
}

// Complete returns the completions for the text typed so far. Slash commands
// complete by prefix; words need at least two characters.
func (c *Completer) Complete(ctx context.Context, text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		var out []string
		for _, cmd := range Commands {
			if strings.HasPrefix(cmd, text) {
				out = append(out, cmd)
			}
		}
		return out
	}

	if len([]rune(text)) < minCompletionPrefix {
		return nil
	}
	return c.terms.Prefixed(ctx, text, c.max)
}
