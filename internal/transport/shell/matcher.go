package shell

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Correction defaults.
const (
	DefaultSuggestions   = 3
	DefaultSuggestCutoff = 0.7
	maxLengthDelta       = 2
)

// CloseMatches returns up to n candidates whose similarity ratio with word is
// at least cutoff, best first. Equal scores are ordered by candidate,
// descending. Only candidates within two characters of word's length are
// scored.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || word == "" {
		return nil
	}

	type scored struct {
		word  string
		score float64
	}

	m := difflib.NewMatcher(nil, runes(word))
	wlen := len([]rune(word))

	var hits []scored
	for _, c := range candidates {
		if abs(len([]rune(c))-wlen) > maxLengthDelta {
			continue
		}
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			hits = append(hits, scored{word: c, score: r})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return strings.Compare(b.word, a.word)
		}
	})

	out := make([]string, 0, min(n, len(hits)))
	for _, h := range hits {
		if len(out) == n {
			break
		}
		out = append(out, h.word)
	}
	return out
}

// runes splits s into one-character elements for the sequence matcher.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
