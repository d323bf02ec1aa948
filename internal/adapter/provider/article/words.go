package article

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/vocab/internal/domain"
)

// Words splits text into normalized English words in order of first
// appearance. Inner apostrophes and hyphens are kept ("don't", "well-known");
// tokens with digits or other scripts are dropped.
func Words(text string) []string {
	seen := make(map[string]struct{})
	var out []string

	flush := func(tok string) {
		tok = strings.Trim(tok, "'-’")
		if len([]rune(tok)) < 2 {
			return
		}
		w := domain.NormalizeText(strings.ReplaceAll(tok, "’", "'"))
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	var cur strings.Builder
	valid := true
	for _, r := range text {
		switch {
		case r <= unicode.MaxASCII && unicode.IsLetter(r), r == '\'' || r == '-' || r == '’':
			cur.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
			valid = false
		default:
			if cur.Len() > 0 && valid {
				flush(cur.String())
			}
			cur.Reset()
			valid = true
		}
	}
	if cur.Len() > 0 && valid {
		flush(cur.String())
	}
	return out
}
