package lexicon

import (
	"context"
	"fmt"
	"slices"
)

const (
	queryLang     = "eng"
	maxRootDepth  = 8
	maxRootsTotal = 32
)

// languageNames covers the codes that dominate English etymologies.
// Unlisted codes are shown as-is.
var languageNames = map[string]string{
	"eng":   "English",
	"enm":   "Middle English",
	"ang":   "Old English",
	"fra":   "French",
	"frm":   "Middle French",
	"fro":   "Old French",
	"xno":   "Anglo-Norman",
	"lat":   "Latin",
	"la":    "Latin",
	"grc":   "Ancient Greek",
	"ell":   "Greek",
	"non":   "Old Norse",
	"nld":   "Dutch",
	"dum":   "Middle Dutch",
	"deu":   "German",
	"gmh":   "Middle High German",
	"goh":   "Old High German",
	"ita":   "Italian",
	"spa":   "Spanish",
	"por":   "Portuguese",
	"ara":   "Arabic",
	"heb":   "Hebrew",
	"san":   "Sanskrit",
	"got":   "Gothic",
	"gem":   "Germanic",
	"ine":   "Indo-European",
	"p_gem": "Proto-Germanic",
	"p_ine": "Proto-Indo-European",
}

// LanguageName returns a display name for an ISO 639 code.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

type rootKey struct{ lang, word string }

// RootWords returns the derivation chain of word, oldest root first and
// ending with the immediate ancestor, formatted "word (Language)". Origins
// are explored breadth-first with cycle protection; word itself never
// appears in the chain.
func (s *Service) RootWords(ctx context.Context, word string) ([]string, error) {
	start := rootKey{lang: queryLang, word: lemmaKey(word)}
	if start.word == "" {
		return []string{}, nil
	}

	visited := map[rootKey]struct{}{start: {}}
	frontier := []rootKey{start}
	var found []rootKey

	for depth := 0; depth < maxRootDepth && len(frontier) > 0 && len(found) < maxRootsTotal; depth++ {
		var next []rootKey
		for _, cur := range frontier {
			links, err := s.repo.Origins(ctx, cur.lang, cur.word)
			if err != nil {
				return nil, fmt.Errorf("lexicon: origins of %s: %w", cur.word, err)
			}
			for _, l := range links {
				k := rootKey{lang: l.OriginLang, word: l.OriginWord}
				if _, seen := visited[k]; seen {
					continue
				}
				visited[k] = struct{}{}
				found = append(found, k)
				next = append(next, k)
			}
		}
		frontier = next
	}

	if len(found) > maxRootsTotal {
		found = found[:maxRootsTotal]
	}
	slices.Reverse(found)

	out := make([]string, 0, len(found))
	for _, k := range found {
		out = append(out, fmt.Sprintf("%s (%s)", k.word, LanguageName(k.lang)))
	}
	return out, nil
}
