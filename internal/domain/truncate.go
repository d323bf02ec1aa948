package domain

import "strings"

// DefaultBriefWords is the word budget for a brief definition.
const DefaultBriefWords = 6

var glossStopWords = map[string]struct{}{
	"and": {}, "or": {}, "but": {}, "which": {}, "that": {}, "who": {},
}

// glossCut returns the earliest natural cut point in words, scanning indices
// 3..min(maxWords, len(words)-1). A cut happens before a conjunction or
// relative pronoun, or right after a token ending with a comma.
func glossCut(words []string, maxWords int) (int, bool) {
	limit := min(maxWords+1, len(words))
	for i := 3; i < limit; i++ {
		if _, stop := glossStopWords[strings.ToLower(words[i])]; stop {
			return i, true
		}
		if strings.HasSuffix(words[i-1], ",") {
			return i, true
		}
	}
	return 0, false
}

// TruncateGloss shortens text to at most maxWords words, preferring to cut at
// a clause boundary. Text that fits is returned unchanged.
func TruncateGloss(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	if i, ok := glossCut(words, maxWords); ok {
		return strings.Join(words[:i], " ")
	}
	out := strings.Join(words[:maxWords], " ")
	if strings.HasSuffix(out, ".") {
		return out
	}
	return out + "..."
}

// ShortGloss is the lexical-database flavour of truncation: the text before
// the first ';', cut the same way but always marked with "..." when shortened.
func ShortGloss(gloss string) string {
	clean := strings.TrimSpace(strings.SplitN(gloss, ";", 2)[0])
	words := strings.Fields(clean)
	if len(words) <= DefaultBriefWords {
		return clean
	}
	cut := DefaultBriefWords
	if i, ok := glossCut(words, DefaultBriefWords); ok {
		cut = i
	}
	return strings.Join(words[:cut], " ") + "..."
}
