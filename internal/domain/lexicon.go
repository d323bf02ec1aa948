package domain

// Synset is one WordNet sense cluster.
type Synset struct {
	ID string
	// POS is the WordNet tag: n, v, a, s or r.
	POS        string
	Definition string
	// Members are lemma names in synset order, original casing, spaces not underscores.
	Members []string
}

// LemmaSense links a lowercase lemma to one of its synsets. Rank is the
// 0-based sense order of the lemma within POS.
type LemmaSense struct {
	Lemma    string
	POS      string
	SynsetID string
	Rank     int
}

// Antonym is a lexical antonym pair anchored at one synset member.
type Antonym struct {
	SynsetID string
	Member   string
	Antonym  string
}

// MorphException maps an irregular inflection to a base form.
type MorphException struct {
	Inflected string
	POS       string
	Base      string
}

// WordFrequency is a raw corpus count.
type WordFrequency struct {
	Word  string
	Count int64
}

// EtymologyLink records that Word (in Lang) derives from OriginWord (in OriginLang).
// Languages are ISO 639-3 codes as used by Etymological WordNet.
type EtymologyLink struct {
	Lang       string
	Word       string
	OriginLang string
	OriginWord string
}

// CoarsePOS folds satellite adjectives into adjectives: n, v, a, r.
func CoarsePOS(pos string) string {
	if pos == "s" {
		return "a"
	}
	return pos
}

// MorphyPOS is the order in which parts of speech are searched.
var MorphyPOS = []string{"n", "v", "a", "r"}

// Index metadata keys written by the index builder.
const (
	MetaBuildID        = "build_id"
	MetaBuiltAt        = "built_at"
	MetaFrequencyTotal = "frequency_total"
	// MetaRowsPrefix prefixes per-phase row counts, e.g. "rows.wordnet".
	MetaRowsPrefix = "rows."
)
