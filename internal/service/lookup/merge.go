package lookup

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/provider"
)

func (s *Service) lookup(ctx context.Context, word string, opts Options, depth int) *domain.WordRecord {
	start := time.Now()
	defer func() { s.metrics.Lookup(time.Since(start)) }()

	useCache := s.cache != nil && !opts.NoCache
	if useCache {
		cached, ok := s.cache.Get(ctx, word)
		s.metrics.CacheLookup(ok)
		if ok {
			return cached
		}
	}

	rec := domain.NewWordRecord(word)
	want := opts.Sections
	lex := &lexicalMemo{s: s, word: word}

	if want.Has(domain.SectionFrequency) {
		rec.Frequency = s.frequency(ctx, word)
	}

	var dict *provider.DictionaryResult
	if !opts.Offline && (want.Has(domain.SectionDefinitions) || want.Has(domain.SectionSynonyms)) {
		dict = s.dictionary(ctx, word)
	}

	// The lexical brief gloss is wanted whichever source supplies the
	// definitions, so the lexicon is always consulted.
	if lexical := lex.get(ctx); lexical != nil {
		rec.BriefDefinition = lexical.BriefGloss
	}

	if want.Has(domain.SectionDefinitions) {
		switch lexical := lex.get(ctx); {
		case dict != nil:
			rec.Phonetic = dict.Phonetic
			rec.Definitions = cloneDefinitions(dict.Definitions)
		case lexical != nil:
			rec.Definitions = cloneDefinitions(lexical.Definitions)
		}
	}
	if rec.BriefDefinition == "" {
		rec.BriefDefinition = domain.TruncateGloss(rec.Definitions.First(), domain.DefaultBriefWords)
	}

	if want.Has(domain.SectionSynonyms) {
		synonyms := make(map[string]struct{})
		antonyms := make(map[string]struct{})
		if dict != nil {
			addTerms(synonyms, word, dict.Synonyms)
			addTerms(antonyms, word, dict.Antonyms)
		}
		if lexical := lex.get(ctx); lexical != nil {
			addTerms(synonyms, word, lexical.Synonyms)
			addTerms(antonyms, word, lexical.Antonyms)
		}
		rec.Synonyms = sortedTerms(synonyms)
		rec.Antonyms = sortedTerms(antonyms)
	}

	if want.Has(domain.SectionEtymology) {
		if !opts.Offline {
			if ety := s.etymology(ctx, word); ety != nil {
				rec.EtymologyText = ety.EtymologyText
				if ety.RelatedWords != nil {
					rec.RelatedWords = slices.Clone(ety.RelatedWords)
				}
			}
		}
		rec.RootWords = s.rootWords(ctx, word)
	}

	if base := s.lemmatize(ctx, word); base != "" && base != word {
		rec.BaseWord = base
		if ctx.Err() != nil {
			return rec
		}
		if depth+1 < s.cfg.MaxDepth {
			rec.BaseRecord = s.lookup(ctx, base, opts, depth+1)
		} else {
			s.log.DebugContext(ctx, "base-form recursion capped",
				slog.String("word", word),
				slog.String("base", base),
				slog.Int("depth", depth),
			)
		}
	}

	// A cancelled run has lost sources to the cancellation, not to absence.
	if ctx.Err() != nil {
		return rec
	}
	if useCache && opts.Sections.All() {
		s.cache.Set(ctx, word, rec)
	}
	return rec
}

func (s *Service) frequency(ctx context.Context, word string) *domain.Frequency {
	if s.src.Frequency == nil {
		return nil
	}
	out := call(ctx, s, SourceFrequency, word, func(ctx context.Context) (*domain.Frequency, error) {
		return s.src.Frequency.Frequency(ctx, word)
	})
	if !out.OK() {
		return nil
	}
	f := *out.Value
	return &f
}

func (s *Service) dictionary(ctx context.Context, word string) *provider.DictionaryResult {
	if s.src.Dictionary == nil {
		return nil
	}
	out := call(ctx, s, SourceDictionary, word, func(ctx context.Context) (*provider.DictionaryResult, error) {
		return s.src.Dictionary.FetchEntry(ctx, word)
	})
	if !out.OK() {
		return nil
	}
	return out.Value
}

func (s *Service) etymology(ctx context.Context, word string) *provider.EtymologyResult {
	if s.src.Etymology == nil {
		return nil
	}
	out := call(ctx, s, SourceEtymology, word, func(ctx context.Context) (*provider.EtymologyResult, error) {
		return s.src.Etymology.FetchEtymology(ctx, word)
	})
	if !out.OK() {
		return nil
	}
	return out.Value
}

func (s *Service) rootWords(ctx context.Context, word string) []string {
	if s.src.Lexicon == nil {
		return []string{}
	}
	out := call(ctx, s, SourceRoots, word, func(ctx context.Context) (*[]string, error) {
		roots, err := s.src.Lexicon.RootWords(ctx, word)
		if err != nil || len(roots) == 0 {
			return nil, err
		}
		return &roots, nil
	})
	if !out.OK() {
		return []string{}
	}
	return slices.Clone(*out.Value)
}

func (s *Service) lemmatize(ctx context.Context, word string) string {
	if s.src.Lexicon == nil {
		return ""
	}
	out := call(ctx, s, SourceLemmatizer, word, func(ctx context.Context) (*string, error) {
		base, err := s.src.Lexicon.Lemmatize(ctx, word)
		if err != nil || base == "" {
			return nil, err
		}
		return &base, nil
	})
	if !out.OK() {
		return ""
	}
	return domain.NormalizeText(*out.Value)
}

// addTerms inserts terms into set, skipping blanks and the query word itself
// (case-insensitively).
func addTerms(set map[string]struct{}, word string, terms []string) {
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || strings.EqualFold(t, word) {
			continue
		}
		set[t] = struct{}{}
	}
}

func sortedTerms(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// cloneDefinitions copies d so the record never aliases source data.
func cloneDefinitions(d domain.Definitions) domain.Definitions {
	out := make(domain.Definitions, 0, len(d))
	for _, g := range d {
		out = append(out, domain.DefinitionGroup{
			PartOfSpeech: g.PartOfSpeech,
			Glosses:      slices.Clone(g.Glosses),
		})
	}
	return out
}
