// Package lexicon implements the offline lexical database on top of the
// lexicon index: WordNet lookup, lemmatization, root-word chains and the
// term list used for completion.
package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/provider"
)

type lexiconRepo interface {
	SynsetIDs(ctx context.Context, lemma, pos string) ([]string, error)
	HasLemma(ctx context.Context, lemma, pos string) (bool, error)
	Exceptions(ctx context.Context, inflected, pos string) ([]string, error)
	Synsets(ctx context.Context, ids []string) (map[string]domain.Synset, error)
	Antonyms(ctx context.Context, synsetIDs []string) ([]domain.Antonym, error)
	AllLemmas(ctx context.Context) ([]string, error)
	Origins(ctx context.Context, lang, word string) ([]domain.EtymologyLink, error)
}

// Service answers lexical questions from the local index.
type Service struct {
	log  *slog.Logger
	repo lexiconRepo
}

// NewService creates a new lexicon service.
func NewService(logger *slog.Logger, repo lexiconRepo) *Service {
	return &Service{
		log:  logger.With("service", "lexicon"),
		repo: repo,
	}
}

func lemmaKey(word string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), "_", " ")
}

// synsets resolves word to its synsets: for each part of speech in
// noun/verb/adjective/adverb order, every morphy form's senses in rank order.
func (s *Service) synsets(ctx context.Context, word string) ([]domain.Synset, error) {
	key := lemmaKey(word)
	if key == "" {
		return nil, nil
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, pos := range domain.MorphyPOS {
		forms, err := s.morphy(ctx, key, pos)
		if err != nil {
			return nil, fmt.Errorf("morphy %s/%s: %w", key, pos, err)
		}
		for _, form := range forms {
			formIDs, err := s.repo.SynsetIDs(ctx, form, pos)
			if err != nil {
				return nil, fmt.Errorf("synsets of %s/%s: %w", form, pos, err)
			}
			for _, id := range formIDs {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	byID, err := s.repo.Synsets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load synsets: %w", err)
	}

	out := make([]domain.Synset, 0, len(ids))
	for _, id := range ids {
		if ss, ok := byID[id]; ok {
			out = append(out, ss)
		}
	}
	return out, nil
}

// Lookup returns definitions, synonyms, antonyms and the brief gloss for word.
// A word with no synsets yields nil, nil.
func (s *Service) Lookup(ctx context.Context, word string) (*provider.LexicalResult, error) {
	synsets, err := s.synsets(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lexicon: lookup %q: %w", word, err)
	}
	if len(synsets) == 0 {
		return nil, nil
	}

	result := &provider.LexicalResult{Definitions: domain.Definitions{}}
	synonyms := make(map[string]struct{})
	ids := make([]string, 0, len(synsets))
	lowerWord := strings.ToLower(word)

	for _, ss := range synsets {
		ids = append(ids, ss.ID)
		if ss.Definition != "" {
			result.Definitions.Add(domain.ParsePartOfSpeech(ss.POS), ss.Definition)
		}
		for _, m := range ss.Members {
			name := strings.ReplaceAll(m, "_", " ")
			if strings.ToLower(name) != lowerWord {
				synonyms[name] = struct{}{}
			}
		}
	}

	antonymRows, err := s.repo.Antonyms(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lexicon: antonyms %q: %w", word, err)
	}
	antonyms := make(map[string]struct{}, len(antonymRows))
	for _, a := range antonymRows {
		antonyms[strings.ReplaceAll(a.Antonym, "_", " ")] = struct{}{}
	}

	result.Synonyms = sortedSet(synonyms)
	result.Antonyms = sortedSet(antonyms)
	result.BriefGloss = briefGloss(synsets)

	s.log.DebugContext(ctx, "lexicon lookup",
		slog.String("word", word),
		slog.Int("synsets", len(synsets)),
	)

	return result, nil
}

// briefGloss picks one short gloss per coarse part of speech in synset order.
func briefGloss(synsets []domain.Synset) string {
	labels := map[string]string{"n": "noun", "v": "verb", "a": "adj", "s": "adj", "r": "adv"}
	var order []string
	picked := make(map[string]string)

	for _, ss := range synsets {
		label, ok := labels[ss.POS]
		if !ok {
			label = ss.POS
		}
		if _, done := picked[label]; done {
			continue
		}
		if len([]rune(ss.Definition)) < 3 {
			continue
		}
		picked[label] = domain.ShortGloss(ss.Definition)
		order = append(order, label)
	}

	parts := make([]string, 0, len(order))
	for _, label := range order {
		parts = append(parts, picked[label])
	}
	return strings.Join(parts, " / ")
}

// Lemmatize returns the base form of an inflected word, or "" when word is
// already a base form. Each part of speech proposes its shortest morphy
// lemma; among proposals that differ from word the one with the most senses
// wins, ties going to the earliest part of speech.
func (s *Service) Lemmatize(ctx context.Context, word string) (string, error) {
	key := lemmaKey(word)
	if key == "" {
		return "", nil
	}

	var bases []string
	for _, pos := range domain.MorphyPOS {
		forms, err := s.morphy(ctx, key, pos)
		if err != nil {
			return "", fmt.Errorf("lexicon: lemmatize %q: %w", word, err)
		}
		if len(forms) == 0 {
			continue
		}
		if lemma := shortest(forms); lemma != key && !slices.Contains(bases, lemma) {
			bases = append(bases, lemma)
		}
	}
	if len(bases) == 0 {
		return "", nil
	}

	best, bestCount := "", -1
	for _, b := range bases {
		synsets, err := s.synsets(ctx, b)
		if err != nil {
			return "", fmt.Errorf("lexicon: lemmatize %q: %w", word, err)
		}
		if len(synsets) > bestCount {
			best, bestCount = b, len(synsets)
		}
	}
	return best, nil
}

// AllTerms returns every lemma in the index, sorted.
func (s *Service) AllTerms(ctx context.Context) ([]string, error) {
	terms, err := s.repo.AllLemmas(ctx)
	if err != nil {
		return nil, fmt.Errorf("lexicon: all terms: %w", err)
	}
	return terms, nil
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
