// Package frequency turns raw corpus counts from the lexicon index into
// Zipf-scale frequency statistics.
package frequency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/heartmarshall/vocab/internal/domain"
)

// TotalKey is the index_meta key holding the corpus token total.
const TotalKey = domain.MetaFrequencyTotal

type frequencyRepo interface {
	FrequencyCount(ctx context.Context, word string) (int64, error)
	Meta(ctx context.Context, key string) (string, error)
}

// Service computes frequency statistics.
type Service struct {
	log  *slog.Logger
	repo frequencyRepo

	total int64
}

// NewService creates a new frequency service.
func NewService(logger *slog.Logger, repo frequencyRepo) *Service {
	return &Service{
		log:  logger.With("service", "frequency"),
		repo: repo,
	}
}

// Frequency returns the statistics for word. When the index carries no
// frequency table it returns nil, nil; words missing from a loaded table
// get zero metrics.
func (s *Service) Frequency(ctx context.Context, word string) (*domain.Frequency, error) {
	total, err := s.corpusTotal(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	count, err := s.repo.FrequencyCount(ctx, domain.NormalizeText(word))
	if err != nil {
		return nil, fmt.Errorf("frequency: count %q: %w", word, err)
	}

	f := Compute(count, total)
	return &f, nil
}

// Zipf returns only the Zipf score of word; ok is false when no frequency
// table is available.
func (s *Service) Zipf(ctx context.Context, word string) (zipf float64, ok bool, err error) {
	f, err := s.Frequency(ctx, word)
	if err != nil || f == nil {
		return 0, false, err
	}
	return f.Zipf, true, nil
}

// corpusTotal loads the token total once. A missing total or table means
// no frequency data was indexed.
func (s *Service) corpusTotal(ctx context.Context) (int64, error) {
	if s.total > 0 {
		return s.total, nil
	}

	raw, err := s.repo.Meta(ctx, TotalKey)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnavailable) {
		s.log.DebugContext(ctx, "no frequency table in index")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("frequency: load total: %w", err)
	}

	total, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("frequency: parse total %q: %w", raw, err)
	}
	if total < 0 {
		total = 0
	}
	s.total = total
	return total, nil
}

// Compute derives the Zipf score, occurrences per million and percentage
// for count occurrences out of total tokens.
func Compute(count, total int64) domain.Frequency {
	if count <= 0 || total <= 0 {
		return domain.Frequency{Label: domain.FrequencyLabel(0)}
	}

	ratio := float64(count) / float64(total)
	zipf := max(0, round(math.Log10(ratio*1e9), 2))
	return domain.Frequency{
		Zipf:       zipf,
		PerMillion: round(ratio*1e6, 2),
		Percentage: round(ratio*100, 6),
		Label:      domain.FrequencyLabel(zipf),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
