// Package seeder builds the lexicon index from offline datasets.
package seeder

import (
	"context"

	"github.com/heartmarshall/vocab/internal/domain"
)

// LexiconBulkRepo defines the batch repository contract consumed by the index pipeline.
// All methods use only domain types.
// Implemented by lexicon.Repo.
type LexiconBulkRepo interface {
	// Batch inserts skip duplicates; frequencies keep the larger count.
	BulkInsertSynsets(ctx context.Context, synsets []domain.Synset) (int, error)
	BulkInsertLemmaSenses(ctx context.Context, senses []domain.LemmaSense) (int, error)
	BulkInsertAntonyms(ctx context.Context, antonyms []domain.Antonym) (int, error)
	BulkInsertExceptions(ctx context.Context, exceptions []domain.MorphException) (int, error)
	BulkInsertFrequencies(ctx context.Context, freqs []domain.WordFrequency) (int, error)
	BulkInsertEtymologyLinks(ctx context.Context, links []domain.EtymologyLink) (int, error)

	// Rebuild support.
	Truncate(ctx context.Context, tables ...string) error
	SetMeta(ctx context.Context, key, value string) error
}

// TxRunner runs fn inside one transaction carried by ctx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
