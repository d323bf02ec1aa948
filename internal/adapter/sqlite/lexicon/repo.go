// Package lexicon is the SQLite repository behind the offline lexical index:
// WordNet senses, morphological exceptions, frequencies and etymology links.
package lexicon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	"github.com/heartmarshall/vocab/internal/domain"
)

// Index metadata keys.
const (
	MetaBuildID        = domain.MetaBuildID
	MetaBuiltAt        = domain.MetaBuiltAt
	MetaFrequencyTotal = domain.MetaFrequencyTotal
)

// Repo provides lexicon index persistence.
type Repo struct {
	db *sql.DB
}

// New creates a new lexicon repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// SynsetIDs returns the synsets of lemma within pos, in sense order.
// pos "a" covers satellite adjectives as well.
func (r *Repo) SynsetIDs(ctx context.Context, lemma, pos string) ([]string, error) {
	query := sqlite.Builder.
		Select("synset_id").
		From("lemmas").
		Where(sq.Eq{"lemma": lemma, "pos": domain.CoarsePOS(pos)}).
		OrderBy("sense_rank ASC")

	return r.selectStrings(ctx, query, "lemma", lemma)
}

// HasLemma reports whether lemma exists with the given part of speech.
func (r *Repo) HasLemma(ctx context.Context, lemma, pos string) (bool, error) {
	query, args, err := sqlite.Builder.
		Select("1").
		From("lemmas").
		Where(sq.Eq{"lemma": lemma, "pos": domain.CoarsePOS(pos)}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, sqlite.MapError(err, "lemma", lemma)
	}
	return true, nil
}

// Exceptions returns the irregular base forms listed for an inflected form.
func (r *Repo) Exceptions(ctx context.Context, inflected, pos string) ([]string, error) {
	query := sqlite.Builder.
		Select("base").
		From("exceptions").
		Where(sq.Eq{"inflected": inflected, "pos": domain.CoarsePOS(pos)}).
		OrderBy("rowid ASC")

	return r.selectStrings(ctx, query, "exception", inflected)
}

// Synsets loads synsets with their members, keyed by ID.
func (r *Repo) Synsets(ctx context.Context, ids []string) (map[string]domain.Synset, error) {
	result := make(map[string]domain.Synset, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder.
		Select("id", "pos", "definition").
		From("synsets").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "synsets", fmt.Sprint(len(ids)))
	}
	for rows.Next() {
		var s domain.Synset
		if err := rows.Scan(&s.ID, &s.POS, &s.Definition); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan synset: %w", err)
		}
		result[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "synsets", fmt.Sprint(len(ids)))
	}

	query, args, err = sqlite.Builder.
		Select("synset_id", "member").
		From("synset_members").
		Where(sq.Eq{"synset_id": ids}).
		OrderBy("synset_id", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err = q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "synset_members", fmt.Sprint(len(ids)))
	}
	defer rows.Close()
	for rows.Next() {
		var id, member string
		if err := rows.Scan(&id, &member); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		if s, ok := result[id]; ok {
			s.Members = append(s.Members, member)
			result[id] = s
		}
	}
	return result, rows.Err()
}

// Antonyms returns antonym pairs for the given synsets.
func (r *Repo) Antonyms(ctx context.Context, synsetIDs []string) ([]domain.Antonym, error) {
	if len(synsetIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlite.Builder.
		Select("synset_id", "member", "antonym").
		From("antonyms").
		Where(sq.Eq{"synset_id": synsetIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "antonyms", fmt.Sprint(len(synsetIDs)))
	}
	defer rows.Close()

	var out []domain.Antonym
	for rows.Next() {
		var a domain.Antonym
		if err := rows.Scan(&a.SynsetID, &a.Member, &a.Antonym); err != nil {
			return nil, fmt.Errorf("scan antonym: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AllLemmas returns every distinct lemma, sorted.
func (r *Repo) AllLemmas(ctx context.Context) ([]string, error) {
	query := sqlite.Builder.
		Select("DISTINCT lemma").
		From("lemmas").
		OrderBy("lemma ASC")

	return r.selectStrings(ctx, query, "lemmas", "*")
}

// FrequencyCount returns the raw count for word; an unknown word counts 0.
func (r *Repo) FrequencyCount(ctx context.Context, word string) (int64, error) {
	query, args, err := sqlite.Builder.
		Select("count").
		From("frequencies").
		Where(sq.Eq{"word": word}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	err = sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, sqlite.MapError(err, "frequency", word)
	}
	return count, nil
}

// Origins returns the direct etymological origins of word in lang.
func (r *Repo) Origins(ctx context.Context, lang, word string) ([]domain.EtymologyLink, error) {
	query, args, err := sqlite.Builder.
		Select("lang", "word", "origin_lang", "origin_word").
		From("etymology_links").
		Where(sq.Eq{"lang": lang, "word": word}).
		OrderBy("rowid ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "etymology", lang+":"+word)
	}
	defer rows.Close()

	var out []domain.EtymologyLink
	for rows.Next() {
		var l domain.EtymologyLink
		if err := rows.Scan(&l.Lang, &l.Word, &l.OriginLang, &l.OriginWord); err != nil {
			return nil, fmt.Errorf("scan etymology link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Meta returns an index_meta value; missing keys yield domain.ErrNotFound.
func (r *Repo) Meta(ctx context.Context, key string) (string, error) {
	query, args, err := sqlite.Builder.
		Select("value").
		From("index_meta").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var value string
	if err := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return "", sqlite.MapError(err, "meta", key)
	}
	return value, nil
}

// AllMeta returns every index_meta pair.
func (r *Repo) AllMeta(ctx context.Context) (map[string]string, error) {
	query, args, err := sqlite.Builder.Select("key", "value").From("index_meta").OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "meta", "*")
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meta: %w", err)
	}
	return out, nil
}

// Count returns the number of rows in one of the index tables.
func (r *Repo) Count(ctx context.Context, table string) (int64, error) {
	if !isIndexTable(table) {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}

	query, args, err := sqlite.Builder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int64
	if err := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, sqlite.MapError(err, "count", table)
	}
	return n, nil
}

func (r *Repo) selectStrings(ctx context.Context, b sq.SelectBuilder, entity, key string) ([]string, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, entity, key)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan %s: %w", entity, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, entity, key)
	}
	return out, nil
}

// IndexTables lists the tables a full rebuild replaces, children first.
var IndexTables = []string{
	"synset_members", "lemmas", "antonyms", "exceptions", "synsets",
	"frequencies", "etymology_links", "index_meta",
}

func isIndexTable(name string) bool {
	return slices.Contains(IndexTables, name)
}
