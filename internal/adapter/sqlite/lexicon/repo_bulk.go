package lexicon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	"github.com/heartmarshall/vocab/internal/domain"
)

// ---------------------------------------------------------------------------
// Bulk write methods used by the index builder. Each call issues one
// multi-row INSERT OR IGNORE; callers batch the input.
// ---------------------------------------------------------------------------

// BulkInsertSynsets inserts synsets and their members.
// Returns the number of inserted synsets.
func (r *Repo) BulkInsertSynsets(ctx context.Context, synsets []domain.Synset) (int, error) {
	if len(synsets) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("synsets").Options("OR IGNORE").Columns("id", "pos", "definition")
	members := sqlite.Builder.Insert("synset_members").Options("OR IGNORE").Columns("synset_id", "member", "position")
	hasMembers := false
	for _, s := range synsets {
		ins = ins.Values(s.ID, s.POS, s.Definition)
		for i, m := range s.Members {
			members = members.Values(s.ID, m, i)
			hasMembers = true
		}
	}

	n, err := r.exec(ctx, ins, "synsets")
	if err != nil {
		return 0, err
	}
	if hasMembers {
		if _, err := r.exec(ctx, members, "synset_members"); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// BulkInsertLemmaSenses inserts lemma→synset links.
func (r *Repo) BulkInsertLemmaSenses(ctx context.Context, senses []domain.LemmaSense) (int, error) {
	if len(senses) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("lemmas").Options("OR IGNORE").Columns("lemma", "pos", "synset_id", "sense_rank")
	for _, s := range senses {
		ins = ins.Values(s.Lemma, domain.CoarsePOS(s.POS), s.SynsetID, s.Rank)
	}
	return r.exec(ctx, ins, "lemmas")
}

// BulkInsertAntonyms inserts antonym pairs.
func (r *Repo) BulkInsertAntonyms(ctx context.Context, antonyms []domain.Antonym) (int, error) {
	if len(antonyms) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("antonyms").Options("OR IGNORE").Columns("synset_id", "member", "antonym")
	for _, a := range antonyms {
		ins = ins.Values(a.SynsetID, a.Member, a.Antonym)
	}
	return r.exec(ctx, ins, "antonyms")
}

// BulkInsertExceptions inserts morphological exceptions.
func (r *Repo) BulkInsertExceptions(ctx context.Context, exceptions []domain.MorphException) (int, error) {
	if len(exceptions) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("exceptions").Options("OR IGNORE").Columns("inflected", "pos", "base")
	for _, e := range exceptions {
		ins = ins.Values(e.Inflected, domain.CoarsePOS(e.POS), e.Base)
	}
	return r.exec(ctx, ins, "exceptions")
}

// BulkInsertFrequencies upserts word counts; a repeated word keeps the larger count.
func (r *Repo) BulkInsertFrequencies(ctx context.Context, freqs []domain.WordFrequency) (int, error) {
	if len(freqs) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("frequencies").Columns("word", "count").
		Suffix("ON CONFLICT (word) DO UPDATE SET count = MAX(count, excluded.count)")
	for _, f := range freqs {
		ins = ins.Values(f.Word, f.Count)
	}
	return r.exec(ctx, ins, "frequencies")
}

// BulkInsertEtymologyLinks inserts derivation edges.
func (r *Repo) BulkInsertEtymologyLinks(ctx context.Context, links []domain.EtymologyLink) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	ins := sqlite.Builder.Insert("etymology_links").Options("OR IGNORE").
		Columns("lang", "word", "origin_lang", "origin_word")
	for _, l := range links {
		ins = ins.Values(l.Lang, l.Word, l.OriginLang, l.OriginWord)
	}
	return r.exec(ctx, ins, "etymology_links")
}

// SetMeta upserts an index_meta key.
func (r *Repo) SetMeta(ctx context.Context, key, value string) error {
	ins := sqlite.Builder.Insert("index_meta").Columns("key", "value").Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value")
	_, err := r.exec(ctx, ins, "index_meta")
	return err
}

// Truncate deletes every row from the given index tables.
func (r *Repo) Truncate(ctx context.Context, tables ...string) error {
	for _, t := range tables {
		if !isIndexTable(t) {
			return fmt.Errorf("truncate: unknown table %q", t)
		}
		query, args, err := sqlite.Builder.Delete(t).ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return sqlite.MapError(err, "truncate", t)
		}
	}
	return nil
}

func (r *Repo) exec(ctx context.Context, b sq.Sqlizer, table string) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", table, err)
	}

	res, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlite.MapError(err, "insert", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected %s: %w", table, err)
	}
	return int(n), nil
}
