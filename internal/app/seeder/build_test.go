package seeder_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	"github.com/heartmarshall/vocab/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/vocab/internal/adapter/sqlite/testhelper"
	"github.com/heartmarshall/vocab/internal/app/seeder"
	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/frequency"
	lexsvc "github.com/heartmarshall/vocab/internal/service/lexicon"
)

// TestBuild_EndToEnd builds an index from the parser fixtures into a real
// database and reads it back through the lookup-side services.
func TestBuild_EndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testhelper.SetupTestDB(t)
	repo := lexicon.New(db)

	cfg := seeder.Config{
		WordNetPath:   "wordnet/testdata/oewn",
		FrequencyPath: "frequency/testdata/counts.csv",
		EtymologyPath: "etymwn/testdata/etymwn.tsv",
		BatchSize:     3,
	}

	p := seeder.NewPipeline(discardLogger(), repo, sqlite.NewTxManager(db), cfg)
	require.NoError(t, p.Run(ctx, nil))
	require.False(t, p.HasErrors(), "phase results: %+v", p.Results())

	meta, err := repo.AllMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.BuildID().String(), meta[domain.MetaBuildID])
	assert.Equal(t, "6500", meta[domain.MetaFrequencyTotal])
	assert.Equal(t, "4", meta[domain.MetaRowsPrefix+seeder.PhaseEtymology])

	lex := lexsvc.NewService(discardLogger(), repo)

	res, err := lex.Lookup(ctx, "fast")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"Quick"}, res.Synonyms)
	assert.Equal(t, []string{"slow"}, res.Antonyms)
	assert.Contains(t, res.BriefGloss, "quickly or rapidly")

	base, err := lex.Lemmatize(ctx, "ran")
	require.NoError(t, err)
	assert.Equal(t, "run", base)

	roots, err := lex.RootWords(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"*rinnaną (Proto-Germanic)", "rinnan (Old English)", "rinnen (Middle English)"}, roots)

	freq, err := frequency.NewService(discardLogger(), repo).Frequency(ctx, "the")
	require.NoError(t, err)
	require.NotNil(t, freq)
	assert.Equal(t, "very common", freq.Label)

	// A rebuild replaces rows instead of accumulating them.
	p2 := seeder.NewPipeline(discardLogger(), repo, sqlite.NewTxManager(db), cfg)
	require.NoError(t, p2.Run(ctx, []string{seeder.PhaseWordNet}))
	n, err := repo.Count(ctx, "synsets")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	assert.NotEqual(t, p.BuildID(), p2.BuildID())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
