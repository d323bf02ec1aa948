package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	lexiconrepo "github.com/heartmarshall/vocab/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/vocab/internal/app"
	"github.com/heartmarshall/vocab/internal/app/seeder"
	"github.com/heartmarshall/vocab/internal/domain"
)

// Compile-time interface assertions.
var (
	_ seeder.LexiconBulkRepo = (*lexiconrepo.Repo)(nil)
	_ seeder.TxRunner        = (*sqlite.TxManager)(nil)
)

const indexBuildTimeout = 30 * time.Minute

type indexBuildOptions struct {
	configPath string
	wordnet    string
	frequency  string
	etymology  string
	phases     []string
	batchSize  int
	dryRun     bool
}

func newIndexCmd(s *streams, root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or inspect the offline lexicon index",
	}
	cmd.AddCommand(newIndexBuildCmd(s, root), newIndexStatusCmd(s, root))
	return cmd
}

func newIndexBuildCmd(s *streams, root *rootOptions) *cobra.Command {
	opts := &indexBuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the lexicon index from local datasets",
		Long: `Builds the SQLite lexicon index from downloaded datasets:

  --wordnet    Open English WordNet JSON directory (plus optional WNDB .exc files)
  --frequency  word,count CSV
  --etymology  Etymological WordNet TSV

Each phase replaces only its own tables, so phases can be rebuilt one at a
time with --phase.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexBuild(cmd.Context(), s, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "index-config", "", "path to index build YAML config")
	f.StringVar(&opts.wordnet, "wordnet", "", "Open English WordNet JSON directory")
	f.StringVar(&opts.frequency, "frequency", "", "word frequency CSV")
	f.StringVar(&opts.etymology, "etymology", "", "Etymological WordNet TSV")
	f.StringSliceVar(&opts.phases, "phase", nil, "phases to run: "+strings.Join(seeder.Phases(), ", ")+" (default: all)")
	f.IntVar(&opts.batchSize, "batch-size", 0, "rows per insert statement (default from config)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "parse datasets without writing to the index")
	return cmd
}

func runIndexBuild(ctx context.Context, s *streams, root *rootOptions, opts *indexBuildOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	scfg, err := seeder.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.configPath == "" {
		scfg.BatchSize = cfg.Lexicon.BatchSize
	}

	// Flags override config.
	if opts.wordnet != "" {
		scfg.WordNetPath = opts.wordnet
	}
	if opts.frequency != "" {
		scfg.FrequencyPath = opts.frequency
	}
	if opts.etymology != "" {
		scfg.EtymologyPath = opts.etymology
	}
	if opts.batchSize > 0 {
		scfg.BatchSize = opts.batchSize
	}
	if opts.dryRun {
		scfg.DryRun = true
	}
	if !scfg.HasSources() {
		return fmt.Errorf("no datasets given: use --wordnet, --frequency or --etymology")
	}

	ctx, cancel := context.WithTimeout(ctx, indexBuildTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, cfg.Lexicon.Path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline := seeder.NewPipeline(logger, lexiconrepo.New(db), sqlite.NewTxManager(db), *scfg)
	if err := pipeline.Run(ctx, opts.phases); err != nil {
		return err
	}

	results := pipeline.Results()
	for _, phase := range seeder.Phases() {
		r, ok := results[phase]
		if !ok {
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = "failed: " + r.Err.Error()
		}
		printf(s.out, "%-10s inserted=%d skipped=%d errors=%d %s  %s\n",
			phase, r.Inserted, r.Skipped, r.Errors, r.Duration.Round(time.Millisecond), status)
	}
	if !scfg.DryRun {
		printf(s.out, "index %s (build %s)\n", cfg.Lexicon.Path, pipeline.BuildID())
	}

	if pipeline.HasErrors() {
		logger.WarnContext(ctx, "index build completed with errors")
		return fmt.Errorf("index build completed with errors")
	}
	logger.InfoContext(ctx, "index build completed", slog.String("path", cfg.Lexicon.Path))
	return nil
}

func newIndexStatusCmd(s *streams, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the lexicon index contains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexStatus(cmd.Context(), s, root)
		},
	}
}

func runIndexStatus(ctx context.Context, s *streams, root *rootOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	db, err := sqlite.OpenReadOnly(ctx, cfg.Lexicon.Path)
	if err != nil {
		return fmt.Errorf("lexicon index %s: %w (run `vocab index build`)", cfg.Lexicon.Path, err)
	}
	defer db.Close()
	repo := lexiconrepo.New(db)

	meta, err := repo.AllMeta(ctx)
	if err != nil {
		return err
	}

	printf(s.out, "path       %s\n", cfg.Lexicon.Path)
	printf(s.out, "build      %s\n", orNone(meta[domain.MetaBuildID]))
	printf(s.out, "built at   %s\n", orNone(meta[domain.MetaBuiltAt]))
	if total := meta[domain.MetaFrequencyTotal]; total != "" {
		printf(s.out, "corpus     %s tokens\n", total)
	}

	for _, phase := range seeder.Phases() {
		if rows, ok := meta[domain.MetaRowsPrefix+phase]; ok {
			printf(s.out, "%-10s %s rows\n", phase, rows)
		}
	}

	printf(s.out, "\ntables\n")
	tables := slices.Clone(lexiconrepo.IndexTables)
	slices.Sort(tables)
	for _, table := range tables {
		n, err := repo.Count(ctx, table)
		if err != nil {
			return err
		}
		printf(s.out, "  %-16s %d\n", table, n)
	}
	return nil
}

func orNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
