package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab/internal/app/seeder/etymwn"
	"github.com/heartmarshall/vocab/internal/app/seeder/frequency"
	"github.com/heartmarshall/vocab/internal/app/seeder/wordnet"
	"github.com/heartmarshall/vocab/internal/domain"
)

// Phase names.
const (
	PhaseWordNet   = "wordnet"
	PhaseFrequency = "frequency"
	PhaseEtymology = "etymology"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseWordNet, PhaseFrequency, PhaseEtymology}

// phaseTables lists the tables each phase replaces, children first.
var phaseTables = map[string][]string{
	PhaseWordNet:   {"synset_members", "lemmas", "antonyms", "exceptions", "synsets"},
	PhaseFrequency: {"frequencies"},
	PhaseEtymology: {"etymology_links"},
}

// Phases returns the phase names in execution order.
func Phases() []string {
	return slices.Clone(allPhases)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the index build.
type Pipeline struct {
	log     *slog.Logger
	repo    LexiconBulkRepo
	tx      TxRunner
	cfg     Config
	results map[string]PhaseResult
	buildID uuid.UUID
	now     func() time.Time
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo LexiconBulkRepo, tx TxRunner, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log.With("service", "index_builder"),
		repo:    repo,
		tx:      tx,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
		now:     time.Now,
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// BuildID returns the id recorded by the last Run.
func (p *Pipeline) BuildID() uuid.UUID {
	return p.buildID
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run, still in canonical order. Phase failures are recorded in Results;
// only invalid input or a failure to record build metadata is returned.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	p.buildID = uuid.New()
	p.log.InfoContext(ctx, "index build started",
		slog.String("build_id", p.buildID.String()),
		slog.String("phases", strings.Join(toRun, ",")),
		slog.Bool("dry_run", p.cfg.DryRun),
	)

	for _, phase := range toRun {
		start := time.Now()
		p.log.InfoContext(ctx, "starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseWordNet:
			result = p.runWordNet(ctx)
		case PhaseFrequency:
			result = p.runFrequency(ctx)
		case PhaseEtymology:
			result = p.runEtymology(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.WarnContext(ctx, "phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.InfoContext(ctx, "phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	if p.cfg.DryRun {
		return nil
	}

	if err := p.writeMeta(ctx, toRun); err != nil {
		return fmt.Errorf("write index meta: %w", err)
	}

	p.log.InfoContext(ctx, "index build completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}

	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		ph = strings.ToLower(strings.TrimSpace(ph))
		if !slices.Contains(allPhases, ph) {
			return nil, domain.NewValidationError("phase", fmt.Sprintf("unknown phase %q (want one of %s)", ph, strings.Join(allPhases, ", ")))
		}
		filter[ph] = true
	}

	var filtered []string
	for _, ph := range allPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}

// writeMeta stamps the build id, time and row counts of the phases that
// completed. Skipped and failed phases leave their previous counts.
func (p *Pipeline) writeMeta(ctx context.Context, phases []string) error {
	return p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.SetMeta(ctx, domain.MetaBuildID, p.buildID.String()); err != nil {
			return err
		}
		if err := p.repo.SetMeta(ctx, domain.MetaBuiltAt, p.now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
		for _, phase := range phases {
			r := p.results[phase]
			if r.Err != nil || r.Inserted == 0 && r.Skipped > 0 {
				continue
			}
			if err := p.repo.SetMeta(ctx, domain.MetaRowsPrefix+phase, strconv.Itoa(r.Inserted)); err != nil {
				return err
			}
		}
		return nil
	})
}

// runWordNet parses OEWN and replaces synsets, senses, antonyms and exceptions.
func (p *Pipeline) runWordNet(ctx context.Context) PhaseResult {
	if p.cfg.WordNetPath == "" {
		p.log.InfoContext(ctx, "phase not configured", slog.String("phase", PhaseWordNet))
		return PhaseResult{Skipped: 1}
	}

	parsed, err := wordnet.Parse(p.cfg.WordNetPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse wordnet: %w", err)}
	}
	p.log.InfoContext(ctx, "wordnet parsed",
		slog.Int("synsets", parsed.Stats.TotalSynsets),
		slog.Int("senses", parsed.Stats.TotalSenses),
		slog.Int("antonyms", len(parsed.Antonyms)),
		slog.Int("exceptions", len(parsed.Exceptions)),
		slog.Int("dangling_senses", parsed.Stats.DanglingSenses),
	)

	dropped := parsed.Stats.DanglingSenses + parsed.Stats.UnresolvedAntons
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(parsed.Synsets) + len(parsed.Senses) + len(parsed.Antonyms) + len(parsed.Exceptions)}
	}

	var result PhaseResult
	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.Truncate(ctx, phaseTables[PhaseWordNet]...); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		inserted, err := batchProcess(parsed.Synsets, p.cfg.BatchSize, func(batch []domain.Synset) (int, error) {
			return p.repo.BulkInsertSynsets(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert synsets: %w", err)
		}
		result.Inserted += inserted

		inserted, err = batchProcess(parsed.Senses, p.cfg.BatchSize, func(batch []domain.LemmaSense) (int, error) {
			return p.repo.BulkInsertLemmaSenses(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert lemma senses: %w", err)
		}
		result.Inserted += inserted

		inserted, err = batchProcess(parsed.Antonyms, p.cfg.BatchSize, func(batch []domain.Antonym) (int, error) {
			return p.repo.BulkInsertAntonyms(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert antonyms: %w", err)
		}
		result.Inserted += inserted

		inserted, err = batchProcess(parsed.Exceptions, p.cfg.BatchSize, func(batch []domain.MorphException) (int, error) {
			return p.repo.BulkInsertExceptions(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert exceptions: %w", err)
		}
		result.Inserted += inserted
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}

	result.Skipped = dropped
	return result
}

// runFrequency parses the frequency CSV and replaces the frequency table and total.
func (p *Pipeline) runFrequency(ctx context.Context) PhaseResult {
	if p.cfg.FrequencyPath == "" {
		p.log.InfoContext(ctx, "phase not configured", slog.String("phase", PhaseFrequency))
		return PhaseResult{Skipped: 1}
	}

	parsed, err := frequency.Parse(p.cfg.FrequencyPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse frequency: %w", err)}
	}
	p.log.InfoContext(ctx, "frequency parsed",
		slog.Int("words", len(parsed.Frequencies)),
		slog.Int64("total", parsed.Total),
		slog.Int("invalid", parsed.Stats.Invalid),
	)

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(parsed.Frequencies)}
	}
	if parsed.Total <= 0 {
		return PhaseResult{Err: fmt.Errorf("frequency: %s holds no counts", p.cfg.FrequencyPath)}
	}

	var inserted int
	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.Truncate(ctx, phaseTables[PhaseFrequency]...); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		n, err := batchProcess(parsed.Frequencies, p.cfg.BatchSize, func(batch []domain.WordFrequency) (int, error) {
			return p.repo.BulkInsertFrequencies(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert frequencies: %w", err)
		}
		inserted = n

		return p.repo.SetMeta(ctx, domain.MetaFrequencyTotal, strconv.FormatInt(parsed.Total, 10))
	})
	if err != nil {
		return PhaseResult{Err: err}
	}

	return PhaseResult{Inserted: inserted, Skipped: parsed.Stats.Invalid}
}

// runEtymology parses Etymological WordNet and replaces the derivation edges.
func (p *Pipeline) runEtymology(ctx context.Context) PhaseResult {
	if p.cfg.EtymologyPath == "" {
		p.log.InfoContext(ctx, "phase not configured", slog.String("phase", PhaseEtymology))
		return PhaseResult{Skipped: 1}
	}

	parsed, err := etymwn.Parse(p.cfg.EtymologyPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse etymology: %w", err)}
	}
	p.log.InfoContext(ctx, "etymology parsed",
		slog.Int("links", len(parsed.Links)),
		slog.Int("total_lines", parsed.Stats.TotalLines),
		slog.Int("malformed", parsed.Stats.Malformed),
	)

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(parsed.Links)}
	}

	var inserted int
	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.repo.Truncate(ctx, phaseTables[PhaseEtymology]...); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		n, err := batchProcess(parsed.Links, p.cfg.BatchSize, func(batch []domain.EtymologyLink) (int, error) {
			return p.repo.BulkInsertEtymologyLinks(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert etymology links: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}

	return PhaseResult{Inserted: inserted, Skipped: parsed.Stats.Malformed}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
