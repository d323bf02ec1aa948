package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocab/internal/provider"
)

// call runs fn under the per-call timeout and classifies its result. Errors
// never escape: they are logged, counted and folded into the outcome.
func call[T any](ctx context.Context, s *Service, source, word string, fn func(context.Context) (*T, error)) provider.Outcome[T] {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	v, err := fn(callCtx)
	out := provider.NewOutcome(v, err)
	elapsed := time.Since(start)

	s.metrics.SourceCall(source, out.Status, elapsed)

	switch {
	case ctx.Err() != nil:
		s.log.DebugContext(ctx, "source call abandoned",
			slog.String("source", source),
			slog.String("word", word),
			slog.String("error", ctx.Err().Error()),
		)
	case out.Status == provider.StatusFailed, out.Status == provider.StatusTimedOut:
		s.log.WarnContext(ctx, "source unavailable",
			slog.String("source", source),
			slog.String("word", word),
			slog.String("status", out.Status.String()),
			slog.String("error", out.Err.Error()),
		)
	case out.Status == provider.StatusAbsent:
		s.log.DebugContext(ctx, "source has no data",
			slog.String("source", source),
			slog.String("word", word),
		)
	}
	return out
}

// lexicalMemo fetches the lexical result at most once per record. Several
// merge steps need it; whichever asks first triggers the call.
type lexicalMemo struct {
	s       *Service
	word    string
	fetched bool
	out     provider.Outcome[provider.LexicalResult]
}

func (m *lexicalMemo) get(ctx context.Context) *provider.LexicalResult {
	if m.s.src.Lexicon == nil {
		return nil
	}
	if !m.fetched {
		m.fetched = true
		m.out = call(ctx, m.s, SourceLexicon, m.word, func(ctx context.Context) (*provider.LexicalResult, error) {
			return m.s.src.Lexicon.Lookup(ctx, m.word)
		})
	}
	if !m.out.OK() {
		return nil
	}
	return m.out.Value
}
