package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/lookup"
	"github.com/heartmarshall/vocab/internal/transport/render"
	"github.com/heartmarshall/vocab/internal/transport/shell"
)

type recordRenderer interface {
	Render(rec *domain.WordRecord) error
}

func runLookup(ctx context.Context, s *streams, opts *rootOptions, args []string) error {
	lopts, err := opts.lookupOptions()
	if err != nil {
		return err
	}

	errText := render.NewText(s.errOut, render.Options{NoColor: opts.noColor})
	inputErrors := 0

	words := append([]string(nil), args...)
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			_ = errText.Error("Error reading file: " + err.Error())
			inputErrors++
		} else {
			words = append(words, strings.Fields(string(data))...)
		}
	}
	if len(words) == 0 && inputErrors == 0 {
		if isTerminal(s.in) {
			return runShell(ctx, s, opts, lopts)
		}
		data, err := io.ReadAll(s.in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		words = strings.Fields(string(data))
	}
	if len(words) == 0 {
		if inputErrors > 0 {
			return errInputErrors
		}
		return nil
	}

	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Log.WarnContext(ctx, "close app", slog.String("error", err.Error()))
		}
	}()

	var out recordRenderer
	if opts.json {
		out = render.NewJSON(s.out)
	} else {
		out = render.NewText(s.out, render.Options{Brief: opts.brief, NoColor: opts.noColor})
	}

	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := a.Lookup.Lookup(ctx, strings.ToLower(w), lopts)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return err
			}
			_ = errText.Error(fmt.Sprintf("Invalid word %q", w))
			inputErrors++
			continue
		}
		if err := out.Render(rec); err != nil {
			return err
		}
	}

	if inputErrors > 0 {
		return errInputErrors
	}
	return nil
}

func runShell(ctx context.Context, s *streams, opts *rootOptions, lopts lookup.Options) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	history, err := shell.LoadHistory(a.Config.Shell.HistoryPath)
	if err != nil {
		a.Log.WarnContext(ctx, "history unavailable", slog.String("error", err.Error()))
		history = &shell.History{}
	}

	var terms *shell.Terms
	if a.Lexicon != nil {
		terms = shell.NewTerms(a.Log, a.Lexicon)
	} else {
		terms = shell.NewTerms(a.Log, nil)
	}

	cfg := shell.Config{
		Lookup:  a.Lookup,
		History: history,
		Terms:   terms,
		Text:    render.NewText(s.out, render.Options{Brief: opts.brief, NoColor: opts.noColor}),
		Options: lopts,
		Suggest: a.Config.Shell.Suggestions,
		Cutoff:  a.Config.Shell.SuggestCutoff,
	}
	if a.Cache != nil {
		cfg.Cache = a.Cache
	}

	session := shell.NewSession(a.Log, cfg)
	completer := shell.NewCompleter(terms, a.Config.Shell.MaxCompletions)
	return shell.Run(ctx, session, completer, s.in, s.out)
}
