package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/scan"
	"github.com/heartmarshall/vocab/internal/transport/render"
)

type scanOptions struct {
	maxZipf float64
	limit   int
	full    bool
}

func newScanCmd(s *streams, root *rootOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan URL",
		Short: "Look up the uncommon words of a web article",
		Long: `Fetches a web page, extracts its readable text and looks up every word
whose Zipf frequency is at or below --max-zipf, in order of appearance.
Requires an index built with --frequency.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), s, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.maxZipf, "max-zipf", scan.DefaultMaxZipf, "keep words at or below this Zipf score")
	f.IntVar(&opts.limit, "limit", scan.DefaultLimit, "maximum number of words")
	f.BoolVar(&opts.full, "full", false, "full entries instead of brief ones")
	return cmd
}

func runScan(ctx context.Context, s *streams, root *rootOptions, opts *scanOptions, rawURL string) error {
	a, err := newApp(ctx, root)
	if err != nil {
		return err
	}
	defer a.Close()

	svc := scan.NewService(a.Log, a.Articles, nil)
	if a.Frequency != nil {
		svc = scan.NewService(a.Log, a.Articles, a.Frequency)
	}

	res, err := svc.Scan(ctx, rawURL, scan.Options{MaxZipf: opts.maxZipf, Limit: opts.limit})
	if err != nil {
		return err
	}

	text := render.NewText(s.out, render.Options{Brief: !opts.full, NoColor: root.noColor})
	if res.Title != "" {
		printf(s.out, "%s\n", res.Title)
	}
	_ = text.Notice(fmt.Sprintf("Found %d uncommon word(s) among %d.", len(res.Words), res.Total))

	lopts, err := root.lookupOptions()
	if err != nil {
		return err
	}
	for _, w := range res.Words {
		rec, err := a.Lookup.Lookup(ctx, w.Text, lopts)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				continue
			}
			return err
		}
		if err := text.Render(rec); err != nil {
			return err
		}
	}
	return nil
}
