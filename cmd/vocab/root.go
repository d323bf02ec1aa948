package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab/internal/app"
	"github.com/heartmarshall/vocab/internal/config"
	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/lookup"
)

// errInputErrors marks a run where some inputs were rejected. Each one has
// already been reported.
var errInputErrors = errors.New("some inputs could not be looked up")

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	file       string
	brief      bool
	json       bool
	sections   []string
	offline    bool
	noCache    bool
	noColor    bool
	cacheDir   string
	verbose    bool
}

func newRootCmd(s *streams) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vocab [words...]",
		Short: "Look up words: definitions, frequency, etymology, synonyms and more",
		Long: `vocab merges an offline WordNet index, dictionaryapi.dev, Wiktionary and a
word-frequency table into one entry per word.

Words are read from the arguments, then --file, then stdin when it is not a
terminal. With no words at all vocab starts an interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), s, opts, args)
		},
	}
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config file (default $XDG_CONFIG_HOME/vocab/config.yaml)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	pf.StringVar(&opts.cacheDir, "cache-dir", "", "custom cache directory")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&opts.offline, "offline", false, "skip network sources")
	pf.BoolVar(&opts.noCache, "no-cache", false, "bypass the record cache")

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "read words from file")
	f.BoolVarP(&opts.brief, "brief", "b", false, "brief definition only")
	f.BoolVarP(&opts.json, "json", "j", false, "JSON output")
	f.StringSliceVarP(&opts.sections, "sections", "s", nil, "show only these sections: def, freq, syn, ety")

	cmd.AddCommand(
		newIndexCmd(s, opts),
		newCacheCmd(s, opts),
		newScanCmd(s, opts),
		newVersionCmd(s),
	)
	return cmd
}

// loadConfig reads configuration and applies the global flags to it.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.cacheDir != "" {
		cfg.Cache.Dir = opts.cacheDir
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newApp loads configuration and wires the application.
func newApp(ctx context.Context, opts *rootOptions) (*app.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.NewLogger(cfg.Log))
}

func (o *rootOptions) lookupOptions() (lookup.Options, error) {
	var sections []domain.Section
	for _, name := range o.sections {
		sec, err := domain.ParseSection(name)
		if err != nil {
			return lookup.Options{}, err
		}
		sections = append(sections, sec)
	}
	return lookup.Options{
		Offline:  o.offline,
		NoCache:  o.noCache,
		Sections: domain.NewSectionSet(sections...),
	}, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
