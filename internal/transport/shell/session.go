// Package shell implements the interactive lookup shell: command handling,
// completion, history and "did you mean" correction.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/service/lookup"
	"github.com/heartmarshall/vocab/internal/transport/render"
)

// Prompts.
const (
	PromptWord   = "vocab> "
	PromptChoice = "Enter number to accept, or press Enter to skip: "
)

// Banner is printed when the shell starts.
const Banner = "vocab interactive shell  (type /help for commands, Ctrl+D to exit)"

const helpMarkdown = `## Commands

- ` + "`/help`" + ` show this help
- ` + "`/clear`" + ` clear the screen
- ` + "`/clear-cache`" + ` remove all cached lookups
- ` + "`/clear-history`" + ` clear search history
- ` + "`/file <path>`" + ` look up words from a file
- ` + "`/exit`" + `, ` + "`/quit`" + ` exit the shell

Type any word to look it up.
`

type wordLookup interface {
	Lookup(ctx context.Context, word string, opts lookup.Options) (*domain.WordRecord, error)
}

type cacheClearer interface {
	Clear(ctx context.Context) (int, error)
}

// Config holds the session's collaborators. Cache may be nil when caching
// is off.
type Config struct {
	Lookup    wordLookup
	Cache     cacheClearer
	History   *History
	Terms     *Terms
	Text      *render.Text
	Options   lookup.Options
	Suggest   int
	Cutoff    float64
	HelpWidth int
}

// Reply is the outcome of one input line.
type Reply struct {
	// Output is printed above the prompt; empty prints nothing.
	Output string
	// Quit ends the shell.
	Quit bool
	// ClearScreen clears the terminal before Output is printed.
	ClearScreen bool
}

// Session handles shell input independently of the terminal UI. It is not
// safe for concurrent use.
type Session struct {
	log *slog.Logger
	cfg Config

	// pending holds correction candidates awaiting a choice.
	pending []string
}

// NewSession creates a session.
func NewSession(logger *slog.Logger, cfg Config) *Session {
	if cfg.Suggest <= 0 {
		cfg.Suggest = DefaultSuggestions
	}
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = DefaultSuggestCutoff
	}
	if cfg.HelpWidth <= 0 {
		cfg.HelpWidth = 80
	}
	if cfg.History == nil {
		cfg.History = &History{}
	}
	if cfg.Terms == nil {
		cfg.Terms = NewTerms(logger, nil)
	}
	return &Session{
		log: logger.With("service", "shell"),
		cfg: cfg,
	}
}

// Prompt returns the prompt for the next line.
func (s *Session) Prompt() string {
	if s.pending != nil {
		return PromptChoice
	}
	return PromptWord
}

// History returns the session's history.
func (s *Session) History() *History { return s.cfg.History }

// Cancel abandons a pending correction.
func (s *Session) Cancel() {
	s.pending = nil
}

// Handle processes one input line.
func (s *Session) Handle(ctx context.Context, line string) Reply {
	text := strings.TrimSpace(line)

	if s.pending != nil {
		return s.choose(ctx, text)
	}
	if text == "" {
		return Reply{}
	}

	if err := s.cfg.History.Add(text); err != nil {
		s.log.WarnContext(ctx, "save history", slog.String("error", err.Error()))
	}

	switch {
	case text == "/exit" || text == "/quit" || text == "exit" || text == "quit":
		return Reply{Quit: true}
	case text == "/clear":
		return Reply{ClearScreen: true}
	case text == "/clear-cache":
		return s.clearCache(ctx)
	case text == "/clear-history":
		if err := s.cfg.History.Clear(); err != nil {
			return Reply{Output: s.cfg.Text.FormatError("Error clearing history: " + err.Error())}
		}
		return Reply{Output: s.cfg.Text.FormatNotice("History cleared.")}
	case text == "/help":
		return Reply{Output: s.help()}
	case text == "/file" || strings.HasPrefix(text, "/file "):
		return s.file(ctx, strings.TrimSpace(strings.TrimPrefix(text, "/file")))
	case strings.HasPrefix(text, "/"):
		return Reply{Output: s.cfg.Text.FormatNotice("Unknown command " + strings.Fields(text)[0] + ". Type /help for commands.")}
	}

	word := domain.FirstToken(text)

	if !s.cfg.Terms.Contains(ctx, word) {
		if suggestions := s.cfg.Terms.Corrections(ctx, word, s.cfg.Suggest, s.cfg.Cutoff); len(suggestions) > 0 {
			s.pending = suggestions
			opts := make([]string, len(suggestions))
			for i, w := range suggestions {
				opts[i] = s.cfg.Text.FormatOption(i+1, w)
			}
			return Reply{Output: s.cfg.Text.FormatNotice("Not found. Did you mean:") + "  " + strings.Join(opts, "  ")}
		}
	}

	return Reply{Output: s.lookup(ctx, word)}
}

func (s *Session) choose(ctx context.Context, choice string) Reply {
	suggestions := s.pending
	s.pending = nil

	if choice == "" {
		return Reply{}
	}
	n, ok := parseChoice(choice)
	if !ok || n < 1 || n > len(suggestions) {
		return Reply{Output: s.cfg.Text.FormatNotice("Skipped.")}
	}
	return Reply{Output: s.lookup(ctx, suggestions[n-1])}
}

func (s *Session) lookup(ctx context.Context, word string) string {
	rec, err := s.cfg.Lookup.Lookup(ctx, word, s.cfg.Options)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return s.cfg.Text.FormatError(fmt.Sprintf("Invalid word %q", word))
		}
		if errors.Is(err, context.Canceled) {
			return s.cfg.Text.FormatNotice("Lookup cancelled.")
		}
		return s.cfg.Text.FormatError("Lookup failed: " + err.Error())
	}
	return strings.TrimRight(s.cfg.Text.Format(rec), "\n")
}

func (s *Session) clearCache(ctx context.Context) Reply {
	if s.cfg.Cache == nil {
		return Reply{Output: s.cfg.Text.FormatNotice("Cache is disabled.")}
	}
	n, err := s.cfg.Cache.Clear(ctx)
	if err != nil {
		return Reply{Output: s.cfg.Text.FormatError("Error clearing cache: " + err.Error())}
	}
	return Reply{Output: s.cfg.Text.FormatNotice(fmt.Sprintf("Cleared %d cached entries.", n))}
}

func (s *Session) file(ctx context.Context, arg string) Reply {
	if arg == "" {
		return Reply{Output: s.cfg.Text.FormatError("Usage: /file <path>")}
	}

	path := expandHome(arg)
	data, err := os.ReadFile(path)
	if err != nil {
		return Reply{Output: s.cfg.Text.FormatError("Error reading file: " + err.Error())}
	}
	words := strings.Fields(string(data))
	if len(words) == 0 {
		return Reply{Output: s.cfg.Text.FormatNotice("File is empty.")}
	}

	parts := []string{s.cfg.Text.FormatNotice(fmt.Sprintf("Looking up %d word(s) from %s", len(words), filepath.Base(path)))}
	for _, w := range words {
		if ctx.Err() != nil {
			break
		}
		parts = append(parts, s.lookup(ctx, strings.ToLower(w)))
	}
	return Reply{Output: strings.Join(parts, "\n")}
}

func (s *Session) help() string {
	style := glamour.WithAutoStyle()
	if s.cfg.Text.Plain() {
		style = glamour.WithStylePath("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(s.cfg.HelpWidth))
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}

// parseChoice accepts only plain decimal digits.
func parseChoice(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
