// Package render turns merged word records into terminal text or JSON.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/heartmarshall/vocab/internal/domain"
)

// Display limits.
const (
	MaxGlossesPerPOS = 5
	MaxRelatedTerms  = 15
)

// Options control text rendering.
type Options struct {
	// Brief prints only the header and the brief definition.
	Brief bool
	// NoColor forces plain output even on a color terminal.
	NoColor bool
}

type styles struct {
	word     lipgloss.Style
	phonetic lipgloss.Style
	brief    lipgloss.Style
	heading  lipgloss.Style
	synonyms lipgloss.Style
	antonyms lipgloss.Style
	base     lipgloss.Style
	errText  lipgloss.Style
	notice   lipgloss.Style
	option   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		word:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		phonetic: r.NewStyle().Faint(true),
		brief:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("6")),
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		synonyms: r.NewStyle().Foreground(lipgloss.Color("2")),
		antonyms: r.NewStyle().Foreground(lipgloss.Color("1")),
		base:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		errText:  r.NewStyle().Foreground(lipgloss.Color("1")),
		notice:   r.NewStyle().Faint(true),
		option:   r.NewStyle().Bold(true),
	}
}

// Text renders records as styled terminal text.
type Text struct {
	w     io.Writer
	opts  Options
	style styles
	plain bool
}

// NewText creates a text renderer writing to w. Color is chosen from w's
// terminal capabilities unless opts.NoColor is set.
func NewText(w io.Writer, opts Options) *Text {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Text{w: w, opts: opts, style: newStyles(r), plain: r.ColorProfile() == termenv.Ascii}
}

// Render writes one record.
func (t *Text) Render(rec *domain.WordRecord) error {
	var b strings.Builder
	t.record(&b, rec)
	_, err := io.WriteString(t.w, b.String())
	return err
}

// Error writes a red error line.
func (t *Text) Error(msg string) error {
	_, err := fmt.Fprintln(t.w, t.FormatError(msg))
	return err
}

// Notice writes a dim informational line.
func (t *Text) Notice(msg string) error {
	_, err := fmt.Fprintln(t.w, t.FormatNotice(msg))
	return err
}

// FormatError styles msg as an error without writing it.
func (t *Text) FormatError(msg string) string { return t.style.errText.Render(msg) }

// FormatNotice styles msg as a notice without writing it.
func (t *Text) FormatNotice(msg string) string { return t.style.notice.Render(msg) }

// FormatOption styles a numbered choice such as "[1] word".
func (t *Text) FormatOption(n int, label string) string {
	return t.style.option.Render(fmt.Sprintf("[%d]", n)) + " " + label
}

// Plain reports whether output carries no styling.
func (t *Text) Plain() bool { return t.plain }

// Format returns the rendered record without writing it.
func (t *Text) Format(rec *domain.WordRecord) string {
	var b strings.Builder
	t.record(&b, rec)
	return b.String()
}

func (t *Text) record(b *strings.Builder, rec *domain.WordRecord) {
	st := t.style

	header := st.word.Render(rec.Word)
	if rec.Phonetic != "" {
		header += st.phonetic.Render("  " + rec.Phonetic)
	}
	b.WriteString(header + "\n")

	brief := rec.BriefDefinition
	if brief == "" {
		brief = domain.TruncateGloss(rec.Definitions.First(), domain.DefaultBriefWords)
	}
	if brief != "" {
		b.WriteString(st.brief.Render(brief) + "\n")
	}

	if t.opts.Brief {
		return
	}

	if len(rec.Definitions) > 0 {
		b.WriteString("\n")
		for _, g := range rec.Definitions {
			b.WriteString(st.heading.Render(g.PartOfSpeech.String()) + "\n")
			for i, d := range g.Glosses {
				if i == MaxGlossesPerPOS {
					break
				}
				fmt.Fprintf(b, "  %d. %s\n", i+1, d)
			}
		}
	}

	if f := rec.Frequency; f != nil {
		t.section(b, "Frequency")
		fmt.Fprintf(b, "  %s/million  ·  zipf %s  ·  %s\n", formatFloat(f.PerMillion), formatFloat(f.Zipf), f.Label)
	}

	if rec.EtymologyText != "" {
		t.section(b, "Etymology")
		for _, part := range strings.Split(rec.EtymologyText, "\n\n") {
			b.WriteString("  " + part + "\n")
		}
	}

	if len(rec.RootWords) > 0 {
		t.section(b, "Root words")
		b.WriteString("  " + strings.Join(rec.RootWords, " → ") + "\n")
	}

	if len(rec.RelatedWords) > 0 {
		t.section(b, "Related words")
		b.WriteString("  " + strings.Join(rec.RelatedWords, ", ") + "\n")
	}

	if len(rec.Synonyms) > 0 {
		t.section(b, "Synonyms")
		b.WriteString(st.synonyms.Render("  "+strings.Join(head(rec.Synonyms, MaxRelatedTerms), ", ")) + "\n")
	}

	if len(rec.Antonyms) > 0 {
		t.section(b, "Antonyms")
		b.WriteString(st.antonyms.Render("  "+strings.Join(head(rec.Antonyms, MaxRelatedTerms), ", ")) + "\n")
	}

	if rec.BaseWord != "" {
		b.WriteString("\n" + st.base.Render("Base form: "+rec.BaseWord) + "\n")
		if rec.BaseRecord != nil {
			t.record(b, rec.BaseRecord)
			return
		}
	}

	b.WriteString("\n")
}

func (t *Text) section(b *strings.Builder, title string) {
	b.WriteString("\n" + t.style.heading.Render(title) + "\n")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// formatFloat prints whole numbers with one decimal ("3.0") and others in
// their shortest form ("4.27").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
