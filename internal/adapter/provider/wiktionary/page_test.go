package wiktionary

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFixture(t *testing.T, name string) *html.Node {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer f.Close()
	doc, err := html.Parse(f)
	require.NoError(t, err)
	return doc
}

func TestExtractEtymology(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, "run.html")
	got := extractEtymology(doc)

	sections := strings.Split(got, "\n\n")
	require.Len(t, sections, 2)
	assert.Equal(t,
		`From Middle English rinnen , from Old English rinnan ("to flow, run"). Compare rennen .`,
		sections[0])
	assert.Equal(t, "Borrowed from Scots rin, itself from Old Norse renna, cognate.", sections[1])
	assert.NotContains(t, got, "Please add to it")
	assert.NotContains(t, got, "From English run.")
}

func TestExtractEtymology_NoSection(t *testing.T) {
	t.Parallel()

	doc, err := html.Parse(strings.NewReader(`<html><body><p>nothing here</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "", extractEtymology(doc))
}

func TestExtractRelated(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, "run.html")
	got := extractRelated(doc, defaultMaxRelated)

	assert.Equal(t, []string{"runner", "running", "run-up", "outrun", "rerun"}, got)
}

func TestExtractRelated_Cap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<div class="mw-heading"><h4>Derived terms</h4></div><ul>`)
	for i := 0; i < 30; i++ {
		b.WriteString("<li>term")
		b.WriteByte(byte('a' + i%26))
		b.WriteByte(byte('a' + i/26))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	doc, err := html.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Len(t, extractRelated(doc, defaultMaxRelated), 20)
}
