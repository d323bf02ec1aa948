package wiktionary

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

const (
	defaultMaxRelated = 20
	// Sections shorter than this ("From English hello.") carry no information.
	minEtymologyChars = 30
	maxRelatedChars   = 50
)

// headingDivs returns every mw-heading wrapper whose h2/h3/h4 text contains name.
func headingDivs(doc *html.Node, name string) []*html.Node {
	var out []*html.Node
	for _, div := range dom.QuerySelectorAll(doc, "div.mw-heading") {
		heading := dom.QuerySelector(div, "h2, h3, h4")
		if heading != nil && strings.Contains(dom.TextContent(heading), name) {
			out = append(out, div)
		}
	}
	return out
}

func isHeading(n *html.Node) bool {
	return slices.Contains(strings.Fields(dom.ClassName(n)), "mw-heading")
}

// sectionBody collects the element siblings after a heading up to the next one.
func sectionBody(div *html.Node) []*html.Node {
	var out []*html.Node
	for sib := dom.NextElementSibling(div); sib != nil; sib = dom.NextElementSibling(sib) {
		if isHeading(sib) {
			break
		}
		out = append(out, sib)
	}
	return out
}

// joinedText concatenates the trimmed text nodes under n with sep.
func joinedText(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if s := strings.TrimSpace(node.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}

func isBoilerplate(text string) bool {
	return strings.Contains(strings.ToLower(text), "etymology is missing") ||
		strings.Contains(text, "Please add to it")
}

// extractEtymology joins the paragraphs of every Etymology section; sections
// are separated by a blank line.
func extractEtymology(doc *html.Node) string {
	var sections []string
	for _, div := range headingDivs(doc, "Etymology") {
		var parts []string
		for _, el := range sectionBody(div) {
			if dom.TagName(el) != "p" {
				continue
			}
			text := joinedText(el, " ")
			if isBoilerplate(text) {
				continue
			}
			parts = append(parts, text)
		}
		if len(parts) == 0 {
			continue
		}
		combined := strings.Join(parts, " ")
		if utf8.RuneCountInString(combined) > minEtymologyChars {
			sections = append(sections, combined)
		}
	}
	return strings.Join(sections, "\n\n")
}

// extractRelated reads the first "Related terms" and "Derived terms" sections.
// Each list item contributes its first link text, or its own text.
func extractRelated(doc *html.Node, limit int) []string {
	words := []string{}
	for _, name := range []string{"Related terms", "Derived terms"} {
		divs := headingDivs(doc, name)
		if len(divs) == 0 {
			continue
		}
		for _, el := range sectionBody(divs[0]) {
			for _, li := range dom.GetElementsByTagName(el, "li") {
				var text string
				if a := dom.QuerySelector(li, "a"); a != nil {
					text = joinedText(a, "")
				} else {
					text = joinedText(li, "")
				}
				if text != "" && utf8.RuneCountInString(text) < maxRelatedChars && !slices.Contains(words, text) {
					words = append(words, text)
				}
			}
		}
	}
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
