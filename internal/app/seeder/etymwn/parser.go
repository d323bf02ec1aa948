// Package etymwn parses the Etymological WordNet TSV dump into derivation
// edges. Pure function: file path in, domain structs out.
//
// Each line is "lang: word<TAB>rel:relation<TAB>lang: word"; only
// rel:etymology rows are kept.
package etymwn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
)

const relEtymology = "rel:etymology"

// ParseResult holds parsed derivation edges.
type ParseResult struct {
	Links []domain.EtymologyLink
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines    int
	OtherRelation int
	Malformed     int
	Duplicates    int
}

// Parse reads an Etymological WordNet TSV file.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var result ParseResult
	seen := make(map[domain.EtymologyLink]bool)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		result.Stats.TotalLines++

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			result.Stats.Malformed++
			continue
		}
		if strings.TrimSpace(fields[1]) != relEtymology {
			result.Stats.OtherRelation++
			continue
		}

		lang, word, ok := splitTerm(fields[0])
		originLang, originWord, ok2 := splitTerm(fields[2])
		if !ok || !ok2 {
			result.Stats.Malformed++
			continue
		}

		link := domain.EtymologyLink{Lang: lang, Word: word, OriginLang: originLang, OriginWord: originWord}
		if seen[link] {
			result.Stats.Duplicates++
			continue
		}
		seen[link] = true
		result.Links = append(result.Links, link)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}
	return result, nil
}

// splitTerm splits "lang: word". English words are lowercased to match
// lemma keys; other languages keep their spelling.
func splitTerm(term string) (lang, word string, ok bool) {
	lang, word, ok = strings.Cut(term, ":")
	if !ok {
		return "", "", false
	}
	lang = strings.TrimSpace(lang)
	word = strings.TrimSpace(word)
	if lang == "" || word == "" {
		return "", "", false
	}
	if lang == "eng" {
		word = strings.ToLower(word)
	}
	return lang, word, true
}
