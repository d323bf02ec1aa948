// Package frequency parses a word frequency CSV ("word,count") into
// lexicon index rows. Pure function: file path in, domain structs out.
package frequency

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
)

// ParseResult holds normalized word counts and their sum.
type ParseResult struct {
	Frequencies []domain.WordFrequency
	Total       int64
	Stats       Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows int
	Merged    int
	Invalid   int
}

// Parse reads a frequency CSV file. Words are normalized; rows whose words
// normalize to the same form are summed. Rows with a missing or negative
// count are skipped.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.TrimLeadingSpace = true

	var (
		result ParseResult
		index  = make(map[string]int)
		first  = true
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read row: %w", err)
		}

		isFirst := first
		first = false

		if len(record) < 2 {
			result.Stats.Invalid++
			continue
		}

		count, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			// Header row.
			if isFirst {
				continue
			}
			result.Stats.Invalid++
			continue
		}
		result.Stats.TotalRows++

		word := domain.NormalizeText(record[0])
		if word == "" || count < 0 {
			result.Stats.Invalid++
			continue
		}

		if i, ok := index[word]; ok {
			result.Frequencies[i].Count += count
			result.Stats.Merged++
		} else {
			index[word] = len(result.Frequencies)
			result.Frequencies = append(result.Frequencies, domain.WordFrequency{Word: word, Count: count})
		}
		result.Total += count
	}

	return result, nil
}
