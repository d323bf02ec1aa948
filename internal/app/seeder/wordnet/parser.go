// Package wordnet parses an Open English WordNet JSON release into lexicon
// index rows. Pure function: directory path in, domain structs out. No
// database dependencies.
//
// Expected directory structure (as distributed by https://github.com/globalwordnet/english-wordnet):
//
//	entries-a.json … entries-z.json   lemma entries keyed by word
//	noun.*.json, verb.*.json, …       synsets keyed by synset ID
//	noun.exc, verb.exc, …             optional WNDB exception lists
package wordnet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
)

// posOrder fixes the order POS blocks of one entry are visited in, so that
// sense ranks are stable even though JSON objects are unordered.
var posOrder = []string{"n", "v", "a", "s", "r"}

// excFiles maps WNDB exception list names to their part of speech.
var excFiles = map[string]string{
	"noun.exc": "n",
	"verb.exc": "v",
	"adj.exc":  "a",
	"adv.exc":  "r",
}

// ParseResult holds the parsed index rows.
type ParseResult struct {
	Synsets    []domain.Synset
	Senses     []domain.LemmaSense
	Antonyms   []domain.Antonym
	Exceptions []domain.MorphException
	Stats      Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalEntries     int
	TotalSynsets     int
	TotalSenses      int
	DanglingSenses   int
	UnresolvedAntons int
	ExcFiles         int
}

// OEWN JSON deserialization types.

// oewnEntryFile represents an entries-*.json file: {"word": {"pos": {...}}}.
type oewnEntryFile map[string]map[string]json.RawMessage

// oewnPOSEntry holds senses and irregular forms for a single POS of a word.
type oewnPOSEntry struct {
	Sense []oewnSense `json:"sense"`
	Form  []string    `json:"form"`
}

// oewnSense holds a single sense linking a word to a synset.
type oewnSense struct {
	ID      string   `json:"id"`
	Synset  string   `json:"synset"`
	Antonym []string `json:"antonym"`
}

// oewnSynset holds a single synset from a {pos}.{category}.json file.
// Definition is a list in current releases and a bare string in older ones.
type oewnSynset struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definition   json.RawMessage `json:"definition"`
	Members      []string        `json:"members"`
}

// senseRef is a resolved sense: which word it belongs to and its synset.
type senseRef struct {
	word   string
	synset string
}

type senseKey struct{ lemma, pos string }

// Parse reads an OEWN JSON directory and returns synsets, lemma senses,
// antonym pairs and morphological exceptions.
func Parse(dirPath string) (ParseResult, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open directory: %w", err)
	}
	if !info.IsDir() {
		return ParseResult{}, fmt.Errorf("%s is not a directory", dirPath)
	}

	var result ParseResult

	// Step 1: Synsets.
	synsetFiles, err := globSynsetFiles(dirPath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("glob synset files: %w", err)
	}

	known := make(map[string]bool)
	for _, path := range synsetFiles {
		synsets, err := readSynsetFile(path)
		if err != nil {
			return ParseResult{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		for _, id := range sortedKeys(synsets) {
			s := synsets[id]
			pos := s.PartOfSpeech
			if pos == "" {
				pos = posFromID(id)
			}
			members := make([]string, 0, len(s.Members))
			for _, m := range s.Members {
				members = appendUnique(members, strings.ReplaceAll(m, "_", " "))
			}
			result.Synsets = append(result.Synsets, domain.Synset{
				ID:         id,
				POS:        pos,
				Definition: decodeDefinition(s.Definition),
				Members:    members,
			})
			known[id] = true
		}
	}
	result.Stats.TotalSynsets = len(result.Synsets)

	// Step 2: Entries → lemma senses, forms, and the senseID→word mapping.
	entryFiles, err := filepath.Glob(filepath.Join(dirPath, "entries-*.json"))
	if err != nil {
		return ParseResult{}, fmt.Errorf("glob entry files: %w", err)
	}
	slices.Sort(entryFiles)

	senses := make(map[string]senseRef)
	ranks := make(map[senseKey]int)
	var antonymSources []oewnSense
	excSeen := make(map[domain.MorphException]bool)

	for _, path := range entryFiles {
		entries, err := readEntryFile(path)
		if err != nil {
			return ParseResult{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}

		for _, word := range sortedKeys(entries) {
			result.Stats.TotalEntries++
			posMap := entries[word]
			lemma := lemmaKey(word)

			for _, pos := range posOrder {
				raw, ok := posMap[pos]
				if !ok {
					continue
				}
				var posEntry oewnPOSEntry
				if err := json.Unmarshal(raw, &posEntry); err != nil {
					return ParseResult{}, fmt.Errorf("decode %q/%s: %w", word, pos, err)
				}

				key := senseKey{lemma: lemma, pos: domain.CoarsePOS(pos)}
				for _, sense := range posEntry.Sense {
					if !known[sense.Synset] {
						result.Stats.DanglingSenses++
						continue
					}
					senses[sense.ID] = senseRef{word: strings.ReplaceAll(word, "_", " "), synset: sense.Synset}
					result.Senses = append(result.Senses, domain.LemmaSense{
						Lemma:    lemma,
						POS:      pos,
						SynsetID: sense.Synset,
						Rank:     ranks[key],
					})
					ranks[key]++
					if len(sense.Antonym) > 0 {
						antonymSources = append(antonymSources, sense)
					}
				}

				for _, form := range posEntry.Form {
					exc := domain.MorphException{Inflected: lemmaKey(form), POS: domain.CoarsePOS(pos), Base: lemma}
					if exc.Inflected == "" || exc.Inflected == lemma || excSeen[exc] {
						continue
					}
					excSeen[exc] = true
					result.Exceptions = append(result.Exceptions, exc)
				}
			}
		}
	}
	result.Stats.TotalSenses = len(result.Senses)

	// Step 3: Antonyms, resolved through the sense table.
	antSeen := make(map[domain.Antonym]bool)
	for _, sense := range antonymSources {
		src := senses[sense.ID]
		for _, target := range sense.Antonym {
			dst, ok := senses[target]
			if !ok {
				result.Stats.UnresolvedAntons++
				continue
			}
			a := domain.Antonym{SynsetID: src.synset, Member: src.word, Antonym: dst.word}
			if antSeen[a] {
				continue
			}
			antSeen[a] = true
			result.Antonyms = append(result.Antonyms, a)
		}
	}

	// Step 4: Optional WNDB exception lists.
	for _, name := range sortedKeys(excFiles) {
		path := filepath.Join(dirPath, name)
		excs, err := readExcFile(path, excFiles[name])
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read %s: %w", name, err)
		}
		result.Stats.ExcFiles++
		for _, exc := range excs {
			if excSeen[exc] {
				continue
			}
			excSeen[exc] = true
			result.Exceptions = append(result.Exceptions, exc)
		}
	}

	return result, nil
}

// readEntryFile reads a single entries-*.json file.
func readEntryFile(path string) (oewnEntryFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var entries oewnEntryFile
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return entries, nil
}

// readSynsetFile reads a single synset file ({pos}.{category}.json).
func readSynsetFile(path string) (map[string]oewnSynset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var synsets map[string]oewnSynset
	if err := json.NewDecoder(f).Decode(&synsets); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return synsets, nil
}

// readExcFile reads a WNDB exception list: "inflected base [base...]" per
// line, underscores for spaces.
func readExcFile(path, pos string) ([]domain.MorphException, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []domain.MorphException
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		inflected := lemmaKey(fields[0])
		for _, base := range fields[1:] {
			out = append(out, domain.MorphException{Inflected: inflected, POS: pos, Base: lemmaKey(base)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return out, nil
}

// globSynsetFiles finds all synset files in the directory.
// Synset files follow the pattern: {pos}.{category}.json where pos is noun/verb/adj/adv.
func globSynsetFiles(dirPath string) ([]string, error) {
	var result []string
	for _, prefix := range []string{"noun.", "verb.", "adj.", "adv."} {
		matches, err := filepath.Glob(filepath.Join(dirPath, prefix+"*.json"))
		if err != nil {
			return nil, err
		}
		result = append(result, matches...)
	}
	return result, nil
}

// decodeDefinition accepts a definition list (first item wins) or a string.
func decodeDefinition(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return strings.TrimSpace(list[0])
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

// posFromID reads the POS suffix of ids like "oewn-00001740-n".
func posFromID(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 && i+1 < len(id) {
		return id[i+1:]
	}
	return ""
}

func lemmaKey(word string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), "_", " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// appendUnique appends s to the slice only if not already present.
func appendUnique(sl []string, s string) []string {
	if slices.Contains(sl, s) {
		return sl
	}
	return append(sl, s)
}
