package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WordRecord is the merged lookup result for one word.
type WordRecord struct {
	Word            string      `json:"word"`
	Phonetic        string      `json:"phonetic,omitempty"`
	Definitions     Definitions `json:"definitions"`
	BriefDefinition string      `json:"brief_definition,omitempty"`
	Synonyms        []string    `json:"synonyms"`
	Antonyms        []string    `json:"antonyms"`
	Frequency       *Frequency  `json:"frequency,omitempty"`
	EtymologyText   string      `json:"etymology_text,omitempty"`
	RootWords       []string    `json:"root_words"`
	RelatedWords    []string    `json:"related_words"`
	BaseWord        string      `json:"base_word,omitempty"`
	BaseRecord      *WordRecord `json:"base_record,omitempty"`
}

// NewWordRecord returns an empty record for word with every collection
// initialised, so absent sources serialise as empty lists.
func NewWordRecord(word string) *WordRecord {
	return &WordRecord{
		Word:         word,
		Definitions:  Definitions{},
		Synonyms:     []string{},
		Antonyms:     []string{},
		RootWords:    []string{},
		RelatedWords: []string{},
	}
}

// IsEmpty reports whether no source contributed anything.
func (r *WordRecord) IsEmpty() bool {
	return len(r.Definitions) == 0 && r.BriefDefinition == "" && len(r.Synonyms) == 0 &&
		len(r.Antonyms) == 0 && r.Frequency == nil && r.EtymologyText == "" &&
		len(r.RootWords) == 0 && len(r.RelatedWords) == 0 && r.BaseWord == ""
}

// Frequency holds corpus frequency statistics for a word.
type Frequency struct {
	Zipf       float64 `json:"zipf"`
	PerMillion float64 `json:"per_million"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// FrequencyLabel buckets a Zipf score into a human label.
func FrequencyLabel(zipf float64) string {
	switch {
	case zipf >= 6:
		return "very common"
	case zipf >= 5:
		return "common"
	case zipf >= 4:
		return "familiar"
	case zipf >= 3:
		return "uncommon"
	case zipf >= 2:
		return "rare"
	default:
		return "very rare"
	}
}

// DefinitionGroup is the list of glosses for one part of speech.
type DefinitionGroup struct {
	PartOfSpeech PartOfSpeech
	Glosses      []string
}

// Definitions is an insertion-ordered mapping from part of speech to glosses.
// It serialises as a JSON object whose key order matches the slice order.
type Definitions []DefinitionGroup

// Add appends gloss under pos, creating the group on first use.
func (d *Definitions) Add(pos PartOfSpeech, gloss string) {
	for i := range *d {
		if (*d)[i].PartOfSpeech == pos {
			(*d)[i].Glosses = append((*d)[i].Glosses, gloss)
			return
		}
	}
	*d = append(*d, DefinitionGroup{PartOfSpeech: pos, Glosses: []string{gloss}})
}

// Get returns the glosses for pos, or nil.
func (d Definitions) Get(pos PartOfSpeech) []string {
	for _, g := range d {
		if g.PartOfSpeech == pos {
			return g.Glosses
		}
	}
	return nil
}

// First returns the first gloss of the first group, or "".
func (d Definitions) First() string {
	for _, g := range d {
		if len(g.Glosses) > 0 {
			return g.Glosses[0]
		}
	}
	return ""
}

func (d Definitions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(g.PartOfSpeech))
		if err != nil {
			return nil, err
		}
		glosses := g.Glosses
		if glosses == nil {
			glosses = []string{}
		}
		val, err := json.Marshal(glosses)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Definitions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = Definitions{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("definitions: expected object, got %v", tok)
	}

	out := Definitions{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("definitions: expected string key, got %v", keyTok)
		}
		var glosses []string
		if err := dec.Decode(&glosses); err != nil {
			return fmt.Errorf("definitions: %s: %w", key, err)
		}
		pos := ParsePartOfSpeech(key)
		for _, gloss := range glosses {
			out.Add(pos, gloss)
		}
		if len(glosses) == 0 && out.Get(pos) == nil {
			out = append(out, DefinitionGroup{PartOfSpeech: pos, Glosses: []string{}})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}
