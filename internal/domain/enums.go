package domain

import "strings"

// PartOfSpeech is the closed set of grammatical labels a WordRecord may carry.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechAdjective PartOfSpeech = "adjective"
	PartOfSpeechAdverb    PartOfSpeech = "adverb"
	PartOfSpeechUnknown   PartOfSpeech = "unknown"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb, PartOfSpeechUnknown:
		return true
	}
	return false
}

// ParsePartOfSpeech maps a source label onto the closed vocabulary.
// WordNet short tags (n, v, a, s, r) are accepted; anything unrecognised
// becomes PartOfSpeechUnknown.
func ParsePartOfSpeech(label string) PartOfSpeech {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "noun", "n":
		return PartOfSpeechNoun
	case "verb", "v":
		return PartOfSpeechVerb
	case "adjective", "adj", "a", "s":
		return PartOfSpeechAdjective
	case "adverb", "adv", "r":
		return PartOfSpeechAdverb
	}
	return PartOfSpeechUnknown
}

// Section is one independently requestable part of a lookup.
type Section string

const (
	SectionDefinitions Section = "definitions"
	SectionFrequency   Section = "frequency"
	SectionSynonyms    Section = "synonyms"
	SectionEtymology   Section = "etymology"
)

func (s Section) String() string { return string(s) }

// AllSections lists sections in display order.
var AllSections = []Section{SectionDefinitions, SectionFrequency, SectionSynonyms, SectionEtymology}

// ParseSection accepts both the full name and the short CLI alias.
func ParseSection(s string) (Section, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "def", "definitions", "definition":
		return SectionDefinitions, nil
	case "freq", "frequency":
		return SectionFrequency, nil
	case "syn", "synonyms", "synonym":
		return SectionSynonyms, nil
	case "ety", "etymology":
		return SectionEtymology, nil
	}
	return "", NewValidationError("sections", "unknown section "+`"`+s+`"`+" (want def, freq, syn or ety)")
}

// SectionSet is the set of requested sections. The zero value requests everything.
type SectionSet map[Section]struct{}

// NewSectionSet builds a set from the given sections.
func NewSectionSet(sections ...Section) SectionSet {
	if len(sections) == 0 {
		return nil
	}
	set := make(SectionSet, len(sections))
	for _, s := range sections {
		set[s] = struct{}{}
	}
	return set
}

// Has reports whether s was requested. An empty set requests all sections.
func (ss SectionSet) Has(s Section) bool {
	if len(ss) == 0 {
		return true
	}
	_, ok := ss[s]
	return ok
}

// All reports whether every section is requested.
func (ss SectionSet) All() bool {
	for _, s := range AllSections {
		if !ss.Has(s) {
			return false
		}
	}
	return true
}
