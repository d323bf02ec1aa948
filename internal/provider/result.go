package provider

import "github.com/heartmarshall/vocab/internal/domain"

// DictionaryResult is the structured result from the remote dictionary API.
type DictionaryResult struct {
	Word        string
	Phonetic    string
	Definitions domain.Definitions
	Synonyms    []string
	Antonyms    []string
}

// LexicalResult is the structured result from the offline lexical database.
type LexicalResult struct {
	Definitions domain.Definitions
	Synonyms    []string
	Antonyms    []string
	// BriefGloss is one short gloss per coarse part of speech, joined with " / ".
	BriefGloss string
}

// EtymologyResult is the structured result from the etymology scrape.
type EtymologyResult struct {
	EtymologyText string
	RelatedWords  []string
}

// FrequencyResult is the frequency metrics for a word.
type FrequencyResult = domain.Frequency
