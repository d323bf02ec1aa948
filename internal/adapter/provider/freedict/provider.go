package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/provider"
)

const (
	defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 2 << 20
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL.
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchEntry fetches a dictionary entry for the given word.
// Returns nil, nil if the word is not found (HTTP 404) or the API returned
// no entries. There is no retry: a failed call is simply absent upstream.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("pos_groups", len(result.Definitions)),
		slog.Int("synonyms", len(result.Synonyms)),
	)

	return result, nil
}

// mapAPIResponse converts the API entries into a provider.DictionaryResult.
// Multiple entries (different etymologies) are merged: definitions grouped by
// part of speech in source order, synonyms and antonyms unioned from both the
// meaning and the definition level.
func mapAPIResponse(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Word:        entries[0].Word,
		Definitions: domain.Definitions{},
	}

	synonyms := make(map[string]struct{})
	antonyms := make(map[string]struct{})

	for _, entry := range entries {
		if result.Phonetic == "" {
			result.Phonetic = firstPhonetic(entry)
		}

		for _, meaning := range entry.Meanings {
			pos := domain.ParsePartOfSpeech(meaning.PartOfSpeech)
			for _, def := range meaning.Definitions {
				if def.Definition != "" {
					result.Definitions.Add(pos, def.Definition)
				}
				addAll(synonyms, def.Synonyms)
				addAll(antonyms, def.Antonyms)
			}
			addAll(synonyms, meaning.Synonyms)
			addAll(antonyms, meaning.Antonyms)
		}
	}

	result.Synonyms = sortedKeys(synonyms)
	result.Antonyms = sortedKeys(antonyms)
	return result
}

// firstPhonetic prefers the entry-level phonetic, then the first phonetics
// item that carries text.
func firstPhonetic(entry apiEntry) string {
	if entry.Phonetic != "" {
		return entry.Phonetic
	}
	for _, ph := range entry.Phonetics {
		if ph.Text != "" {
			return ph.Text
		}
	}
	return ""
}

func addAll(set map[string]struct{}, items []string) {
	for _, s := range items {
		if s != "" {
			set[s] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
