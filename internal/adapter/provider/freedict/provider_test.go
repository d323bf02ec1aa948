package freedict

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/vocab/internal/domain"
	"github.com/heartmarshall/vocab/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetics": [
			{"text": "", "audio": "https://example.com/hello-us.mp3"},
			{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"}
		],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting.", "example": "She gave a cheerful hello.", "synonyms": ["greeting"]}
				],
				"synonyms": ["hi"],
				"antonyms": ["goodbye"]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting."},
					{"definition": ""},
					{"definition": "Used to attract attention.", "antonyms": ["bye"]}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, newTestLogger())
	result, err := p.FetchEntry(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}

	if result.Word != "hello" {
		t.Errorf("Word = %q, want %q", result.Word, "hello")
	}
	if result.Phonetic != "/hɛˈləʊ/" {
		t.Errorf("Phonetic = %q, want first phonetics text", result.Phonetic)
	}

	if len(result.Definitions) != 2 {
		t.Fatalf("len(Definitions) = %d, want 2", len(result.Definitions))
	}
	if result.Definitions[0].PartOfSpeech != domain.PartOfSpeechNoun {
		t.Errorf("first group = %q, want noun", result.Definitions[0].PartOfSpeech)
	}
	unknown := result.Definitions.Get(domain.PartOfSpeechUnknown)
	if len(unknown) != 2 || unknown[0] != "Used as a greeting." {
		t.Errorf("interjection glosses = %v", unknown)
	}

	wantSyn := []string{"greeting", "hi"}
	if len(result.Synonyms) != 2 || result.Synonyms[0] != wantSyn[0] || result.Synonyms[1] != wantSyn[1] {
		t.Errorf("Synonyms = %v, want %v", result.Synonyms, wantSyn)
	}
	wantAnt := []string{"bye", "goodbye"}
	if len(result.Antonyms) != 2 || result.Antonyms[0] != wantAnt[0] || result.Antonyms[1] != wantAnt[1] {
		t.Errorf("Antonyms = %v, want %v", result.Antonyms, wantAnt)
	}
}

func TestProvider_FetchEntry_EntryLevelPhoneticWins(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[{"word":"run","phonetic":"/ɹʌn/","phonetics":[{"text":"/rʌn/"}],"meanings":[]}]`)

	result, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Phonetic != "/ɹʌn/" {
		t.Errorf("Phonetic = %q, want %q", result.Phonetic, "/ɹʌn/")
	}
}

func TestProvider_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	result, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestProvider_FetchEntry_ServerErrorNoRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want exactly 1", got)
	}
}

func TestProvider_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `{not json`)

	_, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestProvider_FetchEntry_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[]`)

	result, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for empty array, got %+v", result)
	}
}

func TestProvider_FetchEntry_MultipleEntriesMerged(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, http.StatusOK, `[
		{"word":"bank","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"edge of a river"}]}]},
		{"word":"bank","meanings":[
			{"partOfSpeech":"noun","definitions":[{"definition":"financial institution"}]},
			{"partOfSpeech":"verb","definitions":[{"definition":"deposit money"}]}
		]}
	]`)

	result, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(context.Background(), "bank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nouns := result.Definitions.Get(domain.PartOfSpeechNoun)
	if len(nouns) != 2 || nouns[0] != "edge of a river" || nouns[1] != "financial institution" {
		t.Errorf("noun glosses = %v", nouns)
	}
	if len(result.Definitions) != 2 {
		t.Errorf("len(Definitions) = %d, want 2", len(result.Definitions))
	}
}

func TestProvider_FetchEntry_TimeoutClassified(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := NewProviderWithURL(srv.URL, newTestLogger()).FetchEntry(ctx, "slow")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if o := provider.NewOutcome(res, err); o.Status != provider.StatusTimedOut {
		t.Errorf("status = %v, want timed_out", o.Status)
	}
}
