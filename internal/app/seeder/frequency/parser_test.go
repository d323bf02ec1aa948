package frequency

import (
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/heartmarshall/vocab/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestParse_FileNotFound(t *testing.T) {
	if _, err := Parse("/nonexistent/counts.csv"); err == nil {
		t.Error("Parse should return error for missing file")
	}
}

func TestParse_Fixture(t *testing.T) {
	result, err := Parse(testdataPath(t, "counts.csv"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []domain.WordFrequency{
		{Word: "the", Count: 6000},
		{Word: "run", Count: 300},
		{Word: "fast", Count: 200},
	}
	if !slices.Equal(result.Frequencies, want) {
		t.Errorf("Frequencies = %v, want %v", result.Frequencies, want)
	}
	if result.Total != 6500 {
		t.Errorf("Total = %d, want 6500", result.Total)
	}
	if result.Stats.Merged != 1 {
		t.Errorf("Merged = %d, want 1", result.Stats.Merged)
	}
	if result.Stats.Invalid != 3 {
		t.Errorf("Invalid = %d, want 3", result.Stats.Invalid)
	}
	if result.Stats.TotalRows != 6 {
		t.Errorf("TotalRows = %d, want 6", result.Stats.TotalRows)
	}
}

func TestParse_Headerless(t *testing.T) {
	result, err := parse(strings.NewReader("alpha,10\nbeta,5\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Frequencies) != 2 {
		t.Fatalf("expected both rows kept, got %v", result.Frequencies)
	}
	if result.Total != 15 {
		t.Errorf("Total = %d, want 15", result.Total)
	}
}

func TestParse_Empty(t *testing.T) {
	result, err := parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Frequencies) != 0 || result.Total != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestParse_MalformedQuote(t *testing.T) {
	if _, err := parse(strings.NewReader("word,count\n\"open,1\n")); err == nil {
		t.Error("parse should fail on a malformed quoted field")
	}
}
