package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// History is the shell's line history, persisted one entry per line.
type History struct {
	path    string
	entries []string

	// pos is the navigation cursor; len(entries) means the live line.
	pos   int
	draft string
}

// LoadHistory reads the history file at path. A missing file yields an
// empty history.
func LoadHistory(path string) (*History, error) {
	h := &History{path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("shell: open history: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("shell: read history: %w", err)
	}
	h.pos = len(h.entries)
	return h, nil
}

// Entries returns the history, oldest first.
func (h *History) Entries() []string {
	return h.entries
}

// Add records line and appends it to the file. Blank lines and repeats of
// the previous entry are not recorded. Navigation is reset either way.
func (h *History) Add(line string) error {
	h.Reset()

	line = strings.TrimSpace(line)
	if line == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == line) {
		return nil
	}
	h.entries = append(h.entries, line)
	h.pos = len(h.entries)

	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("shell: history dir: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("shell: open history: %w", err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("shell: write history: %w", err)
	}
	return f.Close()
}

// Clear forgets every entry and removes the file.
func (h *History) Clear() error {
	h.entries = nil
	h.Reset()
	if h.path == "" {
		return nil
	}
	if err := os.Remove(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("shell: remove history: %w", err)
	}
	return nil
}

// Prev moves one entry back. current is the line being edited; it is kept
// and returned by Next once navigation comes back past the newest entry.
func (h *History) Prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next moves one entry forward.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Reset returns navigation to the live line.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}

// Matching returns distinct entries starting with prefix, newest first.
func (h *History) Matching(prefix string) []string {
	if prefix == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e == prefix || !strings.HasPrefix(e, prefix) {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
