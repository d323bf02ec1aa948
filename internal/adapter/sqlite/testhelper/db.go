// Package testhelper provides a migrated, throwaway SQLite database for tests.
package testhelper

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
)

// SetupTestDB creates a fresh database file under t.TempDir, applies the
// migrations and closes it via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "lexicon.db")
	db, err := sqlite.Open(ctx, path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("testhelper: open test db: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
