package seeder_test

import (
	"github.com/heartmarshall/vocab/internal/adapter/sqlite"
	"github.com/heartmarshall/vocab/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/vocab/internal/app/seeder"
)

// Compile-time checks: the SQLite adapters satisfy the pipeline contracts.
var (
	_ seeder.LexiconBulkRepo = (*lexicon.Repo)(nil)
	_ seeder.TxRunner        = (*sqlite.TxManager)(nil)
)
