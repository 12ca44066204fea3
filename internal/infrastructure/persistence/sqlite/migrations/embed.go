package migrations

import "embed"

// FS contains embedded SQLite migrations for collection storage.
//
//go:embed *.sql
var FS embed.FS
