package migrations

import "embed"

// FS contains embedded SQLite migrations for scorekeep storage.
//
//go:embed *.sql
var FS embed.FS
