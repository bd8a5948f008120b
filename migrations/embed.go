package migrations

import "embed"

// FS содержит SQL-миграции, применяемые goose при старте
//
//go:embed *.sql
var FS embed.FS
