// Package migrations хранит SQL-схему для goose, отдельно для каждого диалекта.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
