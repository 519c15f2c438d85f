// Package migrations embeds the SQL schema migrations for each storage engine.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
