// Package migrations holds the versioned schema of the requirement database.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and NNN_name.down.sql files, applied in
// version order by sqlite.NewStore.
//
//go:embed *.sql
var FS embed.FS
