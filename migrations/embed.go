package migrations

import "embed"

// FS holds the embedded SQL migration files for all supported backends.
// Files are organized per backend: sqlite/NNN_name.sql and postgres/NNN_name.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
