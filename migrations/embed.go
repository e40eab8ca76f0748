// Package migrations holds the SQL schema, embedded so the server can migrate
// itself on start-up without the files being present on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
