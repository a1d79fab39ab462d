// Package migrations embeds the schema so the server can apply it with goose
// at startup without a migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
