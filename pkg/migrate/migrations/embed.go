package migrations

import "embed"

// FS holds every goose SQL migration compiled into the binary.
//
//go:embed *.sql
var FS embed.FS
