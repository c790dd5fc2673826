// Package migrations embebe los .sql para goose (tests y arranque).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
