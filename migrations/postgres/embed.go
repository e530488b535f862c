// Package migrations embeds SQL migration files.
package migrations

import "embed"

// FS contiene las migraciones del schema de la aplicación.
//
//go:embed *.sql
var FS embed.FS
