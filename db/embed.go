// Package db holds the SQL migrations, embedded when built with
// -tags embed_migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
