// Package db carries the embedded migration files so binaries can apply them
// without shipping loose SQL alongside the executable.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
