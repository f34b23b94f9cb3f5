// Package db embeds the SQL migration files so production builds carry the
// schema with the binary.
package db

import "embed"

// Migrations holds the SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
