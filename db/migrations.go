// Package db embeds the SQL migrations applied by hydractl.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
