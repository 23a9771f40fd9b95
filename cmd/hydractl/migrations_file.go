//go:build file_migrations

package main

import (
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultMigrationsPath = "db/migrations"

// createMigrateInstance reads migrations from disk, from HYDRA_MIGRATIONS_PATH
// or db/migrations. Used while developing new migrations.
func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	path := os.Getenv("HYDRA_MIGRATIONS_PATH")
	if path == "" {
		path = defaultMigrationsPath
	}
	return migrate.New("file://"+path, dbURL)
}
