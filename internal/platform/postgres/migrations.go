package postgres

import (
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3/database"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Dialect is the goose dialect of the PostgreSQL migrations.
const Dialect = database.DialectPostgres

// Migrations returns the embedded goose migrations for the users schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		// The directory is compiled in; fs.Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
