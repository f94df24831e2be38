package sqlite

import (
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3/database"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Dialect is the goose dialect of the SQLite migrations.
const Dialect = database.DialectSQLite3

// Migrations returns the embedded goose migrations for the users schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}
