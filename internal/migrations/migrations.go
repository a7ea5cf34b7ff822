// Package migrations embeds the schema for the SQL key/value backends and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

// Dialect names the SQL flavour a migration set is written for.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// FS returns the migration files for the dialect, rooted at the directory
// holding the .sql files.
func FS(d Dialect) (fs.FS, error) {
	switch d {
	case DialectSQLite:
		return fs.Sub(sqliteFS, "sqlite")
	case DialectPostgres:
		return fs.Sub(postgresFS, "postgres")
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}

// Up applies all pending migrations for the dialect to db.
//
// goose keeps its base filesystem and dialect in package state, so Up must
// not be called concurrently.
func Up(ctx context.Context, db *sql.DB, d Dialect) error {
	fsys, err := FS(d)
	if err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply %s migrations: %w", d, err)
	}
	return nil
}
