package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestFS_ListsMigrationsPerDialect(t *testing.T) {
	for _, d := range []Dialect{DialectSQLite, DialectPostgres} {
		fsys, err := FS(d)
		require.NoError(t, err)

		files, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		require.Contains(t, files, "00001_create_kv.sql", "dialect %s", d)
	}
}

func TestFS_UnknownDialect(t *testing.T) {
	_, err := FS(Dialect("oracle"))
	require.Error(t, err)
}

func TestUp_SQLiteCreatesKVTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Up(context.Background(), db, DialectSQLite))

	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES ('k', x'01')`)
	require.NoError(t, err)

	// applying twice is a no-op
	require.NoError(t, Up(context.Background(), db, DialectSQLite))
}

func TestUp_WrapsGooseError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		require.Equal(t, ".", dir)
		return boom
	}

	err := Up(context.Background(), nil, DialectPostgres)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "postgres migrations")
}
