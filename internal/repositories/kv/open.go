package kv

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pchela/internal/config"
	"github.com/dmitrijs2005/pchela/internal/filex"
	"github.com/dmitrijs2005/pchela/internal/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the repository selected by cfg.StorageBackend. SQL backends are
// migrated before use. The returned closer releases the underlying handle.
func Open(ctx context.Context, cfg *config.Config) (Repository, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryRepository(), nopCloser{}, nil
	case config.BackendSQLite:
		if isSQLiteFile(cfg.SQLitePath) {
			if _, err := filex.EnsureParentDir(cfg.SQLitePath); err != nil {
				return nil, nil, err
			}
		}
		db, err := openSQL(ctx, "sqlite", cfg.SQLitePath, migrations.DialectSQLite)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteRepository(db), db, nil
	case config.BackendPostgres:
		db, err := openSQL(ctx, "pgx", cfg.PostgresDSN, migrations.DialectPostgres)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresRepository(db), db, nil
	case config.BackendS3:
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewS3Repository(client, cfg.S3Bucket, cfg.S3Prefix), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// isSQLiteFile reports whether path names a plain database file rather than
// ":memory:" or a "file:" URI.
func isSQLiteFile(path string) bool {
	return path != "" && path != ":memory:" && !strings.HasPrefix(path, "file:")
}

func openSQL(ctx context.Context, driver, dsn string, d migrations.Dialect) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	// SQLite serialises writers; a single connection also keeps ":memory:" databases alive.
	if d == migrations.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if err := migrations.Up(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3RootUser, cfg.S3RootPassword, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}
