// Package kv provides the durable key/value backends that collections are
// mirrored to.
//
// # Overview
//
// A Repository stores opaque byte values under string keys. Four
// implementations are provided:
//
//   - MemoryRepository   process-local map, for tests and ephemeral runs
//   - SQLiteRepository   a single local SQLite file (modernc.org/sqlite)
//   - PostgresRepository a shared PostgreSQL database (pgx stdlib driver)
//   - S3Repository       one object per key in an S3-compatible bucket
//
// The SQL backends run against DBTX, so they accept either *sql.DB or
// *sql.Tx, and share the kv table created by internal/migrations.
//
// # Contract
//
// Get on an absent key returns (nil, nil). Set is an upsert. Delete of an
// absent key is not an error.
//
// Typical Usage
//
//	repo, closer, err := kv.Open(ctx, cfg)
//	defer closer.Close()
//	_ = repo.Set(ctx, "pchela_user_profiles", []byte("[]"))
//	v, _ := repo.Get(ctx, "pchela_user_profiles")
package kv
