// Package config loads runtime configuration for the pchela CLI and server.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config, or $PCHELA_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   storage backend: memory, sqlite, postgres or s3
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-a string   gRPC listen address
//	-k string   JWT signing secret
//	-t int      access token validity (minutes)
//	-m int      maximum number of profiles
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Fields missing from the file keep their current values. Durations accept
// "15m" style strings or integer nanoseconds:
//
//	{
//	  "storage_backend": "s3",
//	  "storage_key": "pchela_user_profiles",
//	  "s3_bucket": "pchela",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/",
//	  "access_token_validity": "24h"
//	}
package config
