package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/pchela/internal/flagx"
)

var knownFlags = []string{"-b", "-f", "-d", "-a", "-k", "-t", "-m", "-l"}

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in the package doc are considered; everything else
// in args is filtered out by flagx.FilterArgs.
//
// Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (memory, sqlite, postgres, s3)")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.PostgresDSN, "d", cfg.PostgresDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.GRPCAddr, "a", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")
	tokenMinutes := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&cfg.MaxProfiles, "m", cfg.MaxProfiles, "maximum number of profiles")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	// only an explicit -t replaces the duration, so "90s" from JSON survives
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.AccessTokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
		}
	})
}
