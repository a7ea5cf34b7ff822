package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pchela/internal/flagx"
	"github.com/dmitrijs2005/pchela/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	StorageBackend      string         `json:"storage_backend"`
	StorageKey          string         `json:"storage_key"`
	SQLitePath          string         `json:"sqlite_path"`
	PostgresDSN         string         `json:"postgres_dsn"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Prefix            string         `json:"s3_prefix"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	GRPCAddr            string         `json:"grpc_addr"`
	SecretKey           string         `json:"secret_key"`
	AccessTokenValidity timex.Duration `json:"access_token_validity"`
	MaxProfiles         int            `json:"max_profiles"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
	CatalogPath         string         `json:"catalog_path"`
}

func jsonFromConfig(c *Config) JsonConfig {
	return JsonConfig{
		StorageBackend:      c.StorageBackend,
		StorageKey:          c.StorageKey,
		SQLitePath:          c.SQLitePath,
		PostgresDSN:         c.PostgresDSN,
		S3Bucket:            c.S3Bucket,
		S3Prefix:            c.S3Prefix,
		S3Region:            c.S3Region,
		S3BaseEndpoint:      c.S3BaseEndpoint,
		S3RootUser:          c.S3RootUser,
		S3RootPassword:      c.S3RootPassword,
		GRPCAddr:            c.GRPCAddr,
		SecretKey:           c.SecretKey,
		AccessTokenValidity: timex.Duration{Duration: c.AccessTokenValidityDuration},
		MaxProfiles:         c.MaxProfiles,
		LogLevel:            c.LogLevel,
		LogFormat:           c.LogFormat,
		CatalogPath:         c.CatalogPath,
	}
}

func (jc JsonConfig) apply(c *Config) {
	c.StorageBackend = jc.StorageBackend
	c.StorageKey = jc.StorageKey
	c.SQLitePath = jc.SQLitePath
	c.PostgresDSN = jc.PostgresDSN
	c.S3Bucket = jc.S3Bucket
	c.S3Prefix = jc.S3Prefix
	c.S3Region = jc.S3Region
	c.S3BaseEndpoint = jc.S3BaseEndpoint
	c.S3RootUser = jc.S3RootUser
	c.S3RootPassword = jc.S3RootPassword
	c.GRPCAddr = jc.GRPCAddr
	c.SecretKey = jc.SecretKey
	c.AccessTokenValidityDuration = jc.AccessTokenValidity.Duration
	c.MaxProfiles = jc.MaxProfiles
	c.LogLevel = jc.LogLevel
	c.LogFormat = jc.LogFormat
	c.CatalogPath = jc.CatalogPath
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// (or $PCHELA_CONFIG). The DTO starts from the current cfg values, so keys
// absent from the file leave cfg unchanged.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := jsonFromConfig(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}
