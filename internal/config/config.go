// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Local store drivers.
const (
	DBDriverSQLite = "sqlite"
	DBDriverBolt   = "bolt"
)

// Snapshot blob drivers of the cloud server.
const (
	BlobDriverPostgres = "postgres"
	BlobDriverS3       = "s3"
	BlobDriverMemory   = "memory"
)

// StructuredConfig is the top-level configuration container shared by both
// binaries. Each binary reads only its own view of it.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: variable name of a scalar field.
type StructuredConfig struct {
	// App holds token parameters, registered client ids and the version.
	App App `envPrefix:"APP_"`

	// Storage holds the local store and the server persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the cloud server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the cloud API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the sync engine timings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional JSON file merged last.
	// Env: CONFIG, flags: -c, -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings of the cloud server.
type App struct {
	// TokenSignKey signs and verifies issued JWTs. Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued JWTs. Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the lifetime of access tokens.
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of refresh grants.
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// ClientIDs lists the client ids the server accepts, comma separated.
	// Env: APP_CLIENT_IDS
	ClientIDs []string `env:"CLIENT_IDS" envSeparator:","`

	// Version is exposed via /api/version/. Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups all persistence settings.
type Storage struct {
	DB   DB   `envPrefix:"DB_"`
	Blob Blob `envPrefix:"BLOB_"`
}

// DB holds database connection settings.
type DB struct {
	// Driver selects the client local store backend: "sqlite" or "bolt".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the client local store path or SQLite DSN.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// DatabaseURI is the PostgreSQL connection string of the cloud server.
	// Env: STORAGE_DB_DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI"`
}

// Blob holds the cloud server's snapshot blob storage settings.
type Blob struct {
	// Driver is one of "postgres", "s3" or "memory". Env: STORAGE_BLOB_DRIVER
	Driver string `env:"DRIVER"`

	S3 S3 `envPrefix:"S3_"`
}

// S3 holds object storage settings used by the "s3" blob driver.
type S3 struct {
	Bucket string `env:"BUCKET"`
	Region string `env:"REGION"`
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint string `env:"ENDPOINT"`
	// PathStyle forces path-style addressing.
	PathStyle bool `env:"PATH_STYLE"`
	// AccessKeyID and SecretAccessKey configure static credentials. When
	// empty the default AWS credential chain is used.
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// Server holds network and timeout settings of the cloud server.
type Server struct {
	// HTTPAddress is the listen address, "host:port". Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's cloud API settings.
type Adapter struct {
	// HTTPAddress is the base URL of the cloud API. Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound cloud call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ClientID is the id the transport bootstraps with. Env: ADAPTER_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
}

// Workers holds the sync engine timings.
type Workers struct {
	// PushDebounce is the quiet period before a push. Env: WORKERS_PUSH_DEBOUNCE
	PushDebounce time.Duration `env:"PUSH_DEBOUNCE"`

	// StartupDelay is the minimum presentation delay of the cold start.
	// Env: WORKERS_STARTUP_DELAY
	StartupDelay time.Duration `env:"STARTUP_DELAY"`
}

// Log holds logging output settings.
type Log struct {
	// File is the client log file. Env: LOG_FILE
	File string `env:"FILE"`
}

// defaults returns the first layer of every build.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          "go-dash-sync",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 30 * 24 * time.Hour,
			ClientIDs:            []string{DefaultClientID},
			Version:              "dev",
		},
		Storage: Storage{
			DB:   DB{Driver: DBDriverSQLite, DSN: "dashboard.db"},
			Blob: Blob{Driver: BlobDriverPostgres},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			ClientID:       DefaultClientID,
		},
		Workers: Workers{
			PushDebounce: 5 * time.Second,
			StartupDelay: 1200 * time.Millisecond,
		},
	}
}

// DefaultClientID is the client id registered out of the box.
const DefaultClientID = "dashboard-client"

// GetStructuredConfig loads and merges the configuration from all sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
