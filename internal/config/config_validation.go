// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks the invariants shared by both binaries. Binary specific
// requirements are checked by the views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.PushDebounce < 0 || cfg.Workers.StartupDelay < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.Driver {
	case DBDriverSQLite, DBDriverBolt:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ClientID == "" {
		return ErrInvalidAdapterConfigs
	}
	if u, err := url.Parse(cfg.Adapter.HTTPAddress); err != nil || u.Host == "" {
		return fmt.Errorf("%w: bad address %q", ErrInvalidAdapterConfigs, cfg.Adapter.HTTPAddress)
	}

	if cfg.Workers.PushDebounce <= 0 || cfg.Workers.StartupDelay < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" ||
		cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 ||
		len(cfg.App.ClientIDs) == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DatabaseURI == "" {
		return fmt.Errorf("%w: database uri is required", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Blob.Driver {
	case BlobDriverPostgres, BlobDriverMemory:
	case BlobDriverS3:
		if cfg.Storage.Blob.S3.Bucket == "" || cfg.Storage.Blob.S3.Region == "" {
			return fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown blob driver %q", ErrInvalidStorageConfigs, cfg.Storage.Blob.Driver)
	}

	return nil
}
