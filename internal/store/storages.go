package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
)

// Storages groups the persistence layer of the cloud server.
type Storages struct {
	UserRepository  UserRepository
	SnapshotStorage SnapshotBlobStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies the migrations and builds the
// snapshot blob driver selected by cfg.Blob.Driver.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("blob_driver", cfg.Blob.Driver).Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB.DatabaseURI, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	snapshots, err := newSnapshotStorage(ctx, cfg.Blob, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		SnapshotStorage: snapshots,
		db:              db,
	}, nil
}

func newSnapshotStorage(ctx context.Context, cfg config.Blob, db *DB, log *logger.Logger) (SnapshotBlobStorage, error) {
	switch cfg.Driver {
	case config.BlobDriverPostgres:
		return NewPostgresSnapshotStorage(db, log), nil
	case config.BlobDriverS3:
		return NewS3SnapshotStorage(ctx, cfg.S3, nil, log)
	case config.BlobDriverMemory:
		return NewMemorySnapshotStorage(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
