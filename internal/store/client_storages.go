package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
)

// ClientStorages groups the client-side storage layer.
type ClientStorages struct {
	// KV is the selected backend.
	KV KeyValueStore
	// Local is the typed view used by the services.
	Local *LocalStore
}

// NewClientStorages opens the backend selected by cfg.Driver:
//   - "sqlite": the DSN is a SQLite file, migrated with goose on open;
//   - "bolt": the DSN is a bbolt file.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating client storages...")

	var kv KeyValueStore
	switch cfg.Driver {
	case config.DBDriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		kv = NewSQLiteKeyValueStore(db, log)
	case config.DBDriverBolt:
		boltKV, err := NewBoltKeyValueStore(cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		kv = boltKV
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	return &ClientStorages{
		KV:    kv,
		Local: NewLocalStore(kv, log),
	}, nil
}

// Close releases the backend.
func (s *ClientStorages) Close() error {
	return s.KV.Close()
}
