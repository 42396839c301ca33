package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
)

// sqliteKeyValueStore keeps records in the kv_records table of the local
// SQLite database.
type sqliteKeyValueStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteKeyValueStore wraps an already migrated SQLite connection.
func NewSQLiteKeyValueStore(db *DB, logger *logger.Logger) KeyValueStore {
	return &sqliteKeyValueStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, getRecord, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyValueStore.Get").Str("key", key).Msg("error reading record")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqliteKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.DB.ExecContext(ctx, putRecord, key, value); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyValueStore.Put").Str("key", key).Msg("error writing record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deleteRecord, key); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyValueStore.Delete").Str("key", key).Msg("error deleting record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, clearRecords); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyValueStore.Clear").Msg("error clearing records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Close() error {
	return s.DB.Close()
}
