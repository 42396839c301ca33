// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/models"
)

// postgresSnapshotStorage keeps snapshot blobs in the snapshots table.
type postgresSnapshotStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewPostgresSnapshotStorage constructs the "postgres" blob driver.
func NewPostgresSnapshotStorage(db *DB, logger *logger.Logger) SnapshotBlobStorage {
	return &postgresSnapshotStorage{db: db, logger: logger}
}

func (s *postgresSnapshotStorage) GetSnapshot(ctx context.Context, owner string) (models.StoredSnapshot, error) {
	query, args, err := getSnapshotQuery(owner)
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	snapshot := models.StoredSnapshot{Owner: owner}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&snapshot.Payload, &snapshot.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.StoredSnapshot{}, ErrSnapshotNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*postgresSnapshotStorage.GetSnapshot").Msg("error selecting snapshot")
		return models.StoredSnapshot{}, s.db.wrapDBError(ErrExecutingQuery, err)
	}

	return snapshot, nil
}

func (s *postgresSnapshotStorage) PutSnapshot(ctx context.Context, snapshot models.StoredSnapshot) error {
	query, args, err := putSnapshotQuery(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postgresSnapshotStorage.PutSnapshot").Msg("error upserting snapshot")
		return s.db.wrapDBError(ErrExecutingStatement, err)
	}

	return nil
}
