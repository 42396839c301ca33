package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/models"
)

type snapshotService struct {
	storage store.SnapshotBlobStorage
	now     func() time.Time

	logger *logger.Logger
}

func NewSnapshotService(storage store.SnapshotBlobStorage, logger *logger.Logger) SnapshotService {
	return &snapshotService{
		storage: storage,
		now:     time.Now,
		logger:  logger,
	}
}

// GetSnapshot returns the blob stored for owner; store.ErrSnapshotNotFound
// when there is none.
func (s *snapshotService) GetSnapshot(ctx context.Context, owner string) (models.CloudBlob, error) {
	stored, err := s.storage.GetSnapshot(ctx, owner)
	if err != nil {
		return models.CloudBlob{}, fmt.Errorf("get snapshot: %w", err)
	}

	var blob models.CloudBlob
	if err = json.Unmarshal(stored.Payload, &blob); err != nil {
		logger.FromContext(ctx).Err(err).Str("owner", owner).Msg("stored snapshot is not valid JSON")
		return models.CloudBlob{}, fmt.Errorf("decode stored snapshot: %w", err)
	}
	return blob, nil
}

// PutSnapshot replaces the blob stored for owner as a whole.
func (s *snapshotService) PutSnapshot(ctx context.Context, owner string, blob models.CloudBlob) error {
	payload, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = s.storage.PutSnapshot(ctx, models.StoredSnapshot{
		Owner:     owner,
		Payload:   payload,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("owner", owner).Int("bytes", len(payload)).
		Int("projects", len(blob.Projects)).Msg("snapshot stored")
	return nil
}
