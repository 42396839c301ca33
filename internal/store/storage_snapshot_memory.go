package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-dash-sync/models"
)

// memorySnapshotStorage is the "memory" blob driver, for tests and demos.
type memorySnapshotStorage struct {
	mu        sync.RWMutex
	snapshots map[string]models.StoredSnapshot
}

// NewMemorySnapshotStorage constructs an empty in-process blob store.
func NewMemorySnapshotStorage() SnapshotBlobStorage {
	return &memorySnapshotStorage{snapshots: make(map[string]models.StoredSnapshot)}
}

func (s *memorySnapshotStorage) GetSnapshot(_ context.Context, owner string) (models.StoredSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[owner]
	if !ok {
		return models.StoredSnapshot{}, ErrSnapshotNotFound
	}
	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	return snapshot, nil
}

func (s *memorySnapshotStorage) PutSnapshot(_ context.Context, snapshot models.StoredSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	s.snapshots[snapshot.Owner] = snapshot
	return nil
}
