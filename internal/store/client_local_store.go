package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/models"
)

// Keys of the local store. Collections are stored as bare JSON arrays.
const (
	KeySession        = "session"
	KeyProjects       = "projects"
	KeyCustomers      = "customers"
	KeyTeam           = "team"
	KeyCloudConnected = "cloud_connected"
	KeyCloudGrant     = "cloud_grant"
)

// LocalStore is the typed view of the dashboard's durable storage.
//
// Local persistence is treated as infallible by its callers: every backend
// failure is logged and swallowed here, and reads degrade to "absent".
type LocalStore struct {
	kv     KeyValueStore
	logger *logger.Logger
}

// NewLocalStore wraps kv.
func NewLocalStore(kv KeyValueStore, log *logger.Logger) *LocalStore {
	return &LocalStore{kv: kv, logger: log}
}

// LoadSnapshot reads the persisted working set. ok is false when no project
// collection was ever persisted, which marks a first run.
func (s *LocalStore) LoadSnapshot(ctx context.Context) (models.Snapshot, bool) {
	var snapshot models.Snapshot
	if !s.getJSON(ctx, KeyProjects, &snapshot.Projects) {
		return models.Snapshot{}, false
	}
	s.getJSON(ctx, KeyCustomers, &snapshot.Customers)
	s.getJSON(ctx, KeyTeam, &snapshot.TeamMembers)

	return snapshot.Normalize(), true
}

// SaveSnapshot persists every collection of snapshot.
func (s *LocalStore) SaveSnapshot(ctx context.Context, snapshot models.Snapshot) {
	snapshot = snapshot.Normalize()
	s.putJSON(ctx, KeyProjects, snapshot.Projects)
	s.putJSON(ctx, KeyCustomers, snapshot.Customers)
	s.putJSON(ctx, KeyTeam, snapshot.TeamMembers)
}

// LoadSession reads the persisted session.
func (s *LocalStore) LoadSession(ctx context.Context) (*models.Session, bool) {
	var session models.Session
	if !s.getJSON(ctx, KeySession, &session) {
		return nil, false
	}
	if !session.Role.Valid() {
		s.logger.Warn().Str("func", "LocalStore.LoadSession").Str("role", string(session.Role)).Msg("ignoring session with unknown role")
		return nil, false
	}

	return &session, true
}

// SaveSession persists session.
func (s *LocalStore) SaveSession(ctx context.Context, session models.Session) {
	s.putJSON(ctx, KeySession, session)
}

// ClearSession forgets the persisted session.
func (s *LocalStore) ClearSession(ctx context.Context) {
	s.delete(ctx, KeySession)
}

// CloudConnected reports whether the user opted into cloud sync.
func (s *LocalStore) CloudConnected(ctx context.Context) bool {
	value, ok := s.get(ctx, KeyCloudConnected)
	return ok && string(value) == "true"
}

// SetCloudConnected stores the cloud opt-in flag. Clearing the flag removes
// the key.
func (s *LocalStore) SetCloudConnected(ctx context.Context, connected bool) {
	if !connected {
		s.delete(ctx, KeyCloudConnected)
		return
	}
	s.put(ctx, KeyCloudConnected, []byte("true"))
}

// LoadGrant returns the refresh grant used for silent authentication.
func (s *LocalStore) LoadGrant(ctx context.Context) (string, bool) {
	value, ok := s.get(ctx, KeyCloudGrant)
	if !ok || len(value) == 0 {
		return "", false
	}
	return string(value), true
}

// SaveGrant stores the rotated refresh grant.
func (s *LocalStore) SaveGrant(ctx context.Context, grant string) {
	s.put(ctx, KeyCloudGrant, []byte(grant))
}

// ClearGrant forgets the refresh grant.
func (s *LocalStore) ClearGrant(ctx context.Context) {
	s.delete(ctx, KeyCloudGrant)
}

// Clear wipes everything, session and cloud flag included.
func (s *LocalStore) Clear(ctx context.Context) {
	if err := s.kv.Clear(ctx); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.Clear").Msg("error clearing local store")
	}
}

func (s *LocalStore) get(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalStore.get").Str("key", key).Msg("error reading local store")
		return nil, false
	}
	return value, ok
}

func (s *LocalStore) put(ctx context.Context, key string, value []byte) {
	if err := s.kv.Put(ctx, key, value); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.put").Str("key", key).Msg("error writing local store")
	}
}

func (s *LocalStore) delete(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.delete").Str("key", key).Msg("error deleting from local store")
	}
}

func (s *LocalStore) getJSON(ctx context.Context, key string, dest any) bool {
	value, ok := s.get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(value, dest); err != nil {
		s.logger.Err(err).Str("func", "LocalStore.getJSON").Str("key", key).Msg("error decoding local record")
		return false
	}
	return true
}

func (s *LocalStore) putJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalStore.putJSON").Str("key", key).Msg("error encoding local record")
		return
	}
	s.put(ctx, key, data)
}
