package service

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/models"
)

// DefaultView is the screen shown after login and logout.
const DefaultView = "dashboard"

// SessionManager owns the logged-in session, the view partition and the
// active view.
type SessionManager struct {
	store     SessionStore
	confirmer Confirmer

	mu            sync.RWMutex
	session       *models.Session
	viewPartition string
	view          string

	logger *logger.Logger
}

func NewSessionManager(store SessionStore, confirmer Confirmer, log *logger.Logger) *SessionManager {
	return &SessionManager{
		store:         store,
		confirmer:     confirmer,
		viewPartition: models.PartitionAll,
		view:          DefaultView,
		logger:        log,
	}
}

// Login creates and persists a session. A Guest is always unauthenticated.
func (m *SessionManager) Login(ctx context.Context, identity models.Identity, partition string) models.Session {
	if !identity.Role.Valid() {
		identity.Role = models.RoleGuest
	}
	session := models.Session{
		Identity:     identity,
		DepartmentID: partition,
		AuthState:    models.AuthStateUnauthenticated,
	}

	m.mu.Lock()
	m.session = &session
	m.viewPartition = session.HomePartition()
	m.view = DefaultView
	m.mu.Unlock()

	m.store.SaveSession(ctx, session)
	m.logger.Info().Str("func", "SessionManager.Login").
		Str("email", identity.Email).Str("role", string(identity.Role)).Str("partition", partition).
		Msg("session started")
	return session
}

// Restore loads the persisted session on cold start and seeds the view
// partition from it.
func (m *SessionManager) Restore(ctx context.Context) (*models.Session, bool) {
	session, ok := m.store.LoadSession(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.session = nil
		m.viewPartition = models.PartitionAll
		return nil, false
	}
	if session.Role == models.RoleGuest {
		session.AuthState = models.AuthStateUnauthenticated
	}
	m.session = session
	m.viewPartition = session.HomePartition()

	cp := *session
	return &cp, true
}

// Logout asks for confirmation and, on yes, clears the session and resets the
// active view.
func (m *SessionManager) Logout(ctx context.Context) bool {
	if m.Session() == nil {
		return false
	}
	if m.confirmer != nil && !m.confirmer.Confirm(ctx, app.PromptLogout) {
		return false
	}

	m.mu.Lock()
	m.session = nil
	m.viewPartition = models.PartitionAll
	m.view = DefaultView
	m.mu.Unlock()

	m.store.ClearSession(ctx)
	m.logger.Info().Str("func", "SessionManager.Logout").Msg("session cleared")
	return true
}

// Session returns a copy of the current session, nil when logged out.
func (m *SessionManager) Session() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	cp := *m.session
	return &cp
}

func (m *SessionManager) ViewPartition() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewPartition
}

// SetViewPartition switches the view partition. Only roles that see all
// partitions may switch; members stay pinned to their own.
func (m *SessionManager) SetViewPartition(partition string) bool {
	if partition != models.PartitionAll && !slices.ContainsFunc(models.Departments, func(d models.Department) bool {
		return d.ID == partition
	}) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.Role.SeesAllPartitions() {
		return false
	}
	m.viewPartition = partition
	return true
}

func (m *SessionManager) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

func (m *SessionManager) SetView(view string) {
	if view == "" {
		view = DefaultView
	}
	m.mu.Lock()
	m.view = view
	m.mu.Unlock()
}

// Filter narrows s to the current view partition.
func (m *SessionManager) Filter(s models.Snapshot) models.Snapshot {
	return s.FilterByPartition(m.ViewPartition())
}

// SetAuthState records how the cloud session was established. It is ignored
// for guests and when nobody is logged in.
func (m *SessionManager) SetAuthState(ctx context.Context, state models.AuthState) {
	m.mu.Lock()
	if m.session == nil || m.session.Role == models.RoleGuest || m.session.AuthState == state {
		m.mu.Unlock()
		return
	}
	m.session.AuthState = state
	session := *m.session
	m.mu.Unlock()

	m.store.SaveSession(ctx, session)
}

// forget drops the in-memory session without asking. The persisted copy is
// expected to be gone already.
func (m *SessionManager) forget() {
	m.mu.Lock()
	m.session = nil
	m.viewPartition = models.PartitionAll
	m.view = DefaultView
	m.mu.Unlock()
}
