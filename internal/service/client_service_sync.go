package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
)

type syncReconciler struct {
	local     SnapshotStore
	transport adapter.CloudTransport
	sessions  *SessionManager
	gate      AccessGate
	confirmer Confirmer
	ids       IDGenerator

	clientID     string
	pushDebounce time.Duration
	startupDelay time.Duration
	now          func() time.Time

	mu        sync.Mutex
	baseCtx   context.Context
	started   bool
	phase     models.Phase
	snapshot  models.Snapshot
	state     models.SyncState
	pushTimer *time.Timer
	pushGen   uint64
	ready     chan struct{}

	// connecting is held from interactive authentication until the
	// local-or-remote decision has been applied. No push runs meanwhile.
	connecting bool
	// deferredPush records a mutation made while connecting.
	deferredPush bool

	// notifyMu serializes deliveries so subscribers observe states in order.
	notifyMu    sync.Mutex
	subscribers map[int]func(models.SyncState)
	nextSubID   int

	logger *logger.Logger
}

// Option configures the sync engine.
type Option func(*syncReconciler)

// WithClock replaces the wall clock used for timestamps and generated ids.
func WithClock(now func() time.Time) Option {
	return func(r *syncReconciler) {
		r.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 record id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(r *syncReconciler) {
		r.ids = ids
	}
}

// NewSyncReconciler builds the sync engine. It is idle until Start is called.
func NewSyncReconciler(
	local SnapshotStore,
	transport adapter.CloudTransport,
	sessions *SessionManager,
	confirmer Confirmer,
	workers config.ClientWorkers,
	clientID string,
	log *logger.Logger,
	opts ...Option,
) DashboardEngine {
	r := &syncReconciler{
		local:        local,
		transport:    transport,
		sessions:     sessions,
		confirmer:    confirmer,
		ids:          utils.NewUUIDGenerator(),
		clientID:     clientID,
		pushDebounce: workers.PushDebounce,
		startupDelay: workers.StartupDelay,
		now:          time.Now,
		baseCtx:      context.Background(),
		phase:        models.PhaseIdle,
		snapshot:     models.Snapshot{}.Normalize(),
		ready:        make(chan struct{}),
		subscribers:  make(map[int]func(models.SyncState)),
		logger:       log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start implements [SyncReconciler].
func (r *syncReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.baseCtx = ctx
	r.phase = models.PhaseInitializing
	r.mu.Unlock()

	startedAt := time.Now()
	session, _ := r.sessions.Restore(ctx)

	snapshot, ok := r.local.LoadSnapshot(ctx)
	if !ok {
		r.logger.Info().Str("func", "syncReconciler.Start").Msg("no local snapshot, seeding default dataset")
		snapshot = models.DefaultDataset()
	}
	cloud := r.local.CloudConnected(ctx)

	r.mu.Lock()
	r.snapshot = snapshot
	r.mu.Unlock()
	r.notify()

	go r.initialize(ctx, session, cloud, startedAt)
}

func (r *syncReconciler) initialize(ctx context.Context, session *models.Session, cloud bool, startedAt time.Time) {
	log := r.logger.With().Str("func", "syncReconciler.initialize").Logger()

	defer func() {
		r.awaitPresentationDelay(ctx, startedAt)

		r.mu.Lock()
		if r.phase == models.PhaseInitializing || r.phase == models.PhaseSilentAuthAttempt {
			r.phase = models.PhaseDisconnected
			if r.state.Connected {
				r.phase = models.PhaseConnected
			}
		}
		r.mu.Unlock()

		close(r.ready)
		r.notify()
	}()

	if err := r.transport.Init(ctx, r.clientID); err != nil {
		log.Warn().Err(err).Msg("cloud client initialization failed, continuing local-only")
	}

	if !cloud || !r.gate.CanWrite(session) {
		return
	}

	r.setPhase(models.PhaseSilentAuthAttempt)
	if err := r.transport.Authenticate(ctx, models.AuthModeNone); err != nil {
		log.Warn().Err(err).Msg("silent reconnect failed")
		r.mu.Lock()
		r.state.Connected = false
		r.setErrorLocked(models.ErrorKindSessionExpired)
		r.mu.Unlock()
		return
	}

	r.sessions.SetAuthState(ctx, models.AuthStateSilent)
	r.mu.Lock()
	r.state.Connected = true
	r.setErrorLocked(models.ErrorKindNone)
	r.mu.Unlock()
	r.notify()

	blob, err := r.pull(ctx)
	if err != nil {
		log.Err(err).Msg("initial pull failed")
		r.mu.Lock()
		r.state.Connected = false
		r.setErrorLocked(transferFailure(err))
		r.mu.Unlock()
		return
	}
	if blob != nil {
		r.replaceWithRemote(ctx, blob)
	}
}

func (r *syncReconciler) awaitPresentationDelay(ctx context.Context, startedAt time.Time) {
	remaining := r.startupDelay - time.Since(startedAt)
	if remaining <= 0 {
		return
	}
	t := time.NewTimer(remaining)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Ready implements [SyncReconciler].
func (r *syncReconciler) Ready() <-chan struct{} {
	return r.ready
}

// ConnectCloud implements [SyncReconciler].
func (r *syncReconciler) ConnectCloud(ctx context.Context) error {
	if !r.gate.CanWrite(r.sessions.Session()) {
		return nil
	}

	r.mu.Lock()
	if r.connecting || r.state.Syncing {
		r.mu.Unlock()
		return ErrSyncInProgress
	}
	r.connecting = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.connecting = false
		if r.deferredPush {
			r.deferredPush = false
			r.schedulePushLocked()
		}
		r.mu.Unlock()
	}()

	log := r.logger.With().Str("func", "syncReconciler.ConnectCloud").Logger()

	if err := r.transport.Authenticate(ctx, models.AuthModeConsent); err != nil {
		log.Warn().Err(err).Msg("interactive authentication failed")
		r.setError(models.ErrorKindAuthFailed)
		return fmt.Errorf("connect cloud: %w", err)
	}

	r.local.SetCloudConnected(ctx, true)
	r.sessions.SetAuthState(ctx, models.AuthStateInteractive)
	r.mu.Lock()
	r.state.Connected = true
	r.setErrorLocked(models.ErrorKindNone)
	r.phase = models.PhaseConnected
	r.mu.Unlock()
	r.notify()

	blob, err := r.pull(ctx)
	if err != nil {
		log.Err(err).Msg("pull after connect failed")
		if !errors.Is(err, ErrSyncInProgress) {
			r.setError(transferFailure(err))
		}
		return fmt.Errorf("pull from cloud: %w", err)
	}

	if blob != nil && r.confirm(ctx, app.PromptUseRemote) {
		r.replaceWithRemote(ctx, blob)
		log.Info().Msg("local snapshot replaced by cloud snapshot")
		return nil
	}

	r.mu.Lock()
	r.cancelPushLocked()
	r.deferredPush = false
	r.mu.Unlock()

	if err = r.push(ctx); err != nil {
		log.Err(err).Msg("push after connect failed")
		return fmt.Errorf("push to cloud: %w", err)
	}
	log.Info().Msg("cloud snapshot replaced by local snapshot")
	return nil
}

// DisconnectCloud implements [SyncReconciler].
func (r *syncReconciler) DisconnectCloud(ctx context.Context) {
	r.mu.Lock()
	r.cancelPushLocked()
	r.state.Connected = false
	r.setErrorLocked(models.ErrorKindNone)
	r.phase = models.PhaseDisconnected
	r.mu.Unlock()

	r.local.SetCloudConnected(ctx, false)
	if err := r.transport.SignOut(ctx); err != nil {
		r.logger.Err(err).Str("func", "syncReconciler.DisconnectCloud").Msg("cloud sign out failed")
	}
	r.sessions.SetAuthState(ctx, models.AuthStateUnauthenticated)
	r.notify()
}

// Logout implements [SyncReconciler].
func (r *syncReconciler) Logout(ctx context.Context) bool {
	if !r.sessions.Logout(ctx) {
		return false
	}
	r.mu.Lock()
	r.cancelPushLocked()
	r.mu.Unlock()
	return true
}

// SyncStatus implements [SyncReconciler].
func (r *syncReconciler) SyncStatus() models.SyncState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Phase implements [SyncReconciler].
func (r *syncReconciler) Phase() models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Subscribe implements [SyncReconciler]. fn must not call mutating methods of
// the engine.
func (r *syncReconciler) Subscribe(fn func(models.SyncState)) func() {
	r.notifyMu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	r.notifyMu.Unlock()

	return func() {
		r.notifyMu.Lock()
		delete(r.subscribers, id)
		r.notifyMu.Unlock()
	}
}

// Snapshot implements [SyncReconciler].
func (r *syncReconciler) Snapshot() models.Snapshot {
	return r.sessions.Filter(r.FullSnapshot())
}

// FullSnapshot implements [SyncReconciler].
func (r *syncReconciler) FullSnapshot() models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.Clone()
}

// pull loads the remote snapshot with the syncing flag raised.
func (r *syncReconciler) pull(ctx context.Context) (*models.CloudBlob, error) {
	r.mu.Lock()
	if r.state.Syncing {
		r.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	r.state.Syncing = true
	r.mu.Unlock()
	r.notify()

	defer func() {
		r.mu.Lock()
		r.state.Syncing = false
		r.mu.Unlock()
		r.notify()
	}()

	return r.transport.LoadFromCloud(ctx)
}

// push writes the current snapshot to the cloud with the syncing flag raised.
func (r *syncReconciler) push(ctx context.Context) error {
	r.mu.Lock()
	if r.state.Syncing {
		r.mu.Unlock()
		return ErrSyncInProgress
	}
	r.state.Syncing = true
	snapshot := r.snapshot.Clone()
	r.mu.Unlock()
	r.notify()

	owner := ""
	if session := r.sessions.Session(); session != nil {
		owner = session.Email
	}
	err := r.transport.SaveToCloud(ctx, models.BlobFromSnapshot(snapshot, owner, r.now()))

	r.mu.Lock()
	r.state.Syncing = false
	if err != nil {
		kind := transferFailure(err)
		if kind == models.ErrorKindSessionExpired {
			r.state.Connected = false
			r.phase = models.PhaseDisconnected
		}
		r.setErrorLocked(kind)
	} else {
		now := r.now()
		r.state.LastCloudSync = &now
		if !r.state.Error.SuspendsSync() {
			r.setErrorLocked(models.ErrorKindNone)
		}
	}
	r.mu.Unlock()
	r.notify()

	return err
}

// replaceWithRemote overwrites the in-memory and the local snapshot with blob.
func (r *syncReconciler) replaceWithRemote(ctx context.Context, blob *models.CloudBlob) {
	snapshot := blob.Snapshot()
	now := r.now()

	r.mu.Lock()
	r.cancelPushLocked()
	r.deferredPush = false
	r.snapshot = snapshot
	r.local.SaveSnapshot(ctx, snapshot)
	r.state.LastLocalSave = now
	r.state.LastCloudSync = &now
	r.mu.Unlock()
	r.notify()
}

// mutate applies fn to a copy of the snapshot and commits the copy when fn
// reports a change. The committed snapshot is persisted at once and a push
// is scheduled.
func (r *syncReconciler) mutate(ctx context.Context, fn func(s *models.Snapshot, session *models.Session) bool) bool {
	session := r.sessions.Session()
	if !r.gate.CanWrite(session) {
		return false
	}

	r.mu.Lock()
	next := r.snapshot.Clone()
	if !fn(&next, session) {
		r.mu.Unlock()
		return false
	}
	now := r.now()
	next.LastUpdated = now
	r.snapshot = next
	r.local.SaveSnapshot(ctx, next)
	r.state.LastLocalSave = now
	r.schedulePushLocked()
	r.mu.Unlock()

	r.notify()
	return true
}

// schedulePushLocked (re)arms the single push timer. r.mu must be held.
func (r *syncReconciler) schedulePushLocked() {
	if r.connecting {
		r.deferredPush = true
		return
	}
	if !r.state.Connected || r.state.Error.SuspendsSync() {
		return
	}
	if r.pushTimer != nil {
		r.pushTimer.Stop()
	}
	r.pushGen++
	gen := r.pushGen
	r.pushTimer = time.AfterFunc(r.pushDebounce, func() {
		r.firePush(gen)
	})
}

// cancelPushLocked drops the pending push. r.mu must be held.
func (r *syncReconciler) cancelPushLocked() {
	if r.pushTimer != nil {
		r.pushTimer.Stop()
		r.pushTimer = nil
	}
	r.pushGen++
}

func (r *syncReconciler) firePush(gen uint64) {
	log := r.logger.With().Str("func", "syncReconciler.firePush").Logger()

	r.mu.Lock()
	if gen != r.pushGen {
		r.mu.Unlock()
		return
	}
	r.pushTimer = nil
	skip := r.state.Syncing || r.connecting || !r.state.Connected || r.state.Error.SuspendsSync()
	ctx := r.baseCtx
	r.mu.Unlock()

	if skip || !r.gate.CanWrite(r.sessions.Session()) {
		log.Debug().Msg("debounced push skipped")
		return
	}
	if err := r.push(ctx); err != nil {
		log.Err(err).Msg("debounced push failed")
	}
}

func (r *syncReconciler) confirm(ctx context.Context, question string) bool {
	if r.confirmer == nil {
		return false
	}
	return r.confirmer.Confirm(ctx, question)
}

func (r *syncReconciler) setPhase(phase models.Phase) {
	r.mu.Lock()
	r.phase = phase
	r.mu.Unlock()
	r.notify()
}

// DismissError implements [SyncReconciler].
func (r *syncReconciler) DismissError() {
	r.mu.Lock()
	if r.state.Error == models.ErrorKindNone || r.state.ErrorDismissed {
		r.mu.Unlock()
		return
	}
	r.state.ErrorDismissed = true
	r.mu.Unlock()
	r.notify()
}

// setErrorLocked records kind and shows it again if an earlier error was
// dismissed. r.mu must be held.
func (r *syncReconciler) setErrorLocked(kind models.ErrorKind) {
	r.state.Error = kind
	r.state.ErrorDismissed = false
}

func (r *syncReconciler) setError(kind models.ErrorKind) {
	r.mu.Lock()
	r.setErrorLocked(kind)
	r.mu.Unlock()
	r.notify()
}

func (r *syncReconciler) notify() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	state := r.SyncStatus()
	for _, fn := range r.subscribers {
		fn(state)
	}
}
