// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/mock"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDebounce = 40 * time.Millisecond

// fakeConfirmer answers every question with answer and records the questions.
type fakeConfirmer struct {
	mu        sync.Mutex
	answer    bool
	questions []string
}

func (c *fakeConfirmer) Confirm(_ context.Context, question string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, question)
	return c.answer
}

func (c *fakeConfirmer) asked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.questions...)
}

type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newLocalStore(t *testing.T) *store.LocalStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.db")
	kv, err := store.NewBoltKeyValueStore(path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return store.NewLocalStore(kv, logger.Nop())
}

type fixture struct {
	engine    *syncReconciler
	local     *store.LocalStore
	transport *mock.MockCloudTransport
	sessions  *SessionManager
	confirmer *fakeConfirmer
	clock     *stepClock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	local := newLocalStore(t)
	confirmer := &fakeConfirmer{answer: true}
	sessions := NewSessionManager(local, confirmer, logger.Nop())
	transport := mock.NewMockCloudTransport(ctrl)
	clock := newStepClock()

	opts = append([]Option{WithClock(clock.Now), WithIDGenerator(&seqIDs{})}, opts...)
	engine := NewSyncReconciler(local, transport, sessions, confirmer,
		config.ClientWorkers{PushDebounce: testDebounce},
		"dashboard-client", logger.Nop(), opts...).(*syncReconciler)

	t.Cleanup(func() {
		engine.mu.Lock()
		engine.cancelPushLocked()
		engine.mu.Unlock()
	})

	f := &fixture{
		engine:    engine,
		local:     local,
		transport: transport,
		sessions:  sessions,
		confirmer: confirmer,
		clock:     clock,
	}
	f.seed()
	return f
}

func (f *fixture) login(role models.Role, partition string) {
	f.sessions.Login(context.Background(), models.Identity{
		Email: "alice@example.com", Name: "Alice", Picture: "https://example.com/a.png", Role: role,
	}, partition)
}

// markConnected puts the engine in the connected state without a handshake.
func (f *fixture) markConnected() {
	f.engine.mu.Lock()
	f.engine.state.Connected = true
	f.engine.phase = models.PhaseConnected
	f.engine.mu.Unlock()
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	f.engine.Start(context.Background())
	select {
	case <-f.engine.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not become ready")
	}
}

func remoteBlob() *models.CloudBlob {
	return &models.CloudBlob{
		Projects:    []models.Project{{ID: "PJ900001", Name: "Remote project", Status: models.ProjectStatusPlanning, DepartmentID: "DEPT-2"}},
		Customers:   []models.Customer{{ID: "CU-1", Name: "Remote customer", DepartmentID: "DEPT-2"}},
		LastUpdated: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		UserEmail:   "alice@example.com",
	}
}

func projectIDs(s models.Snapshot) []string {
	ids := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		ids = append(ids, p.ID)
	}
	return ids
}

// ── Cold start ──────────────────────────────────────────────────────────────

func TestStart_NoData_SeedsDefaultDataset(t *testing.T) {
	f := newFixture(t)
	f.transport.EXPECT().Init(gomock.Any(), "dashboard-client").Return(nil)

	f.start(t)

	assert.Equal(t, projectIDs(models.DefaultDataset()), projectIDs(f.engine.FullSnapshot()))
	assert.Nil(t, f.engine.SyncStatus().LastCloudSync)
	assert.False(t, f.engine.SyncStatus().Connected)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())

	_, persisted := f.local.LoadSnapshot(context.Background())
	assert.False(t, persisted, "default dataset is not persisted until the first mutation")
}

func TestStart_RestoresPersistedSnapshot(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	saved := models.DefaultDataset()
	saved.Projects = saved.Projects[:1]
	saved.Projects[0].Name = "Saved earlier"
	f.local.SaveSnapshot(context.Background(), saved)
	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)

	f.start(t)

	got := f.engine.FullSnapshot()
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Saved earlier", got.Projects[0].Name)

	first, ok := f.local.LoadSnapshot(context.Background())
	require.True(t, ok)
	second, ok := f.local.LoadSnapshot(context.Background())
	require.True(t, ok)
	assert.Equal(t, first, second, "loading is idempotent")
}

func TestStart_TwiceIsNoop(t *testing.T) {
	f := newFixture(t)
	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	f.start(t)
	f.engine.Start(context.Background())
}

func TestStart_InitFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(adapter.ErrSDKInit)

	f.start(t)

	assert.Equal(t, models.ErrorKindNone, f.engine.SyncStatus().Error)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())
}

func TestStart_SilentReconnect_RemoteReplacesLocal(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-2")
	f.local.SetCloudConnected(context.Background(), true)
	f.local.SaveSnapshot(context.Background(), models.DefaultDataset())

	gomock.InOrder(
		f.transport.EXPECT().Init(gomock.Any(), "dashboard-client").Return(nil),
		f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeNone).Return(nil),
		f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(remoteBlob(), nil),
	)

	f.start(t)

	state := f.engine.SyncStatus()
	assert.True(t, state.Connected)
	assert.False(t, state.Syncing)
	require.NotNil(t, state.LastCloudSync)
	assert.Equal(t, models.PhaseConnected, f.engine.Phase())
	assert.Equal(t, []string{"PJ900001"}, projectIDs(f.engine.FullSnapshot()))
	assert.Equal(t, models.AuthStateSilent, f.sessions.Session().AuthState)

	persisted, ok := f.local.LoadSnapshot(context.Background())
	require.True(t, ok)
	assert.Equal(t, []string{"PJ900001"}, projectIDs(persisted))
}

func TestStart_SilentReconnect_NoRemoteKeepsLocal(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleSuperAdmin, "")
	f.local.SetCloudConnected(context.Background(), true)

	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeNone).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, nil)

	f.start(t)

	assert.True(t, f.engine.SyncStatus().Connected)
	assert.Nil(t, f.engine.SyncStatus().LastCloudSync)
	assert.Equal(t, projectIDs(models.DefaultDataset()), projectIDs(f.engine.FullSnapshot()))
}

func TestStart_SilentFailure_SessionExpired(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.local.SetCloudConnected(context.Background(), true)

	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeNone).Return(adapter.ErrSessionExpired)

	f.start(t)

	state := f.engine.SyncStatus()
	assert.False(t, state.Connected)
	assert.Equal(t, models.ErrorKindSessionExpired, state.Error)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())
	assert.Len(t, f.engine.FullSnapshot().Projects, len(models.DefaultDataset().Projects))
	assert.True(t, f.local.CloudConnected(context.Background()), "the cloud flag survives for the next start")
}

func TestStart_PullFailure_TransportFailure(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.local.SetCloudConnected(context.Background(), true)

	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeNone).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, adapter.ErrTransport)

	f.start(t)

	state := f.engine.SyncStatus()
	assert.False(t, state.Connected)
	assert.Equal(t, models.ErrorKindTransportFailure, state.Error)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())
}

func TestStart_GuestNeverAuthenticates(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleGuest, "")
	f.local.SetCloudConnected(context.Background(), true)

	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)

	f.start(t)

	assert.False(t, f.engine.SyncStatus().Connected)
	assert.Equal(t, models.AuthStateUnauthenticated, f.sessions.Session().AuthState)
}

func TestStart_ReadyWaitsForPresentationDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := newLocalStore(t)
	transport := mock.NewMockCloudTransport(ctrl)
	transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)

	engine := NewSyncReconciler(local, transport, NewSessionManager(local, nil, logger.Nop()), nil,
		config.ClientWorkers{PushDebounce: testDebounce, StartupDelay: 150 * time.Millisecond},
		"dashboard-client", logger.Nop())

	begin := time.Now()
	engine.Start(context.Background())
	assert.Equal(t, models.PhaseInitializing, engine.Phase())
	assert.NotEmpty(t, engine.FullSnapshot().Projects, "snapshot is readable before ready")

	<-engine.Ready()
	assert.GreaterOrEqual(t, time.Since(begin), 150*time.Millisecond)
}

// ── ConnectCloud ────────────────────────────────────────────────────────────

func TestConnectCloud_GuestIsNoop(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleGuest, "")

	require.NoError(t, f.engine.ConnectCloud(context.Background()))
	assert.False(t, f.engine.SyncStatus().Connected)
}

func TestConnectCloud_AuthFailed(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(adapter.ErrAuthFailed)

	err := f.engine.ConnectCloud(context.Background())

	assert.ErrorIs(t, err, adapter.ErrAuthFailed)
	assert.Equal(t, models.ErrorKindAuthFailed, f.engine.SyncStatus().Error)
	assert.False(t, f.engine.SyncStatus().Connected)
	assert.False(t, f.local.CloudConnected(context.Background()))
}

func TestConnectCloud_RemoteAccepted_ReplacesLocal(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.confirmer.answer = true

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(remoteBlob(), nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, f.engine.ConnectCloud(context.Background()))

	assert.Equal(t, []string{"PJ900001"}, projectIDs(f.engine.FullSnapshot()))
	assert.Equal(t, []models.Customer{{ID: "CU-1", Name: "Remote customer", DepartmentID: "DEPT-2"}}, f.engine.FullSnapshot().Customers)
	require.NotNil(t, f.engine.SyncStatus().LastCloudSync)
	assert.True(t, f.local.CloudConnected(context.Background()))
	assert.Equal(t, models.AuthStateInteractive, f.sessions.Session().AuthState)
	assert.Len(t, f.confirmer.asked(), 1)
}

func TestConnectCloud_RemoteDeclined_PushesLocal(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.confirmer.answer = false

	var pushed models.CloudBlob
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(remoteBlob(), nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, blob models.CloudBlob) error {
			pushed = blob
			return nil
		})

	require.NoError(t, f.engine.ConnectCloud(context.Background()))

	local := f.engine.FullSnapshot()
	assert.NotContains(t, projectIDs(local), "PJ900001", "no merge")
	assert.Equal(t, projectIDs(local), projectIDs(pushed.Snapshot()))
	assert.Equal(t, "alice@example.com", pushed.UserEmail)
	require.NotNil(t, f.engine.SyncStatus().LastCloudSync)
}

func TestConnectCloud_NoRemote_PushesWithoutAsking(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.engine.ConnectCloud(context.Background()))
	assert.Empty(t, f.confirmer.asked())
}

func TestConnectCloud_CancelsPendingPushBeforePushingLocal(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	require.NoError(t, f.engine.ConnectCloud(context.Background()))
	time.Sleep(3 * testDebounce)
}

func TestConnectCloud_PullFailure(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, adapter.ErrTransport)

	err := f.engine.ConnectCloud(context.Background())
	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.Equal(t, models.ErrorKindTransportFailure, f.engine.SyncStatus().Error)
}

func TestConnectCloud_PushFailure(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Return(adapter.ErrTransport)

	err := f.engine.ConnectCloud(context.Background())
	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.Equal(t, models.ErrorKindTransportFailure, f.engine.SyncStatus().Error)
}

func TestConnectCloud_WhileSyncing(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.engine.mu.Lock()
	f.engine.state.Syncing = true
	f.engine.mu.Unlock()

	assert.ErrorIs(t, f.engine.ConnectCloud(context.Background()), ErrSyncInProgress)
}

// blockingConfirmer holds the question until release is closed.
type blockingConfirmer struct {
	asked   chan string
	release chan struct{}
	answer  bool
}

func newBlockingConfirmer(answer bool) *blockingConfirmer {
	return &blockingConfirmer{asked: make(chan string, 1), release: make(chan struct{}), answer: answer}
}

func (c *blockingConfirmer) Confirm(ctx context.Context, question string) bool {
	c.asked <- question
	select {
	case <-c.release:
		return c.answer
	case <-ctx.Done():
		return false
	}
}

func (c *blockingConfirmer) waitAsked(t *testing.T) {
	t.Helper()
	select {
	case <-c.asked:
	case <-time.After(time.Second):
		t.Fatal("the remote snapshot choice was not asked")
	}
}

func TestConnectCloud_NoPushWhileChoosing_RemoteWins(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	choice := newBlockingConfirmer(true)
	f.engine.confirmer = choice

	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(remoteBlob(), nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	errCh := make(chan error, 1)
	go func() { errCh <- f.engine.ConnectCloud(context.Background()) }()
	choice.waitAsked(t)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	time.Sleep(4 * testDebounce)

	close(choice.release)
	require.NoError(t, <-errCh)
	time.Sleep(3 * testDebounce)

	assert.Equal(t, []string{"PJ900001"}, projectIDs(f.engine.FullSnapshot()), "remote replaces local as a whole")
}

func TestConnectCloud_NoPushWhileChoosing_LocalWins(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	choice := newBlockingConfirmer(false)
	f.engine.confirmer = choice

	var pushes atomic.Int32
	pushed := make(chan models.CloudBlob, 1)
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(remoteBlob(), nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, blob models.CloudBlob) error {
			pushes.Add(1)
			pushed <- blob
			return nil
		}).Times(1)

	errCh := make(chan error, 1)
	go func() { errCh <- f.engine.ConnectCloud(context.Background()) }()
	choice.waitAsked(t)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	time.Sleep(4 * testDebounce)
	assert.Zero(t, pushes.Load(), "nothing is pushed before the choice")

	close(choice.release)
	require.NoError(t, <-errCh)
	time.Sleep(3 * testDebounce)

	assert.EqualValues(t, 1, pushes.Load())
	p, ok := (<-pushed).Snapshot().FindProject("PJ000101")
	require.True(t, ok)
	assert.Equal(t, models.ProjectStatusLost, p.Status)
}

func TestConnectCloud_EditDuringConnectPushIsPushedAfterwards(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")

	inPush := make(chan struct{})
	release := make(chan struct{})
	blobs := make(chan models.CloudBlob, 2)
	var pushes atomic.Int32
	f.transport.EXPECT().Authenticate(gomock.Any(), models.AuthModeConsent).Return(nil)
	f.transport.EXPECT().LoadFromCloud(gomock.Any()).Return(nil, nil)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, blob models.CloudBlob) error {
			if pushes.Add(1) == 1 {
				close(inPush)
				<-release
			}
			blobs <- blob
			return nil
		}).Times(2)

	errCh := make(chan error, 1)
	go func() { errCh <- f.engine.ConnectCloud(context.Background()) }()
	<-inPush

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	close(release)
	require.NoError(t, <-errCh)

	require.Eventually(t, func() bool { return pushes.Load() == 2 }, time.Second, 5*time.Millisecond)
	<-blobs
	p, ok := (<-blobs).Snapshot().FindProject("PJ000101")
	require.True(t, ok)
	assert.Equal(t, models.ProjectStatusLost, p.Status)
}

// ── Outbound sync ───────────────────────────────────────────────────────────

func TestDebounce_CoalescesMutations(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()

	var pushes atomic.Int32
	var pushed models.CloudBlob
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, blob models.CloudBlob) error {
			pushes.Add(1)
			pushed = blob
			return nil
		}).Times(1)

	statuses := []models.ProjectStatus{
		models.ProjectStatusPlanning,
		models.ProjectStatusInspection,
		models.ProjectStatusCompleted,
		models.ProjectStatusLost,
		models.ProjectStatusNegotiating,
	}
	for _, st := range statuses {
		require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", st))
		time.Sleep(testDebounce / 5)
	}

	require.Eventually(t, func() bool { return pushes.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * testDebounce)
	assert.EqualValues(t, 1, pushes.Load())

	p, ok := pushed.Snapshot().FindProject("PJ000101")
	require.True(t, ok)
	assert.Equal(t, models.ProjectStatusNegotiating, p.Status, "the push carries the last state")
}

func TestDebounce_SingleMutation_OneSyncingEpisode(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()

	before := f.clock.Now()
	var syncingDuringPush atomic.Bool
	done := make(chan struct{})
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.CloudBlob) error {
			syncingDuringPush.Store(f.engine.SyncStatus().Syncing)
			close(done)
			return nil
		}).Times(1)

	require.True(t, f.engine.AddComment(context.Background(), "PJ000102", "on site"))
	assert.False(t, f.engine.SyncStatus().Syncing, "mutations alone never raise the syncing flag")

	<-done
	require.Eventually(t, func() bool {
		st := f.engine.SyncStatus()
		return !st.Syncing && st.LastCloudSync != nil
	}, time.Second, 5*time.Millisecond)

	assert.True(t, syncingDuringPush.Load())
	assert.True(t, f.engine.SyncStatus().LastCloudSync.After(before))
}

func TestDebounce_FireWhileSyncingIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	f.engine.mu.Lock()
	f.engine.state.Syncing = true
	f.engine.mu.Unlock()

	time.Sleep(3 * testDebounce)

	f.engine.mu.Lock()
	f.engine.state.Syncing = false
	f.engine.mu.Unlock()
}

func TestDebounce_NotArmedWhileDisconnected(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	time.Sleep(3 * testDebounce)

	assert.False(t, f.engine.SyncStatus().LastLocalSave.IsZero())
}

func TestDebounce_SuspendedByConnectionError(t *testing.T) {
	for _, kind := range []models.ErrorKind{models.ErrorKindSessionExpired, models.ErrorKindAuthFailed} {
		t.Run(string(kind), func(t *testing.T) {
			f := newFixture(t)
			f.login(models.RoleMember, "DEPT-1")
			f.markConnected()
			f.engine.setError(kind)
			f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

			require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
			time.Sleep(3 * testDebounce)
		})
	}
}

func TestDebounce_ConnectionErrorArrivingBeforeFire(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	f.engine.setError(models.ErrorKindSessionExpired)
	time.Sleep(3 * testDebounce)
}

func TestPushFailure_NextMutationRetries(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()

	var calls atomic.Int32
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.CloudBlob) error {
			if calls.Add(1) == 1 {
				return fmt.Errorf("%w: boom", adapter.ErrTransport)
			}
			return nil
		}).Times(2)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	require.Eventually(t, func() bool {
		return f.engine.SyncStatus().Error == models.ErrorKindTransportFailure
	}, time.Second, 5*time.Millisecond)

	time.Sleep(2 * testDebounce)
	assert.EqualValues(t, 1, calls.Load(), "no automatic retry")

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusPlanning))
	require.Eventually(t, func() bool {
		st := f.engine.SyncStatus()
		return calls.Load() == 2 && st.Error == models.ErrorKindNone && !st.Syncing
	}, time.Second, 5*time.Millisecond)
}

func TestPushFailure_ExpiredSessionSuspendsSync(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()

	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: grant revoked", adapter.ErrSessionExpired)).Times(1)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	require.Eventually(t, func() bool {
		st := f.engine.SyncStatus()
		return st.Error == models.ErrorKindSessionExpired && !st.Connected && !st.Syncing
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusPlanning))
	time.Sleep(3 * testDebounce)
}

// ── Error banner ────────────────────────────────────────────────────────────

func TestDismissError_KeepsSyncSuspended(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()
	f.engine.setError(models.ErrorKindSessionExpired)
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	var states []models.SyncState
	unsubscribe := f.engine.Subscribe(func(st models.SyncState) { states = append(states, st) })
	f.engine.DismissError()
	unsubscribe()

	st := f.engine.SyncStatus()
	assert.True(t, st.ErrorDismissed)
	assert.Equal(t, models.ErrorKindSessionExpired, st.Error)
	require.Len(t, states, 1)
	assert.True(t, states[0].ErrorDismissed)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	time.Sleep(3 * testDebounce)

	f.engine.setError(models.ErrorKindTransportFailure)
	assert.False(t, f.engine.SyncStatus().ErrorDismissed, "a new error is shown again")
}

func TestDismissError_WithoutError(t *testing.T) {
	f := newFixture(t)

	f.engine.DismissError()

	assert.False(t, f.engine.SyncStatus().ErrorDismissed)
}

// ── Disconnect / logout ─────────────────────────────────────────────────────

func TestDisconnectCloud(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.local.SetCloudConnected(context.Background(), true)
	f.markConnected()
	f.engine.setError(models.ErrorKindTransportFailure)

	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)
	f.transport.EXPECT().SignOut(gomock.Any()).Return(nil)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	f.engine.DisconnectCloud(context.Background())
	time.Sleep(3 * testDebounce)

	state := f.engine.SyncStatus()
	assert.False(t, state.Connected)
	assert.Equal(t, models.ErrorKindNone, state.Error)
	assert.Equal(t, models.PhaseDisconnected, f.engine.Phase())
	assert.False(t, f.local.CloudConnected(context.Background()))
}

func TestDisconnectCloud_SignOutErrorIsLogged(t *testing.T) {
	f := newFixture(t)
	f.markConnected()
	f.transport.EXPECT().SignOut(gomock.Any()).Return(errors.New("boom"))

	f.engine.DisconnectCloud(context.Background())
	assert.False(t, f.engine.SyncStatus().Connected)
}

func TestLogout_CancelsPendingPush(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.markConnected()
	f.transport.EXPECT().SaveToCloud(gomock.Any(), gomock.Any()).Times(0)

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	require.True(t, f.engine.Logout(context.Background()))
	time.Sleep(3 * testDebounce)

	assert.Nil(t, f.sessions.Session())
}

func TestLogout_Declined(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")
	f.confirmer.answer = false

	assert.False(t, f.engine.Logout(context.Background()))
	assert.NotNil(t, f.sessions.Session())
}

// ── Observers ───────────────────────────────────────────────────────────────

func TestSubscribe_ReceivesStatesUntilUnsubscribed(t *testing.T) {
	f := newFixture(t)
	f.login(models.RoleMember, "DEPT-1")

	var mu sync.Mutex
	var states []models.SyncState
	unsubscribe := f.engine.Subscribe(func(st models.SyncState) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	})

	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusLost))
	unsubscribe()
	require.True(t, f.engine.UpdateProjectStatus(context.Background(), "PJ000101", models.ProjectStatusPlanning))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, states, 1)
	assert.False(t, states[0].LastLocalSave.IsZero())
}

func TestSnapshot_FilteredByViewPartition(t *testing.T) {
	f := newFixture(t)
	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)
	f.login(models.RoleMember, "DEPT-1")
	f.start(t)

	assert.Equal(t, []string{"PJ000101", "PJ000104"}, projectIDs(f.engine.Snapshot()))
	assert.Len(t, f.engine.FullSnapshot().Projects, 4)
}

func TestSnapshot_ReadersGetCopies(t *testing.T) {
	f := newFixture(t)
	f.transport.EXPECT().Init(gomock.Any(), gomock.Any()).Return(nil)
	f.start(t)

	s := f.engine.FullSnapshot()
	s.Projects[0].Name = "changed by reader"

	assert.NotEqual(t, "changed by reader", f.engine.FullSnapshot().Projects[0].Name)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want models.ErrorKind
	}{
		{nil, models.ErrorKindNone},
		{fmt.Errorf("x: %w", adapter.ErrSessionExpired), models.ErrorKindSessionExpired},
		{adapter.ErrAuthFailed, models.ErrorKindAuthFailed},
		{adapter.ErrSDKInit, models.ErrorKindSDKInitFailure},
		{adapter.ErrTransport, models.ErrorKindTransportFailure},
		{errors.New("anything"), models.ErrorKindTransportFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorKind(tt.err))
	}
}

func TestTransferFailure(t *testing.T) {
	assert.Equal(t, models.ErrorKindSessionExpired, transferFailure(fmt.Errorf("push: %w", adapter.ErrSessionExpired)))
	assert.Equal(t, models.ErrorKindTransportFailure, transferFailure(adapter.ErrAuthFailed))
	assert.Equal(t, models.ErrorKindTransportFailure, transferFailure(errors.New("boom")))
}
