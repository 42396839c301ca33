package service

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/models"
)

// Confirmer asks the user a yes/no question before an irreversible action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) bool
}

// IDGenerator produces record ids for comments, dispatches, customers and
// team members.
type IDGenerator interface {
	Generate() string
}

// SnapshotStore is the part of the local store the sync engine uses.
// [store.LocalStore] satisfies it.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, bool)
	SaveSnapshot(ctx context.Context, snapshot models.Snapshot)
	CloudConnected(ctx context.Context) bool
	SetCloudConnected(ctx context.Context, connected bool)
	Clear(ctx context.Context)
}

// SessionStore is the part of the local store the session manager uses.
// [store.LocalStore] satisfies it.
type SessionStore interface {
	LoadSession(ctx context.Context) (*models.Session, bool)
	SaveSession(ctx context.Context, session models.Session)
	ClearSession(ctx context.Context)
}

// SyncReconciler keeps the in-memory snapshot, the local store and the cloud
// copy consistent.
type SyncReconciler interface {
	// Start restores the session and the snapshot synchronously, then
	// initializes the cloud transport and attempts a silent reconnect in the
	// background. Calling Start twice is a no-op.
	Start(ctx context.Context)

	// Ready is closed once cold-start initialization has finished, whatever
	// its outcome.
	Ready() <-chan struct{}

	// ConnectCloud authenticates interactively and reconciles the local
	// snapshot with the remote one. It is a no-op for read-only sessions.
	ConnectCloud(ctx context.Context) error

	// DisconnectCloud cancels the pending push, forgets the cloud session and
	// clears the error.
	DisconnectCloud(ctx context.Context)

	// Logout asks for confirmation, cancels the pending push and clears the
	// session. It reports whether the user confirmed.
	Logout(ctx context.Context) bool

	// DismissError hides the current error banner. The error itself stays,
	// so a suspended cloud session remains suspended until a reconnect.
	DismissError()

	SyncStatus() models.SyncState
	Phase() models.Phase

	// Subscribe registers fn to be called with every new SyncState. The
	// returned function unregisters it.
	Subscribe(fn func(models.SyncState)) (unsubscribe func())

	// Snapshot returns the snapshot filtered by the current view partition.
	Snapshot() models.Snapshot
	// FullSnapshot returns the unfiltered snapshot.
	FullSnapshot() models.Snapshot
}

// RecordService mutates the business records. Every method is a silent no-op
// returning false when the session may not write.
type RecordService interface {
	UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) bool
	DeleteProjects(ctx context.Context, ids ...string) bool
	AddComment(ctx context.Context, projectID, text string) bool
	SaveProject(ctx context.Context, project models.Project) (models.Project, bool)
	AddDispatch(ctx context.Context, projectID string, assignment models.WorkAssignment) bool
	DeleteDispatch(ctx context.Context, projectID, assignmentID string) bool
	SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, bool)
	SaveTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, bool)
	ResetData(ctx context.Context) bool
}

// DashboardEngine is what the user interface drives.
type DashboardEngine interface {
	SyncReconciler
	RecordService
}
