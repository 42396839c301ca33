package models

// Role is the privilege level of a session.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleMember     Role = "Member"
	RoleGuest      Role = "Guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// SeesAllPartitions reports whether the role may switch the view partition.
func (r Role) SeesAllPartitions() bool {
	return r == RoleSuperAdmin || r == RoleGuest
}

// Label is the author role label stamped on comments.
func (r Role) Label() string {
	if r == RoleSuperAdmin {
		return "Director"
	}
	return "Member"
}

// AuthState tells how the cloud session, if any, was established.
type AuthState string

const (
	AuthStateUnauthenticated AuthState = "Unauthenticated"
	AuthStateSilent          AuthState = "Silent"
	AuthStateInteractive     AuthState = "Interactive"
)

// Identity is what the user enters at the login screen.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
}

// Session is the persisted login of the dashboard user.
//
// A Guest session is always [AuthStateUnauthenticated].
type Session struct {
	Identity
	DepartmentID string    `json:"departmentId,omitempty"`
	AuthState    AuthState `json:"authState,omitempty"`
}

// CanWrite reports whether the session may mutate records.
func (s *Session) CanWrite() bool {
	return s != nil && s.Role != RoleGuest
}

// HomePartition returns the partition the session's view starts on.
func (s *Session) HomePartition() string {
	if s == nil || s.Role.SeesAllPartitions() {
		return PartitionAll
	}
	if s.DepartmentID == "" {
		return DefaultPartition
	}
	return s.DepartmentID
}
