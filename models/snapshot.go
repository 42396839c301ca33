package models

import (
	"encoding/json"
	"maps"
	"time"
)

// PartitionAll is the visibility sentinel meaning "no partition filtering".
const PartitionAll = "all"

// DefaultPartition is the partition assigned to a non-administrative session
// that carries no partition of its own.
const DefaultPartition = "DEPT-1"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectStatusNegotiating ProjectStatus = "Negotiating"
	ProjectStatusPlanning    ProjectStatus = "Planning"
	ProjectStatusInProgress  ProjectStatus = "InProgress"
	ProjectStatusInspection  ProjectStatus = "Inspection"
	ProjectStatusCompleted   ProjectStatus = "Completed"
	ProjectStatusLost        ProjectStatus = "Lost"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusNegotiating,
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusInspection,
	ProjectStatusCompleted,
	ProjectStatusLost,
}

// Next returns the status that follows s in [ProjectStatuses], wrapping around.
func (s ProjectStatus) Next() ProjectStatus {
	for i, st := range ProjectStatuses {
		if st == s {
			return ProjectStatuses[(i+1)%len(ProjectStatuses)]
		}
	}
	return ProjectStatuses[0]
}

// Comment is a note attached to a project.
type Comment struct {
	ID           string `json:"id"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar,omitempty"`
	AuthorRole   string `json:"authorRole"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`

	Extra map[string]json.RawMessage `json:"-"`
}

// WorkAssignment is a dispatch of team members to a project on a given date.
type WorkAssignment struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	MemberIDs []string `json:"memberIds"`
	Note      string   `json:"note,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Project is a business record. Only DepartmentID is interpreted by the
// synchronization engine; nested collections the engine never reads are kept
// as raw JSON and undeclared keys land in Extra, so that they round-trip
// untouched.
type Project struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Client          string            `json:"client,omitempty"`
	Location        string            `json:"location,omitempty"`
	Status          ProjectStatus     `json:"status"`
	Progress        int               `json:"progress"`
	Budget          float64           `json:"budget,omitempty"`
	StartDate       string            `json:"startDate,omitempty"`
	EndDate         string            `json:"endDate,omitempty"`
	DepartmentID    string            `json:"departmentId"`
	Comments        []Comment         `json:"comments"`
	WorkAssignments []WorkAssignment  `json:"workAssignments"`
	Expenses        []json.RawMessage `json:"expenses"`
	Files           []json.RawMessage `json:"files"`
	Phases          []json.RawMessage `json:"phases"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Customer is a business record.
type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	DepartmentID string `json:"departmentId"`

	Extra map[string]json.RawMessage `json:"-"`
}

// TeamMember is a business record.
type TeamMember struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DepartmentID string `json:"departmentId"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Snapshot is the complete working set synchronized between the local store
// and the cloud. It is replaced as a whole value, never mutated in place by
// readers.
type Snapshot struct {
	Projects      []Project
	Customers     []Customer
	TeamMembers   []TeamMember
	LastUpdated   time.Time
	OwnerIdentity string
}

// Clone returns a deep enough copy of s: every collection is a fresh slice so
// that replacing an element in the clone never affects s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Projects = make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		out.Projects[i] = p.clone()
	}
	out.Customers = append([]Customer{}, s.Customers...)
	out.TeamMembers = append([]TeamMember{}, s.TeamMembers...)
	return out
}

func (p Project) clone() Project {
	p.Comments = append([]Comment{}, p.Comments...)
	p.WorkAssignments = append([]WorkAssignment{}, p.WorkAssignments...)
	p.Expenses = append([]json.RawMessage{}, p.Expenses...)
	p.Files = append([]json.RawMessage{}, p.Files...)
	p.Phases = append([]json.RawMessage{}, p.Phases...)
	p.Extra = maps.Clone(p.Extra)
	return p
}

// Normalize replaces nil collections with empty ones. It is deterministic, so
// normalizing an already normalized snapshot is a no-op.
func (s Snapshot) Normalize() Snapshot {
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.TeamMembers == nil {
		s.TeamMembers = []TeamMember{}
	}
	projects := make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		projects[i] = p.Normalize()
	}
	s.Projects = projects
	return s
}

// Normalize replaces nil nested collections of p with empty ones.
func (p Project) Normalize() Project {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	if p.WorkAssignments == nil {
		p.WorkAssignments = []WorkAssignment{}
	}
	if p.Expenses == nil {
		p.Expenses = []json.RawMessage{}
	}
	if p.Files == nil {
		p.Files = []json.RawMessage{}
	}
	if p.Phases == nil {
		p.Phases = []json.RawMessage{}
	}
	return p
}

// FilterByPartition returns a snapshot holding only the records whose
// DepartmentID equals partition. [PartitionAll] returns s unfiltered.
func (s Snapshot) FilterByPartition(partition string) Snapshot {
	if partition == PartitionAll {
		return s
	}

	out := s
	out.Projects = make([]Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.DepartmentID == partition {
			out.Projects = append(out.Projects, p)
		}
	}
	out.Customers = make([]Customer, 0, len(s.Customers))
	for _, c := range s.Customers {
		if c.DepartmentID == partition {
			out.Customers = append(out.Customers, c)
		}
	}
	out.TeamMembers = make([]TeamMember, 0, len(s.TeamMembers))
	for _, m := range s.TeamMembers {
		if m.DepartmentID == partition {
			out.TeamMembers = append(out.TeamMembers, m)
		}
	}
	return out
}

// FindProject returns the project with the given id.
func (s Snapshot) FindProject(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
