package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/models"
)

// commentTimeLayout is how comment timestamps are rendered.
const commentTimeLayout = "2006/1/2 15:04:05"

// UpdateProjectStatus implements [RecordService].
func (r *syncReconciler) UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) bool {
	if !slices.Contains(models.ProjectStatuses, status) {
		return false
	}
	return r.mutate(ctx, func(s *models.Snapshot, _ *models.Session) bool {
		return updateProject(s, projectID, func(p *models.Project) {
			p.Status = status
		})
	})
}

// DeleteProjects implements [RecordService]. The user is asked once for all ids.
func (r *syncReconciler) DeleteProjects(ctx context.Context, ids ...string) bool {
	if !r.gate.CanWrite(r.sessions.Session()) {
		return false
	}

	current := r.FullSnapshot()
	found := 0
	for _, p := range current.Projects {
		if slices.Contains(ids, p.ID) {
			found++
		}
	}
	if found == 0 || !r.confirm(ctx, fmt.Sprintf(app.PromptDeleteProjects, found)) {
		return false
	}

	return r.mutate(ctx, func(s *models.Snapshot, _ *models.Session) bool {
		before := len(s.Projects)
		s.Projects = slices.DeleteFunc(s.Projects, func(p models.Project) bool {
			return slices.Contains(ids, p.ID)
		})
		return len(s.Projects) != before
	})
}

// AddComment implements [RecordService]. The newest comment comes first.
func (r *syncReconciler) AddComment(ctx context.Context, projectID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return r.mutate(ctx, func(s *models.Snapshot, session *models.Session) bool {
		comment := models.Comment{
			ID:           r.ids.Generate(),
			AuthorName:   session.Name,
			AuthorAvatar: session.Picture,
			AuthorRole:   session.Role.Label(),
			Text:         text,
			Timestamp:    r.now().Format(commentTimeLayout),
		}
		return updateProject(s, projectID, func(p *models.Project) {
			p.Comments = append([]models.Comment{comment}, p.Comments...)
		})
	})
}

// SaveProject implements [RecordService]. A project without an id is created:
// it gets a "PJ" id from the clock, the first status, zero progress and empty
// nested collections, and is placed first. Otherwise the editable fields of the
// existing project are replaced.
func (r *syncReconciler) SaveProject(ctx context.Context, project models.Project) (models.Project, bool) {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return models.Project{}, false
	}

	var saved models.Project
	ok := r.mutate(ctx, func(s *models.Snapshot, session *models.Session) bool {
		if project.ID == "" {
			saved = newProject(project, r.newProjectID(*s), session)
			s.Projects = append([]models.Project{saved}, s.Projects...)
			return true
		}
		return updateProject(s, project.ID, func(p *models.Project) {
			p.Name = project.Name
			p.Client = project.Client
			p.Location = project.Location
			p.Budget = project.Budget
			p.StartDate = project.StartDate
			p.EndDate = project.EndDate
			if project.DepartmentID != "" {
				p.DepartmentID = project.DepartmentID
			}
			if project.Status != "" {
				p.Status = project.Status
			}
			if project.Progress >= 0 && project.Progress <= 100 {
				p.Progress = project.Progress
			}
			saved = *p
		})
	})
	return saved, ok
}

func newProject(in models.Project, id string, session *models.Session) models.Project {
	p := models.Project{
		ID:           id,
		Name:         in.Name,
		Client:       in.Client,
		Location:     in.Location,
		Status:       models.ProjectStatusNegotiating,
		Progress:     0,
		Budget:       in.Budget,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		DepartmentID: in.DepartmentID,
	}
	if p.DepartmentID == "" {
		p.DepartmentID = defaultDepartment(session)
	}
	return p.Normalize()
}

// newProjectID derives "PJ" + the last six digits of the unix-millis clock,
// stepping forward on collision.
func (r *syncReconciler) newProjectID(s models.Snapshot) string {
	millis := r.now().UnixMilli()
	for {
		id := fmt.Sprintf("PJ%06d", millis%1_000_000)
		if _, exists := s.FindProject(id); !exists {
			return id
		}
		millis++
	}
}

// AddDispatch implements [RecordService]. The newest assignment comes first.
func (r *syncReconciler) AddDispatch(ctx context.Context, projectID string, assignment models.WorkAssignment) bool {
	if assignment.ID == "" {
		assignment.ID = r.ids.Generate()
	}
	if assignment.MemberIDs == nil {
		assignment.MemberIDs = []string{}
	}
	return r.mutate(ctx, func(s *models.Snapshot, _ *models.Session) bool {
		return updateProject(s, projectID, func(p *models.Project) {
			p.WorkAssignments = append([]models.WorkAssignment{assignment}, p.WorkAssignments...)
		})
	})
}

// DeleteDispatch implements [RecordService].
func (r *syncReconciler) DeleteDispatch(ctx context.Context, projectID, assignmentID string) bool {
	return r.mutate(ctx, func(s *models.Snapshot, _ *models.Session) bool {
		removed := false
		updateProject(s, projectID, func(p *models.Project) {
			before := len(p.WorkAssignments)
			p.WorkAssignments = slices.DeleteFunc(p.WorkAssignments, func(a models.WorkAssignment) bool {
				return a.ID == assignmentID
			})
			removed = len(p.WorkAssignments) != before
		})
		return removed
	})
}

// SaveCustomer implements [RecordService]. A customer without an id is
// created and placed first, otherwise it replaces the stored one. Unknown
// fields of the stored customer are kept when customer brings none.
func (r *syncReconciler) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, bool) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return models.Customer{}, false
	}

	ok := r.mutate(ctx, func(s *models.Snapshot, session *models.Session) bool {
		if customer.DepartmentID == "" {
			customer.DepartmentID = defaultDepartment(session)
		}
		if customer.ID == "" {
			customer.ID = r.ids.Generate()
			s.Customers = append([]models.Customer{customer}, s.Customers...)
			return true
		}
		i := slices.IndexFunc(s.Customers, func(c models.Customer) bool { return c.ID == customer.ID })
		if i < 0 {
			return false
		}
		if customer.Extra == nil {
			customer.Extra = s.Customers[i].Extra
		}
		s.Customers[i] = customer
		return true
	})
	if !ok {
		return models.Customer{}, false
	}
	return customer, true
}

// SaveTeamMember implements [RecordService]. A member without an id is
// created and placed first, otherwise it replaces the stored one.
func (r *syncReconciler) SaveTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, bool) {
	member.Name = strings.TrimSpace(member.Name)
	if member.Name == "" {
		return models.TeamMember{}, false
	}

	ok := r.mutate(ctx, func(s *models.Snapshot, session *models.Session) bool {
		if member.DepartmentID == "" {
			member.DepartmentID = defaultDepartment(session)
		}
		if member.ID == "" {
			member.ID = r.ids.Generate()
			s.TeamMembers = append([]models.TeamMember{member}, s.TeamMembers...)
			return true
		}
		i := slices.IndexFunc(s.TeamMembers, func(m models.TeamMember) bool { return m.ID == member.ID })
		if i < 0 {
			return false
		}
		if member.Extra == nil {
			member.Extra = s.TeamMembers[i].Extra
		}
		s.TeamMembers[i] = member
		return true
	})
	if !ok {
		return models.TeamMember{}, false
	}
	return member, true
}

// ResetData implements [RecordService]. After confirmation it clears the local
// store (session and cloud flag included), forgets the cloud session and
// reseeds the default dataset.
func (r *syncReconciler) ResetData(ctx context.Context) bool {
	if !r.gate.CanWrite(r.sessions.Session()) {
		return false
	}
	if !r.confirm(ctx, app.PromptResetData) {
		return false
	}

	r.mu.Lock()
	r.cancelPushLocked()
	r.deferredPush = false
	r.local.Clear(ctx)
	r.snapshot = models.DefaultDataset()
	r.state = models.SyncState{}
	r.phase = models.PhaseDisconnected
	r.mu.Unlock()

	if err := r.transport.SignOut(ctx); err != nil {
		r.logger.Err(err).Str("func", "syncReconciler.ResetData").Msg("cloud sign out failed")
	}
	r.sessions.forget()
	r.notify()

	r.logger.Info().Str("func", "syncReconciler.ResetData").Msg("local data reset to defaults")
	return true
}

// updateProject applies fn to the project with the given id. It reports
// whether the project exists.
func updateProject(s *models.Snapshot, projectID string, fn func(p *models.Project)) bool {
	for i := range s.Projects {
		if s.Projects[i].ID == projectID {
			fn(&s.Projects[i])
			return true
		}
	}
	return false
}

func defaultDepartment(session *models.Session) string {
	if home := session.HomePartition(); home != models.PartitionAll {
		return home
	}
	return models.DefaultPartition
}
