package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/charmbracelet/bubbles/spinner"
)

// dashboardModel is the project list with the sync status bar.
type dashboardModel struct {
	projects   []models.Project
	idx        int
	session    *models.Session
	partition  string
	state      models.SyncState
	connecting bool
	status     string
	spinner    spinner.Model
}

func newDashboardModel() dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return dashboardModel{spinner: s, partition: models.PartitionAll}
}

// refresh reloads everything the dashboard shows from the services.
func (m dashboardModel) refresh(engine service.SyncReconciler, sessions sessionManager) dashboardModel {
	m.projects = engine.Snapshot().Projects
	m.session = sessions.Session()
	m.partition = sessions.ViewPartition()
	m.state = engine.SyncStatus()
	m.idx = clampIndex(m.idx, len(m.projects))
	return m
}

func (m dashboardModel) current() (models.Project, bool) {
	if len(m.projects) == 0 || m.idx < 0 || m.idx >= len(m.projects) {
		return models.Project{}, false
	}
	return m.projects[m.idx], true
}

func (m dashboardModel) canWrite() bool {
	return service.AccessGate{}.CanWrite(m.session)
}

// nextPartition cycles through "all" and every known department.
func (m dashboardModel) nextPartition() string {
	choices := make([]string, 0, len(models.Departments)+1)
	choices = append(choices, models.PartitionAll)
	for _, d := range models.Departments {
		choices = append(choices, d.ID)
	}
	for i, c := range choices {
		if c == m.partition {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(m.identityLine())
	b.WriteString("\n")
	b.WriteString(m.syncLine())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Last cloud sync: %s │ Last local save: %s\n",
		lastCloudSync(m.state), formatTime(m.state.LastLocalSave)))
	if banner := syncBanner(m.state); banner != "" {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(banner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.projects) == 0 {
		b.WriteString("No projects in this partition\n")
	} else {
		b.WriteString("  " + padRight("ID", 10) + padRight("Name", 28) + padRight("Status", 13) +
			padRight("Progress", 10) + padRight("Partition", 10) + "Comments\n")
		for i, p := range m.projects {
			line := padRight(p.ID, 10) + padRight(p.Name, 28) + padRight(string(p.Status), 13) +
				padRight(fmt.Sprintf("%d%%", p.Progress), 10) + padRight(p.DepartmentID, 10) +
				fmt.Sprintf("%d", len(p.Comments))
			if i == m.idx {
				b.WriteString("> " + selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	if p, ok := m.current(); ok {
		b.WriteString("\n")
		b.WriteString(renderProjectDetail(p))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	title := "DASHBOARD"
	if !m.canWrite() {
		title += "  " + badgeStyle.Render("READ-ONLY")
	}

	help := "↑/↓: move │ c: cloud │ s: status │ m: comment │ n: new │ d: delete │ p: partition │ y: copy │ R: reset │ l: logout │ x: dismiss │ v: about │ q: quit"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), help)
}

func (m dashboardModel) identityLine() string {
	if m.session == nil {
		return "Not signed in"
	}
	line := fmt.Sprintf("%s <%s> · %s · partition %s", m.session.Name, m.session.Email, m.session.Role, m.partition)
	if name := models.DepartmentName(m.partition); name != "" {
		line += " " + name
	}
	return line
}

func (m dashboardModel) syncLine() string {
	var line string
	if m.state.Connected {
		line = connectedStyle.Render("● cloud connected")
	} else {
		line = "○ local only"
	}
	if m.state.Syncing || m.connecting {
		line += "  " + m.spinner.View() + " syncing..."
	}
	return line
}

func renderProjectDetail(p models.Project) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Client: %s │ Location: %s │ %s → %s\n",
		valueOrDash(p.Client), valueOrDash(p.Location), valueOrDash(p.StartDate), valueOrDash(p.EndDate)))
	if n := len(p.Comments); n > 0 {
		c := p.Comments[n-1]
		b.WriteString(fmt.Sprintf("Last comment (%s, %s, %s): %s\n", c.AuthorName, c.AuthorRole, c.Timestamp, fitText(c.Text, 60)))
	}
	return b.String()
}

func lastCloudSync(state models.SyncState) string {
	if state.LastCloudSync == nil {
		return "never"
	}
	return formatTime(*state.LastCloudSync)
}

// syncBanner is the error banner text. Cloud client init failures are
// swallowed: the dashboard simply stays local.
func syncBanner(state models.SyncState) string {
	if state.ErrorDismissed {
		return ""
	}
	kind := state.Error
	switch kind {
	case models.ErrorKindNone, models.ErrorKindSDKInitFailure:
		return ""
	case models.ErrorKindSessionExpired, models.ErrorKindTransportFailure:
		return kind.Message() + ", press c to reconnect"
	}
	return kind.Message()
}

func clampIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
