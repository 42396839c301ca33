package tui

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	projectFieldName = iota
	projectFieldClient
	projectFieldLocation
	projectFieldBudget
	projectFieldStart
	projectFieldEnd
)

var projectFieldLabels = []string{"Name", "Client", "Location", "Budget", "Start", "End"}

// projectFormModel creates a new project. The partition is left to the
// engine, which files it under the session's home partition.
type projectFormModel struct {
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newProjectFormModel() projectFormModel {
	placeholders := []string{"project name", "client", "location", "0", "YYYY-MM-DD", "YYYY-MM-DD"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = p
		inputs[i].CharLimit = 120
		inputs[i].Width = 40
	}
	inputs[projectFieldBudget].CharLimit = 16
	inputs[projectFieldName].Focus()

	return projectFormModel{inputs: inputs}
}

// project builds the record from the form; the error message is non-empty
// when the input is invalid.
func (m projectFormModel) project() (models.Project, string) {
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	p := models.Project{
		Name:      value(projectFieldName),
		Client:    value(projectFieldClient),
		Location:  value(projectFieldLocation),
		StartDate: value(projectFieldStart),
		EndDate:   value(projectFieldEnd),
	}
	if p.Name == "" {
		return models.Project{}, "Project name is required"
	}
	if raw := value(projectFieldBudget); raw != "" {
		budget, err := strconv.ParseFloat(raw, 64)
		if err != nil || budget < 0 {
			return models.Project{}, "Budget must be a non-negative number"
		}
		p.Budget = budget
	}
	return p, ""
}

func (m projectFormModel) focusNext() projectFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m projectFormModel) focusPrev() projectFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m projectFormModel) View() string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	for i, label := range projectFieldLabels {
		b.WriteString(padRight(label, 10))
		b.WriteString("│ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}
	return renderPage("NEW PROJECT", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: back")
}
