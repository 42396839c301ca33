package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type commentModel struct {
	projectID   string
	projectName string
	input       textinput.Model
	errMsg      string
}

func newCommentModel(projectID, projectName string) commentModel {
	in := textinput.New()
	in.Placeholder = "comment"
	in.CharLimit = 1000
	in.Width = 60
	in.Focus()

	return commentModel{projectID: projectID, projectName: projectName, input: in}
}

func (m commentModel) text() string {
	return strings.TrimSpace(m.input.Value())
}

func (m commentModel) View() string {
	var b strings.Builder
	b.WriteString("Project: ")
	b.WriteString(m.projectName)
	b.WriteString("\n\n[")
	b.WriteString(m.input.View())
	b.WriteString("]\n")
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}
	return renderPage("ADD COMMENT", strings.TrimRight(b.String(), "\n"), "enter: save │ esc: back")
}
