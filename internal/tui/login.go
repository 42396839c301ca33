// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/charmbracelet/bubbles/textinput"
)

var loginRoles = []models.Role{models.RoleMember, models.RoleSuperAdmin, models.RoleGuest}

const (
	loginFieldEmail = iota
	loginFieldName
	loginFieldPicture
	loginFieldRole
	loginFieldPartition
	loginFieldCount
)

// loginModel collects the identity, the role and the home partition.
type loginModel struct {
	inputs    []textinput.Model
	focus     int
	role      int
	partition int
	errMsg    string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 80
	name.Width = 40

	picture := textinput.New()
	picture.Placeholder = "avatar url (optional)"
	picture.CharLimit = 512
	picture.Width = 40

	return loginModel{inputs: []textinput.Model{email, name, picture}}
}

func (m loginModel) identity() models.Identity {
	return models.Identity{
		Email:   strings.TrimSpace(m.inputs[loginFieldEmail].Value()),
		Name:    strings.TrimSpace(m.inputs[loginFieldName].Value()),
		Picture: strings.TrimSpace(m.inputs[loginFieldPicture].Value()),
		Role:    loginRoles[m.role],
	}
}

func (m loginModel) partitionID() string {
	return models.Departments[m.partition].ID
}

// validate returns the message to show, empty when the form can be submitted.
func (m loginModel) validate() string {
	id := m.identity()
	if id.Email == "" || id.Name == "" {
		return "Email and name are required"
	}
	if !strings.Contains(id.Email, "@") {
		return "Email looks invalid"
	}
	return ""
}

func (m loginModel) focusNext() loginModel {
	return m.setFocus((m.focus + 1) % loginFieldCount)
}

func (m loginModel) focusPrev() loginModel {
	return m.setFocus((m.focus - 1 + loginFieldCount) % loginFieldCount)
}

func (m loginModel) setFocus(focus int) loginModel {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = focus
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
	return m
}

// cycle moves the role or partition selector by delta.
func (m loginModel) cycle(delta int) loginModel {
	switch m.focus {
	case loginFieldRole:
		m.role = (m.role + delta + len(loginRoles)) % len(loginRoles)
	case loginFieldPartition:
		m.partition = (m.partition + delta + len(models.Departments)) % len(models.Departments)
	}
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Field      │ Value\n")
	b.WriteString("───────────┼────────────────────────────────────────────\n")
	b.WriteString(m.row(loginFieldEmail, "Email", m.inputs[loginFieldEmail].View()))
	b.WriteString(m.row(loginFieldName, "Name", m.inputs[loginFieldName].View()))
	b.WriteString(m.row(loginFieldPicture, "Avatar", m.inputs[loginFieldPicture].View()))
	b.WriteString(m.row(loginFieldRole, "Role", "< "+string(loginRoles[m.role])+" >"))
	dept := models.Departments[m.partition]
	b.WriteString(m.row(loginFieldPartition, "Partition", "< "+dept.ID+" "+dept.Name+" >"))

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"),
		"tab: next field │ ←/→: change │ enter: sign in │ v: about │ esc: quit")
}

func (m loginModel) row(field int, label, value string) string {
	cursor := "  "
	if m.focus == field {
		cursor = "> "
	}
	return cursor + padRight(label, 9) + "│ " + value + "\n"
}
