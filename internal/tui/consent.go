package tui

import (
	"strings"

	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// consentModel is the cloud sign-in prompt shown for a [consentRequestMsg].
type consentModel struct {
	inputs   []textinput.Model
	focus    int
	register bool
	errMsg   string
	reply    chan<- consentReply
}

func newConsentModel(reply chan<- consentReply) consentModel {
	login := textinput.New()
	login.Placeholder = "login"
	login.CharLimit = 64
	login.Width = 40
	login.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return consentModel{inputs: []textinput.Model{login, password}, reply: reply}
}

func (m consentModel) credentials() (models.Credentials, string) {
	creds := models.Credentials{
		Login:    strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
		Register: m.register,
	}
	if creds.Login == "" || creds.Password == "" {
		return models.Credentials{}, "Login and password are required"
	}
	return creds, ""
}

// answer replies once; later calls are no-ops.
func (m *consentModel) answer(creds models.Credentials, ok bool) {
	if m.reply == nil {
		return
	}
	m.reply <- consentReply{creds: creds, ok: ok}
	m.reply = nil
}

func (m consentModel) focusNext() consentModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m consentModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect to the cloud"))
	b.WriteString("\n\n")
	b.WriteString("Login    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n\n")
	if m.register {
		b.WriteString("[x] create a new cloud account\n")
	} else {
		b.WriteString("[ ] create a new cloud account\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field │ ctrl+r: toggle new account │ enter: connect │ esc: cancel"))
	return overlayBoxStyle.Render(b.String())
}
