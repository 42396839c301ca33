package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a transient status line stays visible.
const statusTimeout = 2 * time.Second

type screen int

const (
	screenSplash screen = iota
	screenLogin
	screenDashboard
	screenComment
	screenProject
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

type appModel struct {
	ctx       context.Context
	engine    service.DashboardEngine
	sessions  sessionManager
	buildInfo models.AppBuildInfo

	currentScreen screen
	splash        spinner.Model

	login     loginModel
	dashboard dashboardModel
	comment   commentModel
	project   projectFormModel

	showConsent   bool
	consent       consentModel
	showConfirm   bool
	confirm       confirmModel
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool

	quitByUser bool
}

func newAppModel(ctx context.Context, engine service.DashboardEngine, sessions sessionManager, buildInfo models.AppBuildInfo) appModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return appModel{
		ctx:           ctx,
		engine:        engine,
		sessions:      sessions,
		buildInfo:     buildInfo,
		currentScreen: screenSplash,
		splash:        s,
		login:         newLoginModel(),
		dashboard:     newDashboardModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.splash.Tick, m.dashboard.spinner.Tick, m.cmdWaitReady())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit(true)
		}
		switch {
		case m.showConsent:
			return m.updateConsent(msg)
		case m.showConfirm:
			return m.updateConfirm(msg)
		case m.showError:
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		case m.showBuildInfo:
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case confirmRequestMsg:
		if m.showConfirm || m.showConsent {
			msg.reply <- false
			return m, nil
		}
		m.showConfirm = true
		m.confirm = confirmModel{question: msg.question, reply: msg.reply}
		return m, nil
	case consentRequestMsg:
		if m.showConfirm || m.showConsent {
			msg.reply <- consentReply{}
			return m, nil
		}
		m.showConsent = true
		m.consent = newConsentModel(msg.reply)
		return m, textinput.Blink
	case readyMsg:
		m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
		if m.dashboard.session == nil {
			m.currentScreen = screenLogin
			return m, textinput.Blink
		}
		m.currentScreen = screenDashboard
		return m, nil
	case syncStateMsg:
		m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
		m.dashboard.state = models.SyncState(msg)
		return m, nil
	case connectDoneMsg:
		m.dashboard.connecting = false
		m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
		if msg.err != nil {
			m.showErrorf(humanizeConnectError(msg.err))
		}
		return m, nil
	case mutationDoneMsg:
		return m.afterMutation()
	case logoutDoneMsg:
		if msg.ok {
			return m.toLogin()
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.dashboard.status = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.dashboard.status = "Copied!"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.dashboard.status = ""
		return m, nil
	case spinner.TickMsg:
		var splashCmd, dashCmd tea.Cmd
		m.splash, splashCmd = m.splash.Update(msg)
		m.dashboard.spinner, dashCmd = m.dashboard.spinner.Update(msg)
		return m, tea.Batch(splashCmd, dashCmd)
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	case screenComment:
		return m.updateComment(msg)
	case screenProject:
		return m.updateProject(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenSplash:
		body = renderPage("GO-DASH-SYNC", m.splash.View()+" Loading dashboard...", "")
	case screenLogin:
		body = m.login.View()
	case screenDashboard:
		body = m.dashboard.View()
	case screenComment:
		body = m.comment.View()
	case screenProject:
		body = m.project.View()
	}

	if m.showBuildInfo {
		body = renderBuildInfoWindow(m.buildInfo)
	}
	if m.showConsent {
		body += "\n\n" + m.consent.View()
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

// quit declines every pending prompt so that no service call stays blocked.
func (m appModel) quit(byUser bool) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		m.confirm.answer(false)
		m.showConfirm = false
	}
	if m.showConsent {
		m.consent.answer(models.Credentials{}, false)
		m.showConsent = false
	}
	m.quitByUser = byUser
	return m, tea.Quit
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m appModel) toLogin() (tea.Model, tea.Cmd) {
	m.login = newLoginModel()
	m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
	m.dashboard.idx = 0
	m.currentScreen = screenLogin
	return m, textinput.Blink
}

func (m appModel) afterMutation() (tea.Model, tea.Cmd) {
	if m.sessions.Session() == nil {
		return m.toLogin()
	}
	m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm.answer(true)
		m.showConfirm = false
	case key.Matches(msg, keys.no) || key.Matches(msg, keys.esc):
		m.confirm.answer(false)
		m.showConfirm = false
	}
	return m, nil
}

func (m appModel) updateConsent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.consent.answer(models.Credentials{}, false)
		m.showConsent = false
		return m, nil
	case key.Matches(msg, keys.tab) || key.Matches(msg, keys.backtab):
		m.consent = m.consent.focusNext()
		return m, nil
	case key.Matches(msg, keys.toggle):
		m.consent.register = !m.consent.register
		return m, nil
	case key.Matches(msg, keys.enter):
		creds, errMsg := m.consent.credentials()
		if errMsg != "" {
			m.consent.errMsg = errMsg
			return m, nil
		}
		m.consent.answer(creds, true)
		m.showConsent = false
		return m, nil
	}

	var cmd tea.Cmd
	m.consent.inputs[m.consent.focus], cmd = m.consent.inputs[m.consent.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.quit(true)
		case key.Matches(keyMsg, keys.tab):
			m.login = m.login.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = m.login.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.left) && m.login.focus >= loginFieldRole:
			m.login = m.login.cycle(-1)
			return m, nil
		case key.Matches(keyMsg, keys.right) && m.login.focus >= loginFieldRole:
			m.login = m.login.cycle(1)
			return m, nil
		case key.Matches(keyMsg, keys.info) && m.login.focus >= loginFieldRole:
			m.showBuildInfo = true
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if errMsg := m.login.validate(); errMsg != "" {
				m.login.errMsg = errMsg
				return m, nil
			}
			m.sessions.Login(m.ctx, m.login.identity(), m.login.partitionID())
			m.login.errMsg = ""
			m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
			m.currentScreen = screenDashboard
			return m, nil
		}
	}

	if m.login.focus >= len(m.login.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dashboard.idx > 0 {
			m.dashboard.idx--
		}
		return m, nil
	case key.Matches(keyMsg, keys.down):
		if m.dashboard.idx < len(m.dashboard.projects)-1 {
			m.dashboard.idx++
		}
		return m, nil
	case key.Matches(keyMsg, keys.quit):
		return m.quit(false)
	case key.Matches(keyMsg, keys.info):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(keyMsg, keys.dismiss):
		m.engine.DismissError()
		m.dashboard.state = m.engine.SyncStatus()
		return m, nil
	case key.Matches(keyMsg, keys.partition):
		if !m.sessions.SetViewPartition(m.dashboard.nextPartition()) {
			m.dashboard.status = "Your partition is fixed"
			return m, cmdClearStatus()
		}
		m.dashboard = m.dashboard.refresh(m.engine, m.sessions)
		m.dashboard.idx = 0
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		if m.dashboard.session == nil {
			return m, nil
		}
		return m, cmdCopy(m.dashboard.session.Email)
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	}

	if !m.dashboard.canWrite() {
		switch {
		case key.Matches(keyMsg, keys.connect), key.Matches(keyMsg, keys.status),
			key.Matches(keyMsg, keys.comment), key.Matches(keyMsg, keys.newItem),
			key.Matches(keyMsg, keys.delete), key.Matches(keyMsg, keys.reset):
			m.dashboard.status = "Read-only session"
			return m, cmdClearStatus()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.connect):
		if m.dashboard.connecting {
			return m, nil
		}
		if m.dashboard.state.Connected {
			return m, m.cmdDisconnect()
		}
		m.dashboard.connecting = true
		return m, m.cmdConnect()
	case key.Matches(keyMsg, keys.newItem):
		m.project = newProjectFormModel()
		m.currentScreen = screenProject
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.reset):
		return m, m.cmdMutate(func(ctx context.Context) bool { return m.engine.ResetData(ctx) })
	}

	p, ok := m.dashboard.current()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.status):
		next := p.Status.Next()
		return m, m.cmdMutate(func(ctx context.Context) bool { return m.engine.UpdateProjectStatus(ctx, p.ID, next) })
	case key.Matches(keyMsg, keys.delete):
		return m, m.cmdMutate(func(ctx context.Context) bool { return m.engine.DeleteProjects(ctx, p.ID) })
	case key.Matches(keyMsg, keys.comment):
		m.comment = newCommentModel(p.ID, p.Name)
		m.currentScreen = screenComment
		return m, textinput.Blink
	}
	return m, nil
}

func (m appModel) updateComment(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenDashboard
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			text := m.comment.text()
			if text == "" {
				m.comment.errMsg = "Comment is empty"
				return m, nil
			}
			projectID := m.comment.projectID
			m.currentScreen = screenDashboard
			return m, m.cmdMutate(func(ctx context.Context) bool { return m.engine.AddComment(ctx, projectID, text) })
		}
	}

	var cmd tea.Cmd
	m.comment.input, cmd = m.comment.input.Update(msg)
	return m, cmd
}

func (m appModel) updateProject(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenDashboard
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.project = m.project.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.project = m.project.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			project, errMsg := m.project.project()
			if errMsg != "" {
				m.project.errMsg = errMsg
				return m, nil
			}
			m.currentScreen = screenDashboard
			m.dashboard.idx = 0
			return m, m.cmdMutate(func(ctx context.Context) bool {
				_, ok := m.engine.SaveProject(ctx, project)
				return ok
			})
		}
	}

	var cmd tea.Cmd
	m.project.inputs[m.project.focus], cmd = m.project.inputs[m.project.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdWaitReady() tea.Cmd {
	ctx, ready := m.ctx, m.engine.Ready()
	return func() tea.Msg {
		select {
		case <-ready:
			return readyMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m appModel) cmdConnect() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		return connectDoneMsg{err: engine.ConnectCloud(ctx)}
	}
}

func (m appModel) cmdDisconnect() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		engine.DisconnectCloud(ctx)
		return mutationDoneMsg{ok: true}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		return logoutDoneMsg{ok: engine.Logout(ctx)}
	}
}

// cmdMutate runs a record operation off the event loop; it may block on a
// confirmation prompt.
func (m appModel) cmdMutate(fn func(ctx context.Context) bool) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return mutationDoneMsg{ok: fn(ctx)}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
