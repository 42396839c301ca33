// Package tui is the terminal dashboard of the client.
//
// Besides drawing the screens, [TUI] answers the blocking questions the
// services ask while the program runs: it implements both
// [service.Confirmer] and [adapter.Consenter] by forwarding the request into
// the Bubble Tea event loop and waiting for the user's answer.
package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	buildInfo models.AppBuildInfo

	mu      sync.Mutex
	program *tea.Program

	logger *logger.Logger
}

func New(buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{buildInfo: buildInfo, logger: log}
}

// Run draws the dashboard until the user quits. The engine must already be
// started.
func (t *TUI) Run(ctx context.Context, services *service.ClientServices) error {
	model := newAppModel(ctx, services.Engine, services.Sessions, t.buildInfo)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	t.setProgram(p)
	defer t.setProgram(nil)

	unsubscribe := services.Engine.Subscribe(func(state models.SyncState) {
		p.Send(syncStateMsg(state))
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

// Confirm implements [service.Confirmer]. It answers false when no program
// is running or ctx ends first.
func (t *TUI) Confirm(ctx context.Context, question string) bool {
	reply := make(chan bool, 1)
	if !t.send(confirmRequestMsg{question: question, reply: reply}) {
		t.logger.Warn().Str("func", "TUI.Confirm").Str("question", question).Msg("no program to ask, declining")
		return false
	}

	select {
	case answer := <-reply:
		return answer
	case <-ctx.Done():
		return false
	}
}

// Consent implements [adapter.Consenter].
func (t *TUI) Consent(ctx context.Context) (models.Credentials, bool) {
	reply := make(chan consentReply, 1)
	if !t.send(consentRequestMsg{reply: reply}) {
		t.logger.Warn().Str("func", "TUI.Consent").Msg("no program to ask, declining")
		return models.Credentials{}, false
	}

	select {
	case answer := <-reply:
		return answer.creds, answer.ok
	case <-ctx.Done():
		return models.Credentials{}, false
	}
}

func (t *TUI) setProgram(p *tea.Program) {
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}
