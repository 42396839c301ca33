package tui

// confirmModel is the yes/no modal shown for a [confirmRequestMsg].
type confirmModel struct {
	question string
	reply    chan<- bool
}

// answer replies once; later calls are no-ops.
func (m *confirmModel) answer(yes bool) {
	if m.reply == nil {
		return
	}
	m.reply <- yes
	m.reply = nil
}

func (m confirmModel) View() string {
	content := m.question + "\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
