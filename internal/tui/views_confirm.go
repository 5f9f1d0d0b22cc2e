package tui

import (
	"strings"

	"github.com/AvengeMedia/dankimage/internal/actions"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openConfirm(action pendingAction, message string, allowCancel bool) {
	m.pending = action
	m.dialogMessage = message
	m.dialogCancel = allowCancel
	m.dialogChoice = actions.No
	m.state = StateConfirm
}

func (m Model) dialogOptions() []actions.Answer {
	if m.dialogCancel {
		return []actions.Answer{actions.Yes, actions.No, actions.Cancel}
	}
	return []actions.Answer{actions.Yes, actions.No}
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := "Unsaved Changes"
	if m.pending == pendingFlash {
		title = "Confirm Flash"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	var body strings.Builder
	body.WriteString(m.styles.Warning.Render(m.dialogMessage))
	body.WriteString("\n\n")

	var buttons []string
	for _, opt := range m.dialogOptions() {
		label := strings.ToUpper(opt.String()[:1]) + opt.String()[1:]
		if opt == m.dialogChoice {
			buttons = append(buttons, m.styles.HighlightButton.Render(label))
		} else {
			buttons = append(buttons, m.styles.Normal.Padding(0, 2).Render(label))
		}
	}
	body.WriteString(strings.Join(buttons, " "))

	b.WriteString(m.styles.Dialog.Render(body.String()))
	b.WriteString("\n\n")

	help := m.styles.Subtle.Render("Use ←/→ to choose, Enter to confirm, y/n shortcuts, Esc: Back")
	b.WriteString(help)

	return b.String()
}

func (m Model) updateConfirmState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	opts := m.dialogOptions()
	idx := 0
	for i, o := range opts {
		if o == m.dialogChoice {
			idx = i
		}
	}

	switch keyMsg.String() {
	case "left", "h", "shift+tab":
		if idx > 0 {
			m.dialogChoice = opts[idx-1]
		}
	case "right", "l", "tab":
		if idx < len(opts)-1 {
			m.dialogChoice = opts[idx+1]
		}
	case "y":
		return m.resolveConfirm(actions.Yes)
	case "n":
		return m.resolveConfirm(actions.No)
	case "c":
		if m.dialogCancel {
			return m.resolveConfirm(actions.Cancel)
		}
	case "esc":
		if m.dialogCancel {
			return m.resolveConfirm(actions.Cancel)
		}
		return m.resolveConfirm(actions.No)
	case "enter":
		return m.resolveConfirm(m.dialogChoice)
	}
	return m, nil
}

func (m Model) resolveConfirm(answer actions.Answer) (tea.Model, tea.Cmd) {
	action := m.pending
	m.pending = pendingNone
	m.state = StateEditor

	switch action {
	case pendingApplyConfig:
		if answer == actions.Cancel {
			m.setStatus("Apply config cancelled.", false)
			return m, nil
		}
		return m.runApplyConfig(answer)
	case pendingFlash:
		device := m.pendingDevice
		m.pendingDevice = ""
		m.ctrl.Prompt = answered(answer)
		session, err := m.ctrl.Flash(device)
		if err != nil {
			if actions.IsCancelled(err) {
				m.appendOutput(actions.MsgFlashCancelled)
				m.setStatus(actions.MsgFlashCancelled, false)
				return m, nil
			}
			m.setStatus(describeError(err), true)
			return m, nil
		}
		m.appendOutput("Flashing " + device + "...")
		m.setStatus("", false)
		return m, m.follow(session)
	}
	return m, nil
}
