package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewEditor() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	folder := m.ctrl.Folder().Dir
	if folder == "" {
		folder = "(none selected)"
	}
	b.WriteString(m.styles.Subtle.Render("Scripts folder: " + folder))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldSSID, "WiFi SSID", m.ssidInput.View()))
	b.WriteString("\n")
	b.WriteString(m.renderField(fieldSecret, "Password", m.secretInput.View()))
	b.WriteString("\n\n")
	b.WriteString(m.renderField(fieldScript, "Script", ""))
	b.WriteString("\n")
	b.WriteString(m.scriptArea.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Output.Render(m.output.View()))
	b.WriteString("\n")

	if m.busy() {
		b.WriteString(m.spinner.View() + " " + m.styles.Normal.Render(m.runningLabel()))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.Error.Render("✗ " + m.status))
		} else {
			b.WriteString(m.styles.Success.Render("✓ " + m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderField(f field, label, input string) string {
	style := m.styles.Label
	if m.focus == f {
		style = m.styles.FocusedLabel
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), input)
}

func (m Model) runningLabel() string {
	var running []string
	if m.ctrl.ScriptRunner.IsBusy() {
		running = append(running, "script")
	}
	if m.ctrl.FlashRunner.IsBusy() {
		running = append(running, "flash")
	}
	return "Running " + strings.Join(running, " and ") + "..."
}

func (m Model) renderHelp() string {
	save := m.styles.Subtle.Render("Ctrl+S: Save")
	if m.ctrl.State.IsDirty() {
		save = m.styles.HighlightButton.Render("Ctrl+S: Save *")
	}
	rest := m.styles.Subtle.Render("Tab: Next field, Ctrl+U: Apply config, Ctrl+B: Build, Ctrl+F: Flash, Ctrl+W: Scan WiFi, Esc: Quit")
	return save + "  " + rest
}

func (m Model) updateEditorState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, tea.Quit
		case "tab":
			m.focusField((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m.focusField((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+s":
			return m.save()
		case "ctrl+u":
			return m.applyConfig()
		case "ctrl+b":
			return m.build()
		case "ctrl+f":
			return m.openDeviceList()
		case "ctrl+w":
			m.setStatus("Scanning for WiFi networks...", false)
			return m, scanWifiCmd()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldSSID:
		m.ssidInput, cmd = m.ssidInput.Update(msg)
	case fieldSecret:
		m.secretInput, cmd = m.secretInput.Update(msg)
	case fieldScript:
		m.scriptArea, cmd = m.scriptArea.Update(msg)
	}
	m.syncStateFromInputs()
	return m, cmd
}

func (m *Model) focusField(f field) {
	m.focus = f
	m.ssidInput.Blur()
	m.secretInput.Blur()
	m.scriptArea.Blur()
	switch f {
	case fieldSSID:
		m.ssidInput.Focus()
	case fieldSecret:
		m.secretInput.Focus()
	case fieldScript:
		m.scriptArea.Focus()
	}
}

func (m *Model) syncStateFromInputs() {
	st := m.ctrl.State
	if v := m.ssidInput.Value(); v != m.shownSSID {
		st.SetSSID(v)
		m.shownSSID = v
	}
	if v := m.secretInput.Value(); v != m.shownSecret {
		st.SetSecret(v)
		m.shownSecret = v
	}
	if v := m.scriptArea.Value(); v != m.shownScript {
		st.SetScriptBody(v)
		m.shownScript = v
	}
}

func (m *Model) syncInputsFromState() {
	st := m.ctrl.State
	m.ssidInput.SetValue(st.SSID())
	m.secretInput.SetValue(st.Secret())
	m.scriptArea.SetValue(st.ScriptBody())
	m.shownSSID = m.ssidInput.Value()
	m.shownSecret = m.secretInput.Value()
	m.shownScript = m.scriptArea.Value()
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Save(); err != nil {
		m.setStatus(describeError(err), true)
		return m, nil
	}
	m.setStatus("Configuration saved.", false)
	return m, nil
}

func (m Model) applyConfig() (tea.Model, tea.Cmd) {
	if m.ctrl.ScriptRunner.IsBusy() {
		m.setStatus(describeError(errdefs.ErrAlreadyRunning), true)
		return m, nil
	}
	if m.ctrl.State.IsDirty() {
		m.openConfirm(pendingApplyConfig, "You have unsaved changes. Do you want to save them?", true)
		return m, nil
	}
	return m.runApplyConfig(actions.No)
}

func (m Model) runApplyConfig(answer actions.Answer) (tea.Model, tea.Cmd) {
	m.ctrl.Prompt = answered(answer)
	session, err := m.ctrl.ApplyConfig()
	m.syncInputsFromState()
	if err != nil {
		m.setStatus(describeError(err), !actions.IsCancelled(err))
		return m, nil
	}
	m.appendOutput(actions.MsgRunningConfig)
	m.setStatus("", false)
	return m, m.follow(session)
}

func (m Model) build() (tea.Model, tea.Cmd) {
	session, err := m.ctrl.Build()
	if err != nil {
		m.setStatus(describeError(err), true)
		return m, nil
	}
	m.clearOutput()
	m.appendOutput(actions.MsgStartingBuild)
	m.setStatus("", false)
	return m, m.follow(session)
}

func (m Model) follow(s *runner.Session) tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForSession(s))
}

func (m Model) handleWifiScanned(msg wifiScannedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("WiFi scan failed: %v", msg.err), true)
		return m, nil
	}
	if len(msg.networks) == 0 {
		m.setStatus("No WiFi networks found.", true)
		return m, nil
	}

	var names []string
	for _, n := range msg.networks {
		names = append(names, fmt.Sprintf("%s (%d%%)", n.SSID, n.Signal))
	}
	m.appendOutput("Nearby networks: " + strings.Join(names, ", "))

	if m.ssidInput.Value() == "" {
		m.ssidInput.SetValue(msg.networks[0].SSID)
		m.syncStateFromInputs()
		m.setStatus("SSID set to strongest network "+msg.networks[0].SSID+".", false)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Found %d WiFi networks.", len(msg.networks)), false)
	return m, nil
}

func scanWifiCmd() tea.Cmd {
	return func() tea.Msg {
		networks, err := scanNetworks()
		return wifiScannedMsg{networks: networks, err: err}
	}
}

// answered returns a Prompter that replays an answer the operator already
// gave in a dialog.
func answered(a actions.Answer) actions.Prompter {
	return actions.PrompterFunc(func(string, bool) actions.Answer { return a })
}

func describeError(err error) string {
	var wf *errdefs.WriteFailedError
	if errors.As(err, &wf) {
		return fmt.Sprintf("Failed to write %s", wf.Artifact)
	}
	msg := err.Error()
	if msg == "" {
		return "unknown error"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
