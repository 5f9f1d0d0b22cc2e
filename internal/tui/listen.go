package tui

import (
	"fmt"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
)

// listenForSession delivers the next event of s. It is re-armed after every
// chunk until the terminal event arrives.
func listenForSession(s *runner.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events()
		if !ok {
			return runnerClosedMsg{session: s}
		}
		return runnerEventMsg{session: s, event: ev}
	}
}

func (m Model) handleRunnerEvent(msg runnerEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.event
	if !ev.Done {
		m.appendOutput(fmt.Sprintf("[%s] %s", ev.Runner, ev.Text))
		return m, listenForSession(msg.session)
	}

	text := actions.TerminalMessage(ev.Runner, ev.Outcome)
	m.appendOutput(fmt.Sprintf("[%s] %s", ev.Runner, text))
	m.setStatus(text, ev.Outcome.Crashed || ev.Outcome.ExitCode != 0)
	return m, listenForSession(msg.session)
}
