package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/devices"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewSelectDevice() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Choose Target Device")
	b.WriteString(title)
	b.WriteString("\n\n")

	switch {
	case m.loadingDevices:
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.styles.Normal.Render("Detecting block devices...")))
	case len(m.devices) == 0:
		b.WriteString(m.styles.Subtle.Render("  " + devices.NoDevicesPlaceholder))
		b.WriteString("\n")
	default:
		for i, d := range m.devices {
			if i == m.selectedDevice {
				b.WriteString(m.styles.SelectedOption.Render("▶ " + d.String()))
			} else {
				b.WriteString(m.styles.Normal.Render("  " + d.String()))
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" && m.statusErr {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("✗ " + m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.styles.Subtle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+R: Refresh, Esc: Back")
	b.WriteString(help)

	return b.String()
}

func (m Model) openDeviceList() (tea.Model, tea.Cmd) {
	if m.ctrl.FlashRunner.IsBusy() {
		m.setStatus(actions.MsgFlashBusy, true)
		return m, nil
	}
	m.state = StateSelectDevice
	m.setStatus("", false)
	return m.refreshDevices()
}

func (m Model) refreshDevices() (tea.Model, tea.Cmd) {
	m.loadingDevices = true
	m.devices = nil
	m.selectedDevice = 0
	return m, tea.Batch(m.spinner.Tick, loadDevicesCmd(m.deviceTimeout))
}

func (m Model) handleDevicesLoaded(msg devicesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingDevices = false
	m.devices = msg.devices
	m.selectedDevice = 0
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Could not list devices: %v", msg.err), true)
	}
	return m, nil
}

func (m Model) updateSelectDeviceState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.selectedDevice > 0 {
			m.selectedDevice--
		}
	case "down", "j":
		if m.selectedDevice < len(m.devices)-1 {
			m.selectedDevice++
		}
	case "ctrl+r":
		if !m.loadingDevices {
			return m.refreshDevices()
		}
	case "esc":
		m.state = StateEditor
		m.setStatus("", false)
	case "enter":
		if m.loadingDevices {
			return m, nil
		}
		if len(m.devices) == 0 {
			m.setStatus("Please select a valid device.", true)
			return m, nil
		}
		device := m.devices[m.selectedDevice].Name
		m.pendingDevice = device
		m.openConfirm(pendingFlash, actions.FlashConfirmMessage(device), false)
	}
	return m, nil
}

func loadDevicesCmd(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		devs, err := listDevices(ctx)
		return devicesLoadedMsg{devices: devs, err: err}
	}
}
