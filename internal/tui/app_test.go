package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/devices"
	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/AvengeMedia/dankimage/internal/wifi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const folder = "/scripts"

func newTestModel(t *testing.T) (Model, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(folder, 0755))
	ctrl := actions.NewController(fs, folder,
		runner.New(actions.ScriptsRunnerName, runner.WithElevator("sh")),
		runner.New(actions.FlashRunnerName, runner.WithElevator("sh")),
		actions.AssumeYes,
	)
	return NewModel("test", ctrl, 0), fs
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestTypingMarksDirtyAndSaveClearsIt(t *testing.T) {
	m, fs := newTestModel(t)
	assert.False(t, m.ctrl.State.IsDirty())

	m = typeText(t, m, "HomeNet")
	assert.Equal(t, "HomeNet", m.ctrl.State.SSID())
	assert.True(t, m.ctrl.State.IsDirty())
	assert.Contains(t, m.renderHelp(), "Save *")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldSecret, m.focus)
	m = typeText(t, m, "p@ss")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.ctrl.State.IsDirty())
	assert.False(t, m.statusErr)

	data, err := afero.ReadFile(fs, folder+"/config.txt")
	require.NoError(t, err)
	assert.Equal(t, "WIFI_SSID=HomeNet\nWIFI_PASS=p@ss\n", string(data))
}

func TestLoadedValuesSurviveNavigationUnchanged(t *testing.T) {
	m, fs := newTestModel(t)
	body := "if true; then\n\techo hi\nfi\r\n"
	ssid := strings.Repeat("s", 100)
	secret := strings.Repeat("p", 200)
	config := "WIFI_SSID=" + ssid + "\nWIFI_PASS=" + secret + "\n"
	require.NoError(t, afero.WriteFile(fs, folder+"/config.txt", []byte(config), 0644))
	require.NoError(t, afero.WriteFile(fs, folder+"/script_config.txt", []byte(body), 0644))

	require.NoError(t, m.ctrl.Reload())
	m.syncInputsFromState()
	assert.Equal(t, ssid, m.ssidInput.Value())
	assert.Equal(t, secret, m.secretInput.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldScript, m.focus)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	assert.False(t, m.ctrl.State.IsDirty())
	assert.Equal(t, body, m.ctrl.State.ScriptBody())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.False(t, m.statusErr, m.status)

	saved, err := afero.ReadFile(fs, folder+"/script_config.txt")
	require.NoError(t, err)
	assert.Equal(t, body, string(saved))

	saved, err = afero.ReadFile(fs, folder+"/config.txt")
	require.NoError(t, err)
	assert.Equal(t, config, string(saved))
}

func TestEditingScriptReplacesBody(t *testing.T) {
	m, _ := newTestModel(t)
	m.ctrl.State.SetScriptBody("a\tb")
	m.syncInputsFromState()

	m.focusField(fieldScript)
	m = typeText(t, m, "x")
	assert.True(t, m.ctrl.State.IsDirty())
	assert.Equal(t, m.scriptArea.Value(), m.ctrl.State.ScriptBody())
}

func TestApplyConfigDirtyOpensDialogAndCancel(t *testing.T) {
	m, fs := newTestModel(t)
	m = typeText(t, m, "edit")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, StateConfirm, m.state)
	assert.Equal(t, pendingApplyConfig, m.pending)
	assert.Len(t, m.dialogOptions(), 3)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
	assert.Equal(t, StateEditor, m.state)
	assert.True(t, m.ctrl.State.IsDirty())

	exists, _ := afero.Exists(fs, folder+"/config.txt")
	assert.False(t, exists)
}

func TestApplyConfigYesSavesBeforeCheckingScript(t *testing.T) {
	m, fs := newTestModel(t)
	m = typeText(t, m, "Lab")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	exists, _ := afero.Exists(fs, folder+"/config.txt")
	assert.True(t, exists)
	assert.False(t, m.ctrl.State.IsDirty())
	assert.True(t, m.statusErr, "change_config.sh is missing")
	assert.Contains(t, m.status, "change_config.sh")
}

func TestFlashFlowDecline(t *testing.T) {
	orig := listDevices
	defer func() { listDevices = orig }()
	listDevices = func(ctx context.Context) ([]devices.Device, error) {
		return []devices.Device{
			{Name: "/dev/sdb", Size: "14.9G", Model: "SanDisk"},
			{Name: "/dev/sdc", Size: "7.5G"},
		}, nil
	}

	m, _ := newTestModel(t)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, StateSelectDevice, m.state)
	assert.True(t, m.loadingDevices)
	require.NotNil(t, cmd)

	m, _ = press(t, m, loadDevicesCmd(m.deviceTimeout)())
	assert.False(t, m.loadingDevices)
	require.Len(t, m.devices, 2)
	assert.Contains(t, m.View(), "/dev/sdb 14.9G SanDisk")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateConfirm, m.state)
	assert.Contains(t, m.dialogMessage, "/dev/sdc?")
	assert.Len(t, m.dialogOptions(), 2)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateEditor, m.state)
	assert.Equal(t, actions.MsgFlashCancelled, m.lines[len(m.lines)-1])
	assert.Equal(t, runner.StateIdle, m.ctrl.FlashRunner.State())
}

func TestDeviceListEmptyIsInvalid(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateSelectDevice

	m, _ = press(t, m, devicesLoadedMsg{err: errors.New("lsblk failed")})
	assert.Contains(t, m.View(), devices.NoDevicesPlaceholder)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateSelectDevice, m.state)
	assert.True(t, m.statusErr)
}

func TestRunnerEventsAreTagged(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, runnerEventMsg{event: runner.Event{Runner: "scripts", Stream: runner.StreamStdout, Text: "building rootfs"}})
	assert.NotNil(t, cmd)
	m, _ = press(t, m, runnerEventMsg{event: runner.Event{Runner: "flash", Stream: runner.StreamStderr, Text: "12%"}})
	m, _ = press(t, m, runnerEventMsg{event: runner.Event{Runner: "scripts", Done: true, Outcome: runner.Outcome{ExitCode: 0}}})
	m, _ = press(t, m, runnerEventMsg{event: runner.Event{Runner: "flash", Done: true, Outcome: runner.Outcome{ExitCode: -1, Crashed: true}}})

	assert.Equal(t, []string{
		"[scripts] building rootfs",
		"[flash] 12%",
		"[scripts] Script finished with code 0.",
		"[flash] Flashing process crashed.",
	}, m.lines)
	assert.True(t, m.statusErr)
}

func TestWifiScanFillsEmptySSID(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, wifiScannedMsg{networks: []wifi.Network{{SSID: "Strong", Signal: 90}, {SSID: "Weak", Signal: 20}}})
	assert.Equal(t, "Strong", m.ssidInput.Value())
	assert.Equal(t, "Strong", m.ctrl.State.SSID())

	m, _ = press(t, m, wifiScannedMsg{networks: []wifi.Network{{SSID: "Other", Signal: 95}}})
	assert.Equal(t, "Strong", m.ssidInput.Value())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
