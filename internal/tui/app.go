package tui

import (
	"strings"
	"time"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/devices"
	"github.com/AvengeMedia/dankimage/internal/wifi"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const maxOutputLines = 2000

var (
	listDevices  = devices.List
	scanNetworks = wifi.Scan
)

type Model struct {
	version       string
	ctrl          *actions.Controller
	deviceTimeout time.Duration

	state  ApplicationState
	width  int
	height int

	focus       field
	ssidInput   textinput.Model
	secretInput textinput.Model
	scriptArea  textarea.Model

	// Widget text as last pushed from state. The widgets rewrite tabs and
	// line endings, so state is only updated once the text differs.
	shownSSID   string
	shownSecret string
	shownScript string

	output  viewport.Model
	lines   []string
	spinner spinner.Model
	styles  Styles

	status    string
	statusErr bool

	devices        []devices.Device
	selectedDevice int
	loadingDevices bool

	pending       pendingAction
	pendingDevice string
	dialogMessage string
	dialogCancel  bool
	dialogChoice  actions.Answer
}

func NewModel(version string, ctrl *actions.Controller, deviceTimeout time.Duration) Model {
	theme := PurpleTheme()
	styles := NewStyles(theme)

	ssid := textinput.New()
	ssid.Placeholder = "network name"
	ssid.Prompt = ""
	ssid.CharLimit = 0
	ssid.Width = 40

	secret := textinput.New()
	secret.Placeholder = "password"
	secret.Prompt = ""
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'
	secret.CharLimit = 0
	secret.Width = 40

	script := textarea.New()
	script.Placeholder = "script_config.txt"
	script.ShowLineNumbers = false
	script.CharLimit = 0
	script.MaxHeight = 0
	script.SetWidth(60)
	script.SetHeight(6)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	if deviceTimeout <= 0 {
		deviceTimeout = devices.DefaultTimeout
	}

	m := Model{
		version:       version,
		ctrl:          ctrl,
		deviceTimeout: deviceTimeout,
		state:         StateEditor,
		ssidInput:     ssid,
		secretInput:   secret,
		scriptArea:    script,
		output:        viewport.New(60, 10),
		spinner:       s,
		styles:        styles,
	}
	m.ssidInput.Focus()
	m.syncInputsFromState()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case runnerEventMsg:
		return m.handleRunnerEvent(msg)
	case runnerClosedMsg:
		return m, nil
	case devicesLoadedMsg:
		return m.handleDevicesLoaded(msg)
	case wifiScannedMsg:
		return m.handleWifiScanned(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateSelectDevice:
		return m.updateSelectDeviceState(msg)
	case StateConfirm:
		return m.updateConfirmState(msg)
	default:
		return m.updateEditorState(msg)
	}
}

func (m Model) View() string {
	switch m.state {
	case StateSelectDevice:
		return m.viewSelectDevice()
	case StateConfirm:
		return m.viewConfirm()
	default:
		return m.viewEditor()
	}
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.ssidInput.Width = min(w-14, 64)
	m.secretInput.Width = min(w-14, 64)
	m.scriptArea.SetWidth(w)

	m.output.Width = w
	h := m.height - 30
	if h < 5 {
		h = 5
	}
	m.output.Height = h
	m.output.GotoBottom()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) appendOutput(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxOutputLines {
		m.lines = m.lines[len(m.lines)-maxOutputLines:]
	}
	m.refreshOutput()
}

func (m *Model) clearOutput() {
	m.lines = nil
	m.refreshOutput()
}

func (m *Model) refreshOutput() {
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m Model) busy() bool {
	return m.ctrl.ScriptRunner.IsBusy() || m.ctrl.FlashRunner.IsBusy()
}
