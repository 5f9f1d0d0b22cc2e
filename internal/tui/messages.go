package tui

import (
	"github.com/AvengeMedia/dankimage/internal/devices"
	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/AvengeMedia/dankimage/internal/wifi"
)

type runnerEventMsg struct {
	session *runner.Session
	event   runner.Event
}

type runnerClosedMsg struct {
	session *runner.Session
}

type devicesLoadedMsg struct {
	devices []devices.Device
	err     error
}

type wifiScannedMsg struct {
	networks []wifi.Network
	err      error
}
