package tui

type ApplicationState int

const (
	StateEditor ApplicationState = iota
	StateSelectDevice
	StateConfirm
)

type field int

const (
	fieldSSID field = iota
	fieldSecret
	fieldScript
	fieldCount
)

// pendingAction is the action waiting on an answer from the confirm dialog.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingApplyConfig
	pendingFlash
)
