package runner

import (
	"os"
	"path/filepath"
	"syscall"
)

// pkexec exits with these codes when the operator dismisses the
// authentication dialog or is not authorized.
const (
	pkexecDismissed    = 126
	pkexecUnauthorized = 127
)

// classify turns the state collected by cmd.Wait into an Outcome. A child
// terminated by a signal is a crash. Anything that returned normally reports
// its exit code.
func classify(ps *os.ProcessState) Outcome {
	if ps == nil {
		// Wait failed before the process state was collected.
		return Outcome{ExitCode: -1, Crashed: true}
	}

	if status, ok := ps.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return Outcome{
			ExitCode: -1,
			Crashed:  true,
			Signal:   status.Signal().String(),
		}
	}

	return Outcome{ExitCode: ps.ExitCode()}
}

// deniedByElevator reports whether o is pkexec refusing to run the script
// rather than the script's own exit status.
func deniedByElevator(elevator string, o Outcome) bool {
	if o.Crashed || filepath.Base(elevator) != DefaultElevator {
		return false
	}
	return o.ExitCode == pkexecDismissed || o.ExitCode == pkexecUnauthorized
}
