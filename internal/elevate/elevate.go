package elevate

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/log"
	"github.com/godbus/dbus/v5"
)

const polkitBusName = "org.freedesktop.PolicyKit1"

var getOsFunc = getGoos

var lookPath = exec.LookPath

var polkitCheck = polkitHasOwner

func getGoos() string {
	return runtime.GOOS
}

// RequireLinux fails on anything but linux: the scripts, lsblk and pkexec
// only exist there.
func RequireLinux() error {
	if getOsFunc() != "linux" {
		return errdefs.NewCustomError(errdefs.ErrTypeNotLinux, fmt.Sprintf("Only linux is supported, but I found %s", getOsFunc()))
	}
	return nil
}

// Resolve returns the absolute path of the elevation helper.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", errdefs.NewCustomError(errdefs.ErrTypeSpawnFailed, "no elevation helper configured")
	}
	path, err := lookPath(name)
	if err != nil {
		return "", errdefs.WrapCustomError(errdefs.ErrTypeSpawnFailed, fmt.Sprintf("elevation helper %s not found", name), err)
	}
	return path, nil
}

// Preflight checks that the helper exists and, for pkexec, that polkit is
// reachable on the system bus. Missing polkit is only a warning since the
// helper reports its own failure at launch.
func Preflight(name string) error {
	if _, err := Resolve(name); err != nil {
		return err
	}

	if name != "pkexec" {
		return nil
	}

	ok, err := polkitCheck()
	switch {
	case err != nil:
		log.Warnf("Could not query the system bus for %s: %v", polkitBusName, err)
	case !ok:
		log.Warnf("%s is not running, pkexec will not be able to authenticate", polkitBusName)
	default:
		log.Debugf("%s is available", polkitBusName)
	}
	return nil
}

func polkitHasOwner() (bool, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return false, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	var hasOwner bool
	if err := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, polkitBusName).Store(&hasOwner); err != nil {
		return false, fmt.Errorf("NameHasOwner: %w", err)
	}
	return hasOwner, nil
}
