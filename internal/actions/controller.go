package actions

import (
	"errors"
	"fmt"

	"github.com/AvengeMedia/dankimage/internal/configstate"
	"github.com/AvengeMedia/dankimage/internal/devices"
	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/log"
	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/AvengeMedia/dankimage/internal/scripts"
	"github.com/spf13/afero"
)

const (
	ScriptsRunnerName = "scripts"
	FlashRunnerName   = "flash"
)

const (
	MsgFolderTargeted  = "New scripts folder targeted!"
	MsgRunningConfig   = "Running change_config.sh..."
	MsgStartingBuild   = "Starting build..."
	MsgFlashBusy       = "Flashing is already in progress."
	MsgFlashCancelled  = "Flashing cancelled by user."
	MsgAuthDenied      = "Authorization was denied; the script did not run."
	unsavedChangesText = "You have unsaved changes. Do you want to save them?"
)

// Controller sequences the config state and the two runners: it asks before
// discarding unsaved edits or erasing a device, checks the scripts it is
// about to launch and hands the resulting session back to the caller.
type Controller struct {
	Fs           afero.Fs
	Checker      *scripts.Checker
	State        *configstate.State
	Store        *configstate.FolderStore
	ScriptRunner *runner.Runner
	FlashRunner  *runner.Runner
	Prompt       Prompter
}

func NewController(fs afero.Fs, dir string, scriptsRunner, flashRunner *runner.Runner, prompt Prompter) *Controller {
	return &Controller{
		Fs:           fs,
		Checker:      scripts.NewChecker(fs),
		State:        configstate.New(),
		Store:        configstate.NewFolderStore(fs, dir),
		ScriptRunner: scriptsRunner,
		FlashRunner:  flashRunner,
		Prompt:       prompt,
	}
}

func (c *Controller) Folder() scripts.Folder {
	return c.Store.Folder
}

// Save persists both artifacts into the current folder.
func (c *Controller) Save() error {
	if !c.Folder().IsSet() {
		return errdefs.ErrNoScriptsFolder
	}
	if err := c.State.Save(c.Store); err != nil {
		return err
	}
	log.Info("Configuration saved", "dir", c.Folder().Dir)
	return nil
}

// SelectFolder retargets the controller and loads the folder's config when
// one is present. A load failure is returned but the folder stays selected.
func (c *Controller) SelectFolder(dir string) error {
	c.Store = configstate.NewFolderStore(c.Fs, dir)
	log.Info(MsgFolderTargeted, "dir", dir)
	return c.Reload()
}

// Reload loads the current folder's artifacts if config.txt is present.
func (c *Controller) Reload() error {
	if !c.Store.HasConfig() {
		return nil
	}
	return c.State.Load(c.Store)
}

// ApplyConfig runs change_config.sh. Unsaved edits are offered for saving
// first; any answer other than Yes or No aborts with ErrCancelled.
func (c *Controller) ApplyConfig() (*runner.Session, error) {
	if !c.Folder().IsSet() {
		return nil, errdefs.ErrNoScriptsFolder
	}
	if c.ScriptRunner.IsBusy() {
		return nil, errdefs.ErrAlreadyRunning
	}

	if c.State.IsDirty() {
		switch c.Prompt.Confirm(unsavedChangesText, true) {
		case Yes:
			if err := c.Save(); err != nil {
				return nil, fmt.Errorf("save before apply: %w", err)
			}
		case No:
		default:
			return nil, errdefs.ErrCancelled
		}
	}

	script := c.Folder().ChangeConfigPath()
	if err := c.Checker.Require(script); err != nil {
		return nil, err
	}

	return c.ScriptRunner.Start(script, nil, c.Folder().Dir)
}

// Build runs build_image.sh against the saved config.txt.
func (c *Controller) Build() (*runner.Session, error) {
	if !c.Folder().IsSet() {
		return nil, errdefs.ErrNoScriptsFolder
	}

	configPath := c.Folder().ConfigPath()
	if !c.Checker.Exists(configPath) {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeSourceUnavailable, fmt.Sprintf("config.txt not found in scripts folder: %s", configPath))
	}

	script := c.Folder().BuildImagePath()
	if err := c.Checker.Require(script); err != nil {
		return nil, err
	}

	return c.ScriptRunner.Start(script, nil, c.Folder().Dir)
}

// Flash writes the built image to device after an explicit confirmation.
func (c *Controller) Flash(device string) (*runner.Session, error) {
	if c.FlashRunner.IsBusy() {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeAlreadyRunning, MsgFlashBusy)
	}
	if !c.Folder().IsSet() {
		return nil, errdefs.ErrNoScriptsFolder
	}

	device = devices.DeviceFromLine(device)
	if device == "" {
		return nil, errdefs.ErrInvalidDevice
	}

	if c.Prompt.Confirm(FlashConfirmMessage(device), false) != Yes {
		log.Info(MsgFlashCancelled, "device", device)
		return nil, errdefs.ErrCancelled
	}

	script := c.Folder().WriteSDPath()
	if err := c.Checker.Require(script); err != nil {
		return nil, err
	}

	return c.FlashRunner.Start(script, []string{"--device", device, "--yes"}, c.Folder().Dir)
}

func FlashConfirmMessage(device string) string {
	return fmt.Sprintf("Are you sure you want to flash %s?\nThis will ERASE ALL DATA on the device!", device)
}

// TerminalMessage renders the line shown when a run ends.
func TerminalMessage(runnerName string, o runner.Outcome) string {
	if o.Denied {
		return MsgAuthDenied
	}
	if runnerName == FlashRunnerName {
		if o.Crashed {
			return "Flashing process crashed."
		}
		return "Flashing process finished."
	}
	if o.Crashed {
		return "Script crashed."
	}
	return fmt.Sprintf("Script finished with code %d.", o.ExitCode)
}

// IsCancelled reports whether err came from the operator declining a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, errdefs.ErrCancelled)
}
