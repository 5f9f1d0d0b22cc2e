package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/elevate"
	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/log"
	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/AvengeMedia/dankimage/internal/settings"
	"github.com/AvengeMedia/dankimage/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	appFs = afero.NewOsFs()
	cfg   *settings.Settings
)

var rootCmd = &cobra.Command{
	Use:               "dankimage",
	Short:             "Raspberry Pi image builder",
	Long:              "dankimage edits the WiFi and script configuration of an image build folder,\nruns its build scripts with elevated privileges and flashes the result to an SD card.",
	PersistentPreRunE: initApp,
	SilenceUsage:      true,
	Run:               runInteractiveMode,
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Show version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run:               runVersion,
}

func initApp(cmd *cobra.Command, args []string) error {
	if err := elevate.RequireLinux(); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return err
		}
	}

	s, err := settings.Load(appFs, path)
	if err != nil {
		return err
	}
	if err := s.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg = s
	log.SetLevel(cfg.LogLevel())
	log.Debug("Settings loaded", "path", path, "scripts_dir", cfg.ScriptsDir(), "elevator", cfg.Elevator())
	return nil
}

func newController(prompt actions.Prompter) (*actions.Controller, error) {
	opts := []runner.Option{runner.WithElevator(cfg.Elevator())}
	ctrl := actions.NewController(
		appFs,
		cfg.ScriptsDir(),
		runner.New(actions.ScriptsRunnerName, opts...),
		runner.New(actions.FlashRunnerName, opts...),
		prompt,
	)
	if err := ctrl.Reload(); err != nil {
		return ctrl, err
	}
	return ctrl, nil
}

func runInteractiveMode(cmd *cobra.Command, args []string) {
	logPath := filepath.Join(filepath.Dir(cfg.Path()), "dankimage.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		log.SetOutput(logFile)
		defer func() {
			log.SetOutput(os.Stderr)
			logFile.Close()
		}()
	}

	if err := elevate.Preflight(cfg.Elevator()); err != nil {
		log.Warnf("Elevation helper check failed: %v", err)
	}

	ctrl, err := newController(nil)
	if err != nil {
		log.Warnf("Could not load configuration: %v", err)
	}

	model := tui.NewModel(Version, ctrl, cfg.DeviceTimeout())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	printASCII()
	fmt.Printf("dankimage %s\n", Version)
}

// exitCodeError carries a script's exit code out to main.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string {
	return e.msg
}

// streamSession prints chunks as they arrive, stderr chunks to stderr, and
// turns the outcome into the command's exit status.
func streamSession(s *runner.Session) error {
	outcome := s.Wait(func(ev runner.Event) {
		if ev.Stream == runner.StreamStderr {
			fmt.Fprintln(os.Stderr, ev.Text)
			return
		}
		fmt.Println(ev.Text)
	})

	msg := actions.TerminalMessage(s.Runner, outcome)
	fmt.Println(msg)
	log.Debug("Run finished", "run", s.ID, "runner", s.Runner, "exit", outcome.ExitCode, "crashed", outcome.Crashed, "duration", outcome.Duration)

	switch {
	case outcome.Crashed:
		return &exitCodeError{code: 1, msg: msg}
	case outcome.ExitCode != 0:
		return &exitCodeError{code: outcome.ExitCode, msg: msg}
	}
	return nil
}

func preflight() error {
	if err := elevate.Preflight(cfg.Elevator()); err != nil {
		return err
	}
	if cfg.ScriptsDir() == "" {
		return errdefs.ErrNoScriptsFolder
	}
	return nil
}
