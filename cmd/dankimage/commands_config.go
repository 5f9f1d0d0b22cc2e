package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/AvengeMedia/dankimage/internal/devices"
	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/scripts"
	"github.com/AvengeMedia/dankimage/internal/wifi"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the image configuration",
	Long:  "Show or edit config.txt and script_config.txt in the scripts folder",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showSecret, _ := cmd.Flags().GetBool("show-secret")

		ctrl, err := newController(actions.AssumeYes)
		if err != nil {
			return err
		}
		if !ctrl.Store.HasConfig() {
			fmt.Printf("No %s in %s\n", scripts.ConfigFile, ctrl.Folder().Dir)
			return nil
		}

		secret := ctrl.State.Secret()
		if !showSecret && secret != "" {
			secret = strings.Repeat("*", 8)
		}
		fmt.Printf("WiFi SSID: %s\n", ctrl.State.SSID())
		fmt.Printf("Password:  %s\n", secret)
		fmt.Printf("\n%s:\n%s", scripts.ScriptConfigFile, ctrl.State.ScriptBody())
		if body := ctrl.State.ScriptBody(); body != "" && !strings.HasSuffix(body, "\n") {
			fmt.Println()
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update and save the configuration",
	Long:  "Update the WiFi credentials and/or the script body, then save both files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController(actions.AssumeYes)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("ssid") && !flags.Changed("secret") && !flags.Changed("script-file") {
			return fmt.Errorf("nothing to set: use --ssid, --secret or --script-file")
		}

		if flags.Changed("ssid") {
			v, _ := flags.GetString("ssid")
			ctrl.State.SetSSID(v)
		}
		if flags.Changed("secret") {
			v, _ := flags.GetString("secret")
			ctrl.State.SetSecret(v)
		}
		if flags.Changed("script-file") {
			path, _ := flags.GetString("script-file")
			body, err := readScriptFile(appFs, os.Stdin, path)
			if err != nil {
				return err
			}
			ctrl.State.SetScriptBody(body)
		}

		if !ctrl.State.IsDirty() {
			fmt.Println("Configuration unchanged.")
			return nil
		}
		if err := ctrl.Save(); err != nil {
			return err
		}
		fmt.Printf("Configuration saved to %s\n", ctrl.Folder().Dir)
		return nil
	},
}

func readScriptFile(fs afero.Fs, stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read script body from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Show or change the scripts folder",
}

var folderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the scripts folder and the state of its scripts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		folder := scripts.Folder{Dir: cfg.ScriptsDir()}
		checker := scripts.NewChecker(appFs)

		fmt.Printf("Scripts folder: %s\n\n", folder.Dir)
		for _, name := range []string{scripts.ChangeConfigScript, scripts.BuildImageScript, scripts.WriteSDScript} {
			fmt.Printf("  %-18s %s\n", name, scriptStatus(checker, folder.Path(name)))
		}
		for _, name := range []string{scripts.ConfigFile, scripts.ScriptConfigFile} {
			status := "missing"
			if checker.Exists(folder.Path(name)) {
				status = "present"
			}
			fmt.Printf("  %-18s %s\n", name, status)
		}
	},
}

func scriptStatus(checker *scripts.Checker, path string) string {
	switch {
	case !checker.Exists(path):
		return "missing"
	case !checker.IsExecutable(path):
		return "not executable"
	default:
		return "ok"
	}
}

var folderSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Target a new scripts folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
		ok, err := afero.DirExists(appFs, dir)
		if err != nil || !ok {
			return errdefs.NewCustomError(errdefs.ErrTypeNoScriptsFolder, fmt.Sprintf("not a directory: %s", dir))
		}

		cfg.SetScriptsDir(dir)
		if err := cfg.Save(); err != nil {
			return err
		}

		ctrl, err := newController(actions.AssumeYes)
		if err != nil {
			return err
		}
		if err := ctrl.SelectFolder(dir); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		fmt.Println(actions.MsgFolderTargeted)
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List block devices that can be flashed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DeviceTimeout())
		defer cancel()

		devs, err := devices.List(ctx)
		if err != nil {
			return err
		}
		if len(devs) == 0 {
			fmt.Println(devices.NoDevicesPlaceholder)
			return nil
		}
		for _, d := range devs {
			fmt.Println(d.String())
		}
		return nil
	},
}

var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "WiFi helpers",
}

var wifiScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby WiFi networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		networks, err := wifi.Scan()
		if err != nil {
			return err
		}
		if len(networks) == 0 {
			fmt.Println("No WiFi networks found.")
			return nil
		}

		fmt.Printf("%-32s %6s %7s  %s\n", "SSID", "SIGNAL", "CHANNEL", "SECURITY")
		for _, n := range networks {
			security := "open"
			if n.Secured {
				security = "secured"
			}
			fmt.Printf("%-32s %5d%% %7d  %s\n", n.SSID, n.Signal, n.Channel, security)
		}
		return nil
	},
}
