package main

import (
	"errors"
	"os"

	"github.com/AvengeMedia/dankimage/internal/log"
)

var Version = "dev"

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Settings file (default $XDG_CONFIG_HOME/dankimage/config.yaml)")
	rootCmd.PersistentFlags().String("scripts-dir", "", "Folder holding the build and flash scripts")
	rootCmd.PersistentFlags().String("elevator", "", "Elevation helper used to launch scripts (default pkexec)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	flashCmd.Flags().String("device", "", "Block device to flash, e.g. /dev/sdb")
	flashCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	_ = flashCmd.MarkFlagRequired("device")

	configShowCmd.Flags().Bool("show-secret", false, "Print the WiFi password in clear text")
	configSetCmd.Flags().String("ssid", "", "WiFi network name")
	configSetCmd.Flags().String("secret", "", "WiFi password")
	configSetCmd.Flags().String("script-file", "", "File whose contents become script_config.txt (- for stdin)")

	// Subcommands
	configCmd.AddCommand(configShowCmd, configSetCmd)
	folderCmd.AddCommand(folderShowCmd, folderSetCmd)
	wifiCmd.AddCommand(wifiScanCmd)

	rootCmd.AddCommand(versionCmd, buildCmd, applyConfigCmd, flashCmd, devicesCmd, wifiCmd, configCmd, folderCmd)
}

func main() {
	if os.Geteuid() == 0 {
		log.Warn("Running as root is not needed, scripts are elevated on demand.")
	}

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		log.Fatal(err)
	}
}
