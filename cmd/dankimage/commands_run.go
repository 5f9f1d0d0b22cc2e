package main

import (
	"fmt"
	"os"

	"github.com/AvengeMedia/dankimage/internal/actions"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the image",
	Long:  "Run build_image.sh from the scripts folder against the saved config.txt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := preflight(); err != nil {
			return err
		}
		ctrl, err := newController(newStdinPrompter(os.Stdin, os.Stdout))
		if err != nil {
			return err
		}

		session, err := ctrl.Build()
		if err != nil {
			return err
		}
		fmt.Println(actions.MsgStartingBuild)
		return streamSession(session)
	},
}

var applyConfigCmd = &cobra.Command{
	Use:   "apply-config",
	Short: "Apply the saved configuration",
	Long:  "Run change_config.sh from the scripts folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := preflight(); err != nil {
			return err
		}
		ctrl, err := newController(newStdinPrompter(os.Stdin, os.Stdout))
		if err != nil {
			return err
		}

		session, err := ctrl.ApplyConfig()
		if err != nil {
			if actions.IsCancelled(err) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
		fmt.Println(actions.MsgRunningConfig)
		return streamSession(session)
	},
}

var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Write the image to an SD card",
	Long:  "Run write_sd.sh --device <dev> --yes after confirmation. This erases the target device.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, _ := cmd.Flags().GetString("device")
		assumeYes, _ := cmd.Flags().GetBool("yes")

		if err := preflight(); err != nil {
			return err
		}

		var prompt actions.Prompter = newStdinPrompter(os.Stdin, os.Stdout)
		if assumeYes {
			prompt = actions.AssumeYes
		}
		ctrl, err := newController(prompt)
		if err != nil {
			return err
		}

		session, err := ctrl.Flash(device)
		if err != nil {
			if actions.IsCancelled(err) {
				fmt.Println(actions.MsgFlashCancelled)
				return nil
			}
			return err
		}
		return streamSession(session)
	},
}
