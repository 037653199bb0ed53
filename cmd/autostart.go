package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hypernate/internal/platform"
)

func newAutostartCmd() *cobra.Command {
	autostart := &cobra.Command{
		Use:   "autostart",
		Short: "Manage starting Hypernate at login",
	}

	autostart.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start Hypernate when you log in",
			RunE: func(cmd *cobra.Command, args []string) error {
				execPath, err := os.Executable()
				if err != nil {
					return fmt.Errorf("resolve executable: %w", err)
				}
				if err := platform.NewService().EnableAutostart(appName, execPath); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "autostart enabled for %s\n", execPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting Hypernate at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := platform.NewService().DisableAutostart(appName); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether Hypernate starts at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := platform.NewService().AutostartEnabled(appName)
				if err != nil {
					return err
				}
				state := "disabled"
				if enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "autostart %s\n", state)
				return nil
			},
		},
	)
	return autostart
}
