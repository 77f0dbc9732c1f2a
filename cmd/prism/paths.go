package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show where prism reads configuration and keeps state",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:      %s\n", app.ConfigPath)
			fmt.Fprintf(out, "state dir:   %s\n", app.Config.StateDir)
			fmt.Fprintf(out, "preferences: %s\n", app.Config.StoragePath())
			fmt.Fprintf(out, "cookies:     %s\n", app.Config.CookieJarPath())
			return nil
		},
	}

	return cmd
}
