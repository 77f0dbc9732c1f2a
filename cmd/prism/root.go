package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	stateDir   string
	logLevel   string
	logFormat  string
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "prism",
		Short:         "prism keeps UI theme preferences in sync across pages and processes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize(flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (default ~/.prism/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "Directory holding stored preferences and cookies")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text, json or logfmt")

	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newCSSCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newPathsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
