package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/tui"
)

var errNotInteractive = errors.New("stdin and stdout must be a terminal")

var watchProgramRunner = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newWatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show live preferences and change them with the keyboard",
		Long: `Watch mounts a controller and keeps it in sync with storage, so values
changed by 'prism set' in another terminal appear within one poll interval.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.watch")
			if !interactive() {
				return newCommandError("watch preferences", "opening terminal view", errNotInteractive, "Use 'prism get' in scripts and pipelines.")
			}

			c := app.Mount(ctx, logger)
			defer c.Unmount()

			model := tui.NewModel(ctx, c)
			defer model.Close()

			logger.Debug(ctx, "watch view started", "controller", c.ID())
			return watchProgramRunner(model)
		},
	}

	return cmd
}

// interactive is swapped out by tests.
var interactive = isInteractiveTerminal
