package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/tui"
)

// pickRunner asks the user to choose one of options and returns the token.
var pickRunner = func(field preference.Field, current string) (string, error) {
	value := current
	options := make([]huh.Option[string], 0, len(field.Options()))
	for _, token := range field.Options() {
		options = append(options, huh.NewOption(tui.Label(token), token))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(tui.FieldLabel(field)).
				Options(options...).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func newPickCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick [field]",
		Short: "Choose a preference value from a list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.pick")

			field := preference.FieldThemeFamily
			if len(args) == 1 {
				f, err := parseFieldArg(args[0])
				if err != nil {
					return newCommandError("pick preference", args[0], err, fieldSuggestion())
				}
				field = f
			}
			if !interactive() {
				return newCommandError("pick preference", string(field), errNotInteractive, "Use 'prism set "+string(field)+" <value>' instead.")
			}

			c := app.Mount(ctx, logger)
			defer c.Unmount()

			choice, err := pickRunner(field, c.Snapshot().Value(field))
			if err != nil {
				return newCommandError("pick preference", string(field), err, "Run the command again and select a value.")
			}
			if !c.SetField(ctx, field, choice) {
				return newCommandError("pick preference", string(field), fmt.Errorf("%q was rejected", choice), "Choose one of: "+strings.Join(field.Options(), ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", field, choice)
			return nil
		},
	}

	return cmd
}
