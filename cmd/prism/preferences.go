package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

func newGetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [field]",
		Short: "Print stored preferences",
		Long: `Print every preference after hydration from storage, or the value of a
single field. Fields accept their canonical name or a short alias such as
"theme", "accent" or "font-mono".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.get")
			c := app.Mount(ctx, logger)
			defer c.Unmount()

			set := c.Snapshot()
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := parseFieldArg(args[0])
				if err != nil {
					return newCommandError("get preference", args[0], err, fieldSuggestion())
				}
				fmt.Fprintln(out, set.Value(f))
				return nil
			}
			for _, f := range preference.Fields() {
				fmt.Fprintf(out, "%-20s %s\n", f, set.Value(f))
			}
			return nil
		},
	}

	return cmd
}

func newSetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <field> <value> [<field> <value>...]",
		Short: "Change one or more preferences",
		Long: `Set validates every pair first and then applies them as one change. Other
running prism processes pick the change up on their next poll.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected field/value pairs, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.set")

			patch, err := parseAssignments(args)
			if err != nil {
				logger.Error(ctx, "set command failed", "error", err)
				return err
			}

			c := app.Mount(ctx, logger)
			defer c.Unmount()
			c.Update(ctx, patch)

			set := c.Snapshot()
			for _, f := range patch.Fields() {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", f, set.Value(f))
			}
			logger.Info(ctx, "preferences updated", "fields", len(patch.Fields()))
			return nil
		},
	}

	return cmd
}

func newResetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear stored preferences and the theme cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.reset")
			c := app.Mount(ctx, logger)
			defer c.Unmount()

			c.Reset(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences reset to defaults")
			logger.Info(ctx, "preferences reset")
			return nil
		},
	}

	return cmd
}

// parseAssignments turns field/value pairs into a patch, rejecting the whole
// batch on the first unknown field or token.
func parseAssignments(args []string) (preference.Patch, error) {
	var patch preference.Patch
	for i := 0; i+1 < len(args); i += 2 {
		f, err := parseFieldArg(args[i])
		if err != nil {
			return preference.Patch{}, newCommandError("set preference", args[i], err, fieldSuggestion())
		}
		value := strings.TrimSpace(args[i+1])
		if !preference.ValidToken(f, value) {
			return preference.Patch{}, newCommandError(
				"set preference",
				fmt.Sprintf("%s=%s", f, value),
				fmt.Errorf("%q is not a valid %s", value, f),
				"Choose one of: "+strings.Join(f.Options(), ", "),
			)
		}
		patch.Put(f, value)
	}
	return patch, nil
}

func parseFieldArg(name string) (preference.Field, error) {
	f, ok := preference.ParseField(name)
	if !ok {
		return "", errors.New("unknown preference field")
	}
	return f, nil
}

func fieldSuggestion() string {
	names := make([]string, 0, len(preference.Fields()))
	for _, f := range preference.Fields() {
		names = append(names, string(f))
	}
	return "Use one of: " + strings.Join(names, ", ")
}
