package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/config"
	"github.com/alexisbeaulieu97/prism/pkg/diff"
)

func newExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the current preferences as a YAML profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.export")
			c := app.Mount(ctx, logger)
			defer c.Unmount()

			data, err := config.MarshalProfile(config.ProfileFromSet(c.Snapshot()))
			if err != nil {
				return newCommandError("export preferences", "encoding profile", err, "Report this as a bug.")
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			path := args[0]
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return newCommandError("export preferences", path, err, "Check that you can write to the target directory.")
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return newCommandError("export preferences", path, err, "Check that you can write to the target file.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported preferences to %s\n", path)
			logger.Info(ctx, "preferences exported", "path", path)
			return nil
		},
	}

	return cmd
}

func newImportCmd(app *AppContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Apply a YAML profile and show what changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.import")
			path := args[0]

			profile, err := config.LoadProfile(path)
			if err != nil {
				logger.Error(ctx, "profile load failed", "path", path, "error", err)
				return newCommandError("import preferences", path, err, "Fix the profile shown above and try again.")
			}
			patch, err := profile.Patch()
			if err != nil {
				return newCommandError("import preferences", path, err, "Run 'prism get' to see the accepted values.")
			}

			c := app.Mount(ctx, logger)
			defer c.Unmount()

			before, err := config.MarshalProfile(config.ProfileFromSet(c.Snapshot()))
			if err != nil {
				return err
			}
			after, err := config.MarshalProfile(config.ProfileFromSet(c.Snapshot().Merge(patch, nil)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			d := diff.GenerateUnifiedDiff(before, after, "current", path)
			if d == "" {
				fmt.Fprintln(out, "Preferences already match the profile")
				return nil
			}
			fmt.Fprint(out, d)

			if dryRun {
				return nil
			}
			c.Update(ctx, patch)
			fmt.Fprintf(out, "✓ Imported %d preference(s) from %s\n", len(patch.Fields()), path)
			logger.Info(ctx, "profile imported", "path", path, "fields", len(patch.Fields()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the diff without applying it")

	return cmd
}
