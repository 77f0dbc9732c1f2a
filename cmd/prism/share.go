package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/remote"
)

func newShareCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Serve the live preference view over SSH",
		Long: `Share starts an SSH server. Every connection gets the same view as
'prism watch', and all connections act as one page: a change made in one
session shows up in the others immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.share")
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = app.Config.Share.Addr
			}
			rt, err := remote.New(remote.Options{
				Addr:        addr,
				HostKeyPath: app.Config.HostKeyPath(),
				IdleTimeout: app.Config.Share.IdleTimeout.Std(),
				Provider:    app.NewProvider(logger),
				Logger:      logger,
			})
			if err != nil {
				return newCommandError("share preferences", addr, err, "Check share.host_key in the configuration file.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sharing on ssh://%s\n", rt.Address())
			logger.Info(ctx, "ssh server listening", "addr", rt.Address())
			if err := rt.Run(ctx); err != nil {
				return newCommandError("share preferences", addr, err, "Pick a free address with --addr.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
