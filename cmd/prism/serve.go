package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/logger"
	"github.com/alexisbeaulieu97/prism/internal/server"
)

type serveOptions struct {
	addr  string
	title string
}

func newServeCmd(app *AppContext) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a page rendered from the theme cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "command.serve")
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if opts.addr == "" {
				opts.addr = app.Config.Server.Addr
			}
			addr := opts.addr
			srv, err := buildServer(app, opts)
			if err != nil {
				return newCommandError("start server", addr, err, "Check the server settings in the configuration file.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)
			log.Info(ctx, "server listening", "addr", addr)

			if err := srv.ListenAndServe(ctx); err != nil {
				log.Error(ctx, "server stopped", "error", err)
				return newCommandError("serve", addr, err, "Pick a free address with --addr.")
			}
			log.Info(context.WithoutCancel(ctx), "server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "prism", "Page title")

	return cmd
}

func buildServer(app *AppContext, opts serveOptions) (*server.Server, error) {
	access, err := logger.New(logger.Options{
		Level:         app.Config.Log.Level,
		HumanReadable: app.Config.Log.Format == "text",
		Writer:        app.logOut,
	})
	if err != nil {
		return nil, err
	}

	return server.New(server.Options{
		Addr:        opts.addr,
		Title:       opts.title,
		Persistence: app.Config.PersistenceOptions(),
		AccessLog:   access.WithFields(map[string]any{"component": "server"}),
		Logger:      app.Logger.With("component", "server"),
	})
}
