package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/config"
	"github.com/alexisbeaulieu97/prism/internal/controller"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/cookie"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/prism/internal/ports"
	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     ports.Logger
	Storage    ports.KeyValueStore
	Cookies    ports.CookieStore

	// PollPolicy overrides the configured poll policy. Tests use it to drive
	// polling by hand.
	PollPolicy *syncbus.PollPolicy

	buffer *logging.EventBuffer
	logOut io.Writer
}

// newAppContext returns a context whose logger buffers records until the
// configuration has been loaded.
func newAppContext() *AppContext {
	buffer := logging.NewEventBuffer(0)
	return &AppContext{
		Logger: logging.NewBufferedLogger(buffer),
		buffer: buffer,
		logOut: os.Stderr,
	}
}

// initialize loads the configuration, builds the real logger, replays buffered
// records into it and opens the storage and cookie backends.
func (a *AppContext) initialize(flags *rootFlags) error {
	a.ConfigPath = flags.configPath
	if a.ConfigPath == "" {
		a.ConfigPath = config.DefaultPath()
	}
	a.Logger.Debug(context.Background(), "loading configuration", "path", a.ConfigPath)

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return newCommandError("load configuration", a.ConfigPath, err, "Fix the configuration file or pass --config to use another one.")
	}
	if flags.stateDir != "" {
		cfg.StateDir = flags.stateDir
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return newCommandError("load configuration", "validating settings", err, "Check the --log-level and --log-format values.")
	}
	a.Config = cfg

	logger, err := logging.New(logging.Options{
		Writer:    a.logOut,
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Layer:     "cli",
		Component: "prism",
	})
	if err != nil {
		return newCommandError("create logger", cfg.Log.Level, err, "Use one of debug, info, warn or error.")
	}
	if a.buffer != nil {
		a.buffer.Flush(logger)
		a.buffer = nil
	}
	a.Logger = logger

	if a.Storage == nil {
		a.Storage = storage.NewFileStore(cfg.StoragePath())
	}
	if a.Cookies == nil {
		a.Cookies = cookie.NewStore(storage.NewFileStore(cfg.CookieJarPath()))
	}
	return nil
}

// CommandContext returns a context carrying a fresh correlation ID and a
// logger scoped to component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	return ctx, a.Logger.With("component", component)
}

// NewProvider builds the page-level provider over the configured backends.
func (a *AppContext) NewProvider(logger ports.Logger) *controller.Provider {
	policy := a.Config.PollPolicy()
	if a.PollPolicy != nil {
		policy = *a.PollPolicy
	}
	return controller.NewProvider(controller.Options{
		Storage:     a.Storage,
		Cookies:     a.Cookies,
		Logger:      logger,
		PollPolicy:  policy,
		Persistence: a.Config.PersistenceOptions(),
	})
}

// Mount creates a controller and mounts it so it is hydrated from storage.
// The caller must Unmount it.
func (a *AppContext) Mount(ctx context.Context, logger ports.Logger) *controller.Controller {
	c := a.NewProvider(logger).NewController(ctx)
	c.Mount(ctx)
	return c
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
