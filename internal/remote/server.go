// Package remote serves the live preference view over SSH. All sessions share
// one page, so a change made in one session reaches the others through the
// page bus instead of waiting for a storage poll.
package remote

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"

	"github.com/alexisbeaulieu97/prism/internal/controller"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/prism/internal/ports"
	"github.com/alexisbeaulieu97/prism/internal/tui"
)

// Options configures the SSH runtime.
type Options struct {
	Addr        string
	HostKeyPath string
	IdleTimeout time.Duration
	Provider    *controller.Provider
	Logger      ports.Logger
}

// Runtime wires the wish server to the preference provider.
type Runtime struct {
	provider *controller.Provider
	logger   ports.Logger
	server   *ssh.Server
	active   atomic.Int64
}

// New builds the SSH server. The host key is generated when missing.
func New(opts Options) (*Runtime, error) {
	if opts.Provider == nil {
		return nil, errors.New("remote: provider is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	r := &Runtime{provider: opts.Provider, logger: logger}

	srv, err := wish.NewServer(
		wish.WithAddress(opts.Addr),
		wish.WithHostKeyPath(opts.HostKeyPath),
		wish.WithIdleTimeout(opts.IdleTimeout),
		wish.WithMiddleware(
			bm.Middleware(r.teaHandler),
			activeterm.Middleware(),
			r.sessionLog(),
		),
	)
	if err != nil {
		return nil, err
	}
	r.server = srv
	return r, nil
}

// Address returns the configured listen address.
func (r *Runtime) Address() string {
	return r.server.Addr
}

// Active reports the number of open sessions.
func (r *Runtime) Active() int {
	return int(r.active.Load())
}

// Run serves until ctx is done, then shuts the server down.
func (r *Runtime) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return r.server.Shutdown(shutdownCtx)
	}
}

// Session is one mounted controller and the view driving it.
type Session struct {
	Controller *controller.Controller
	Model      tui.Model

	once    sync.Once
	release func()
}

// Close unmounts the controller. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(s.release)
}

// Open mounts a new controller on the shared page and builds its view.
func (r *Runtime) Open(ctx context.Context) *Session {
	c := r.provider.NewController(ctx)
	c.Mount(ctx)
	model := tui.NewModel(ctx, c)
	r.active.Add(1)

	return &Session{
		Controller: c,
		Model:      model,
		release: func() {
			model.Close()
			c.Unmount()
			r.active.Add(-1)
		},
	}
}

func (r *Runtime) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	ctx := ports.WithCorrelationID(s.Context(), ports.GenerateCorrelationID())
	session := r.Open(ctx)
	go func() {
		<-s.Context().Done()
		session.Close()
	}()
	return session.Model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (r *Runtime) sessionLog() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			start := time.Now()
			r.logger.Info(s.Context(), "ssh session opened", "user", s.User(), "remote", s.RemoteAddr().String())
			next(s)
			r.logger.Info(s.Context(), "ssh session closed", "user", s.User(), "duration", time.Since(start).String())
		}
	}
}
