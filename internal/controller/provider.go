// Package controller exposes the preference API consumed by a UI: one
// Provider per page and any number of Controllers mounted on it.
package controller

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexisbeaulieu97/prism/internal/dom"
	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/prism/internal/persistence"
	"github.com/alexisbeaulieu97/prism/internal/ports"
	"github.com/alexisbeaulieu97/prism/internal/store"
	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

// Options wires a Provider. Every field is optional.
type Options struct {
	// Storage is the durable tier shared with other pages. Nil means
	// preferences last for the session only.
	Storage ports.KeyValueStore
	// Cookies carries the theme family to the server.
	Cookies ports.CookieStore
	// Surface is the page root. Defaults to a fresh dom.Element.
	Surface ports.Surface
	// Publisher is the page event channel. Defaults to a PagePublisher.
	Publisher   ports.EventPublisher
	Logger      ports.Logger
	PollPolicy  syncbus.PollPolicy
	Persistence persistence.Options
	// Diagnostics receives every recovered failure. Defaults to the logger.
	Diagnostics preference.DiagnosticFunc
}

// Provider is the page-level context shared by the controllers it creates.
type Provider struct {
	logger    ports.Logger
	adapter   *persistence.Adapter
	bus       *syncbus.Bus
	publisher ports.EventPublisher
	surface   ports.Surface
	reflector *dom.Reflector
	policy    syncbus.PollPolicy
	diag      preference.DiagnosticFunc
	seq       atomic.Uint64
}

// NewProvider builds a page context from opts.
func NewProvider(opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	logger = logger.With("component", "controller")

	diag := opts.Diagnostics
	if diag == nil {
		diag = LogDiagnostics(logger)
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NewPagePublisher(logger)
	}

	surface := opts.Surface
	if surface == nil {
		surface = dom.NewElement()
	}

	persistOpts := opts.Persistence
	persistOpts.Diagnostics = diag

	return &Provider{
		logger:    logger,
		adapter:   persistence.New(opts.Storage, opts.Cookies, persistOpts),
		bus:       syncbus.NewBus(publisher, logger),
		publisher: publisher,
		surface:   surface,
		reflector: dom.NewReflector(diag),
		policy:    opts.PollPolicy,
		diag:      diag,
	}
}

// LogDiagnostics routes diagnostics to logger: lookup misses at debug level,
// everything else at warn.
func LogDiagnostics(logger ports.Logger) preference.DiagnosticFunc {
	return func(d preference.Diagnostic) {
		if logger == nil {
			return
		}
		fields := []interface{}{"kind", string(d.Kind), "field", string(d.Field), "value", d.Value}
		if d.Err != nil {
			fields = append(fields, "error", d.Err)
		}
		if d.Kind == preference.DiagnosticLookupMiss {
			logger.Debug(context.Background(), "preference lookup fell back to default", fields...)
			return
		}
		logger.Warn(context.Background(), "preference failure recovered", fields...)
	}
}

// Surface returns the page root.
func (p *Provider) Surface() ports.Surface {
	return p.surface
}

// Persistence returns the shared persistence adapter.
func (p *Provider) Persistence() *persistence.Adapter {
	return p.adapter
}

// Publisher returns the page event channel.
func (p *Provider) Publisher() ports.EventPublisher {
	return p.publisher
}

// Resolve resolves s, reporting lookup misses to the provider diagnostics.
func (p *Provider) Resolve(s preference.Set) preference.Resolved {
	return preference.Resolve(s, p.diag)
}

// InitialSet is the pre-hydration state: defaults with the cookie theme
// family overlaid.
func (p *Provider) InitialSet(ctx context.Context) preference.Set {
	initial := preference.Defaults()
	if family, ok := p.adapter.LoadCookieThemeFamily(ctx); ok {
		initial.ThemeFamily = family
	}
	return initial
}

// NewController creates an unmounted controller with its own store.
func (p *Provider) NewController(ctx context.Context) *Controller {
	id := fmt.Sprintf("controller-%d", p.seq.Add(1))
	c := &Controller{
		id:       id,
		provider: p,
		store:    store.New(p.InitialSet(ctx), store.WithDiagnostics(p.diag)),
		logger:   p.logger.With("controller", id),
	}
	c.poller = syncbus.NewPoller(p.policy, c.poll)
	return c
}
