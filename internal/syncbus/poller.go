package syncbus

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// DefaultPollInterval bounds how stale another page's view can get.
const DefaultPollInterval = 500 * time.Millisecond

// Ticker delivers poll ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// DiffFunc reports which stored values differ from the local set.
type DiffFunc func(local preference.Set, stored preference.Patch) []preference.Change

// PollPolicy controls the poll cadence and comparison. Zero fields take
// their defaults, so tests can swap in a ManualTicker without touching the
// rest.
type PollPolicy struct {
	Interval  time.Duration
	NewTicker func(time.Duration) Ticker
	Diff      DiffFunc
}

// DefaultPollPolicy polls every 500ms with a wall-clock ticker.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{}.withDefaults()
}

func (p PollPolicy) withDefaults() PollPolicy {
	if p.Interval <= 0 {
		p.Interval = DefaultPollInterval
	}
	if p.NewTicker == nil {
		p.NewTicker = NewTimeTicker
	}
	if p.Diff == nil {
		p.Diff = preference.Diff
	}
	return p
}

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// ManualTicker fires only when Tick is called.
type ManualTicker struct {
	ch   chan time.Time
	stop chan struct{}
	once sync.Once
}

// NewManualTicker creates a ticker with no pending ticks.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time), stop: make(chan struct{})}
}

// Factory returns a NewTicker func that always hands out t.
func (t *ManualTicker) Factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return t }
}

// Tick delivers one tick and blocks until the poller has received it. It
// returns false once the ticker is stopped or ctx is done.
func (t *ManualTicker) Tick(ctx context.Context) bool {
	select {
	case <-t.stop:
		return false
	default:
	}
	select {
	case t.ch <- time.Now():
		return true
	case <-t.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

func (t *ManualTicker) C() <-chan time.Time { return t.ch }

func (t *ManualTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Stopped reports whether Stop has been called.
func (t *ManualTicker) Stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// PollFunc runs one poll pass and returns the changes it applied.
type PollFunc func(ctx context.Context) []preference.Change

// Poller runs a PollFunc on every tick until stopped.
type Poller struct {
	policy PollPolicy
	poll   PollFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(policy PollPolicy, poll PollFunc) *Poller {
	return &Poller{policy: policy.withDefaults(), poll: poll}
}

// Policy returns the effective policy.
func (p *Poller) Policy() PollPolicy {
	return p.policy
}

// Start begins polling in the background. Starting a running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	ticker := p.policy.NewTicker(p.policy.Interval)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				p.Tick(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for an in-flight pass to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Tick runs one poll pass synchronously.
func (p *Poller) Tick(ctx context.Context) []preference.Change {
	if p.poll == nil {
		return nil
	}
	return p.poll(ctx)
}
