package controller

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/ports"
	"github.com/alexisbeaulieu97/prism/internal/store"
	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

// Controller owns one preference store and keeps it in step with storage,
// the page root and the other controllers on the page.
//
// A setter updates the store (which reflects onto the page root), writes
// storage, then broadcasts to the page, all before returning. Changes that
// arrive by event or poll are applied locally and never re-broadcast.
// Store subscribers must not call setters.
type Controller struct {
	id       string
	provider *Provider
	store    *store.Store
	poller   *syncbus.Poller
	logger   ports.Logger

	hydrate sync.Once

	// mu orders local writes against poll passes so a pass never reads
	// storage between a store update and its write.
	mu sync.Mutex

	lifecycle sync.Mutex
	mounted   bool
	listener  ports.Subscription
	unreflect func()
}

// ID identifies the controller as the origin of its broadcasts.
func (c *Controller) ID() string {
	return c.id
}

// Mount hydrates the store from storage on the first call, reflects it onto
// the page root and starts listening and polling. Polling stops when ctx is
// done or on Unmount.
func (c *Controller) Mount(ctx context.Context) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	if c.mounted {
		return
	}

	c.unreflect = c.store.Subscribe(func(s preference.Set) {
		c.provider.reflector.Apply(c.provider.surface, s)
	})

	c.hydrate.Do(func() {
		c.mu.Lock()
		patch := c.provider.adapter.Load(ctx)
		patch.Hydrated = true
		c.store.Set(patch)
		c.mu.Unlock()
		c.logger.Debug(ctx, "hydrated preferences", "stored_fields", len(patch.Fields()))
	})
	c.provider.reflector.Apply(c.provider.surface, c.store.Get())

	listener, err := c.provider.bus.Listen(c.onChange)
	if err != nil {
		c.logger.Warn(ctx, "failed to listen for theme changes", "error", err)
	}
	c.listener = listener
	c.poller.Start(ctx)
	c.mounted = true
}

// Unmount releases the event listener and the poller together.
func (c *Controller) Unmount() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	if !c.mounted {
		return
	}
	if c.listener != nil {
		c.listener.Unsubscribe()
		c.listener = nil
	}
	c.poller.Stop()
	if c.unreflect != nil {
		c.unreflect()
		c.unreflect = nil
	}
	c.mounted = false
}

// IsMounted reports whether the controller is listening and polling.
func (c *Controller) IsMounted() bool {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	return c.mounted
}

// Snapshot and the getters below read the current store value. Before
// hydration they are provisional.
func (c *Controller) Snapshot() preference.Set                   { return c.store.Get() }
func (c *Controller) ThemeFamily() preference.ThemeFamily        { return c.store.Get().ThemeFamily }
func (c *Controller) AccentColor() preference.AccentColor        { return c.store.Get().AccentColor }
func (c *Controller) BaseNeutral() preference.BaseNeutral        { return c.store.Get().BaseNeutral }
func (c *Controller) StylePreset() preference.StylePreset        { return c.store.Get().StylePreset }
func (c *Controller) RadiusOverride() preference.RadiusOverride  { return c.store.Get().RadiusOverride }
func (c *Controller) MenuAccentIntensity() preference.MenuAccent { return c.store.Get().MenuAccent }
func (c *Controller) FontOverrides() preference.FontOverrides    { return c.store.Get().Fonts }
func (c *Controller) IsHydrated() bool                           { return c.store.Get().Hydrated }

// Resolved returns the rendering values for the current set.
func (c *Controller) Resolved() preference.Resolved {
	return c.provider.Resolve(c.store.Get())
}

// Subscribe registers fn for every store change.
func (c *Controller) Subscribe(fn func(preference.Set)) func() {
	return c.store.Subscribe(fn)
}

// SetThemeFamily sets the theme family. It also rewrites the theme cookie.
func (c *Controller) SetThemeFamily(ctx context.Context, v preference.ThemeFamily) bool {
	return c.Update(ctx, preference.Patch{ThemeFamily: &v})
}

// SetAccentColor sets the accent hue.
func (c *Controller) SetAccentColor(ctx context.Context, v preference.AccentColor) bool {
	return c.Update(ctx, preference.Patch{AccentColor: &v})
}

// SetBaseNeutral sets the neutral palette.
func (c *Controller) SetBaseNeutral(ctx context.Context, v preference.BaseNeutral) bool {
	return c.Update(ctx, preference.Patch{BaseNeutral: &v})
}

// SetStylePreset sets the style preset. A set radius override still wins for radius.
func (c *Controller) SetStylePreset(ctx context.Context, v preference.StylePreset) bool {
	return c.Update(ctx, preference.Patch{StylePreset: &v})
}

// SetRadiusOverride sets the radius override; RadiusOverrideNone clears it.
func (c *Controller) SetRadiusOverride(ctx context.Context, v preference.RadiusOverride) bool {
	return c.Update(ctx, preference.Patch{RadiusOverride: &v})
}

// SetMenuAccentIntensity sets how strongly menus carry the accent.
func (c *Controller) SetMenuAccentIntensity(ctx context.Context, v preference.MenuAccent) bool {
	return c.Update(ctx, preference.Patch{MenuAccent: &v})
}

// SetFontOverrides replaces all three font categories at once.
func (c *Controller) SetFontOverrides(ctx context.Context, v preference.FontOverrides) bool {
	return c.Update(ctx, preference.FontsPatch(v))
}

// SetField sets one field from its raw token.
func (c *Controller) SetField(ctx context.Context, f preference.Field, token string) bool {
	var patch preference.Patch
	if !patch.Put(f, token) {
		c.reject(f, token)
		return false
	}
	return c.Update(ctx, patch)
}

// Update applies every field carried by patch as one local change. Tokens
// outside their closed set are rejected and reported; the rest still apply.
// It reports whether every token was accepted.
//
// Accepted changes are broadcast to the page even when the storage write
// fails. Storage that cannot be written leaves the value session-only, and
// controllers on the same page must still agree on it.
func (c *Controller) Update(ctx context.Context, patch preference.Patch) bool {
	accepted := true
	var clean preference.Patch
	var changes []preference.Change
	for _, f := range patch.Fields() {
		token, _ := patch.Get(f)
		if !preference.ValidToken(f, token) {
			c.reject(f, token)
			accepted = false
			continue
		}
		clean.Put(f, token)
		changes = append(changes, preference.Change{Field: f, Value: token})
	}
	if len(changes) == 0 {
		return accepted
	}

	c.mu.Lock()
	c.store.Set(clean)
	for _, change := range changes {
		if !c.provider.adapter.Save(ctx, change.Field, change.Value) {
			c.logger.Debug(ctx, "preference kept for this session only", "field", change.Field)
		}
	}
	c.mu.Unlock()

	for _, change := range changes {
		c.provider.bus.Broadcast(ctx, c.id, change)
	}
	return accepted
}

// Reset clears storage and the cookie and returns the store to defaults. The
// page is told about every field that changed.
func (c *Controller) Reset(ctx context.Context) {
	defaults := preference.PatchFromSet(preference.Defaults())

	c.mu.Lock()
	c.provider.adapter.Clear(ctx)
	before := c.store.Get()
	c.store.Set(defaults)
	c.mu.Unlock()

	for _, change := range preference.Diff(before, defaults) {
		c.provider.bus.Broadcast(ctx, c.id, change)
	}
}

// Poll runs one storage comparison immediately and returns the changes it
// applied.
func (c *Controller) Poll(ctx context.Context) []preference.Change {
	return c.poller.Tick(ctx)
}

func (c *Controller) poll(ctx context.Context) []preference.Change {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A key missing from readable storage was never set or has been cleared,
	// so it compares as the default. Unreadable storage tells us nothing and
	// leaves the session values alone.
	stored, ok := c.provider.adapter.Read(ctx)
	if !ok {
		return nil
	}
	changes := c.poller.Policy().Diff(c.store.Get(), stored.WithDefaults())
	if len(changes) == 0 {
		return nil
	}
	var patch preference.Patch
	for _, change := range changes {
		patch.Put(change.Field, change.Value)
	}
	c.store.Set(patch)
	c.logger.Debug(ctx, "applied preferences changed elsewhere", "changes", len(changes))
	return changes
}

func (c *Controller) onChange(ctx context.Context, origin string, change preference.Change) error {
	if origin == c.id {
		return nil
	}
	if !preference.ValidToken(change.Field, change.Value) {
		c.reject(change.Field, change.Value)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Set(change.Patch())
	return nil
}

func (c *Controller) reject(f preference.Field, token string) {
	c.provider.diag.Emit(preference.Diagnostic{
		Kind:  preference.DiagnosticInvalidValue,
		Field: f,
		Value: token,
		Err: preference.NewError(preference.ErrCodeInvalidValue, "rejecting preference token", nil, map[string]interface{}{
			"field":      string(f),
			"value":      token,
			"controller": c.id,
		}),
	})
}
