// Package persistence maps preference fields onto durable client storage and
// mirrors the theme family into the server-visible cookie.
package persistence

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Storage keys, one per field. Values are the literal enum tokens.
const (
	KeyTheme          = "theme"
	KeyAccentColor    = "accent-color"
	KeyBaseNeutral    = "base-neutral"
	KeyStylePreset    = "style-preset"
	KeyRadiusOverride = "radius-override"
	KeyMenuAccent     = "menu-accent"
	KeyFontSans       = "font-sans"
	KeyFontSerif      = "font-serif"
	KeyFontMono       = "font-mono"
)

const (
	DefaultCookieName   = "active_theme"
	DefaultCookiePath   = "/"
	DefaultCookieMaxAge = 365 * 24 * time.Hour
)

var fieldKeys = map[preference.Field]string{
	preference.FieldThemeFamily:    KeyTheme,
	preference.FieldAccentColor:    KeyAccentColor,
	preference.FieldBaseNeutral:    KeyBaseNeutral,
	preference.FieldStylePreset:    KeyStylePreset,
	preference.FieldRadiusOverride: KeyRadiusOverride,
	preference.FieldMenuAccent:     KeyMenuAccent,
	preference.FieldFontSans:       KeyFontSans,
	preference.FieldFontSerif:      KeyFontSerif,
	preference.FieldFontMono:       KeyFontMono,
}

// Key returns the storage key for f, or "" for an unknown field.
func Key(f preference.Field) string {
	return fieldKeys[f]
}

// Options configures the cookie mirror and the diagnostic channel.
type Options struct {
	CookieName   string
	CookiePath   string
	CookieMaxAge time.Duration
	Diagnostics  preference.DiagnosticFunc
}

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.CookiePath == "" {
		o.CookiePath = DefaultCookiePath
	}
	if o.CookieMaxAge <= 0 {
		o.CookieMaxAge = DefaultCookieMaxAge
	}
	return o
}

// Adapter reads and writes preferences. No method returns an error: storage
// failures degrade to session-only behaviour and are reported to diagnostics.
type Adapter struct {
	kv      ports.KeyValueStore
	cookies ports.CookieStore
	opts    Options
}

// New creates an adapter. Either backend may be nil, which behaves like an
// unavailable backend.
func New(kv ports.KeyValueStore, cookies ports.CookieStore, opts Options) *Adapter {
	return &Adapter{kv: kv, cookies: cookies, opts: opts.withDefaults()}
}

// CookieName returns the name of the theme cookie.
func (a *Adapter) CookieName() string {
	return a.opts.CookieName
}

// Load reads every field. Missing entries are absent from the patch, as are
// entries holding unknown tokens. A storage failure stops the read and
// returns whatever was read before it.
func (a *Adapter) Load(ctx context.Context) preference.Patch {
	patch, _ := a.Read(ctx)
	return patch
}

// Read is Load that also reports whether storage could be read in full. When
// it could, an absent field means nothing is persisted for it and readers
// should fall back to the default.
func (a *Adapter) Read(ctx context.Context) (preference.Patch, bool) {
	var patch preference.Patch
	if a.kv == nil {
		return patch, false
	}
	for _, f := range preference.Fields() {
		raw, ok, err := a.kv.Get(ctx, Key(f))
		if err != nil {
			a.storageUnavailable(f, "", err)
			return patch, false
		}
		if !ok {
			continue
		}
		if !preference.ValidToken(f, raw) {
			a.opts.Diagnostics.Emit(preference.Diagnostic{
				Kind:  preference.DiagnosticInvalidValue,
				Field: f,
				Value: raw,
				Err: preference.NewError(preference.ErrCodeInvalidValue, "discarding stored token", nil, map[string]interface{}{
					"key":   Key(f),
					"value": raw,
				}),
			})
			continue
		}
		patch.Put(f, raw)
	}
	return patch, true
}

// Save writes one field and reports whether the write is durable. Invalid
// tokens are never written. Saving the theme family also mirrors the cookie.
func (a *Adapter) Save(ctx context.Context, f preference.Field, value string) bool {
	if !preference.ValidToken(f, value) {
		a.opts.Diagnostics.Emit(preference.Diagnostic{
			Kind:  preference.DiagnosticInvalidValue,
			Field: f,
			Value: value,
			Err:   preference.NewError(preference.ErrCodeInvalidValue, "refusing to store token", nil, nil),
		})
		return false
	}

	durable := true
	if a.kv == nil {
		a.storageUnavailable(f, value, errors.New("no storage backend"))
		durable = false
	} else if err := a.kv.Set(ctx, Key(f), value); err != nil {
		a.storageUnavailable(f, value, err)
		durable = false
	}

	if f == preference.FieldThemeFamily {
		a.SaveCookieThemeFamily(ctx, preference.ThemeFamily(value))
	}
	return durable
}

// LoadCookieThemeFamily reads the theme family from the cookie. It is the
// initial-render path only; the cookie is not the live source of truth.
func (a *Adapter) LoadCookieThemeFamily(ctx context.Context) (preference.ThemeFamily, bool) {
	if a.cookies == nil {
		return "", false
	}
	c, err := a.cookies.Cookie(a.opts.CookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			a.cookieUnavailable("", err)
		}
		return "", false
	}
	family, ok := preference.ParseThemeFamily(c.Value)
	if !ok {
		a.opts.Diagnostics.Emit(preference.Diagnostic{
			Kind:  preference.DiagnosticInvalidValue,
			Field: preference.FieldThemeFamily,
			Value: c.Value,
			Err:   preference.NewError(preference.ErrCodeInvalidValue, "discarding cookie token", nil, map[string]interface{}{"cookie": c.Name}),
		})
		return "", false
	}
	return family, true
}

// SaveCookieThemeFamily mirrors family into the cookie and reports success.
func (a *Adapter) SaveCookieThemeFamily(ctx context.Context, family preference.ThemeFamily) bool {
	if !family.Valid() {
		return false
	}
	if a.cookies == nil {
		return false
	}
	if err := a.cookies.SetCookie(a.themeCookie(string(family), int(a.opts.CookieMaxAge/time.Second))); err != nil {
		a.cookieUnavailable(string(family), err)
		return false
	}
	return true
}

// ThemeCookie builds the cookie carrying family, as a server would set it.
func (a *Adapter) ThemeCookie(family preference.ThemeFamily) *http.Cookie {
	return a.themeCookie(string(family), int(a.opts.CookieMaxAge/time.Second))
}

func (a *Adapter) themeCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     a.opts.CookieName,
		Value:    value,
		Path:     a.opts.CookiePath,
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

// Clear removes every stored field and expires the cookie.
func (a *Adapter) Clear(ctx context.Context) {
	if a.kv != nil {
		for _, f := range preference.Fields() {
			if err := a.kv.Delete(ctx, Key(f)); err != nil {
				a.storageUnavailable(f, "", err)
				break
			}
		}
	}
	if a.cookies != nil {
		if err := a.cookies.SetCookie(a.themeCookie("", -1)); err != nil {
			a.cookieUnavailable("", err)
		}
	}
}

func (a *Adapter) storageUnavailable(f preference.Field, value string, err error) {
	a.opts.Diagnostics.Emit(preference.Diagnostic{
		Kind:  preference.DiagnosticStorageUnavailable,
		Field: f,
		Value: value,
		Err:   preference.NewError(preference.ErrCodeStorageUnavailable, "storage unavailable", err, map[string]interface{}{"key": Key(f)}),
	})
}

func (a *Adapter) cookieUnavailable(value string, err error) {
	a.opts.Diagnostics.Emit(preference.Diagnostic{
		Kind:  preference.DiagnosticCookieUnavailable,
		Field: preference.FieldThemeFamily,
		Value: value,
		Err:   preference.NewError(preference.ErrCodeCookieUnavailable, "cookie unavailable", err, map[string]interface{}{"cookie": a.opts.CookieName}),
	})
}
