// Package dom mirrors the style-relevant subset of a preference set onto a
// document root: data attributes for selectors and custom properties for CSS
// variables.
package dom

import (
	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Root attribute names.
const (
	AttrTheme      = "data-theme"
	AttrMenuAccent = "data-menu-accent"
)

// Custom property names.
const (
	PropRadius      = "--radius"
	PropAccent      = "--accent"
	PropBaseNeutral = "--base-neutral"
	PropSpacing     = "--spacing"
	PropTracking    = "--tracking"
	PropShadow      = "--shadow"
	PropFontSans    = "--font-sans"
	PropFontSerif   = "--font-serif"
	PropFontMono    = "--font-mono"
)

// Declaration is one name/value pair written to the root.
type Declaration struct {
	Name  string
	Value string
}

// Attributes returns the root attributes for r in a fixed order.
func Attributes(r preference.Resolved) []Declaration {
	return []Declaration{
		{Name: AttrTheme, Value: string(r.ThemeFamily)},
		{Name: AttrMenuAccent, Value: string(r.MenuAccent)},
	}
}

// Properties returns the custom properties for r in a fixed order.
func Properties(r preference.Resolved) []Declaration {
	return []Declaration{
		{Name: PropRadius, Value: r.RadiusValue},
		{Name: PropAccent, Value: r.AccentHex},
		{Name: PropBaseNeutral, Value: r.NeutralHex},
		{Name: PropSpacing, Value: r.Spacing},
		{Name: PropTracking, Value: r.Tracking},
		{Name: PropShadow, Value: r.ShadowValue},
		{Name: PropFontSans, Value: r.FontSans},
		{Name: PropFontSerif, Value: r.FontSerif},
		{Name: PropFontMono, Value: r.FontMono},
	}
}

// Reflector applies preference sets to a surface.
type Reflector struct {
	diag preference.DiagnosticFunc
}

// NewReflector creates a reflector. Lookup misses during resolution are sent
// to diag.
func NewReflector(diag preference.DiagnosticFunc) *Reflector {
	return &Reflector{diag: diag}
}

// Apply resolves set and writes every attribute and property whose current
// value differs. It returns the number of writes, so applying an unchanged
// set twice performs zero writes the second time.
func (r *Reflector) Apply(surface ports.Surface, set preference.Set) int {
	if surface == nil {
		return 0
	}
	var diag preference.DiagnosticFunc
	if r != nil {
		diag = r.diag
	}
	resolved := preference.Resolve(set, diag)

	writes := 0
	for _, d := range Attributes(resolved) {
		if cur, ok := surface.Attribute(d.Name); ok && cur == d.Value {
			continue
		}
		surface.SetAttribute(d.Name, d.Value)
		writes++
	}
	for _, d := range Properties(resolved) {
		if cur, ok := surface.Property(d.Name); ok && cur == d.Value {
			continue
		}
		surface.SetProperty(d.Name, d.Value)
		writes++
	}
	return writes
}
