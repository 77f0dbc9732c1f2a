package preference

// FontOverrides holds the three independent font category selections.
type FontOverrides struct {
	Sans  SansFont
	Serif SerifFont
	Mono  MonoFont
}

// DefaultFonts inherits every category from the theme.
func DefaultFonts() FontOverrides {
	return FontOverrides{Sans: SansDefault, Serif: SerifDefault, Mono: MonoDefault}
}

// Set is the aggregate preference state. Every enum field always holds a
// member of its closed set once it has passed through Normalize or Merge.
type Set struct {
	ThemeFamily    ThemeFamily
	AccentColor    AccentColor
	BaseNeutral    BaseNeutral
	StylePreset    StylePreset
	RadiusOverride RadiusOverride
	MenuAccent     MenuAccent
	Fonts          FontOverrides

	// Hydrated is true once client storage has been merged over the
	// server/default state. It never reverts.
	Hydrated bool
}

// Defaults returns the documented default preference set.
func Defaults() Set {
	return Set{
		ThemeFamily:    ThemeVercel,
		AccentColor:    AccentNeutral,
		BaseNeutral:    NeutralNeutral,
		StylePreset:    PresetVega,
		RadiusOverride: RadiusOverrideNone,
		MenuAccent:     MenuAccentSubtle,
		Fonts:          DefaultFonts(),
	}
}

// Value returns the stored token for field.
func (s Set) Value(f Field) string {
	switch f {
	case FieldThemeFamily:
		return string(s.ThemeFamily)
	case FieldAccentColor:
		return string(s.AccentColor)
	case FieldBaseNeutral:
		return string(s.BaseNeutral)
	case FieldStylePreset:
		return string(s.StylePreset)
	case FieldRadiusOverride:
		return string(s.RadiusOverride)
	case FieldMenuAccent:
		return string(s.MenuAccent)
	case FieldFontSans:
		return string(s.Fonts.Sans)
	case FieldFontSerif:
		return string(s.Fonts.Serif)
	case FieldFontMono:
		return string(s.Fonts.Mono)
	default:
		return ""
	}
}

// Normalize replaces every out-of-set value with its default.
func (s Set) Normalize(diag DiagnosticFunc) Set {
	for _, f := range allFields {
		s = s.with(f, s.Value(f), diag)
	}
	return s
}

// Merge applies patch over s. Unknown tokens are coerced to the field default
// and reported as invalid_value diagnostics.
func (s Set) Merge(p Patch, diag DiagnosticFunc) Set {
	next := s
	for _, f := range p.Fields() {
		token, _ := p.Get(f)
		next = next.with(f, token, diag)
	}
	if p.Hydrated {
		next.Hydrated = true
	}
	return next
}

func (s Set) with(f Field, token string, diag DiagnosticFunc) Set {
	if !ValidToken(f, token) {
		if f.Valid() {
			diag.invalid(f, token)
		}
		token = defaultToken(f)
	}
	switch f {
	case FieldThemeFamily:
		s.ThemeFamily = ThemeFamily(token)
	case FieldAccentColor:
		s.AccentColor = AccentColor(token)
	case FieldBaseNeutral:
		s.BaseNeutral = BaseNeutral(token)
	case FieldStylePreset:
		s.StylePreset = StylePreset(token)
	case FieldRadiusOverride:
		s.RadiusOverride = RadiusOverride(token)
	case FieldMenuAccent:
		s.MenuAccent = MenuAccent(token)
	case FieldFontSans:
		s.Fonts.Sans = SansFont(token)
	case FieldFontSerif:
		s.Fonts.Serif = SerifFont(token)
	case FieldFontMono:
		s.Fonts.Mono = MonoFont(token)
	}
	return s
}

func defaultToken(f Field) string {
	return Defaults().Value(f)
}

// Patch is a partial preference set. A nil pointer leaves the field untouched.
type Patch struct {
	ThemeFamily    *ThemeFamily
	AccentColor    *AccentColor
	BaseNeutral    *BaseNeutral
	StylePreset    *StylePreset
	RadiusOverride *RadiusOverride
	MenuAccent     *MenuAccent
	FontSans       *SansFont
	FontSerif      *SerifFont
	FontMono       *MonoFont

	// Hydrated marks the set hydrated; false is a no-op.
	Hydrated bool
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// PatchFromSet returns a patch carrying every field of s.
func PatchFromSet(s Set) Patch {
	var p Patch
	for _, f := range allFields {
		p.Put(f, s.Value(f))
	}
	return p
}

// FontsPatch returns a patch replacing all three font categories.
func FontsPatch(fonts FontOverrides) Patch {
	return Patch{
		FontSans:  Ptr(fonts.Sans),
		FontSerif: Ptr(fonts.Serif),
		FontMono:  Ptr(fonts.Mono),
	}
}

// Put stores the raw token for field without validating it. It returns false
// for an unknown field.
func (p *Patch) Put(f Field, token string) bool {
	switch f {
	case FieldThemeFamily:
		p.ThemeFamily = Ptr(ThemeFamily(token))
	case FieldAccentColor:
		p.AccentColor = Ptr(AccentColor(token))
	case FieldBaseNeutral:
		p.BaseNeutral = Ptr(BaseNeutral(token))
	case FieldStylePreset:
		p.StylePreset = Ptr(StylePreset(token))
	case FieldRadiusOverride:
		p.RadiusOverride = Ptr(RadiusOverride(token))
	case FieldMenuAccent:
		p.MenuAccent = Ptr(MenuAccent(token))
	case FieldFontSans:
		p.FontSans = Ptr(SansFont(token))
	case FieldFontSerif:
		p.FontSerif = Ptr(SerifFont(token))
	case FieldFontMono:
		p.FontMono = Ptr(MonoFont(token))
	default:
		return false
	}
	return true
}

// Get returns the token carried for field, if any.
func (p Patch) Get(f Field) (string, bool) {
	switch f {
	case FieldThemeFamily:
		return deref(p.ThemeFamily)
	case FieldAccentColor:
		return deref(p.AccentColor)
	case FieldBaseNeutral:
		return deref(p.BaseNeutral)
	case FieldStylePreset:
		return deref(p.StylePreset)
	case FieldRadiusOverride:
		return deref(p.RadiusOverride)
	case FieldMenuAccent:
		return deref(p.MenuAccent)
	case FieldFontSans:
		return deref(p.FontSans)
	case FieldFontSerif:
		return deref(p.FontSerif)
	case FieldFontMono:
		return deref(p.FontMono)
	default:
		return "", false
	}
}

func deref[T ~string](v *T) (string, bool) {
	if v == nil {
		return "", false
	}
	return string(*v), true
}

// Fields lists the fields the patch carries, in canonical order.
func (p Patch) Fields() []Field {
	out := make([]Field, 0, len(allFields))
	for _, f := range allFields {
		if _, ok := p.Get(f); ok {
			out = append(out, f)
		}
	}
	return out
}

// WithDefaults returns p with every absent field set to its default token.
func (p Patch) WithDefaults() Patch {
	out := p
	for _, f := range allFields {
		if _, ok := out.Get(f); !ok {
			out.Put(f, defaultToken(f))
		}
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Hydrated && len(p.Fields()) == 0
}

// Change is a single field delta, as carried by a theme-changed event.
type Change struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

// Patch converts the change into a single-field patch.
func (c Change) Patch() Patch {
	var p Patch
	p.Put(c.Field, c.Value)
	return p
}

// Diff compares the fields present in stored against local and returns the
// ones that differ. Fields absent from stored are never reported.
func Diff(local Set, stored Patch) []Change {
	var changes []Change
	for _, f := range stored.Fields() {
		token, _ := stored.Get(f)
		if local.Value(f) != token {
			changes = append(changes, Change{Field: f, Value: token})
		}
	}
	return changes
}
