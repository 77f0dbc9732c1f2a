package preference

import (
	"slices"
	"strings"
)

// Field identifies one stored preference dimension. Font overrides are stored
// per category, so the fonts dimension spans three fields.
type Field string

const (
	FieldThemeFamily    Field = "themeFamily"
	FieldAccentColor    Field = "accentColor"
	FieldBaseNeutral    Field = "baseNeutral"
	FieldStylePreset    Field = "stylePreset"
	FieldRadiusOverride Field = "radiusOverride"
	FieldMenuAccent     Field = "menuAccentIntensity"
	FieldFontSans       Field = "fontSans"
	FieldFontSerif      Field = "fontSerif"
	FieldFontMono       Field = "fontMono"
)

var allFields = []Field{
	FieldThemeFamily,
	FieldAccentColor,
	FieldBaseNeutral,
	FieldStylePreset,
	FieldRadiusOverride,
	FieldMenuAccent,
	FieldFontSans,
	FieldFontSerif,
	FieldFontMono,
}

var fieldAliases = map[string]Field{
	"theme":      FieldThemeFamily,
	"accent":     FieldAccentColor,
	"neutral":    FieldBaseNeutral,
	"preset":     FieldStylePreset,
	"style":      FieldStylePreset,
	"radius":     FieldRadiusOverride,
	"menu":       FieldMenuAccent,
	"menuAccent": FieldMenuAccent,
	"font-sans":  FieldFontSans,
	"font-serif": FieldFontSerif,
	"font-mono":  FieldFontMono,
}

// Fields returns every field in canonical order.
func Fields() []Field {
	return append([]Field(nil), allFields...)
}

// ParseField accepts the canonical field name or one of its short aliases.
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, f := range allFields {
		if string(f) == name {
			return f, true
		}
	}
	if f, ok := fieldAliases[name]; ok {
		return f, true
	}
	return "", false
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	return slices.Contains(allFields, f)
}

// Options lists the tokens accepted for the field.
func (f Field) Options() []string {
	switch f {
	case FieldThemeFamily:
		return tokens(themeFamilies)
	case FieldAccentColor:
		return tokens(accentColors)
	case FieldBaseNeutral:
		return tokens(baseNeutrals)
	case FieldStylePreset:
		return tokens(stylePresets)
	case FieldRadiusOverride:
		return tokens(radiusOverrides)
	case FieldMenuAccent:
		return tokens(menuAccents)
	case FieldFontSans:
		return tokens(sansFonts)
	case FieldFontSerif:
		return tokens(serifFonts)
	case FieldFontMono:
		return tokens(monoFonts)
	default:
		return nil
	}
}

// Default returns the documented default token for the field.
func (f Field) Default() string {
	return Defaults().Value(f)
}

// ValidToken reports whether token is a member of the field's closed set.
func ValidToken(f Field, token string) bool {
	return slices.Contains(f.Options(), token)
}
