package preference

import (
	"slices"
	"strings"
)

// ThemeFamily selects the gross visual system. It is the only dimension
// mirrored into the server-visible cookie.
type ThemeFamily string

const (
	ThemeVercel       ThemeFamily = "vercel"
	ThemeHighContrast ThemeFamily = "high-contrast"
)

// AccentColor names one of the fixed accent hues.
type AccentColor string

const (
	AccentRed     AccentColor = "red"
	AccentOrange  AccentColor = "orange"
	AccentAmber   AccentColor = "amber"
	AccentYellow  AccentColor = "yellow"
	AccentLime    AccentColor = "lime"
	AccentGreen   AccentColor = "green"
	AccentEmerald AccentColor = "emerald"
	AccentTeal    AccentColor = "teal"
	AccentCyan    AccentColor = "cyan"
	AccentSky     AccentColor = "sky"
	AccentBlue    AccentColor = "blue"
	AccentIndigo  AccentColor = "indigo"
	AccentViolet  AccentColor = "violet"
	AccentPurple  AccentColor = "purple"
	AccentFuchsia AccentColor = "fuchsia"
	AccentPink    AccentColor = "pink"
	AccentRose    AccentColor = "rose"
	AccentNeutral AccentColor = "neutral"
)

// BaseNeutral names the neutral palette used for surfaces and borders.
type BaseNeutral string

const (
	NeutralNeutral BaseNeutral = "neutral"
	NeutralStone   BaseNeutral = "stone"
	NeutralZinc    BaseNeutral = "zinc"
	NeutralGray    BaseNeutral = "gray"
)

// StylePreset names an immutable bundle of radius, spacing, tracking and
// shadow intensity.
type StylePreset string

const (
	PresetVega StylePreset = "vega"
	PresetNova StylePreset = "nova"
	PresetMaia StylePreset = "maia"
	PresetLyra StylePreset = "lyra"
	PresetMira StylePreset = "mira"
)

// RadiusOverride replaces the preset radius when it is anything but
// RadiusOverrideNone.
type RadiusOverride string

const (
	RadiusOverrideNone RadiusOverride = "none"
	RadiusOverrideSm   RadiusOverride = "sm"
	RadiusOverrideMd   RadiusOverride = "md"
	RadiusOverrideLg   RadiusOverride = "lg"
)

// RadiusScale is a resolved corner radius.
type RadiusScale string

const (
	RadiusNone RadiusScale = "none"
	RadiusSm   RadiusScale = "sm"
	RadiusMd   RadiusScale = "md"
	RadiusLg   RadiusScale = "lg"
)

// MenuAccent controls how strongly menus carry the accent colour.
type MenuAccent string

const (
	MenuAccentSubtle MenuAccent = "subtle"
	MenuAccentBold   MenuAccent = "bold"
)

// ShadowIntensity is part of a preset bundle.
type ShadowIntensity string

const (
	ShadowNone   ShadowIntensity = "none"
	ShadowSoft   ShadowIntensity = "soft"
	ShadowMedium ShadowIntensity = "medium"
	ShadowStrong ShadowIntensity = "strong"
)

// FontDefault means "inherit the font from the theme" in every category.
const FontDefault = "default"

// SansFont is a sans-serif override.
type SansFont string

const (
	SansDefault SansFont = FontDefault
	SansInter   SansFont = "inter"
	SansGeist   SansFont = "geist"
	SansFigtree SansFont = "figtree"
	SansDMSans  SansFont = "dm-sans"
)

// SerifFont is a serif override.
type SerifFont string

const (
	SerifDefault      SerifFont = FontDefault
	SerifLora         SerifFont = "lora"
	SerifMerriweather SerifFont = "merriweather"
	SerifPlayfair     SerifFont = "playfair-display"
	SerifNoto         SerifFont = "noto-serif"
)

// MonoFont is a monospace override.
type MonoFont string

const (
	MonoDefault       MonoFont = FontDefault
	MonoGeistMono     MonoFont = "geist-mono"
	MonoJetBrainsMono MonoFont = "jetbrains-mono"
	MonoFiraCode      MonoFont = "fira-code"
	MonoIBMPlexMono   MonoFont = "ibm-plex-mono"
)

var (
	themeFamilies = []ThemeFamily{ThemeVercel, ThemeHighContrast}

	accentColors = []AccentColor{
		AccentRed, AccentOrange, AccentAmber, AccentYellow, AccentLime, AccentGreen,
		AccentEmerald, AccentTeal, AccentCyan, AccentSky, AccentBlue, AccentIndigo,
		AccentViolet, AccentPurple, AccentFuchsia, AccentPink, AccentRose, AccentNeutral,
	}

	baseNeutrals    = []BaseNeutral{NeutralNeutral, NeutralStone, NeutralZinc, NeutralGray}
	stylePresets    = []StylePreset{PresetVega, PresetNova, PresetMaia, PresetLyra, PresetMira}
	radiusOverrides = []RadiusOverride{RadiusOverrideNone, RadiusOverrideSm, RadiusOverrideMd, RadiusOverrideLg}
	menuAccents     = []MenuAccent{MenuAccentSubtle, MenuAccentBold}

	sansFonts  = []SansFont{SansDefault, SansInter, SansGeist, SansFigtree, SansDMSans}
	serifFonts = []SerifFont{SerifDefault, SerifLora, SerifMerriweather, SerifPlayfair, SerifNoto}
	monoFonts  = []MonoFont{MonoDefault, MonoGeistMono, MonoJetBrainsMono, MonoFiraCode, MonoIBMPlexMono}
)

func parseToken[T ~string](set []T, token string) (T, bool) {
	v := T(strings.TrimSpace(token))
	if slices.Contains(set, v) {
		return v, true
	}
	var zero T
	return zero, false
}

func tokens[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}

// ThemeFamilies lists every theme family in display order.
func ThemeFamilies() []ThemeFamily { return slices.Clone(themeFamilies) }

// AccentColors lists every accent hue in display order.
func AccentColors() []AccentColor { return slices.Clone(accentColors) }

// BaseNeutrals lists every neutral palette in display order.
func BaseNeutrals() []BaseNeutral { return slices.Clone(baseNeutrals) }

// StylePresets lists every style preset in display order.
func StylePresets() []StylePreset { return slices.Clone(stylePresets) }

// RadiusOverrides lists every radius override in display order.
func RadiusOverrides() []RadiusOverride { return slices.Clone(radiusOverrides) }

// MenuAccents lists every menu accent intensity.
func MenuAccents() []MenuAccent { return slices.Clone(menuAccents) }

// SansFonts lists the sans-serif options, "default" first.
func SansFonts() []SansFont { return slices.Clone(sansFonts) }

// SerifFonts lists the serif options, "default" first.
func SerifFonts() []SerifFont { return slices.Clone(serifFonts) }

// MonoFonts lists the monospace options, "default" first.
func MonoFonts() []MonoFont { return slices.Clone(monoFonts) }

// ParseThemeFamily accepts a theme family token.
func ParseThemeFamily(token string) (ThemeFamily, bool) { return parseToken(themeFamilies, token) }

// ParseAccentColor accepts an accent hue token.
func ParseAccentColor(token string) (AccentColor, bool) { return parseToken(accentColors, token) }

// ParseBaseNeutral accepts a neutral palette token.
func ParseBaseNeutral(token string) (BaseNeutral, bool) { return parseToken(baseNeutrals, token) }

// ParseStylePreset accepts a style preset token.
func ParseStylePreset(token string) (StylePreset, bool) { return parseToken(stylePresets, token) }

// ParseRadiusOverride accepts a radius override token, including "none".
func ParseRadiusOverride(token string) (RadiusOverride, bool) {
	return parseToken(radiusOverrides, token)
}

// ParseMenuAccent accepts a menu accent intensity token.
func ParseMenuAccent(token string) (MenuAccent, bool) { return parseToken(menuAccents, token) }

// ParseSansFont accepts a sans-serif option or "default".
func ParseSansFont(token string) (SansFont, bool) { return parseToken(sansFonts, token) }

// ParseSerifFont accepts a serif option or "default".
func ParseSerifFont(token string) (SerifFont, bool) { return parseToken(serifFonts, token) }

// ParseMonoFont accepts a monospace option or "default".
func ParseMonoFont(token string) (MonoFont, bool) { return parseToken(monoFonts, token) }

// Valid reports whether t is a known theme family.
func (t ThemeFamily) Valid() bool { return slices.Contains(themeFamilies, t) }

// Valid reports whether c is a known accent hue.
func (c AccentColor) Valid() bool { return slices.Contains(accentColors, c) }

// Valid reports whether n is a known neutral palette.
func (n BaseNeutral) Valid() bool { return slices.Contains(baseNeutrals, n) }

// Valid reports whether p is a known style preset.
func (p StylePreset) Valid() bool { return slices.Contains(stylePresets, p) }

// Valid reports whether r is a known radius override.
func (r RadiusOverride) Valid() bool { return slices.Contains(radiusOverrides, r) }

// Valid reports whether m is a known menu accent intensity.
func (m MenuAccent) Valid() bool { return slices.Contains(menuAccents, m) }

// Valid reports whether f is a known sans-serif option.
func (f SansFont) Valid() bool { return slices.Contains(sansFonts, f) }

// Valid reports whether f is a known serif option.
func (f SerifFont) Valid() bool { return slices.Contains(serifFonts, f) }

// Valid reports whether f is a known monospace option.
func (f MonoFont) Valid() bool { return slices.Contains(monoFonts, f) }

// IsSet reports whether the override replaces the preset radius.
func (r RadiusOverride) IsSet() bool {
	return r != RadiusOverrideNone && r.Valid()
}
