package preference

// StyleBundle is the immutable style resolved from a preset.
type StyleBundle struct {
	Radius   RadiusScale
	Spacing  string
	Tracking string
	Shadow   ShadowIntensity
}

var presetBundles = map[StylePreset]StyleBundle{
	PresetVega: {Radius: RadiusMd, Spacing: "0.25rem", Tracking: "0em", Shadow: ShadowMedium},
	PresetNova: {Radius: RadiusSm, Spacing: "0.22rem", Tracking: "-0.01em", Shadow: ShadowSoft},
	PresetMaia: {Radius: RadiusLg, Spacing: "0.28rem", Tracking: "0em", Shadow: ShadowStrong},
	PresetLyra: {Radius: RadiusNone, Spacing: "0.25rem", Tracking: "0.02em", Shadow: ShadowNone},
	PresetMira: {Radius: RadiusSm, Spacing: "0.2rem", Tracking: "-0.005em", Shadow: ShadowSoft},
}

var radiusLengths = map[RadiusScale]string{
	RadiusNone: "0rem",
	RadiusSm:   "0.25rem",
	RadiusMd:   "0.5rem",
	RadiusLg:   "0.75rem",
}

var shadowValues = map[ShadowIntensity]string{
	ShadowNone:   "none",
	ShadowSoft:   "0 1px 2px 0 rgb(0 0 0 / 0.05)",
	ShadowMedium: "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)",
	ShadowStrong: "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
}

var accentHex = map[AccentColor]string{
	AccentRed:     "#ef4444",
	AccentOrange:  "#f97316",
	AccentAmber:   "#f59e0b",
	AccentYellow:  "#eab308",
	AccentLime:    "#84cc16",
	AccentGreen:   "#22c55e",
	AccentEmerald: "#10b981",
	AccentTeal:    "#14b8a6",
	AccentCyan:    "#06b6d4",
	AccentSky:     "#0ea5e9",
	AccentBlue:    "#3b82f6",
	AccentIndigo:  "#6366f1",
	AccentViolet:  "#8b5cf6",
	AccentPurple:  "#a855f7",
	AccentFuchsia: "#d946ef",
	AccentPink:    "#ec4899",
	AccentRose:    "#f43f5e",
	AccentNeutral: "#737373",
}

var neutralHex = map[BaseNeutral]string{
	NeutralNeutral: "#737373",
	NeutralStone:   "#78716c",
	NeutralZinc:    "#71717a",
	NeutralGray:    "#6b7280",
}

const (
	defaultSansStack  = `ui-sans-serif, system-ui, sans-serif`
	defaultSerifStack = `ui-serif, Georgia, Cambria, "Times New Roman", serif`
	defaultMonoStack  = `ui-monospace, SFMono-Regular, Menlo, Consolas, monospace`
)

var fontStacks = map[Field]map[string]string{
	FieldFontSans: {
		string(SansDefault): defaultSansStack,
		string(SansInter):   `"Inter", ` + defaultSansStack,
		string(SansGeist):   `"Geist", ` + defaultSansStack,
		string(SansFigtree): `"Figtree", ` + defaultSansStack,
		string(SansDMSans):  `"DM Sans", ` + defaultSansStack,
	},
	FieldFontSerif: {
		string(SerifDefault):      defaultSerifStack,
		string(SerifLora):         `"Lora", ` + defaultSerifStack,
		string(SerifMerriweather): `"Merriweather", ` + defaultSerifStack,
		string(SerifPlayfair):     `"Playfair Display", ` + defaultSerifStack,
		string(SerifNoto):         `"Noto Serif", ` + defaultSerifStack,
	},
	FieldFontMono: {
		string(MonoDefault):       defaultMonoStack,
		string(MonoGeistMono):     `"Geist Mono", ` + defaultMonoStack,
		string(MonoJetBrainsMono): `"JetBrains Mono", ` + defaultMonoStack,
		string(MonoFiraCode):      `"Fira Code", ` + defaultMonoStack,
		string(MonoIBMPlexMono):   `"IBM Plex Mono", ` + defaultMonoStack,
	},
}

// Resolved is the final rendering input after preset/override precedence and
// token-to-value lookups.
type Resolved struct {
	ThemeFamily ThemeFamily
	AccentColor AccentColor
	AccentHex   string
	BaseNeutral BaseNeutral
	NeutralHex  string
	StylePreset StylePreset
	Radius      RadiusScale
	RadiusValue string
	Spacing     string
	Tracking    string
	Shadow      ShadowIntensity
	ShadowValue string
	MenuAccent  MenuAccent
	FontSans    string
	FontSerif   string
	FontMono    string
}

// Bundle returns the preset's style bundle. Unknown presets resolve to the
// vega bundle.
func (p StylePreset) Bundle() StyleBundle {
	if b, ok := presetBundles[p]; ok {
		return b
	}
	return presetBundles[PresetVega]
}

// ResolveRadius applies override precedence: a set override wins, otherwise
// the preset radius is used.
func ResolveRadius(preset StylePreset, override RadiusOverride) RadiusScale {
	if override.IsSet() {
		return RadiusScale(override)
	}
	return preset.Bundle().Radius
}

// RadiusLength maps a radius scale to its CSS length.
func RadiusLength(r RadiusScale) string {
	if v, ok := radiusLengths[r]; ok {
		return v
	}
	return radiusLengths[RadiusMd]
}

// AccentHex returns the hex constant for the accent colour, falling back to
// the default accent on a lookup miss.
func AccentHex(c AccentColor, diag DiagnosticFunc) string {
	if hex, ok := accentHex[c]; ok {
		return hex
	}
	diag.lookupMiss(FieldAccentColor, string(c))
	return accentHex[AccentNeutral]
}

// NeutralHex returns the hex constant for the neutral palette.
func NeutralHex(n BaseNeutral, diag DiagnosticFunc) string {
	if hex, ok := neutralHex[n]; ok {
		return hex
	}
	diag.lookupMiss(FieldBaseNeutral, string(n))
	return neutralHex[NeutralNeutral]
}

// FontStack returns the CSS font-family stack for a font field. A token with
// no mapping, such as a retired option, resolves to the category default.
func FontStack(f Field, token string, diag DiagnosticFunc) string {
	stacks, ok := fontStacks[f]
	if !ok {
		diag.lookupMiss(f, token)
		return defaultSansStack
	}
	if stack, ok := stacks[token]; ok {
		return stack
	}
	diag.lookupMiss(f, token)
	return stacks[FontDefault]
}

// Resolve computes the rendering values for s.
func Resolve(s Set, diag DiagnosticFunc) Resolved {
	bundle := s.StylePreset.Bundle()
	radius := ResolveRadius(s.StylePreset, s.RadiusOverride)
	shadow, ok := shadowValues[bundle.Shadow]
	if !ok {
		shadow = shadowValues[ShadowNone]
	}
	return Resolved{
		ThemeFamily: s.ThemeFamily,
		AccentColor: s.AccentColor,
		AccentHex:   AccentHex(s.AccentColor, diag),
		BaseNeutral: s.BaseNeutral,
		NeutralHex:  NeutralHex(s.BaseNeutral, diag),
		StylePreset: s.StylePreset,
		Radius:      radius,
		RadiusValue: RadiusLength(radius),
		Spacing:     bundle.Spacing,
		Tracking:    bundle.Tracking,
		Shadow:      bundle.Shadow,
		ShadowValue: shadow,
		MenuAccent:  s.MenuAccent,
		FontSans:    FontStack(FieldFontSans, string(s.Fonts.Sans), diag),
		FontSerif:   FontStack(FieldFontSerif, string(s.Fonts.Serif), diag),
		FontMono:    FontStack(FieldFontMono, string(s.Fonts.Mono), diag),
	}
}
