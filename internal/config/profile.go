package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	prismerrors "github.com/alexisbeaulieu97/prism/pkg/errors"
)

// Profile is a portable preference export. Omitted keys leave the target
// preference untouched on import.
type Profile struct {
	Theme      string       `yaml:"theme,omitempty"`
	Accent     string       `yaml:"accent,omitempty"`
	Neutral    string       `yaml:"neutral,omitempty"`
	Preset     string       `yaml:"preset,omitempty"`
	Radius     string       `yaml:"radius,omitempty"`
	MenuAccent string       `yaml:"menu_accent,omitempty"`
	Fonts      ProfileFonts `yaml:"fonts,omitempty"`
}

// ProfileFonts holds the per-category font tokens.
type ProfileFonts struct {
	Sans  string `yaml:"sans,omitempty"`
	Serif string `yaml:"serif,omitempty"`
	Mono  string `yaml:"mono,omitempty"`
}

func (p *Profile) slots() []struct {
	field preference.Field
	key   string
	value *string
} {
	return []struct {
		field preference.Field
		key   string
		value *string
	}{
		{preference.FieldThemeFamily, "theme", &p.Theme},
		{preference.FieldAccentColor, "accent", &p.Accent},
		{preference.FieldBaseNeutral, "neutral", &p.Neutral},
		{preference.FieldStylePreset, "preset", &p.Preset},
		{preference.FieldRadiusOverride, "radius", &p.Radius},
		{preference.FieldMenuAccent, "menu_accent", &p.MenuAccent},
		{preference.FieldFontSans, "fonts.sans", &p.Fonts.Sans},
		{preference.FieldFontSerif, "fonts.serif", &p.Fonts.Serif},
		{preference.FieldFontMono, "fonts.mono", &p.Fonts.Mono},
	}
}

// ProfileFromPatch writes every field carried by patch into a profile.
func ProfileFromPatch(patch preference.Patch) Profile {
	var p Profile
	for _, slot := range p.slots() {
		if token, ok := patch.Get(slot.field); ok {
			*slot.value = token
		}
	}
	return p
}

// ProfileFromSet exports every dimension of s.
func ProfileFromSet(s preference.Set) Profile {
	return ProfileFromPatch(preference.PatchFromSet(s))
}

// Patch converts the profile into a preference patch. An unknown token is a
// ValidationError naming the profile key.
func (p Profile) Patch() (preference.Patch, error) {
	var patch preference.Patch
	for _, slot := range p.slots() {
		token := strings.TrimSpace(*slot.value)
		if token == "" {
			continue
		}
		if !preference.ValidToken(slot.field, token) {
			return preference.Patch{}, prismerrors.NewValidationError(slot.key,
				fmt.Sprintf("unknown %s %q (expected one of: %s)", slot.field, token, strings.Join(slot.field.Options(), ", ")), nil)
		}
		patch.Put(slot.field, token)
	}
	return patch, nil
}

// ParseProfile decodes a YAML profile. Unknown keys are rejected.
func ParseProfile(path string, data []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, prismerrors.NewParseError(path, extractLine(err), err)
	}
	if _, err := p.Patch(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and parses the profile at path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, prismerrors.NewParseError(path, 0, err)
	}
	return ParseProfile(path, data)
}

// MarshalProfile encodes p as YAML.
func MarshalProfile(p Profile) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}
