package tui

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// A Caser keeps state between calls, so each label gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Label turns a token such as "high-contrast" into "High Contrast".
func Label(token string) string {
	return titleCase(strings.ReplaceAll(token, "-", " "))
}

// FieldLabel turns a field name such as "menuAccentIntensity" into
// "Menu Accent Intensity".
func FieldLabel(f preference.Field) string {
	var b strings.Builder
	for i, r := range string(f) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCase(b.String())
}
