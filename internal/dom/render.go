package dom

import (
	"html"
	"strings"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// RenderRootAttrs renders the root element attributes for server-side first
// paint, including an inline style carrying the custom properties. Values are
// HTML-escaped.
func RenderRootAttrs(r preference.Resolved) string {
	var b strings.Builder
	for _, d := range Attributes(r) {
		b.WriteString(d.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(d.Value))
		b.WriteString(`" `)
	}
	b.WriteString(`style="`)
	b.WriteString(html.EscapeString(inlineStyle(r)))
	b.WriteString(`"`)
	return b.String()
}

// RenderCSS renders a :root rule declaring every custom property.
func RenderCSS(r preference.Resolved) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, d := range Properties(r) {
		b.WriteString("  ")
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func inlineStyle(r preference.Resolved) string {
	props := Properties(r)
	parts := make([]string, 0, len(props))
	for _, d := range props {
		parts = append(parts, d.Name+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}
