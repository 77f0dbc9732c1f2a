package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	title := titleStyle.Render("prism • preferences")
	if !m.set.Hydrated {
		title = fmt.Sprintf("%s %s %s", title, m.spinner.View(), mutedStyle.Render("loading stored preferences"))
	}
	sections = append(sections, title)

	sections = append(sections, sectionStyle.Render("Preferences"), m.renderRows())
	sections = append(sections, sectionStyle.Render("Resolved"), m.renderResolved())

	footer := "↑/↓ select • ←/→ change • q quit"
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	sections = append(sections, statusStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderRows() string {
	lines := make([]string, 0, len(m.fields))
	for i, f := range m.fields {
		cursor := "  "
		label := labelStyle.Render(FieldLabel(f))
		value := valueStyle.Render(Label(m.set.Value(f)))
		if i == m.cursor {
			cursor = selectedStyle.Render("› ")
			value = selectedStyle.Render(Label(m.set.Value(f)))
		}
		line := cursor + label + value
		switch f {
		case preference.FieldAccentColor:
			line += " " + swatch(m.resolved.AccentHex)
		case preference.FieldBaseNeutral:
			line += " " + swatch(m.resolved.NeutralHex)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResolved() string {
	r := m.resolved
	rows := [][2]string{
		{"Radius", fmt.Sprintf("%s (%s)", Label(string(r.Radius)), r.RadiusValue)},
		{"Spacing", r.Spacing},
		{"Tracking", r.Tracking},
		{"Shadow", Label(string(r.Shadow))},
		{"Accent", r.AccentHex},
		{"Neutral", r.NeutralHex},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, "  "+labelStyle.Render(row[0])+mutedStyle.Render(row[1]))
	}
	return strings.Join(lines, "\n")
}
