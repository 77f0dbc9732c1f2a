package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	labelStyle    = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("244"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	valueStyle    = lipgloss.NewStyle()
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("244"))
)

// swatch renders a small block filled with hex.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}
