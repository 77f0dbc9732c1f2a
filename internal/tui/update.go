package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SetChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)
	case spinner.TickMsg:
		if m.set.Hydrated {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "right", "l", "enter", " ":
		m.cycle(1)
	case "left", "h":
		m.cycle(-1)
	}
	return m, nil
}

// cycle moves the selected field to the next or previous option, wrapping
// around.
func (m *Model) cycle(step int) {
	field := m.Selected()
	options := field.Options()
	if len(options) == 0 {
		return
	}
	idx := slices.Index(options, m.set.Value(field))
	next := options[(idx+step+len(options))%len(options)]

	if m.ctrl.SetField(m.ctx, field, next) {
		m.status = fmt.Sprintf("%s → %s", FieldLabel(field), Label(next))
	} else {
		m.status = fmt.Sprintf("could not set %s", FieldLabel(field))
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.set = m.ctrl.Snapshot()
	m.resolved = m.ctrl.Resolved()
}
