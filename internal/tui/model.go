package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// Controller is the slice of controller.Controller the watch view drives.
type Controller interface {
	Snapshot() preference.Set
	Resolved() preference.Resolved
	SetField(ctx context.Context, f preference.Field, token string) bool
	Subscribe(fn func(preference.Set)) func()
}

// SetChangedMsg carries a store notification into the program.
type SetChangedMsg struct {
	Set preference.Set
}

// Model is the Bubbletea state for the live preference view.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	changes  chan preference.Set
	stop     func()
	fields   []preference.Field
	cursor   int
	set      preference.Set
	resolved preference.Resolved
	spinner  spinner.Model
	status   string
	quitting bool
}

// NewModel subscribes to ctrl and builds the initial view state.
func NewModel(ctx context.Context, ctrl Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	changes := make(chan preference.Set, 16)
	stop := ctrl.Subscribe(func(set preference.Set) {
		select {
		case changes <- set:
		default:
			// The view re-reads the snapshot on every message, so a dropped
			// notification only delays a repaint.
		}
	})

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		changes:  changes,
		stop:     stop,
		fields:   preference.Fields(),
		set:      ctrl.Snapshot(),
		resolved: ctrl.Resolved(),
		spinner:  s,
	}
}

// Init starts the spinner and waits for the first store change.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForChange(m.changes))
}

func waitForChange(ch <-chan preference.Set) tea.Cmd {
	return func() tea.Msg {
		set, ok := <-ch
		if !ok {
			return nil
		}
		return SetChangedMsg{Set: set}
	}
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.stop != nil {
		m.stop()
	}
}

// Selected returns the field under the cursor.
func (m Model) Selected() preference.Field {
	return m.fields[m.cursor]
}

// Set returns the preference set currently displayed.
func (m Model) Set() preference.Set {
	return m.set
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
