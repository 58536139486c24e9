// ABOUTME: Alert strip rendered above every console screen
// ABOUTME: Bridges alert bus events into bubbletea messages

package alerts

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbenali/captrack/internal/alert"
	"github.com/tbenali/captrack/internal/tui/styles"
)

// EventMsg wraps a bus event for the bubbletea update loop.
type EventMsg alert.Event

// Model renders the current alert queue. It owns the bus subscription for
// the lifetime of the TUI; Close releases it.
type Model struct {
	bus    *alert.Bus
	events <-chan alert.Event
	cancel func()
	queue  []alert.Alert
}

// New subscribes to the bus and returns the strip model.
func New(bus *alert.Bus) *Model {
	ch, cancel := bus.Subscribe()
	return &Model{
		bus:    bus,
		events: ch,
		cancel: cancel,
		queue:  bus.Alerts(),
	}
}

// Close releases the bus subscription.
func (m *Model) Close() {
	m.cancel()
}

// Listen returns a command that waits for the next bus event.
func (m *Model) Listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}

// Update applies a bus event and re-arms the listener.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(EventMsg); ok {
		// The bus is authoritative; resync the snapshot.
		m.queue = m.bus.Alerts()
		return m.Listen()
	}
	return nil
}

// DismissNewest manually dismisses the most recent alert, canceling its
// auto-dismiss timer.
func (m *Model) DismissNewest() {
	if len(m.queue) == 0 {
		return
	}
	m.bus.Dismiss(m.queue[len(m.queue)-1].ID)
}

// ClearAll drops the whole queue.
func (m *Model) ClearAll() {
	m.bus.Clear()
}

// Len returns the number of visible alerts.
func (m *Model) Len() int {
	return len(m.queue)
}

// View renders the queue in publication order, one line per alert.
func (m *Model) View() string {
	if len(m.queue) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range m.queue {
		b.WriteString(styles.AlertStyle(a.Kind).Render(icon(a.Kind) + " " + a.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func icon(kind alert.Kind) string {
	switch kind {
	case alert.KindSuccess:
		return "✔"
	case alert.KindError:
		return "✖"
	case alert.KindWarning:
		return "▲"
	default:
		return "ℹ"
	}
}
