// ABOUTME: Tests for the alert strip model
// ABOUTME: Verifies event bridging, rendering, and manual dismissal

package alerts

import (
	"strings"
	"testing"

	"github.com/tbenali/captrack/internal/alert"
)

func TestViewEmptyQueue(t *testing.T) {
	bus := alert.NewBus()
	m := New(bus)
	defer m.Close()

	if m.View() != "" {
		t.Error("expected empty view with no alerts")
	}
}

func TestUpdateSyncsQueue(t *testing.T) {
	bus := alert.NewBus()
	m := New(bus)
	defer m.Close()

	bus.Error("boom")
	cmd := m.Update(EventMsg(alert.Event{Type: alert.EventPublished}))
	if cmd == nil {
		t.Error("expected the listener to re-arm")
	}

	if m.Len() != 1 {
		t.Fatalf("expected 1 alert, got %d", m.Len())
	}
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("expected boom in view, got %q", m.View())
	}
}

func TestListenDeliversBusEvents(t *testing.T) {
	bus := alert.NewBus()
	m := New(bus)
	defer m.Close()

	bus.Info("hello")

	msg := m.Listen()()
	ev, ok := msg.(EventMsg)
	if !ok {
		t.Fatalf("expected EventMsg, got %T", msg)
	}
	if ev.Type != alert.EventPublished || ev.Alert.Message != "hello" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestDismissNewest(t *testing.T) {
	bus := alert.NewBus()
	m := New(bus)
	defer m.Close()

	bus.Info("old")
	bus.Info("new")
	m.Update(EventMsg(alert.Event{}))

	m.DismissNewest()

	remaining := bus.Alerts()
	if len(remaining) != 1 || remaining[0].Message != "old" {
		t.Errorf("expected only the older alert, got %+v", remaining)
	}
}

func TestClearAll(t *testing.T) {
	bus := alert.NewBus()
	m := New(bus)
	defer m.Close()

	bus.Info("a")
	bus.Info("b")
	m.ClearAll()

	if len(bus.Alerts()) != 0 {
		t.Error("expected empty bus after ClearAll")
	}
}
