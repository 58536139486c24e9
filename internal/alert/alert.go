// ABOUTME: Process-wide alert bus for transient user-facing notifications
// ABOUTME: Ordered queue with per-alert identity and auto-dismiss timers

package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an alert for rendering.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long an auto-dismissing alert stays visible.
const DefaultDuration = 5 * time.Second

// Alert is a transient notification. ID is unique per alert so removal never
// confuses two alerts that share the same message text.
type Alert struct {
	ID          string
	Kind        Kind
	Message     string
	AutoDismiss bool
	Duration    time.Duration
}

// EventType describes a change to the alert queue.
type EventType int

const (
	EventPublished EventType = iota
	EventDismissed
	EventCleared
)

// Event is delivered to subscribers on every queue change.
type Event struct {
	Type  EventType
	Alert Alert  // set for EventPublished
	ID    string // set for EventDismissed
}

// Bus is the publish/subscribe channel for alerts. Any component may
// publish; one renderer drains it.
type Bus struct {
	mu      sync.Mutex
	queue   []Alert
	timers  map[string]*time.Timer
	subs    map[int]chan Event
	nextSub int
}

// NewBus creates an empty alert bus.
func NewBus() *Bus {
	return &Bus{
		timers: make(map[string]*time.Timer),
		subs:   make(map[int]chan Event),
	}
}

// Publish appends an alert to the queue and notifies subscribers. The
// assigned ID is returned so callers can dismiss the alert later.
func (b *Bus) Publish(kind Kind, message string, autoDismiss bool, duration time.Duration) string {
	a := Alert{
		ID:          uuid.NewString(),
		Kind:        kind,
		Message:     message,
		AutoDismiss: autoDismiss,
		Duration:    duration,
	}

	b.mu.Lock()
	b.queue = append(b.queue, a)
	if a.AutoDismiss {
		id := a.ID
		b.timers[id] = time.AfterFunc(a.Duration, func() {
			b.Dismiss(id)
		})
	}
	b.notifyLocked(Event{Type: EventPublished, Alert: a})
	b.mu.Unlock()
	return a.ID
}

// Success publishes a success alert with default auto-dismiss.
func (b *Bus) Success(message string) string {
	return b.Publish(KindSuccess, message, true, DefaultDuration)
}

// Error publishes an error alert with default auto-dismiss.
func (b *Bus) Error(message string) string {
	return b.Publish(KindError, message, true, DefaultDuration)
}

// Warning publishes a warning alert with default auto-dismiss.
func (b *Bus) Warning(message string) string {
	return b.Publish(KindWarning, message, true, DefaultDuration)
}

// Info publishes an info alert with default auto-dismiss.
func (b *Bus) Info(message string) string {
	return b.Publish(KindInfo, message, true, DefaultDuration)
}

// Dismiss removes the alert with the given ID. Dismissing an unknown or
// already-removed ID is a no-op, so a manual close racing an auto-dismiss
// timer cannot double-remove.
func (b *Bus) Dismiss(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}

	for i, a := range b.queue {
		if a.ID == id {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			b.notifyLocked(Event{Type: EventDismissed, ID: id})
			return
		}
	}
}

// Clear drops every queued alert and cancels all pending timers.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	b.queue = nil
	b.notifyLocked(Event{Type: EventCleared})
}

// Alerts returns a snapshot of the queue in publication order.
func (b *Bus) Alerts() []Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Alert, len(b.queue))
	copy(out, b.queue)
	return out
}

// Subscribe registers for queue change events. The cancel func releases the
// subscription.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	ch := make(chan Event, 32)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// notifyLocked fans an event out to subscribers. Caller holds b.mu. Slow
// subscribers lose the event rather than blocking publishers.
func (b *Bus) notifyLocked(ev Event) {
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
