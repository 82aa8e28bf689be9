// Package notify carries user-visible notifications from the analytics
// core to whatever surface displays them (terminal toasts, the session
// history store, logs).
package notify

import (
	"sync"
	"time"
)

// Severity is the display level of a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Notification is a single human-readable message.
type Notification struct {
	Severity Severity
	Message  string
	At       time.Time
}

// New returns a notification stamped with the current time.
func New(severity Severity, message string) Notification {
	return Notification{Severity: severity, Message: message, At: time.Now()}
}

// Sink receives notifications. Implementations must not block for long;
// they are called from refresh callbacks.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// Multi fans a notification out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var active []Sink
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return SinkFunc(func(n Notification) {
		for _, s := range active {
			s.Notify(n)
		}
	})
}

// Recorder keeps every notification it receives. It is safe for
// concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify appends n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns how many notifications of the given severity were recorded.
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.items {
		if item.Severity == severity {
			n++
		}
	}
	return n
}
