// Package notify carries transient user-facing messages from coordinators
// to whatever surface displays them.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Severity of a notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Display durations used by the coordinators
const (
	LifeShort = 3 * time.Second
	LifeLong  = 5 * time.Second
)

// Notification is a transient message shown to the user.
// A zero Life means the surface's default duration.
type Notification struct {
	Severity Severity
	Summary  string
	Detail   string
	Life     time.Duration
}

// Notifier displays notifications
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface
type Func func(n Notification)

// Notify calls f(n)
func (f Func) Notify(n Notification) {
	f(n)
}

// Success builds a success notification
func Success(detail string) Notification {
	return Notification{Severity: SeveritySuccess, Summary: "Success", Detail: detail}
}

// Error builds an error notification
func Error(detail string) Notification {
	return Notification{Severity: SeverityError, Summary: "Error", Detail: detail}
}

// WithLife returns n with its display duration set
func (n Notification) WithLife(d time.Duration) Notification {
	n.Life = d
	return n
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records n
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset discards recorded notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Logger writes notifications to a structured logger
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Notifier that logs each notification
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Notify logs n at a level matching its severity
func (l *Logger) Notify(n Notification) {
	level := slog.LevelInfo
	switch n.Severity {
	case SeverityError:
		level = slog.LevelError
	case SeverityWarn:
		level = slog.LevelWarn
	}
	l.logger.Log(context.Background(), level, "notification",
		slog.String("summary", n.Summary),
		slog.String("detail", n.Detail),
	)
}
