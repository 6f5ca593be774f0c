// Package notify is the toast surface: fire-and-forget user-facing
// messages for validation errors and success confirmations.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier surfaces a message to the user. No acknowledgement
// contract; implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, title, description string, sev Severity)
}

// Slog writes notifications to structured logs; the headless stand-in
// for the original toast widget.
type Slog struct {
	logger *slog.Logger
}

var _ Notifier = (*Slog)(nil)

func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

func (n *Slog) Notify(ctx context.Context, title, description string, sev Severity) {
	level := slog.LevelInfo
	if sev == SeverityError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "notify",
		slog.String("title", title),
		slog.String("description", description),
		slog.String("severity", string(sev)),
	)
}

// Notification is one captured message.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

var _ Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Notify(ctx context.Context, title, description string, sev Severity) {
	r.mu.Lock()
	r.sent = append(r.sent, Notification{Title: title, Description: description, Severity: sev})
	r.mu.Unlock()
}

// Sent returns the notifications captured so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
