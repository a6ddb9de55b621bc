package notify

import (
	"context"
	"time"
)

// EventType identifies a step of a branch run.
type EventType string

// Event type constants.
const (
	EventTicketFetched EventType = "ticket_fetched"
	EventBranchNamed   EventType = "branch_named"
	EventBranchCreated EventType = "branch_created"
	EventBranchReused  EventType = "branch_reused"
	EventBranchExists  EventType = "branch_exists"
	EventRepoInit      EventType = "repo_initialized"
	EventRunFailed     EventType = "run_failed"
)

// Severities. TerminalNotifier prints warnings and errors even for events
// it otherwise keeps quiet about.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Event describes one step of a branch run.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id,omitempty"`
	Ticket    string         `json:"ticket,omitempty"`
	Branch    string         `json:"branch,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"` // SeverityInfo, SeverityWarning, SeverityError
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier receives Service progress. A returned error is logged by the
// caller and never fails the run.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

type contextKey struct{}

// WithNotifier attaches n to ctx for Services built without one.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, contextKey{}, n)
}

// NotifierFromContext returns the attached Notifier, or nil.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(contextKey{}).(Notifier); ok {
		return n
	}
	return nil
}
