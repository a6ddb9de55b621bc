package notify

import (
	"context"
	"errors"
	"log/slog"
)

// MultiNotifier delivers each event to every notifier in order. One failing
// sink does not stop the others.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewMultiNotifier drops nil entries, so optional sinks can be passed
// unconditionally.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{Logger: slog.Default()}
	for _, n := range notifiers {
		if n != nil {
			m.Notifiers = append(m.Notifiers, n)
		}
	}
	return m
}

// Notify returns every sink error joined, after logging each one.
func (m *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m.Notifiers {
		err := n.Notify(ctx, event)
		if err == nil {
			continue
		}
		errs = append(errs, err)
		if m.Logger != nil {
			m.Logger.WarnContext(ctx, "notifier failed", "error", err, "event_type", event.Type)
		}
	}
	return errors.Join(errs...)
}

// NopNotifier drops events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) error { return nil }
