package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes each event as one structured log record. The CLI adds
// it under --verbose.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier falls back to slog.Default when logger is nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	attrs := []slog.Attr{slog.String("type", string(event.Type))}
	for _, kv := range [][2]string{
		{"run_id", event.RunID},
		{"ticket", event.Ticket},
		{"branch", event.Branch},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	n.Logger.LogAttrs(ctx, severityLevel(event.Severity), event.Message, attrs...)
	return nil
}

func severityLevel(severity string) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
