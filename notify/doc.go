// Package notify reports the progress of a branch run.
//
// Core types:
//   - Notifier: Interface for reporting events
//   - Event: A step of the run with ticket, branch, and severity
//
// Implementations:
//   - TerminalNotifier: Styled one-line output for people (lipgloss)
//   - LogNotifier: Structured slog records
//   - MultiNotifier: Fans out to several notifiers
//   - NopNotifier: Discards everything
//
// Example usage:
//
//	n := notify.NewMultiNotifier(
//	    notify.NewTerminalNotifier(os.Stdout, noColor),
//	    notify.NewLogNotifier(logger),
//	)
//	_ = n.Notify(ctx, notify.Event{
//	    Type:     notify.EventBranchCreated,
//	    Branch:   "fy25/sprint07/WAR-7974/fix-login-bug",
//	    Message:  "created branch",
//	    Severity: notify.SeverityInfo,
//	})
package notify
