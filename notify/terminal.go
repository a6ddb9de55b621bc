package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette used by TerminalNotifier.
var (
	colorOK    = lipgloss.Color("#22c55e")
	colorWarn  = lipgloss.Color("#eab308")
	colorError = lipgloss.Color("#ef4444")
	colorMuted = lipgloss.Color("#737373")
	colorBold  = lipgloss.Color("#e5e5e5")
)

// TerminalNotifier prints one line per event for a human reader.
// Info events are printed only when they name a Branch or report a new
// repository.
// EventRunFailed is skipped; the caller reports the error itself.
type TerminalNotifier struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool

	okStyle     lipgloss.Style
	warnStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
	branchStyle lipgloss.Style
}

// NewTerminalNotifier writes to out. With plain set, no ANSI styling is
// emitted (for --no-color or non-terminal output).
func NewTerminalNotifier(out io.Writer, plain bool) *TerminalNotifier {
	n := &TerminalNotifier{out: out, plain: plain}
	if !plain {
		n.okStyle = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
		n.warnStyle = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
		n.errorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
		n.mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
		n.branchStyle = lipgloss.NewStyle().Foreground(colorBold).Bold(true)
	}
	return n
}

// Notify implements Notifier.
func (n *TerminalNotifier) Notify(_ context.Context, event Event) error {
	if event.Type == EventRunFailed {
		return nil
	}
	if event.Severity == SeverityInfo && event.Branch == "" && event.Type != EventRepoInit {
		return nil
	}

	line := n.format(event)

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.out, line)
	return err
}

func (n *TerminalNotifier) format(event Event) string {
	marker, style := n.marker(event)
	line := n.render(style, marker) + " " + event.Message
	if event.Branch != "" {
		line += " " + n.render(n.branchStyle, event.Branch)
	}
	if event.Ticket != "" {
		line += " " + n.render(n.mutedStyle, "("+event.Ticket+")")
	}
	return line
}

func (n *TerminalNotifier) marker(event Event) (string, lipgloss.Style) {
	switch {
	case event.Severity == SeverityError:
		return "✗", n.errorStyle
	case event.Severity == SeverityWarning:
		return "!", n.warnStyle
	case event.Type == EventBranchNamed:
		return "→", n.mutedStyle
	default:
		return "✓", n.okStyle
	}
}

func (n *TerminalNotifier) render(style lipgloss.Style, s string) string {
	if n.plain {
		return s
	}
	return style.Render(s)
}
