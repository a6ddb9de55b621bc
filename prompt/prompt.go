package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput indicates the input ended (EOF) before an answer was given.
var ErrNoInput = errors.New("no input provided")

// ErrNotInteractive indicates a prompt was needed but input is not a terminal.
var ErrNotInteractive = errors.New("input is not a terminal")

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// New creates a Prompter reading from in and writing questions to out.
// It is interactive when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: IsTerminal(in),
	}
}

// NewWithMode is New with an explicit interactive flag, for tests and
// for callers that already know.
func NewWithMode(in io.Reader, out io.Writer, interactive bool) *Prompter {
	p := New(in, out)
	p.interactive = interactive
	return p
}

// IsTerminal reports whether r is a terminal file descriptor.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether the prompter may ask questions.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Ticket asks for a ticket reference until validate accepts it. Empty
// answers and rejected answers print a hint and ask again.
func (p *Prompter) Ticket(validate func(string) error) (string, error) {
	if !p.interactive {
		return "", ErrNotInteractive
	}

	for {
		fmt.Fprint(p.out, "Jira ticket (e.g. PROJECT-123): ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		switch {
		case line == "":
			fmt.Fprintln(p.out, "Please enter a ticket ID.")
		case validate != nil && validate(line) != nil:
			fmt.Fprintln(p.out, "Invalid ticket format. Please use the format PROJECT-123.")
		default:
			return line, nil
		}
	}
}

// Confirm asks a yes/no question. An empty answer selects defaultYes.
// A non-interactive prompter returns false without asking.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	if !p.interactive {
		return false, nil
	}

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", question, hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(p.out, "Please answer y or n.")
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline
// is returned; EOF with nothing read is ErrNoInput.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(p.out)
				return "", ErrNoInput
			}
		} else {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}
