package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/ticketbranch"
	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/git"
	"github.com/randalmurphal/ticketbranch/jira"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCode is 2 for invalid input and 1 for everything else.
func (e *CLIError) ExitCode() int {
	if errors.Is(e.Err, ErrInvalidInput) {
		return 2
	}
	return 1
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your CLI.
type ErrorMessenger interface {
	InvalidTicketMessage(input string) (message, suggestion string)
	NotConfiguredMessage() (message, suggestion string)
	TicketNotFoundMessage(key string) (message, suggestion string)
	AuthErrorMessage() (message, suggestion string)
	PermissionDeniedMessage() (message, suggestion string)

	// The serverURL parameter is the Jira URL that failed.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)
	TLSErrorMessage(serverURL string) (message, suggestion string)
	TimeoutErrorMessage(serverURL string) (message, suggestion string)

	NotInGitRepoMessage(path string) (message, suggestion string)
	BranchExistsMessage(branch string) (message, suggestion string)
	BranchNotFoundMessage(branch string) (message, suggestion string)
	InvalidBranchNameMessage(branch string) (message, suggestion string)
	BranchCreationMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) InvalidTicketMessage(input string) (string, string) {
	if input == "" {
		return "Please enter a ticket ID.", "Use the format PROJECT-123, for example WAR-7974."
	}
	return fmt.Sprintf("Invalid ticket format: %q", input),
		"Please use the format PROJECT-123 (uppercase letters, a dash, then digits)."
}

func (m DefaultMessenger) NotConfiguredMessage() (string, string) {
	return "JIRA configuration is missing.",
		"Please set your JIRA base URL, email, and API token:\n" +
			"  ticketbranch config set base_url https://yourcompany.atlassian.net\n" +
			"  ticketbranch config set email you@example.com\n" +
			"  ticketbranch config set api_token <token>"
}

func (m DefaultMessenger) TicketNotFoundMessage(key string) (string, string) {
	return fmt.Sprintf("Ticket %s not found.", key),
		"Please check the ticket ID and your JIRA credentials."
}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "JIRA rejected your credentials.",
		"Check email and api_token with 'ticketbranch config list', then run 'ticketbranch doctor'."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "You don't have permission to view this ticket.",
		"Ask your JIRA administrator for access to the project."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to JIRA at %s", serverURL),
		"Check that:\n  - The base_url is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"Try again in a moment, or raise the timeout with 'ticketbranch config set timeout 60s'."
}

func (m DefaultMessenger) NotInGitRepoMessage(path string) (string, string) {
	msg := "This command must be run from within a git repository."
	if path != "" {
		msg = fmt.Sprintf("%s is not a git repository.", path)
	}
	return msg, "Run again with --init to initialize one, or run 'git init' first."
}

func (m DefaultMessenger) BranchExistsMessage(branch string) (string, string) {
	return fmt.Sprintf("Branch %s already exists.", branch),
		"Run again with --on-exists reuse to check it out."
}

func (m DefaultMessenger) BranchNotFoundMessage(branch string) (string, string) {
	msg := "The branch to check out no longer exists."
	if branch != "" {
		msg = fmt.Sprintf("Branch %s no longer exists.", branch)
	}
	return msg,
		"It may have been deleted while ticketbranch was running; run again to create it."
}

func (m DefaultMessenger) InvalidBranchNameMessage(branch string) (string, string) {
	return fmt.Sprintf("Git does not accept %s as a branch name.", branch),
		"Check branch_prefix and empty_summary with 'ticketbranch config list'."
}

func (m DefaultMessenger) BranchCreationMessage() (string, string) {
	return "Failed to create branch.",
		"Check that your working tree allows switching branches."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
	ServerURL string
	RepoPath  string
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

// WithServerURL names the Jira instance in connection messages.
func WithServerURL(url string) Option {
	return func(c *WrapConfig) {
		c.ServerURL = url
	}
}

// WithRepoPath names the repository in git messages.
func WithRepoPath(path string) Option {
	return func(c *WrapConfig) {
		c.RepoPath = path
	}
}

func newWrapConfig(opts []Option) *WrapConfig {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Wrap turns an error from a branch run into a *CLIError with a message and
// suggestion. Errors it does not recognize are returned unchanged, as is an
// error that is already a *CLIError.
func Wrap(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	cfg := newWrapConfig(opts)
	m := cfg.Messenger

	switch {
	case errors.Is(err, branchname.ErrInvalidTicketReference),
		errors.Is(err, jira.ErrIssueKeyInvalid):
		msg, suggestion := m.InvalidTicketMessage(invalidInput(err))
		return newCLIError(ErrInvalidInput, err, msg, suggestion, "")

	case errors.Is(err, ticketbranch.ErrInvalidOnExists),
		errors.Is(err, jira.ErrConfigInvalid):
		return newCLIError(ErrInvalidInput, err, capitalize(err.Error()), "", "")

	case IsConfigError(err):
		msg, suggestion := m.NotConfiguredMessage()
		return newCLIError(ErrNotConfigured, err, msg, suggestion, detail(err, jira.ErrConfigurationMissing))

	case jira.IsNotFound(err):
		msg, suggestion := m.TicketNotFoundMessage(detail(err, jira.ErrIssueNotFound))
		return newCLIError(nil, err, msg, suggestion, "")

	case errors.Is(err, git.ErrNotGitRepo):
		path := cfg.RepoPath
		if path == "" {
			path = detail(err, git.ErrNotGitRepo)
		}
		msg, suggestion := m.NotInGitRepoMessage(path)
		return newCLIError(ErrNotInGitRepo, err, msg, suggestion, "")

	case errors.Is(err, git.ErrInvalidBranchName):
		msg, suggestion := m.InvalidBranchNameMessage(detail(err, git.ErrInvalidBranchName))
		return newCLIError(ErrInvalidInput, err, msg, suggestion, "")

	case errors.Is(err, git.ErrBranchNotFound):
		msg, suggestion := m.BranchNotFoundMessage(detail(err, git.ErrBranchNotFound))
		return newCLIError(nil, err, msg, suggestion, "")

	case errors.Is(err, git.ErrBranchExists) && !errors.Is(err, ticketbranch.ErrBranchCreationFailed):
		msg, suggestion := m.BranchExistsMessage(detail(err, git.ErrBranchExists))
		return newCLIError(nil, err, msg, suggestion, "")

	case errors.Is(err, ticketbranch.ErrBranchCreationFailed):
		msg, suggestion := m.BranchCreationMessage()
		return newCLIError(nil, err, msg, suggestion, detail(err, ticketbranch.ErrBranchCreationFailed))
	}

	if wrapped := WrapAuthError(err, opts...); wrapped != err {
		return wrapped
	}
	return WrapConnectionError(err, cfg.ServerURL, opts...)
}

// WrapAuthError wraps authentication-related errors with helpful guidance.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	m := newWrapConfig(opts).Messenger

	if IsAuthError(err) {
		msg, suggestion := m.AuthErrorMessage()
		return newCLIError(ErrNotAuthenticated, err, msg, suggestion, "")
	}
	if IsPermissionError(err) {
		msg, suggestion := m.PermissionDeniedMessage()
		return newCLIError(ErrPermissionDenied, err, msg, suggestion, "")
	}
	return err
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}
	m := newWrapConfig(opts).Messenger

	errStr := strings.ToLower(err.Error())

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := m.ConnectionErrorMessage(serverURL)
		return newCLIError(ErrConnectionFailed, err, msg, suggestion, "")
	}

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := m.TLSErrorMessage(serverURL)
		return newCLIError(ErrConnectionFailed, err, msg, suggestion, err.Error())
	}

	// Check for timeout
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := m.TimeoutErrorMessage(serverURL)
		return newCLIError(ErrConnectionFailed, err, msg, suggestion, "")
	}

	return err
}

// NewNotInGitRepoError creates an error for commands that require a git repository.
func NewNotInGitRepoError(path string, opts ...Option) error {
	msg, suggestion := newWrapConfig(opts).Messenger.NotInGitRepoMessage(path)
	return newCLIError(ErrNotInGitRepo, git.ErrNotGitRepo, msg, suggestion, "")
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(interface{ ExitCode() int }); ok {
		return ec.ExitCode()
	}
	if errors.Is(err, ErrInvalidInput) {
		return 2
	}
	return 1
}

func newCLIError(category, err error, msg, suggestion, details string) *CLIError {
	wrapped := err
	if category != nil && !errors.Is(err, category) {
		wrapped = fmt.Errorf("%w: %w", category, err)
	}
	return &CLIError{
		Err:        wrapped,
		Message:    msg,
		Suggestion: suggestion,
		Details:    details,
	}
}

// detail returns what follows "<sentinel>: " in err's message, or "".
func detail(err, sentinel error) string {
	s := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(s, prefix); i >= 0 {
		return s[i+len(prefix):]
	}
	return ""
}

// invalidInput recovers the rejected input from a validation error.
func invalidInput(err error) string {
	d := detail(err, branchname.ErrInvalidTicketReference)
	if d == "" {
		d = detail(err, jira.ErrIssueKeyInvalid)
	}
	if strings.HasPrefix(d, `"`) {
		if end := strings.Index(d[1:], `"`); end >= 0 {
			return d[1 : end+1]
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
