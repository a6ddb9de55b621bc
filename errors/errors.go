package errors

import "errors"

// Categories for failures the user can act on. CLIError.Err wraps one of
// these alongside the original error when the category is known.
var (
	// ErrInvalidInput indicates a malformed ticket ID or flag value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates the Jira URL or credentials are missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrNotAuthenticated indicates Jira rejected the credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotInGitRepo indicates the command requires a git repository.
	ErrNotInGitRepo = errors.New("not in a git repository")

	// ErrConnectionFailed indicates the server is unreachable.
	ErrConnectionFailed = errors.New("connection failed")
)
