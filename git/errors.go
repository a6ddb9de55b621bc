package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidBranchName indicates git rejects the name as a branch name.
	ErrInvalidBranchName = errors.New("invalid branch name")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "checkout", "create branch")
	Cmd    string // Git command that was run
	Output string // stderr output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	if e.Err == nil {
		return e.Op + ": failed"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds an *Error from a runner failure.
func newError(op string, args []string, err error) *Error {
	gerr := &Error{Op: op, Cmd: commandKey("git", args), Err: err}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		gerr.Output = cmdErr.Output
	}
	return gerr
}
