// Package errors turns failures from a branch run into messages a user can
// act on.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Wrap recognizes the sentinels of the branchname, jira, git, and http
// packages and picks a message for each. Unrecognized errors pass through.
//
//	if err := run(); err != nil {
//	    err = errors.Wrap(err, errors.WithServerURL(cfg.BaseURL))
//	    fmt.Fprintln(os.Stderr, "Error:", err)
//	    os.Exit(errors.ExitCode(err))
//	}
package errors
