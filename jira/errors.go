package jira

import (
	"errors"
	"fmt"
)

// ErrConfigurationMissing indicates the tracker URL or credentials are absent.
var ErrConfigurationMissing = errors.New("jira configuration is incomplete")

// ErrConfigInvalid indicates a configuration value that cannot be used.
var ErrConfigInvalid = errors.New("jira configuration is invalid")

// Configuration errors.
var (
	ErrConfigURLRequired     = fmt.Errorf("%w: base_url is required", ErrConfigurationMissing)
	ErrConfigAPITokenAuth    = fmt.Errorf("%w: api_token auth requires email and api_token", ErrConfigurationMissing)
	ErrConfigBasicAuth       = fmt.Errorf("%w: basic auth requires username and password", ErrConfigurationMissing)
	ErrConfigPATAuth         = fmt.Errorf("%w: pat auth requires api_token", ErrConfigurationMissing)
	ErrConfigOAuth2Auth      = fmt.Errorf("%w: oauth2 auth requires an access token", ErrConfigurationMissing)
	ErrConfigURLInvalid      = fmt.Errorf("%w: base_url must be an http(s) URL", ErrConfigInvalid)
	ErrConfigAuthTypeInvalid = fmt.Errorf("%w: auth_type must be api_token, oauth2, basic, or pat", ErrConfigInvalid)
)

// Issue errors.
var (
	ErrIssueNotFound   = errors.New("jira issue not found")
	ErrIssueKeyInvalid = errors.New("invalid issue key format")
)

// TransportError wraps any failure talking to Jira other than a missing
// issue: network errors, rejected credentials, server errors, and responses
// that cannot be decoded.
type TransportError struct {
	Op  string // Operation that failed (e.g., "get issue")
	Key string // Issue key, if any
	Err error  // Underlying error
}

func (e *TransportError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("jira %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("jira %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the error indicates the issue does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrIssueNotFound)
}

// IsConfigurationMissing reports whether the client could not be built
// because URL or credentials are absent.
func IsConfigurationMissing(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

// IsTransport reports whether the error is a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
