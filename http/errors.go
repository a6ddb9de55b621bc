package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinels an *APIError unwraps to, keyed off its status code.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("authentication failed")
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("resource not found")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrServerError     = errors.New("server error")
	ErrInvalidResponse = errors.New("malformed response")
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:      ErrBadRequest,
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusForbidden:       ErrForbidden,
	http.StatusNotFound:        ErrNotFound,
	http.StatusTooManyRequests: ErrRateLimited,
}

// APIError is a non-2xx answer from a REST endpoint.
type APIError struct {
	Service    string // "jira"
	StatusCode int
	Message    string
	Endpoint   string
	// RequestID echoes the server's request id header, when it sent one.
	RequestID string
}

func (e *APIError) Error() string {
	where := e.Endpoint
	if e.RequestID != "" {
		where += " [" + e.RequestID + "]"
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s", e.Service, e.StatusCode, where, e.Message)
}

// Unwrap maps the status code to one of the package sentinels, or nil for
// codes without one.
func (e *APIError) Unwrap() error {
	if err, ok := statusSentinels[e.StatusCode]; ok {
		return err
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return ErrServerError
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether another attempt could succeed. Rate limits,
// 5xx answers, deadlines and network errors qualify.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrServerError):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
