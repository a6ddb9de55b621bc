package errors

import (
	"errors"
	"strings"

	tbhttp "github.com/randalmurphal/ticketbranch/http"
	"github.com/randalmurphal/ticketbranch/jira"
)

// IsAuthError reports whether Jira rejected the credentials: a 401, the
// ErrNotAuthenticated category, or a wrapped message that says so.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, tbhttp.ErrUnauthorized) {
		return true
	}
	return mentions(err, "unauthenticated", "unauthorized")
}

// IsPermissionError reports a 403 or the ErrPermissionDenied category.
func IsPermissionError(err error) bool {
	if errors.Is(err, ErrPermissionDenied) || errors.Is(err, tbhttp.ErrForbidden) {
		return true
	}
	return mentions(err, "forbidden")
}

// IsConfigError reports missing or unusable Jira settings.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNotConfigured) || jira.IsConfigurationMissing(err) ||
		errors.Is(err, jira.ErrConfigInvalid)
}

// mentions matches err's text case-insensitively against any of words.
func mentions(err error, words ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
