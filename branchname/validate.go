package branchname

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidTicketReference indicates input that is not of the form PROJECT-123.
var ErrInvalidTicketReference = errors.New("invalid ticket format")

// ticketRefRegex matches uppercase project letters, a dash, and a decimal run.
var ticketRefRegex = regexp.MustCompile(`^[A-Z]+-[0-9]+$`)

// IsValidTicketReference reports whether s is a ticket reference such as
// WAR-7974. Lowercase input is rejected, not normalized.
func IsValidTicketReference(s string) bool {
	return ticketRefRegex.MatchString(s)
}

// ValidateTicketReference returns an error wrapping ErrInvalidTicketReference
// when s is not a valid ticket reference.
func ValidateTicketReference(s string) error {
	if s == "" {
		return fmt.Errorf("%w: ticket id is empty", ErrInvalidTicketReference)
	}
	if !IsValidTicketReference(s) {
		return fmt.Errorf("%w: %q (expected PROJECT-123)", ErrInvalidTicketReference, s)
	}
	return nil
}
