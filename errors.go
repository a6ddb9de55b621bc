package ticketbranch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBranchCreationFailed indicates git could not query, create, or check
// out the branch for a reason other than it already existing.
var ErrBranchCreationFailed = errors.New("branch creation failed")

// ErrInvalidOnExists indicates an unknown on-exists policy.
var ErrInvalidOnExists = errors.New("invalid on-exists policy")

// OnExists decides what Create does when the branch is already present.
type OnExists string

// On-exists policies.
const (
	// OnExistsReuse checks out the existing branch.
	OnExistsReuse OnExists = "reuse"

	// OnExistsAbort fails with git.ErrBranchExists.
	OnExistsAbort OnExists = "abort"

	// OnExistsPrompt asks CreateOptions.Confirm; without one it aborts.
	OnExistsPrompt OnExists = "prompt"
)

// ParseOnExists parses a policy name. Empty selects OnExistsPrompt.
func ParseOnExists(s string) (OnExists, error) {
	switch p := OnExists(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return OnExistsPrompt, nil
	case OnExistsReuse, OnExistsAbort, OnExistsPrompt:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want reuse, abort, or prompt)", ErrInvalidOnExists, s)
	}
}
