package branchname

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fallback values used when the configured prefix is missing a segment.
const (
	DefaultFiscalYear   = "fy25"
	DefaultSprintNumber = "00"

	// DefaultBranchPrefix is used when no branch prefix is configured.
	DefaultBranchPrefix = "fy25/great-merge"
)

var (
	// yearRegex finds a standalone year in the 2000s.
	yearRegex = regexp.MustCompile(`\b(20\d{2})\b`)

	// sprintRegex finds "Sprint <n>" in any case.
	sprintRegex = regexp.MustCompile(`(?i)\bSprint\s+(\d+)\b`)

	prefixRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+/[A-Za-z0-9_-]+$`)
)

// ErrInvalidPrefix indicates a branch prefix that is not two segments of
// letters, digits, underscores, or hyphens.
var ErrInvalidPrefix = errors.New("invalid branch prefix")

// ValidatePrefix checks a configured "<fiscal-year>/<sprint>" prefix. Both
// segments end up verbatim in branch names.
func ValidatePrefix(s string) error {
	if !prefixRegex.MatchString(s) {
		return fmt.Errorf("%w %q: want <fiscal-year>/<sprint> using [A-Za-z0-9_-], e.g. fy25/great-merge", ErrInvalidPrefix, s)
	}
	return nil
}

// Prefix is the configured fallback for the first two branch segments.
type Prefix struct {
	FiscalYear   string
	SprintNumber string
}

// ParsePrefix parses a "<fiscal-year>/<sprint>" string such as "fy25/00".
// An empty string parses DefaultBranchPrefix; missing or empty segments fall
// back to DefaultFiscalYear and DefaultSprintNumber.
func ParsePrefix(s string) Prefix {
	if strings.TrimSpace(s) == "" {
		s = DefaultBranchPrefix
	}

	parts := strings.Split(s, "/")
	p := Prefix{
		FiscalYear:   DefaultFiscalYear,
		SprintNumber: DefaultSprintNumber,
	}
	if v := strings.TrimSpace(parts[0]); v != "" {
		p.FiscalYear = v
	}
	if len(parts) > 1 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			p.SprintNumber = v
		}
	}
	return p
}

// String returns the prefix in "<fiscal-year>/<sprint>" form.
func (p Prefix) String() string {
	return p.FiscalYear + "/" + p.SprintNumber
}

// SprintInfo holds the fiscal year and sprint tokens for a branch.
type SprintInfo struct {
	FiscalYear   string // e.g. "fy25"
	SprintNumber string // "07", "123", or an opaque fallback like "great-merge"
}

// IsNumeric reports whether the sprint number parses as a base-10 integer.
func (s SprintInfo) IsNumeric() bool {
	_, err := strconv.Atoi(s.SprintNumber)
	return err == nil
}

// Segment returns the branch segment for the sprint: "sprint<NN>" when the
// sprint number is numeric, otherwise the raw token.
func (s SprintInfo) Segment() string {
	if s.IsNumeric() {
		return "sprint" + s.SprintNumber
	}
	return s.SprintNumber
}

// ExtractSprintInfo pulls the fiscal year and sprint number out of a sprint
// label, starting from the values in prefix. Only the first year and the first
// sprint number in the label are used.
//
// Example: "WAR 2025 - Q2 Sprint 7" -> {FiscalYear: "fy25", SprintNumber: "07"}
func ExtractSprintInfo(label string, prefix Prefix) SprintInfo {
	info := SprintInfo{
		FiscalYear:   prefix.FiscalYear,
		SprintNumber: prefix.SprintNumber,
	}
	if info.FiscalYear == "" {
		info.FiscalYear = DefaultFiscalYear
	}
	if info.SprintNumber == "" {
		info.SprintNumber = DefaultSprintNumber
	}

	if label == "" {
		return info
	}

	if m := yearRegex.FindStringSubmatch(label); m != nil {
		info.FiscalYear = "fy" + m[1][2:]
	}

	if m := sprintRegex.FindStringSubmatch(label); m != nil {
		info.SprintNumber = formatSprintNumber(m[1])
	}

	return info
}

// formatSprintNumber zero-pads numbers below 10 to two digits and otherwise
// returns the natural decimal form ("007" -> "07", "123" -> "123").
func formatSprintNumber(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Too large for int; keep the digits without leading zeros.
		trimmed := strings.TrimLeft(digits, "0")
		if trimmed == "" {
			return "00"
		}
		return trimmed
	}
	return fmt.Sprintf("%02d", n)
}
