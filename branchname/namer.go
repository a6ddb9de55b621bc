package branchname

import "strings"

// DefaultPlaceholder replaces an empty summary slug.
const DefaultPlaceholder = "untitled"

// Config holds the inputs a Namer needs besides the ticket itself.
type Config struct {
	// Prefix supplies the fiscal year and sprint number when the sprint
	// label does not contain them.
	Prefix Prefix

	// Placeholder is used as the last segment when the summary slugifies to
	// nothing. It is slugified itself. Empty keeps the trailing empty
	// segment ("fy25/00/ABC-1/").
	Placeholder string
}

// DefaultConfig returns a Config with DefaultBranchPrefix and DefaultPlaceholder.
func DefaultConfig() Config {
	return Config{
		Prefix:      ParsePrefix(DefaultBranchPrefix),
		Placeholder: DefaultPlaceholder,
	}
}

// Namer composes branch names for tickets.
type Namer struct {
	cfg Config
}

// NewNamer creates a Namer. Empty prefix segments fall back to the defaults.
func NewNamer(cfg Config) *Namer {
	cfg.Placeholder = Slugify(cfg.Placeholder)
	if cfg.Prefix.FiscalYear == "" {
		cfg.Prefix.FiscalYear = DefaultFiscalYear
	}
	if cfg.Prefix.SprintNumber == "" {
		cfg.Prefix.SprintNumber = DefaultSprintNumber
	}
	return &Namer{cfg: cfg}
}

// Config returns the namer's configuration.
func (n *Namer) Config() Config {
	return n.cfg
}

// Sprint extracts the sprint info for a label using the namer's prefix.
func (n *Namer) Sprint(sprintLabel string) SprintInfo {
	return ExtractSprintInfo(sprintLabel, n.cfg.Prefix)
}

// ForTicket composes the branch name for a ticket.
// Example: "war-7974", "Fix login bug", "MAV 2025 - Sprint 8" -> "fy25/sprint08/WAR-7974/fix-login-bug"
func (n *Namer) ForTicket(ticketKey, summary, sprintLabel string) string {
	info := n.Sprint(sprintLabel)

	slug := Slugify(summary)
	if slug == "" {
		slug = n.cfg.Placeholder
	}

	return strings.Join([]string{
		info.FiscalYear,
		info.Segment(),
		strings.ToUpper(ticketKey),
		slug,
	}, "/")
}

// CreateBranchName composes a branch name without constructing a Namer.
func CreateBranchName(ticketKey, summary, sprintLabel string, cfg Config) string {
	return NewNamer(cfg).ForTicket(ticketKey, summary, sprintLabel)
}

// ParseBranch splits a composed branch name back into its parts. It returns
// ok=false when name does not have four segments with a valid ticket key in
// the third position.
func ParseBranch(name string) (info SprintInfo, ticketKey, slug string, ok bool) {
	name = strings.TrimPrefix(name, "refs/heads/")

	parts := strings.SplitN(name, "/", 4)
	if len(parts) != 4 || !IsValidTicketReference(parts[2]) {
		return SprintInfo{}, "", "", false
	}

	sprint := parts[1]
	if rest, found := strings.CutPrefix(sprint, "sprint"); found {
		probe := SprintInfo{SprintNumber: rest}
		if probe.IsNumeric() {
			sprint = rest
		}
	}

	return SprintInfo{FiscalYear: parts[0], SprintNumber: sprint}, parts[2], parts[3], true
}
