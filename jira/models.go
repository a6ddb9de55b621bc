package jira

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ServerInfo represents the response from /rest/api/2/serverInfo.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	DeploymentType string `json:"deploymentType"` // "Cloud", "Server", "DataCenter"
	ServerTitle    string `json:"serverTitle"`
}

// User represents a Jira user.
type User struct {
	AccountID    string `json:"accountId,omitempty"` // Cloud
	Name         string `json:"name,omitempty"`      // Server (username)
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName"`
	Active       bool   `json:"active"`
}

// Status represents an issue status.
type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueType represents an issue type in Jira.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// Issue represents a Jira issue.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the fields of a Jira issue requested by the client.
type IssueFields struct {
	Summary   string     `json:"summary"`
	Status    *Status    `json:"status,omitempty"`
	IssueType *IssueType `json:"issuetype,omitempty"`

	// Custom fields are stored here with their field IDs as keys,
	// e.g. "customfield_10020" for sprints on Cloud.
	CustomFields map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps every customfield_* value.
func (f *IssueFields) UnmarshalJSON(data []byte) error {
	type known IssueFields
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*f = IssueFields(k)
	for name, raw := range all {
		if !strings.HasPrefix(name, "customfield_") {
			continue
		}
		if f.CustomFields == nil {
			f.CustomFields = make(map[string]json.RawMessage)
		}
		f.CustomFields[name] = raw
	}
	return nil
}

// Ticket is the subset of an issue needed to name a branch.
type Ticket struct {
	Key        string
	Summary    string
	SprintName string // empty when the issue is not in a sprint
}

// issueKeyRegex validates Jira issue keys (e.g., PROJ-123). Jira allows
// digits after the first letter of a project key.
var issueKeyRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-\d+$`)

// ValidateIssueKey validates a Jira issue key format.
func ValidateIssueKey(key string) bool {
	return issueKeyRegex.MatchString(key)
}
