package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sprint is one entry of the sprint custom field.
type Sprint struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"` // "active", "closed", "future"
	BoardID int    `json:"boardId,omitempty"`
	Goal    string `json:"goal,omitempty"`
}

// IsActive reports whether the sprint is the currently running one.
func (s Sprint) IsActive() bool {
	return strings.EqualFold(s.State, "active")
}

// Sprints decodes the sprint custom field. It accepts the Cloud shape (an
// array of objects), the legacy Server shape (an array of Greenhopper
// strings), and null or absent values (no sprints).
func (f *IssueFields) Sprints(field string) ([]Sprint, error) {
	raw, ok := f.CustomFields[field]
	if !ok {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("sprint field %s is not an array: %w", field, err)
	}

	sprints := make([]Sprint, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}

		switch item[0] {
		case '{':
			var s Sprint
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, fmt.Errorf("decode sprint %d: %w", i, err)
			}
			sprints = append(sprints, s)
		case '"':
			var legacy string
			if err := json.Unmarshal(item, &legacy); err != nil {
				return nil, fmt.Errorf("decode sprint %d: %w", i, err)
			}
			sprints = append(sprints, parseLegacySprint(legacy))
		default:
			return nil, fmt.Errorf("decode sprint %d: unexpected value %s", i, item)
		}
	}
	return sprints, nil
}

// CurrentSprint picks the sprint to name a branch after: the active one if
// any, otherwise the first listed.
func CurrentSprint(sprints []Sprint) (Sprint, bool) {
	for _, s := range sprints {
		if s.IsActive() {
			return s, true
		}
	}
	if len(sprints) > 0 {
		return sprints[0], true
	}
	return Sprint{}, false
}

// legacySprintKey matches the attribute names Greenhopper writes, so commas
// inside sprint names are not treated as separators.
var legacySprintKey = regexp.MustCompile(
	`(?:\[|,)(id|rapidViewId|state|name|goal|startDate|endDate|completeDate|activatedDate|sequence|synced|autoStartStop|incompleteIssuesDestinationId)=`,
)

// parseLegacySprint parses the Server format:
//
//	com.atlassian.greenhopper.service.sprint.Sprint@1a2b[id=7,rapidViewId=2,state=ACTIVE,name=WAR Sprint 7,...]
func parseLegacySprint(s string) Sprint {
	body := s
	if i := strings.Index(body, "["); i >= 0 {
		body = body[i:]
	}
	body = strings.TrimSuffix(body, "]")

	attrs := make(map[string]string)
	matches := legacySprintKey.FindAllStringSubmatchIndex(body, -1)
	for i, m := range matches {
		key := body[m[2]:m[3]]
		end := len(body)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		value := body[m[1]:end]
		if value == "<null>" {
			value = ""
		}
		attrs[key] = value
	}

	sprint := Sprint{
		Name:  attrs["name"],
		State: strings.ToLower(attrs["state"]),
		Goal:  attrs["goal"],
	}
	sprint.ID, _ = strconv.Atoi(attrs["id"])
	sprint.BoardID, _ = strconv.Atoi(attrs["rapidViewId"])
	return sprint
}
