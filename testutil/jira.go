// Package testutil provides utilities for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeIssue is an issue served by FakeJira.
type FakeIssue struct {
	Summary string

	// Sprint is the sprint name; empty serves a null sprint field.
	Sprint string

	// SprintState defaults to "active".
	SprintState string
}

// FakeJira is an httptest server that answers the Jira REST endpoints the
// client uses: issue, serverInfo, and myself.
type FakeJira struct {
	Server *httptest.Server

	// SprintField is the custom field that carries sprints.
	SprintField string

	// Status, when non-zero, is returned for every request.
	Status int

	mu       sync.Mutex
	issues   map[string]FakeIssue
	requests []*http.Request
}

// NewFakeJira starts a FakeJira that is closed when the test ends.
func NewFakeJira(t *testing.T) *FakeJira {
	t.Helper()

	f := &FakeJira{
		SprintField: "customfield_10020",
		issues:      make(map[string]FakeIssue),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server's base URL.
func (f *FakeJira) URL() string {
	return f.Server.URL
}

// AddIssue registers an issue under key.
func (f *FakeJira) AddIssue(key string, issue FakeIssue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[key] = issue
}

// Requests returns the paths requested so far.
func (f *FakeJira) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	paths := make([]string, len(f.requests))
	for i, r := range f.requests {
		paths[i] = r.URL.Path
	}
	return paths
}

// LastAuthorization returns the Authorization header of the latest request.
func (f *FakeJira) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.requests) == 0 {
		return ""
	}
	return f.requests[len(f.requests)-1].Header.Get("Authorization")
}

func (f *FakeJira) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(r.Context()))
	status := f.Status
	f.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]any{"errorMessages": []string{http.StatusText(status)}})
		return
	}

	switch {
	case r.URL.Path == "/rest/api/2/serverInfo":
		writeJSON(w, http.StatusOK, map[string]any{
			"baseUrl":        f.Server.URL,
			"version":        "1001.0.0",
			"deploymentType": "Cloud",
			"serverTitle":    "Fake Jira",
		})
	case r.URL.Path == "/rest/api/2/myself":
		writeJSON(w, http.StatusOK, map[string]any{
			"accountId":    "abc123",
			"displayName":  "Test User",
			"emailAddress": "test@test.com",
			"active":       true,
		})
	case strings.HasPrefix(r.URL.Path, "/rest/api/2/issue/"):
		f.serveIssue(w, strings.TrimPrefix(r.URL.Path, "/rest/api/2/issue/"))
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeJira) serveIssue(w http.ResponseWriter, key string) {
	f.mu.Lock()
	issue, ok := f.issues[key]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"errorMessages": []string{"Issue does not exist or you do not have permission to see it."},
		})
		return
	}

	var sprints any
	if issue.Sprint != "" {
		state := issue.SprintState
		if state == "" {
			state = "active"
		}
		sprints = []map[string]any{{"id": 1, "name": issue.Sprint, "state": state}}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":  "10001",
		"key": key,
		"fields": map[string]any{
			"summary":     issue.Summary,
			f.SprintField: sprints,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
