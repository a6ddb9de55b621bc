// Package jira fetches the ticket metadata needed to name a branch: the
// issue key, its summary, and the sprint it is planned into.
//
// # Authentication
//
// The client supports:
//   - API Token (Cloud): email + API token, sent as Basic auth
//   - Personal Access Token (Server/DC): Bearer token
//   - Basic Auth (legacy Server): username + password
//   - OAuth 2.0 (Cloud): an access token obtained elsewhere
//
// # Usage
//
//	cfg := jira.DefaultConfig()
//	cfg.URL = "https://your-domain.atlassian.net"
//	cfg.Auth.Email = "you@example.com"
//	cfg.Auth.Token = "your-api-token"
//
//	client, err := jira.NewClient(cfg)
//	if err != nil {
//		return err // wraps jira.ErrConfigurationMissing when credentials are absent
//	}
//
//	ticket, err := client.FetchTicket(ctx, "WAR-7974")
//
// # Error Handling
//
// FetchTicket returns ErrIssueNotFound for a missing ticket and a
// *TransportError for everything else. TransportError unwraps to the
// ticketbranch/http sentinels, so errors.Is(err, http.ErrUnauthorized) works.
// The client never retries; callers decide.
package jira
