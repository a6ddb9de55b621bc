package jira

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	tbhttp "github.com/randalmurphal/ticketbranch/http"
)

// apiPrefix is the REST API root. v2 is served by Cloud and Server alike and
// returns summary as plain text.
const apiPrefix = "/rest/api/2"

// Client provides access to the Jira REST API.
type Client struct {
	cfg         *Config
	api         *tbhttp.Client
	httpClient  *http.Client
	userAgent   string
	sprintField string
	logger      *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. For oauth2 auth the client's
// transport is wrapped with the token source.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new Jira client. It fails with an error wrapping
// ErrConfigurationMissing when the URL or credentials are absent.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigURLRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		sprintField: cfg.sprintField(),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = tbhttp.NewPooledClient(cfg.HTTP.Timeout)
	}

	var beforeRequest func(*http.Request)
	switch cfg.authType() {
	case AuthOAuth2:
		c.httpClient = oauth2HTTPClient(c.httpClient, cfg.Auth.AccessToken)
	default:
		beforeRequest = c.setAuth
	}

	c.api = tbhttp.NewClient(tbhttp.ClientConfig{
		Client:        c.httpClient,
		BaseURL:       cfg.BaseURL(),
		ServiceName:   "jira",
		UserAgent:     c.userAgent,
		BeforeRequest: beforeRequest,
	})

	return c, nil
}

// oauth2HTTPClient wraps base so every request carries the access token.
func oauth2HTTPClient(base *http.Client, accessToken string) *http.Client {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = base.Timeout
	return client
}

// setAuth sets the authentication header based on config.
func (c *Client) setAuth(req *http.Request) {
	switch c.cfg.authType() {
	case AuthAPIToken:
		// Cloud: email:api_token
		req.SetBasicAuth(c.cfg.Auth.Email, c.cfg.Auth.Token)
	case AuthBasic:
		// Server: username:password
		req.SetBasicAuth(c.cfg.Auth.Username, c.cfg.Auth.Password)
	case AuthPAT:
		// Data Center: Bearer token
		req.Header.Set("Authorization", "Bearer "+c.cfg.Auth.Token)
	}
}

// BaseURL returns the Jira base URL without trailing slashes.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL()
}

// SprintField returns the custom field read for sprints.
func (c *Client) SprintField() string {
	return c.sprintField
}

// GetIssue retrieves an issue by key, requesting only the summary, status,
// issue type, and sprint fields.
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	if !ValidateIssueKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrIssueKeyInvalid, key)
	}

	query := url.Values{}
	query.Set("fields", "summary,status,issuetype,"+c.sprintField)

	var issue Issue
	err := c.api.Get(ctx, apiPrefix+"/issue/"+url.PathEscape(key), query, &issue)
	if err != nil {
		if tbhttp.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, &TransportError{Op: "get issue", Key: key, Err: err}
	}

	return &issue, nil
}

// FetchTicket retrieves the key, summary, and current sprint name of an issue.
// An unreadable sprint field is logged and treated as "no sprint".
func (c *Client) FetchTicket(ctx context.Context, key string) (*Ticket, error) {
	issue, err := c.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	ticket := &Ticket{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
	}
	if ticket.Key == "" {
		ticket.Key = key
	}

	sprints, sprintErr := issue.Fields.Sprints(c.sprintField)
	if sprintErr != nil {
		c.logger.WarnContext(ctx, "ignoring unreadable sprint field",
			"key", key, "field", c.sprintField, "error", sprintErr)
	}
	if sprint, ok := CurrentSprint(sprints); ok {
		ticket.SprintName = sprint.Name
	}

	c.logger.DebugContext(ctx, "fetched jira ticket",
		"key", ticket.Key,
		"sprint", ticket.SprintName,
		"sprints", len(sprints),
	)

	return ticket, nil
}

// Ping fetches server information. The endpoint allows anonymous
// access, so success says nothing about the credentials.
func (c *Client) Ping(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.api.Get(ctx, apiPrefix+"/serverInfo", nil, &info); err != nil {
		return nil, &TransportError{Op: "get server info", Err: err}
	}
	return &info, nil
}

// Myself returns the user the credentials belong to.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var user User
	if err := c.api.Get(ctx, apiPrefix+"/myself", nil, &user); err != nil {
		return nil, &TransportError{Op: "get current user", Err: err}
	}
	return &user, nil
}

// IsUnauthorized reports whether the error indicates Jira rejected the credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, tbhttp.ErrUnauthorized) || errors.Is(err, tbhttp.ErrForbidden)
}
