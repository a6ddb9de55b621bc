package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client performs JSON requests against a single API base URL.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
	userAgent   string

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	// Client is the underlying HTTP client. Defaults to a pooled
	// go-cleanhttp client with Timeout.
	Client *http.Client

	// BaseURL is prepended to every request path.
	BaseURL string

	// ServiceName names the API in errors (e.g. "jira").
	ServiceName string

	// UserAgent is sent with every request when set.
	UserAgent string

	// Timeout applies when Client is nil. Defaults to DefaultTimeout.
	Timeout time.Duration

	// BeforeRequest may mutate each request before it is sent.
	BeforeRequest func(req *http.Request)
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		baseURL:       cfg.BaseURL,
		serviceName:   cfg.ServiceName,
		userAgent:     cfg.UserAgent,
		beforeRequest: cfg.BeforeRequest,
	}

	if c.client == nil {
		c.client = NewPooledClient(cfg.Timeout)
	}
	if c.serviceName == "" {
		c.serviceName = "api"
	}

	return c
}

// NewPooledClient returns a go-cleanhttp pooled client with the given
// timeout (DefaultTimeout when zero).
func NewPooledClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the JSON response into result.
// A nil result discards the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return c.handleResponse(resp, path, result)
}

// do sends a single request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// Apply auth headers via callback
	if c.beforeRequest != nil {
		c.beforeRequest(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}
	return resp, nil
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if resp.StatusCode >= 400 {
		return c.parseError(resp, path)
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w: %w", c.serviceName, ErrInvalidResponse, err)
	}

	return nil
}

// parseError parses an error response into an APIError.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  requestID(resp.Header),
	}

	// Jira reports {"errorMessages": [...], "errors": {...}}; other APIs
	// use "message" or "error".
	var errResp struct {
		Message       string            `json:"message"`
		Error         string            `json:"error"`
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case len(errResp.ErrorMessages) > 0:
			apiErr.Message = errResp.ErrorMessages[0]
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		default:
			for field, msg := range errResp.Errors {
				apiErr.Message = field + ": " + msg
				break
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// requestID returns Atlassian's X-AREQUESTID, or the generic X-Request-Id.
func requestID(h http.Header) string {
	if id := h.Get("X-AREQUESTID"); id != "" {
		return id
	}
	return h.Get("X-Request-Id")
}
