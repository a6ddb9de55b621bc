package jira

import (
	"net/url"
	"strings"
	"time"
)

// AuthType represents the type of authentication to use.
type AuthType string

// Authentication types supported by the Jira client.
const (
	AuthAPIToken AuthType = "api_token" // Cloud: email + API token
	AuthOAuth2   AuthType = "oauth2"    // Cloud: OAuth 2.0 access token
	AuthBasic    AuthType = "basic"     // Server: username + password
	AuthPAT      AuthType = "pat"       // Server/DC: Personal Access Token
)

// DefaultSprintField is the custom field Jira Cloud uses for sprints.
const DefaultSprintField = "customfield_10020"

// Config holds the configuration for the Jira client.
type Config struct {
	// URL is the base URL of the Jira instance.
	// For Cloud: https://your-domain.atlassian.net
	// For Server: https://jira.your-company.com
	URL string

	// Auth contains authentication configuration.
	Auth AuthConfig

	// SprintField is the custom field holding the issue's sprints.
	SprintField string

	// HTTP contains HTTP client configuration.
	HTTP HTTPConfig
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// Type is the authentication method to use. Empty means api_token.
	Type AuthType

	// Email is required for api_token auth (Cloud).
	Email string

	// Token is the API token (Cloud) or PAT (Server/DC).
	Token string

	// Username is required for basic auth.
	Username string

	// Password is required for basic auth.
	Password string

	// AccessToken is required for oauth2 auth.
	AccessToken string
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the request timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Auth:        AuthConfig{Type: AuthAPIToken},
		SprintField: DefaultSprintField,
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate validates the configuration. Missing values produce errors
// wrapping ErrConfigurationMissing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return ErrConfigURLRequired
	}

	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigURLInvalid
	}

	switch c.authType() {
	case AuthAPIToken:
		if c.Auth.Email == "" || c.Auth.Token == "" {
			return ErrConfigAPITokenAuth
		}
	case AuthBasic:
		if c.Auth.Username == "" || c.Auth.Password == "" {
			return ErrConfigBasicAuth
		}
	case AuthPAT:
		if c.Auth.Token == "" {
			return ErrConfigPATAuth
		}
	case AuthOAuth2:
		if c.Auth.AccessToken == "" {
			return ErrConfigOAuth2Auth
		}
	default:
		return ErrConfigAuthTypeInvalid
	}

	return nil
}

// BaseURL returns the URL without trailing slashes.
func (c *Config) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.URL), "/")
}

func (c *Config) authType() AuthType {
	if c.Auth.Type == "" {
		return AuthAPIToken
	}
	return c.Auth.Type
}

func (c *Config) sprintField() string {
	if c.SprintField == "" {
		return DefaultSprintField
	}
	return c.SprintField
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
