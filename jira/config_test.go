package jira

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Auth.Type != AuthAPIToken {
		t.Errorf("Auth.Type = %v, want %v", cfg.Auth.Type, AuthAPIToken)
	}
	if cfg.SprintField != DefaultSprintField {
		t.Errorf("SprintField = %q, want %q", cfg.SprintField, DefaultSprintField)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("HTTP.Timeout = %v, want %v", cfg.HTTP.Timeout, 30*time.Second)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid api_token config",
			config: Config{
				URL:  "https://example.atlassian.net",
				Auth: AuthConfig{Type: AuthAPIToken, Email: "user@example.com", Token: "api-token"},
			},
		},
		{
			name: "empty auth type defaults to api_token",
			config: Config{
				URL:  "https://example.atlassian.net",
				Auth: AuthConfig{Email: "user@example.com", Token: "api-token"},
			},
		},
		{
			name: "valid basic auth config",
			config: Config{
				URL:  "https://jira.example.com",
				Auth: AuthConfig{Type: AuthBasic, Username: "admin", Password: "secret"},
			},
		},
		{
			name: "valid PAT config",
			config: Config{
				URL:  "https://jira.example.com",
				Auth: AuthConfig{Type: AuthPAT, Token: "pat"},
			},
		},
		{
			name: "valid oauth2 config",
			config: Config{
				URL:  "https://example.atlassian.net",
				Auth: AuthConfig{Type: AuthOAuth2, AccessToken: "access"},
			},
		},
		{
			name:    "missing URL",
			config:  Config{Auth: AuthConfig{Email: "user@example.com", Token: "t"}},
			wantErr: ErrConfigURLRequired,
		},
		{
			name:    "whitespace URL",
			config:  Config{URL: "   ", Auth: AuthConfig{Email: "user@example.com", Token: "t"}},
			wantErr: ErrConfigURLRequired,
		},
		{
			name:    "URL without scheme",
			config:  Config{URL: "example.atlassian.net", Auth: AuthConfig{Email: "user@example.com", Token: "t"}},
			wantErr: ErrConfigURLInvalid,
		},
		{
			name:    "api_token missing email",
			config:  Config{URL: "https://example.atlassian.net", Auth: AuthConfig{Token: "t"}},
			wantErr: ErrConfigAPITokenAuth,
		},
		{
			name:    "api_token missing token",
			config:  Config{URL: "https://example.atlassian.net", Auth: AuthConfig{Email: "user@example.com"}},
			wantErr: ErrConfigAPITokenAuth,
		},
		{
			name:    "basic missing password",
			config:  Config{URL: "https://jira.example.com", Auth: AuthConfig{Type: AuthBasic, Username: "admin"}},
			wantErr: ErrConfigBasicAuth,
		},
		{
			name:    "pat missing token",
			config:  Config{URL: "https://jira.example.com", Auth: AuthConfig{Type: AuthPAT}},
			wantErr: ErrConfigPATAuth,
		},
		{
			name:    "oauth2 missing access token",
			config:  Config{URL: "https://jira.example.com", Auth: AuthConfig{Type: AuthOAuth2}},
			wantErr: ErrConfigOAuth2Auth,
		},
		{
			name:    "unknown auth type",
			config:  Config{URL: "https://jira.example.com", Auth: AuthConfig{Type: "kerberos"}},
			wantErr: ErrConfigAuthTypeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate_MissingWrapsSentinel(t *testing.T) {
	missing := []Config{
		{},
		{URL: "https://example.atlassian.net"},
		{URL: "https://jira.example.com", Auth: AuthConfig{Type: AuthBasic}},
	}
	for _, cfg := range missing {
		err := cfg.Validate()
		if !IsConfigurationMissing(err) {
			t.Errorf("Validate(%+v) = %v, want ErrConfigurationMissing", cfg, err)
		}
	}

	bad := Config{URL: "ftp://example.com", Auth: AuthConfig{Email: "a", Token: "b"}}
	if err := bad.Validate(); IsConfigurationMissing(err) || !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("Validate(ftp) = %v, want ErrConfigInvalid", err)
	}
}

func TestConfigBaseURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.atlassian.net", "https://example.atlassian.net"},
		{"https://example.atlassian.net/", "https://example.atlassian.net"},
		{"https://example.atlassian.net///", "https://example.atlassian.net"},
		{" https://jira.example.com/jira/ ", "https://jira.example.com/jira"},
	}

	for _, tt := range tests {
		cfg := &Config{URL: tt.url}
		if got := cfg.BaseURL(); got != tt.want {
			t.Errorf("BaseURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "https://example.atlassian.net"

	clone := cfg.Clone()
	clone.URL = "https://other.atlassian.net"
	clone.Auth.Token = "changed"

	if cfg.URL != "https://example.atlassian.net" {
		t.Errorf("original URL changed to %q", cfg.URL)
	}
	if cfg.Auth.Token != "" {
		t.Errorf("original token changed to %q", cfg.Auth.Token)
	}

	var nilCfg *Config
	if nilCfg.Clone() != nil {
		t.Error("Clone() of nil config should be nil")
	}
}

func TestConfigSprintFieldDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.sprintField(); got != DefaultSprintField {
		t.Errorf("sprintField() = %q, want %q", got, DefaultSprintField)
	}
	cfg.SprintField = "customfield_10104"
	if got := cfg.sprintField(); got != "customfield_10104" {
		t.Errorf("sprintField() = %q, want customfield_10104", got)
	}
}
