package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/jira"
)

// Settings is the typed view of a resolved configuration, read once per
// invocation.
type Settings struct {
	BaseURL     string
	AuthType    jira.AuthType
	Email       string
	APIToken    string
	Username    string
	Password    string
	AccessToken string

	BranchPrefix string
	SprintField  string
	EmptySummary string
	OnExists     string
	Timeout      time.Duration
	NoColor      bool
}

// Load converts resolved values into Settings. Malformed values are
// reported together.
func Load(r *Resolved) (Settings, error) {
	s := Settings{
		BaseURL:      strings.TrimSpace(r.Get(KeyBaseURL)),
		AuthType:     jira.AuthType(r.Get(KeyAuthType)),
		Email:        r.Get(KeyEmail),
		APIToken:     r.Get(KeyAPIToken),
		Username:     r.Get(KeyUsername),
		Password:     r.Get(KeyPassword),
		AccessToken:  r.Get(KeyAccessToken),
		BranchPrefix: r.Get(KeyBranchPrefix),
		SprintField:  r.Get(KeySprintField),
		EmptySummary: r.Get(KeyEmptySummary),
		OnExists:     r.Get(KeyOnExists),
		Timeout:      jira.DefaultConfig().HTTP.Timeout,
	}

	var errs []error
	for _, key := range []string{KeyAuthType, KeyOnExists, KeyBranchPrefix, KeyEmptySummary} {
		if v := r.Get(key); v != "" {
			if err := ValidateValue(key, v); err != nil {
				errs = append(errs, sourced(r, key, err))
			}
		}
	}

	if v := r.Get(KeyTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			errs = append(errs, sourced(r, KeyTimeout, fmt.Errorf("invalid %s %q: %w", KeyTimeout, v, err)))
		} else {
			s.Timeout = d
		}
	}

	if v := r.Get(KeyNoColor); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, sourced(r, KeyNoColor, fmt.Errorf("invalid %s %q: want true or false", KeyNoColor, v)))
		} else {
			s.NoColor = b
		}
	}

	return s, errors.Join(errs...)
}

func sourced(r *Resolved, key string, err error) error {
	if src := r.Source(key); src != "" {
		return fmt.Errorf("%w (from %s)", err, src)
	}
	return err
}

// Jira builds the client configuration. Missing values are left empty for
// jira.Config.Validate to report.
func (s Settings) Jira() *jira.Config {
	cfg := jira.DefaultConfig()
	cfg.URL = s.BaseURL
	if s.AuthType != "" {
		cfg.Auth.Type = s.AuthType
	}
	cfg.Auth.Email = s.Email
	cfg.Auth.Token = s.APIToken
	cfg.Auth.Username = s.Username
	cfg.Auth.Password = s.Password
	cfg.Auth.AccessToken = s.AccessToken
	if s.SprintField != "" {
		cfg.SprintField = s.SprintField
	}
	if s.Timeout > 0 {
		cfg.HTTP.Timeout = s.Timeout
	}
	return cfg
}

// Naming builds the branch name composer configuration.
func (s Settings) Naming() branchname.Config {
	cfg := branchname.DefaultConfig()
	if s.BranchPrefix != "" {
		cfg.Prefix = branchname.ParsePrefix(s.BranchPrefix)
	}
	switch s.EmptySummary {
	case "":
	case NoPlaceholder:
		cfg.Placeholder = ""
	default:
		cfg.Placeholder = s.EmptySummary
	}
	return cfg
}

// Display returns a value for printing, masking credentials.
func Display(key, value string) string {
	if !IsSecret(key) || value == "" || key == KeyEmail || key == KeyUsername {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
