package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/jira"
)

// Configuration keys.
const (
	KeyBaseURL      = "base_url"
	KeyAuthType     = "auth_type"
	KeyEmail        = "email"
	KeyAPIToken     = "api_token"
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeyAccessToken  = "access_token"
	KeyBranchPrefix = "branch_prefix"
	KeySprintField  = "sprint_field"
	KeyEmptySummary = "empty_summary"
	KeyOnExists     = "on_exists"
	KeyTimeout      = "timeout"
	KeyNoColor      = "no_color"
)

// Locations and naming for ticketbranch configuration.
const (
	EnvPrefix       = "TICKETBRANCH_"
	GlobalConfigDir = "ticketbranch"
	LocalConfigName = ".ticketbranch.yaml"
)

// NoPlaceholder as empty_summary keeps an empty trailing segment for
// summaries that slugify to nothing.
const NoPlaceholder = "none"

// Defaults are the built-in values for keys that have one.
var Defaults = map[string]string{
	KeyAuthType:     string(jira.AuthAPIToken),
	KeyBranchPrefix: branchname.DefaultBranchPrefix,
	KeySprintField:  jira.DefaultSprintField,
	KeyEmptySummary: branchname.DefaultPlaceholder,
	KeyOnExists:     "prompt",
	KeyTimeout:      "30s",
	KeyNoColor:      "false",
}

// secretKeys hold credentials. They are only read from global config and
// the environment, never from the repository-local file.
var secretKeys = []string{KeyEmail, KeyAPIToken, KeyUsername, KeyPassword, KeyAccessToken}

// AllKeys returns every known key, sorted.
func AllKeys() []string {
	keys := []string{
		KeyBaseURL, KeyAuthType, KeyEmail, KeyAPIToken, KeyUsername, KeyPassword,
		KeyAccessToken, KeyBranchPrefix, KeySprintField, KeyEmptySummary,
		KeyOnExists, KeyTimeout, KeyNoColor,
	}
	sort.Strings(keys)
	return keys
}

// LocalKeys returns the keys a repository's .ticketbranch.yaml may set.
func LocalKeys() []string {
	var keys []string
	for _, k := range AllKeys() {
		if !IsSecret(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsSecret reports whether key holds a credential.
func IsSecret(key string) bool {
	return contains(secretKeys, key)
}

// IsKnown reports whether key is a ticketbranch configuration key.
func IsKnown(key string) bool {
	return contains(AllKeys(), key)
}

// NewResolverConfig returns the resolver settings for ticketbranch,
// starting git root detection at startDir.
func NewResolverConfig(startDir string) ResolverConfig {
	return ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults,
		Keys:            AllKeys(),
		StartDir:        startDir,
		ValidGlobalKeys: AllKeys(),
		ValidLocalKeys:  LocalKeys(),
	}
}

// NewSaveConfig returns the writer settings for ticketbranch.
func NewSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		ValidGlobalKeys: AllKeys(),
		ValidLocalKeys:  LocalKeys(),
		Validate:        ValidateValue,
	}
}

// ValidateValue checks a value before it is saved.
func ValidateValue(key, value string) error {
	switch key {
	case KeyAuthType:
		switch jira.AuthType(value) {
		case jira.AuthAPIToken, jira.AuthBasic, jira.AuthPAT, jira.AuthOAuth2:
			return nil
		}
		return fmt.Errorf("invalid %s %q: want api_token, basic, pat, or oauth2", key, value)
	case KeyOnExists:
		switch value {
		case "reuse", "abort", "prompt":
			return nil
		}
		return fmt.Errorf("invalid %s %q: want reuse, abort, or prompt", key, value)
	case KeyTimeout:
		if _, err := parseTimeout(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
	case KeyNoColor:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid %s %q: want true or false", key, value)
		}
	case KeyBranchPrefix:
		if err := branchname.ValidatePrefix(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeyEmptySummary:
		if value != NoPlaceholder && branchname.Slugify(value) == "" {
			return fmt.Errorf("invalid %s %q: nothing usable in a branch name (use %q for an empty segment)", key, value, NoPlaceholder)
		}
	}
	return nil
}

// parseTimeout accepts a Go duration ("30s") or a whole number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}
