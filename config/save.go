package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File modes: the global file may hold credentials, the local one is
// committed with the repository.
const (
	globalFileMode fs.FileMode = 0o600
	localFileMode  fs.FileMode = 0o644
)

// SaveConfig writes single keys into the global or repository file,
// preserving whatever else the file holds.
type SaveConfig struct {
	GlobalConfigDir string
	LocalConfigName string

	ValidGlobalKeys []string
	ValidLocalKeys  []string

	// Validate rejects a value before anything is written. Optional.
	Validate func(key, value string) error
}

// SaveGlobal sets key in ~/.config/<GlobalConfigDir>/config.yaml, creating
// the directory if needed.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if c.GlobalConfigDir == "" {
		return errors.New("global config directory not configured")
	}
	if c.ValidGlobalKeys != nil && !contains(c.ValidGlobalKeys, key) {
		return unknownKeyError("global", key, c.ValidGlobalKeys)
	}
	if err := c.validate(key, value); err != nil {
		return err
	}

	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return editFile(path, globalFileMode, func(doc map[string]any) bool {
		doc[key] = yamlValue(value)
		return true
	})
}

// SaveLocal sets key in the repository file under gitRoot. Credentials are
// refused so they are never committed.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	path, err := c.localPath(gitRoot)
	if err != nil {
		return err
	}
	if c.ValidLocalKeys != nil && !contains(c.ValidLocalKeys, key) {
		if contains(c.ValidGlobalKeys, key) {
			return fmt.Errorf("%s can only be set in global config (it is not committed with the repository)", key)
		}
		return unknownKeyError("local", key, c.ValidLocalKeys)
	}
	if err := c.validate(key, value); err != nil {
		return err
	}
	return editFile(path, localFileMode, func(doc map[string]any) bool {
		doc[key] = yamlValue(value)
		return true
	})
}

// DeleteGlobalKey removes key from the global file. A missing file or key
// is not an error.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	if c.GlobalConfigDir == "" {
		return errors.New("global config directory not configured")
	}
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	return deleteKey(path, key, globalFileMode)
}

// DeleteLocalKey removes key from the repository file under gitRoot.
func (c SaveConfig) DeleteLocalKey(gitRoot, key string) error {
	path, err := c.localPath(gitRoot)
	if err != nil {
		return err
	}
	return deleteKey(path, key, localFileMode)
}

func (c SaveConfig) GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, globalConfigFile), nil
}

func (c SaveConfig) localPath(gitRoot string) (string, error) {
	if gitRoot == "" {
		return "", errors.New("git root not found")
	}
	if c.LocalConfigName == "" {
		return "", errors.New("local config name not configured")
	}
	return filepath.Join(gitRoot, c.LocalConfigName), nil
}

func (c SaveConfig) validate(key, value string) error {
	if c.Validate == nil {
		return nil
	}
	return c.Validate(key, value)
}

func unknownKeyError(scope, key string, valid []string) error {
	return fmt.Errorf("unknown %s config key: %s\n\nValid keys: %s", scope, key, strings.Join(valid, ", "))
}

func deleteKey(path, key string, mode fs.FileMode) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return editFile(path, mode, func(doc map[string]any) bool {
		if _, ok := doc[key]; !ok {
			return false
		}
		delete(doc, key)
		return true
	})
}

// editFile loads path (missing means empty), applies fn and writes the
// result back if fn reports a change. A file that does not parse is left
// untouched and reported.
func editFile(path string, mode fs.FileMode, fn func(map[string]any) bool) error {
	doc := make(map[string]any)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if doc == nil {
			doc = make(map[string]any)
		}
	}

	if !fn(doc) {
		return nil
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, mode)
}

// yamlValue stores true/false as YAML booleans and everything else as
// strings.
func yamlValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}
