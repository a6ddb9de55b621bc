package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const globalConfigFile = "config.yaml"

// ResolverConfig describes where ticketbranch settings live and which keys
// each layer may set.
type ResolverConfig struct {
	// EnvPrefix maps key "base_url" to <EnvPrefix>BASE_URL. Empty disables
	// the env layer (NO_COLOR is still honored).
	EnvPrefix string

	// GlobalConfigDir is the directory under ~/.config holding config.yaml.
	GlobalConfigDir string

	// LocalConfigName is the file looked up at the repository root.
	LocalConfigName string

	Defaults map[string]string

	// Keys lists keys with no default that should still be read from the
	// environment.
	Keys []string

	// StartDir is where repository root detection begins. Defaults to ".".
	StartDir string

	// ValidGlobalKeys and ValidLocalKeys restrict what each file may set.
	// A nil list allows any key.
	ValidGlobalKeys []string
	ValidLocalKeys  []string

	// GitRootFinder overrides the .git walk used to locate the local file.
	GitRootFinder func(startDir string) (string, error)

	// ErrWriter receives "Warning: ..." lines. Defaults to os.Stderr.
	ErrWriter io.Writer
}

// Resolver merges the configuration layers. A Resolver is single use per
// command invocation; Warnings accumulates across calls.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	gitRoot    string

	Warnings []string
}

// NewResolver locates the repository root from cfg.StartDir and derives the
// global and local file paths.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := NewResolverWithPaths(cfg, "", "")

	if root := r.findRoot(); root != "" {
		r.gitRoot = root
		if cfg.LocalConfigName != "" {
			r.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}
	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.globalPath = filepath.Join(home, ".config", cfg.GlobalConfigDir, globalConfigFile)
		}
	}
	return r
}

// NewResolverWithPaths skips discovery and reads exactly the given files.
// Either path may be empty.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	return &Resolver{config: cfg, globalPath: globalPath, localPath: localPath}
}

func (r *Resolver) findRoot() string {
	start := r.config.StartDir
	if start == "" {
		start = "."
	}
	if r.config.GitRootFinder == nil {
		return findGitRoot(start)
	}
	root, err := r.config.GitRootFinder(start)
	if err != nil {
		return ""
	}
	return root
}

func (r *Resolver) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
}

type setting struct {
	value  string
	source Source
}

// Resolved is the merged view of every layer.
type Resolved struct {
	settings map[string]setting
}

// Get returns the winning value for key, or "".
func (c *Resolved) Get(key string) string {
	return c.settings[key].value
}

// Source returns which layer set key, or "" if none did.
func (c *Resolved) Source(key string) Source {
	return c.settings[key].source
}

func (c *Resolved) GetWithSource(key string) (string, Source) {
	s := c.settings[key]
	return s.value, s.source
}

// All returns a copy of every set key and its value.
func (c *Resolved) All() map[string]string {
	out := make(map[string]string, len(c.settings))
	for k, s := range c.settings {
		out[k] = s.value
	}
	return out
}

// Keys returns the set keys in sorted order.
func (c *Resolved) Keys() []string {
	return slices.Sorted(maps.Keys(c.settings))
}

func (c *Resolved) merge(values map[string]string, source Source) {
	for k, v := range values {
		if v == "" {
			continue
		}
		c.settings[k] = setting{value: v, source: source}
	}
}

// Resolve merges defaults, the global file, the local file and the
// environment, later layers winning.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{settings: make(map[string]setting)}

	cfg.merge(r.config.Defaults, SourceDefault)
	cfg.merge(r.readFile(r.globalPath, r.config.ValidGlobalKeys, SourceGlobal), SourceGlobal)
	cfg.merge(r.readFile(r.localPath, r.config.ValidLocalKeys, SourceLocal), SourceLocal)
	cfg.merge(r.readEnv(cfg), SourceEnv)

	return cfg
}

// ResolveWithFlags is Resolve with non-empty flag values on top.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	cfg.merge(flags, SourceFlag)
	return cfg
}

// readFile returns the scalar keys of a YAML file. A missing file is empty;
// a malformed file or a key outside valid produces a warning.
func (r *Resolver) readFile(path string, valid []string, source Source) map[string]string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		r.warn("could not parse %s: %v", path, err)
		return nil
	}

	out := make(map[string]string, len(doc))
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		if valid != nil && !slices.Contains(valid, key) {
			r.warn("ignoring %q in %s: not allowed in %s config", key, path, source)
			continue
		}
		out[key] = scalarString(doc[key])
	}
	return out
}

func (r *Resolver) readEnv(current *Resolved) map[string]string {
	out := make(map[string]string)

	if prefix := r.config.EnvPrefix; prefix != "" {
		names := slices.Concat(slices.Collect(maps.Keys(r.config.Defaults)), r.config.Keys, current.Keys())
		for _, key := range names {
			if v := os.Getenv(envName(prefix, key)); v != "" {
				out[key] = v
			}
		}
	}

	// https://no-color.org: presence disables color whatever the value.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		out["no_color"] = "true"
	}
	return out
}

func envName(prefix, key string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func (r *Resolver) GitRoot() string { return r.gitRoot }

// GlobalPath is ~/.config/<dir>/config.yaml, or "" when unknown.
func (r *Resolver) GlobalPath() string { return r.globalPath }

// LocalPath is the repository file, or "" outside a repository.
func (r *Resolver) LocalPath() string { return r.localPath }

// scalarString renders YAML scalars the way they would be typed on the
// command line. Lists and maps are not valid settings and render empty.
func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func contains(list []string, s string) bool {
	return slices.Contains(list, s)
}

// findGitRoot walks up from startDir to the first directory holding .git,
// which is a file in worktrees and submodules.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for ; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}
