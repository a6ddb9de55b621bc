package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func quietConfig() ResolverConfig {
	cfg := NewResolverConfig("")
	cfg.ErrWriter = &bytes.Buffer{}
	return cfg
}

func TestResolver_Defaults(t *testing.T) {
	r := NewResolverWithPaths(quietConfig(), "", "")
	cfg := r.Resolve()

	if got := cfg.Get(KeyBranchPrefix); got != "fy25/great-merge" {
		t.Errorf("branch_prefix = %q, want %q", got, "fy25/great-merge")
	}
	if got := cfg.Source(KeyBranchPrefix); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
	if got := cfg.Get(KeyBaseURL); got != "" {
		t.Errorf("base_url = %q, want empty", got)
	}
}

func TestResolver_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TICKETBRANCH_BRANCH_PREFIX", "fy26/00")

	cfg := NewResolverWithPaths(quietConfig(), "", "").Resolve()

	if got := cfg.Get(KeyBranchPrefix); got != "fy26/00" {
		t.Errorf("branch_prefix = %q, want %q", got, "fy26/00")
	}
	if got := cfg.Source(KeyBranchPrefix); got != SourceEnv {
		t.Errorf("source = %q, want %q", got, SourceEnv)
	}
}

func TestResolver_EnvForKeysWithoutDefault(t *testing.T) {
	t.Setenv("TICKETBRANCH_API_TOKEN", "secret-token")
	t.Setenv("TICKETBRANCH_BASE_URL", "https://example.atlassian.net")

	cfg := NewResolverWithPaths(quietConfig(), "", "").Resolve()

	if got := cfg.Get(KeyAPIToken); got != "secret-token" {
		t.Errorf("api_token = %q, want %q", got, "secret-token")
	}
	if got := cfg.Source(KeyBaseURL); got != SourceEnv {
		t.Errorf("base_url source = %q, want %q", got, SourceEnv)
	}
}

func TestResolver_GlobalConfig(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "config.yaml", "base_url: https://global.atlassian.net\napi_token: tok\n")

	cfg := NewResolverWithPaths(quietConfig(), global, "").Resolve()

	if got := cfg.Get(KeyBaseURL); got != "https://global.atlassian.net" {
		t.Errorf("base_url = %q, want %q", got, "https://global.atlassian.net")
	}
	if got := cfg.Source(KeyAPIToken); got != SourceGlobal {
		t.Errorf("api_token source = %q, want %q", got, SourceGlobal)
	}
}

func TestResolver_LocalConfig(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, repo, LocalConfigName, "branch_prefix: fy26/great-merge\n")

	sub := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", t.TempDir())
	rc := quietConfig()
	rc.StartDir = sub
	r := NewResolver(rc)
	cfg := r.Resolve()

	if r.GitRoot() != repo {
		t.Errorf("GitRoot() = %q, want %q", r.GitRoot(), repo)
	}
	if got := cfg.Get(KeyBranchPrefix); got != "fy26/great-merge" {
		t.Errorf("branch_prefix = %q, want %q", got, "fy26/great-merge")
	}
	if got := cfg.Source(KeyBranchPrefix); got != SourceLocal {
		t.Errorf("source = %q, want %q", got, SourceLocal)
	}
}

func TestResolver_LocalConfigRejectsSecrets(t *testing.T) {
	dir := t.TempDir()
	local := writeFile(t, dir, LocalConfigName, "api_token: leaked\nsprint_field: customfield_10104\n")

	var warnings bytes.Buffer
	rc := NewResolverConfig("")
	rc.ErrWriter = &warnings
	r := NewResolverWithPaths(rc, "", local)
	cfg := r.Resolve()

	if got := cfg.Get(KeyAPIToken); got != "" {
		t.Errorf("api_token = %q, want it ignored", got)
	}
	if got := cfg.Get(KeySprintField); got != "customfield_10104" {
		t.Errorf("sprint_field = %q, want customfield_10104", got)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "api_token") {
		t.Errorf("Warnings = %v, want one about api_token", r.Warnings)
	}
	if !strings.Contains(warnings.String(), "Warning:") {
		t.Errorf("warning not written: %q", warnings.String())
	}
}

func TestResolver_Priority(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "global.yaml", "branch_prefix: fy24/global\nsprint_field: customfield_1\non_exists: abort\n")
	local := writeFile(t, dir, "local.yaml", "branch_prefix: fy25/local\nsprint_field: customfield_2\n")
	t.Setenv("TICKETBRANCH_BRANCH_PREFIX", "fy26/env")

	r := NewResolverWithPaths(quietConfig(), global, local)
	cfg := r.ResolveWithFlags(map[string]string{KeyOnExists: "reuse", KeyNoColor: ""})

	tests := []struct {
		key    string
		want   string
		source Source
	}{
		{KeyBranchPrefix, "fy26/env", SourceEnv},
		{KeySprintField, "customfield_2", SourceLocal},
		{KeyOnExists, "reuse", SourceFlag},
		{KeyTimeout, "30s", SourceDefault},
	}

	for _, tt := range tests {
		value, source := cfg.GetWithSource(tt.key)
		if value != tt.want || source != tt.source {
			t.Errorf("%s = %q (%s), want %q (%s)", tt.key, value, source, tt.want, tt.source)
		}
	}
}

func TestResolver_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "config.yaml", "base_url: [unclosed\n")

	r := NewResolverWithPaths(quietConfig(), global, "")
	cfg := r.Resolve()

	if len(r.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1", r.Warnings)
	}
	if got := cfg.Get(KeyBranchPrefix); got != "fy25/great-merge" {
		t.Errorf("defaults should survive a malformed file, got %q", got)
	}
}

func TestResolved_All(t *testing.T) {
	cfg := NewResolverWithPaths(quietConfig(), "", "").Resolve()

	all := cfg.All()
	all[KeyBranchPrefix] = "mutated"

	if cfg.Get(KeyBranchPrefix) == "mutated" {
		t.Error("All() should return a copy")
	}
}

func TestResolved_KeysSorted(t *testing.T) {
	cfg := NewResolverWithPaths(quietConfig(), "", "").Resolve()

	keys := cfg.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys() not sorted: %v", keys)
		}
	}
	if len(keys) != len(Defaults) {
		t.Errorf("Keys() = %v, want %d default keys", keys, len(Defaults))
	}
}

func TestResolver_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg := NewResolverWithPaths(quietConfig(), "", "").Resolve()

	if got := cfg.Get(KeyNoColor); got != "true" {
		t.Errorf("no_color = %q, want true", got)
	}
}

func TestResolver_BoolValues(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "config.yaml", "no_color: true\ntimeout: 45\n")

	cfg := NewResolverWithPaths(quietConfig(), global, "").Resolve()

	if got := cfg.Get(KeyNoColor); got != "true" {
		t.Errorf("no_color = %q, want true", got)
	}
	if got := cfg.Get(KeyTimeout); got != "45" {
		t.Errorf("timeout = %q, want 45", got)
	}
}

func TestResolver_GitRootFinder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, LocalConfigName, "empty_summary: no-summary\n")

	t.Setenv("HOME", t.TempDir())
	rc := quietConfig()
	rc.StartDir = "/anywhere"
	var gotStart string
	rc.GitRootFinder = func(start string) (string, error) {
		gotStart = start
		return root, nil
	}

	cfg := NewResolver(rc).Resolve()

	if gotStart != "/anywhere" {
		t.Errorf("GitRootFinder called with %q, want /anywhere", gotStart)
	}
	if got := cfg.Get(KeyEmptySummary); got != "no-summary" {
		t.Errorf("empty_summary = %q, want no-summary", got)
	}
}

func TestFindGitRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "pkg", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := findGitRoot(sub); got != root {
		t.Errorf("findGitRoot() = %q, want %q", got, root)
	}
}

func TestFindGitRoot_GitFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git", "gitdir: /elsewhere/.git/worktrees/x\n")

	if got := findGitRoot(root); got != root {
		t.Errorf("findGitRoot() = %q, want %q", got, root)
	}
}

func TestFindGitRoot_NotFound(t *testing.T) {
	if got := findGitRoot(t.TempDir()); got != "" {
		// A temp dir inside a checkout would legitimately find a root.
		if _, err := os.Stat(filepath.Join(got, ".git")); err != nil {
			t.Errorf("findGitRoot() = %q without a .git entry", got)
		}
	}
}

func TestSource_String(t *testing.T) {
	if got := Source("").String(); got != "unset" {
		t.Errorf("empty Source = %q, want unset", got)
	}
	if got := SourceLocal.String(); got != "local" {
		t.Errorf("SourceLocal = %q, want local", got)
	}
}
