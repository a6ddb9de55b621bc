package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultBranch is the branch every scratch repository starts on.
const DefaultBranch = "main"

var gitIdentity = []string{
	"GIT_AUTHOR_NAME=ticketbranch tests",
	"GIT_AUTHOR_EMAIL=tests@ticketbranch.invalid",
	"GIT_COMMITTER_NAME=ticketbranch tests",
	"GIT_COMMITTER_EMAIL=tests@ticketbranch.invalid",
	"GIT_CONFIG_NOSYSTEM=1",
}

// SetupTestRepo returns a scratch repository on DefaultBranch with a single
// commit, so branches can be cut from HEAD.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	mustGit(t, dir, "init", "--quiet", "--initial-branch="+DefaultBranch)
	writeFiles(t, dir, map[string]string{"README.md": "# scratch\n"})
	mustGit(t, dir, "add", "--all")
	mustGit(t, dir, "commit", "--quiet", "-m", "initial")
	return dir
}

// SetupTestRepoWithFiles is SetupTestRepo plus a second commit holding files,
// keyed by slash-separated relative path.
func SetupTestRepoWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := SetupTestRepo(t)
	writeFiles(t, dir, files)
	mustGit(t, dir, "add", "--all")
	mustGit(t, dir, "commit", "--quiet", "-m", "fixtures")
	return dir
}

// CreateBranch cuts branch from HEAD and checks it out.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", "--quiet", "-b", branch)
}

func SwitchBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", "--quiet", branch)
}

// CommitFile writes content to path and commits only that file.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()
	writeFiles(t, repoDir, map[string]string{path: content})
	mustGit(t, repoDir, "add", "--", path)
	mustGit(t, repoDir, "commit", "--quiet", "-m", message)
}

func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()
	return mustGit(t, repoDir, "branch", "--show-current")
}

// BranchExists reports whether refs/heads/branch exists.
func BranchExists(t *testing.T, repoDir, branch string) bool {
	t.Helper()

	cmd := exec.Command("git", "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	cmd.Dir = repoDir
	return cmd.Run() == nil
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// mustGit runs git in dir and returns trimmed stdout. Any failure ends the
// test with git's combined output.
func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), gitIdentity...)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(string(out))
}
