package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Context runs branch operations against one repository.
type Context struct {
	repoPath string        // Path the context was opened at
	workDir  string        // Directory git commands run in
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext opens the repository at repoPath. It returns ErrNotGitRepo
// when the path is not inside a git work tree.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		workDir:  absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if !isWorkTree(g.runner, absPath) {
		return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, absPath)
	}

	return g, nil
}

// IsRepository reports whether path is inside a git work tree.
func IsRepository(path string) bool {
	return isWorkTree(NewExecRunner(), path)
}

func isWorkTree(runner CommandRunner, path string) bool {
	out, err := runner.Run(path, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Init creates a repository at path (git init) and opens it.
func Init(path string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{repoPath: absPath, workDir: absPath, runner: NewExecRunner()}
	for _, opt := range opts {
		opt(g)
	}

	if _, err := g.runGit("init"); err != nil {
		return nil, newError("init repository", []string{"init"}, err)
	}
	return g, nil
}

// RepoPath returns the path the context was opened at.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// TopLevel returns the root directory of the work tree.
func (g *Context) TopLevel() (string, error) {
	args := []string{"rev-parse", "--show-toplevel"}
	out, err := g.runGit(args...)
	if err != nil {
		return "", newError("find repository root", args, err)
	}
	return out, nil
}

// CurrentBranch returns the current branch name. A repository without
// commits still reports the branch HEAD points at.
func (g *Context) CurrentBranch() (string, error) {
	args := []string{"symbolic-ref", "--short", "-q", "HEAD"}
	branch, err := g.runGit(args...)
	if err != nil {
		// Detached HEAD
		args = []string{"rev-parse", "--short", "HEAD"}
		sha, shaErr := g.runGit(args...)
		if shaErr != nil {
			return "", newError("get current branch", args, shaErr)
		}
		return sha, nil
	}
	return branch, nil
}

// BranchExists reports whether a local branch with the given name exists.
func (g *Context) BranchExists(name string) (bool, error) {
	args := []string{"show-ref", "--verify", "--quiet", "refs/heads/" + name}
	_, err := g.runGit(args...)
	if err == nil {
		return true, nil
	}

	// show-ref exits 1 when the ref is missing
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 {
		return false, nil
	}
	return false, newError("check branch", args, err)
}

// Checkout switches to an existing branch.
func (g *Context) Checkout(name string) error {
	args := []string{"checkout", name}
	if _, err := g.runGit(args...); err != nil {
		gerr := newError("checkout", args, err)
		if strings.Contains(gerr.Output, "did not match any") {
			gerr.Err = fmt.Errorf("%w: %s", ErrBranchNotFound, name)
		}
		return gerr
	}
	return nil
}

// CreateAndCheckout creates a branch at HEAD and switches to it. It returns
// ErrBranchExists when a branch of that name is already present.
func (g *Context) CreateAndCheckout(name string) error {
	args := []string{"checkout", "-b", name}
	if _, err := g.runGit(args...); err != nil {
		gerr := newError("create branch", args, err)
		if strings.Contains(gerr.Output, "already exists") {
			return fmt.Errorf("%w: %s", ErrBranchExists, name)
		}
		return gerr
	}
	return nil
}

// ValidBranchName checks name with git check-ref-format.
func (g *Context) ValidBranchName(name string) error {
	if _, err := g.runGit("check-ref-format", "--branch", name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBranchName, name)
	}
	return nil
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.workDir, "git", args...)
}
