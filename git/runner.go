package git

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner executes external commands. Context runs every git
// invocation through one so tests can substitute a mock.
type CommandRunner interface {
	// Run executes name with args in workDir and returns trimmed stdout.
	// On failure the error is a *CommandError carrying stderr.
	Run(workDir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(workDir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		return out, &CommandError{
			Command: name,
			Args:    args,
			Output:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return out, nil
}

// CommandError describes a failed command.
type CommandError struct {
	Command string
	Args    []string
	Output  string // stderr
	Err     error
}

func (e *CommandError) Error() string {
	switch {
	case e.Output != "":
		return e.Output
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "command failed"
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code, or -1 when the command did not
// exit normally (e.g. the binary was not found).
func (e *CommandError) ExitCode() int {
	var ee *exec.ExitError
	if errors.As(e.Err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// MockResponse is a canned result for MockRunner.
type MockResponse struct {
	Stdout string
	Err    error
}

// MockCall records one invocation of MockRunner.Run.
type MockCall struct {
	WorkDir string
	Command string
	Args    []string
}

// MockRunner returns canned responses keyed by command line. Lookup order:
// the full command line ("git checkout -b x"), the command name ("git"),
// the wildcard "*", then DefaultResponse.
type MockRunner struct {
	mu              sync.Mutex
	Responses       map[string]MockResponse
	DefaultResponse MockResponse
	Calls           []MockCall
}

// NewMockRunner returns an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

// MockExpectation is returned by OnCommand to attach a response.
type MockExpectation struct {
	runner *MockRunner
	key    string
}

// OnCommand registers a response for an exact command line.
func (m *MockRunner) OnCommand(name string, args ...string) *MockExpectation {
	return &MockExpectation{runner: m, key: commandKey(name, args)}
}

// OnAnyCommand registers a response for any command without a better match.
func (m *MockRunner) OnAnyCommand() *MockExpectation {
	return &MockExpectation{runner: m, key: "*"}
}

// Return sets the response for the expectation.
func (e *MockExpectation) Return(stdout string, err error) {
	e.runner.mu.Lock()
	defer e.runner.mu.Unlock()
	e.runner.Responses[e.key] = MockResponse{Stdout: stdout, Err: err}
}

// Run implements CommandRunner.
func (m *MockRunner) Run(workDir, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: name, Args: args})

	for _, key := range []string{commandKey(name, args), name, "*"} {
		if resp, ok := m.Responses[key]; ok {
			return resp.Stdout, resp.Err
		}
	}
	return m.DefaultResponse.Stdout, m.DefaultResponse.Err
}

// CalledWith reports whether the exact command line was run.
func (m *MockRunner) CalledWith(name string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := commandKey(name, args)
	for _, c := range m.Calls {
		if commandKey(c.Command, c.Args) == want {
			return true
		}
	}
	return false
}

func commandKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
