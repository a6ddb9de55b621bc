package git

import (
	"errors"
	"testing"
)

func TestExecRunner_Run_Success(t *testing.T) {
	runner := NewExecRunner()

	output, err := runner.Run("", "git", "--version")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output == "" {
		t.Error("expected git --version output")
	}
}

func TestExecRunner_Run_Error(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run(t.TempDir(), "git", "rev-parse", "--verify", "refs/heads/nope")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error should be CommandError, got %T", err)
	}
	if cmdErr.ExitCode() <= 0 {
		t.Errorf("ExitCode() = %d, want > 0", cmdErr.ExitCode())
	}
	if cmdErr.Command != "git" {
		t.Errorf("Command = %q, want git", cmdErr.Command)
	}
}

func TestExecRunner_Run_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run("", "definitely-not-a-real-binary-xyz")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error should be CommandError, got %T", err)
	}
	if cmdErr.ExitCode() != -1 {
		t.Errorf("ExitCode() = %d, want -1", cmdErr.ExitCode())
	}
}

func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CommandError
		want string
	}{
		{
			name: "with output",
			err:  &CommandError{Command: "git", Output: "fatal: not a git repository", Err: errors.New("exit status 128")},
			want: "fatal: not a git repository",
		},
		{
			name: "without output",
			err:  &CommandError{Command: "git", Err: errors.New("exit status 1")},
			want: "exit status 1",
		},
		{
			name: "no output or error",
			err:  &CommandError{Command: "git"},
			want: "command failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CommandError{Command: "git", Args: []string{"checkout"}, Err: underlying}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should return true for underlying error")
	}
}

func TestMockRunner_Run(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		runner := NewMockRunner()
		runner.OnCommand("git", "rev-parse", "--is-inside-work-tree").Return("true", nil)

		output, err := runner.Run("/repo", "git", "rev-parse", "--is-inside-work-tree")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if output != "true" {
			t.Errorf("output = %q, want %q", output, "true")
		}
	})

	t.Run("command only match", func(t *testing.T) {
		runner := NewMockRunner()
		runner.Responses["git"] = MockResponse{Stdout: "git response"}

		output, _ := runner.Run("/repo", "git", "log")
		if output != "git response" {
			t.Errorf("output = %q, want %q", output, "git response")
		}
	})

	t.Run("wildcard match", func(t *testing.T) {
		runner := NewMockRunner()
		runner.OnAnyCommand().Return("wildcard", nil)

		output, _ := runner.Run("/repo", "any", "command")
		if output != "wildcard" {
			t.Errorf("output = %q, want %q", output, "wildcard")
		}
	})

	t.Run("default response", func(t *testing.T) {
		runner := NewMockRunner()
		runner.DefaultResponse = MockResponse{Stdout: "default"}

		output, _ := runner.Run("/repo", "cmd")
		if output != "default" {
			t.Errorf("output = %q, want %q", output, "default")
		}
	})

	t.Run("with error", func(t *testing.T) {
		runner := NewMockRunner()
		expectedErr := errors.New("mock error")
		runner.OnCommand("fail").Return("", expectedErr)

		_, err := runner.Run("/repo", "fail")
		if err != expectedErr {
			t.Errorf("error = %v, want %v", err, expectedErr)
		}
	})
}

func TestMockRunner_Calls(t *testing.T) {
	runner := NewMockRunner()
	runner.OnAnyCommand().Return("", nil)

	_, _ = runner.Run("/repo", "git", "status")
	_, _ = runner.Run("/other", "git", "checkout", "-b", "x")

	if len(runner.Calls) != 2 {
		t.Fatalf("Calls = %d, want 2", len(runner.Calls))
	}
	if runner.Calls[0].WorkDir != "/repo" {
		t.Errorf("first call workdir = %q, want %q", runner.Calls[0].WorkDir, "/repo")
	}
	if !runner.CalledWith("git", "checkout", "-b", "x") {
		t.Error("CalledWith(checkout -b x) = false, want true")
	}
	if runner.CalledWith("git", "push") {
		t.Error("CalledWith(push) = true, want false")
	}
}
