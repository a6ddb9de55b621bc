package testutil

import (
	"context"
	"testing"
	"time"
)

// TestContext is canceled at test cleanup.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	return TestContextWithTimeout(t, 0)
}

// TestContextWithTimeout bounds a test's Jira and git calls. A zero timeout
// means no deadline; either way the context ends with the test.
func TestContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	t.Cleanup(cancel)
	return ctx
}
