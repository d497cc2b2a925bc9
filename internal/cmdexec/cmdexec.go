// Package cmdexec abstracts external command execution for testability.
// Production code uses Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is returned when a command does not exit within the configured timeout.
var ErrTimeout = errors.New("command timed out")

// waitDelay bounds how long output pipes are drained after the process is killed.
const waitDelay = 5 * time.Second

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command in the current working directory and
	// returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunInDir executes an external command with dir as its working directory.
	RunInDir(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct {
	// Timeout bounds a single command. Zero means no timeout.
	Timeout time.Duration
}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return c.RunInDir(ctx, "", name, args...)
}

// RunInDir executes the command with the given working directory.
// An empty dir inherits the current process working directory.
func (c *RealCommander) RunInDir(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	parent := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()
	// 호출자 context의 취소나 deadline은 ErrTimeout이 아니다.
	if err != nil && c.Timeout > 0 && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("%s: %w (%s)", name, ErrTimeout, c.Timeout)
	}
	return out, err
}

// ExitCode extracts the process exit code from an error returned by Run.
// It reports false when err did not come from a process that ran to exit.
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
