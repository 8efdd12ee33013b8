// Package shell runs external commands for probes and quotes their arguments.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Shell interprets the command lines passed to Run.
var Shell = "/bin/sh"

// ExitTimeout is returned when a command is killed because it ran too long.
const ExitTimeout = 124

// Grace period between SIGTERM and SIGKILL on timeout.
var killDelay = 5 * time.Second

// Run executes command with the shell in workdir and returns its exit code and
// combined stdout and stderr. A zero timeout means no limit. An empty workdir
// runs in the current directory.
func Run(ctx context.Context, command string, timeout time.Duration, workdir string) (int, string) {
	if workdir != "" {
		info, err := os.Stat(workdir)
		if err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
		if err != nil {
			return 1, fmt.Sprintf("cd to workdir %s failed: %v", workdir, err)
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, Shell, "-c", command)
	cmd.Dir = workdir
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killDelay

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return 0, out.String()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ExitTimeout, out.String() + fmt.Sprintf("command timed out after %s", timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), out.String()
	}
	return 1, out.String() + fmt.Sprintf("failed to run command: %v", err)
}
