package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

type Mode int

const (
	Capture Mode = iota
	Stream
)

type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, mode Mode,
		name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host. Dir is the working directory
// (empty = current), Out receives streamed output (nil = os.Stdout).
type ExecRunner struct {
	Dir string
	Out io.Writer
}

func (r ExecRunner) Run(
	parent context.Context,
	timeout time.Duration,
	mode Mode,
	name string,
	args ...string,
) ([]byte, error) {
	ctx, cancel := parent, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	switch mode {
	case Stream:
		out := r.Out
		if out == nil {
			out = os.Stdout
		}
		cmd.Stdout, cmd.Stderr = out, out
		return nil, cmd.Run()
	default:
		return cmd.CombinedOutput()
	}
}

// ExitCode extracts the process exit code from a Run error, -1 when the
// process never started or was killed.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
