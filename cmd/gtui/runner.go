package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var execCommandContext = exec.CommandContext

// Runner executes the commands the viewer forwards, such as gt checkout.
type Runner struct {
	dir     string
	timeout time.Duration
}

func NewRunner(dir string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultCheckoutTimeout
	}
	return &Runner{dir: dir, timeout: timeout}
}

// Run returns the combined output. A timeout is reported as an error that
// keeps whatever output was produced.
func (r *Runner) Run(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("command required")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := execCommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	output := strings.TrimRight(string(out), "\n")
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%s timed out after %s", strings.Join(args, " "), r.timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, fmt.Errorf("%s: exit status %d", strings.Join(args, " "), exitErr.ExitCode())
		}
		return output, err
	}
	return output, nil
}
