// Package runner dispatches post-deploy bootstrap commands.
package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// ShellRunner executes a command string via the system shell with a fixed
// working directory. Output streams to the runner's writers; the exit
// status is returned to the caller unchanged.
type ShellRunner struct {
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// New creates a shell runner writing to the process's stdout and stderr.
func New(logger *slog.Logger) *ShellRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellRunner{
		logger: logger.With("component", "runner"),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run executes command with dir as working directory and blocks until it
// finishes. A non-zero exit status surfaces as the returned error.
func (r *ShellRunner) Run(ctx context.Context, command, dir string) error {
	r.logger.Info("dispatching command", "command", command, "dir", dir)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}
