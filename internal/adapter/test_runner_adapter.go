package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// TestRunnerAdapter executes the project's test command. The command is the
// base invocation (e.g. "pytest" or "python -m pytest"); files are appended
// as explicit arguments and a non-empty filter becomes a -k name-filter
// expression. The returned int is the runner's exit code, which the CLI
// propagates verbatim.
type TestRunnerAdapter interface {
	Run(ctx context.Context, dir m.Path, command string, files []string, filter string) (int, error)
}

// LocalTestRunnerAdapter runs the test command as a child process, streaming
// its output to the adapter's writers.
type LocalTestRunnerAdapter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter wired to the
// process's standard streams.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{stdout: os.Stdout, stderr: os.Stderr}
}

// Run spawns the test command in dir and waits for it. A non-zero exit from
// the runner is a result, not an error; only failures to spawn surface as
// errors.
func (a *LocalTestRunnerAdapter) Run(ctx context.Context, dir m.Path, command string, files []string, filter string) (int, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return 1, fmt.Errorf("empty test command")
	}

	args := argv[1:]
	if filter != "" {
		args = append(args, "-k", filter)
	}

	args = append(args, files...)

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Dir = string(dir)
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	if err != nil {
		return 1, fmt.Errorf("running %s: %w", argv[0], err)
	}

	return 0, nil
}
