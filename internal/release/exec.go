package release

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command in a directory and returns
// combined trimmed output. The pipeline shells out for builds, tests, and
// the packaged binary during self-test; tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// execCommandRunner runs commands via os/exec.
type execCommandRunner struct{}

// NewCommandRunner creates the exec-backed CommandRunner.
func NewCommandRunner() CommandRunner {
	return &execCommandRunner{}
}

// Run executes the command, returning combined output on failure for logs.
func (execCommandRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(out.String()), fmt.Errorf("%s %s: %w\n%s",
			name, strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return strings.TrimSpace(out.String()), nil
}
