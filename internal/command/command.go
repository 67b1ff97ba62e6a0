// Package command runs external converters (pandoc, weasyprint, soffice,
// pdfimages) behind an interface so callers can be tested without them.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrCommandNotFound indicates the executable is not on PATH.
// It plays the role of the shell's exit status 127.
var ErrCommandNotFound = errors.New("command not found")

// NotFoundExitCode is the conventional shell status for a missing command.
const NotFoundExitCode = 127

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Run executes name with args and waits for it. A missing executable is
// reported as ErrCommandNotFound; a non-zero exit as an *exec.ExitError.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed converter names
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	return stdout.String(), stderr.String(), err
}

// ExitCode extracts a process exit status from a Run error:
// 0 for nil, 127 for ErrCommandNotFound, the real status for an
// *exec.ExitError and -1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrCommandNotFound) {
		return NotFoundExitCode
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

var _ Runner = (*ExecRunner)(nil)
