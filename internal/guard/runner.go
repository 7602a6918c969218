package guard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git commands and returns their standard output. The
// indirection keeps Checker testable without a real repository.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// GitError carries the failed subcommand and whatever git printed to
// stderr.
type GitError struct {
	Operation string
	Stderr    string
	Err       error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GitError) Unwrap() error { return e.Err }

// ExecRunner runs git through os/exec in a fixed working directory.
type ExecRunner struct {
	// Dir is the repository path; empty means the current directory.
	Dir string
}

var _ Runner = (*ExecRunner)(nil)

// Run executes `git <args>` and returns stdout. Failures include the
// captured stderr.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	if r.Dir != "" {
		args = append([]string{"-C", r.Dir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		operation := ""
		if len(args) > 0 {
			operation = args[0]
			if operation == "-C" && len(args) > 2 {
				operation = args[2]
			}
		}
		return "", &GitError{
			Operation: operation,
			Stderr:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
	}

	return stdout.String(), nil
}
