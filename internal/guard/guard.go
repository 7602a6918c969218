package guard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotRepository indicates the target path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Entry is one dirty path reported by `git status --porcelain`: the
// two-column status code and the file path.
type Entry struct {
	Status string
	Path   string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s", e.Status, e.Path)
}

// Checker answers whether a working tree is clean. It covers tracked
// modifications, staged changes, and untracked files that are not ignored,
// which is exactly what the porcelain status prints.
type Checker struct {
	runner Runner
	logger zerolog.Logger
}

// NewChecker builds a Checker over the given Runner.
func NewChecker(runner Runner, logger zerolog.Logger) (*Checker, error) {
	if runner == nil {
		return nil, errors.New("guard: runner dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &Checker{runner: runner, logger: logger}, nil
}

// IsRepository reports whether the runner's directory is inside a git work
// tree. Git signals "not a repository" with exit code 128; that case is
// (false, nil), anything else is a real error.
func (c *Checker) IsRepository(ctx context.Context) (bool, error) {
	_, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 128 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Status returns the dirty entries of the working tree. An empty slice
// means the tree is clean.
func (c *Checker) Status(ctx context.Context) ([]Entry, error) {
	output, err := c.runner.Run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("check working tree: %w", err)
	}

	entries := parsePorcelain(output)
	c.logger.Debug().Int("dirty", len(entries)).Msg("working tree status")
	return entries, nil
}

// parsePorcelain splits porcelain v1 output into entries. Each line is a
// two-character status column, a space, and the path.
func parsePorcelain(output string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 4 {
			continue
		}
		entries = append(entries, Entry{
			Status: line[:2],
			Path:   strings.TrimSpace(line[3:]),
		})
	}
	return entries
}
