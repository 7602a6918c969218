// Command worktree-guard refuses to proceed when the git working tree has
// uncommitted changes. It is meant to gate release-ish steps: run it, and
// only continue when it exits 0.
//
// Exit codes: 0 clean (or dirty with ALLOW_DIRTY set), 1 dirty, 2 not a
// repository or git unavailable.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kbornfas/sms-prompt-go/internal/guard"
)

const overrideEnv = "ALLOW_DIRTY"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	level := zerolog.WarnLevel
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	checker, err := guard.NewChecker(&guard.ExecRunner{}, log)
	if err != nil {
		log.Error().Err(err).Msg("guard init failed")
		return 2
	}

	inRepo, err := checker.IsRepository(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worktree-guard: %v\n", err)
		return 2
	}
	if !inRepo {
		fmt.Fprintln(os.Stderr, "worktree-guard: not a git repository")
		return 2
	}

	entries, err := checker.Status(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worktree-guard: %v\n", err)
		return 2
	}

	if len(entries) == 0 {
		fmt.Println("worktree-guard: working tree clean")
		return 0
	}

	fmt.Printf("worktree-guard: %d uncommitted change(s):\n", len(entries))
	for _, entry := range entries {
		fmt.Printf("  %s\n", entry)
	}

	if overrideSet() {
		fmt.Printf("worktree-guard: %s set, proceeding despite dirty tree\n", overrideEnv)
		return 0
	}

	fmt.Println("worktree-guard: commit or stash your changes, or set " + overrideEnv + "=1 to override")
	return 1
}

func overrideSet() bool {
	raw, ok := os.LookupEnv(overrideEnv)
	if !ok {
		return false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		// Any non-boolean value still counts as an explicit override.
		return true
	}
	return val
}
