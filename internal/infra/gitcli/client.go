package gitcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Client drives the git binary found on PATH. Fetch credentials come from
// git's own ambient configuration; this client adds nothing on top. Output
// policy follows the bootstrap contract: stdout is always discarded (the
// commands run quiet), stderr is inherited so a failing command surfaces
// git's own diagnostic, except for the local revision probe where a failure
// is an expected answer rather than an error.
type Client struct {
	bin    string
	logger *slog.Logger
}

func New(logger *slog.Logger) *Client {
	return &Client{bin: gitBinary(), logger: logger}
}

func (c *Client) Init(ctx context.Context, dir string) error {
	cmd := c.command(ctx, "", false, "init", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

func (c *Client) RevisionPresent(ctx context.Context, dir, revision string) (bool, error) {
	cmd := c.command(ctx, dir, true, "rev-parse", "--verify", revision+"^{commit}")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("git rev-parse: %w", err)
	}
	return true, nil
}

func (c *Client) FetchBranch(ctx context.Context, dir, url, branch string) error {
	cmd := c.command(ctx, dir, false, "fetch", "--quiet", url, branch)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git fetch: %w", err)
	}
	return nil
}

func (c *Client) MatchesRevision(ctx context.Context, dir, revision string) (bool, error) {
	cmd := c.command(ctx, dir, false, "diff", "--quiet", revision)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("git diff: %w", err)
	}
	return true, nil
}

func (c *Client) HardReset(ctx context.Context, dir, revision string) error {
	cmd := c.command(ctx, dir, false, "reset", "-q", "--hard", revision)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git reset: %w", err)
	}
	return nil
}

func (c *Client) Clean(ctx context.Context, dir string) error {
	cmd := c.command(ctx, dir, false, "clean", "-qxf")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clean: %w", err)
	}
	return nil
}

func (c *Client) command(ctx context.Context, dir string, quiet bool, args ...string) *exec.Cmd {
	c.logger.Debug("running git", "args", args, "dir", dir)
	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	if quiet {
		cmd.Stderr = io.Discard
	} else {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Workdir removes stale lock artifacts from a git working area.
type Workdir struct{}

// RemoveIndexLock deletes .git/index.lock under dir. The returned error
// wraps fs.ErrNotExist when the lock was already absent.
func (Workdir) RemoveIndexLock(dir string) error {
	return os.Remove(filepath.Join(dir, ".git", "index.lock"))
}

func gitBinary() string {
	if runtime.GOOS == "windows" {
		return "git.bat"
	}
	return "git"
}
