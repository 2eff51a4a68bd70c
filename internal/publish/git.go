// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

const binGit = "git"

// executor abstracts command execution for testing.
type executor interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Git runs git subcommands in one working tree. Nothing is locked; another
// process using the same tree concurrently can interleave with it.
type Git struct {
	WorkDir string
	logger  *slog.Logger
	exec    executor
}

// NewGit returns a Git for workDir.
func NewGit(workDir string, logger *slog.Logger) *Git {
	if logger == nil {
		logger = slog.Default()
	}
	return &Git{WorkDir: workDir, logger: logger, exec: osExecutor{}}
}

// Run executes a raw git command in the working directory and returns its
// trimmed combined output.
func (g *Git) Run(ctx context.Context, args ...string) (string, error) {
	g.logger.Debug("executing git", "args", args, "dir", g.WorkDir)

	out, err := g.exec.Run(ctx, g.WorkDir, binGit, args...)
	out = strings.TrimSpace(out)
	if err != nil {
		if out != "" {
			return out, fmt.Errorf("git %s: %w: %s", args[0], err, out)
		}
		return out, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// Add stages files.
func (g *Git) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := g.Run(ctx, append([]string{"add", "--"}, files...)...)
	return err
}

// Commit records staged changes.
func (g *Git) Commit(ctx context.Context, msg string) error {
	_, err := g.Run(ctx, "commit", "-m", msg)
	return err
}

// Push pushes the current branch using the ambient remote configuration.
func (g *Git) Push(ctx context.Context) error {
	_, err := g.Run(ctx, "push")
	return err
}

// Head returns the abbreviated hash of HEAD.
func (g *Git) Head(ctx context.Context) (string, error) {
	return g.Run(ctx, "rev-parse", "--short", "HEAD")
}
