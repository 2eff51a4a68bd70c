// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish stages, commits and pushes a generated document with the
// git command-line tool.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Step identifies the git operation that failed.
type Step string

const (
	StepStage  Step = "stage"
	StepCommit Step = "commit"
	StepPush   Step = "push"
)

// PublishError reports a failed git step. A push failure leaves the commit
// in the local repository; nothing is rolled back.
type PublishError struct {
	Step Step
	Path string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing %s: %s failed: %v", filepath.Base(e.Path), e.Step, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Publisher commits documents into a repository.
type Publisher struct {
	git    *Git
	push   bool
	logger *slog.Logger
}

// New returns a Publisher for the repository at repoPath. When push is false
// the commit stays local.
func New(repoPath string, push bool, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{git: NewGit(repoPath, logger), push: push, logger: logger}
}

// CommitMessage is the commit message for a document at path.
func CommitMessage(path string) string {
	return "Add LeetCode solution for " + filepath.Base(path)
}

// Publish stages path, commits it, and pushes. path must already exist.
func (p *Publisher) Publish(ctx context.Context, path string) error {
	if err := p.git.Add(ctx, path); err != nil {
		return &PublishError{Step: StepStage, Path: path, Err: err}
	}

	if err := p.git.Commit(ctx, CommitMessage(path)); err != nil {
		return &PublishError{Step: StepCommit, Path: path, Err: err}
	}

	if head, err := p.git.Head(ctx); err == nil {
		p.logger.Info("committed document", "file", filepath.Base(path), "commit", head)
	}

	if !p.push {
		return nil
	}
	if err := p.git.Push(ctx); err != nil {
		return &PublishError{Step: StepPush, Path: path, Err: err}
	}
	p.logger.Info("pushed document", "file", filepath.Base(path))
	return nil
}
