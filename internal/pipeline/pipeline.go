// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one cycle: generate a problem, generate its
// solution, render the document, write it, and publish it. Stages run in
// order and the first error ends the cycle; nothing produced before the
// failure is kept.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/pdiddy/daily-problem/internal/render"
	"github.com/pdiddy/daily-problem/pkg/types"
)

// Generator produces the problem and its solution.
type Generator interface {
	Problem(ctx context.Context) (types.Problem, error)
	Solution(ctx context.Context, p types.Problem) (types.Solution, error)
}

// Publisher persists a written document.
type Publisher interface {
	Publish(ctx context.Context, path string) error
}

// Recorder stores cycle history. Recording failures never fail a cycle.
type Recorder interface {
	Record(ctx context.Context, c *types.Cycle) error
}

// Config holds the runner's collaborators and settings.
type Config struct {
	Generator Generator
	Publisher Publisher

	// Recorder is optional.
	Recorder Recorder

	// SolutionsDir is where documents are written.
	SolutionsDir string

	Render render.Options

	// Now defaults to time.Now. The date of a document is taken from it.
	Now func() time.Time

	Logger *slog.Logger
}

// Runner executes cycles.
type Runner struct {
	cfg Config
}

// New returns a Runner.
func New(cfg Config) *Runner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{cfg: cfg}
}

// RunCycle runs the pipeline once and returns the first stage error.
func (r *Runner) RunCycle(ctx context.Context) (err error) {
	log := r.cfg.Logger
	cycle := &types.Cycle{StartedAt: r.cfg.Now()}
	defer func() { r.finish(ctx, cycle, err) }()

	cycle.Stage = types.StageProblem
	problem, err := r.cfg.Generator.Problem(ctx)
	if err != nil {
		return err
	}
	cycle.Title = problem.Title
	cycle.Difficulty = problem.Difficulty
	log.Info("problem generated", "title", problem.Title, "difficulty", problem.Difficulty)

	cycle.Stage = types.StageSolution
	solution, err := r.cfg.Generator.Solution(ctx, problem)
	if err != nil {
		return err
	}
	log.Info("solution generated", "title", problem.Title)

	cycle.Stage = types.StageRender
	doc, err := render.Render(problem, solution, r.cfg.Now(), r.cfg.Render)
	if err != nil {
		return err
	}

	cycle.Stage = types.StageWrite
	path, err := render.Write(r.cfg.SolutionsDir, doc)
	if err != nil {
		return err
	}
	cycle.Path = path
	log.Info("document written", "path", path)

	cycle.Stage = types.StagePublish
	if err = r.cfg.Publisher.Publish(ctx, path); err != nil {
		return err
	}

	cycle.Stage = types.StageDone
	log.Info("successfully generated and committed solution", "title", problem.Title)
	return nil
}

func (r *Runner) finish(ctx context.Context, cycle *types.Cycle, err error) {
	cycle.FinishedAt = r.cfg.Now()
	cycle.Status = types.CycleSuccess
	if err != nil {
		cycle.Status = types.CycleFailed
		cycle.Error = err.Error()
	}

	if r.cfg.Recorder == nil {
		return
	}
	// Record even when ctx was cancelled mid-cycle.
	if rerr := r.cfg.Recorder.Record(context.WithoutCancel(ctx), cycle); rerr != nil {
		r.cfg.Logger.Warn("recording cycle history failed", "error", rerr)
	}
}
