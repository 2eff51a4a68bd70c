// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CycleStatus is the outcome of one pipeline cycle.
type CycleStatus string

const (
	CycleSuccess CycleStatus = "success"
	CycleFailed  CycleStatus = "failed"
)

// Stage names the pipeline step a cycle reached.
type Stage string

const (
	StageProblem  Stage = "problem"
	StageSolution Stage = "solution"
	StageRender   Stage = "render"
	StageWrite    Stage = "write"
	StagePublish  Stage = "publish"
	StageDone     Stage = "done"
)

// Cycle is the history record of one pipeline execution.
type Cycle struct {
	ID         string      `json:"id" yaml:"id"`
	StartedAt  time.Time   `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time   `json:"finished_at" yaml:"finished_at"`
	Status     CycleStatus `json:"status" yaml:"status"`

	// Stage is the last stage entered. For a failed cycle it is the stage
	// that failed.
	Stage Stage `json:"stage" yaml:"stage"`

	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// Path is the document path, set once the document was written.
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Duration returns how long the cycle ran.
func (c Cycle) Duration() time.Duration {
	if c.FinishedAt.IsZero() {
		return 0
	}
	return c.FinishedAt.Sub(c.StartedAt)
}
