// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared across pipeline stages: the generated
// problem and solution, the rendered document, cycle history records, and
// configuration.
package types

import "time"

// Difficulty is the difficulty label the model assigns to a problem
// (typically "Easy", "Medium" or "Hard"). It is not validated against a
// fixed set; whatever the model returns is rendered as-is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Problem is a generated coding problem statement. It is produced once per
// cycle and never modified afterwards.
type Problem struct {
	// Title is the problem name (e.g. "Two Sum"). It also seeds the filename.
	Title string `json:"title" yaml:"title" validate:"required"`

	// Difficulty is the model-assigned difficulty label.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"required"`

	// Description is the problem statement.
	Description string `json:"description" yaml:"description" validate:"required"`

	// Examples holds input/output examples as free text.
	Examples string `json:"examples" yaml:"examples" validate:"required"`

	// Constraints lists input constraints as free text.
	Constraints string `json:"constraints" yaml:"constraints" validate:"required"`
}

// Solution is a generated solution for one Problem.
type Solution struct {
	ThoughtProcess     string `json:"thought_process" yaml:"thought_process" validate:"required"`
	ComplexityAnalysis string `json:"complexity_analysis" yaml:"complexity_analysis" validate:"required"`
	SolutionCode       string `json:"solution_code" yaml:"solution_code" validate:"required"`
	Walkthrough        string `json:"walkthrough" yaml:"walkthrough" validate:"required"`
}

// Entry pairs a problem with its solution. It is the on-disk shape accepted
// by the render command.
type Entry struct {
	Problem  Problem  `json:"problem" yaml:"problem"`
	Solution Solution `json:"solution" yaml:"solution"`
}

// Document is the rendered Markdown artifact for one cycle.
type Document struct {
	// Filename is the base name, <YYYY-MM-DD>_<normalized-title>.md.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the full Markdown body.
	Content string `json:"content" yaml:"content"`

	// Date is the generation date used in the filename and footer.
	Date time.Time `json:"date" yaml:"date"`
}
