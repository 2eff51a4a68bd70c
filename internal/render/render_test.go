// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daily-problem/pkg/types"
)

var jan15 = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func twoSum() (types.Problem, types.Solution) {
	return types.Problem{
			Title:       "Two Sum",
			Difficulty:  types.DifficultyEasy,
			Description: "Given an array of integers nums and an integer target, return indices of the two numbers that add up to target.",
			Examples:    "Input: nums = [2,7,11,15], target = 9\nOutput: [0,1]",
			Constraints: "2 <= nums.length <= 10^4\n-10^9 <= nums[i] <= 10^9",
		}, types.Solution{
			ThoughtProcess:     "Store each value's index in a hash map and look up the complement.",
			ComplexityAnalysis: "O(n)",
			SolutionCode:       "def two_sum(nums, target):\n    seen = {}\n    for i, n in enumerate(nums):\n        if target - n in seen:\n            return [seen[target - n], i]\n        seen[n] = i",
			Walkthrough:        "At i=1, 9-7=2 is in seen at index 0.",
		}
}

func TestRenderTwoSum(t *testing.T) {
	p, s := twoSum()
	doc, err := Render(p, s, jan15, Options{})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15_two_sum.md", doc.Filename)
	assert.Equal(t, jan15, doc.Date)

	lines := strings.Split(doc.Content, "\n")
	assert.Equal(t, "# Two Sum", lines[0])
	assert.Contains(t, lines, "## Difficulty: Easy")
	assert.Contains(t, doc.Content, "```python\n"+s.SolutionCode+"\n```\n")
	assert.True(t, strings.HasSuffix(doc.Content, "Generated on: 2024-01-15\n"))
}

func TestRenderContainsEveryFieldVerbatim(t *testing.T) {
	p, s := twoSum()
	doc, err := Render(p, s, jan15, Options{Language: "go"})
	require.NoError(t, err)

	for _, field := range []string{
		p.Title, string(p.Difficulty), p.Description, p.Examples, p.Constraints,
		s.ThoughtProcess, s.ComplexityAnalysis, s.SolutionCode, s.Walkthrough,
	} {
		assert.Contains(t, doc.Content, field)
	}
	assert.Contains(t, doc.Content, "```go\n")
}

func TestRenderSectionOrder(t *testing.T) {
	p, s := twoSum()
	doc, err := Render(p, s, jan15, Options{})
	require.NoError(t, err)

	headings := []string{
		"# Two Sum",
		"## Difficulty: Easy",
		"## Problem Description",
		"### Examples",
		"### Constraints",
		"## Solution",
		"### Thought Process",
		"### Complexity Analysis",
		"### Code",
		"### Walkthrough",
		"Generated on: 2024-01-15",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(doc.Content, h+"\n")
		require.GreaterOrEqual(t, idx, 0, "heading %q not found", h)
		assert.Greater(t, idx, last, "heading %q out of order", h)
		last = idx
	}
}

func TestRenderMissingFields(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*types.Problem, *types.Solution)
		wantProblem  []string
		wantSolution []string
	}{
		{
			name:        "title",
			mutate:      func(p *types.Problem, _ *types.Solution) { p.Title = "" },
			wantProblem: []string{"title"},
		},
		{
			name:        "difficulty",
			mutate:      func(p *types.Problem, _ *types.Solution) { p.Difficulty = "" },
			wantProblem: []string{"difficulty"},
		},
		{
			name:         "solution code",
			mutate:       func(_ *types.Problem, s *types.Solution) { s.SolutionCode = "" },
			wantSolution: []string{"solution_code"},
		},
		{
			name: "both sides",
			mutate: func(p *types.Problem, s *types.Solution) {
				p.Examples = ""
				s.Walkthrough = ""
				s.ThoughtProcess = ""
			},
			wantProblem:  []string{"examples"},
			wantSolution: []string{"thought_process", "walkthrough"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := twoSum()
			tt.mutate(&p, &s)

			for i := 0; i < 2; i++ {
				_, err := Render(p, s, jan15, Options{})
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingField))

				var mfe *MissingFieldError
				require.ErrorAs(t, err, &mfe)
				assert.Equal(t, tt.wantProblem, mfe.Problem)
				assert.Equal(t, tt.wantSolution, mfe.Solution)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		date  time.Time
		want  string
	}{
		{title: "Two Sum", date: jan15, want: "2024-01-15_two_sum.md"},
		{title: "LRU Cache", date: jan15, want: "2024-01-15_lru_cache.md"},
		{title: "Longest Substring Without Repeating Characters", date: jan15, want: "2024-01-15_longest_substring_without_repeating_characters.md"},
		{title: "Read/Write Locks", date: jan15, want: "2024-01-15_read_write_locks.md"},
		{title: "Two Sum", date: jan15.Add(20 * time.Hour), want: "2024-01-16_two_sum.md"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Filename(tt.date, tt.title)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Filename(tt.date, tt.title))
		})
	}
}

func TestFenceFor(t *testing.T) {
	assert.Equal(t, "```", fenceFor("x = 1"))
	assert.Equal(t, "````", fenceFor("s = '```'"))
	assert.Equal(t, "```", fenceFor("a `b` c"))
}

func TestRenderCodeContainingFence(t *testing.T) {
	p, s := twoSum()
	s.SolutionCode = "doc = \"\"\"\n```\nexample\n```\n\"\"\""
	doc, err := Render(p, s, jan15, Options{})
	require.NoError(t, err)
	assert.Contains(t, doc.Content, "````python\n"+s.SolutionCode+"\n````\n")
}

func TestWrite(t *testing.T) {
	p, s := twoSum()
	doc, err := Render(p, s, jan15, Options{})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "leetcode_solutions")
	path, err := Write(dir, doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "2024-01-15_two_sum.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, string(data))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "yaml",
			input: `problem:
  title: Two Sum
  difficulty: Easy
  description: d
  examples: e
  constraints: c
solution:
  thought_process: t
  complexity_analysis: O(n)
  solution_code: |
    def f():
        pass
  walkthrough: w
`,
		},
		{
			name:  "json",
			input: `{"problem": {"title": "Two Sum", "difficulty": "Easy", "description": "d", "examples": "e", "constraints": "c"}, "solution": {"thought_process": "t", "complexity_analysis": "O(n)", "solution_code": "def f():\n    pass\n", "walkthrough": "w"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, "Two Sum", e.Problem.Title)
			assert.Equal(t, types.DifficultyEasy, e.Problem.Difficulty)
			assert.Equal(t, "O(n)", e.Solution.ComplexityAnalysis)
			assert.Equal(t, "def f():\n    pass\n", e.Solution.SolutionCode)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("problem: [unclosed"))
	assert.Error(t, err)
}
