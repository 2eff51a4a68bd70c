// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a problem and its solution into the Markdown document
// committed for the day. Rendering is pure; Write is the only function that
// touches the file system.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/daily-problem/pkg/types"
)

// DateLayout formats the date in filenames and the footer.
const DateLayout = "2006-01-02"

// DefaultLanguage is the code fence info string when none is configured.
const DefaultLanguage = "python"

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError lists empty required fields of the inputs.
type MissingFieldError struct {
	Problem  []string
	Solution []string
}

func (e *MissingFieldError) Error() string {
	var parts []string
	if len(e.Problem) > 0 {
		parts = append(parts, "problem: "+strings.Join(e.Problem, ", "))
	}
	if len(e.Solution) > 0 {
		parts = append(parts, "solution: "+strings.Join(e.Solution, ", "))
	}
	return fmt.Sprintf("rendering document: %s (%s)", ErrMissingField, strings.Join(parts, "; "))
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Options control rendering.
type Options struct {
	// Language is the code fence info string (default "python").
	Language string
}

var documentTmpl = template.Must(template.New("document").Parse(`# {{.P.Title}}

## Difficulty: {{.P.Difficulty}}

## Problem Description
{{.P.Description}}

### Examples
{{.P.Examples}}

### Constraints
{{.P.Constraints}}

## Solution

### Thought Process
{{.S.ThoughtProcess}}

### Complexity Analysis
{{.S.ComplexityAnalysis}}

### Code
{{.Fence}}{{.Language}}
{{.S.SolutionCode}}
{{.Fence}}

### Walkthrough
{{.S.Walkthrough}}

Generated on: {{.Date}}
`))

// Render produces the document for p and s generated on date.
func Render(p types.Problem, s types.Solution, date time.Time, opts Options) (types.Document, error) {
	if err := check(p, s); err != nil {
		return types.Document{}, err
	}

	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, struct {
		P        types.Problem
		S        types.Solution
		Fence    string
		Language string
		Date     string
	}{
		P:        p,
		S:        s,
		Fence:    fenceFor(s.SolutionCode),
		Language: lang,
		Date:     date.Format(DateLayout),
	})
	if err != nil {
		return types.Document{}, fmt.Errorf("executing document template: %w", err)
	}

	return types.Document{
		Filename: Filename(date, p.Title),
		Content:  buf.String(),
		Date:     date,
	}, nil
}

func check(p types.Problem, s types.Solution) error {
	pm, sm := p.MissingFields(), s.MissingFields()
	if len(pm) == 0 && len(sm) == 0 {
		return nil
	}
	return &MissingFieldError{Problem: pm, Solution: sm}
}

// Filename returns <YYYY-MM-DD>_<normalized-title>.md.
func Filename(date time.Time, title string) string {
	return date.Format(DateLayout) + "_" + NormalizeTitle(title) + ".md"
}

// NormalizeTitle lowercases the title and replaces spaces with underscores.
// Path separators are replaced too so the file stays in its directory.
func NormalizeTitle(title string) string {
	return strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(strings.ToLower(title))
}

// fenceFor returns a backtick fence longer than any backtick run in code.
func fenceFor(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// Write stores doc under dir, creating dir if needed, and returns the path.
// An existing file with the same name is overwritten.
func Write(dir string, doc types.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating solutions directory: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", doc.Filename, err)
	}
	return path, nil
}

// Decode reads a saved problem and solution pair. YAML and JSON are both
// accepted.
func Decode(r io.Reader) (types.Entry, error) {
	var e types.Entry
	if err := yaml.NewDecoder(r).Decode(&e); err != nil {
		return types.Entry{}, fmt.Errorf("decoding entry: %w", err)
	}
	return e, nil
}
