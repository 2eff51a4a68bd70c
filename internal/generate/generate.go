// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate asks the model service for a coding problem and for a
// solution to it, and parses the structured replies. It does not retry;
// a failed request or an unusable reply is returned to the caller.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/daily-problem/pkg/types"
)

// maxRawInError caps the reply text kept on a ParseError.
const maxRawInError = 512

// Backend abstracts the chat-completion service so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator produces problems and solutions through a Backend.
type Generator struct {
	backend  Backend
	language string
	logger   *slog.Logger
}

// New returns a Generator. language is the solution language requested in
// the solution prompt (e.g. "Python").
func New(backend Backend, language string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{backend: backend, language: language, logger: logger}
}

// Problem requests a new problem statement.
func (g *Generator) Problem(ctx context.Context) (types.Problem, error) {
	raw, err := g.backend.Complete(ctx, problemSystem, problemPrompt)
	if err != nil {
		return types.Problem{}, &ServiceError{Op: "problem", Err: err}
	}
	g.logger.Debug("problem response received", "bytes", len(raw))

	fields, err := parseObject(raw)
	if err != nil {
		return types.Problem{}, &ParseError{Op: "problem", Err: err, Raw: truncate(raw)}
	}

	p := types.Problem{
		Title:       strings.TrimSpace(fields["title"]),
		Difficulty:  types.Difficulty(strings.TrimSpace(fields["difficulty"])),
		Description: fields["description"],
		Examples:    fields["examples"],
		Constraints: fields["constraints"],
	}
	if missing := p.MissingFields(); len(missing) > 0 {
		return types.Problem{}, &ParseError{Op: "problem", Missing: missing, Raw: truncate(raw)}
	}
	return p, nil
}

// Solution requests a solution for p.
func (g *Generator) Solution(ctx context.Context, p types.Problem) (types.Solution, error) {
	prompt, err := renderSolutionPrompt(p, g.language)
	if err != nil {
		return types.Solution{}, fmt.Errorf("rendering solution prompt: %w", err)
	}

	raw, err := g.backend.Complete(ctx, solutionSystem, prompt)
	if err != nil {
		return types.Solution{}, &ServiceError{Op: "solution", Err: err}
	}
	g.logger.Debug("solution response received", "bytes", len(raw))

	fields, err := parseObject(raw)
	if err != nil {
		return types.Solution{}, &ParseError{Op: "solution", Err: err, Raw: truncate(raw)}
	}

	s := types.Solution{
		ThoughtProcess:     fields["thought_process"],
		ComplexityAnalysis: fields["complexity_analysis"],
		SolutionCode:       stripFence(fields["solution_code"]),
		Walkthrough:        fields["walkthrough"],
	}
	if missing := s.MissingFields(); len(missing) > 0 {
		return types.Solution{}, &ParseError{Op: "solution", Missing: missing, Raw: truncate(raw)}
	}
	return s, nil
}

// parseObject decodes a reply into a flat key → text map. A Markdown code
// fence around the object and leading or trailing prose are tolerated.
// Non-string values are converted to text.
func parseObject(raw string) (map[string]string, error) {
	body := stripFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(body, "{") {
		start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
		if start >= 0 && end > start {
			body = body[start : end+1]
		}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("reply is JSON null")
	}

	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		fields[k] = toText(v)
	}
	return fields, nil
}

// toText renders a decoded JSON value as document text.
func toText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return fmt.Sprint(val)
	case []any:
		lines := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return marshalIndent(val)
			}
			lines = append(lines, s)
		}
		return strings.Join(lines, "\n")
	default:
		return marshalIndent(val)
	}
}

func marshalIndent(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// stripFence removes one surrounding ```lang ... ``` fence, if present.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(t, "```")
	nl := strings.IndexByte(t, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimSpace(t[nl+1:])
}

func truncate(s string) string {
	if len(s) <= maxRawInError {
		return s
	}
	return s[:maxRawInError] + "..."
}
