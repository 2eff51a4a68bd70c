// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/daily-problem/pkg/types"
)

const (
	problemSystem  = "You are a coding problem generator."
	solutionSystem = "You are an expert programmer."
)

// problemPrompt asks for a fresh problem. It takes no input.
const problemPrompt = `Generate a random LeetCode-style coding problem.
Include:
1. Problem description
2. Input/output examples
3. Constraints
Format the response as JSON with keys: 'title', 'difficulty', 'description', 'examples', 'constraints'.
The difficulty must be one of "Easy", "Medium" or "Hard".
Respond with the JSON object only, with no text outside it.`

var solutionPromptTmpl = template.Must(template.New("solution").Parse(`Solve this coding problem:
{{.Problem}}

Provide:
1. Detailed thought process
2. Time and space complexity analysis
3. {{.Language}} solution code
4. Example walkthrough

Format the response as JSON with keys: 'thought_process', 'complexity_analysis', 'solution_code', 'walkthrough'.
The solution_code value must contain only code, without Markdown fences.
Respond with the JSON object only, with no text outside it.`))

// renderSolutionPrompt embeds the problem as JSON in the solution prompt.
func renderSolutionPrompt(p types.Problem, language string) (string, error) {
	problemJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling problem: %w", err)
	}

	var buf bytes.Buffer
	err = solutionPromptTmpl.Execute(&buf, struct {
		Problem  string
		Language string
	}{
		Problem:  string(problemJSON),
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
