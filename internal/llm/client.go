// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is a minimal client for OpenAI-compatible chat-completion
// endpoints (OpenAI, Ollama, Galadriel, vLLM and similar).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/daily-problem/internal/httputil"
	"github.com/pdiddy/daily-problem/pkg/types"
)

const completionsPath = "/chat/completions"

// ErrEmptyResponse is returned when the service answers 200 but carries no
// message content.
var ErrEmptyResponse = errors.New("empty completion")

// Client sends a system instruction and a user prompt and returns the
// assistant reply text.
type Client struct {
	BaseURL          string
	APIKey           string
	Model            string
	JSONMode         bool
	RateLimitRetries int
	HTTP             *http.Client
}

// New builds a Client from configuration. A zero timeout leaves requests
// bounded only by the caller's context.
func New(cfg types.LLMConfig) *Client {
	return &Client{
		BaseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:           cfg.APIKey,
		Model:            cfg.Model,
		JSONMode:         cfg.JSONMode,
		RateLimitRetries: cfg.RateLimitRetries,
		HTTP:             &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete runs one chat completion and returns choices[0].message.content.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if c.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+completionsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.RateLimitRetries)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return "", err
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding completion: %w", err)
	}

	if len(cResp.Choices) == 0 || strings.TrimSpace(cResp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return cResp.Choices[0].Message.Content, nil
}
