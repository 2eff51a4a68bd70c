// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LLMConfig holds settings for the chat-completion service.
type LLMConfig struct {
	// BaseURL is the API root; requests go to BaseURL + "/chat/completions"
	// (e.g. "https://api.galadriel.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// APIKey is sent as a bearer token. Empty is allowed for local servers.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Model is the model identifier (default "llama3.1:70b").
	Model string `json:"model" yaml:"model" mapstructure:"model" validate:"required"`

	// Timeout bounds a single completion request (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// JSONMode asks the service for a JSON object response format. Not all
	// OpenAI-compatible servers support it.
	JSONMode bool `json:"json_mode" yaml:"json_mode" mapstructure:"json_mode"`

	// RateLimitRetries is how many times a 429 response is retried inside a
	// single request. Zero leaves all retrying to the scheduler.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries" validate:"gte=0"`
}

// RenderConfig holds document rendering settings.
type RenderConfig struct {
	// Language is the solution language. It is named in the solution prompt
	// and used as the code fence info string (default "python").
	Language string `json:"language" yaml:"language" mapstructure:"language" validate:"required"`
}

// PublishConfig holds version-control settings.
type PublishConfig struct {
	// Push controls whether a commit is followed by git push (default true).
	Push bool `json:"push" yaml:"push" mapstructure:"push"`
}

// ScheduleConfig holds the wait intervals between cycles.
type ScheduleConfig struct {
	// SuccessInterval is the wait after a successful cycle (default 24h).
	SuccessInterval time.Duration `json:"success_interval" yaml:"success_interval" mapstructure:"success_interval" validate:"gt=0"`

	// FailureInterval is the wait after a failed cycle (default 1h).
	FailureInterval time.Duration `json:"failure_interval" yaml:"failure_interval" mapstructure:"failure_interval" validate:"gt=0"`
}

// HistoryConfig holds cycle history settings.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config is the complete process configuration.
type Config struct {
	// RepoPath is the git working tree the documents are committed to.
	RepoPath string `json:"repo_path" yaml:"repo_path" mapstructure:"repo_path" validate:"required"`

	// SolutionsDir is the document directory relative to RepoPath
	// (default "leetcode_solutions").
	SolutionsDir string `json:"solutions_dir" yaml:"solutions_dir" mapstructure:"solutions_dir" validate:"required"`

	LLM      LLMConfig      `json:"llm" yaml:"llm" mapstructure:"llm"`
	Render   RenderConfig   `json:"render" yaml:"render" mapstructure:"render"`
	Publish  PublishConfig  `json:"publish" yaml:"publish" mapstructure:"publish"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`

	// LogLevel is one of debug, info, warn, error (default info).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}
