// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/daily-problem/internal/generate"
	"github.com/pdiddy/daily-problem/internal/history"
	"github.com/pdiddy/daily-problem/internal/llm"
	"github.com/pdiddy/daily-problem/internal/pipeline"
	"github.com/pdiddy/daily-problem/internal/publish"
	"github.com/pdiddy/daily-problem/internal/render"
	"github.com/pdiddy/daily-problem/internal/schedule"
	"github.com/pdiddy/daily-problem/internal/secrets"
	"github.com/pdiddy/daily-problem/pkg/types"
)

const (
	defaultBaseURL      = "https://api.galadriel.com/v1"
	defaultModel        = "llama3.1:70b"
	defaultSolutionsDir = "leetcode_solutions"
	defaultLLMTimeout   = 2 * time.Minute
)

// setDefaults registers every configuration key so environment variables
// are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("repo_path", ".")
	v.SetDefault("solutions_dir", defaultSolutionsDir)
	v.SetDefault("llm.base_url", defaultBaseURL)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", defaultModel)
	v.SetDefault("llm.timeout", defaultLLMTimeout)
	v.SetDefault("llm.json_mode", false)
	v.SetDefault("llm.rate_limit_retries", 0)
	v.SetDefault("render.language", render.DefaultLanguage)
	v.SetDefault("publish.push", true)
	v.SetDefault("schedule.success_interval", schedule.DefaultSuccessInterval)
	v.SetDefault("schedule.failure_interval", schedule.DefaultFailureInterval)
	v.SetDefault("history.path", defaultHistoryPath())
	v.SetDefault("log_level", "info")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daily-problem.db"
	}
	return filepath.Join(home, ".config", "daily-problem", "history.db")
}

// loadConfig assembles and validates the configuration from v, filling the
// API key from .secrets/ when it is not configured.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.LLM.APIKey = secretDefault(secrets.LLMAPIKey, cfg.LLM.APIKey)

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}

	abs, err := filepath.Abs(cfg.RepoPath)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving repo path: %w", err)
	}
	cfg.RepoPath = abs
	return cfg, nil
}

// solutionsPath is the absolute solutions directory.
func solutionsPath(cfg types.Config) string {
	if filepath.IsAbs(cfg.SolutionsDir) {
		return cfg.SolutionsDir
	}
	return filepath.Join(cfg.RepoPath, cfg.SolutionsDir)
}

// app is the wired pipeline plus the resources it holds.
type app struct {
	runner  *pipeline.Runner
	history *history.Store
}

func (a *app) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// newApp wires the pipeline stages from cfg.
func newApp(cfg types.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	pcfg := pipeline.Config{
		Generator:    generate.New(llm.New(cfg.LLM), cfg.Render.Language, logger),
		Publisher:    publish.New(cfg.RepoPath, cfg.Publish.Push, logger),
		SolutionsDir: solutionsPath(cfg),
		Render:       render.Options{Language: cfg.Render.Language},
		Logger:       logger,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		a.history = store
		pcfg.Recorder = store
		logger.Debug("recording history", "path", store.Path())
	}

	a.runner = pipeline.New(pcfg)
	return a, nil
}
