// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the daily-problem CLI. It generates a
// coding problem and its solution with a language model once a day, writes
// them as Markdown, and commits the document to a git repository.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-problem/internal/logging"
	"github.com/pdiddy/daily-problem/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the daily-problem CLI.
var rootCmd = &cobra.Command{
	Use:   "daily-problem",
	Short: "Generate, solve and commit one coding problem a day",
	Long: `daily-problem asks an OpenAI-compatible chat-completion service for a
LeetCode-style problem and a solution, renders both into a Markdown document
under the solutions directory of a git repository, and commits and pushes it.

"run" repeats this forever: once a day after a success, once an hour after a
failure. "once" runs a single cycle and exits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(viper.GetString("log_level"), os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if loaded, err := secrets.LoadDotenv(".env"); err != nil {
			return err
		} else if loaded {
			slog.Debug("loaded .env")
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./daily-problem.yaml, then ~/.config/daily-problem/daily-problem.yaml)")
	flags.String("repo", "", "git repository the documents are committed to (default: current directory)")
	flags.String("base-url", "", "chat-completion API base URL")
	flags.String("model", "", "model identifier")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"repo_path":    "repo",
		"llm.base_url": "base-url",
		"llm.model":    "model",
		"log_level":    "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("daily-problem")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "daily-problem"))
		}
	}

	viper.SetEnvPrefix("DAILY_PROBLEM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
