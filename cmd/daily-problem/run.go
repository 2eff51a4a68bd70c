package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-problem/internal/schedule"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily cycle forever",
	Long: `Run executes a cycle immediately and then repeats: 24 hours after a
successful cycle, 1 hour after a failed one. Failures are logged and retried
indefinitely. The process runs until it receives SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		logger := slog.Default()
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := schedule.New(a.runner, schedule.Config{
			SuccessInterval: cfg.Schedule.SuccessInterval,
			FailureInterval: cfg.Schedule.FailureInterval,
			Logger:          logger,
		})
		logger.Info("starting", "repo", cfg.RepoPath, "model", cfg.LLM.Model, "push", cfg.Publish.Push)
		if a.history != nil {
			if last, err := a.history.Last(ctx); err != nil {
				logger.Warn("reading history failed", "error", err)
			} else if last != nil {
				logger.Info("previous cycle", "started", last.StartedAt.Local().Format(time.DateTime),
					"status", last.Status, "stage", last.Stage, "title", last.Title)
			}
		}

		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Duration("success-interval", schedule.DefaultSuccessInterval, "wait after a successful cycle")
	runCmd.Flags().Duration("failure-interval", schedule.DefaultFailureInterval, "wait after a failed cycle")
	viper.BindPFlag("schedule.success_interval", runCmd.Flags().Lookup("success-interval"))
	viper.BindPFlag("schedule.failure_interval", runCmd.Flags().Lookup("failure-interval"))

	rootCmd.AddCommand(runCmd)
}
