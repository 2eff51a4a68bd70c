package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single cycle and exit",
	Long: `Once generates, renders and publishes one document, then exits. It exits
non-zero when any stage fails, which suits an external cron schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if noPush, _ := cmd.Flags().GetBool("no-push"); noPush {
			viper.Set("publish.push", false)
		}

		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		a, err := newApp(cfg, slog.Default())
		if err != nil {
			return err
		}
		defer a.Close()

		return a.runner.RunCycle(cmd.Context())
	},
}

func init() {
	onceCmd.Flags().Bool("no-push", false, "commit without pushing")

	rootCmd.AddCommand(onceCmd)
}
