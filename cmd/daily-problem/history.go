package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-problem/internal/history"
	"github.com/pdiddy/daily-problem/pkg/types"
)

const titleWidth = 40

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded cycles",
	Long: `History lists past cycles, newest first, with their outcome, the stage
they reached, and the problem title. --export writes the records as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if cfg.History.Path == "" {
			return fmt.Errorf("history is disabled (history.path is empty)")
		}

		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		opts := history.QueryOptions{Limit: limit}
		if failed, _ := cmd.Flags().GetBool("failed"); failed {
			opts.Status = types.CycleFailed
		}

		if export, _ := cmd.Flags().GetString("export"); export != "" {
			if export == "-" {
				return store.ExportYAML(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			if err := store.ExportYAMLFile(cmd.Context(), export, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", export)
			return nil
		}

		cycles, err := store.List(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printCycles(cmd.OutOrStdout(), cycles)
		return nil
	},
}

// printCycles writes an aligned table. Titles are truncated by display
// width so wide characters keep the columns straight.
func printCycles(w io.Writer, cycles []types.Cycle) {
	if len(cycles) == 0 {
		fmt.Fprintln(w, "no cycles recorded")
		return
	}
	fmt.Fprintf(w, "%-20s  %-7s  %-8s  %s  %s\n",
		"STARTED", "STATUS", "STAGE", runewidth.FillRight("TITLE", titleWidth), "DETAIL")
	for _, c := range cycles {
		detail := c.Path
		if c.Status == types.CycleFailed {
			detail = c.Error
		}
		title := runewidth.FillRight(runewidth.Truncate(c.Title, titleWidth, "…"), titleWidth)
		fmt.Fprintf(w, "%-20s  %-7s  %-8s  %s  %s\n",
			c.StartedAt.Local().Format(time.DateTime), c.Status, c.Stage, title, detail)
	}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of cycles to show (-1 for all)")
	historyCmd.Flags().Bool("failed", false, "show failed cycles only")
	historyCmd.Flags().String("export", "", "write records as YAML to this file ('-' for stdout)")

	rootCmd.AddCommand(historyCmd)
}
