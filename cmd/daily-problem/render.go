package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-problem/internal/render"
)

// now is the clock used for document dates. Tests override it.
var now = time.Now

var renderCmd = &cobra.Command{
	Use:   "render <entry.yaml>",
	Short: "Render a saved problem and solution without calling the model or git",
	Long: `Render reads a YAML or JSON file with "problem" and "solution" objects and
prints the Markdown document. With --write the document is stored in the
solutions directory instead; nothing is committed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		entry, err := render.Decode(f)
		if err != nil {
			return err
		}

		date := now()
		if d, _ := cmd.Flags().GetString("date"); d != "" {
			date, err = time.ParseInLocation(render.DateLayout, d, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
		}

		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		doc, err := render.Render(entry.Problem, entry.Solution, date, render.Options{Language: cfg.Render.Language})
		if err != nil {
			return err
		}

		if write, _ := cmd.Flags().GetBool("write"); !write {
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Content)
			return err
		}

		path, err := render.Write(solutionsPath(cfg), doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("date", "", "document date as YYYY-MM-DD (default: today)")
	renderCmd.Flags().Bool("write", false, "write into the solutions directory instead of stdout")

	rootCmd.AddCommand(renderCmd)
}
