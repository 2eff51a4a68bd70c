package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the solutions directory",
	Long: `List prints the documents already present in the solutions directory,
newest date first. --match filters them with a glob such as "2024-01-*".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		pattern, _ := cmd.Flags().GetString("match")

		docs, err := listDocuments(os.DirFS(solutionsPath(cfg)), pattern)
		if err != nil {
			return err
		}
		printDocuments(cmd.OutOrStdout(), docs)
		return nil
	},
}

// listDocuments returns the Markdown files in fsys matching pattern (any
// .md file when pattern is empty), in reverse lexical order. Filenames start
// with the date, so that is newest first.
func listDocuments(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.md"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := matches[:0]
	for _, m := range matches {
		if ok, _ := doublestar.Match("**/*.md", m); ok {
			docs = append(docs, m)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(docs)))
	return docs, nil
}

func printDocuments(w io.Writer, docs []string) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "no documents")
		return
	}
	for _, d := range docs {
		fmt.Fprintln(w, d)
	}
}

func init() {
	listCmd.Flags().String("match", "", `glob over document names (e.g. "2024-*_two_*.md")`)

	rootCmd.AddCommand(listCmd)
}
