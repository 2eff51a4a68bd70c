// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the cycles matching opts as a YAML sequence to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts QueryOptions) error {
	if opts.Limit == 0 {
		opts.Limit = -1
	}
	cycles, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cycles); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportYAMLFile writes the export to path.
func (s *Store) ExportYAMLFile(ctx context.Context, path string, opts QueryOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.ExportYAML(ctx, f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
