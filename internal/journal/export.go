// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// Format selects how journal entries are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Export writes up to limit journal entries to w in the given format.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format, limit int) error {
	records, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	return Write(w, format, records)
}

// Write renders records to w. An empty format means FormatTable.
func Write(w io.Writer, format Format, records []types.ConversionRecord) error {
	if records == nil {
		records = []types.ConversionRecord{}
	}

	switch format {
	case FormatTable, "":
		return writeTable(w, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func writeTable(w io.Writer, records []types.ConversionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No conversions recorded.")
		return err
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-30s  %-30s  %-6s  %-11s  %s\n",
		"ID", "Converted", "Input", "Output", "Format", "Size", "Luma")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range records {
		fmt.Fprintf(w, "%-5d  %-20s  %-30s  %-30s  %-6s  %-11s  %s\n",
			r.ID, r.ConvertedAt.UTC().Format(time.DateTime), truncate(r.Input, 30),
			truncate(r.Output, 30), r.Format, fmt.Sprintf("%dx%d", r.Width, r.Height), r.Luma)
	}

	_, err := fmt.Fprintf(w, "\n%d entries\n", len(records))
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
