// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/img2pgm/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recorded conversions",
	Long: `Journal prints the conversions recorded in the SQLite journal, newest
first. The journal is written only when --journal, IMG2PGM_JOURNAL or the
journal key of the config file names a database file.`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg := converterConfig()

	store, err := journal.NewStore(cfg.Journal)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	return store.Export(cmd.Context(), cmd.OutOrStdout(), journal.Format(format), limit)
}

func init() {
	journalCmd.Flags().Int("limit", 0, "maximum entries to list (0 = use max_results)")
	journalCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(journalCmd)
}
