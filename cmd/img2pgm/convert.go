// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/img2pgm/internal/convert"
	"github.com/pdiddy/img2pgm/internal/imaging"
	"github.com/pdiddy/img2pgm/internal/journal"
	"github.com/pdiddy/img2pgm/pkg/types"
)

func runConvert(cmd *cobra.Command, args []string) error {
	// Usage is printed whatever the configuration says.
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), convert.UsageLine)
		return nil
	}

	cfg := converterConfig()

	codec, err := imaging.NewCodec(cfg.Luma)
	if err != nil {
		return err
	}

	res, err := convert.Run(codec, args, cmd.OutOrStdout())
	if err != nil || res == nil {
		return err
	}

	if cfg.Journal.Enabled() {
		rec := res.Record(codec.Luma(), time.Now())
		if err := recordConversion(cmd.Context(), cfg.Journal, rec); err != nil {
			warn(cmd.ErrOrStderr(), err)
		}
	}
	return nil
}

// recordConversion appends rec to the journal. The conversion has already
// succeeded, so callers only warn on failure.
func recordConversion(ctx context.Context, cfg types.JournalConfig, rec types.ConversionRecord) error {
	store, err := journal.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, rec)
	return err
}

func warn(w io.Writer, err error) {
	fmt.Fprintf(w, "warning: %v\n", err)
}
