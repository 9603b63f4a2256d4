// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/internal/export"
	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// emit writes out in the requested format and persists the run when
// --save-run or --save-db is set.
func emit(ctx context.Context, cmd *cobra.Command, out pipeline.Output, req export.RunRequest, cfg types.PipelineConfig) error {
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")
	if err := writeTo(path, out, format); err != nil {
		return err
	}

	now := time.Now()
	if runPath, _ := cmd.Flags().GetString("save-run"); runPath != "" {
		if err := export.WriteRunFile(runPath, export.NewRunFile(out, req, cfg, now)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run saved to %s\n", runPath)
	}

	if dbPath, _ := cmd.Flags().GetString("save-db"); dbPath != "" {
		sink, err := export.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer sink.Close()
		id, err := sink.Save(ctx, out, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run %d stored in %s\n", id, dbPath)
	}
	return nil
}

// writeTo writes out to path, or stdout when path is empty.
func writeTo(path string, out pipeline.Output, format string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, out, format); err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d results to %s\n", len(out.Results), path)
	}
	return nil
}
