// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <run.yaml>",
	Short: "Re-export a saved run in another format",
	Long: `Export reads a run saved with --save-run and writes its results as a
table, JSON, CSV or a URL list. No searches are made.`,
	Example: `  job-hunter jobs "SRE" --save-run runs/sre.yaml
  job-hunter export runs/sre.yaml --format csv --out sre.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rf, err := export.ReadRunFile(args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		path, _ := cmd.Flags().GetString("out")
		if err := writeTo(path, rf.Output(), format); err != nil {
			return fmt.Errorf("exporting %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "csv", "output format: table, json, csv, urls")
	exportCmd.Flags().String("out", "", "write output to this file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
