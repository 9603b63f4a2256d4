// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/internal/export"
	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/pkg/types"
)

var careersCmd = &cobra.Command{
	Use:   "careers [company...]",
	Short: "Find official career pages for companies",
	Long: `Careers looks up the official careers page of each company. Several
search strategies are tried per company until a result looks like a careers
page; when none does, a https://careers.<company>.com URL is constructed.

With no companies, the first --top entries of the built-in company list are
searched.`,
	Example: `  job-hunter careers Stripe Shopify
  job-hunter careers --top 5 --format urls`,
	RunE: runCareers,
}

func init() {
	careersCmd.Flags().StringSlice("companies", nil, "companies to look up (comma-separated)")
	careersCmd.Flags().StringSlice("exclude", nil, "terms to exclude from every career page query (repeatable)")
	careersCmd.Flags().Int("top", types.DefaultCompanyCount, "number of built-in companies used when none are given")
	careersCmd.Flags().Int("max-results", 20, "maximum number of results to return (max 100)")
	addSearchFlags(careersCmd)

	rootCmd.AddCommand(careersCmd)
}

func runCareers(cmd *cobra.Command, args []string) error {
	companies, _ := cmd.Flags().GetStringSlice("companies")
	companies = append(companies, args...)
	if len(companies) == 0 {
		top, _ := cmd.Flags().GetInt("top")
		companies = types.TopN(top)
	}

	ctx, stop := signalContext()
	defer stop()

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	deps := buildDeps(cmd, cfg.Filter, os.Stderr)
	exclusions, _ := cmd.Flags().GetStringSlice("exclude")
	out, err := pipeline.Careers(ctx, deps, companies, exclusions, cfg)
	if err != nil {
		return err
	}
	return emit(ctx, cmd, out, export.RunRequest{Companies: companies, Exclusions: exclusions}, cfg)
}
