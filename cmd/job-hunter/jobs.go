// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-hunter/internal/export"
	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/internal/query"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [position]",
	Short: "Search job postings",
	Long: `Jobs searches job postings for a position through SerpAPI's Google Jobs
engine. Facets (employment type, work mode, experience level) narrow the
query and exclusions are sent as -term operators. Results are deduplicated
by registrable domain and, with --filter, labelled by a language model.

If the search provider is unavailable the command prints a notice and an
empty result set instead of failing.`,
	Example: `  job-hunter jobs "Data Engineer" --work-mode Remote --exclude recruiter
  job-hunter jobs --position "Backend Engineer" --location Berlin --filter --format csv --out jobs.csv`,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().String("position", "", "job title or free-text search term")
	jobsCmd.Flags().String("location", "", "location passed to the provider")
	jobsCmd.Flags().String("employment-type", "", "Full-time, Part-time, Contract, Internship or Temporary")
	jobsCmd.Flags().String("work-mode", "", "Remote, On-site or Hybrid")
	jobsCmd.Flags().String("experience-level", "", "Entry Level, Mid Level, Senior Level or Executive")
	jobsCmd.Flags().StringSlice("exclude", nil, "terms the posting must not involve (repeatable)")
	jobsCmd.Flags().Int("max-results", 20, "maximum number of results to return (max 100)")
	jobsCmd.Flags().String("dedup", "domain", "dedup key: domain or listing")
	addSearchFlags(jobsCmd)

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	f := query.JobFacets{}
	f.Position, _ = cmd.Flags().GetString("position")
	if f.Position == "" {
		f.Position = strings.Join(args, " ")
	}
	f.Location, _ = cmd.Flags().GetString("location")
	f.EmploymentType, _ = cmd.Flags().GetString("employment-type")
	f.WorkMode, _ = cmd.Flags().GetString("work-mode")
	f.ExperienceLevel, _ = cmd.Flags().GetString("experience-level")
	f.Exclusions, _ = cmd.Flags().GetStringSlice("exclude")

	ctx, stop := signalContext()
	defer stop()

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	deps := buildDeps(cmd, cfg.Filter, os.Stderr)
	out, err := pipeline.Jobs(ctx, deps, f, cfg)
	if err != nil {
		return err
	}
	return emit(ctx, cmd, out, export.RunRequest{Facets: &f}, cfg)
}
