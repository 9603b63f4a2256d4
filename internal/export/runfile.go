// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// RunFile is the on-disk snapshot of one run. The user can save a run and
// re-export it later in another format without querying the provider
// again.
type RunFile struct {
	Kind    types.SearchKind     `yaml:"kind"`
	Request RunRequest           `yaml:"request"`
	Config  RunConfig            `yaml:"config"`
	Queries []string             `yaml:"queries"`
	Results []types.ScoredResult `yaml:"results"`
	Summary RunSummary           `yaml:"summary"`
}

// RunRequest stores the user input that started the run.
type RunRequest struct {
	Query      string           `yaml:"query"`
	Facets     *query.JobFacets `yaml:"facets,omitempty"`
	Companies  []string         `yaml:"companies,omitempty"`
	Exclusions []string         `yaml:"exclusions,omitempty"`
}

// RunConfig stores the pipeline options that shaped the results.
type RunConfig struct {
	MaxResults int             `yaml:"max_results"`
	Filter     bool            `yaml:"filter"`
	Dedup      types.DedupMode `yaml:"dedup,omitempty"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Total             int       `yaml:"total"`
	Filtered          bool      `yaml:"filtered"`
	Dropped           int       `yaml:"dropped"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	Notices           []string  `yaml:"notices,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// NewRunFile captures out together with the request and options that
// produced it.
func NewRunFile(out pipeline.Output, req RunRequest, cfg types.PipelineConfig, at time.Time) RunFile {
	req.Query = out.Query
	return RunFile{
		Kind:    out.Kind,
		Request: req,
		Config: RunConfig{
			MaxResults: cfg.MaxResults,
			Filter:     cfg.Filter,
			Dedup:      cfg.Dedup,
		},
		Queries: out.Queries,
		Results: out.Results,
		Summary: RunSummary{
			Total:             len(out.Results),
			Filtered:          out.Filtered,
			Dropped:           out.Dropped,
			DuplicatesRemoved: out.DupsRemoved,
			Notices:           out.Notices,
			Timestamp:         at.UTC(),
		},
	}
}

// Output rebuilds the pipeline Output stored in the file.
func (rf RunFile) Output() pipeline.Output {
	results := rf.Results
	if results == nil {
		results = []types.ScoredResult{}
	}
	return pipeline.Output{
		Kind:        rf.Kind,
		Query:       rf.Request.Query,
		Queries:     rf.Queries,
		Results:     results,
		Filtered:    rf.Summary.Filtered,
		Dropped:     rf.Summary.Dropped,
		DupsRemoved: rf.Summary.DuplicatesRemoved,
		Notices:     rf.Summary.Notices,
	}
}

// WriteRunFile saves rf to path as YAML.
func WriteRunFile(path string, rf RunFile) error {
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
