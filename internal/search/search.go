// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search sends provider query strings to a web search API and
// returns the raw result records. It is the pipeline's only contact with
// the search provider; callers see either records or an error wrapping
// ErrSearchUnavailable.
package search

import (
	"context"
	"errors"

	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrSearchUnavailable reports that the provider could not serve a query:
// unreachable, quota exhausted, rejected credentials or an unreadable
// response. The pipeline aborts the current run when it sees it.
var ErrSearchUnavailable = errors.New("search unavailable")

// Engine selects the provider's result vertical.
type Engine string

const (
	// EngineJobs returns structured job postings.
	EngineJobs Engine = "google_jobs"
	// EngineWeb returns organic web results.
	EngineWeb Engine = "google"
)

// Request is one provider query.
type Request struct {
	Query    string
	Engine   Engine
	Location string
}

// Client searches a single provider. SerpClient is the production
// implementation; tests substitute stubs.
type Client interface {
	Name() string
	Search(ctx context.Context, req Request, count int) ([]types.RawResult, error)
}
