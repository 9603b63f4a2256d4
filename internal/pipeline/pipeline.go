// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the job and career-page searches end to end:
// build the query, search, normalize, deduplicate, optionally filter for
// relevance, and truncate. Each run is request-scoped and keeps no state
// between calls.
//
// A failing search provider never surfaces as a Go error. The run stops
// and the Output carries a notice instead, so every caller presents
// failures the same way. The only errors returned are for invalid input.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/job-hunter/internal/dedup"
	"github.com/pdiddy/job-hunter/internal/normalize"
	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/internal/relevance"
	"github.com/pdiddy/job-hunter/internal/search"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrNoCompanies is returned by Careers when the company list is empty.
var ErrNoCompanies = errors.New("at least one company is required")

const (
	defaultMaxResults   = 20
	maxResultsLimit     = 100
	defaultCareerPerQry = 5
)

// Deps are the collaborators a run talks to.
type Deps struct {
	Search search.Client

	// Evaluator labels results when filtering is requested. Nil means no
	// language model is configured.
	Evaluator relevance.Evaluator

	// Log receives progress and warnings. Nil discards them.
	Log io.Writer
}

func (d Deps) log() io.Writer {
	if d.Log == nil {
		return io.Discard
	}
	return d.Log
}

// Output is the result of one run.
type Output struct {
	Kind types.SearchKind `json:"kind" yaml:"kind"`

	// Query is the job query string, or the company list for careers.
	Query string `json:"query" yaml:"query"`

	// Queries lists every provider query sent, in order.
	Queries []string `json:"queries" yaml:"queries"`

	Results []types.ScoredResult `json:"results" yaml:"results"`

	// Filtered reports whether the relevance filter labeled Results.
	Filtered bool `json:"filtered" yaml:"filtered"`

	// Dropped counts malformed records; DupsRemoved counts duplicates.
	Dropped     int `json:"dropped" yaml:"dropped"`
	DupsRemoved int `json:"dups_removed" yaml:"dups_removed"`

	// Notices are user-facing status messages.
	Notices []string `json:"notices,omitempty" yaml:"notices,omitempty"`
}

func (o *Output) notice(format string, args ...any) {
	o.Notices = append(o.Notices, fmt.Sprintf(format, args...))
}

// Jobs searches job postings matching f.
func Jobs(ctx context.Context, deps Deps, f query.JobFacets, cfg types.PipelineConfig) (Output, error) {
	q, qs, err := query.BuildJobQuery(f)
	if err != nil {
		return Output{}, err
	}
	w := deps.log()
	limit := maxResults(cfg.MaxResults)

	out := Output{Kind: types.KindJobs, Query: qs, Queries: []string{qs}, Results: []types.ScoredResult{}}
	fmt.Fprintf(w, "searching %s for %q\n", deps.Search.Name(), qs)

	raws, err := deps.Search.Search(ctx, search.Request{Query: qs, Engine: search.EngineJobs, Location: q.Location()}, limit)
	if err != nil {
		fmt.Fprintf(w, "search failed: %v\n", err)
		out.notice("%s", searchNotice(err))
		return out, nil
	}

	origin := normalize.Origin{Query: q, QueryString: qs, Source: string(search.EngineJobs)}
	normalized, dropped := normalize.NormalizeAll(raws, origin, w)
	out.Dropped = dropped

	unique, removed := dedup.DeduplicateBy(normalized, dedup.ForMode(cfg.Dedup))
	out.DupsRemoved = removed
	fmt.Fprintf(w, "%d results, %d dropped, %d duplicates removed\n", len(raws), dropped, removed)

	out.Results, out.Filtered = filter(ctx, deps, cfg, unique, relevance.JobIntent(f), &out)
	if len(out.Results) > limit {
		out.Results = out.Results[:limit]
	}
	if len(out.Results) == 0 {
		out.notice("no job postings found for %q", qs)
	}
	return out, nil
}

// Careers finds the career page of each company. Strategy queries are
// tried in order until one returns a result that looks like a career
// page; companies with no match get a constructed URL. Exclusions are
// appended to every strategy query as negated terms.
//
// A cancelled run stops at the current company and returns the pages
// found so far, unfiltered, with a notice.
func Careers(ctx context.Context, deps Deps, companies, exclusions []string, cfg types.PipelineConfig) (Output, error) {
	companies = cleanCompanies(companies)
	if len(companies) == 0 {
		return Output{}, ErrNoCompanies
	}
	w := deps.log()
	perQuery := cfg.CareerResultsPerQuery
	if perQuery <= 0 {
		perQuery = defaultCareerPerQry
	}

	out := Output{Kind: types.KindCareers, Query: joinCompanies(companies), Results: []types.ScoredResult{}}
	var pages []types.NormalizedResult
	var lastErr error
	unreachable := 0
	cancelled := false

	for _, company := range companies {
		cq := query.CareerQuery(company, exclusions)
		page, found, failed, err := findCareerPage(ctx, deps, cq, company, perQuery, &out)
		if !found && ctx.Err() != nil {
			fmt.Fprintf(w, "careers: stopped at %s: %v\n", company, ctx.Err())
			out.notice("%s; showing career pages for %d of %d companies",
				searchNotice(fmt.Errorf("%w: %v", search.ErrSearchUnavailable, ctx.Err())), len(pages), len(companies))
			cancelled = true
			break
		}
		if err != nil {
			lastErr = err
		}
		if failed {
			unreachable++
		}
		if !found {
			fmt.Fprintf(w, "careers: no career page found for %s, using constructed URL\n", company)
			page = constructedPage(cq, company)
			if failed {
				out.notice("search unavailable for %s; showing a constructed URL", company)
			}
		}
		pages = append(pages, page)
	}

	if !cancelled && unreachable == len(companies) {
		out.Notices = []string{searchNotice(lastErr)}
		return out, nil
	}

	unique, removed := dedup.Deduplicate(pages)
	out.DupsRemoved = removed

	if cancelled {
		out.Results = relevance.Unscored(unique)
		return out, nil
	}
	out.Results, out.Filtered = filter(ctx, deps, cfg, unique, relevance.CareerIntent(companies), &out)
	return out, nil
}

// findCareerPage runs the strategy queries for one company. failed is true
// when every strategy hit a search error.
func findCareerPage(ctx context.Context, deps Deps, cq types.SearchQuery, company string, perQuery int, out *Output) (page types.NormalizedResult, found, failed bool, lastErr error) {
	w := deps.log()
	strategies := query.BuildCareerQueries(cq)
	errs := 0

	for _, qs := range strategies {
		if ctx.Err() != nil {
			return types.NormalizedResult{}, false, true, ctx.Err()
		}
		out.Queries = append(out.Queries, qs)

		raws, err := deps.Search.Search(ctx, search.Request{Query: qs, Engine: search.EngineWeb}, perQuery)
		if err != nil {
			fmt.Fprintf(w, "careers: %s: %v, trying next strategy\n", qs, err)
			errs++
			lastErr = err
			continue
		}

		origin := normalize.Origin{Query: cq, QueryString: qs, Source: string(search.EngineWeb)}
		normalized, dropped := normalize.NormalizeAll(raws, origin, w)
		out.Dropped += dropped

		for _, r := range normalized {
			if LooksLikeCareerPage(r, company) {
				r.CompanyName = company
				fmt.Fprintf(w, "careers: %s -> %s\n", company, r.URL)
				return r, true, false, nil
			}
		}
	}
	return types.NormalizedResult{}, false, errs == len(strategies), lastErr
}

// filter runs the relevance filter when requested and available.
func filter(ctx context.Context, deps Deps, cfg types.PipelineConfig, results []types.NormalizedResult, intent string, out *Output) ([]types.ScoredResult, bool) {
	if !cfg.Filter || len(results) == 0 {
		return relevance.Unscored(results), false
	}
	if deps.Evaluator == nil {
		out.notice("AI filtering is not configured; showing unfiltered results")
		return relevance.Unscored(results), false
	}
	scored := relevance.Score(ctx, deps.Evaluator, results, intent, deps.log())
	kept := relevance.Keep(scored)
	fmt.Fprintf(deps.log(), "relevance: kept %d of %d results\n", len(kept), len(scored))
	return kept, true
}

func searchNotice(err error) string {
	if err == nil {
		return "search unavailable"
	}
	if errors.Is(err, search.ErrSearchUnavailable) {
		return err.Error()
	}
	return fmt.Sprintf("search unavailable: %v", err)
}

func maxResults(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	if n > maxResultsLimit {
		return maxResultsLimit
	}
	return n
}
