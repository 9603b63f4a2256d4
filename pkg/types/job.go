// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the job-hunter pipeline:
// the query built from user facets, the raw records returned by the search
// provider, the normalized and scored results, and stage configuration.
package types

import (
	"sort"
	"strings"
)

// SearchKind selects which pipeline a query belongs to.
type SearchKind string

const (
	KindJobs    SearchKind = "jobs"
	KindCareers SearchKind = "careers"
)

// Facet names used as keys in SearchQuery facets.
const (
	FacetEmploymentType  = "employment_type"
	FacetWorkMode        = "work_mode"
	FacetExperienceLevel = "experience_level"
	FacetCompany         = "company"
)

// AnyValue is the facet value meaning "no preference".
const AnyValue = "Any"

// SearchQuery is the user's intent after the query builder has run. It is
// immutable once built: constructors copy their inputs and the accessors
// return copies.
type SearchQuery struct {
	term       string
	location   string
	kind       SearchKind
	facets     map[string]string
	exclusions []string
}

// NewSearchQuery builds a SearchQuery. Exclusions are lower-cased,
// de-duplicated and sorted so that equal inputs produce equal queries.
func NewSearchQuery(kind SearchKind, term, location string, facets map[string]string, exclusions []string) SearchQuery {
	q := SearchQuery{
		term:     strings.TrimSpace(term),
		location: strings.TrimSpace(location),
		kind:     kind,
		facets:   make(map[string]string, len(facets)),
	}
	for k, v := range facets {
		q.facets[k] = v
	}

	seen := make(map[string]bool, len(exclusions))
	for _, e := range exclusions {
		e = strings.ToLower(strings.Join(strings.Fields(e), " "))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		q.exclusions = append(q.exclusions, e)
	}
	sort.Strings(q.exclusions)
	return q
}

// Term returns the role or industry term.
func (q SearchQuery) Term() string { return q.term }

// Location returns the optional location, empty when unset.
func (q SearchQuery) Location() string { return q.location }

// Kind returns the pipeline this query belongs to.
func (q SearchQuery) Kind() SearchKind { return q.kind }

// Facet returns the selected value for name, or "" when unset.
func (q SearchQuery) Facet(name string) string { return q.facets[name] }

// Facets returns a copy of the facet map.
func (q SearchQuery) Facets() map[string]string {
	out := make(map[string]string, len(q.facets))
	for k, v := range q.facets {
		out[k] = v
	}
	return out
}

// Exclusions returns a copy of the sorted exclusion terms.
func (q SearchQuery) Exclusions() []string {
	return append([]string(nil), q.exclusions...)
}

// RawResult is one record returned by the search provider. Its shape
// depends on the engine: job postings carry company_name and
// detected_extensions, organic web results carry snippet and
// displayed_link.
type RawResult map[string]any

// String returns the string value stored at key, or "" when the key is
// missing or not a string.
func (r RawResult) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Map returns the nested object stored at key, or nil.
func (r RawResult) Map(key string) map[string]any {
	if v, ok := r[key].(map[string]any); ok {
		return v
	}
	return nil
}

// NormalizedResult is the uniform record every later stage works on.
type NormalizedResult struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`

	// Domain is the lower-cased registrable domain of URL (e.g. "stripe.com").
	Domain  string `json:"domain" yaml:"domain"`
	Snippet string `json:"snippet" yaml:"snippet"`

	// CompanyName is inferred on a best-effort basis and may be empty.
	CompanyName string `json:"company_name,omitempty" yaml:"company_name,omitempty"`

	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Via      string `json:"via,omitempty" yaml:"via,omitempty"`
	PostedAt string `json:"posted_at,omitempty" yaml:"posted_at,omitempty"`

	// Source records how the result was obtained: the search engine name,
	// or "constructed" for career pages guessed from the company name.
	Source string `json:"source" yaml:"source"`

	// Query is the provider query string that produced this result.
	Query string `json:"query" yaml:"query"`

	// SourceFacets is a copy of the facets of the originating SearchQuery.
	SourceFacets map[string]string `json:"source_facets,omitempty" yaml:"source_facets,omitempty"`
}

// RelevanceLabel is the verdict of the relevance filter for one result.
type RelevanceLabel string

const (
	LabelRelevant   RelevanceLabel = "relevant"
	LabelIrrelevant RelevanceLabel = "irrelevant"
	LabelUncertain  RelevanceLabel = "uncertain"
)

// ParseLabel maps free-form model output to a RelevanceLabel. Unknown
// values report ok=false.
func ParseLabel(s string) (RelevanceLabel, bool) {
	switch RelevanceLabel(strings.ToLower(strings.TrimSpace(s))) {
	case LabelRelevant:
		return LabelRelevant, true
	case LabelIrrelevant:
		return LabelIrrelevant, true
	case LabelUncertain:
		return LabelUncertain, true
	}
	return "", false
}

// Verdict is what a relevance evaluator returns for one candidate.
type Verdict struct {
	Label     RelevanceLabel `json:"label" yaml:"label"`
	Rationale string         `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// ScoredResult is a NormalizedResult with the relevance filter's verdict.
// Label is empty when the filter did not run.
type ScoredResult struct {
	NormalizedResult `yaml:",inline"`

	Label     RelevanceLabel `json:"relevance_label,omitempty" yaml:"relevance_label,omitempty"`
	Rationale string         `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}
