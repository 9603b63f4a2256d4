// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns user-selected facets into search-provider query
// strings. Every function here is pure: the same facets always produce the
// same strings, and nothing touches the network.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrEmptyTerm is returned when the role or industry term is blank.
var ErrEmptyTerm = errors.New("position or industry term is required")

// JobFacets is the user's input for a job search.
type JobFacets struct {
	Position        string   `json:"position" yaml:"position"`
	Location        string   `json:"location,omitempty" yaml:"location,omitempty"`
	EmploymentType  string   `json:"employment_type,omitempty" yaml:"employment_type,omitempty"`
	WorkMode        string   `json:"work_mode,omitempty" yaml:"work_mode,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty" yaml:"experience_level,omitempty"`
	Exclusions      []string `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
}

// BuildJobQuery returns the SearchQuery for facets and its single provider
// query string. Location is carried on the SearchQuery and sent to the
// provider as a separate parameter; it never appears in the query string.
func BuildJobQuery(f JobFacets) (types.SearchQuery, string, error) {
	if strings.TrimSpace(f.Position) == "" {
		return types.SearchQuery{}, "", ErrEmptyTerm
	}

	facets := map[string]string{}
	setFacet(facets, types.FacetEmploymentType, f.EmploymentType)
	setFacet(facets, types.FacetWorkMode, f.WorkMode)
	setFacet(facets, types.FacetExperienceLevel, f.ExperienceLevel)

	q := types.NewSearchQuery(types.KindJobs, f.Position, f.Location, facets, f.Exclusions)
	return q, JobQueryString(q), nil
}

// JobQueryString renders the provider query for a job SearchQuery: the
// term, the lower-cased employment type, "remote" for remote work, then
// each exclusion negated. The experience level stays on the SearchQuery
// for the relevance filter and is not sent to the provider.
func JobQueryString(q types.SearchQuery) string {
	parts := []string{collapse(q.Term())}
	if v := q.Facet(types.FacetEmploymentType); v != "" {
		parts = append(parts, strings.ToLower(v))
	}
	if strings.EqualFold(q.Facet(types.FacetWorkMode), "remote") {
		parts = append(parts, "remote")
	}
	parts = append(parts, negations(q.Exclusions())...)
	return strings.Join(parts, " ")
}

// careerStrategies are tried in order for each company. %[1]s is the
// company name as given, %[2]s its lower-cased slug.
var careerStrategies = []string{
	"%[2]s.com careers",
	"%[2]s.com jobs",
	"%[1]s careers site:careers.%[2]s.com",
	"%[1]s jobs hiring",
	"%[1]s company careers page",
}

// CareerQuery returns the SearchQuery describing a career-page lookup for
// one company.
func CareerQuery(company string, exclusions []string) types.SearchQuery {
	facets := map[string]string{types.FacetCompany: collapse(company)}
	return types.NewSearchQuery(types.KindCareers, company, "", facets, exclusions)
}

// BuildCareerQueries returns the strategy query strings for q's company,
// most specific first. It returns nil for a blank company.
func BuildCareerQueries(q types.SearchQuery) []string {
	company := collapse(q.Term())
	if company == "" {
		return nil
	}
	slug := Slug(company)
	neg := negations(q.Exclusions())

	out := make([]string, 0, len(careerStrategies))
	for _, tmpl := range careerStrategies {
		s := fmt.Sprintf(tmpl, company, slug)
		if len(neg) > 0 {
			s += " " + strings.Join(neg, " ")
		}
		out = append(out, s)
	}
	return out
}

// Slug lower-cases a company name and removes spaces and dots, e.g.
// "Palo Alto Networks" -> "paloaltonetworks".
func Slug(company string) string {
	s := strings.ToLower(collapse(company))
	return strings.NewReplacer(" ", "", ".", "").Replace(s)
}

// negations renders exclusions with the provider's "-" operator. Phrases
// are quoted so the operator covers every word.
func negations(exclusions []string) []string {
	out := make([]string, 0, len(exclusions))
	for _, e := range exclusions {
		if strings.Contains(e, " ") {
			out = append(out, `-"`+e+`"`)
			continue
		}
		out = append(out, "-"+e)
	}
	return out
}

func setFacet(m map[string]string, name, value string) {
	value = collapse(value)
	if value == "" || strings.EqualFold(value, types.AnyValue) {
		return
	}
	m[name] = value
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
