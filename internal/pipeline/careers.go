// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"

	"github.com/pdiddy/job-hunter/internal/normalize"
	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// SourceConstructed marks career pages guessed from the company name.
const SourceConstructed = "constructed"

// careerKeywords mark a link or title as a career page. Snippets are
// checked against the first snippetKeywords entries only.
var careerKeywords = []string{
	"career", "job", "hiring", "work", "employment",
	"talent", "opportunity", "join", "apply", "vacancy",
}

const snippetKeywords = 5

// LooksLikeCareerPage reports whether r is plausibly company's career
// page: a career keyword in its link or title, a narrower keyword in its
// snippet, or the company's slug in its link.
func LooksLikeCareerPage(r types.NormalizedResult, company string) bool {
	link := strings.ToLower(r.URL)
	title := strings.ToLower(r.Title)
	snippet := strings.ToLower(r.Snippet)

	for i, kw := range careerKeywords {
		if strings.Contains(link, kw) || strings.Contains(title, kw) {
			return true
		}
		if i < snippetKeywords && strings.Contains(snippet, kw) {
			return true
		}
	}

	if slug := query.Slug(company); slug != "" && strings.Contains(link, slug) {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(company))
	return name != "" && strings.Contains(link, name)
}

// constructedPage is the fallback when no strategy finds a career page.
func constructedPage(cq types.SearchQuery, company string) types.NormalizedResult {
	host := "careers." + query.Slug(company) + ".com"
	return types.NormalizedResult{
		Title:        company + " - Careers (Constructed URL)",
		URL:          "https://" + host,
		Domain:       normalize.RegistrableDomain(host),
		Snippet:      "Career opportunities at " + company + ". Visit their career page to explore current openings.",
		CompanyName:  company,
		Source:       SourceConstructed,
		SourceFacets: cq.Facets(),
	}
}

// cleanCompanies trims names and drops blanks and repeats, keeping order.
func cleanCompanies(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, c := range in {
		c = strings.Join(strings.Fields(c), " ")
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func joinCompanies(companies []string) string {
	return strings.Join(companies, ", ")
}
