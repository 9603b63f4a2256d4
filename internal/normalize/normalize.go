// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps heterogeneous search provider records into the
// uniform NormalizedResult shape. Records without a usable title or URL
// are rejected with ErrMalformedResult and never reach later stages.
package normalize

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrMalformedResult reports a raw record missing a mandatory field.
var ErrMalformedResult = errors.New("malformed result")

// maxSnippetRunes bounds the snippet kept per result.
const maxSnippetRunes = 500

// Origin describes where a batch of raw records came from.
type Origin struct {
	// Query is the SearchQuery the records answer.
	Query types.SearchQuery

	// QueryString is the provider query that was sent.
	QueryString string

	// Source names the search engine, e.g. "google_jobs".
	Source string
}

// Normalize converts one raw record. It fails with ErrMalformedResult when
// the title or URL is absent or the URL is not an absolute http(s) URL.
func Normalize(raw types.RawResult, o Origin) (types.NormalizedResult, error) {
	title := CleanText(raw.String("title"))
	if title == "" {
		return types.NormalizedResult{}, fmt.Errorf("%w: missing title", ErrMalformedResult)
	}

	link := resultLink(raw)
	if link == "" {
		return types.NormalizedResult{}, fmt.Errorf("%w: %q has no url", ErrMalformedResult, title)
	}
	canonical, host, err := CanonicalURL(link)
	if err != nil {
		return types.NormalizedResult{}, fmt.Errorf("%w: %q: %v", ErrMalformedResult, title, err)
	}

	domain := RegistrableDomain(host)
	r := types.NormalizedResult{
		Title:        title,
		URL:          canonical,
		Domain:       domain,
		Snippet:      snippet(raw),
		Location:     CleanText(raw.String("location")),
		Via:          CleanText(raw.String("via")),
		Source:       o.Source,
		Query:        o.QueryString,
		SourceFacets: o.Query.Facets(),
	}
	if ext := raw.Map("detected_extensions"); ext != nil {
		if v, ok := ext["posted_at"].(string); ok {
			r.PostedAt = CleanText(v)
		}
	}

	r.CompanyName = CleanText(raw.String("company_name"))
	if r.CompanyName == "" && o.Query.Kind() != types.KindJobs {
		r.CompanyName = CompanyFromTitle(title)
	}
	if r.CompanyName == "" {
		r.CompanyName = CompanyFromDomain(domain)
	}
	return r, nil
}

// NormalizeAll normalizes raws in order, dropping malformed records. Each
// drop is reported to w. It returns the surviving results and the number
// dropped.
func NormalizeAll(raws []types.RawResult, o Origin, w io.Writer) ([]types.NormalizedResult, int) {
	out := make([]types.NormalizedResult, 0, len(raws))
	dropped := 0
	for i, raw := range raws {
		r, err := Normalize(raw, o)
		if err != nil {
			fmt.Fprintf(w, "dropped result %d for %q: %v\n", i+1, o.QueryString, err)
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

// resultLink picks the record's URL: the direct link, then the first apply
// option, then the provider share link.
func resultLink(raw types.RawResult) string {
	if l := strings.TrimSpace(raw.String("link")); l != "" {
		return l
	}
	if opts, ok := raw["apply_options"].([]any); ok {
		for _, o := range opts {
			m, ok := o.(map[string]any)
			if !ok {
				continue
			}
			if l, ok := m["link"].(string); ok && strings.TrimSpace(l) != "" {
				return strings.TrimSpace(l)
			}
		}
	}
	return strings.TrimSpace(raw.String("share_link"))
}

func snippet(raw types.RawResult) string {
	s := raw.String("snippet")
	if strings.TrimSpace(s) == "" {
		s = raw.String("description")
	}
	return truncateRunes(CleanText(StripHTML(s)), maxSnippetRunes)
}

// StripHTML returns the text content of s when it contains markup.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// CleanText collapses whitespace, including non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}
