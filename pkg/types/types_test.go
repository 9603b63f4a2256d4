// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchQueryIsImmutable(t *testing.T) {
	facets := map[string]string{FacetWorkMode: "Remote"}
	excl := []string{"Recruiter", "recruiter", "  third   party "}
	q := NewSearchQuery(KindJobs, " Data Engineer ", "Berlin", facets, excl)

	facets[FacetWorkMode] = "On-site"
	excl[0] = "changed"
	q.Facets()[FacetWorkMode] = "Hybrid"

	assert.Equal(t, "Data Engineer", q.Term())
	assert.Equal(t, "Berlin", q.Location())
	assert.Equal(t, KindJobs, q.Kind())
	assert.Equal(t, "Remote", q.Facet(FacetWorkMode))
	assert.Equal(t, []string{"recruiter", "third party"}, q.Exclusions())
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in     string
		want   RelevanceLabel
		wantOK bool
	}{
		{"relevant", LabelRelevant, true},
		{" Irrelevant ", LabelIrrelevant, true},
		{"UNCERTAIN", LabelUncertain, true},
		{"maybe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLabel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestTopN(t *testing.T) {
	assert.Len(t, TopN(0), DefaultCompanyCount)
	assert.Equal(t, TopCompanies[:3], TopN(3))
	assert.Len(t, TopN(len(TopCompanies)+10), len(TopCompanies))

	got := TopN(1)
	got[0] = "changed"
	assert.NotEqual(t, "changed", TopCompanies[0])
}

func TestReasoningConfigConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  ReasoningConfig
		want bool
	}{
		{"azure complete", ReasoningConfig{APIKey: "k", Deployment: "gpt", Endpoint: "https://x.openai.azure.com"}, true},
		{"azure without endpoint", ReasoningConfig{APIKey: "k", Deployment: "gpt"}, false},
		{"openai without endpoint", ReasoningConfig{Provider: ProviderOpenAI, APIKey: "k", Deployment: "gpt-4o-mini"}, true},
		{"missing key", ReasoningConfig{Deployment: "gpt", Endpoint: "https://x"}, false},
		{"missing deployment", ReasoningConfig{APIKey: "k", Endpoint: "https://x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}

func TestParseDedupMode(t *testing.T) {
	tests := []struct {
		in      string
		want    DedupMode
		wantErr bool
	}{
		{"", DedupDomain, false},
		{"domain", DedupDomain, false},
		{" Listing ", DedupListing, false},
		{"fuzzy", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDedupMode(tt.in)
		if tt.wantErr {
			assert.ErrorContains(t, err, "unknown dedup mode", tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
