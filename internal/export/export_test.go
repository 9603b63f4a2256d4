// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/pkg/types"
)

func scored(title, url, company string, label types.RelevanceLabel) types.ScoredResult {
	return types.ScoredResult{
		NormalizedResult: types.NormalizedResult{
			Title:       title,
			URL:         url,
			Domain:      "acme.com",
			CompanyName: company,
			Source:      "google_jobs",
			Query:       "Data Engineer -recruiter",
		},
		Label: label,
	}
}

func sampleOutput() pipeline.Output {
	return pipeline.Output{
		Kind:    types.KindJobs,
		Query:   "Data Engineer -recruiter",
		Queries: []string{"Data Engineer -recruiter"},
		Results: []types.ScoredResult{
			scored("Data Engineer", "https://acme.com/jobs/1", "Acme, Inc.", types.LabelRelevant),
			scored(`Engineer "II"`, "https://globex.io/jobs/2", "Globex", types.LabelUncertain),
		},
		Filtered:    true,
		Dropped:     1,
		DupsRemoved: 2,
		Notices:     []string{"something to note"},
	}
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(sampleOutput().Results)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "title,url,company_name,relevance_label", lines[0])
	assert.Equal(t, `Data Engineer,https://acme.com/jobs/1,"Acme, Inc.",relevant`, lines[1])
	assert.Equal(t, `"Engineer ""II""",https://globex.io/jobs/2,Globex,uncertain`, lines[2])

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Acme, Inc.", records[1][2])
}

func TestToCSVUnfiltered(t *testing.T) {
	data, err := ToCSV([]types.ScoredResult{scored("t", "https://a.com", "", "")})
	require.NoError(t, err)
	assert.Equal(t, "title,url,company_name,relevance_label\nt,https://a.com,,\n", string(data))
}

func TestToCSVEmpty(t *testing.T) {
	data, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "title,url,company_name,relevance_label\n", string(data))
}

func TestToURLList(t *testing.T) {
	assert.Equal(t, "https://acme.com/jobs/1\nhttps://globex.io/jobs/2\n", ToURLList(sampleOutput().Results))
	assert.Equal(t, "", ToURLList(nil))
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTable(sampleOutput(), &buf))
	out := buf.String()

	assert.Contains(t, out, "! something to note")
	assert.Contains(t, out, "Relevance")
	assert.Contains(t, out, "relevant")
	assert.Contains(t, out, "https://globex.io/jobs/2")
	assert.Contains(t, out, "2 results (1 dropped, 2 duplicates removed)")
}

func TestFormatTableUnfilteredAndEmpty(t *testing.T) {
	o := sampleOutput()
	o.Filtered = false
	var buf bytes.Buffer
	require.NoError(t, FormatTable(o, &buf))
	assert.NotContains(t, buf.String(), "Relevance")

	buf.Reset()
	require.NoError(t, FormatTable(pipeline.Output{Notices: []string{"search unavailable"}}, &buf))
	assert.Contains(t, buf.String(), "! search unavailable")
	assert.Contains(t, buf.String(), "No results found.")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleOutput(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	results := decoded["results"].([]any)
	require.Len(t, results, 2)
	first := results[0].(map[string]any)
	assert.Equal(t, "relevant", first["relevance_label"])
	assert.Equal(t, "https://acme.com/jobs/1", first["url"])
}

func TestWriteFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"csv", "title,url,company_name,relevance_label"},
		{"urls", "https://acme.com/jobs/1\n"},
		{"json", `"relevance_label": "relevant"`},
		{"TABLE", "Relevance"},
		{"", "Relevance"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleOutput(), tt.format))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	err := Write(&bytes.Buffer{}, sampleOutput(), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	facets := query.JobFacets{Position: "Data Engineer", Exclusions: []string{"recruiter"}}
	cfg := types.PipelineConfig{MaxResults: 20, Filter: true, Dedup: types.DedupDomain}

	rf := NewRunFile(sampleOutput(), RunRequest{Facets: &facets}, cfg, at)
	require.NoError(t, WriteRunFile(path, rf))

	got, err := ReadRunFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.KindJobs, got.Kind)
	assert.Equal(t, "Data Engineer -recruiter", got.Request.Query)
	require.NotNil(t, got.Request.Facets)
	assert.Equal(t, "Data Engineer", got.Request.Facets.Position)
	assert.Equal(t, 2, got.Summary.Total)
	assert.True(t, got.Summary.Timestamp.Equal(at))
	assert.Equal(t, 20, got.Config.MaxResults)

	assert.Equal(t, sampleOutput(), got.Output())
}

func TestReadRunFileErrors(t *testing.T) {
	_, err := ReadRunFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	sink, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id1, err := sink.Save(ctx, sampleOutput(), at)
	require.NoError(t, err)
	id2, err := sink.Save(ctx, pipeline.Output{Kind: types.KindCareers, Query: "Google", Notices: []string{"search unavailable"}}, at)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, results, err := sink.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, results)

	var label string
	require.NoError(t, sink.db.QueryRow(`SELECT relevance_label FROM results WHERE run_id = ? AND position = 1`, id1).Scan(&label))
	assert.Equal(t, "relevant", label)
}

func TestSQLiteSinkReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	sink, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = sink.Save(context.Background(), sampleOutput(), time.Now())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	sink, err = OpenSQLite(path)
	require.NoError(t, err)
	defer sink.Close()
	runs, results, err := sink.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, results)
}
