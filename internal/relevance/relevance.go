// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance labels normalized results as relevant, irrelevant or
// uncertain against the user's stated intent by asking a language model.
//
// The filter fails open: when the model cannot be reached or answers with
// something unparseable, the result is labeled uncertain and kept. Only
// results the model explicitly calls irrelevant are ever removed.
package relevance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/job-hunter/internal/query"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrReasoningUnavailable reports that the language model could not produce
// a usable verdict.
var ErrReasoningUnavailable = errors.New("reasoning service unavailable")

// notEvaluated is the rationale attached to results skipped after the
// context was cancelled.
const notEvaluated = "not evaluated"

// Evaluator judges one candidate against the user's intent.
type Evaluator interface {
	Evaluate(ctx context.Context, candidate types.NormalizedResult, intent string) (types.Verdict, error)
}

// Score asks ev for a verdict on each result in order, one call at a time.
// Evaluator errors and unknown labels yield LabelUncertain so the result is
// kept. Once ctx is done, the remaining results are labeled uncertain
// without calling ev.
func Score(ctx context.Context, ev Evaluator, results []types.NormalizedResult, intent string, w io.Writer) []types.ScoredResult {
	out := make([]types.ScoredResult, 0, len(results))
	for i, r := range results {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "relevance: stopped after %d of %d results: %v\n", i, len(results), ctx.Err())
			for _, rest := range results[i:] {
				out = append(out, types.ScoredResult{NormalizedResult: rest, Label: types.LabelUncertain, Rationale: notEvaluated})
			}
			return out
		}

		v, err := ev.Evaluate(ctx, r, intent)
		if err != nil {
			fmt.Fprintf(w, "relevance: %s: %v\n", r.URL, err)
			out = append(out, types.ScoredResult{NormalizedResult: r, Label: types.LabelUncertain, Rationale: err.Error()})
			continue
		}

		label, ok := types.ParseLabel(string(v.Label))
		if !ok {
			fmt.Fprintf(w, "relevance: %s: unknown label %q\n", r.URL, v.Label)
			label = types.LabelUncertain
		}
		out = append(out, types.ScoredResult{NormalizedResult: r, Label: label, Rationale: v.Rationale})
	}
	return out
}

// Keep returns the results not labeled irrelevant, in order.
func Keep(results []types.ScoredResult) []types.ScoredResult {
	out := make([]types.ScoredResult, 0, len(results))
	for _, r := range results {
		if r.Label == types.LabelIrrelevant {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Unscored wraps results without a label, for runs where the filter is off.
func Unscored(results []types.NormalizedResult) []types.ScoredResult {
	out := make([]types.ScoredResult, len(results))
	for i, r := range results {
		out[i] = types.ScoredResult{NormalizedResult: r}
	}
	return out
}

// JobIntent describes a job search in plain words for the model.
func JobIntent(f query.JobFacets) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job postings for the position %q.", strings.TrimSpace(f.Position))
	line := func(name, v string) {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, types.AnyValue) {
			v = types.AnyValue
		}
		fmt.Fprintf(&b, "\n- %s: %s", name, v)
	}
	line("Employment type", f.EmploymentType)
	line("Work mode", f.WorkMode)
	line("Experience level", f.ExperienceLevel)
	line("Location preference", f.Location)
	if len(f.Exclusions) > 0 {
		fmt.Fprintf(&b, "\n- Must not involve: %s", strings.Join(f.Exclusions, ", "))
	}
	return b.String()
}

// CareerIntent describes a career-page lookup for the model.
func CareerIntent(companies []string) string {
	return "The official careers or jobs page of one of these companies: " + strings.Join(companies, ", ") + "."
}

// verdictJSON is the shape the prompt asks the model to answer with.
type verdictJSON struct {
	Label     string `json:"label"`
	Rationale string `json:"rationale"`
}

// parseVerdict decodes the model's reply, tolerating a Markdown code
// fence around the JSON object.
func parseVerdict(content string) (types.Verdict, error) {
	content = stripFence(content)
	var v verdictJSON
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return types.Verdict{}, fmt.Errorf("%w: parsing model reply: %v", ErrReasoningUnavailable, err)
	}
	return types.Verdict{Label: types.RelevanceLabel(strings.ToLower(strings.TrimSpace(v.Label))), Rationale: strings.TrimSpace(v.Rationale)}, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
