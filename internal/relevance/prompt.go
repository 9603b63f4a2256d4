// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/job-hunter/pkg/types"
)

// systemPrompt is sent as the system message by chat-style backends.
const systemPrompt = "You are a helpful job matching assistant. Always respond with valid JSON only."

// verdictPromptTmpl asks the model to label one search result against the
// user's intent.
var verdictPromptTmpl = template.Must(template.New("verdict").Parse(`You are a job recommendation expert. Decide whether the search result below matches what the user is looking for.

What the user is looking for:
{{.Intent}}

Search result:
Title: {{.Candidate.Title}}
URL: {{.Candidate.URL}}
{{- if .Candidate.CompanyName}}
Company: {{.Candidate.CompanyName}}
{{- end}}
{{- if .Candidate.Location}}
Location: {{.Candidate.Location}}
{{- end}}
{{- if .Candidate.Snippet}}
Description: {{.Candidate.Snippet}}
{{- end}}

Answer with a JSON object with two fields:
- label: one of "relevant", "irrelevant", "uncertain"
- rationale: one short sentence explaining the label

Use "uncertain" when the result does not say enough to decide.
Only return the JSON, no additional text.

Example response:
{"label": "relevant", "rationale": "Remote data engineering role at the requested level."}
`))

// renderPrompt executes the verdict prompt for one candidate.
func renderPrompt(candidate types.NormalizedResult, intent string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Intent    string
		Candidate types.NormalizedResult
	}{Intent: intent, Candidate: candidate}
	if err := verdictPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
