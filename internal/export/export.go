// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders pipeline output for people and other programs:
// CSV, a plain URL list, JSON, a human-readable table, YAML run files and
// a SQLite sink. Nothing here feeds back into a later run.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/job-hunter/internal/pipeline"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Output format names accepted by Write.
const (
	FormatTableName = "table"
	FormatJSONName  = "json"
	FormatCSVName   = "csv"
	FormatURLsName  = "urls"
)

// Formats lists the accepted format names.
var Formats = []string{FormatTableName, FormatJSONName, FormatCSVName, FormatURLsName}

// csvHeader is the fixed CSV column order.
var csvHeader = []string{"title", "url", "company_name", "relevance_label"}

// ToCSV renders results with a header row. Unfiltered results have an
// empty relevance_label.
func ToCSV(results []types.ScoredResult) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Title, r.URL, r.CompanyName, string(r.Label)}); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToURLList returns one URL per line, in result order.
func ToURLList(results []types.ScoredResult) string {
	if len(results) == 0 {
		return ""
	}
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}
	return strings.Join(urls, "\n") + "\n"
}

// FormatJSON writes out as indented JSON.
func FormatJSON(out pipeline.Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FormatTable writes a fixed-width table of results followed by notices
// and run counts.
func FormatTable(out pipeline.Output, w io.Writer) error {
	for _, n := range out.Notices {
		fmt.Fprintf(w, "! %s\n", n)
	}
	if len(out.Notices) > 0 {
		fmt.Fprintln(w)
	}

	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	if out.Filtered {
		fmt.Fprintf(w, "%-4s  %-10s  %-45s  %-20s  %s\n", "#", "Relevance", "Title", "Company", "URL")
		fmt.Fprintln(w, strings.Repeat("-", 120))
	} else {
		fmt.Fprintf(w, "%-4s  %-45s  %-20s  %s\n", "#", "Title", "Company", "URL")
		fmt.Fprintln(w, strings.Repeat("-", 108))
	}

	for i, r := range out.Results {
		title := clip(r.Title, 45)
		company := clip(r.CompanyName, 20)
		if out.Filtered {
			fmt.Fprintf(w, "%-4d  %-10s  %-45s  %-20s  %s\n", i+1, r.Label, title, company, r.URL)
			continue
		}
		fmt.Fprintf(w, "%-4d  %-45s  %-20s  %s\n", i+1, title, company, r.URL)
	}

	fmt.Fprintf(w, "\n%d results (%d dropped, %d duplicates removed)\n",
		len(out.Results), out.Dropped, out.DupsRemoved)
	return nil
}

// Write renders out in the named format.
func Write(w io.Writer, out pipeline.Output, format string) error {
	switch strings.ToLower(format) {
	case FormatTableName, "":
		return FormatTable(out, w)
	case FormatJSONName:
		return FormatJSON(out, w)
	case FormatCSVName:
		data, err := ToCSV(out.Results)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatURLsName:
		_, err := io.WriteString(w, ToURLList(out.Results))
		return err
	default:
		return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
