// Package output renders search results as a terminal table, JSON, CSV or
// Markdown.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/law-makers/jobhub/pkg/models"
)

// Format selects an output renderer
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts a format name or a file extension such as ".csv"
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "table", "txt":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, csv or md)", s)
}

// Render writes results to w in the given format
func Render(w io.Writer, format Format, results []models.SiteResult) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatMarkdown:
		return WriteMarkdown(w, results)
	default:
		return WriteTable(w, results)
	}
}

// Save renders results into the file at path
func Save(path string, format Format, results []models.SiteResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(file, format, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Columns returns the canonical fields followed by every other key found in
// jobs, sorted. The result is stable for a given set of jobs.
func Columns(jobs []models.Job) []string {
	cols := append([]string(nil), models.CanonicalFields...)
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}

	var extra []string
	for _, job := range jobs {
		for k := range job {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

func allJobs(results []models.SiteResult) []models.Job {
	var jobs []models.Job
	for _, r := range results {
		jobs = append(jobs, r.Jobs...)
	}
	return jobs
}

func heading(col string) string {
	if col == "" {
		return col
	}
	return strings.ToUpper(col[:1]) + col[1:]
}
