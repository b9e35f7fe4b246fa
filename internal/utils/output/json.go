package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/jobhub/pkg/models"
)

// WriteJSON writes a single site's jobs as a JSON array, or several sites
// as an array of {site, jobs} groups.
func WriteJSON(w io.Writer, results []models.SiteResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if len(results) == 1 {
		jobs := results[0].Jobs
		if jobs == nil {
			jobs = []models.Job{}
		}
		return enc.Encode(jobs)
	}
	if results == nil {
		results = []models.SiteResult{}
	}
	return enc.Encode(results)
}
