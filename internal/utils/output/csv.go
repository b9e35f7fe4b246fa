package output

import (
	"encoding/csv"
	"io"

	"github.com/law-makers/jobhub/pkg/models"
)

// WriteCSV writes one row per job across all sites, with a header row
// from Columns.
func WriteCSV(w io.Writer, results []models.SiteResult) error {
	jobs := allJobs(results)
	headers := Columns(jobs)

	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return err
	}

	row := make([]string, len(headers))
	for _, job := range jobs {
		for i, h := range headers {
			row[i] = job[h]
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
