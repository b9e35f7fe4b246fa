package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/law-makers/jobhub/internal/ui"
	"github.com/law-makers/jobhub/pkg/models"
)

// tableColumns are the fields shown in the terminal view
var tableColumns = []string{models.FieldTitle, models.FieldCompany, models.FieldLocation, models.FieldPosted, models.FieldURL}

const maxCell = 48

// WriteTable prints each site's jobs as an aligned table under a heading
func WriteTable(w io.Writer, results []models.SiteResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", ui.Bold(r.Site), ui.Info(fmt.Sprintf("(%d results)", len(r.Jobs))))
		if len(r.Jobs) == 0 {
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		headers := make([]string, len(tableColumns))
		for j, c := range tableColumns {
			headers[j] = strings.ToUpper(c)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))

		for _, job := range r.Jobs {
			cells := make([]string, len(tableColumns))
			for j, c := range tableColumns {
				cells[j] = job[c]
				if c != models.FieldURL {
					cells[j] = truncate(cells[j], maxCell)
				}
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
