package sites

import (
	"context"
	"net/url"
	"strconv"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/extract"
	"github.com/law-makers/jobhub/internal/normalize"
	urlutil "github.com/law-makers/jobhub/internal/utils/url"
	"github.com/law-makers/jobhub/pkg/models"
)

const (
	indeedOrigin  = "https://www.indeed.com"
	indeedPerPage = 10
)

// Indeed renders its result list client-side, so the adapter expects a
// rendered fetcher.
type Indeed struct {
	listing
}

func NewIndeed(fetcher engine.Fetcher, baseURL string) *Indeed {
	return &Indeed{listing: listing{
		site:         "indeed",
		source:       "Indeed",
		origin:       originOr(baseURL, indeedOrigin),
		fetcher:      fetcher,
		waitSelector: "div.job_seen_beacon",
		schema: extract.Schema{
			Name:         "Indeed Jobs",
			BaseSelector: "div.job_seen_beacon",
			Fields: []extract.Field{
				extract.TextField(models.FieldTitle, "h2.jobTitle span, h2.jobsearch-JobInfoHeader-title"),
				extract.TextField(models.FieldCompany, "span.companyName, div[data-company-name='true'], span[data-testid='company-name']"),
				extract.TextField(models.FieldLocation, "div.companyLocation, div[data-testid='inlineHeader-companyLocation'], div[data-testid='text-location']"),
				extract.TextField(models.FieldPosted, "span.date"),
				extract.AttrField(models.FieldURL, "h2.jobTitle a", "href"),
			},
		},
	}}
}

func (a *Indeed) Name() string { return a.site }

func (a *Indeed) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.run(ctx, a.SearchURL(req))
}

// SearchURL builds /jobs?q=&l=&start= for req
func (a *Indeed) SearchURL(req models.SearchRequest) string {
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("l", req.Location)
	q.Set("start", strconv.Itoa(normalize.Offset(req.Page, indeedPerPage)))
	return urlutil.Build(a.origin, "/jobs", q)
}
