package sites

import (
	"context"
	"net/url"
	"strconv"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/extract"
	urlutil "github.com/law-makers/jobhub/internal/utils/url"
	"github.com/law-makers/jobhub/pkg/models"
)

const (
	timesJobsOrigin = "https://www.timesjobs.com"
	// DefaultTimesJobsLimit caps the number of cards returned per page
	DefaultTimesJobsLimit = 25
)

// TimesJobs scrapes the server-rendered candidate search page
type TimesJobs struct {
	listing
}

// NewTimesJobs builds the adapter. limit <= 0 uses DefaultTimesJobsLimit.
func NewTimesJobs(fetcher engine.Fetcher, limit int, baseURL string) *TimesJobs {
	if limit <= 0 {
		limit = DefaultTimesJobsLimit
	}
	return &TimesJobs{listing: listing{
		site:    "timesjobs",
		source:  "TimesJobs",
		origin:  originOr(baseURL, timesJobsOrigin),
		fetcher: fetcher,
		limit:   limit,
		check:   requireField(models.FieldURL),
		schema: extract.Schema{
			Name:         "TimesJobs",
			BaseSelector: "li.clearfix.job-bx.wht-shd-bx",
			Fields: []extract.Field{
				extract.TextField(models.FieldTitle, "h2 a"),
				extract.TextField(models.FieldCompany, "h3.joblist-comp-name"),
				extract.TextField(models.FieldSkills, "span.srp-skills"),
				extract.TextField(models.FieldExperience, "ul.top-jd-dtl.clearfix li"),
				extract.TextField(models.FieldLocation, "ul.top-jd-dtl.clearfix li span"),
				extract.TextField(models.FieldPosted, "span.sim-posted span"),
				extract.AttrField(models.FieldURL, "h2 a", "href"),
			},
		},
		defaults: map[string]string{
			models.FieldSkills:     models.NotMentioned,
			models.FieldExperience: models.NotMentioned,
		},
	}}
}

func (a *TimesJobs) Name() string { return a.site }

func (a *TimesJobs) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.run(ctx, a.SearchURL(req))
}

// SearchURL builds the personalized search URL for req
func (a *TimesJobs) SearchURL(req models.SearchRequest) string {
	page := strconv.Itoa(req.Page)
	q := url.Values{}
	q.Set("searchType", "personalizedSearch")
	q.Set("from", "submit")
	q.Set("txtKeywords", req.Query)
	q.Set("txtLocation", req.Location)
	q.Set("sequence", page)
	q.Set("startPage", page)
	return urlutil.Build(a.origin, "/candidate/job-search.html", q)
}
