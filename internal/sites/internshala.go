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

const internshalaOrigin = "https://internshala.com"

// Internshala lists internships under slug paths rather than query strings
type Internshala struct {
	listing
}

func NewInternshala(fetcher engine.Fetcher, baseURL string) *Internshala {
	return &Internshala{listing: listing{
		site:    "internshala",
		source:  "Internshala",
		origin:  originOr(baseURL, internshalaOrigin),
		fetcher: fetcher,
		schema: extract.Schema{
			Name:         "Internshala Internships",
			BaseSelector: "div.individual_internship",
			Fields: []extract.Field{
				extract.TextField(models.FieldTitle, "h3.job-internship-name a.job-title-href"),
				extract.TextField(models.FieldCompany, "p.company-name"),
				extract.TextField(models.FieldLocation, "div.row-1-item.locations a"),
				extract.TextField(models.FieldStipend, "span.stipend"),
				extract.TextField(models.FieldDuration, "div.row-1-item span"),
				extract.TextField(models.FieldPosted, "div.status-container span, div.status span"),
				extract.AttrField(models.FieldURL, "h3.job-internship-name a.job-title-href", "href"),
			},
		},
		defaults: map[string]string{
			models.FieldStipend:  models.Unpaid,
			models.FieldDuration: models.NotMentioned,
		},
	}}
}

func (a *Internshala) Name() string { return a.site }

func (a *Internshala) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.run(ctx, a.SearchURL(req))
}

// SearchURL builds /internships/{query}-internship[-in-{location}]/[page-N/]
func (a *Internshala) SearchURL(req models.SearchRequest) string {
	path := "/internships/" + url.PathEscape(urlutil.Slug(req.Query)) + "-internship"
	if loc := urlutil.Slug(req.Location); loc != "" {
		path += "-in-" + url.PathEscape(loc)
	}
	path += "/"
	if req.Page > 1 {
		path += "page-" + strconv.Itoa(req.Page) + "/"
	}
	return urlutil.Build(a.origin, path, nil)
}
