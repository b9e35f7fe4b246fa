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

const weWorkRemotelyOrigin = "https://weworkremotely.com"

// WeWorkRemotely serves its search results as plain HTML
type WeWorkRemotely struct {
	listing
}

func NewWeWorkRemotely(fetcher engine.Fetcher, baseURL string) *WeWorkRemotely {
	return &WeWorkRemotely{listing: listing{
		site:    "weworkremotely",
		source:  "WeWorkRemotely",
		origin:  originOr(baseURL, weWorkRemotelyOrigin),
		fetcher: fetcher,
		schema: extract.Schema{
			Name:         "WeWorkRemotely Jobs",
			BaseSelector: "li.new-listing-container",
			Fields: []extract.Field{
				extract.TextField(models.FieldTitle, "h4.new-listing__header__title"),
				extract.TextField(models.FieldCompany, "p.new-listing__company-name"),
				extract.TextField(models.FieldLocation, "p.new-listing__company-headquarters"),
				extract.TextField(models.FieldPosted, "p.new-listing__header__icons__date"),
				extract.AttrField(models.FieldURL, "a", "href"),
			},
		},
		defaults: map[string]string{models.FieldLocation: "Remote"},
	}}
}

func (a *WeWorkRemotely) Name() string { return a.site }

func (a *WeWorkRemotely) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.run(ctx, a.SearchURL(req))
}

// SearchURL builds /remote-jobs/search?term=&page= for req. The board has
// no location filter, so req.Location is ignored.
func (a *WeWorkRemotely) SearchURL(req models.SearchRequest) string {
	q := url.Values{}
	q.Set("term", req.Query)
	q.Set("page", strconv.Itoa(req.Page))
	return urlutil.Build(a.origin, "/remote-jobs/search", q)
}
