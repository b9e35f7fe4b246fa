package sites

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/extract"
	"github.com/law-makers/jobhub/internal/normalize"
	urlutil "github.com/law-makers/jobhub/internal/utils/url"
	"github.com/law-makers/jobhub/pkg/models"
)

const (
	linkedInOrigin  = "https://www.linkedin.com"
	linkedInPerPage = 25
	// defaultCountry is appended to a bare city name
	defaultCountry = "India"
)

// LinkedIn modes
const (
	LinkedInGuest    = "guest"
	LinkedInRendered = "rendered"
)

var linkedInFields = []extract.Field{
	extract.TextField(models.FieldTitle, "h3.base-search-card__title"),
	extract.TextField(models.FieldCompany, "h4.base-search-card__subtitle"),
	extract.TextField(models.FieldLocation, "span.job-search-card__location"),
	extract.TextField(models.FieldPosted, "time"),
	extract.AttrField(models.FieldURL, "a.base-card__full-link", "href"),
}

// LinkedIn searches the public job listings. In guest mode it reads the
// server-rendered guest API fragment; in rendered mode it loads the full
// search page in a browser.
type LinkedIn struct {
	listing
	mode string
}

// NewLinkedIn builds the adapter. mode is LinkedInGuest or LinkedInRendered;
// fetcher must match it (static for guest, rendered otherwise).
func NewLinkedIn(fetcher engine.Fetcher, mode, baseURL string) *LinkedIn {
	if mode != LinkedInRendered {
		mode = LinkedInGuest
	}
	base := "li"
	if mode == LinkedInRendered {
		base = "ul.jobs-search__results-list > li"
	}
	return &LinkedIn{
		mode: mode,
		listing: listing{
			site:         "linkedin",
			source:       "LinkedIn",
			origin:       originOr(baseURL, linkedInOrigin),
			fetcher:      fetcher,
			waitSelector: "ul.jobs-search__results-list",
			schema: extract.Schema{
				Name:         "LinkedIn Jobs",
				BaseSelector: base,
				Fields:       linkedInFields,
			},
		},
	}
}

func (a *LinkedIn) Name() string { return a.site }

// Mode reports whether the adapter uses the guest API or the rendered page
func (a *LinkedIn) Mode() string { return a.mode }

func (a *LinkedIn) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.run(ctx, a.SearchURL(req))
}

// SearchURL builds the listing URL for req
func (a *LinkedIn) SearchURL(req models.SearchRequest) string {
	q := url.Values{}
	q.Set("keywords", req.Query)
	if loc := LinkedInLocation(req.Location); loc != "" {
		q.Set("location", loc)
	}
	q.Set("start", strconv.Itoa(normalize.Offset(req.Page, linkedInPerPage)))

	path := "/jobs-guest/jobs/api/seeMoreJobPostings/search"
	if a.mode == LinkedInRendered {
		path = "/jobs/search/"
	}
	return urlutil.Build(a.origin, path, q)
}

// LinkedInLocation appends the default country to a location that names
// only a city. Empty stays empty.
func LinkedInLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" || strings.Contains(loc, ",") {
		return loc
	}
	return loc + ", " + defaultCountry
}
