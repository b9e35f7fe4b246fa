package sites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/normalize"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	remoteOKOrigin = "https://remoteok.com"
	// DefaultRemoteOKPerPage is the slice size used by Search
	DefaultRemoteOKPerPage = 25
)

// remoteOKPosting is one element of the /api array. The first element of the
// array is a legal/metadata notice and carries none of these fields.
type remoteOKPosting struct {
	ID          json.RawMessage `json:"id"`
	Position    string          `json:"position"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Date        string          `json:"date"`
	URL         string          `json:"url"`
	ApplyURL    string          `json:"apply_url"`
	Tags        []string        `json:"tags"`
	Description string          `json:"description"`
	SalaryMin   int             `json:"salary_min"`
	SalaryMax   int             `json:"salary_max"`
}

// RemoteOK reads the public JSON feed narrowed by tag and filters it locally,
// since the feed has no free-text search.
type RemoteOK struct {
	origin  string
	fetcher engine.Fetcher
	perPage int
}

// NewRemoteOK builds the adapter. perPage <= 0 uses DefaultRemoteOKPerPage.
func NewRemoteOK(fetcher engine.Fetcher, perPage int, baseURL string) *RemoteOK {
	if perPage <= 0 {
		perPage = DefaultRemoteOKPerPage
	}
	return &RemoteOK{
		origin:  originOr(baseURL, remoteOKOrigin),
		fetcher: fetcher,
		perPage: perPage,
	}
}

func (a *RemoteOK) Name() string { return "remoteok" }

func (a *RemoteOK) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	return a.Crawl(ctx, req.Query, req.Location, normalize.Offset(req.Page, a.perPage), a.perPage)
}

// FeedURL is the /api endpoint with the query's words as comma-separated tags
func (a *RemoteOK) FeedURL(query string) string {
	feedURL := a.origin + "/api"
	if tags := remoteOKTags(query); tags != "" {
		feedURL += "?tags=" + tags
	}
	return feedURL
}

func remoteOKTags(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, ",")
}

// Crawl fetches the feed, keeps postings matching query and location, and
// returns the window [start, start+perPage) of the filtered list.
func (a *RemoteOK) Crawl(ctx context.Context, query, location string, start, perPage int) ([]models.Job, error) {
	feedURL := a.FeedURL(query)
	page, err := a.fetcher.Fetch(ctx, models.FetchRequest{
		URL:     feedURL,
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("remoteok: fetch %s: %w", feedURL, err)
	}

	postings, err := decodeRemoteOK(page.Body)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "remoteok: "+feedURL, err)
	}

	matched := make([]models.Job, 0, len(postings))
	for _, p := range postings {
		if !p.matches(query, location) {
			continue
		}
		matched = append(matched, a.toJob(p))
	}

	window := normalize.Paginate(matched, start, perPage)

	log.Debug().
		Str("site", a.Name()).
		Int("postings", len(postings)).
		Int("matched", len(matched)).
		Int("start", start).
		Int("results", len(window)).
		Msg("Feed filtered")

	return window, nil
}

func decodeRemoteOK(body []byte) ([]remoteOKPosting, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrParseError, err)
	}
	if len(raw) <= 1 {
		return []remoteOKPosting{}, nil
	}

	out := make([]remoteOKPosting, 0, len(raw)-1)
	for i, item := range raw[1:] {
		var p remoteOKPosting
		if err := json.Unmarshal(item, &p); err != nil {
			log.Debug().Int("index", i+1).Err(err).Msg("Skipping malformed RemoteOK posting")
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (p remoteOKPosting) matches(query, location string) bool {
	if !normalize.MatchesKeyword(query, p.Position, p.Company, strings.Join(p.Tags, " "), normalize.HTMLText(p.Description)) {
		return false
	}
	return normalize.MatchesKeyword(location, p.Location)
}

func (a *RemoteOK) toJob(p remoteOKPosting) models.Job {
	link := p.URL
	if link == "" {
		link = p.ApplyURL
	}
	job := models.Job{
		models.FieldTitle:    p.Position,
		models.FieldCompany:  p.Company,
		models.FieldLocation: p.Location,
		models.FieldPosted:   p.Date,
		models.FieldURL:      link,
	}
	if len(p.Tags) > 0 {
		job[models.FieldTags] = strings.Join(p.Tags, ", ")
	}
	if s := salaryRange(p.SalaryMin, p.SalaryMax); s != "" {
		job[models.FieldSalary] = s
	}
	return normalize.Finalize(job, normalize.Options{
		Source:     "RemoteOK",
		Origin:     a.origin,
		ListingURL: a.origin,
		Defaults:   map[string]string{models.FieldLocation: "Remote"},
	})
}

func salaryRange(lo, hi int) string {
	switch {
	case lo > 0 && hi > 0:
		return "$" + strconv.Itoa(lo) + " - $" + strconv.Itoa(hi)
	case lo > 0:
		return "$" + strconv.Itoa(lo) + "+"
	case hi > 0:
		return "up to $" + strconv.Itoa(hi)
	}
	return ""
}
