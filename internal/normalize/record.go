package normalize

import (
	"strings"

	urlutil "github.com/law-makers/jobhub/internal/utils/url"
	"github.com/law-makers/jobhub/pkg/models"
)

// BaseDefaults are the sentinels shared by every source
var BaseDefaults = map[string]string{
	models.FieldTitle:    models.NoTitle,
	models.FieldCompany:  models.Unknown,
	models.FieldLocation: models.NotSpecified,
	models.FieldPosted:   models.Unknown,
}

// Options drives Finalize for one adapter
type Options struct {
	// Source is stamped into the record's source field
	Source string
	// Origin is the scheme+host used to repair root-relative links
	Origin string
	// ListingURL is used as the link of a card that carries none
	ListingURL string
	// Defaults take precedence over BaseDefaults
	Defaults map[string]string
}

// AbsoluteURL repairs href against origin. Root-relative ("/x") and
// protocol-relative ("//host/x") links are made absolute; absolute links
// pass through unchanged.
func AbsoluteURL(origin, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(origin, "/") + href
	default:
		return urlutil.ResolveURL(strings.TrimRight(origin, "/")+"/", href)
	}
}

// Defaults fills every empty field named in defaults with its sentinel.
// Keys that are missing entirely are added, so callers can rely on presence.
func Defaults(job models.Job, defaults map[string]string) models.Job {
	for key, sentinel := range defaults {
		if strings.TrimSpace(job[key]) == "" {
			job[key] = sentinel
		}
	}
	return job
}

// Finalize applies the common post-processing: sentinels, absolute URL,
// formatted posted date and the source stamp. The job is modified in place
// and returned for chaining.
func Finalize(job models.Job, opts Options) models.Job {
	if job == nil {
		job = models.Job{}
	}

	for k, v := range job {
		job[k] = strings.TrimSpace(v)
	}

	if len(opts.Defaults) > 0 {
		job = Defaults(job, opts.Defaults)
	}
	job = Defaults(job, BaseDefaults)

	link := AbsoluteURL(opts.Origin, job[models.FieldURL])
	if !urlutil.IsAbsolute(link) {
		link = opts.ListingURL
	}
	if link == "" {
		link = models.NoURL
	}
	job[models.FieldURL] = link

	job[models.FieldPosted] = FormatDate(job[models.FieldPosted])

	if opts.Source != "" {
		job[models.FieldSource] = opts.Source
	}
	return job
}
