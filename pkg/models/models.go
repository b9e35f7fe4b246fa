package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Canonical job fields. Adapters may add source-specific keys on top of these.
const (
	FieldTitle      = "title"
	FieldCompany    = "company"
	FieldLocation   = "location"
	FieldPosted     = "posted"
	FieldURL        = "url"
	FieldStipend    = "stipend"
	FieldDuration   = "duration"
	FieldSalary     = "salary"
	FieldSkills     = "skills"
	FieldExperience = "experience"
	FieldTags       = "tags"
	FieldSource     = "source"
)

// Sentinel values used when a field cannot be extracted
const (
	NoTitle      = "No Title"
	Unknown      = "Unknown"
	NoURL        = "#"
	NotSpecified = "Not specified"
	Unpaid       = "Unpaid"
	NotMentioned = "Not mentioned"
)

// CanonicalFields lists the fields in the order callers render them
var CanonicalFields = []string{FieldTitle, FieldCompany, FieldLocation, FieldPosted, FieldURL}

// Job is one normalized posting. It is created per fetch and never persisted.
type Job map[string]string

// Get returns the value for key, or "" when absent
func (j Job) Get(key string) string {
	return j[key]
}

// Clone returns a shallow copy of the job
func (j Job) Clone() Job {
	out := make(Job, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}

// Keys returns canonical keys first (in CanonicalFields order) followed by the
// remaining keys sorted alphabetically.
func (j Job) Keys() []string {
	keys := make([]string, 0, len(j))
	seen := make(map[string]bool, len(j))
	for _, k := range CanonicalFields {
		if _, ok := j[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var extra []string
	for k := range j {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// ErrEmptyQuery is returned when a search request carries no query
var ErrEmptyQuery = errors.New("query is required")

// SearchRequest is constructed per incoming call
type SearchRequest struct {
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
	Site     string `json:"site"`
	Page     int    `json:"page"`
}

// Normalize trims the request fields and defaults the page to 1.
func (r SearchRequest) Normalize() SearchRequest {
	r.Query = strings.TrimSpace(r.Query)
	r.Location = strings.TrimSpace(r.Location)
	r.Site = strings.ToLower(strings.TrimSpace(r.Site))
	if r.Page < 1 {
		r.Page = 1
	}
	return r
}

// Validate normalizes the request and rejects it when the query is empty
func (r SearchRequest) Validate() (SearchRequest, error) {
	r = r.Normalize()
	if r.Query == "" {
		return r, ErrEmptyQuery
	}
	return r, nil
}

// Page is the raw result of a fetch, handed to the extraction engine or to an
// adapter's own parser.
type Page struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code"`
	Body         []byte    `json:"-"`
	ContentType  string    `json:"content_type,omitempty"`
	Fetcher      string    `json:"fetcher"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// FetchRequest contains options for a single fetch
type FetchRequest struct {
	URL     string
	Headers map[string]string
	// WaitSelector is only honoured by the rendered fetcher
	WaitSelector string
	Timeout      time.Duration
}

// SiteResult groups the jobs returned by one adapter in a multi-site search
type SiteResult struct {
	Site string `json:"site"`
	Jobs []Job  `json:"jobs"`
}
