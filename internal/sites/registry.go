package sites

import (
	"sort"
	"strings"

	"github.com/law-makers/jobhub/internal/engine"
)

// aliases maps legacy site keys to their current name
var aliases = map[string]string{
	"linkdin": "linkedin",
	"wwr":     "weworkremotely",
}

// Registry maps site names to adapters. It is built once at startup and
// only read afterwards.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter under its own name
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Get resolves name (case-insensitive, aliases honoured) to an adapter
func (r *Registry) Get(name string) (Adapter, bool) {
	key := Canonical(name)
	a, ok := r.adapters[key]
	return a, ok
}

// Names returns the registered site names sorted alphabetically
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Canonical lowercases name and resolves legacy aliases
func Canonical(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		return target
	}
	return key
}

// Options selects per-site behaviour when building the default set
type Options struct {
	LinkedInMode   string
	TimesJobsLimit int
	RemoteOKPage   int
	// BaseURLs overrides a site's origin, keyed by site name
	BaseURLs map[string]string
}

// Default builds all six adapters. static serves plain HTML and JSON;
// rendered is used for boards that need a browser.
func Default(static, rendered engine.Fetcher, opts Options) *Registry {
	base := func(site string) string { return opts.BaseURLs[site] }

	linkedInFetcher := static
	if opts.LinkedInMode == LinkedInRendered {
		linkedInFetcher = rendered
	}

	return NewRegistry(
		NewLinkedIn(linkedInFetcher, opts.LinkedInMode, base("linkedin")),
		NewRemoteOK(static, opts.RemoteOKPage, base("remoteok")),
		NewIndeed(rendered, base("indeed")),
		NewWeWorkRemotely(static, base("weworkremotely")),
		NewTimesJobs(static, opts.TimesJobsLimit, base("timesjobs")),
		NewInternshala(static, base("internshala")),
	)
}
