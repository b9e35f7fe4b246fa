// Package aggregator dispatches search requests to site adapters.
package aggregator

import (
	"context"
	"errors"
	"time"

	"github.com/law-makers/jobhub/internal/reqctx"
	"github.com/law-makers/jobhub/internal/sites"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds SearchAll when no limit is configured
const DefaultMaxConcurrency = 3

// Aggregator routes a request to the adapter named by its Site field.
// It is safe for concurrent use.
type Aggregator struct {
	registry       *sites.Registry
	maxConcurrency int
}

// SiteDoneFunc is called as each site of a SearchAll finishes. It may be
// called from several goroutines at once.
type SiteDoneFunc func(site string, jobs int, err error)

func New(registry *sites.Registry, maxConcurrency int) *Aggregator {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Aggregator{registry: registry, maxConcurrency: maxConcurrency}
}

// Sites lists the registered site names
func (a *Aggregator) Sites() []string {
	return a.registry.Names()
}

// Search returns the jobs for req. An unknown site or any adapter failure
// yields an empty slice; failures are logged, not returned.
func (a *Aggregator) Search(ctx context.Context, req models.SearchRequest) []models.Job {
	jobs, err := a.SearchErr(ctx, req)
	if err != nil {
		return []models.Job{}
	}
	return jobs
}

// SearchErr is Search with the failure reported to the caller as well as
// logged. An unknown site is not an error.
func (a *Aggregator) SearchErr(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	req = req.Normalize()
	ctx = reqctx.Ensure(ctx)
	rc := reqctx.GetRequestContext(ctx)

	adapter, ok := a.registry.Get(req.Site)
	if !ok {
		log.Warn().
			Str("request_id", rc.RequestID).
			Str("site", req.Site).
			Msg("Unknown site")
		return []models.Job{}, nil
	}

	start := time.Now()
	jobs, err := adapter.Search(ctx, req)
	if err != nil {
		err = reqctx.NewRequestError(ctx, err)
		log.Warn().
			Str("request_id", rc.RequestID).
			Str("site", adapter.Name()).
			Str("query", req.Query).
			Int("page", req.Page).
			Err(err).
			Msg("Site search failed")
		return []models.Job{}, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	log.Info().
		Str("request_id", rc.RequestID).
		Str("site", adapter.Name()).
		Str("query", req.Query).
		Int("page", req.Page).
		Int("results", len(jobs)).
		Dur("elapsed", time.Since(start)).
		Msg("Site search completed")

	return jobs, nil
}

// SearchAll runs req against every named site concurrently and returns one
// group per site in the order given. Results are never merged across sites.
// An empty names list searches all registered sites.
func (a *Aggregator) SearchAll(ctx context.Context, req models.SearchRequest, names []string) []models.SiteResult {
	return a.SearchAllNotify(ctx, req, names, nil)
}

// SearchAllNotify is SearchAll with a per-site completion callback
func (a *Aggregator) SearchAllNotify(ctx context.Context, req models.SearchRequest, names []string, done SiteDoneFunc) []models.SiteResult {
	if len(names) == 0 {
		names = a.Sites()
	}
	ctx = reqctx.Ensure(ctx)

	results := make([]models.SiteResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)
	for i, name := range names {
		g.Go(func() error {
			r := req
			r.Site = sites.Canonical(name)
			jobs, err := a.SearchErr(gctx, r)
			results[i] = models.SiteResult{Site: r.Site, Jobs: jobs}
			if done != nil {
				done(r.Site, len(jobs), err)
			}
			// one failed site must not cancel the others
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
