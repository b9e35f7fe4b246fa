// Package sites holds one adapter per job board. Each adapter builds the
// search URL, fetches it, extracts cards and normalizes them into jobs.
package sites

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/extract"
	"github.com/law-makers/jobhub/internal/normalize"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/rs/zerolog/log"
)

// Adapter is implemented by every job source
type Adapter interface {
	// Name is the site key used for dispatch, e.g. "linkedin"
	Name() string
	// Search returns the jobs for one page of results. A fetch failure is
	// returned as an error; callers decide whether to surface it.
	Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error)
}

// cardCheck rejects a card before normalization. A non-nil error skips it.
type cardCheck func(extract.Card) error

// listing is the shared fetch -> extract -> post-process pipeline for
// HTML boards.
type listing struct {
	site         string
	source       string
	origin       string
	fetcher      engine.Fetcher
	schema       extract.Schema
	waitSelector string
	defaults     map[string]string
	check        cardCheck
	limit        int
}

func (l *listing) run(ctx context.Context, listingURL string) ([]models.Job, error) {
	page, err := l.fetcher.Fetch(ctx, models.FetchRequest{
		URL:          listingURL,
		WaitSelector: l.waitSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fetch %s: %w", l.site, listingURL, err)
	}

	doc, err := extract.Parse(bytes.NewReader(page.Body))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, l.site+": "+listingURL, err)
	}

	cards := extract.ExtractCards(doc, l.schema)
	jobs := make([]models.Job, 0, len(cards))
	skipped := 0
	for _, card := range cards {
		if l.limit > 0 && len(jobs) >= l.limit {
			break
		}
		if l.check != nil {
			if err := l.check(card); err != nil {
				skipped++
				log.Debug().
					Str("site", l.site).
					Int("card", card.Index).
					Err(err).
					Msg("Skipping card")
				continue
			}
		}
		jobs = append(jobs, normalize.Finalize(card.Job(), normalize.Options{
			Source:     l.source,
			Origin:     l.origin,
			ListingURL: listingURL,
			Defaults:   l.defaults,
		}))
	}

	log.Debug().
		Str("site", l.site).
		Str("url", listingURL).
		Int("cards", len(cards)).
		Int("skipped", skipped).
		Int("results", len(jobs)).
		Msg("Extraction completed")

	return jobs, nil
}

// requireField skips cards where the named field could not be extracted
func requireField(name string) cardCheck {
	return func(c extract.Card) error {
		for _, f := range c.Fields {
			if f.Name == name && !f.OK() {
				return fmt.Errorf("missing %s: %w", name, f.Err)
			}
		}
		return nil
	}
}

func originOr(base, fallback string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return fallback
	}
	return base
}
