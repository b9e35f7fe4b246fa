// internal/engine/dynamic/fetcher.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/ratelimit"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/rs/zerolog/log"
)

// selectorWait bounds how long we wait for the card list after navigation.
// An empty result page never renders cards, so this must not fail the fetch.
const selectorWait = 10 * time.Second

// Fetcher renders pages in headless Chrome before capturing their HTML.
// It is used for job boards that build their listings with JavaScript.
type Fetcher struct {
	launcher *Launcher
	limiter  ratelimit.RateLimiter
	timeout  time.Duration
}

// New creates a rendered Fetcher with dependency injection
func New(l *Launcher, lim ratelimit.RateLimiter, timeout time.Duration) *Fetcher {
	if lim == nil {
		lim = ratelimit.Unlimited{}
	}
	return &Fetcher{
		launcher: l,
		limiter:  lim,
		timeout:  timeout,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "RenderedFetcher"
}

// Fetch navigates to req.URL and returns the rendered document
func (f *Fetcher) Fetch(ctx context.Context, req models.FetchRequest) (*models.Page, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	log.Debug().
		Str("url", req.URL).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}

	if err := f.limiter.Wait(ctx, req.URL); err != nil {
		return nil, engine.Classify(req.URL, err)
	}

	var (
		htmlContent string
		mu          sync.Mutex
		statusCode  int64
	)

	err := f.launcher.Do(ctx, timeout, func(tabCtx context.Context) error {
		// Capture the status of the main document response
		chromedp.ListenTarget(tabCtx, func(ev interface{}) {
			if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
				mu.Lock()
				if statusCode == 0 {
					statusCode = e.Response.Status
				}
				mu.Unlock()
			}
		})

		if err := chromedp.Run(tabCtx,
			network.Enable(),
			chromedp.Navigate(req.URL),
			chromedp.WaitReady("body", chromedp.ByQuery),
		); err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}

		if req.WaitSelector != "" {
			waitCtx, cancel := context.WithTimeout(tabCtx, selectorWait)
			err := chromedp.Run(waitCtx, chromedp.WaitReady(req.WaitSelector, chromedp.ByQuery))
			cancel()
			if err != nil {
				log.Debug().Str("selector", req.WaitSelector).Err(err).Msg("Selector did not appear, capturing page as-is")
			}
		}

		return chromedp.Run(tabCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery))
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, engine.NewEngineError(engine.ErrCodeTimeout, "navigation timed out", errors.Join(engine.ErrTimeout, err)).WithDetail("url", req.URL)
		}
		return nil, engine.NewEngineError(engine.ErrCodeBrowserCrash, "rendered fetch failed", errors.Join(engine.ErrBrowserCrash, err)).WithDetail("url", req.URL)
	}

	mu.Lock()
	status := int(statusCode)
	mu.Unlock()

	if status != 0 && (status < 200 || status > 299) {
		return nil, engine.NewStatusError(req.URL, status)
	}

	responseTime := time.Since(start).Milliseconds()

	log.Debug().
		Str("url", req.URL).
		Int("status", status).
		Int("bytes", len(htmlContent)).
		Int64("response_time_ms", responseTime).
		Msg("Fetch completed")

	return &models.Page{
		URL:          req.URL,
		StatusCode:   status,
		Body:         []byte(htmlContent),
		ContentType:  "text/html",
		Fetcher:      f.Name(),
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}, nil
}
