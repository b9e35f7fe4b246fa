// internal/engine/static/fetcher.go
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/ratelimit"
	"github.com/law-makers/jobhub/internal/retry"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds how much of a listing page we read into memory
const maxBodyBytes = 16 << 20

// Fetcher retrieves pages with plain HTTP GET requests. It is used for job
// boards that render their listings server-side and for JSON APIs.
type Fetcher struct {
	limiter   ratelimit.RateLimiter
	client    *http.Client
	retry     retry.Config
	timeout   time.Duration
	userAgent string
	headers   map[string]string
}

// New creates a static Fetcher with dependency injection
func New(lim ratelimit.RateLimiter, client *http.Client, rc retry.Config, timeout time.Duration, ua string) *Fetcher {
	if lim == nil {
		lim = ratelimit.Unlimited{}
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		limiter:   lim,
		client:    client,
		retry:     rc,
		timeout:   timeout,
		userAgent: ua,
	}
}

// WithHeaders sets headers sent on every request. Per-request headers in
// models.FetchRequest take precedence.
func (f *Fetcher) WithHeaders(h map[string]string) *Fetcher {
	f.headers = h
	return f
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch performs the GET and returns the raw body. Any non-2xx status is
// reported as an *engine.EngineError with ErrCodeHTTPStatus.
func (f *Fetcher) Fetch(ctx context.Context, req models.FetchRequest) (*models.Page, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var page *models.Page
	err := retry.Do(ctx, f.retry, func() error {
		p, err := f.fetchOnce(ctx, req)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, opts models.FetchRequest) (*models.Page, error) {
	start := time.Now()

	log.Debug().
		Str("url", opts.URL).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := f.limiter.Wait(ctx, opts.URL); err != nil {
		return nil, engine.Classify(opts.URL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeValidation, "failed to create request", fmt.Errorf("%w: %v", engine.ErrInvalidURL, err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.8,*/*;q=0.7")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for key, value := range f.headers {
		req.Header.Set(key, value)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, engine.Classify(opts.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		statusErr := engine.NewStatusError(opts.URL, resp.StatusCode)
		statusErr.RetryAfter = engine.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, engine.Classify(opts.URL, err)
	}

	responseTime := time.Since(start).Milliseconds()

	log.Debug().
		Str("url", opts.URL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("response_time_ms", responseTime).
		Msg("Fetch completed")

	return &models.Page{
		URL:          opts.URL,
		StatusCode:   resp.StatusCode,
		Body:         body,
		ContentType:  resp.Header.Get("Content-Type"),
		Fetcher:      f.Name(),
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}, nil
}
