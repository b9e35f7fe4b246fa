// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/jobhub/internal/aggregator"
	"github.com/law-makers/jobhub/internal/config"
	"github.com/law-makers/jobhub/internal/engine/dynamic"
	"github.com/law-makers/jobhub/internal/engine/static"
	"github.com/law-makers/jobhub/internal/proxy"
	"github.com/law-makers/jobhub/internal/ratelimit"
	"github.com/law-makers/jobhub/internal/retry"
	"github.com/law-makers/jobhub/internal/sites"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config          *config.Config
	Logger          *zerolog.Logger
	RateLimiter     *ratelimit.DomainLimiter
	Proxies         *proxy.Pool
	HTTPClient      *http.Client
	Launcher        *dynamic.Launcher
	StaticFetcher   *static.Fetcher
	RenderedFetcher *dynamic.Fetcher
	Sites           *sites.Registry
	Aggregator      *aggregator.Aggregator
	startTime       time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// Nothing here starts a browser: the launcher only spawns Chrome inside a
// rendered fetch, and releases it before the fetch returns.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogging(cfg, os.Stderr)

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	proxies := proxy.NewPool(cfg.Proxies)

	// The fetchers apply their own per-request deadlines, so the client has
	// no global Timeout.
	httpClient := &http.Client{
		Transport: proxy.NewTransport(proxies, &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}),
	}
	logger.Debug().
		Int("proxies", proxies.Len()).
		Dur("static_timeout", cfg.StaticTimeout).
		Msg("HTTP client initialized")

	staticFetcher := static.New(
		rateLimiter,
		httpClient,
		retry.DefaultConfig().WithAttempts(cfg.FetchAttempts),
		cfg.StaticTimeout,
		cfg.UserAgent,
	).WithHeaders(cfg.Headers)

	launcher := dynamic.NewLauncher(dynamic.LauncherOptions{
		ChromePath: cfg.ChromePath,
		Headless:   cfg.Headless,
		UserAgent:  cfg.UserAgent,
		Proxies:    proxies,
	})
	renderedFetcher := dynamic.New(launcher, rateLimiter, cfg.RenderedTimeout)

	registry := sites.Default(staticFetcher, renderedFetcher, sites.Options{
		LinkedInMode:   cfg.LinkedInMode,
		TimesJobsLimit: cfg.TimesJobsLimit,
		RemoteOKPage:   cfg.RemoteOKPerPage,
		BaseURLs:       cfg.BaseURLs,
	})
	agg := aggregator.New(registry, cfg.MaxConcurrency)
	logger.Debug().Strs("sites", registry.Names()).Msg("Site adapters registered")

	app := &Application{
		Config:          cfg,
		Logger:          &logger,
		RateLimiter:     rateLimiter,
		Proxies:         proxies,
		HTTPClient:      httpClient,
		Launcher:        launcher,
		StaticFetcher:   staticFetcher,
		RenderedFetcher: renderedFetcher,
		Sites:           registry,
		Aggregator:      agg,
		startTime:       time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// SetupLogging configures the global zerolog logger from cfg and returns it.
// Console output is used unless JSON logging is requested.
func SetupLogging(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer = out
	if !cfg.JSONLog {
		logWriter = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()
	log.Logger.Debug().
		Str("level", level.String()).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return log.Logger
}

// Close releases pooled connections. Browser processes never outlive a
// fetch, so there is nothing else to stop; a browser still running here
// means a fetch is in flight and is reported.
func (a *Application) Close(ctx context.Context) error {
	if n := a.Launcher.Active(); n > 0 {
		a.Logger.Warn().Int64("browsers", n).Msg("Closing with browser fetches in flight")
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return ctx.Err()
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
