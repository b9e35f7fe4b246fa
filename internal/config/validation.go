package config

import (
	"fmt"
	"net/url"

	urlutil "github.com/law-makers/jobhub/internal/utils/url"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func validate(c *Config) error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.StaticTimeout <= 0 {
		return fmt.Errorf("static timeout must be > 0")
	}
	if c.RenderedTimeout <= 0 {
		return fmt.Errorf("rendered timeout must be > 0")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be > 0")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be >= 1")
	}
	if c.FetchAttempts < 1 || c.FetchAttempts > MaxFetchAttempts {
		return fmt.Errorf("fetch attempts must be between 1 and %d", MaxFetchAttempts)
	}
	if c.LinkedInMode != "guest" && c.LinkedInMode != "rendered" {
		return fmt.Errorf("linkedin mode must be guest or rendered, got %q", c.LinkedInMode)
	}
	if c.TimesJobsLimit < 1 {
		return fmt.Errorf("timesjobs limit must be >= 1")
	}
	if c.RemoteOKPerPage < 1 {
		return fmt.Errorf("remoteok per-page must be >= 1")
	}
	if c.MaxConcurrency < 1 || c.MaxConcurrency > MaxConcurrency {
		return fmt.Errorf("max concurrency must be between 1 and %d", MaxConcurrency)
	}
	for _, p := range c.Proxies {
		if err := validateProxy(p); err != nil {
			return err
		}
	}
	for site, base := range c.BaseURLs {
		if err := urlutil.ValidateURL(base); err != nil {
			return fmt.Errorf("base url for %s: %w", site, err)
		}
	}
	return nil
}

func validateProxy(p string) error {
	u, err := url.Parse(p)
	if err != nil {
		return fmt.Errorf("proxy %q: %w", p, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("proxy %q: scheme must be http, https or socks5", p)
	}
	if u.Host == "" {
		return fmt.Errorf("proxy %q: missing host", p)
	}
	return nil
}
