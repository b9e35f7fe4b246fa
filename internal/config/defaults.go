package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel        = "warn"
	DefaultJSONLog         = false
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultStaticTimeout   = 15 * time.Second
	DefaultRenderedTimeout = 60 * time.Second
	DefaultRateLimitRPS    = 2.0
	DefaultRateLimitBurst  = 4
	DefaultFetchAttempts   = 1
	MaxFetchAttempts       = 5
	DefaultHeadless        = true
	DefaultLinkedInMode    = "guest"
	DefaultTimesJobsLimit  = 25
	DefaultRemoteOKPerPage = 25
	DefaultMaxConcurrency  = 3
	MaxConcurrency         = 16
	DefaultEnvFile         = ".env"
)

// Defaults returns a Config populated with the built-in defaults
func Defaults() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		UserAgent:       DefaultUserAgent,
		StaticTimeout:   DefaultStaticTimeout,
		RenderedTimeout: DefaultRenderedTimeout,
		RateLimitRPS:    DefaultRateLimitRPS,
		RateLimitBurst:  DefaultRateLimitBurst,
		FetchAttempts:   DefaultFetchAttempts,
		Headless:        DefaultHeadless,
		LinkedInMode:    DefaultLinkedInMode,
		TimesJobsLimit:  DefaultTimesJobsLimit,
		RemoteOKPerPage: DefaultRemoteOKPerPage,
		MaxConcurrency:  DefaultMaxConcurrency,
		BaseURLs:        map[string]string{},
		Headers:         map[string]string{},
	}
}
