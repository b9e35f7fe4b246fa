package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/law-makers/jobhub/internal/utils/headers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "JOBHUB_"

// Config holds application configuration values. It is built once at
// startup and not modified afterwards.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`

	// Fetching
	UserAgent       string            `yaml:"user_agent"`
	StaticTimeout   time.Duration     `yaml:"static_timeout"`
	RenderedTimeout time.Duration     `yaml:"rendered_timeout"`
	FetchAttempts   int               `yaml:"fetch_attempts"`
	Proxies         []string          `yaml:"proxies"`
	Headers         map[string]string `yaml:"headers"`

	// Rate Limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// Browser
	ChromePath string `yaml:"chrome_path"`
	Headless   bool   `yaml:"headless"`

	// Sites
	LinkedInMode    string            `yaml:"linkedin_mode"`
	TimesJobsLimit  int               `yaml:"timesjobs_limit"`
	RemoteOKPerPage int               `yaml:"remoteok_per_page"`
	BaseURLs        map[string]string `yaml:"base_urls"`

	// Fan-out
	MaxConcurrency int `yaml:"max_concurrency"`
}

// Load builds a Config by layering, in order: defaults, an optional YAML
// file, a .env file, JOBHUB_* environment variables and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Defaults()

	if path := flagOrEnv(cmd, "config", EnvPrefix+"CONFIG"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	envFile := DefaultEnvFile
	if s := flagString(cmd, "env-file"); s != "" {
		envFile = s
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := applyFlags(cfg, cmd); err != nil {
			return nil, err
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LinkedInMode = strings.ToLower(cfg.LinkedInMode)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.BaseURLs == nil {
		cfg.BaseURLs = map[string]string{}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	parse := func(name string, fn func(string) error) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			if err := fn(v); err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			}
		}
	}

	str("LOG_LEVEL", &cfg.LogLevel)
	str("USER_AGENT", &cfg.UserAgent)
	str("CHROME_PATH", &cfg.ChromePath)
	str("LINKEDIN_MODE", &cfg.LinkedInMode)

	parse("JSON_LOG", boolInto(&cfg.JSONLog))
	parse("HEADLESS", boolInto(&cfg.Headless))
	parse("STATIC_TIMEOUT", durationInto(&cfg.StaticTimeout))
	parse("RENDERED_TIMEOUT", durationInto(&cfg.RenderedTimeout))
	parse("RATE_LIMIT_RPS", floatInto(&cfg.RateLimitRPS))
	parse("RATE_LIMIT_BURST", intInto(&cfg.RateLimitBurst))
	parse("FETCH_ATTEMPTS", intInto(&cfg.FetchAttempts))
	parse("TIMESJOBS_LIMIT", intInto(&cfg.TimesJobsLimit))
	parse("REMOTEOK_PER_PAGE", intInto(&cfg.RemoteOKPerPage))
	parse("MAX_CONCURRENCY", intInto(&cfg.MaxConcurrency))
	parse("PROXIES", func(v string) error {
		cfg.Proxies = splitList(v)
		return nil
	})

	return errors.Join(errs...)
}

func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("verbose") {
		if v, _ := flags.GetBool("verbose"); v {
			cfg.LogLevel = "debug"
		}
	}
	if changed("quiet") {
		if v, _ := flags.GetBool("quiet"); v {
			cfg.LogLevel = "error"
		}
	}
	if changed("json") {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if changed("proxy") {
		cfg.Proxies, _ = flags.GetStringSlice("proxy")
	}
	if changed("header") {
		raw, _ := flags.GetStringArray("header")
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for k, v := range headers.ParseHeaders(raw) {
			cfg.Headers[k] = v
		}
	}
	if changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if changed("chrome-path") {
		cfg.ChromePath, _ = flags.GetString("chrome-path")
	}
	if changed("linkedin-mode") {
		cfg.LinkedInMode, _ = flags.GetString("linkedin-mode")
	}
	if changed("rate-limit") {
		cfg.RateLimitRPS, _ = flags.GetFloat64("rate-limit")
	}
	if changed("retries") {
		cfg.FetchAttempts, _ = flags.GetInt("retries")
	}
	if changed("timeout") {
		s, _ := flags.GetString("timeout")
		if err := durationInto(&cfg.StaticTimeout)(s); err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
	}
	if changed("render-timeout") {
		s, _ := flags.GetString("render-timeout")
		if err := durationInto(&cfg.RenderedTimeout)(s); err != nil {
			return fmt.Errorf("--render-timeout: %w", err)
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	if s := flagString(cmd, flag); s != "" {
		return s
	}
	return os.Getenv(env)
}

func boolInto(dst *bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseBool(s)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func intInto(dst *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func floatInto(dst *float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func durationInto(dst *time.Duration) func(string) error {
	return func(s string) error {
		v, err := time.ParseDuration(s)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
