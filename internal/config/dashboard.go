package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	MinArticleCount = 1
	MaxArticleCount = 20
)

// DashboardConfig holds the user-editable dashboard controls. Nothing here is
// persisted between runs.
type DashboardConfig struct {
	BackendURL  string
	Topic       string
	Country     string
	Count       int
	AutoRefresh bool
	Interval    time.Duration
	Timeout     time.Duration
	NoColor     bool
	LogLevel    string
}

func RegisterDashboardFlags(flags *pflag.FlagSet) {
	flags.String("backend", "http://127.0.0.1:8000", "backend base URL (env API_BASE)")
	flags.String("topic", "AI", "topic or keyword")
	flags.String("country", "us", "country (2-letter code)")
	flags.Int("count", 5, "articles to fetch (1-20)")
	flags.Bool("auto-refresh", true, "keep polling the backend")
	flags.Duration("interval", 8*time.Second, "refresh interval")
	flags.Duration("timeout", 60*time.Second, "backend request timeout")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

// LoadDashboard resolves dashboard settings from flags, falling back to the
// environment for flags that were not set explicitly.
func LoadDashboard(flags *pflag.FlagSet) (*DashboardConfig, error) {
	godotenv.Load()

	v := newViper()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	if err := v.BindEnv("backend", "API_BASE"); err != nil {
		return nil, fmt.Errorf("binding API_BASE: %w", err)
	}

	cfg := &DashboardConfig{
		BackendURL:  strings.TrimRight(v.GetString("backend"), "/"),
		Topic:       strings.TrimSpace(v.GetString("topic")),
		Country:     strings.ToLower(strings.TrimSpace(v.GetString("country"))),
		Count:       v.GetInt("count"),
		AutoRefresh: v.GetBool("auto-refresh"),
		Interval:    v.GetDuration("interval"),
		Timeout:     v.GetDuration("timeout"),
		NoColor:     v.GetBool("no-color"),
		LogLevel:    v.GetString("log-level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *DashboardConfig) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend URL %q", c.BackendURL)
	}

	if c.Topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	if c.Count < MinArticleCount || c.Count > MaxArticleCount {
		return fmt.Errorf("count must be between %d and %d, got %d", MinArticleCount, MaxArticleCount, c.Count)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}
