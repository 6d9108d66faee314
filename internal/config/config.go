package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"aievents/internal/filter"
)

// DefaultEventsURL is the listing page scraped by default.
const DefaultEventsURL = "https://events.microsoft.com/en-us/allevents/?language=English&clientTimeZone=1"

// Render modes.
const (
	ModeBrowser = "browser"
	ModeStatic  = "static"
)

// ScrapeConfig controls how the listing page is rendered and expanded.
type ScrapeConfig struct {
	// Mode selects the renderer: "browser" (headless Chrome) or
	// "static" (plain HTTP GET, no content expansion).
	Mode string `mapstructure:"mode"`

	// LoadMoreAttempts is the budget of "load more" interactions per render.
	LoadMoreAttempts int `mapstructure:"load_more_attempts"`
	// LoadMoreSettle is the fixed delay after each load-more click before
	// waiting for network idle.
	LoadMoreSettle time.Duration `mapstructure:"load_more_settle"`
	// IdleQuiet is the quiet window used as the network-idle signal.
	IdleQuiet time.Duration `mapstructure:"idle_quiet"`
	// ScrollPasses is the number of scroll-to-bottom actions after the
	// load-more loop.
	ScrollPasses int `mapstructure:"scroll_passes"`
	// ScrollSettle is the fixed delay after each scroll pass.
	ScrollSettle time.Duration `mapstructure:"scroll_settle"`
	// NavTimeout bounds a full render, from navigation to capture.
	NavTimeout time.Duration `mapstructure:"nav_timeout"`

	UserAgent string `mapstructure:"user_agent"`

	// MaxSessions bounds concurrent browser sessions. 0 disables the bound
	// (the original behavior: one independent session per request).
	MaxSessions int `mapstructure:"max_sessions"`
	// LaunchRate limits browser session launches per second. 0 disables it.
	LaunchRate float64 `mapstructure:"launch_rate"`

	// RespectRobots gates navigation on the target host's robots.txt.
	RespectRobots bool `mapstructure:"respect_robots"`
}

// Config holds the full service configuration.
type Config struct {
	// APIKey is the shared secret callers must present in X-API-Key.
	// Required; Load fails when it is unset.
	APIKey string `mapstructure:"api_key"`

	ListenAddr string `mapstructure:"listen_addr"`
	EventsURL  string `mapstructure:"events_url"`

	// Keywords identify AI-related events. Fixed at process start.
	Keywords []string `mapstructure:"keywords"`

	Scrape ScrapeConfig `mapstructure:"scrape"`

	Verbose bool `mapstructure:"verbose"`
}

// setDefaults registers default values on the given viper instance.
// The scrape defaults mirror the source page's observed loading behavior:
// four load-more rounds settling 5s each, then three scroll passes
// settling 2s each.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("events_url", DefaultEventsURL)
	v.SetDefault("keywords", filter.DefaultKeywords)
	v.SetDefault("verbose", false)

	v.SetDefault("scrape.mode", ModeBrowser)
	v.SetDefault("scrape.load_more_attempts", 4)
	v.SetDefault("scrape.load_more_settle", 5*time.Second)
	v.SetDefault("scrape.idle_quiet", 500*time.Millisecond)
	v.SetDefault("scrape.scroll_passes", 3)
	v.SetDefault("scrape.scroll_settle", 2*time.Second)
	v.SetDefault("scrape.nav_timeout", 90*time.Second)
	v.SetDefault("scrape.user_agent", "aievents-server/1.0")
	v.SetDefault("scrape.max_sessions", 2)
	v.SetDefault("scrape.launch_rate", 0.0)
	v.SetDefault("scrape.respect_robots", false)
}

// Load reads configuration from (highest to lowest priority) environment
// variables, an optional config file, and built-in defaults. A .env file
// in the working directory is loaded first, best effort, so API_KEY can be
// supplied the same way the service has always been deployed.
//
// Load returns an error when no API key is configured: the process must
// refuse to start without the shared secret.
func Load(cfgFile string) (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AIEVENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The secret historically lives in the bare API_KEY variable.
	_ = v.BindEnv("api_key", "AIEVENTS_API_KEY", "API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("aievents")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// A missing default config file is fine; a malformed one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is not set")
	}
	if c.EventsURL == "" {
		return fmt.Errorf("events_url must not be empty")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("keywords must not be empty")
	}
	if c.Scrape.Mode != ModeBrowser && c.Scrape.Mode != ModeStatic {
		return fmt.Errorf("invalid scrape.mode: %q (must be %q or %q)", c.Scrape.Mode, ModeBrowser, ModeStatic)
	}
	if c.Scrape.LoadMoreAttempts < 0 {
		return fmt.Errorf("scrape.load_more_attempts must not be negative")
	}
	if c.Scrape.ScrollPasses < 0 {
		return fmt.Errorf("scrape.scroll_passes must not be negative")
	}
	return nil
}
