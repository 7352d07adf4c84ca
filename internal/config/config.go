// Package config loads and validates application configuration. All
// values originate from Viper so the scraper can be configured via files,
// env vars, or CLI flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a scrape run.
type Config struct {
	MaxRetries      int
	MinContentBytes int
	BlocklistTerms  []string
	UserAgents      []string

	BrowserEnabled    bool
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	SettlePause       time.Duration

	RequestTimeout time.Duration

	ProxyAPIKey   string
	ProxyEndpoint string
	ProxyTimeout  time.Duration

	DebugDir string
	DataDir  string

	Development bool
	LogFile     string
}

// Init wires Viper defaults, config-file discovery, and env bindings.
// Called once from the CLI before any Load.
func Init(cfgFile string) {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("stotram-scraper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stotram-scraper")
	}

	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The proxy credential is usually injected via the service's own
	// variable name rather than the app prefix.
	_ = v.BindEnv("proxy.api_key", "SCRAPINGBEE_API_KEY")

	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.min_content_bytes", 1000)
	v.SetDefault("fetch.blocklist_terms", []string{"captcha", "access denied", "cloudflare"})
	v.SetDefault("fetch.request_timeout", "30s")
	v.SetDefault("browser.enabled", true)
	v.SetDefault("browser.navigation_timeout", "120s")
	v.SetDefault("browser.selector_timeout", "30s")
	v.SetDefault("browser.settle_pause", "2s")
	v.SetDefault("proxy.timeout", "45s")
	v.SetDefault("output.debug_dir", "debug")
	v.SetDefault("output.data_dir", "data")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")

	// Missing config files are fine; defaults and env cover everything.
	_ = v.ReadInConfig()
}

// Load constructs a Config by reading from Viper.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		MaxRetries:        v.GetInt("fetch.max_retries"),
		MinContentBytes:   v.GetInt("fetch.min_content_bytes"),
		BlocklistTerms:    v.GetStringSlice("fetch.blocklist_terms"),
		UserAgents:        v.GetStringSlice("fetch.user_agents"),
		BrowserEnabled:    v.GetBool("browser.enabled"),
		NavigationTimeout: v.GetDuration("browser.navigation_timeout"),
		SelectorTimeout:   v.GetDuration("browser.selector_timeout"),
		SettlePause:       v.GetDuration("browser.settle_pause"),
		RequestTimeout:    v.GetDuration("fetch.request_timeout"),
		ProxyAPIKey:       v.GetString("proxy.api_key"),
		ProxyEndpoint:     v.GetString("proxy.endpoint"),
		ProxyTimeout:      v.GetDuration("proxy.timeout"),
		DebugDir:          v.GetString("output.debug_dir"),
		DataDir:           v.GetString("output.data_dir"),
		Development:       v.GetBool("log.development"),
		LogFile:           v.GetString("log.file"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.MaxRetries <= 0 {
		return fmt.Errorf("fetch.max_retries must be > 0")
	}
	if c.MinContentBytes <= 0 {
		return fmt.Errorf("fetch.min_content_bytes must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("fetch.request_timeout must be > 0")
	}
	if c.BrowserEnabled {
		if c.NavigationTimeout <= 0 {
			return fmt.Errorf("browser.navigation_timeout must be > 0")
		}
		if c.SelectorTimeout <= 0 {
			return fmt.Errorf("browser.selector_timeout must be > 0")
		}
	}
	if c.DebugDir == "" {
		return fmt.Errorf("output.debug_dir must be set")
	}
	if c.DataDir == "" {
		return fmt.Errorf("output.data_dir must be set")
	}
	return nil
}

// ProxyConfigured reports whether the rendering proxy may be engaged.
func (c Config) ProxyConfigured() bool {
	return c.ProxyAPIKey != ""
}
