package hdsite

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for the site backend.
type SiteConfig struct {
	Name        string `toml:"name"`        // Site name (default "Hospital Digital")
	URL         string `toml:"url"`         // Canonical URL for sitemap/feed links
	Description string `toml:"description"` // Site description for the feed

	Addr         string `toml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `toml:"database_path"` // SQLite path (default "data/hospital-digital.sqlite")

	AdminUsername string `toml:"admin_username"` // Required: panel login username
	AdminPassword string `toml:"admin_password"` // Required: panel login password
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true behind HTTPS

	TokenTTL     time.Duration `toml:"-"`              // Session token lifetime (default 7 days)
	BlogCacheTTL time.Duration `toml:"-"`              // Post cache TTL (default 5min)
	TokenTTLStr  string        `toml:"token_ttl"`      // Duration string form for TOML
	CacheTTLStr  string        `toml:"blog_cache_ttl"` // Duration string form for TOML

	LogLevel  string `toml:"log_level"`  // zerolog level (default "info")
	LogPretty bool   `toml:"log_pretty"` // Console writer instead of JSON
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Hospital Digital"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/hospital-digital.sqlite"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	if c.BlogCacheTTL == 0 {
		c.BlogCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig builds a SiteConfig from an optional TOML file and environment
// variable overrides. A missing file is not an error — everything can come
// from the environment.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if cfg.TokenTTLStr != "" {
		d, err := time.ParseDuration(cfg.TokenTTLStr)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse token_ttl: %w", err)
		}
		cfg.TokenTTL = d
	}
	if cfg.CacheTTLStr != "" {
		d, err := time.ParseDuration(cfg.CacheTTLStr)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse blog_cache_ttl: %w", err)
		}
		cfg.BlogCacheTTL = d
	}

	cfg.Name = EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = EnvOr("SITE_URL", cfg.URL)
	cfg.Description = EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Addr = EnvOr("ADDR", cfg.Addr)
	cfg.DatabasePath = EnvOr("DATABASE_PATH", cfg.DatabasePath)
	cfg.AdminUsername = EnvOr("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = EnvOr("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.LogLevel = EnvOr("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("parse LOG_PRETTY: %w", err)
		}
		cfg.LogPretty = b
	}

	cfg.setDefaults()
	return cfg, nil
}

// NewLogger builds the application logger from config: console writer when
// pretty output is requested, JSON otherwise.
func NewLogger(cfg SiteConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogPretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Str("service", "hdsite").
			Logger()
	}
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "hdsite").
		Logger()
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger overrides the default logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
