package folio

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/log"
	"golang.org/x/text/language"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// SiteConfig holds all configuration for a folio site. Every field can be set
// from the environment; see LoadConfig.
type SiteConfig struct {
	Name        string `env:"FOLIO_NAME"`                                           // Site name (default: the hero name)
	URL         string `env:"FOLIO_URL"         envDefault:"http://localhost:3000"` // Canonical URL
	Description string `env:"FOLIO_DESCRIPTION"`                                    // Meta description
	Lang        string `env:"FOLIO_LANG"        envDefault:"en"`                    // BCP 47 tag, drives number formatting
	AssetPath   string `env:"FOLIO_ASSET_PATH"  envDefault:"/public"`               // URL prefix of css, js and wasm

	Addr        string        `env:"FOLIO_ADDR"         envDefault:":3000"`
	ContentPath string        `env:"FOLIO_CONTENT"`                            // YAML file; empty serves the built-in sample
	ContentTTL  time.Duration `env:"FOLIO_CONTENT_TTL"  envDefault:"1m"`       // How often ContentPath is re-read
	ShowcaseDir string        `env:"FOLIO_SHOWCASE_DIR" envDefault:"showcase"` // Source images for the projects
	LogLevel    string        `env:"FOLIO_LOG_LEVEL"    envDefault:"info"`

	ShutdownTimeout time.Duration `env:"FOLIO_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads a SiteConfig from the environment.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := language.Parse(cfg.Lang); err != nil {
		return SiteConfig{}, fmt.Errorf("FOLIO_LANG %q: %w", cfg.Lang, err)
	}
	if _, ok := logLevels[strings.ToLower(cfg.LogLevel)]; !ok {
		return SiteConfig{}, fmt.Errorf("FOLIO_LOG_LEVEL %q: unknown level", cfg.LogLevel)
	}
	return cfg, nil
}

// setDefaults fills the zero values left by callers that build a SiteConfig
// by hand instead of through LoadConfig.
func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.AssetPath == "" {
		c.AssetPath = "/public"
	}
	c.AssetPath = strings.TrimRight(c.AssetPath, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ShowcaseDir == "" {
		c.ShowcaseDir = "showcase"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// viewConfig is the subset of the configuration the templates read.
func (c SiteConfig) viewConfig(cnt *content.Content) views.SiteConfig {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		tag = language.English
	}
	name := c.Name
	if name == "" && cnt != nil {
		name = cnt.Hero.Name
	}
	return views.SiteConfig{
		Name:        name,
		URL:         c.URL,
		Description: c.Description,
		Lang:        tag,
		AssetPath:   c.AssetPath,
	}
}

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func parseLogLevel(s string) log.Lvl {
	if lvl, ok := logLevels[strings.ToLower(s)]; ok {
		return lvl
	}
	return log.INFO
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
// The compiled client, folio.wasm, is expected there.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithContent serves c instead of reading ContentPath.
func WithContent(c *content.Content) Option {
	return func(a *App) {
		a.fixedContent = c
	}
}

// WithShowcaseFS reads project images from fsys instead of ShowcaseDir.
func WithShowcaseFS(fsys fs.FS) Option {
	return func(a *App) {
		a.showcaseFS = fsys
	}
}
