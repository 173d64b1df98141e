// Package folio serves a single-page personal portfolio built with Go, Echo
// and templ. The page's scroll animation and section reveals run in the
// browser as a WebAssembly client (see cmd/folio-wasm).
package folio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// App is the central folio application. It wires together the content
// cache, showcase images, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Cache    *ContentCache
	Showcase *Showcase

	customRoutes []func(*App)
	staticDir    string
	fixedContent *content.Content
	showcaseFS   fs.FS
	ready        bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(parseLogLevel(cfg.LogLevel))

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup loads the content and registers middleware and routes. Start calls
// it; tests may call it directly and drive a.Echo as an http.Handler.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}

	ttl := a.Config.ContentTTL
	if a.fixedContent != nil || a.Config.ContentPath == "" {
		ttl = 0
	}
	a.Cache = NewContentCache(a.loadContent, a.renderContent, ttl)
	a.Cache.OnReloadError = func(err error) {
		a.Echo.Logger.Warnf("content reload failed, serving previous copy: %v", err)
	}
	// Fail early on a broken content file.
	if _, err := a.Cache.Page(); err != nil {
		return fmt.Errorf("folio: %w", err)
	}

	if a.showcaseFS == nil {
		a.showcaseFS = os.DirFS(a.Config.ShowcaseDir)
	}
	a.Showcase = NewShowcase(a.showcaseFS)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("folio listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run starts the server and shuts it down gracefully once ctx is done.
func (a *App) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- a.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return <-errc
}

// RenderPage writes the complete document to w, as served at "/".
func (a *App) RenderPage(w io.Writer) error {
	if err := a.Setup(); err != nil {
		return err
	}
	p, err := a.Cache.Page()
	if err != nil {
		return err
	}
	_, err = w.Write(p.Body)
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Client assets ship in the binary; a file of the same name in the
	// static dir wins. Everything else under /public, folio.wasm included,
	// comes from the static dir only.
	for _, name := range embeddedPublic {
		e.GET("/public/"+name, a.assetHandler(name))
	}
	e.Static("/public", a.staticDir)

	e.GET("/", a.handleHome)
	e.GET("/showcase/:name", a.handleShowcase)
	e.GET("/favicon.svg", a.assetHandler("favicon.svg"))
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealth)
}

func (a *App) loadContent() (*content.Content, error) {
	if a.fixedContent != nil {
		if err := a.fixedContent.Validate(); err != nil {
			return nil, err
		}
		return a.fixedContent, nil
	}
	if a.Config.ContentPath == "" {
		return content.Default()
	}
	return content.Load(a.Config.ContentPath)
}

func (a *App) renderContent(c *content.Content) ([]byte, error) {
	var buf bytes.Buffer
	if err := views.Page(a.site(c), c).Render(context.Background(), &buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// site returns the template configuration for c.
func (a *App) site(c *content.Content) views.SiteConfig {
	return a.Config.viewConfig(c)
}
