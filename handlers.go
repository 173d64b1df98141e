package folio

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

func (a *App) handleHome(c echo.Context) error {
	p, err := a.Cache.Page()
	if err != nil {
		return err
	}
	c.Response().Header().Set("ETag", p.ETag)
	if etagMatch(c.Request().Header.Get("If-None-Match"), p.ETag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.HTMLBlob(http.StatusOK, p.Body)
}

func (a *App) handleShowcase(c echo.Context) error {
	name := c.Param("name")
	cnt, err := a.Cache.Content()
	if err != nil {
		return err
	}
	// Only images the page actually shows are published.
	listed := false
	for _, p := range cnt.Projects {
		if p.Image != "" && p.Image == name {
			listed = true
			break
		}
	}
	if !listed {
		return echo.ErrNotFound
	}

	img, err := a.Showcase.Get(name)
	if errors.Is(err, ErrNoShowcase) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	c.Response().Header().Set("ETag", img.ETag)
	if etagMatch(c.Request().Header.Get("If-None-Match"), img.ETag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, "image/jpeg", img.Data)
}

// assetHandler serves name from the static dir, falling back to the copy
// embedded in the binary.
func (a *App) assetHandler(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if path, ok := a.staticFile(name); ok {
			return c.File(path)
		}
		return echo.StaticFileHandler(name, embeddedAssets)(c)
	}
}

func (a *App) handleRobots(c echo.Context) error {
	if path, ok := a.staticFile("robots.txt"); ok {
		return c.File(path)
	}
	body := "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimSuffix(views.BuildURL(a.Config.URL), "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	p, err := a.Cache.Page()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, p)
}

func (a *App) handleHealth(c echo.Context) error {
	if _, err := a.Cache.Page(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// staticFile reports whether name exists in the user's static dir.
func (a *App) staticFile(name string) (string, bool) {
	path := filepath.Join(a.staticDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	site := a.site(nil)
	if p, perr := a.Cache.Page(); perr == nil {
		site = a.site(p.Content)
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// etagMatch reports whether an If-None-Match header value names etag.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimSpace(v)
		if v == "*" || strings.TrimPrefix(v, "W/") == etag {
			return true
		}
	}
	return false
}
