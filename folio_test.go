package folio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/eringen/folio/content"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	a := New(SiteConfig{URL: "https://example.dev", LogLevel: "off"},
		WithContent(c),
		WithStaticDir(t.TempDir()),
		WithShowcaseFS(fstest.MapFS{
			"tickr.png": {Data: pngBytes(t, 1600, 900)},
		}),
	)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, path string) *httptest.ResponseRecorder {
	return serve(a, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestHomeServesPage(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`data-glyph="0:0"`, `data-section="story"`, `data-section="connect"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, no-cache" {
		t.Errorf("Cache-Control = %q", got)
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "'wasm-unsafe-eval'") {
		t.Errorf("CSP does not allow wasm: %q", csp)
	}
}

func TestHomeNotModified(t *testing.T) {
	a := newTestApp(t)
	etag := get(a, "/").Header().Get("ETag")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec := serve(a, req)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("304 response has a body")
	}
}

func TestShowcaseResizes(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/showcase/tickr.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	cfg, err := jpeg.DecodeConfig(rec.Body)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 450 {
		t.Errorf("size = %dx%d, want 800x450", cfg.Width, cfg.Height)
	}
}

func TestShowcaseNotFound(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		name string
		path string
	}{
		{"listed but missing on disk", "/showcase/skylog.png"},
		{"not listed in content", "/showcase/other.png"},
		{"traversal", "/showcase/..%2Fsecret.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(a, tt.path)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("GET %s status = %d, want 404", tt.path, rec.Code)
			}
		})
	}
}

func TestEmbeddedAssets(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/public/folio.css", "/public/folio.js", "/public/wasm_exec.js", "/favicon.svg"} {
		rec := get(a, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
			continue
		}
		if rec.Body.Len() == 0 {
			t.Errorf("GET %s returned an empty body", path)
		}
	}
}

func TestRobotsAndSitemap(t *testing.T) {
	a := newTestApp(t)

	robots := get(a, "/robots.txt")
	if robots.Code != http.StatusOK {
		t.Fatalf("robots status = %d", robots.Code)
	}
	if !strings.Contains(robots.Body.String(), "Sitemap: https://example.dev/sitemap.xml") {
		t.Errorf("robots.txt = %q", robots.Body.String())
	}

	sitemap := get(a, "/sitemap.xml")
	if sitemap.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", sitemap.Code)
	}
	if !strings.Contains(sitemap.Body.String(), "<loc>https://example.dev</loc>") {
		t.Errorf("sitemap = %q", sitemap.Body.String())
	}
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/feed.xml")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not found") {
		t.Error("404 page not rendered")
	}
}

func TestSetupRejectsInvalidContent(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	c.Projects = c.Projects[:1]
	a := New(SiteConfig{LogLevel: "off"}, WithContent(c))
	if err := a.Setup(); err == nil {
		t.Fatal("Setup() accepted content with one project")
	}
}

func TestRenderPage(t *testing.T) {
	a := newTestApp(t)
	var buf bytes.Buffer
	if err := a.RenderPage(&buf); err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	if buf.String() != get(a, "/").Body.String() {
		t.Error("rendered file differs from the served page")
	}
}

func TestEtagMatch(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{"*", true},
		{`"abd"`, false},
	}
	for _, tt := range tests {
		if got := etagMatch(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
