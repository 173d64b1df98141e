package folio

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// Page is a rendered copy of the portfolio document.
type Page struct {
	Content  *content.Content
	Body     []byte
	ETag     string
	LoadedAt time.Time
}

// ContentCache keeps the content and its rendered page in memory, reloading
// both once the TTL has passed. A TTL of zero never expires.
type ContentCache struct {
	mu      sync.RWMutex
	page    *Page
	fetched time.Time
	ttl     time.Duration
	load    func() (*content.Content, error)
	render  func(*content.Content) ([]byte, error)

	// OnReloadError is called when a reload fails while an older page is
	// still cached. The older page keeps being served.
	OnReloadError func(error)
}

// NewContentCache creates a ContentCache that obtains content from load and
// turns it into HTML with render.
func NewContentCache(load func() (*content.Content, error), render func(*content.Content) ([]byte, error), ttl time.Duration) *ContentCache {
	return &ContentCache{load: load, render: render, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	if c.page == nil {
		return false
	}
	return c.ttl <= 0 || time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.page = nil
	c.mu.Unlock()
}

func (c *ContentCache) reload() error {
	if c.valid() {
		return nil
	}
	cnt, err := c.load()
	if err == nil {
		var body []byte
		body, err = c.render(cnt)
		if err == nil {
			sum := sha256.Sum256(body)
			c.page = &Page{
				Content:  cnt,
				Body:     body,
				ETag:     `"` + hex.EncodeToString(sum[:8]) + `"`,
				LoadedAt: time.Now(),
			}
			c.fetched = c.page.LoadedAt
			return nil
		}
	}
	if c.page == nil {
		return err
	}
	// Keep the last good page and wait a full TTL before trying again.
	c.fetched = time.Now()
	if c.OnReloadError != nil {
		c.OnReloadError(err)
	}
	return nil
}

// Page returns the cached page after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) Page() (*Page, error) {
	c.mu.RLock()
	if c.valid() {
		p := c.page
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c.page, nil
}

// Content returns the cached content.
func (c *ContentCache) Content() (*content.Content, error) {
	p, err := c.Page()
	if err != nil {
		return nil, err
	}
	return p.Content, nil
}
