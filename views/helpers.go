package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eringen/folio/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FormatMetric renders a metric value with the digit grouping of the
// site's language, e.g. 14500000 -> "14,500,000" for English.
func FormatMetric(cfg SiteConfig, m content.Metric) string {
	p := message.NewPrinter(cfg.Lang)
	return p.Sprintf("%d", m.Value) + m.Suffix
}

// ShowcaseURL is where the server publishes a project's resized image.
func ShowcaseURL(p content.Project) string {
	if p.Image == "" {
		return ""
	}
	return "/showcase/" + url.PathEscape(p.Image)
}

// PersonJsonLD produces a Schema.org Person block describing the page owner.
func PersonJsonLD(cfg SiteConfig, c *content.Content) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     c.Hero.Name,
		"url":      BuildURL(cfg.URL),
	}
	if c.Hero.Tagline != "" {
		data["description"] = c.Hero.Tagline
	}
	var sameAs []string
	for _, l := range c.Contact.Links {
		if l.External() {
			sameAs = append(sameAs, l.URL)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	var skills []string
	for _, s := range c.Expertise.Items {
		skills = append(skills, s.Name)
	}
	if len(skills) > 0 {
		data["knowsAbout"] = skills
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// langAttr is the value of the <html lang> attribute.
func langAttr(cfg SiteConfig) string {
	if cfg.Lang == language.Und {
		return "en"
	}
	return cfg.Lang.String()
}
