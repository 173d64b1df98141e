package views

import "golang.org/x/text/language"

// SiteConfig holds site-wide settings populated from environment variables.
// Every component that needs branding or locale receives it explicitly.
type SiteConfig struct {
	Name        string       // FOLIO_SITE_NAME
	URL         string       // FOLIO_SITE_URL
	Description string       // FOLIO_SITE_DESCRIPTION
	Lang        language.Tag // FOLIO_SITE_LANG, drives number formatting
	AssetPath   string       // URL prefix of static assets, "/public"
}

// PageMeta carries per-page OpenGraph and SEO metadata into <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	NoIndex     bool
}
