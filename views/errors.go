package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return statusPage(cfg, "Not found", "There is nothing at this address.")
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return statusPage(cfg, "Something broke", "The page could not be rendered. Please try again shortly.")
}

func statusPage(cfg SiteConfig, heading, text string) templ.Component {
	body := component(func(_ context.Context, buf *bytes.Buffer) error {
		esc := templ.EscapeString[string]
		buf.WriteString(`<main class="status-page"><h1>` + esc(heading) + `</h1><p>` + esc(text) +
			`</p><p><a class="button" href="/">Back to ` + esc(cfg.Name) + `</a></p></main>`)
		return nil
	})
	return Layout(cfg, PageMeta{Title: heading + " · " + cfg.Name, NoIndex: true}, "", body)
}
