package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// component wraps a buffer-writing function as a templ.Component. The body
// is rendered fully before anything reaches w.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Layout renders the document shell around body.
func Layout(cfg SiteConfig, meta PageMeta, jsonLD string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		esc := templ.EscapeString[string]
		assets := cfg.AssetPath

		title := meta.Title
		if title == "" {
			title = cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}

		buf.WriteString(`<!DOCTYPE html><html lang="` + esc(langAttr(cfg)) + `"><head>`)
		buf.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<title>` + esc(title) + `</title>`)
		if desc != "" {
			buf.WriteString(`<meta name="description" content="` + esc(desc) + `">`)
			buf.WriteString(`<meta property="og:description" content="` + esc(desc) + `">`)
		}
		buf.WriteString(`<meta property="og:title" content="` + esc(title) + `">`)
		buf.WriteString(`<meta property="og:type" content="website">`)
		if meta.URL != "" {
			buf.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `">`)
			buf.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `">`)
		}
		if meta.NoIndex {
			buf.WriteString(`<meta name="robots" content="noindex">`)
		}
		buf.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		buf.WriteString(`<link rel="stylesheet" href="` + esc(assets) + `/folio.css">`)
		// Sections start hidden only when scripts run; see folio.css.
		buf.WriteString(`<script>document.documentElement.classList.add("js")</script>`)
		if jsonLD != "" {
			buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		buf.WriteString(`</head><body>`)

		if err := body.Render(ctx, buf); err != nil {
			return err
		}

		buf.WriteString(`<script src="` + esc(assets) + `/wasm_exec.js" defer></script>`)
		buf.WriteString(`<script src="` + esc(assets) + `/folio.js" defer></script>`)
		buf.WriteString(`</body></html>`)
		return nil
	})
}
