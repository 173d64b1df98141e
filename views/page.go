package views

import (
	"bytes"
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/parallax"
	"github.com/eringen/folio/reveal"
)

var heroLineClass = [...]string{"hero-greeting", "hero-name", "hero-tagline"}

// Page renders the complete portfolio document.
func Page(cfg SiteConfig, c *content.Content) templ.Component {
	meta := PageMeta{
		Title:       c.Hero.Name + " · " + c.Hero.Tagline,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
	}
	return Layout(cfg, meta, PersonJsonLD(cfg, c), Body(cfg, c))
}

// Body renders every section of the page in order.
func Body(cfg SiteConfig, c *content.Content) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<main>`)
		writeHero(buf, c.Hero)
		writeMetrics(buf, cfg, c.Metrics)
		writeStory(buf, c.Story)
		writeSkills(buf, reveal.Expertise, c.Expertise)
		writeSkills(buf, reveal.Tools, c.Tools)
		for i, p := range c.Projects {
			writeShowcase(buf, i, p)
		}
		writeContact(buf, c.Contact)
		buf.WriteString(`</main>`)
		return nil
	})
}

// Hero renders the three animated lines, one span per glyph.
func Hero(h content.Hero) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		writeHero(buf, h)
		return nil
	})
}

func writeHero(buf *bytes.Buffer, h content.Hero) {
	esc := templ.EscapeString[string]
	buf.WriteString(`<header class="hero"><h1 class="hero-text">`)
	for li, line := range h.Lines() {
		class := "hero-line"
		if li < len(heroLineClass) {
			class += " " + heroLineClass[li]
		}
		buf.WriteString(`<span class="` + class + `" ` + parallax.LineAttr + `="` + esc(line) + `" aria-label="` + esc(line) + `">`)
		idx := 0
		for _, r := range line {
			g := parallax.Glyph{Char: r}
			buf.WriteString(`<span class="glyph" aria-hidden="true" ` + parallax.GlyphAttr + `="` +
				strconv.Itoa(li) + `:` + strconv.Itoa(idx) + `">` + esc(g.Text()) + `</span>`)
			idx++
		}
		buf.WriteString(`</span>`)
	}
	buf.WriteString(`</h1><p class="hero-hint" aria-hidden="true">scroll</p></header>`)
}

func writeMetrics(buf *bytes.Buffer, cfg SiteConfig, metrics []content.Metric) {
	if len(metrics) == 0 {
		return
	}
	esc := templ.EscapeString[string]
	buf.WriteString(`<section class="metrics" aria-label="Highlights"><ul class="metric-grid">`)
	for _, m := range metrics {
		buf.WriteString(`<li class="metric-tile"><span class="metric-value">` + esc(FormatMetric(cfg, m)) +
			`</span><span class="metric-label">` + esc(m.Label) + `</span></li>`)
	}
	buf.WriteString(`</ul></section>`)
}

// openSection starts a revealable section region.
func openSection(buf *bytes.Buffer, s reveal.Section, id, class, title string) {
	esc := templ.EscapeString[string]
	buf.WriteString(`<section id="` + esc(id) + `" class="` + reveal.HiddenClass + ` ` + class + `" ` +
		reveal.SectionAttr + `="` + string(s) + `">`)
	if title != "" {
		buf.WriteString(`<h2 class="section-title">` + esc(title) + `</h2>`)
	}
}

func writeStory(buf *bytes.Buffer, s content.Story) {
	openSection(buf, reveal.Story, string(reveal.Story), "story", orDefault(s.Title, "Story"))
	for _, p := range s.Paragraphs {
		buf.WriteString(`<p>` + FormatInline(p) + `</p>`)
	}
	buf.WriteString(`</section>`)
}

func writeSkills(buf *bytes.Buffer, s reveal.Section, g content.SkillGroup) {
	esc := templ.EscapeString[string]
	openSection(buf, s, string(s), "skills", orDefault(g.Title, defaultTitle(s)))
	buf.WriteString(`<ul class="skill-grid">`)
	for _, item := range g.Items {
		buf.WriteString(`<li class="skill">`)
		if item.Icon != "" {
			buf.WriteString(`<span class="skill-icon icon-` + esc(item.Icon) + `" aria-hidden="true"></span>`)
		}
		buf.WriteString(`<span class="skill-name">` + esc(item.Name) + `</span>`)
		if item.Detail != "" {
			buf.WriteString(`<span class="skill-detail">` + esc(item.Detail) + `</span>`)
		}
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ul></section>`)
}

// writeShowcase renders one project. Both showcases share the work section
// and therefore reveal together.
func writeShowcase(buf *bytes.Buffer, i int, p content.Project) {
	esc := templ.EscapeString[string]
	title := ""
	if i == 0 {
		title = "Work"
	}
	openSection(buf, reveal.Work, "work-"+strconv.Itoa(i+1), "showcase", title)
	buf.WriteString(`<article class="project">`)
	if src := ShowcaseURL(p); src != "" {
		buf.WriteString(`<img class="project-image" src="` + esc(src) + `" alt="` + esc(p.Name) + `" loading="lazy" decoding="async">`)
	}
	buf.WriteString(`<div class="project-body"><h3 class="project-name">` + esc(p.Name) + `</h3>`)
	if p.Role != "" {
		buf.WriteString(`<p class="project-role">` + esc(p.Role) + `</p>`)
	}
	if p.Summary != "" {
		buf.WriteString(`<p class="project-summary">` + esc(p.Summary) + `</p>`)
	}
	if len(p.Tags) > 0 {
		buf.WriteString(`<ul class="tags">`)
		for _, t := range p.Tags {
			buf.WriteString(`<li class="tag">` + esc(t) + `</li>`)
		}
		buf.WriteString(`</ul>`)
	}
	writeLinks(buf, "project-links", p.Links)
	buf.WriteString(`</div></article></section>`)
}

func writeContact(buf *bytes.Buffer, c content.Contact) {
	esc := templ.EscapeString[string]
	openSection(buf, reveal.Connect, string(reveal.Connect), "contact", orDefault(c.Title, "Connect"))
	if c.Blurb != "" {
		buf.WriteString(`<p class="contact-blurb">` + esc(c.Blurb) + `</p>`)
	}
	writeLinks(buf, "contact-links", c.Links)
	buf.WriteString(`</section>`)
}

func writeLinks(buf *bytes.Buffer, class string, links []content.Link) {
	if len(links) == 0 {
		return
	}
	esc := templ.EscapeString[string]
	buf.WriteString(`<ul class="` + class + `">`)
	for _, l := range links {
		href := SafeURL(l.URL)
		if href == "" {
			continue
		}
		attrs := ""
		if l.External() {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		buf.WriteString(`<li><a class="button" href="` + href + `"` + attrs + `>` + esc(l.Label) + `</a></li>`)
	}
	buf.WriteString(`</ul>`)
}

func defaultTitle(s reveal.Section) string {
	switch s {
	case reveal.Expertise:
		return "Expertise"
	case reveal.Tools:
		return "Tools"
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
