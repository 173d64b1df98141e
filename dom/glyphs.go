//go:build js && wasm

package dom

import (
	"fmt"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/eringen/folio/parallax"
)

type glyphKey struct{ line, index int }

// GlyphRenderer is a parallax.Renderer writing transforms onto the glyph
// spans the server rendered.
type GlyphRenderer struct {
	spans map[glyphKey]js.Value
}

// NewGlyphRenderer indexes every element carrying a data-glyph attribute.
func NewGlyphRenderer() *GlyphRenderer {
	r := &GlyphRenderer{spans: make(map[glyphKey]js.Value)}
	for _, el := range queryAll("[" + parallax.GlyphAttr + "]") {
		key, ok := parseGlyphKey(el.Call("getAttribute", parallax.GlyphAttr).String())
		if !ok {
			continue
		}
		r.spans[key] = el
	}
	return r
}

// Len returns the number of glyph spans found.
func (r *GlyphRenderer) Len() int { return len(r.spans) }

// Render applies g's transform and opacity to its span. Glyphs without a
// span are ignored.
func (r *GlyphRenderer) Render(g parallax.Glyph) {
	el, ok := r.spans[glyphKey{g.Line, g.Index}]
	if !ok {
		return
	}
	style := el.Get("style")
	style.Set("transform", fmt.Sprintf("translate3d(0, %.2fpx, 0) rotate(%.2fdeg) scale(%.3f)",
		g.OffsetY, g.Rotation, g.Scale))
	style.Set("opacity", strconv.FormatFloat(g.Opacity, 'f', 3, 64))
}

// HeroLines returns the text of every hero line in document order.
func HeroLines() []string {
	var lines []string
	for _, el := range queryAll("[" + parallax.LineAttr + "]") {
		lines = append(lines, el.Call("getAttribute", parallax.LineAttr).String())
	}
	return lines
}

func parseGlyphKey(v string) (glyphKey, bool) {
	line, index, ok := strings.Cut(v, ":")
	if !ok {
		return glyphKey{}, false
	}
	l, err := strconv.Atoi(line)
	if err != nil {
		return glyphKey{}, false
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		return glyphKey{}, false
	}
	return glyphKey{l, i}, true
}
