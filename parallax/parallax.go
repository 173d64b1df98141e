// Package parallax drives the hero "falling away" letter effect.
//
// Each line of hero text is split into glyphs. Every glyph gets a speed drawn
// once when the animator is built; on every scroll sample the animator derives
// an offset, rotation, scale and opacity for each glyph from the scroll
// progress and hands the result to a Renderer.
package parallax

import (
	"math"
	"unicode"
)

const (
	minSpeed = 0.6
	maxSpeed = 1.4

	// travel is the vertical distance in pixels a glyph with speed 0 would
	// drift over one full viewport of scrolling.
	travel = 600

	maxRotation = 15
	shrink      = 0.3
	minScale    = 0.7
	fade        = 1.2
)

const nbsp = "\u00a0"

// Markup shared by the page renderer and the browser binding.
const (
	// LineAttr holds the full text of a hero line on its container.
	LineAttr = "data-hero-line"
	// GlyphAttr holds "line:index" on the span rendering one glyph.
	GlyphAttr = "data-glyph"
)

// Transform is the visual state of one glyph for a given scroll progress.
type Transform struct {
	OffsetY  float64 // pixels
	Rotation float64 // degrees
	Scale    float64
	Opacity  float64
}

// Identity is the transform of every glyph at zero scroll progress.
var Identity = Transform{Scale: 1, Opacity: 1}

// Glyph is one animated character of the hero text.
type Glyph struct {
	Char  rune
	Line  int // index of the text line the glyph belongs to
	Index int // position within its line
	Seq   int // position across all lines; drives the rotation wave

	speed float64

	Transform
}

// Speed returns the speed factor assigned when the glyph was created.
func (g Glyph) Speed() float64 { return g.speed }

// Text returns the glyph as it should be rendered. Whitespace becomes a
// non-breaking space so collapsed spans keep the line layout.
func (g Glyph) Text() string {
	if unicode.IsSpace(g.Char) {
		return nbsp
	}
	return string(g.Char)
}

// Progress normalizes a scroll offset against the viewport height and clamps
// it to [0, 1]. A viewport height that is zero, negative or not a number
// yields 0.
func Progress(scrollY, viewportHeight float64) float64 {
	if !(viewportHeight > 0) || math.IsNaN(scrollY) {
		return 0
	}
	p := scrollY / viewportHeight
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Compute derives the transform of the glyph at index with the given speed.
// index counts glyphs across the whole hero, not within one line.
func Compute(index int, speed, progress float64) Transform {
	return Transform{
		OffsetY:  (1 - speed) * progress * travel,
		Rotation: math.Sin(float64(index)*0.5) * maxRotation * progress,
		Scale:    math.Max(1-progress*shrink, minScale),
		Opacity:  math.Max(1-progress*fade, 0),
	}
}
