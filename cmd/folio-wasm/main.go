//go:build js && wasm

// Command folio-wasm is the browser client of the portfolio page. It animates
// the hero letters on scroll and reveals sections as they enter the viewport.
//
//	GOOS=js GOARCH=wasm go build -o public/folio.wasm ./cmd/folio-wasm
package main

import (
	"github.com/eringen/folio/dom"
	"github.com/eringen/folio/parallax"
	"github.com/eringen/folio/reveal"
)

func main() {
	defer func() { dom.HandleCrash(recover()) }()

	ctrl := reveal.NewController()
	ctrl.OnReveal(dom.ShowSection)

	if dom.PrefersReducedMotion() || !dom.HasIntersectionObserver() {
		revealAll(ctrl)
	}

	var anim *parallax.Animator
	if !dom.PrefersReducedMotion() {
		renderer := dom.NewGlyphRenderer()
		anim = parallax.NewAnimator(dom.HeroLines(), parallax.WithRenderer(renderer))
		dom.Logf("animating %d glyphs", renderer.Len())
	}

	scroll := dom.NewWindowScroll()
	observer := dom.NewIntersectionObserver()
	mount := func() {
		if anim != nil {
			if err := anim.Mount(scroll); err != nil {
				dom.Warnf("animator: %v", err)
			}
		}
		if dom.HasIntersectionObserver() {
			if err := ctrl.Mount(observer); err != nil {
				dom.Warnf("reveal: %v", err)
			}
		}
	}
	unmount := func() {
		if anim != nil {
			anim.Unmount()
		}
		ctrl.Unmount()
	}

	mount()

	page := dom.WatchPage()
	for ev := range page.Events {
		switch ev {
		case dom.PageHidden:
			unmount()
		case dom.PageRestored:
			mount()
		}
	}
}

// revealAll shows every section at once.
func revealAll(ctrl *reveal.Controller) {
	for _, s := range ctrl.Sections() {
		ctrl.Handle(reveal.Entry{Section: s, Ratio: 1})
	}
}
