//go:build js && wasm

package dom

import (
	"sync"
	"syscall/js"

	"github.com/eringen/folio/reveal"
)

// IntersectionObserver is a reveal.Observer backed by the browser's
// IntersectionObserver. All elements of one section share one observer.
type IntersectionObserver struct{}

// NewIntersectionObserver returns an observer for the current document.
func NewIntersectionObserver() IntersectionObserver {
	return IntersectionObserver{}
}

// Observe watches every element of section s. It returns nil when the page
// has no such element.
func (IntersectionObserver) Observe(s reveal.Section, threshold float64, fn func(reveal.Entry)) func() {
	elems := sectionElements(s)
	if len(elems) == 0 {
		return nil
	}

	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			fn(reveal.Entry{Section: s, Ratio: entries.Index(i).Get("intersectionRatio").Float()})
		}
		return nil
	})
	obs := js.Global().Get("IntersectionObserver").New(cb, map[string]any{"threshold": threshold})
	for _, el := range elems {
		obs.Call("observe", el)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			obs.Call("disconnect")
			cb.Release()
		})
	}
}

// ShowSection marks every element of s visible.
func ShowSection(s reveal.Section) {
	for _, el := range sectionElements(s) {
		el.Get("classList").Call("add", reveal.VisibleClass)
	}
}

func sectionElements(s reveal.Section) []js.Value {
	return queryAll("[" + reveal.SectionAttr + `="` + string(s) + `"]`)
}
