//go:build js && wasm

package dom

import (
	"sync"
	"syscall/js"
)

// WindowScroll is a parallax.ScrollSource backed by the window's scroll and
// resize events.
type WindowScroll struct {
	win js.Value
}

// NewWindowScroll returns the scroll source of the current window.
func NewWindowScroll() *WindowScroll {
	return &WindowScroll{win: js.Global()}
}

// Position returns window.scrollY and window.innerHeight.
func (w *WindowScroll) Position() (scrollY, viewportHeight float64) {
	return w.win.Get("scrollY").Float(), w.win.Get("innerHeight").Float()
}

// Subscribe calls fn on every scroll event and whenever the viewport is
// resized. The returned function removes the listeners and releases the
// callback; it may be called more than once.
func (w *WindowScroll) Subscribe(fn func()) func() {
	cb := js.FuncOf(func(_ js.Value, _ []js.Value) any {
		fn()
		return nil
	})
	opts := map[string]any{"passive": true}
	w.win.Call("addEventListener", "scroll", cb, opts)
	w.win.Call("addEventListener", "resize", cb, opts)

	var once sync.Once
	return func() {
		once.Do(func() {
			w.win.Call("removeEventListener", "scroll", cb, opts)
			w.win.Call("removeEventListener", "resize", cb, opts)
			cb.Release()
		})
	}
}
