//go:build js && wasm

// Package dom binds the parallax animator and the reveal controller to the
// browser: window scroll events, the hero glyph spans and
// IntersectionObserver.
package dom

import (
	"fmt"
	"runtime/debug"
	"syscall/js"
)

// Logf writes a message to the browser console.
func Logf(format string, args ...any) {
	js.Global().Get("console").Call("log", "folio: "+fmt.Sprintf(format, args...))
}

// Warnf writes a warning to the browser console.
func Warnf(format string, args ...any) {
	js.Global().Get("console").Call("warn", "folio: "+fmt.Sprintf(format, args...))
}

// HandleCrash logs a recovered panic with its stack to the console, then
// re-panics. Use as: defer func() { dom.HandleCrash(recover()) }().
func HandleCrash(r any) {
	if r == nil {
		return
	}
	console := js.Global().Get("console")
	console.Call("error", fmt.Sprintf("folio: CRASH: %v", r))
	console.Call("error", fmt.Sprintf("Stack:\n%s", debug.Stack()))
	panic(r)
}

// queryAll returns the elements matching selector in document order.
func queryAll(selector string) []js.Value {
	list := js.Global().Get("document").Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// PrefersReducedMotion reports whether the user asked for reduced motion.
func PrefersReducedMotion() bool {
	mm := js.Global().Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return false
	}
	return js.Global().Call("matchMedia", "(prefers-reduced-motion: reduce)").Get("matches").Bool()
}

// HasIntersectionObserver reports whether the browser supports
// IntersectionObserver.
func HasIntersectionObserver() bool {
	return js.Global().Get("IntersectionObserver").Type() == js.TypeFunction
}
