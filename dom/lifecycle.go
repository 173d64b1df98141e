//go:build js && wasm

package dom

import "syscall/js"

// PageEvent is a page lifecycle transition.
type PageEvent int

const (
	// PageHidden fires when the page is unloaded or put into the back/forward cache.
	PageHidden PageEvent = iota
	// PageRestored fires when a page comes back from the back/forward cache.
	PageRestored
)

// PageLifecycle delivers pagehide and persisted pageshow events.
type PageLifecycle struct {
	Events <-chan PageEvent
}

// WatchPage starts listening for page lifecycle events.
func WatchPage() *PageLifecycle {
	ch := make(chan PageEvent, 8)
	send := func(ev PageEvent) {
		select {
		case ch <- ev:
		default:
			// Buffer full, drop event
		}
	}

	hide := js.FuncOf(func(_ js.Value, _ []js.Value) any {
		send(PageHidden)
		return nil
	})
	show := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Get("persisted").Bool() {
			send(PageRestored)
		}
		return nil
	})
	win := js.Global()
	win.Call("addEventListener", "pagehide", hide)
	win.Call("addEventListener", "pageshow", show)

	return &PageLifecycle{Events: ch}
}
