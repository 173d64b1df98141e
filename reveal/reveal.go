// Package reveal tracks which page sections have scrolled into view.
//
// Each section owns a Flag that starts hidden and flips to visible the first
// time at least Threshold of the section intersects the viewport. A flag never
// goes back to hidden.
package reveal

import (
	"errors"
	"sync/atomic"
)

// Section identifies a revealable region of the page.
type Section string

const (
	Story     Section = "story"
	Expertise Section = "expertise"
	Tools     Section = "tools"
	Work      Section = "work"
	Connect   Section = "connect"
)

// Sections lists every tracked section in page order.
var Sections = []Section{Story, Expertise, Tools, Work, Connect}

// Threshold is the visible fraction at which a section counts as entered.
const Threshold = 0.1

// Markup shared by the page renderer and the browser binding.
const (
	// SectionAttr marks an element as part of a section; its value is the
	// Section. Several elements may carry the same section.
	SectionAttr = "data-section"
	// HiddenClass is set on every section element until it is revealed.
	HiddenClass = "reveal"
	// VisibleClass is added to every element of a section once revealed.
	VisibleClass = "is-visible"
)

// ErrMounted is returned by Mount when the controller is already observing.
var ErrMounted = errors.New("reveal: controller already mounted")

// Flag is the visibility cell of a single section.
type Flag struct {
	visible atomic.Bool
}

// Visible reports whether the section has been revealed.
func (f *Flag) Visible() bool { return f.visible.Load() }

// reveal sets the flag and reports whether this call flipped it.
func (f *Flag) reveal() bool { return f.visible.CompareAndSwap(false, true) }

// Entry is one intersection notification for a section.
type Entry struct {
	Section Section
	Ratio   float64 // visible fraction of the section, 0..1
}

// Observer watches sections for viewport intersection. Observe starts
// delivering entries for s to fn and returns a function that stops them.
// It returns nil when the section has nothing to observe.
type Observer interface {
	Observe(s Section, threshold float64, fn func(Entry)) (cancel func())
}
