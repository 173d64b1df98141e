package parallax

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrMounted is returned by Mount when the animator is already subscribed.
var ErrMounted = errors.New("parallax: animator already mounted")

// ScrollSource delivers scroll notifications and reports the current viewport
// geometry. Subscribe returns a function that removes the subscription.
type ScrollSource interface {
	Position() (scrollY, viewportHeight float64)
	Subscribe(fn func()) (unsubscribe func())
}

// Renderer applies a glyph's transform to whatever displays it.
type Renderer interface {
	Render(g Glyph)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(g Glyph)

// Render calls f(g).
func (f RendererFunc) Render(g Glyph) { f(g) }

// Option configures an Animator.
type Option func(*Animator)

// WithRand sets the random source used to draw glyph speeds.
func WithRand(r *rand.Rand) Option {
	return func(a *Animator) {
		a.rng = r
	}
}

// WithRenderer sets the renderer that receives every recomputed glyph.
func WithRenderer(r Renderer) Option {
	return func(a *Animator) {
		a.renderer = r
	}
}

// Animator owns the glyphs of a block of hero text and recomputes their
// transforms from scroll progress.
type Animator struct {
	renderMu sync.Mutex // held while glyphs are being handed to the renderer

	mu          sync.Mutex
	glyphs      []Glyph
	renderer    Renderer
	rng         *rand.Rand
	unsubscribe func()
	gen         uint64 // bumped on every Mount and Unmount
}

// NewAnimator splits each line into glyphs and draws their speeds.
func NewAnimator(lines []string, opts ...Option) *Animator {
	a := &Animator{}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for li, line := range lines {
		idx := 0
		for _, r := range line {
			a.glyphs = append(a.glyphs, Glyph{
				Char:      r,
				Line:      li,
				Index:     idx,
				Seq:       len(a.glyphs),
				speed:     minSpeed + a.rng.Float64()*(maxSpeed-minSpeed),
				Transform: Identity,
			})
			idx++
		}
	}
	return a
}

// Glyphs returns a snapshot of every glyph in line order.
func (a *Animator) Glyphs() []Glyph {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Glyph, len(a.glyphs))
	copy(out, a.glyphs)
	return out
}

// Update recomputes all glyphs for the given scroll position and renders them.
func (a *Animator) Update(scrollY, viewportHeight float64) {
	a.mu.Lock()
	gen := a.gen
	a.mu.Unlock()
	a.update(gen, scrollY, viewportHeight)
}

// update recomputes and renders only while the mount generation still
// matches, so a notification racing with Unmount is dropped.
func (a *Animator) update(gen uint64, scrollY, viewportHeight float64) {
	progress := Progress(scrollY, viewportHeight)

	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	for i := range a.glyphs {
		g := &a.glyphs[i]
		g.Transform = Compute(g.Seq, g.speed, progress)
	}
	snapshot := make([]Glyph, len(a.glyphs))
	copy(snapshot, a.glyphs)
	r := a.renderer
	a.mu.Unlock()

	if r == nil {
		return
	}
	for _, g := range snapshot {
		r.Render(g)
	}
}

// Mount subscribes to src and renders the current position once.
func (a *Animator) Mount(src ScrollSource) error {
	a.mu.Lock()
	if a.unsubscribe != nil {
		a.mu.Unlock()
		return ErrMounted
	}
	a.gen++
	gen := a.gen
	a.unsubscribe = func() {}
	a.mu.Unlock()

	unsub := src.Subscribe(func() {
		y, h := src.Position()
		a.update(gen, y, h)
	})

	a.mu.Lock()
	if a.gen != gen {
		// Unmounted while subscribing.
		a.mu.Unlock()
		if unsub != nil {
			unsub()
		}
		return nil
	}
	if unsub != nil {
		a.unsubscribe = unsub
	}
	a.mu.Unlock()

	y, h := src.Position()
	a.update(gen, y, h)
	return nil
}

// Unmount removes the scroll subscription. It is safe to call more than
// once and on an animator that was never mounted. No glyph is rendered
// after Unmount returns, so it must not be called from a Renderer.
func (a *Animator) Unmount() {
	a.mu.Lock()
	unsub := a.unsubscribe
	a.unsubscribe = nil
	a.gen++
	a.mu.Unlock()

	if unsub != nil {
		unsub()
	}

	// Wait out a render that started before the generation bump.
	a.renderMu.Lock()
	a.renderMu.Unlock()
}

// Mounted reports whether the animator currently holds a subscription.
func (a *Animator) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unsubscribe != nil
}

// Run mounts the animator on src and blocks until ctx is done, then
// unmounts it.
func (a *Animator) Run(ctx context.Context, src ScrollSource) error {
	if err := a.Mount(src); err != nil {
		return err
	}
	defer a.Unmount()
	<-ctx.Done()
	return nil
}
