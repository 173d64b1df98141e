package parallax

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"
)

// fakeScroll is a ScrollSource driven by the test.
type fakeScroll struct {
	mu        sync.Mutex
	y, h      float64
	subs      map[int]func()
	next      int
	unsubbed  int
	subscribe int
}

func newFakeScroll(h float64) *fakeScroll {
	return &fakeScroll{h: h, subs: make(map[int]func())}
}

func (f *fakeScroll) Position() (float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.y, f.h
}

func (f *fakeScroll) Subscribe(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.subs[id] = fn
	f.subscribe++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[id]; ok {
			delete(f.subs, id)
			f.unsubbed++
		}
	}
}

// scrollTo moves the viewport and notifies every live subscriber.
func (f *fakeScroll) scrollTo(y float64) {
	f.mu.Lock()
	f.y = y
	fns := make([]func(), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *fakeScroll) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

type recorder struct {
	mu    sync.Mutex
	calls int
	last  map[[2]int]Glyph
}

func newRecorder() *recorder {
	return &recorder{last: make(map[[2]int]Glyph)}
}

func (r *recorder) Render(g Glyph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.last[[2]int{g.Line, g.Index}] = g
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

var heroLines = []string{"Hi, I'm", "Ada Lovelace", "I build engines"}

func TestNewAnimatorSplitsLines(t *testing.T) {
	a := NewAnimator([]string{"ab c", "dé"}, WithRand(seeded()))
	glyphs := a.Glyphs()
	if len(glyphs) != 6 {
		t.Fatalf("len(glyphs) = %d, want 6", len(glyphs))
	}
	want := []struct {
		line, index int
		text        string
	}{
		{0, 0, "a"}, {0, 1, "b"}, {0, 2, "\u00a0"}, {0, 3, "c"},
		{1, 0, "d"}, {1, 1, "é"},
	}
	for i, w := range want {
		g := glyphs[i]
		if g.Line != w.line || g.Index != w.index || g.Text() != w.text {
			t.Errorf("glyph %d = (line %d, index %d, %q), want (line %d, index %d, %q)",
				i, g.Line, g.Index, g.Text(), w.line, w.index, w.text)
		}
		if g.Transform != Identity {
			t.Errorf("glyph %d starts at %+v, want identity", i, g.Transform)
		}
	}
}

func TestSpeedsInRange(t *testing.T) {
	a := NewAnimator([]string{string(make([]rune, 500))}, WithRand(seeded()))
	for _, g := range a.Glyphs() {
		if g.Speed() < 0.6 || g.Speed() >= 1.4 {
			t.Fatalf("speed %v outside [0.6, 1.4)", g.Speed())
		}
	}
}

func TestSpeedStableAcrossUpdates(t *testing.T) {
	a := NewAnimator(heroLines, WithRand(seeded()))
	before := a.Glyphs()
	a.Update(120, 800)
	a.Update(640, 800)
	a.Update(0, 800)
	after := a.Glyphs()
	for i := range before {
		if before[i].Speed() != after[i].Speed() {
			t.Fatalf("glyph %d speed changed from %v to %v", i, before[i].Speed(), after[i].Speed())
		}
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	a := NewAnimator(heroLines, WithRand(seeded()))
	a.Update(333, 800)
	first := a.Glyphs()
	a.Update(700, 800)
	a.Update(333, 800)
	second := a.Glyphs()
	for i := range first {
		if first[i].Transform != second[i].Transform {
			t.Fatalf("glyph %d: %+v then %+v for the same position", i, first[i].Transform, second[i].Transform)
		}
	}
}

func TestUpdateAtFullScroll(t *testing.T) {
	a := NewAnimator(heroLines, WithRand(seeded()))
	a.Update(800, 800)
	for _, g := range a.Glyphs() {
		if g.Scale != 0.7 || g.Opacity != 0 {
			t.Fatalf("glyph %d/%d: scale %v opacity %v, want 0.7 and 0", g.Line, g.Index, g.Scale, g.Opacity)
		}
		if want := (1 - g.Speed()) * 600; !approx(g.OffsetY, want) {
			t.Fatalf("glyph %d/%d: offset %v, want %v", g.Line, g.Index, g.OffsetY, want)
		}
	}
}

func TestMountRendersAndFollowsScroll(t *testing.T) {
	src := newFakeScroll(800)
	rec := newRecorder()
	a := NewAnimator(heroLines, WithRand(seeded()), WithRenderer(rec))
	n := len(a.Glyphs())

	if err := a.Mount(src); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if rec.count() != n {
		t.Fatalf("initial render calls = %d, want %d", rec.count(), n)
	}

	src.scrollTo(400)
	if rec.count() != 2*n {
		t.Fatalf("render calls after scroll = %d, want %d", rec.count(), 2*n)
	}
	g := rec.last[[2]int{1, 4}]
	if want := Compute(g.Seq, g.Speed(), 0.5); g.Transform != want {
		t.Fatalf("rendered %+v, want %+v", g.Transform, want)
	}
}

func TestRotationWaveSpansLines(t *testing.T) {
	lines := []string{"Hi, I am", "DURE MANSUR", "Software Engineer"}
	a := NewAnimator(lines, WithRand(seeded()))
	a.Update(800, 800)

	glyphs := a.Glyphs()
	for i, g := range glyphs {
		if g.Seq != i {
			t.Fatalf("glyph %d has Seq %d", i, g.Seq)
		}
	}

	first := len([]rune(lines[0]))
	g := glyphs[first]
	if g.Line != 1 || g.Index != 0 || g.Char != 'D' {
		t.Fatalf("glyph %d = %q line %d index %d, want 'D' line 1 index 0", first, g.Char, g.Line, g.Index)
	}
	want := math.Sin(float64(first)*0.5) * 15
	if math.Abs(g.Rotation-want) > 1e-9 {
		t.Fatalf("rotation of first name glyph = %v, want %v", g.Rotation, want)
	}
	if g.Rotation == 0 {
		t.Fatal("rotation wave restarted on the second line")
	}
}

func TestMountTwice(t *testing.T) {
	src := newFakeScroll(800)
	a := NewAnimator(heroLines)
	if err := a.Mount(src); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := a.Mount(src); !errors.Is(err, ErrMounted) {
		t.Fatalf("second Mount = %v, want ErrMounted", err)
	}
	if src.live() != 1 {
		t.Fatalf("live subscriptions = %d, want 1", src.live())
	}
}

func TestUnmountStopsRendering(t *testing.T) {
	src := newFakeScroll(800)
	rec := newRecorder()
	a := NewAnimator(heroLines, WithRenderer(rec))
	if err := a.Mount(src); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	a.Unmount()
	if src.live() != 0 {
		t.Fatalf("live subscriptions after Unmount = %d, want 0", src.live())
	}
	if a.Mounted() {
		t.Fatal("Mounted() = true after Unmount")
	}

	calls := rec.count()
	src.scrollTo(500)
	if rec.count() != calls {
		t.Fatalf("rendered %d glyphs after Unmount", rec.count()-calls)
	}

	// Idempotent.
	a.Unmount()
	if src.unsubbed != 1 {
		t.Fatalf("unsubscribe calls = %d, want 1", src.unsubbed)
	}
}

func TestStaleCallbackDropped(t *testing.T) {
	// A source that keeps invoking a callback after unsubscription.
	var captured func()
	src := &leakySource{h: 800, capture: func(fn func()) { captured = fn }}
	rec := newRecorder()
	a := NewAnimator(heroLines, WithRenderer(rec))
	if err := a.Mount(src); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	a.Unmount()
	calls := rec.count()
	captured()
	if rec.count() != calls {
		t.Fatal("stale scroll callback rendered after Unmount")
	}
}

type leakySource struct {
	h       float64
	capture func(func())
}

func (l *leakySource) Position() (float64, float64) { return 200, l.h }

func (l *leakySource) Subscribe(fn func()) func() {
	l.capture(fn)
	return func() {}
}

func TestRemountAfterUnmount(t *testing.T) {
	src := newFakeScroll(800)
	a := NewAnimator(heroLines)
	for i := 0; i < 3; i++ {
		if err := a.Mount(src); err != nil {
			t.Fatalf("Mount %d: %v", i, err)
		}
		a.Unmount()
	}
	if src.subscribe != 3 || src.unsubbed != 3 {
		t.Fatalf("subscribe/unsubscribe = %d/%d, want 3/3", src.subscribe, src.unsubbed)
	}
}

func TestRunUnmountsOnCancel(t *testing.T) {
	src := newFakeScroll(800)
	a := NewAnimator(heroLines)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, src) }()

	deadline := time.Now().Add(time.Second)
	for src.live() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Run did not subscribe")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if src.live() != 0 {
		t.Fatalf("live subscriptions after Run = %d, want 0", src.live())
	}
}
