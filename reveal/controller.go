package reveal

import "sync"

// Controller owns the visibility flags of a fixed set of sections.
type Controller struct {
	handleMu sync.Mutex // held while an observed entry is being applied

	mu        sync.Mutex
	order     []Section
	flags     map[Section]*Flag
	listeners []func(Section)
	cancels   map[Section]func()
	mounted   bool
	gen       uint64
}

// NewController creates a controller for sections, or for every section in
// Sections when none are given. Duplicates are ignored.
func NewController(sections ...Section) *Controller {
	if len(sections) == 0 {
		sections = Sections
	}
	c := &Controller{
		flags:   make(map[Section]*Flag, len(sections)),
		cancels: make(map[Section]func()),
	}
	for _, s := range sections {
		if _, ok := c.flags[s]; ok {
			continue
		}
		c.flags[s] = &Flag{}
		c.order = append(c.order, s)
	}
	return c
}

// Sections returns the tracked sections in registration order.
func (c *Controller) Sections() []Section {
	out := make([]Section, len(c.order))
	copy(out, c.order)
	return out
}

// Flag returns the visibility cell of s, or nil if s is not tracked.
func (c *Controller) Flag(s Section) *Flag {
	return c.flags[s]
}

// Visible reports whether s has been revealed.
func (c *Controller) Visible(s Section) bool {
	f := c.flags[s]
	return f != nil && f.Visible()
}

// Snapshot returns the current visibility of every tracked section.
func (c *Controller) Snapshot() map[Section]bool {
	out := make(map[Section]bool, len(c.flags))
	for s, f := range c.flags {
		out[s] = f.Visible()
	}
	return out
}

// OnReveal registers fn to be called once for each section when it is
// revealed.
func (c *Controller) OnReveal(fn func(Section)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Handle applies one intersection entry. It reports whether the entry
// revealed its section. Entries below Threshold, for untracked sections or
// for sections already revealed change nothing.
func (c *Controller) Handle(e Entry) bool {
	f := c.flags[e.Section]
	if f == nil || !(e.Ratio >= Threshold) {
		return false
	}
	if !f.reveal() {
		return false
	}

	c.mu.Lock()
	listeners := make([]func(Section), len(c.listeners))
	copy(listeners, c.listeners)
	cancel := c.cancels[e.Section]
	delete(c.cancels, e.Section)
	c.mu.Unlock()

	// Nothing left to observe once revealed.
	if cancel != nil {
		cancel()
	}
	for _, fn := range listeners {
		fn(e.Section)
	}
	return true
}

// Mount registers one observation per section that is still hidden.
// Sections the observer cannot find are skipped.
func (c *Controller) Mount(obs Observer) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return ErrMounted
	}
	c.mounted = true
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	for _, s := range c.order {
		if c.flags[s].Visible() {
			continue
		}
		cancel := obs.Observe(s, Threshold, func(e Entry) {
			c.handleMu.Lock()
			defer c.handleMu.Unlock()

			c.mu.Lock()
			live := c.mounted && c.gen == gen
			c.mu.Unlock()
			if live {
				c.Handle(e)
			}
		})
		if cancel == nil {
			continue
		}

		c.mu.Lock()
		if !c.mounted || c.gen != gen || c.flags[s].Visible() {
			// Unmounted or revealed while registering.
			c.mu.Unlock()
			cancel()
			continue
		}
		c.cancels[s] = cancel
		c.mu.Unlock()
	}
	return nil
}

// Unmount deregisters every observation. It is safe to call more than once.
// No observed entry is applied after Unmount returns, so it must not be
// called from an OnReveal listener.
func (c *Controller) Unmount() {
	c.mu.Lock()
	cancels := c.cancels
	c.cancels = make(map[Section]func())
	c.mounted = false
	c.gen++
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}

	// Wait out an entry that passed the generation check before the bump.
	c.handleMu.Lock()
	c.handleMu.Unlock()
}

// Mounted reports whether the controller is currently observing.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Observing returns how many sections still hold an observation.
func (c *Controller) Observing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cancels)
}
