// Package scene holds the per-frame state of the viewer that is independent of GL:
// the animation clock, edge-triggered toggles and the sun and cube layout.
package scene

// Clock accumulates scene time. Elapsed freezes while paused.
type Clock struct {
	Elapsed float64 // seconds of unpaused time
	Frames  uint64
}

// Advance adds dt to Elapsed unless paused. Negative dt is ignored.
func (c *Clock) Advance(dt float64, paused bool) {
	c.Frames++
	if paused || dt <= 0 {
		return
	}
	c.Elapsed += dt
}

// Toggle is an edge-triggered on/off switch driven by a held key.
type Toggle struct {
	On bool

	wasPressed bool
}

// Update feeds the key state for one frame and reports whether the toggle flipped.
// Only the press edge flips; holding the key does nothing further.
func (t *Toggle) Update(pressed bool) bool {
	flipped := pressed && !t.wasPressed
	if flipped {
		t.On = !t.On
	}
	t.wasPressed = pressed
	return flipped
}
