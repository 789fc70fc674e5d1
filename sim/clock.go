package sim

import "time"

// Clock reports elapsed playback time in milliseconds since map start.
type Clock interface {
	ElapsedMillis() int64
}

// WallClock is a pausable monotonic clock for maps without audio.
type WallClock struct {
	now      func() time.Time
	start    time.Time
	pausedAt time.Time
	paused   time.Duration
	isPaused bool
}

// NewWallClock starts a clock at zero.
func NewWallClock() *WallClock {
	return newWallClockAt(time.Now)
}

func newWallClockAt(now func() time.Time) *WallClock {
	return &WallClock{now: now, start: now()}
}

// ElapsedMillis returns running time minus all paused time.
func (c *WallClock) ElapsedMillis() int64 {
	end := c.now()
	if c.isPaused {
		end = c.pausedAt
	}
	return (end.Sub(c.start) - c.paused).Milliseconds()
}

// Pause freezes the clock. Pausing twice is a no-op.
func (c *WallClock) Pause() {
	if c.isPaused {
		return
	}
	c.isPaused = true
	c.pausedAt = c.now()
}

// Resume continues from where Pause froze it.
func (c *WallClock) Resume() {
	if !c.isPaused {
		return
	}
	c.paused += c.now().Sub(c.pausedAt)
	c.isPaused = false
}

// IsPaused reports whether the clock is frozen.
func (c *WallClock) IsPaused() bool { return c.isPaused }

// Monotonic clamps a sampled clock so the value it hands out never decreases.
// Audio positions can wobble backwards by a few ms between reads.
type Monotonic struct {
	last    int64
	started bool
}

// Observe folds in a new sample and returns the clamped elapsed time and the
// step since the previous observation.
func (m *Monotonic) Observe(sample int64) (elapsed, delta int64) {
	if !m.started {
		m.started = true
		m.last = sample
		return sample, 0
	}
	if sample <= m.last {
		return m.last, 0
	}
	delta = sample - m.last
	m.last = sample
	return sample, delta
}

// Last returns the most recent clamped value.
func (m *Monotonic) Last() int64 { return m.last }
