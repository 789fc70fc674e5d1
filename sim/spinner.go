package sim

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// SpinnerPattern controls the radial bursts of a spinner.
type SpinnerPattern struct {
	IntervalMs int64   // time between bursts
	Count      int     // projectiles per burst
	Step       float64 // radians the burst rotates after firing
	Radius     float64 // aim circle radius around the centre
}

// SpinnerSink receives each projectile a spinner emits: it starts at from
// and heads toward toward.
type SpinnerSink func(from, toward dmath.Vec2)

// Spinner fires evenly spaced rings of projectiles from its centre on a
// fixed interval between start and end, rotating each ring by Step.
type Spinner struct {
	center  dmath.Vec2
	start   int64
	end     int64
	pattern SpinnerPattern

	nextBurst int64
	angle     float64
	bursts    int
}

// NewSpinner creates a spinner that fires its first burst at start.
func NewSpinner(center dmath.Vec2, start, end int64, pattern SpinnerPattern) *Spinner {
	if pattern.IntervalMs <= 0 {
		pattern.IntervalMs = 1
	}
	return &Spinner{
		center:    center,
		start:     start,
		end:       end,
		pattern:   pattern,
		nextBurst: start,
	}
}

// Update fires every burst due by elapsed into sink. It returns false once
// the spinner is finished and can be dropped.
func (s *Spinner) Update(elapsed int64, sink SpinnerSink) bool {
	if elapsed > s.end {
		return false
	}
	if elapsed < s.start {
		return true
	}
	for s.due(elapsed) {
		s.fire(sink)
	}
	return true
}

// CatchUp consumes bursts due by elapsed without emitting them. The ring
// still rotates so the pattern resumes in phase.
func (s *Spinner) CatchUp(elapsed int64) int {
	n := 0
	for s.due(elapsed) {
		s.fire(nil)
		n++
	}
	return n
}

func (s *Spinner) due(elapsed int64) bool {
	return s.nextBurst <= elapsed && s.nextBurst < s.end
}

func (s *Spinner) fire(sink SpinnerSink) {
	if sink != nil && s.pattern.Count > 0 {
		step := 2 * math.Pi / float64(s.pattern.Count)
		for i := 0; i < s.pattern.Count; i++ {
			a := s.angle + float64(i)*step
			target := dmath.Vec2{
				X: s.center.X + math.Cos(a)*s.pattern.Radius,
				Y: s.center.Y + math.Sin(a)*s.pattern.Radius,
			}
			sink(s.center, target)
		}
	}
	s.angle += s.pattern.Step
	s.nextBurst += s.pattern.IntervalMs
	s.bursts++
}

// Bursts returns how many bursts have fired or been skipped.
func (s *Spinner) Bursts() int { return s.bursts }

// Angle returns the current base angle in radians.
func (s *Spinner) Angle() float64 { return s.angle }

// Center returns the emitter position.
func (s *Spinner) Center() dmath.Vec2 { return s.center }

// Active reports whether elapsed falls inside the firing window.
func (s *Spinner) Active(elapsed int64) bool {
	return elapsed >= s.start && elapsed <= s.end
}
