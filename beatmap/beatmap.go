// Package beatmap reads osu!-format (.osu) beatmaps into the timing model and
// hit-object lists the simulation schedules from.
package beatmap

import (
	"log"
	"math"
)

// Defaults applied when a beatmap omits or mangles a timing field.
const (
	DefaultApproachMs       = 1500.0
	DefaultSliderMultiplier = 1.4
	DefaultBeatLengthMs     = 500.0

	// SourceWidth and SourceHeight are the osu! playfield dimensions every
	// hit-object coordinate is expressed in.
	SourceWidth  = 512.0
	SourceHeight = 384.0
)

// Timing holds the per-map constants that turn beat-relative values into milliseconds.
type Timing struct {
	ApproachMs       float64
	SliderMultiplier float64
	BeatLengthMs     float64
}

// DefaultTiming returns the fallback timing model.
func DefaultTiming() Timing {
	return Timing{
		ApproachMs:       DefaultApproachMs,
		SliderMultiplier: DefaultSliderMultiplier,
		BeatLengthMs:     DefaultBeatLengthMs,
	}
}

// ApproachFromAR converts an osu! approach rate into an approach time.
func ApproachFromAR(ar float64) float64 {
	return 1800 - 120*ar
}

// SliderVelocity is the slider speed in osu! pixels per beat.
func (t Timing) SliderVelocity() float64 {
	return t.SliderMultiplier * 100
}

// SinglePassMs is how long one pass over a slider of pixelLength takes.
func (t Timing) SinglePassMs(pixelLength float64) float64 {
	v := t.SliderVelocity()
	if v <= 0 {
		return 0
	}
	return pixelLength / v * t.BeatLengthMs
}

// Sanitize replaces unusable values with their defaults and logs what it changed.
func (t *Timing) Sanitize() {
	if !usable(t.ApproachMs) {
		log.Printf("Warning: invalid approach time %v, using %v", t.ApproachMs, DefaultApproachMs)
		t.ApproachMs = DefaultApproachMs
	}
	if !usable(t.SliderMultiplier) {
		log.Printf("Warning: invalid slider multiplier %v, using %v", t.SliderMultiplier, DefaultSliderMultiplier)
		t.SliderMultiplier = DefaultSliderMultiplier
	}
	if !usable(t.BeatLengthMs) {
		log.Printf("Warning: invalid beat length %v, using %v", t.BeatLengthMs, DefaultBeatLengthMs)
		t.BeatLengthMs = DefaultBeatLengthMs
	}
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Point is a position in osu! pixels.
type Point struct {
	X float64
	Y float64
}

// HitPoint is a single circle: a projectile that must reach the player at Time.
type HitPoint struct {
	X    float64
	Y    float64
	Time int64
}

// Slider is a path the player must avoid while it is lit.
type Slider struct {
	StartTime     int64
	Repeats       int
	PixelLength   float64
	CurveType     string
	ControlPoints []Point // first point is the slider head
}

// DurationMs is the full lit time of the slider including repeats.
func (s Slider) DurationMs(t Timing) float64 {
	repeats := s.Repeats
	if repeats < 1 {
		repeats = 1
	}
	return t.SinglePassMs(s.PixelLength) * float64(repeats)
}

// Spinner is a window during which the centre emitter fires radial bursts.
type Spinner struct {
	X         float64
	Y         float64
	StartTime int64
	EndTime   int64
}

// Beatmap is a parsed difficulty.
type Beatmap struct {
	Title         string
	Artist        string
	Version       string
	AudioFilename string
	Timing        Timing
	HitPoints     []HitPoint
	Sliders       []Slider
	Spinners      []Spinner
}

// LastEventMs returns the latest timestamp anything in the map happens at.
func (b *Beatmap) LastEventMs() int64 {
	var last int64
	for _, h := range b.HitPoints {
		if h.Time > last {
			last = h.Time
		}
	}
	for _, s := range b.Sliders {
		if end := s.StartTime + int64(s.DurationMs(b.Timing)); end > last {
			last = end
		}
	}
	for _, s := range b.Spinners {
		if s.EndTime > last {
			last = s.EndTime
		}
	}
	return last
}

// DisplayName is "Artist - Title [Version]" with empty parts dropped.
func (b *Beatmap) DisplayName() string {
	name := b.Title
	if b.Artist != "" {
		name = b.Artist + " - " + name
	}
	if b.Version != "" {
		name += " [" + b.Version + "]"
	}
	if name == "" {
		return "Untitled"
	}
	return name
}
