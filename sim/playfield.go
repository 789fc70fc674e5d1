// Package sim holds the time-driven simulation core: the spawn schedule,
// the pooled projectile store and its spatial grid, the slider laser and
// spinner hazards, the bomb controller and the player body.
//
// Nothing in here touches ebiten, so the whole package runs headless in tests.
// Time is always elapsed milliseconds since map start (int64) and motion is
// expressed in pixels per second.
package sim

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Bounds is the visible playfield in screen pixels, anchored at the origin.
type Bounds struct {
	W float64
	H float64
}

// Contains reports whether p lies inside the bounds widened by margin on every side.
func (b Bounds) Contains(p dmath.Vec2, margin float64) bool {
	return p.X >= -margin && p.X <= b.W+margin && p.Y >= -margin && p.Y <= b.H+margin
}

// Center returns the middle of the playfield.
func (b Bounds) Center() dmath.Vec2 {
	return dmath.Vec2{X: b.W / 2, Y: b.H / 2}
}

// Playfield maps beatmap coordinates (osu! pixels, 512x384) onto the screen.
type Playfield struct {
	Screen    Bounds
	SourceW   float64
	SourceH   float64
	scaleX    float64
	scaleY    float64
	hasScales bool
}

// NewPlayfield returns a mapping that stretches a sourceW x sourceH space over screen.
func NewPlayfield(screen Bounds, sourceW, sourceH float64) Playfield {
	pf := Playfield{Screen: screen, SourceW: sourceW, SourceH: sourceH}
	if sourceW > 0 && sourceH > 0 {
		pf.scaleX = screen.W / sourceW
		pf.scaleY = screen.H / sourceH
		pf.hasScales = true
	}
	return pf
}

// Map converts a beatmap point into screen pixels.
func (p Playfield) Map(x, y float64) dmath.Vec2 {
	if !p.hasScales {
		return dmath.Vec2{X: x, Y: y}
	}
	return dmath.Vec2{X: x * p.scaleX, Y: y * p.scaleY}
}

func add(a, b dmath.Vec2) dmath.Vec2 { return dmath.Vec2{X: a.X + b.X, Y: a.Y + b.Y} }

func sub(a, b dmath.Vec2) dmath.Vec2 { return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y} }

func scale(a dmath.Vec2, s float64) dmath.Vec2 { return dmath.Vec2{X: a.X * s, Y: a.Y * s} }

func length(a dmath.Vec2) float64 { return math.Hypot(a.X, a.Y) }

func dist(a, b dmath.Vec2) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func mid(a, b dmath.Vec2) dmath.Vec2 { return dmath.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }

// normalize returns the unit vector of a, or the zero vector when a has no length.
func normalize(a dmath.Vec2) dmath.Vec2 {
	l := length(a)
	if l == 0 {
		return dmath.Vec2{}
	}
	return dmath.Vec2{X: a.X / l, Y: a.Y / l}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b dmath.Vec2) float64 {
	return dist(a, b)
}
