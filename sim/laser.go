package sim

import (
	"errors"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
)

// Phase is where a laser is in its lifetime.
type Phase int

const (
	PhaseDormant Phase = iota
	PhaseWarning
	PhaseDanger
	PhaseFadeOut
	PhaseExpired
)

func (p Phase) String() string {
	switch p {
	case PhaseDormant:
		return "dormant"
	case PhaseWarning:
		return "warning"
	case PhaseDanger:
		return "danger"
	case PhaseFadeOut:
		return "fade-out"
	case PhaseExpired:
		return "expired"
	}
	return "unknown"
}

// ErrDegenerateLaser is returned for paths without two distinct points.
var ErrDegenerateLaser = errors.New("laser needs at least two distinct control points")

// LaserGeometry fixes the screen-dependent parts of a laser.
type LaserGeometry struct {
	Screen         Bounds
	CollisionWidth float64
	CurveSteps     int
	CellSize       int
}

// Laser is a slider hazard. It fades in over the approach time, is lethal
// from the slider start through its end, then fades out in a quarter of the
// fade-in time. Geometry is built once at construction and never changes.
type Laser struct {
	appear  int64
	full    int64
	end     int64
	fadeEnd int64

	render []PathOp
	shape  *LaserShape

	fadeIn  *gween.Tween
	fadeOut *gween.Tween
	warned  bool
}

// NewLaser builds a laser for a slider starting at startTime that stays lit
// for durationMs after an approach of approachMs.
func NewLaser(points []dmath.Vec2, startTime int64, approachMs, durationMs float64, geo LaserGeometry) (*Laser, error) {
	if len(points) < 2 {
		return nil, ErrDegenerateLaser
	}
	if _, ok := firstDirection(points); !ok {
		return nil, ErrDegenerateLaser
	}
	if !(approachMs >= 0) || math.IsInf(approachMs, 0) {
		approachMs = 0
	}
	if !(durationMs >= 0) || math.IsInf(durationMs, 0) {
		durationMs = 0
	}

	pts := make([]dmath.Vec2, len(points))
	copy(pts, points)

	l := &Laser{
		appear: startTime - int64(approachMs),
		full:   startTime,
		end:    startTime + int64(durationMs),
	}
	l.fadeEnd = l.end + (l.full-l.appear)/4

	ext := 1.5 * math.Max(geo.Screen.W, geo.Screen.H)
	l.render = buildRenderPath(pts, ext)
	l.shape = newLaserShape(buildCollisionPolyline(pts, geo.CurveSteps), geo.CollisionWidth, geo.Screen, geo.CellSize)

	l.fadeIn = gween.New(0, 1, float32(l.full-l.appear), ease.Linear)
	l.fadeOut = gween.New(1, 0, float32(l.fadeEnd-l.end), ease.Linear)
	return l, nil
}

// Times returns the appear, full-opacity, end and fade-out-end timestamps.
func (l *Laser) Times() (appear, full, end, fadeEnd int64) {
	return l.appear, l.full, l.end, l.fadeEnd
}

// Phase returns the phase at elapsed time t.
func (l *Laser) Phase(t int64) Phase {
	switch {
	case t < l.appear:
		return PhaseDormant
	case t < l.full:
		return PhaseWarning
	case t <= l.end:
		return PhaseDanger
	case t <= l.fadeEnd:
		return PhaseFadeOut
	}
	return PhaseExpired
}

// Opacity is 0 until appear, ramps to 1 at full, holds through end and ramps
// back to 0 at fadeEnd.
func (l *Laser) Opacity(t int64) float64 {
	switch l.Phase(t) {
	case PhaseWarning:
		v, _ := l.fadeIn.Set(float32(t - l.appear))
		return clamp01(float64(v))
	case PhaseDanger:
		return 1
	case PhaseFadeOut:
		v, _ := l.fadeOut.Set(float32(t - l.end))
		return clamp01(float64(v))
	}
	return 0
}

// Visible reports whether the laser should be drawn at t.
func (l *Laser) Visible(t int64) bool {
	p := l.Phase(t)
	return p == PhaseWarning || p == PhaseDanger || p == PhaseFadeOut
}

// CollisionShape returns the lethal shape while the laser is in danger, nil otherwise.
func (l *Laser) CollisionShape(t int64) *LaserShape {
	if l.Phase(t) != PhaseDanger {
		return nil
	}
	return l.shape
}

// Hits reports whether a circle at center with radius r is touching the laser at t.
func (l *Laser) Hits(t int64, center dmath.Vec2, r float64) bool {
	shape := l.CollisionShape(t)
	return shape != nil && shape.Hits(center, r)
}

// EnterDanger returns true exactly once: the first time it is called while
// the laser is in danger.
func (l *Laser) EnterDanger(t int64) bool {
	if l.warned || l.Phase(t) != PhaseDanger {
		return false
	}
	l.warned = true
	return true
}

// Expired reports whether the laser can be disposed of.
func (l *Laser) Expired(t int64) bool {
	return l.Phase(t) == PhaseExpired
}

// RenderPath returns the extended, smoothed drawing path. The slice is owned by the laser.
func (l *Laser) RenderPath() []PathOp { return l.render }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
