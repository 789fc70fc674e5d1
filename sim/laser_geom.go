package sim

import (
	"math"

	"github.com/solarlune/resolv"
	dmath "github.com/yohamta/donburi/features/math"
)

// PathOpKind is a drawing command in a laser render path.
type PathOpKind int

const (
	OpMoveTo PathOpKind = iota
	OpLineTo
	OpQuadTo
)

// PathOp is one command of a render path. For OpQuadTo, Ctrl is the control
// point and To the end point; the other kinds only use To.
type PathOp struct {
	Kind PathOpKind
	Ctrl dmath.Vec2
	To   dmath.Vec2
}

const (
	laserSegmentTag = "laser"
	laserProbeTag   = "probe"
)

type segment struct {
	a, b dmath.Vec2
}

// LaserShape is a slider's collision path stroked to a fixed width. Segments
// are registered in a resolv space for the broad phase; hits are then
// confirmed by exact point-to-segment distance.
type LaserShape struct {
	polyline  []dmath.Vec2
	segments  []segment
	halfWidth float64
	space     *resolv.Space
	probe     *resolv.Object
}

func newLaserShape(polyline []dmath.Vec2, width float64, bounds Bounds, cellSize int) *LaserShape {
	if cellSize <= 0 {
		cellSize = 16
	}
	w := int(math.Ceil(bounds.W))
	h := int(math.Ceil(bounds.H))
	s := &LaserShape{
		polyline:  polyline,
		halfWidth: width / 2,
		space:     resolv.NewSpace(w, h, cellSize, cellSize),
	}

	for i := 0; i+1 < len(polyline); i++ {
		seg := segment{a: polyline[i], b: polyline[i+1]}
		idx := len(s.segments)
		s.segments = append(s.segments, seg)

		minX := math.Min(seg.a.X, seg.b.X) - s.halfWidth
		minY := math.Min(seg.a.Y, seg.b.Y) - s.halfWidth
		maxX := math.Max(seg.a.X, seg.b.X) + s.halfWidth
		maxY := math.Max(seg.a.Y, seg.b.Y) + s.halfWidth
		obj := resolv.NewObject(minX, minY, maxX-minX, maxY-minY, laserSegmentTag)
		obj.Data = idx
		s.space.Add(obj)
	}

	s.probe = resolv.NewObject(0, 0, 1, 1, laserProbeTag)
	s.space.Add(s.probe)
	return s
}

// Hits reports whether a circle of radius r at center touches the stroked path.
func (s *LaserShape) Hits(center dmath.Vec2, r float64) bool {
	s.probe.X = center.X - r
	s.probe.Y = center.Y - r
	s.probe.W = 2 * r
	s.probe.H = 2 * r
	s.probe.Update()

	check := s.probe.Check(0, 0, laserSegmentTag)
	if check == nil {
		return false
	}
	reach := s.halfWidth + r
	for _, obj := range check.Objects {
		idx, ok := obj.Data.(int)
		if !ok {
			continue
		}
		seg := s.segments[idx]
		if pointSegmentDistance(center, seg.a, seg.b) <= reach {
			return true
		}
	}
	return false
}

// Polyline returns the flattened collision path. The slice is owned by the shape.
func (s *LaserShape) Polyline() []dmath.Vec2 { return s.polyline }

// Width returns the full stroke width.
func (s *LaserShape) Width() float64 { return s.halfWidth * 2 }

func pointSegmentDistance(p, a, b dmath.Vec2) float64 {
	ab := sub(b, a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, add(a, scale(ab, t)))
}

// firstDirection is the unit vector from points[0] to the first point that
// differs from it.
func firstDirection(points []dmath.Vec2) (dmath.Vec2, bool) {
	for i := 1; i < len(points); i++ {
		if d := sub(points[i], points[0]); length(d) > 0 {
			return normalize(d), true
		}
	}
	return dmath.Vec2{}, false
}

// lastDirection is the unit vector arriving at the final point from the last
// point that differs from it.
func lastDirection(points []dmath.Vec2) (dmath.Vec2, bool) {
	last := points[len(points)-1]
	for i := len(points) - 2; i >= 0; i-- {
		if d := sub(last, points[i]); length(d) > 0 {
			return normalize(d), true
		}
	}
	return dmath.Vec2{}, false
}

// buildRenderPath extends the path ext pixels beyond both ends and smooths
// interior vertices with quadratics through successive midpoints.
func buildRenderPath(points []dmath.Vec2, ext float64) []PathOp {
	startDir, _ := firstDirection(points)
	endDir, _ := lastDirection(points)
	n := len(points)

	ops := make([]PathOp, 0, n+2)
	ops = append(ops, PathOp{Kind: OpMoveTo, To: sub(points[0], scale(startDir, ext))})
	for i := 0; i < n-1; i++ {
		ops = append(ops, PathOp{Kind: OpQuadTo, Ctrl: points[i], To: mid(points[i], points[i+1])})
	}
	last := points[n-1]
	ops = append(ops,
		PathOp{Kind: OpLineTo, To: last},
		PathOp{Kind: OpLineTo, To: add(last, scale(endDir, ext))},
	)
	return ops
}

// buildCollisionPolyline applies the same midpoint smoothing without the
// extensions and flattens each quadratic into steps segments.
func buildCollisionPolyline(points []dmath.Vec2, steps int) []dmath.Vec2 {
	if steps < 1 {
		steps = 1
	}
	out := make([]dmath.Vec2, 0, len(points)*steps+1)
	push := func(p dmath.Vec2) {
		if n := len(out); n > 0 && out[n-1] == p {
			return
		}
		out = append(out, p)
	}

	cur := points[0]
	push(cur)
	for i := 0; i < len(points)-1; i++ {
		ctrl := points[i]
		end := mid(points[i], points[i+1])
		for k := 1; k <= steps; k++ {
			push(quadPoint(cur, ctrl, end, float64(k)/float64(steps)))
		}
		cur = end
	}
	push(points[len(points)-1])
	return out
}

func quadPoint(p0, c, p1 dmath.Vec2, t float64) dmath.Vec2 {
	u := 1 - t
	return dmath.Vec2{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}
