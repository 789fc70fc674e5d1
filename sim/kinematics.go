package sim

import (
	"fmt"
	"strings"

	dmath "github.com/yohamta/donburi/features/math"
)

// VelocityModel selects how a spawn turns its aim into a velocity.
type VelocityModel int

const (
	// ModelConstant moves at a fixed speed along the normalized aim direction.
	ModelConstant VelocityModel = iota
	// ModelTimeScaled covers the origin-to-target distance in the approach time,
	// scaled by a factor, so farther spawns travel faster.
	ModelTimeScaled
)

func (m VelocityModel) String() string {
	switch m {
	case ModelConstant:
		return "constant"
	case ModelTimeScaled:
		return "time-scaled"
	}
	return fmt.Sprintf("VelocityModel(%d)", int(m))
}

// ParseVelocityModel accepts "constant" or "time-scaled".
func ParseVelocityModel(s string) (VelocityModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "constant":
		return ModelConstant, nil
	case "time-scaled", "timescaled", "time_scaled":
		return ModelTimeScaled, nil
	}
	return ModelConstant, fmt.Errorf("unknown velocity model %q", s)
}

// VelocitySpec describes a projectile's motion before it is resolved to a vector.
type VelocitySpec struct {
	Model VelocityModel

	// ModelConstant
	Direction dmath.Vec2
	Speed     float64 // px/s

	// ModelTimeScaled
	Origin     dmath.Vec2
	Target     dmath.Vec2
	ApproachMs float64
	Factor     float64
}

// Constant aims along dir at speed px/s.
func Constant(dir dmath.Vec2, speed float64) VelocitySpec {
	return VelocitySpec{Model: ModelConstant, Direction: dir, Speed: speed}
}

// Aimed builds a spec that heads from origin toward target using model.
// speed is px/s for ModelConstant and the scale factor for ModelTimeScaled.
func Aimed(model VelocityModel, origin, target dmath.Vec2, speed, approachMs float64) VelocitySpec {
	if model == ModelTimeScaled {
		return TimeScaled(origin, target, approachMs, speed)
	}
	return Constant(sub(target, origin), speed)
}

// TimeScaled covers origin→target in approachMs, multiplied by factor.
func TimeScaled(origin, target dmath.Vec2, approachMs, factor float64) VelocitySpec {
	return VelocitySpec{
		Model:      ModelTimeScaled,
		Origin:     origin,
		Target:     target,
		ApproachMs: approachMs,
		Factor:     factor,
	}
}

// Vector resolves the spec to a velocity in px/s. Degenerate aims (zero
// direction, non-positive approach) resolve to straight down so a projectile
// never sits still on the field.
func (v VelocitySpec) Vector() dmath.Vec2 {
	switch v.Model {
	case ModelTimeScaled:
		d := sub(v.Target, v.Origin)
		if v.ApproachMs <= 0 || length(d) == 0 {
			return dmath.Vec2{Y: v.Factor * 1000 / DefaultApproachFallbackMs}
		}
		// px/ms → px/s
		return scale(d, v.Factor*1000/v.ApproachMs)
	default:
		dir := normalize(v.Direction)
		if dir.X == 0 && dir.Y == 0 {
			dir = dmath.Vec2{Y: 1}
		}
		return scale(dir, v.Speed)
	}
}

// DefaultApproachFallbackMs is used by ModelTimeScaled when the approach time is unusable.
const DefaultApproachFallbackMs = 1500.0
