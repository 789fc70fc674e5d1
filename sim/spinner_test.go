package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

func testPattern() SpinnerPattern {
	return SpinnerPattern{IntervalMs: 100, Count: 11, Step: 0.2, Radius: 100}
}

// 11 projectiles per burst every 100ms across a 0–500ms window is five
// bursts, each rotated by the step.
func TestSpinnerFiftyFiveProjectiles(t *testing.T) {
	center := dmath.Vec2{X: 400, Y: 300}
	s := NewSpinner(center, 0, 500, testPattern())

	var targets []dmath.Vec2
	sink := func(from, toward dmath.Vec2) {
		assert.Equal(t, center, from)
		targets = append(targets, toward)
	}

	for ms := int64(0); ms <= 500; ms += 16 {
		require.True(t, s.Update(ms, sink))
	}
	require.True(t, s.Update(500, sink))
	assert.False(t, s.Update(501, sink))

	require.Len(t, targets, 55)
	assert.Equal(t, 5, s.Bursts())
	assert.InDelta(t, 1.0, s.Angle(), 1e-9)

	for burst := 0; burst < 5; burst++ {
		base := float64(burst) * 0.2
		for i := 0; i < 11; i++ {
			a := base + float64(i)*2*math.Pi/11
			got := targets[burst*11+i]
			assert.InDelta(t, center.X+math.Cos(a)*100, got.X, 1e-9)
			assert.InDelta(t, center.Y+math.Sin(a)*100, got.Y, 1e-9)
		}
	}
}

func TestSpinnerIdleBeforeStart(t *testing.T) {
	s := NewSpinner(dmath.Vec2{}, 1000, 2000, testPattern())
	fired := 0
	assert.True(t, s.Update(999, func(_, _ dmath.Vec2) { fired++ }))
	assert.Zero(t, fired)
	assert.True(t, s.Update(1000, func(_, _ dmath.Vec2) { fired++ }))
	assert.Equal(t, 11, fired)
}

func TestSpinnerLargeStepFiresEveryDueBurst(t *testing.T) {
	s := NewSpinner(dmath.Vec2{}, 0, 1000, testPattern())
	fired := 0
	s.Update(350, func(_, _ dmath.Vec2) { fired++ })
	assert.Equal(t, 4*11, fired, "bursts at 0, 100, 200 and 300")
}

func TestSpinnerCatchUpRotatesWithoutEmitting(t *testing.T) {
	s := NewSpinner(dmath.Vec2{}, 0, 1000, testPattern())
	s.Update(0, func(_, _ dmath.Vec2) {})

	assert.Equal(t, 3, s.CatchUp(320))
	assert.Equal(t, 4, s.Bursts())
	assert.InDelta(t, 0.8, s.Angle(), 1e-9)

	fired := 0
	s.Update(320, func(_, _ dmath.Vec2) { fired++ })
	assert.Zero(t, fired, "nothing left due after catching up")
	s.Update(400, func(_, _ dmath.Vec2) { fired++ })
	assert.Equal(t, 11, fired)
}
