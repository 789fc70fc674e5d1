package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

// After damage at t, overlaps strictly inside (t, t+inv) cost nothing and
// the first overlap at or after t+inv costs a life.
func TestPlayerInvulnerabilityWindow(t *testing.T) {
	p := NewPlayer(dmath.Vec2{X: 400, Y: 500}, 20, 10, 5)
	const inv = 3000

	require.True(t, p.Damage(1000, inv))
	assert.Equal(t, 4, p.Lives)

	for _, now := range []int64{1001, 2000, 3999} {
		assert.True(t, p.Invulnerable(now))
		assert.False(t, p.Damage(now, inv), "hit at %d is ignored", now)
	}
	assert.Equal(t, 4, p.Lives)

	assert.False(t, p.Invulnerable(4000))
	assert.True(t, p.Damage(4000, inv))
	assert.Equal(t, 3, p.Lives)
	assert.Equal(t, int64(7000), p.InvulnerableUntil)
}

func TestPlayerLivesStopAtZero(t *testing.T) {
	p := NewPlayer(dmath.Vec2{}, 20, 10, 1)
	require.True(t, p.Damage(0, 0))
	assert.False(t, p.Alive())
	assert.False(t, p.Damage(10, 0))
	assert.Equal(t, 0, p.Lives)

	p.Reset(dmath.Vec2{X: 5, Y: 5})
	assert.Equal(t, 1, p.Lives)
	assert.True(t, p.Alive())
}

func TestPlayerMove(t *testing.T) {
	bounds := Bounds{W: 800, H: 600}
	tests := []struct {
		name   string
		start  dmath.Vec2
		dx, dy int
		want   dmath.Vec2
	}{
		{"right", dmath.Vec2{X: 400, Y: 300}, 1, 0, dmath.Vec2{X: 700, Y: 300}},
		{"diagonal is normalized", dmath.Vec2{X: 400, Y: 300}, 1, 1, dmath.Vec2{X: 400 + 300/math.Sqrt2, Y: 300 + 300/math.Sqrt2}},
		{"clamped at left edge", dmath.Vec2{X: 50, Y: 300}, -1, 0, dmath.Vec2{X: 10, Y: 300}},
		{"clamped at bottom edge", dmath.Vec2{X: 400, Y: 580}, 0, 1, dmath.Vec2{X: 400, Y: 590}},
		{"still", dmath.Vec2{X: 400, Y: 300}, 0, 0, dmath.Vec2{X: 400, Y: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.start, 20, 10, 3)
			p.Move(tt.dx, tt.dy, 300, 1, bounds)
			assert.InDelta(t, tt.want.X, p.Pos.X, 1e-9)
			assert.InDelta(t, tt.want.Y, p.Pos.Y, 1e-9)
		})
	}
}

func TestWallClockPauses(t *testing.T) {
	now := time.Unix(100, 0)
	c := newWallClockAt(func() time.Time { return now })

	now = now.Add(1500 * time.Millisecond)
	assert.Equal(t, int64(1500), c.ElapsedMillis())

	c.Pause()
	now = now.Add(10 * time.Second)
	assert.Equal(t, int64(1500), c.ElapsedMillis())
	assert.True(t, c.IsPaused())

	c.Resume()
	now = now.Add(250 * time.Millisecond)
	assert.Equal(t, int64(1750), c.ElapsedMillis())
	assert.False(t, c.IsPaused())
}

func TestMonotonicClamp(t *testing.T) {
	var m Monotonic
	steps := []struct {
		sample, elapsed, delta int64
	}{
		{0, 0, 0},
		{16, 16, 16},
		{12, 16, 0},
		{40, 40, 24},
		{40, 40, 0},
	}
	for _, s := range steps {
		e, d := m.Observe(s.sample)
		assert.Equal(t, s.elapsed, e)
		assert.Equal(t, s.delta, d)
	}
	assert.Equal(t, int64(40), m.Last())
}
