package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

func TestStoreSpawnReusesFreedSlots(t *testing.T) {
	s := NewStore(Bounds{W: 100, H: 100}, 20, 1)

	a := s.Spawn(OriginNormal, dmath.Vec2{X: 10, Y: 10}, Constant(dmath.Vec2{X: 1}, 10), 3)
	b := s.Spawn(OriginSpinner, dmath.Vec2{X: 20, Y: 20}, Constant(dmath.Vec2{Y: 1}, 10), 3)
	assert.Equal(t, 2, s.Len(), "pool grows past its initial capacity")

	require.True(t, s.Remove(a))
	assert.False(t, s.Remove(a), "second remove of the same handle is a no-op")

	c := s.Spawn(OriginNormal, dmath.Vec2{X: 50, Y: 50}, Constant(dmath.Vec2{X: -1}, 20), 4)
	assert.Equal(t, a.Index(), c.Index(), "freed slot is reused")

	_, ok := s.Get(a)
	assert.False(t, ok, "stale handle misses the reused slot")

	p, ok := s.Get(c)
	require.True(t, ok)
	assert.Equal(t, Projectile{
		Pos:    dmath.Vec2{X: 50, Y: 50},
		Vel:    dmath.Vec2{X: -20},
		Radius: 4,
		Origin: OriginNormal,
	}, p, "reused slot carries nothing from its previous occupant")

	pb, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, OriginSpinner, pb.Origin)
}

func TestStoreTickCullsOnlyBeyondRadius(t *testing.T) {
	bounds := Bounds{W: 100, H: 100}
	tests := []struct {
		name    string
		pos     dmath.Vec2
		dir     dmath.Vec2
		removed bool
	}{
		{"exactly on the margin stays", dmath.Vec2{X: 50, Y: -5}, dmath.Vec2{Y: -1}, false},
		{"just past the margin goes", dmath.Vec2{X: 50, Y: -5.5}, dmath.Vec2{Y: -1}, true},
		{"past right edge goes", dmath.Vec2{X: 106, Y: 50}, dmath.Vec2{X: 1}, true},
		{"inside stays", dmath.Vec2{X: 50, Y: 50}, dmath.Vec2{X: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(bounds, 20, 4)
			h := s.Spawn(OriginNormal, tt.pos, Constant(tt.dir, 0.0001), 5)
			removed := s.Tick(0)
			if tt.removed {
				assert.Equal(t, []Handle{h}, removed)
				assert.Equal(t, 0, s.Len())
			} else {
				assert.Empty(t, removed)
				assert.Equal(t, 1, s.Len())
			}
		})
	}
}

func TestStoreTickIntegratesVelocity(t *testing.T) {
	s := NewStore(Bounds{W: 1000, H: 1000}, 50, 4)
	h := s.Spawn(OriginNormal, dmath.Vec2{X: 100, Y: 100}, Constant(dmath.Vec2{X: 3, Y: 4}, 250), 5)

	s.Tick(0.5)
	p, ok := s.Get(h)
	require.True(t, ok)
	assert.InDelta(t, 100+150*0.5, p.Pos.X, 1e-9)
	assert.InDelta(t, 100+200*0.5, p.Pos.Y, 1e-9)
}

func TestStoreQueryNeighborhood(t *testing.T) {
	s := NewStore(Bounds{W: 500, H: 500}, 50, 8)
	near := s.Spawn(OriginNormal, dmath.Vec2{X: 240, Y: 240}, Constant(dmath.Vec2{X: 1}, 1), 5)
	s.Spawn(OriginNormal, dmath.Vec2{X: 450, Y: 450}, Constant(dmath.Vec2{X: 1}, 1), 5)

	cx, cy := s.CellOf(dmath.Vec2{X: 260, Y: 260})
	var got []Handle
	s.QueryNeighborhood(cx, cy, func(h Handle, p Projectile) bool {
		got = append(got, h)
		return true
	})
	assert.Equal(t, []Handle{near}, got)
}

func TestStoreRemoveWithinClearsRadius(t *testing.T) {
	bounds := Bounds{W: 800, H: 600}
	s := NewStore(bounds, 40, 64)
	center := dmath.Vec2{X: 400, Y: 300}
	radius := bounds.W / 2

	for x := 0.0; x <= 800; x += 50 {
		for y := 0.0; y <= 600; y += 50 {
			s.Spawn(OriginNormal, dmath.Vec2{X: x, Y: y}, Constant(dmath.Vec2{Y: 1}, 1), 6)
		}
	}
	before := s.Len()
	removed := s.RemoveWithin(center, radius)
	assert.Positive(t, removed)
	assert.Equal(t, before-removed, s.Len())

	s.Each(func(_ Handle, p Projectile) {
		assert.Greater(t, Distance(p.Pos, center), radius)
	})
}

func TestStoreReset(t *testing.T) {
	s := NewStore(Bounds{W: 100, H: 100}, 20, 4)
	h := s.Spawn(OriginNormal, dmath.Vec2{X: 10, Y: 10}, Constant(dmath.Vec2{X: 1}, 1), 2)
	s.Spawn(OriginNormal, dmath.Vec2{X: 20, Y: 10}, Constant(dmath.Vec2{X: 1}, 1), 2)
	s.Reset()

	assert.Equal(t, 0, s.Len())
	_, ok := s.Get(h)
	assert.False(t, ok)
	assert.Empty(t, s.Grid().Cell(0, 0))
}

func TestVelocityModels(t *testing.T) {
	origin := dmath.Vec2{X: 0, Y: 0}
	target := dmath.Vec2{X: 300, Y: 400}

	c := Aimed(ModelConstant, origin, target, 100, 1000).Vector()
	assert.InDelta(t, 60, c.X, 1e-9)
	assert.InDelta(t, 80, c.Y, 1e-9)

	// 500px in 1000ms at factor 1 is 500px/s along the aim
	ts := Aimed(ModelTimeScaled, origin, target, 1, 1000).Vector()
	assert.InDelta(t, 300, ts.X, 1e-9)
	assert.InDelta(t, 400, ts.Y, 1e-9)

	still := Constant(dmath.Vec2{}, 90).Vector()
	assert.Equal(t, dmath.Vec2{Y: 90}, still, "zero aim falls straight down")

	m, err := ParseVelocityModel("Time-Scaled")
	require.NoError(t, err)
	assert.Equal(t, ModelTimeScaled, m)
	_, err = ParseVelocityModel("warp")
	assert.Error(t, err)
}

func TestCollides(t *testing.T) {
	p := Projectile{Pos: dmath.Vec2{X: 0, Y: 0}, Radius: 6}
	assert.True(t, Collides(p, dmath.Vec2{X: 16, Y: 0}, 10), "touching counts")
	assert.False(t, Collides(p, dmath.Vec2{X: 16.01, Y: 0}, 10))
}
