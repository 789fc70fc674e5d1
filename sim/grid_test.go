package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

func TestGridCellOfClamps(t *testing.T) {
	g := NewGrid(800, 600, 50)
	cols, rows := g.Dimensions()
	require.Equal(t, 16, cols)
	require.Equal(t, 12, rows)

	tests := []struct {
		name   string
		p      dmath.Vec2
		cx, cy int
	}{
		{"origin", dmath.Vec2{X: 0, Y: 0}, 0, 0},
		{"interior", dmath.Vec2{X: 125, Y: 260}, 2, 5},
		{"far edge", dmath.Vec2{X: 800, Y: 600}, 15, 11},
		{"above left", dmath.Vec2{X: -300, Y: -12}, 0, 0},
		{"below right", dmath.Vec2{X: 5000, Y: 9000}, 15, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := g.CellOf(tt.p)
			assert.Equal(t, tt.cx, cx)
			assert.Equal(t, tt.cy, cy)
		})
	}
}

func TestGridSwapRemoveKeepsIndexConsistent(t *testing.T) {
	g := NewGrid(100, 100, 50)
	p := dmath.Vec2{X: 10, Y: 10}
	for id := int32(0); id < 4; id++ {
		g.Insert(id, p)
	}
	require.Len(t, g.Cell(0, 0), 4)

	g.Remove(1)
	assert.ElementsMatch(t, []int32{0, 2, 3}, g.Cell(0, 0))

	// the id swapped into slot 1 must still be removable
	g.Remove(3)
	g.Remove(0)
	assert.Equal(t, []int32{2}, g.Cell(0, 0))

	_, _, ok := g.Locate(3)
	assert.False(t, ok)
	cx, cy, ok := g.Locate(2)
	assert.True(t, ok)
	assert.Equal(t, 0, cx)
	assert.Equal(t, 0, cy)
}

func TestGridMoveReportsCellChange(t *testing.T) {
	g := NewGrid(100, 100, 50)
	g.Insert(7, dmath.Vec2{X: 10, Y: 10})

	assert.False(t, g.Move(7, dmath.Vec2{X: 40, Y: 40}))
	assert.True(t, g.Move(7, dmath.Vec2{X: 60, Y: 40}))
	assert.Empty(t, g.Cell(0, 0))
	assert.Equal(t, []int32{7}, g.Cell(1, 0))
}

func TestGridQueryVisitsOnlyNeighborhood(t *testing.T) {
	g := NewGrid(500, 500, 50)
	g.Insert(1, dmath.Vec2{X: 225, Y: 225}) // (4,4) centre
	g.Insert(2, dmath.Vec2{X: 175, Y: 175}) // (3,3) diagonal neighbour
	g.Insert(3, dmath.Vec2{X: 325, Y: 225}) // (6,4) two cells away
	g.Insert(4, dmath.Vec2{X: 10, Y: 10})   // (0,0) far away

	var seen []int32
	g.Query(4, 4, func(id int32) bool {
		seen = append(seen, id)
		return true
	})
	assert.ElementsMatch(t, []int32{1, 2}, seen)

	// corner query must not index out of range
	seen = seen[:0]
	g.Query(0, 0, func(id int32) bool {
		seen = append(seen, id)
		return true
	})
	assert.Equal(t, []int32{4}, seen)
}

// After every tick, the cell computed from each projectile's position is
// exactly the cell listing it.
func TestStoreGridConsistencyUnderRandomMotion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{W: 800, H: 600}
	s := NewStore(bounds, 40, 16)

	for tick := 0; tick < 200; tick++ {
		for i := 0; i < 5; i++ {
			pos := dmath.Vec2{X: rng.Float64() * bounds.W, Y: rng.Float64() * bounds.H}
			dir := dmath.Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
			s.Spawn(OriginNormal, pos, Constant(dir, 50+rng.Float64()*400), 6)
		}
		s.Tick(1.0 / 60)

		live := 0
		s.Each(func(h Handle, p Projectile) {
			live++
			wantX, wantY := s.CellOf(p.Pos)
			gotX, gotY, ok := s.Grid().Locate(int32(h.Index()))
			require.True(t, ok)
			require.Equal(t, wantX, gotX)
			require.Equal(t, wantY, gotY)
		})
		require.Equal(t, s.Len(), live)

		total := 0
		cols, rows := s.Grid().Dimensions()
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				total += len(s.Grid().Cell(x, y))
			}
		}
		require.Equal(t, live, total, "every live projectile is listed exactly once")
	}
}
