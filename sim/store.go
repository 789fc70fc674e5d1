package sim

import (
	dmath "github.com/yohamta/donburi/features/math"
)

// Origin tags what emitted a projectile. Renderers colour by it.
type Origin int

const (
	OriginNormal Origin = iota
	OriginSpinner
)

// Projectile is the value view of one live projectile.
type Projectile struct {
	Pos    dmath.Vec2
	Vel    dmath.Vec2 // px/s
	Radius float64
	Origin Origin
}

// Handle addresses a projectile slot. A handle goes stale once its slot is
// freed; the generation counter makes stale handles miss instead of aliasing
// whatever reused the slot.
type Handle struct {
	index int32
	gen   uint32
}

// Index returns the slot index, which is also the grid id.
func (h Handle) Index() int { return int(h.index) }

type slot struct {
	p    Projectile
	gen  uint32
	live bool
}

// Store is a pooled arena of projectiles indexed by a Grid. Freed slots go
// on a free list and are fully overwritten on reuse; when the free list is
// empty the arena grows.
type Store struct {
	bounds  Bounds
	grid    *Grid
	slots   []slot
	free    []int32
	live    int
	removed []Handle
}

// NewStore creates a store for the given playfield. cellSize should be at
// least projectile radius + player hitbox radius so a 3x3 neighbourhood scan
// sees every possible contact.
func NewStore(bounds Bounds, cellSize float64, capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		bounds: bounds,
		grid:   NewGrid(bounds.W, bounds.H, cellSize),
		slots:  make([]slot, 0, capacity),
		free:   make([]int32, 0, capacity),
	}
}

// Grid exposes the spatial index for queries and debug drawing.
func (s *Store) Grid() *Grid { return s.grid }

// Bounds returns the playfield the store culls against.
func (s *Store) Bounds() Bounds { return s.bounds }

// Len returns the number of live projectiles.
func (s *Store) Len() int { return s.live }

// Spawn places a projectile at pos moving per vel and returns its handle.
func (s *Store) Spawn(origin Origin, pos dmath.Vec2, vel VelocitySpec, radius float64) Handle {
	var idx int32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = int32(len(s.slots) - 1)
	}

	sl := &s.slots[idx]
	sl.p = Projectile{
		Pos:    pos,
		Vel:    vel.Vector(),
		Radius: radius,
		Origin: origin,
	}
	sl.live = true
	s.live++
	s.grid.Insert(idx, pos)
	return Handle{index: idx, gen: sl.gen}
}

func (s *Store) valid(h Handle) bool {
	return h.index >= 0 && int(h.index) < len(s.slots) &&
		s.slots[h.index].live && s.slots[h.index].gen == h.gen
}

// Get returns a copy of the projectile behind h.
func (s *Store) Get(h Handle) (Projectile, bool) {
	if !s.valid(h) {
		return Projectile{}, false
	}
	return s.slots[h.index].p, true
}

// Remove frees the projectile behind h. Stale handles are ignored.
func (s *Store) Remove(h Handle) bool {
	if !s.valid(h) {
		return false
	}
	s.release(h.index)
	return true
}

func (s *Store) release(idx int32) {
	sl := &s.slots[idx]
	sl.live = false
	sl.gen++
	sl.p = Projectile{}
	s.grid.Remove(idx)
	s.free = append(s.free, idx)
	s.live--
}

// Tick advances every projectile by dt seconds, culls those whose centre has
// left the playfield by more than their radius, and re-buckets the rest.
// The returned slice is reused by the next call.
func (s *Store) Tick(dt float64) []Handle {
	s.removed = s.removed[:0]
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live {
			continue
		}
		sl.p.Pos.X += sl.p.Vel.X * dt
		sl.p.Pos.Y += sl.p.Vel.Y * dt

		if !s.bounds.Contains(sl.p.Pos, sl.p.Radius) {
			s.removed = append(s.removed, Handle{index: int32(i), gen: sl.gen})
			s.release(int32(i))
			continue
		}
		s.grid.Move(int32(i), sl.p.Pos)
	}
	return s.removed
}

// CellOf returns the grid cell containing p.
func (s *Store) CellOf(p dmath.Vec2) (cx, cy int) {
	return s.grid.CellOf(p)
}

// QueryNeighborhood visits the projectiles in the 3x3 block around (cx, cy).
// fn receives a copy; returning false stops the walk.
func (s *Store) QueryNeighborhood(cx, cy int, fn func(Handle, Projectile) bool) {
	s.grid.Query(cx, cy, func(id int32) bool {
		sl := &s.slots[id]
		return fn(Handle{index: id, gen: sl.gen}, sl.p)
	})
}

// RemoveWithin frees every projectile whose centre is within r of center and
// returns how many were removed.
func (s *Store) RemoveWithin(center dmath.Vec2, r float64) int {
	n := 0
	for i := range s.slots {
		if s.slots[i].live && dist(s.slots[i].p.Pos, center) <= r {
			s.release(int32(i))
			n++
		}
	}
	return n
}

// Each visits every live projectile in slot order.
func (s *Store) Each(fn func(Handle, Projectile)) {
	for i := range s.slots {
		if sl := &s.slots[i]; sl.live {
			fn(Handle{index: int32(i), gen: sl.gen}, sl.p)
		}
	}
}

// Reset frees every projectile but keeps the arena for reuse.
func (s *Store) Reset() {
	for i := range s.slots {
		if s.slots[i].live {
			s.release(int32(i))
		}
	}
}

// Collides reports whether p overlaps a circle of radius r at center.
func Collides(p Projectile, center dmath.Vec2, r float64) bool {
	return dist(p.Pos, center) <= p.Radius+r
}
