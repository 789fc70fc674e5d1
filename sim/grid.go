package sim

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// location is where a slot id currently sits inside the grid.
type location struct {
	cell int32 // -1 when not inserted
	pos  int32 // index inside cells[cell]
}

// Grid is a uniform bucket grid over the playfield. Each cell lists the slot
// ids whose position falls inside it. Positions outside the playfield clamp
// to the nearest edge cell, so lookups never go out of range.
//
// Membership is tracked per id so removal and re-bucketing are O(1)
// swap-removes.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int32
	where    []location
}

// NewGrid creates a grid covering w x h pixels with square cells of cellSize.
func NewGrid(w, h, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(w / cellSize))
	rows := int(math.Ceil(h / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int32, cols*rows),
	}
}

// CellSize returns the side length of one cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Dimensions returns the number of columns and rows.
func (g *Grid) Dimensions() (cols, rows int) { return g.cols, g.rows }

// CellOf returns the clamped column and row containing p.
func (g *Grid) CellOf(p dmath.Vec2) (cx, cy int) {
	cx = int(math.Floor(p.X / g.cellSize))
	cy = int(math.Floor(p.Y / g.cellSize))
	if cx < 0 || math.IsNaN(p.X) {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 || math.IsNaN(p.Y) {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

func (g *Grid) index(cx, cy int) int32 {
	return int32(cy*g.cols + cx)
}

func (g *Grid) ensure(id int32) {
	for int(id) >= len(g.where) {
		g.where = append(g.where, location{cell: -1})
	}
}

// Insert adds id to the cell containing p. An id already present is moved.
func (g *Grid) Insert(id int32, p dmath.Vec2) {
	g.ensure(id)
	if g.where[id].cell >= 0 {
		g.Move(id, p)
		return
	}
	cx, cy := g.CellOf(p)
	g.push(id, g.index(cx, cy))
}

func (g *Grid) push(id, cell int32) {
	g.where[id] = location{cell: cell, pos: int32(len(g.cells[cell]))}
	g.cells[cell] = append(g.cells[cell], id)
}

// Move re-buckets id for its new position. It reports whether the cell changed.
func (g *Grid) Move(id int32, p dmath.Vec2) bool {
	if int(id) >= len(g.where) || g.where[id].cell < 0 {
		g.Insert(id, p)
		return true
	}
	cx, cy := g.CellOf(p)
	cell := g.index(cx, cy)
	if cell == g.where[id].cell {
		return false
	}
	g.Remove(id)
	g.push(id, cell)
	return true
}

// Remove drops id from its cell. Unknown ids are ignored.
func (g *Grid) Remove(id int32) {
	if int(id) >= len(g.where) {
		return
	}
	loc := g.where[id]
	if loc.cell < 0 {
		return
	}
	list := g.cells[loc.cell]
	last := int32(len(list) - 1)
	if loc.pos != last {
		moved := list[last]
		list[loc.pos] = moved
		g.where[moved].pos = loc.pos
	}
	g.cells[loc.cell] = list[:last]
	g.where[id] = location{cell: -1}
}

// Locate returns the cell currently listing id.
func (g *Grid) Locate(id int32) (cx, cy int, ok bool) {
	if int(id) >= len(g.where) || g.where[id].cell < 0 {
		return 0, 0, false
	}
	c := int(g.where[id].cell)
	return c % g.cols, c / g.cols, true
}

// Cell returns the ids listed in one cell. The slice is owned by the grid.
func (g *Grid) Cell(cx, cy int) []int32 {
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return nil
	}
	return g.cells[g.index(cx, cy)]
}

// Query visits every id in the 3x3 block of cells centred on (cx, cy).
// Returning false from fn stops the walk.
func (g *Grid) Query(cx, cy int, fn func(id int32) bool) {
	for y := cy - 1; y <= cy+1; y++ {
		if y < 0 || y >= g.rows {
			continue
		}
		for x := cx - 1; x <= cx+1; x++ {
			if x < 0 || x >= g.cols {
				continue
			}
			for _, id := range g.cells[g.index(x, y)] {
				if !fn(id) {
					return
				}
			}
		}
	}
}
