package systems

import (
	"fmt"

	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateDebug returns the singleton Debug component, creating if needed.
func GetOrCreateDebug(ecs *ecs.ECS) *components.DebugData {
	entry, ok := components.Debug.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Debug))
		components.Debug.SetValue(entry, components.DebugData{Enabled: cfg.Debug.Enabled})
	}
	return components.Debug.Get(entry)
}

// UpdateDebug toggles the overlay.
func UpdateDebug(ecs *ecs.ECS) {
	if GetAction(getOrCreateInput(ecs), cfg.ActionDebug).JustPressed {
		d := GetOrCreateDebug(ecs)
		d.Enabled = !d.Enabled
	}
}

// DrawDebug shows grid occupancy, dangerous laser collision paths and
// loop counters.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !GetOrCreateDebug(ecs).Enabled {
		return
	}
	s := GetSession(ecs)
	if s == nil {
		return
	}
	pb := GetOrCreatePlayback(ecs)

	grid := s.Store.Grid()
	size := grid.CellSize()
	cols, rows := grid.Dimensions()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			if len(grid.Cell(cx, cy)) == 0 {
				continue
			}
			vector.FillRect(screen, float32(float64(cx)*size), float32(float64(cy)*size), float32(size), float32(size), cfg.Debug.BusyColor, false)
		}
	}
	for cx := 0; cx <= cols; cx++ {
		x := float32(float64(cx) * size)
		vector.StrokeLine(screen, x, 0, x, float32(float64(rows)*size), 1, cfg.Debug.GridColor, false)
	}
	for cy := 0; cy <= rows; cy++ {
		y := float32(float64(cy) * size)
		vector.StrokeLine(screen, 0, y, float32(float64(cols)*size), y, 1, cfg.Debug.GridColor, false)
	}

	lasers := 0
	components.Laser.Each(ecs.World, func(e *donburi.Entry) {
		lasers++
		shape := components.Laser.Get(e).CollisionShape(pb.Elapsed)
		if shape == nil {
			return
		}
		pts := shape.Polyline()
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(screen,
				float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y),
				float32(shape.Width()), cfg.Debug.ShapeColor, true)
		}
	})

	info := fmt.Sprintf("TPS %.0f  t=%dms dt=%dms  projectiles %d  events %d/%d  lasers %d  skipped %d",
		ebiten.ActualTPS(), pb.Elapsed, pb.Dt, s.Store.Len(),
		s.Scheduler.Cursor(), s.Scheduler.Len(), lasers, s.Skipped)
	height := screen.Bounds().Dy()
	text.Draw(screen, info, fonts.Small.Get(), int(cfg.HUD.Margin), height-int(cfg.HUD.Margin), cfg.HUD.TextColor)
}
