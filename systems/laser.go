package systems

import (
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLasers fires the warning cue when a laser turns dangerous and
// disposes lasers that have faded out.
func UpdateLasers(ecs *ecs.ECS) {
	elapsed := GetOrCreatePlayback(ecs).Elapsed

	var expired []*donburi.Entry
	components.Laser.Each(ecs.World, func(e *donburi.Entry) {
		l := components.Laser.Get(e)
		if l.EnterDanger(elapsed) {
			QueueCue(ecs, cfg.SoundWarning, 1)
		}
		if l.Expired(elapsed) {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		ecs.World.Remove(e.Entity())
	}
}

// DrawLasers strokes every visible laser's render path at its current opacity.
func DrawLasers(ecs *ecs.ECS, screen *ebiten.Image) {
	elapsed := GetOrCreatePlayback(ecs).Elapsed

	components.Laser.Each(ecs.World, func(e *donburi.Entry) {
		l := components.Laser.Get(e)
		if !l.Visible(elapsed) {
			return
		}
		opacity := l.Opacity(elapsed)
		if opacity <= 0 {
			return
		}

		clr := cfg.Laser.Color
		if l.Phase(elapsed) == sim.PhaseDanger {
			clr = cfg.Laser.DangerColor
		}

		var cs ebiten.ColorScale
		cs.ScaleWithColor(clr)
		cs.ScaleAlpha(float32(opacity))

		vector.StrokePath(screen, laserPath(l.RenderPath()), &vector.StrokeOptions{
			Width:    float32(cfg.Laser.RenderWidth),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		}, &vector.DrawPathOptions{
			AntiAlias:  true,
			ColorScale: cs,
		})
	})
}

func laserPath(ops []sim.PathOp) *vector.Path {
	var path vector.Path
	for _, op := range ops {
		switch op.Kind {
		case sim.OpMoveTo:
			path.MoveTo(float32(op.To.X), float32(op.To.Y))
		case sim.OpLineTo:
			path.LineTo(float32(op.To.X), float32(op.To.Y))
		case sim.OpQuadTo:
			path.QuadTo(float32(op.Ctrl.X), float32(op.Ctrl.Y), float32(op.To.X), float32(op.To.Y))
		}
	}
	return &path
}
