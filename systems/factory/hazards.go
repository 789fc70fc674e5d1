package factory

import (
	"log"

	"github.com/automoto/beatdodge/archetypes"
	"github.com/automoto/beatdodge/beatmap"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// CreateLasers spawns one laser entity per usable slider. Sliders whose
// control points collapse to a single point are skipped.
func CreateLasers(ecs *ecs.ECS, bm *beatmap.Beatmap, pf sim.Playfield) int {
	geo := sim.LaserGeometry{
		Screen:         pf.Screen,
		CollisionWidth: cfg.Laser.CollisionWidth,
		CurveSteps:     cfg.Laser.CurveSteps,
		CellSize:       cfg.Laser.CellSize,
	}

	created := 0
	for i, s := range bm.Sliders {
		points := make([]dmath.Vec2, len(s.ControlPoints))
		for k, p := range s.ControlPoints {
			points[k] = pf.Map(p.X, p.Y)
		}

		laser, err := sim.NewLaser(points, s.StartTime, bm.Timing.ApproachMs, s.DurationMs(bm.Timing), geo)
		if err != nil {
			log.Printf("Warning: skipping slider %d at %dms: %v", i, s.StartTime, err)
			continue
		}

		entry := archetypes.Laser.Spawn(ecs)
		components.Laser.SetValue(entry, components.LaserData{Laser: laser})
		created++
	}
	return created
}

// CreateSpinners spawns a centre emitter for every spinner in the map.
func CreateSpinners(ecs *ecs.ECS, bm *beatmap.Beatmap, bounds sim.Bounds) []*sim.Spinner {
	pattern := sim.SpinnerPattern{
		IntervalMs: cfg.Spinner.IntervalMs,
		Count:      cfg.Spinner.Count,
		Step:       cfg.Spinner.Step,
		Radius:     cfg.Spinner.Radius,
	}

	spinners := make([]*sim.Spinner, 0, len(bm.Spinners))
	for _, s := range bm.Spinners {
		sp := sim.NewSpinner(bounds.Center(), s.StartTime, s.EndTime, pattern)
		entry := archetypes.Spinner.Spawn(ecs)
		components.Spinner.SetValue(entry, components.SpinnerData{Spinner: sp})
		spinners = append(spinners, sp)
	}
	return spinners
}
