package systems

import (
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// UpdateSpinners fires every due burst and disposes finished spinners.
func UpdateSpinners(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	elapsed := GetOrCreatePlayback(ecs).Elapsed

	sink := func(from, toward dmath.Vec2) {
		dir := dmath.Vec2{X: toward.X - from.X, Y: toward.Y - from.Y}
		s.Store.Spawn(sim.OriginSpinner, from, sim.Constant(dir, cfg.Projectile.SpinnerSpeed), cfg.Projectile.Radius)
	}

	var finished []*donburi.Entry
	components.Spinner.Each(ecs.World, func(e *donburi.Entry) {
		sp := components.Spinner.Get(e)
		if !sp.Update(elapsed, sink) {
			sp.Done = true
			finished = append(finished, e)
		}
	})

	for _, e := range finished {
		ecs.World.Remove(e.Entity())
	}
}
