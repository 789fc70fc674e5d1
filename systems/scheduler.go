package systems

import (
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi/ecs"
)

// UpdateScheduler releases every spawn event that has fallen due, aimed at
// where the player is at the moment of release.
func UpdateScheduler(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	elapsed := GetOrCreatePlayback(ecs).Elapsed

	target := s.Bounds.Center()
	if player := GetPlayer(ecs); player != nil {
		target = player.Pos
	}

	speed := cfg.Projectile.Speed
	if s.Model == sim.ModelTimeScaled {
		speed = cfg.Projectile.TimeScaledFactor
	}
	approach := s.Beatmap.Timing.ApproachMs

	s.Scheduler.Advance(elapsed, func(ev sim.SpawnEvent) {
		vel := sim.Aimed(s.Model, ev.Position, target, speed, approach)
		s.Store.Spawn(sim.OriginNormal, ev.Position, vel, cfg.Projectile.Radius)
	})
}
