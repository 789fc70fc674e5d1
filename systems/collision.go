package systems

import (
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCollisions tests the player against the projectiles in the 3x3
// cells around it and against every dangerous laser. A projectile that hits
// is removed; a laser stays. Either costs a life and starts the
// invulnerability window.
func UpdateCollisions(ecs *ecs.ECS) {
	s := GetSession(ecs)
	player := GetPlayer(ecs)
	if s == nil || player == nil {
		return
	}
	now := GetOrCreatePlayback(ecs).Elapsed
	if player.Invulnerable(now) {
		return
	}

	var hit sim.Handle
	found := false
	cx, cy := s.Store.CellOf(player.Pos)
	s.Store.QueryNeighborhood(cx, cy, func(h sim.Handle, p sim.Projectile) bool {
		if sim.Collides(p, player.Pos, player.HitboxRadius) {
			hit, found = h, true
			return false
		}
		return true
	})
	if found {
		s.Store.Remove(hit)
	} else {
		components.Laser.Each(ecs.World, func(e *donburi.Entry) {
			if !found && components.Laser.Get(e).Hits(now, player.Pos, player.HitboxRadius) {
				found = true
			}
		})
	}
	if !found {
		return
	}

	if player.Damage(now, cfg.Player.InvulnerabilityMs) {
		player.Hits++
		QueueCue(ecs, cfg.SoundHit, 1)
	}
	if !player.Alive() {
		s.Over = true
		FadeOutMusic(ecs)
	}
}
