package systems

import (
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/yohamta/donburi/ecs"
)

// GetSession returns the loaded map's session, or nil before a map is loaded.
func GetSession(ecs *ecs.ECS) *components.SessionData {
	entry, ok := components.Session.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Session.Get(entry)
}

// GetPlayer returns the player component, or nil if none exists.
func GetPlayer(ecs *ecs.ECS) *components.PlayerData {
	entry, ok := components.Player.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Player.Get(entry)
}

// WithSessionCheck wraps a system to skip execution once the run has ended.
func WithSessionCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		s := GetSession(e)
		if s == nil || s.Over || s.Cleared {
			return
		}
		system(e)
	}
}

// WithBombCheck wraps a system to skip execution while a bomb is active.
// Spawning and collision stop for the whole bomb window.
func WithBombCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if s := GetSession(e); s != nil && s.Bomb != nil && s.Bomb.Active() {
			return
		}
		system(e)
	}
}

// UpdateSessionProgress marks the map cleared once the schedule is spent,
// every hazard has finished and the playfield is empty.
func UpdateSessionProgress(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil || s.Over || s.Cleared {
		return
	}
	elapsed := GetOrCreatePlayback(ecs).Elapsed
	if elapsed < s.LastEventMs+cfg.Loop.EndGraceMs {
		return
	}
	if !s.Scheduler.Done() || s.Store.Len() > 0 {
		return
	}
	if _, ok := components.Laser.First(ecs.World); ok {
		return
	}
	if _, ok := components.Spinner.First(ecs.World); ok {
		return
	}
	s.Cleared = true
	FadeOutMusic(ecs)
}
