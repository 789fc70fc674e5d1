package factory

import (
	"github.com/automoto/beatdodge/archetypes"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// CreatePlayer spawns the player at the bottom centre of bounds.
func CreatePlayer(ecs *ecs.ECS, bounds sim.Bounds) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	pos := dmath.Vec2{X: bounds.W / 2, Y: bounds.H - cfg.Player.SpawnBottomOffset}
	components.Player.SetValue(player, components.PlayerData{
		Player: sim.NewPlayer(pos, cfg.Player.Size, cfg.Player.HitboxRadius, cfg.Player.Lives),
	})

	return player
}

// CreatePlayback spawns the playback clock singleton.
func CreatePlayback(ecs *ecs.ECS, clock sim.Clock, hasMusic bool) *components.PlaybackData {
	entry := archetypes.Playback.Spawn(ecs)
	components.Playback.SetValue(entry, components.PlaybackData{
		Clock:    clock,
		HasMusic: hasMusic,
	})
	return components.Playback.Get(entry)
}
