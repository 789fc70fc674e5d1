package systems

import (
	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer applies this tick's movement input.
func UpdatePlayer(ecs *ecs.ECS) {
	s := GetSession(ecs)
	player := GetPlayer(ecs)
	if s == nil || player == nil {
		return
	}
	input := getOrCreateInput(ecs)
	dt := float64(GetOrCreatePlayback(ecs).Dt) / 1000

	player.Slow = GetAction(input, cfg.ActionSlow).Pressed
	speed := cfg.Player.Speed
	if player.Slow {
		speed = cfg.Player.SlowSpeed
	}
	dx, dy := MoveAxes(input)
	player.Move(dx, dy, speed, dt, s.Bounds)
}

// DrawPlayer draws the body, blinking while invulnerable, with the hitbox
// ring on top.
func DrawPlayer(ecs *ecs.ECS, screen *ebiten.Image) {
	player := GetPlayer(ecs)
	if player == nil {
		return
	}
	now := GetOrCreatePlayback(ecs).Elapsed

	visible := true
	if player.Invulnerable(now) && cfg.Player.BlinkPeriodMs > 0 {
		visible = (now/cfg.Player.BlinkPeriodMs)%2 == 0
	}

	if visible {
		half := player.Size / 2
		vector.FillRect(screen,
			float32(player.Pos.X-half), float32(player.Pos.Y-half),
			float32(player.Size), float32(player.Size),
			cfg.Player.Color, false)
	}

	vector.StrokeCircle(screen,
		float32(player.Pos.X), float32(player.Pos.Y),
		float32(player.HitboxRadius), 1.5,
		cfg.Player.HitboxColor, true)
	if player.Slow {
		vector.FillCircle(screen, float32(player.Pos.X), float32(player.Pos.Y), 2, cfg.Player.HitboxColor, true)
	}
}
