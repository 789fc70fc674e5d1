package systems

import (
	"image/color"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBombExpiry ends an expired bomb and catches the scheduler and
// spinners up to now. Runs before anything spawns.
func UpdateBombExpiry(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil || s.Bomb == nil {
		return
	}
	if ended, skipped := s.Bomb.Update(GetOrCreatePlayback(ecs).Elapsed); ended {
		s.Skipped += skipped
	}
}

// UpdateBombTrigger activates a bomb on the bomb action. It runs last so
// whatever fell due this tick has already spawned and gets cleared.
func UpdateBombTrigger(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil || s.Bomb == nil || s.Bomb.Active() {
		return
	}

	input := getOrCreateInput(ecs)
	if !GetAction(input, cfg.ActionBomb).JustPressed {
		return
	}
	center := s.Bounds.Center()
	if player := GetPlayer(ecs); player != nil {
		center = player.Pos
	}
	if s.Bomb.Activate(center, GetOrCreatePlayback(ecs).Elapsed) {
		QueueCue(ecs, cfg.SoundBomb, 1)
	}
}

// DrawBombFlash overlays the full-screen flash while a bomb is active.
func DrawBombFlash(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	if s == nil || s.Bomb == nil || !s.Bomb.Active() {
		return
	}
	alpha := s.Bomb.FlashAlpha(GetOrCreatePlayback(ecs).Elapsed)
	if alpha <= 0 {
		return
	}
	c := cfg.Bomb.FlashColor
	flash := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
	bounds := screen.Bounds()
	vector.FillRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), flash, false)
}
