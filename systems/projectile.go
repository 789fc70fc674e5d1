package systems

import (
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdateProjectiles moves every projectile by this tick's dt and culls the
// ones that left the playfield.
func UpdateProjectiles(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	dt := float64(GetOrCreatePlayback(ecs).Dt) / 1000
	s.Store.Tick(dt)
}

func DrawProjectiles(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	s.Store.Each(func(_ sim.Handle, p sim.Projectile) {
		clr := cfg.Projectile.NormalColor
		if p.Origin == sim.OriginSpinner {
			clr = cfg.Projectile.SpinnerColor
		}
		vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), clr, true)
	})
}
