package systems

import (
	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// DrawBackground clears the playfield.
func DrawBackground(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.C.Background)
}
