package systems

import (
	"fmt"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawHUD renders the map title, lives, bomb charges and elapsed time.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	player := GetPlayer(ecs)
	if s == nil || player == nil {
		return
	}
	pb := GetOrCreatePlayback(ecs)
	face := fonts.Regular.Get()
	margin := cfg.HUD.Margin
	line := cfg.HUD.LineHeight

	text.Draw(screen, s.Beatmap.DisplayName(), face, int(margin), int(margin+line), cfg.HUD.TextColor)

	// Lives as filled squares, lost lives greyed out
	y := margin + line + 6
	for i := 0; i < player.MaxLives; i++ {
		clr := cfg.HUD.LifeColor
		if i >= player.Lives {
			clr = cfg.HUD.LostColor
		}
		x := margin + float64(i)*(cfg.HUD.LifeSize+cfg.HUD.LifeGap)
		vector.FillRect(screen, float32(x), float32(y), float32(cfg.HUD.LifeSize), float32(cfg.HUD.LifeSize), clr, false)
	}

	bombs := fmt.Sprintf("BOMBS %d", s.Bomb.Charges())
	text.Draw(screen, bombs, face, int(margin), int(y+cfg.HUD.LifeSize+line), cfg.HUD.AccentColor)

	clock := formatElapsed(pb.Elapsed)
	width := screen.Bounds().Dx()
	text.Draw(screen, clock, face, width-int(margin)-len(clock)*8, int(margin+line), cfg.HUD.TextColor)
}

// formatElapsed renders milliseconds as m:ss.
func formatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	sec := ms / 1000
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
