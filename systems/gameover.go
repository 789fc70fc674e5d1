package systems

import (
	"fmt"
	"os"

	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateGameOver creates an UpdateGameOver system with scene transition capability
func NewUpdateGameOver(sceneChanger SceneChanger, createPlayScene func() interface{}, createMenuScene func() interface{}) ecs.System {
	// Select is often still held from the last bomb when the run ends.
	armed := false
	return func(e *ecs.ECS) {
		gameOver := GetOrCreateGameOver(e)
		input := getOrCreateInput(e)

		if !armed {
			armed = !GetAction(input, cfg.ActionMenuSelect).Pressed
			return
		}

		// Navigate menu with wrap-around using modulo arithmetic
		numOptions := int(components.GameOverExit) + 1
		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			gameOver.SelectedOption = components.GameOverOption(
				(int(gameOver.SelectedOption) - 1 + numOptions) % numOptions,
			)
			PlaySFX(e, cfg.SoundMenuNavigate)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			gameOver.SelectedOption = components.GameOverOption(
				(int(gameOver.SelectedOption) + 1) % numOptions,
			)
			PlaySFX(e, cfg.SoundMenuNavigate)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			switch gameOver.SelectedOption {
			case components.GameOverRetry:
				sceneChanger.ChangeScene(createPlayScene())
			case components.GameOverMaps:
				sceneChanger.ChangeScene(createMenuScene())
			case components.GameOverExit:
				os.Exit(0)
			}
		}
	}
}

// DrawGameOver renders the results screen
func DrawGameOver(e *ecs.ECS, screen *ebiten.Image) {
	gameOver := GetOrCreateGameOver(e)
	result := gameOver.Result

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.GameOver.BackgroundColor,
		false,
	)

	title, titleColor := "GAME OVER", cfg.GameOver.TitleColor
	if result.Cleared {
		title, titleColor = "CLEARED", cfg.GameOver.ClearedColor
	}
	titleFont := fonts.Title.Get()
	titleWidth := len(title) * 20 // Approximate width for title font
	text.Draw(screen, title, titleFont, int((width-float64(titleWidth))/2), int(cfg.GameOver.TitleY), titleColor)

	statsFont := fonts.Regular.Get()
	for i, line := range resultLines(result) {
		x := int((width - float64(len(line)*8)) / 2)
		y := int(cfg.GameOver.StatsY) + i*int(cfg.HUD.LineHeight)
		text.Draw(screen, line, statsFont, x, y, cfg.HUD.TextColor)
	}

	menuFont := fonts.Bold.Get()
	for i, option := range cfg.GameOver.MenuOptions {
		y := cfg.GameOver.MenuStartY + float64(i)*(cfg.GameOver.MenuItemHeight+cfg.GameOver.MenuItemGap)

		textColor := cfg.GameOver.TextColorNormal
		if components.GameOverOption(i) == gameOver.SelectedOption {
			textColor = cfg.GameOver.TextColorSelected
		}

		textWidth := len(option) * 12
		x := int((width - float64(textWidth)) / 2)
		text.Draw(screen, option, menuFont, x, int(y)+int(cfg.GameOver.MenuItemHeight), textColor)
	}
}

func resultLines(r components.RunResult) []string {
	lines := []string{
		r.Title,
		fmt.Sprintf("time %s   lives %d   hits %d   bombs %d", formatElapsed(r.ElapsedMs), r.Lives, r.Hits, r.BombsUsed),
	}
	if r.HasBest {
		lines = append(lines, "best clear "+formatElapsed(r.BestMs))
	}
	return lines
}

// GetOrCreateGameOver returns the singleton GameOver component, creating if needed
func GetOrCreateGameOver(e *ecs.ECS) *components.GameOverData {
	if _, ok := components.GameOver.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.GameOver))
		components.GameOver.SetValue(ent, components.GameOverData{
			SelectedOption: components.GameOverRetry,
		})
	}

	ent, _ := components.GameOver.First(e.World)
	return components.GameOver.Get(ent)
}

// BuildRunResult summarizes the current session for the results screen.
func BuildRunResult(e *ecs.ECS) components.RunResult {
	var r components.RunResult
	s := GetSession(e)
	if s == nil {
		return r
	}
	r.Title = s.Beatmap.DisplayName()
	r.Cleared = s.Cleared
	r.ElapsedMs = GetOrCreatePlayback(e).Elapsed
	r.BombsUsed = s.Bomb.Settings().Charges - s.Bomb.Charges()
	if player := GetPlayer(e); player != nil {
		r.Lives = player.Lives
		r.Hits = player.Hits
	}
	return r
}
