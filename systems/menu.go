package systems

import (
	"fmt"
	"log"
	"os"

	"github.com/automoto/beatdodge/beatmap"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// NewUpdateMenu creates an UpdateMenu system with scene transition capability
func NewUpdateMenu(sceneChanger SceneChanger, createPlayScene func(mapPath string) interface{}) ecs.System {
	return func(e *ecs.ECS) {
		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		// Allow back/escape to exit
		if GetAction(input, cfg.ActionMenuBack).JustPressed {
			os.Exit(0)
		}

		// Navigate menu with wrap-around
		numOptions := len(menu.Maps)
		if numOptions == 0 {
			return
		}

		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			sceneChanger.ChangeScene(createPlayScene(menu.Maps[menu.SelectedIndex].Path))
		}
	}
}

// DrawMenu renders the map select screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	// Draw background
	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Menu.BackgroundColor,
		false,
	)

	// Draw title
	titleFont := fonts.Title.Get()
	title := "BEATDODGE"
	titleWidth := len(title) * 20 // Approximate width for 32pt font
	titleX := int((width - float64(titleWidth)) / 2)
	text.Draw(screen, title, titleFont, titleX, int(cfg.Menu.TitleY), cfg.Menu.TitleColor)

	menuFont := fonts.Bold.Get()
	detailFont := fonts.Small.Get()

	if len(menu.Maps) == 0 {
		msg := fmt.Sprintf("No .osu files in %s", menu.Dir)
		x := int((width - float64(len(msg)*12)) / 2)
		text.Draw(screen, msg, menuFont, x, int(cfg.Menu.MenuStartY+cfg.Menu.MenuItemHeight), cfg.Menu.TextColorNormal)
	}

	first, last := visibleRange(menu.SelectedIndex, len(menu.Maps), cfg.Menu.MaxVisible)
	for i := first; i < last; i++ {
		entry := menu.Maps[i]
		y := cfg.Menu.MenuStartY + float64(i-first)*(cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap)

		// Determine color based on selection
		textColor := cfg.Menu.TextColorNormal
		if i == menu.SelectedIndex {
			textColor = cfg.Menu.TextColorSelected
		}

		textWidth := len(entry.Name) * 12
		x := int((width - float64(textWidth)) / 2)
		text.Draw(screen, entry.Name, menuFont, x, int(y)+int(cfg.Menu.MenuItemHeight), textColor)

		detail := mapDetail(entry)
		dx := int((width - float64(len(detail)*7)) / 2)
		text.Draw(screen, detail, detailFont, dx, int(y)+int(cfg.Menu.MenuItemHeight)+12, cfg.Menu.DetailColor)
	}

	// Draw navigation hint at bottom based on input method
	input := getOrCreateInput(e)
	hint := getMenuHint(input.LastInputMethod)
	hintFont := fonts.Small.Get()
	hintWidth := len(hint) * 7
	hintX := int((width - float64(hintWidth)) / 2)
	text.Draw(screen, hint, hintFont, hintX, int(height)-12, cfg.Menu.TextColorNormal)
}

// visibleRange returns the window of rows to draw so selected stays on screen.
func visibleRange(selected, total, maxVisible int) (first, last int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	first = selected - maxVisible/2
	if first < 0 {
		first = 0
	}
	if first+maxVisible > total {
		first = total - maxVisible
	}
	return first, first + maxVisible
}

func mapDetail(entry components.MapEntry) string {
	if entry.Best == "" {
		return fmt.Sprintf("%d objects", entry.Objects)
	}
	return fmt.Sprintf("%d objects   best %s", entry.Objects, entry.Best)
}

// getMenuHint returns the appropriate hint for menu navigation
func getMenuHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Play   Circle: Quit"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   A: Play   B: Quit"
	}
	return "Arrows: Navigate   Enter: Play   Esc: Quit"
}

// LoadMapEntries lists the beatmaps in dir with their best clears from history.
// Files that fail to parse are left out.
func LoadMapEntries(dir string, history []RunRecord) ([]components.MapEntry, error) {
	paths, err := beatmap.ListDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]components.MapEntry, 0, len(paths))
	for _, path := range paths {
		bm, err := beatmap.LoadFile(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			continue
		}
		entry := components.MapEntry{
			Path:    path,
			Name:    bm.DisplayName(),
			Objects: len(bm.HitPoints) + len(bm.Sliders) + len(bm.Spinners),
		}
		if best, ok := BestClear(history, path); ok {
			entry.Best = fmt.Sprintf("%s (%d hits)", formatElapsed(best.ElapsedMs), best.Hits)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			SelectedIndex: 0,
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
