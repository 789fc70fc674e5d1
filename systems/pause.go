package systems

import (
	"fmt"
	"math"
	"os"

	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePause handles pause toggle and menu navigation.
// This system should run AFTER UpdateInput but BEFORE other game systems.
func UpdatePause(ecs *ecs.ECS) {
	pause := GetOrCreatePause(ecs)
	input := getOrCreateInput(ecs)

	if s := GetSession(ecs); s != nil && (s.Over || s.Cleared) {
		return
	}

	// Toggle pause on ESC or P
	if GetAction(input, cfg.ActionPause).JustPressed {
		setPaused(ecs, pause, !pause.IsPaused)
		return
	}

	if !pause.IsPaused {
		return
	}

	// Navigate menu with wrap-around using modulo arithmetic
	numOptions := int(components.MenuExit) + 1
	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		pause.SelectedOption = components.PauseMenuOption(
			(int(pause.SelectedOption) - 1 + numOptions) % numOptions,
		)
		PlaySFX(ecs, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		pause.SelectedOption = components.PauseMenuOption(
			(int(pause.SelectedOption) + 1) % numOptions,
		)
		PlaySFX(ecs, cfg.SoundMenuNavigate)
	}

	// Left/right nudges the selected volume and saves it
	if step := volumeStep(input); step != 0 {
		switch pause.SelectedOption {
		case components.MenuMusicVolume:
			SetMusicVolume(GetMusicVolume() + step)
			_ = SaveSettings(CurrentSettings())
		case components.MenuSFXVolume:
			SetSFXVolume(GetSFXVolume() + step)
			_ = SaveSettings(CurrentSettings())
			PlaySFX(ecs, cfg.SoundMenuNavigate)
		}
	}

	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		PlaySFX(ecs, cfg.SoundMenuSelect)
		switch pause.SelectedOption {
		case components.MenuResume:
			setPaused(ecs, pause, false)
		case components.MenuRestart:
			pause.Restart = true
		case components.MenuExit:
			os.Exit(0)
		}
	}
}

func volumeStep(input *components.InputData) float64 {
	var step float64
	if GetAction(input, cfg.ActionMoveLeft).JustPressed {
		step -= cfg.Audio.VolumeStep
	}
	if GetAction(input, cfg.ActionMoveRight).JustPressed {
		step += cfg.Audio.VolumeStep
	}
	return step
}

// pauseLabel appends the live volume to the volume options.
func pauseLabel(option components.PauseMenuOption, label string) string {
	switch option {
	case components.MenuMusicVolume:
		return fmt.Sprintf("%s < %d%% >", label, volumePercent(GetMusicVolume()))
	case components.MenuSFXVolume:
		return fmt.Sprintf("%s < %d%% >", label, volumePercent(GetSFXVolume()))
	}
	return label
}

func volumePercent(v float64) int {
	return int(math.Round(v * 100))
}

func setPaused(ecs *ecs.ECS, pause *components.PauseData, paused bool) {
	pause.IsPaused = paused
	if paused {
		pause.SelectedOption = components.MenuResume
	}
	pauseClock(ecs, paused)
}

// DrawPause renders the pause overlay and menu.
func DrawPause(ecs *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(ecs)

	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Pause.OverlayColor,
		false,
	)

	menuOptions := cfg.Pause.MenuOptions
	totalMenuHeight := float64(len(menuOptions)) * (cfg.Pause.MenuItemHeight + cfg.Pause.MenuItemGap)
	startY := (height - totalMenuHeight) / 2

	fontFace := fonts.Bold.Get()

	for i, label := range menuOptions {
		option := pauseLabel(components.PauseMenuOption(i), label)
		y := startY + float64(i)*(cfg.Pause.MenuItemHeight+cfg.Pause.MenuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if components.PauseMenuOption(i) == pause.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}

		// Center text horizontally (approximate width calculation for 20pt font)
		textWidth := len(option) * 12
		x := int((width - float64(textWidth)) / 2)

		text.Draw(screen, option, fontFace, x, int(y)+int(cfg.Pause.MenuItemHeight), textColor)
	}

	input := getOrCreateInput(ecs)
	hint := getPauseHint(input.LastInputMethod)
	hintFont := fonts.Small.Get()
	hintWidth := len(hint) * 7
	hintX := int((width - float64(hintWidth)) / 2)
	text.Draw(screen, hint, hintFont, hintX, int(height)-12, cfg.Pause.TextColorNormal)
}

// getPauseHint returns the appropriate hint for pause menu
func getPauseHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate   Left/Right: Volume   Cross: Select   Options: Resume"
	case components.InputXbox:
		return "D-Pad: Navigate   Left/Right: Volume   A: Select   Start: Resume"
	}
	return "Arrows: Navigate   Left/Right: Volume   Enter: Select   Esc: Resume"
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused {
			return
		}
		system(e)
	}
}

// WithGameplayChecks wraps a system to skip execution when paused or after
// the run has ended.
func WithGameplayChecks(system ecs.System) ecs.System {
	return WithPauseCheck(WithSessionCheck(system))
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ent := ecs.World.Entry(ecs.World.Create(components.Pause))
		components.Pause.SetValue(ent, components.PauseData{
			IsPaused:       false,
			SelectedOption: components.MenuResume,
		})
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
