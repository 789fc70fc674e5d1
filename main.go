package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/fonts"
	"github.com/automoto/beatdodge/scenes"
	"github.com/automoto/beatdodge/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(mapPath, dir string) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if mapPath != "" {
		g.scene = scenes.NewPlayScene(g, mapPath)
	} else {
		g.scene = scenes.NewMenuScene(g, dir)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	mapPath := flag.String("map", "", "Play this .osu beatmap directly, skipping map select")
	dir := flag.String("dir", ".", "Directory the map select screen lists .osu files from")
	configPath := flag.String("config", "", "Optional TOML file overriding tuning values")
	flag.Parse()

	var fileConfig *config.FileConfig
	if *configPath != "" {
		fc, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		fc.Apply()
		fileConfig = fc
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	ebiten.SetTPS(config.Loop.TPS)
	ebiten.SetVsyncEnabled(config.Loop.VSync)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	} else if err == nil {
		// First run: write the defaults so there is a file to edit
		_ = systems.SaveSettings(systems.CurrentSettings())
	}
	if fileConfig != nil {
		systems.ApplyVolumeOverrides(fileConfig.Volumes())
	}

	// Synthesize cues up front so the first warning does not stall a tick
	systems.PreloadCues()

	if err := ebiten.RunGame(NewGame(*mapPath, *dir)); err != nil {
		log.Fatal(err)
	}
}
