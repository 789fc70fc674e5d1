package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// MenuScene lists the beatmaps in a directory
type MenuScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	dir          string
	once         sync.Once
}

// NewMenuScene creates a map select scene for the .osu files in dir
func NewMenuScene(sc SceneChanger, dir string) *MenuScene {
	return &MenuScene{sceneChanger: sc, dir: dir}
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)
}

func (ms *MenuScene) configure() {
	ms.ecs = ecs.NewECS(donburi.NewWorld())

	createPlayScene := func(mapPath string) interface{} {
		return NewPlayScene(ms.sceneChanger, mapPath)
	}

	// Audio system (runs first to initialize audio context)
	ms.ecs.AddSystem(systems.UpdateAudio)

	// Minimal systems for menu
	ms.ecs.AddSystem(systems.UpdateInput)
	ms.ecs.AddSystem(systems.NewUpdateMenu(ms.sceneChanger, createPlayScene))

	ms.ecs.AddRenderer(cfg.Default, systems.DrawMenu)

	// Leaving a run returns here; stop whatever was still fading out
	systems.StopMusic(ms.ecs)

	menu := systems.GetOrCreateMenu(ms.ecs)
	menu.Dir = ms.dir
	maps, err := systems.LoadMapEntries(ms.dir, systems.LoadRunHistory())
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	menu.Maps = maps
}
