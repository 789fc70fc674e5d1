package scenes

import (
	"image/color"
	"path/filepath"
	"sync"

	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameOverScene displays the results of a finished run
type GameOverScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	mapPath      string
	result       components.RunResult
	once         sync.Once
}

// NewGameOverScene creates a new results scene for the run on mapPath
func NewGameOverScene(sc SceneChanger, mapPath string, result components.RunResult) *GameOverScene {
	return &GameOverScene{sceneChanger: sc, mapPath: mapPath, result: result}
}

func (gs *GameOverScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()
}

func (gs *GameOverScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

func (gs *GameOverScene) configure() {
	gs.ecs = ecs.NewECS(donburi.NewWorld())

	// Scene factories
	createPlayScene := func() interface{} {
		return NewPlayScene(gs.sceneChanger, gs.mapPath)
	}
	createMenuScene := func() interface{} {
		return NewMenuScene(gs.sceneChanger, filepath.Dir(gs.mapPath))
	}

	// Audio system
	gs.ecs.AddSystem(systems.UpdateAudio)

	// Minimal systems for game over
	gs.ecs.AddSystem(systems.UpdateInput)
	gs.ecs.AddSystem(systems.NewUpdateGameOver(gs.sceneChanger, createPlayScene, createMenuScene))

	// Renderer
	gs.ecs.AddRenderer(cfg.Default, systems.DrawGameOver)

	gameOver := systems.GetOrCreateGameOver(gs.ecs)
	gameOver.Result = gs.result
}
