package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/systems"
	"github.com/automoto/beatdodge/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger swaps the running scene
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// PlayScene runs one beatmap from its first spawn to game over or clear.
type PlayScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	mapPath      string
	once         sync.Once
}

// NewPlayScene creates a scene that plays the beatmap at mapPath
func NewPlayScene(sc SceneChanger, mapPath string) *PlayScene {
	return &PlayScene{sceneChanger: sc, mapPath: mapPath}
}

func (ps *PlayScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()

	if pause := systems.GetOrCreatePause(ps.ecs); pause.Restart {
		ps.sceneChanger.ChangeScene(NewPlayScene(ps.sceneChanger, ps.mapPath))
		return
	}

	s := systems.GetSession(ps.ecs)
	if s == nil || !(s.Over || s.Cleared) {
		return
	}
	result := systems.BuildRunResult(ps.ecs)
	history := systems.RecordRun(result, ps.mapPath)
	if best, ok := systems.BestClear(history, ps.mapPath); ok {
		result.BestMs, result.HasBest = best.ElapsedMs, true
	}
	ps.sceneChanger.ChangeScene(NewGameOverScene(ps.sceneChanger, ps.mapPath, result))
}

func (ps *PlayScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlayScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	// Audio system (runs first, even when paused for menu sounds)
	ecs.AddSystem(systems.UpdateAudio)

	// Systems that always run
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateDebug)
	ecs.AddSystem(systems.UpdatePause)

	// Game systems wrapped with pause and session checks
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdatePlayback))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdatePlayer))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateBombExpiry))
	ecs.AddSystem(systems.WithGameplayChecks(systems.WithBombCheck(systems.UpdateScheduler)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.WithBombCheck(systems.UpdateSpinners)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateLasers))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateProjectiles))
	ecs.AddSystem(systems.WithGameplayChecks(systems.WithBombCheck(systems.UpdateCollisions)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateBombTrigger))
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateSessionProgress))

	// Add renderers
	ecs.AddRenderer(cfg.Default, systems.DrawBackground)
	ecs.AddRenderer(cfg.Default, systems.DrawLasers)
	ecs.AddRenderer(cfg.Default, systems.DrawProjectiles)
	ecs.AddRenderer(cfg.Default, systems.DrawPlayer)
	ecs.AddRenderer(cfg.Default, systems.DrawBombFlash)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawPause)

	ps.ecs = ecs

	session, err := factory.LoadBeatmap(ps.ecs, ps.mapPath)
	if err != nil {
		log.Fatalf("Failed to load beatmap: %v", err)
	}
	factory.CreatePlayer(ps.ecs, session.Bounds)

	clock, hasMusic := systems.StartClock(ps.mapPath, session.Beatmap.AudioFilename)
	factory.CreatePlayback(ps.ecs, clock, hasMusic)

	log.Printf("Playing %s (%d spawns, %d sliders, %d spinners)",
		session.Beatmap.DisplayName(),
		session.Scheduler.Len(),
		len(session.Beatmap.Sliders),
		len(session.Beatmap.Spinners),
	)
}
