package factory

import (
	"log"

	"github.com/automoto/beatdodge/archetypes"
	"github.com/automoto/beatdodge/beatmap"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi/ecs"
)

// LoadBeatmap reads the .osu file at path and builds its session.
func LoadBeatmap(ecs *ecs.ECS, path string) (*components.SessionData, error) {
	bm, err := beatmap.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return CreateSession(ecs, bm, path), nil
}

// CreateSession builds the schedule, projectile store, hazards and bomb for
// bm sized to the current screen.
func CreateSession(ecs *ecs.ECS, bm *beatmap.Beatmap, path string) *components.SessionData {
	bounds := sim.Bounds{W: float64(cfg.C.Width), H: float64(cfg.C.Height)}
	pf := sim.NewPlayfield(bounds, cfg.Playfield.SourceWidth, cfg.Playfield.SourceHeight)

	model, err := sim.ParseVelocityModel(cfg.Projectile.Model)
	if err != nil {
		log.Printf("Warning: %v, using %s", err, sim.ModelConstant)
		model = sim.ModelConstant
	}

	store := sim.NewStore(bounds, cfg.CellSize(), cfg.Projectile.InitialCapacity)
	scheduler := sim.NewScheduler(sim.BuildSchedule(bm, pf, cfg.Projectile.Radius))
	bomb := sim.NewBomb(store, sim.BombSettings{
		Charges:    cfg.Bomb.Charges,
		DurationMs: cfg.Bomb.DurationMs,
		Radius:     bounds.W / 2,
		MaxAlpha:   cfg.Bomb.MaxAlpha,
	}, scheduler)

	CreateLasers(ecs, bm, pf)
	for _, sp := range CreateSpinners(ecs, bm, bounds) {
		bomb.AddResumer(sp)
	}

	entry := archetypes.Session.Spawn(ecs)
	components.Session.SetValue(entry, components.SessionData{
		Beatmap:     bm,
		MapPath:     path,
		Bounds:      bounds,
		Playfield:   pf,
		Store:       store,
		Scheduler:   scheduler,
		Bomb:        bomb,
		Model:       model,
		LastEventMs: bm.LastEventMs(),
	})
	return components.Session.Get(entry)
}
