package components

import (
	"github.com/automoto/beatdodge/beatmap"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
)

// SessionData holds one loaded map and its hazard state (singleton component)
type SessionData struct {
	Beatmap   *beatmap.Beatmap
	MapPath   string
	Bounds    sim.Bounds
	Playfield sim.Playfield
	Store     *sim.Store
	Scheduler *sim.Scheduler
	Bomb      *sim.Bomb
	Model     sim.VelocityModel

	// LastEventMs is when the final hazard of the map stops being dangerous
	LastEventMs int64

	Over    bool // lives ran out
	Cleared bool // every hazard finished with lives left
	Skipped int  // spawns consumed by bomb catch-up
}

var Session = donburi.NewComponentType[SessionData]()
