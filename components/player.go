package components

import (
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
)

// PlayerData wraps the simulated player body and its per-tick movement state
type PlayerData struct {
	*sim.Player
	Slow bool // slow mode held this tick
	Hits int  // lives lost this run
}

var Player = donburi.NewComponentType[PlayerData]()
