package components

import (
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
)

// PlaybackData is the per-tick time snapshot every gameplay system reads
type PlaybackData struct {
	Clock     sim.Clock
	Monotonic sim.Monotonic
	Elapsed   int64 // ms since the map started, never decreasing
	Dt        int64 // ms since the previous tick, capped
	Ticks     int
	HasMusic  bool
}

var Playback = donburi.NewComponentType[PlaybackData]()
