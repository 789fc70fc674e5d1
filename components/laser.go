package components

import (
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
)

type LaserData struct {
	*sim.Laser
}

var Laser = donburi.NewComponentType[LaserData]()
