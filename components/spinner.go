package components

import (
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi"
)

type SpinnerData struct {
	*sim.Spinner
	Done bool
}

var Spinner = donburi.NewComponentType[SpinnerData]()
