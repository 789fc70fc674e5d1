package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Laser   = donburi.NewTag().SetName("Laser")
	Spinner = donburi.NewTag().SetName("Spinner")
)
