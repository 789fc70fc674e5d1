package components

import "github.com/yohamta/donburi"

// MapEntry is one playable beatmap in the map select list
type MapEntry struct {
	Path    string
	Name    string // display name from the map's metadata
	Objects int    // hit points, sliders and spinners
	Best    string // best clear, empty if never cleared
}

// MenuData stores the current state of the map select screen
type MenuData struct {
	Dir           string
	SelectedIndex int
	Maps          []MapEntry
}

// Menu is the component type for map select state
var Menu = donburi.NewComponentType[MenuData]()
