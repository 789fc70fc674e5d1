package components

import "github.com/yohamta/donburi"

// PauseMenuOption represents menu items in the pause menu
type PauseMenuOption int

const (
	MenuResume PauseMenuOption = iota
	MenuMusicVolume
	MenuSFXVolume
	MenuRestart
	MenuExit
)

// PauseData stores the pause state and menu selection
type PauseData struct {
	IsPaused       bool
	SelectedOption PauseMenuOption
	Restart        bool // set when the player picks restart; the scene consumes it
}

var Pause = donburi.NewComponentType[PauseData]()
