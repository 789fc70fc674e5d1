package components

import "github.com/yohamta/donburi"

// GameOverOption represents the available game over menu selections
type GameOverOption int

const (
	GameOverRetry GameOverOption = iota
	GameOverMaps
	GameOverExit
)

// RunResult summarizes a finished run for the results screen
type RunResult struct {
	Title     string
	Cleared   bool
	ElapsedMs int64
	Lives     int
	Hits      int
	BombsUsed int

	BestMs  int64 // fastest earlier clear of the same map
	HasBest bool
}

// GameOverData stores the current state of the game over menu
type GameOverData struct {
	SelectedOption GameOverOption
	Result         RunResult
}

// GameOver is the component type for game over menu state
var GameOver = donburi.NewComponentType[GameOverData]()
