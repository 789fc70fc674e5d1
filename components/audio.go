package components

import (
	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi"
)

// PendingCue is a sound effect queued during a tick
type PendingCue struct {
	Sound cfg.SoundID
	Gain  float64 // 0.0 - 1.0
}

// AudioData stores global audio state (singleton component)
type AudioData struct {
	Context         *audio.Context
	MusicPlayer     *audio.Player
	MusicVolume     float64 // 0.0 - 1.0
	SFXVolume       float64 // 0.0 - 1.0
	CurrentMusicKey string  // Track which music is playing
	PendingSFX      []PendingCue
}

var Audio = donburi.NewComponentType[AudioData]()
