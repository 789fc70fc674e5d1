package systems

import (
	"sync"

	"github.com/automoto/beatdodge/assets"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi/ecs"
)

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalAudioLoader  *assets.AudioLoader
	globalMusicPlayer  *audio.Player
	globalMusicKey     string
	globalMusicVolume  float64 = cfg.Audio.DefaultMusicVol
	globalSFXVolume    float64 = cfg.Audio.DefaultSFXVol
	globalFadeTimer    int
	globalFadeDuration int
	globalFadeStart    float64
	audioInitOnce      sync.Once
)

// initGlobalAudio initializes the global audio context (called once)
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		cues := assets.NewCueBank(cfg.Audio.SampleRate, cfg.Sound.Cues)
		globalAudioLoader = assets.NewAudioLoader(globalAudioContext, cues)
	})
}

// PreloadCues synthesizes all cues at startup to avoid a stall on the first warning.
func PreloadCues() {
	initGlobalAudio()
	globalAudioLoader.PreloadCues()
}

// UpdateAudio plays cues queued this tick and advances any music fade
func UpdateAudio(e *ecs.ECS) {
	initGlobalAudio()

	if globalFadeTimer > 0 {
		globalFadeTimer--
		if globalFadeDuration > 0 {
			progress := float64(globalFadeTimer) / float64(globalFadeDuration)
			if globalMusicPlayer != nil {
				globalMusicPlayer.SetVolume(globalFadeStart * progress)
			}
		}
		if globalFadeTimer == 0 && globalMusicPlayer != nil {
			_ = globalMusicPlayer.Close()
			globalMusicPlayer = nil
			globalMusicKey = ""
		}
	}

	entry, ok := components.Audio.First(e.World)
	if ok {
		audioData := components.Audio.Get(entry)
		audioData.Context = globalAudioContext
		audioData.MusicPlayer = globalMusicPlayer
		audioData.CurrentMusicKey = globalMusicKey
		audioData.MusicVolume = globalMusicVolume
		audioData.SFXVolume = globalSFXVolume
		for _, cue := range audioData.PendingSFX {
			playCue(cue)
		}
		audioData.PendingSFX = audioData.PendingSFX[:0]
	}
}

func playCue(cue components.PendingCue) {
	volume := globalSFXVolume * cue.Gain
	if volume <= 0 {
		return
	}

	player, err := globalAudioLoader.LoadCue(cue.Sound)
	if err != nil {
		return
	}
	player.SetVolume(volume)
	player.Play()
}

// LoadBeatmapMusic replaces the current music with the file at path, paused
// at the start. The caller starts it once the session is ready.
func LoadBeatmapMusic(path string) (*audio.Player, error) {
	initGlobalAudio()

	if globalMusicPlayer != nil {
		_ = globalMusicPlayer.Close()
		globalMusicPlayer = nil
		globalMusicKey = ""
	}

	player, err := globalAudioLoader.LoadMusicFile(path)
	if err != nil {
		return nil, err
	}
	player.SetVolume(globalMusicVolume)

	globalMusicPlayer = player
	globalMusicKey = path
	globalFadeTimer = 0
	return player, nil
}

// FadeOutMusic starts a music fade out transition
func FadeOutMusic(e *ecs.ECS) {
	if globalMusicPlayer == nil {
		return
	}
	globalFadeTimer = cfg.Audio.MusicFadeDuration
	globalFadeDuration = cfg.Audio.MusicFadeDuration
	globalFadeStart = globalMusicVolume
}

// StopMusic immediately stops the current music
func StopMusic(e *ecs.ECS) {
	if globalMusicPlayer != nil {
		_ = globalMusicPlayer.Close()
		globalMusicPlayer = nil
		globalMusicKey = ""
	}
	globalFadeTimer = 0
}

// QueueCue queues a sound effect at gain (0.0 - 1.0) for the next audio update.
func QueueCue(e *ecs.ECS, sound cfg.SoundID, gain float64) {
	if gain <= 0 {
		return
	}
	if gain > 1 {
		gain = 1
	}
	audioData := GetOrCreateAudio(e)
	audioData.PendingSFX = append(audioData.PendingSFX, components.PendingCue{Sound: sound, Gain: gain})
}

// PlaySFX queues a sound effect at full gain
func PlaySFX(e *ecs.ECS, sound cfg.SoundID) {
	QueueCue(e, sound, 1)
}

// SetMusicVolume changes the music volume (0.0 - 1.0)
func SetMusicVolume(volume float64) {
	globalMusicVolume = clampUnit(volume)
	if globalMusicPlayer != nil && globalFadeTimer == 0 {
		globalMusicPlayer.SetVolume(globalMusicVolume)
	}
}

// SetSFXVolume changes the SFX volume (0.0 - 1.0)
func SetSFXVolume(volume float64) {
	globalSFXVolume = clampUnit(volume)
}

// GetMusicVolume returns the current music volume (0.0 - 1.0)
func GetMusicVolume() float64 {
	return globalMusicVolume
}

// GetSFXVolume returns the current SFX volume (0.0 - 1.0)
func GetSFXVolume() float64 {
	return globalSFXVolume
}

// GetOrCreateAudio returns the singleton Audio component for this ECS, creating it if needed.
// The audio context is attached later by UpdateAudio so queuing never opens a device.
func GetOrCreateAudio(e *ecs.ECS) *components.AudioData {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
		components.Audio.SetValue(entry, components.AudioData{
			Context:     globalAudioContext,
			MusicVolume: globalMusicVolume,
			SFXVolume:   globalSFXVolume,
			PendingSFX:  make([]components.PendingCue, 0, 8),
		})
	}
	return components.Audio.Get(entry)
}
