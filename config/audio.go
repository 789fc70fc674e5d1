package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Hazard sounds
	SoundWarning
	SoundBomb
	SoundHit
	// UI sounds
	SoundMenuNavigate
	SoundMenuSelect
)

// Waveform selects the oscillator shape of a synthesized cue
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveNoise
)

// CueConfig describes one synthesized sound effect
type CueConfig struct {
	Wave       Waveform
	Frequency  float64 // Hz at the start of the cue
	SweepTo    float64 // Hz at the end; 0 keeps the start frequency
	DurationMs int
	AttackMs   int
	ReleaseMs  int
	Gain       float64 // 0.0 - 1.0, scaled by the SFX volume
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate        int
	DefaultMusicVol   float64
	DefaultSFXVol     float64
	MusicFadeDuration int // frames for music fade out (60 = 1 second at 60fps)
	VolumeStep        float64
}

// SoundConfig maps sound IDs to synthesized cues
type SoundConfig struct {
	Cues map[SoundID]CueConfig
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:        44100,
		DefaultMusicVol:   0.75,
		DefaultSFXVol:     0.8,
		MusicFadeDuration: 60,
		VolumeStep:        0.1,
	}

	Sound = SoundConfig{
		Cues: map[SoundID]CueConfig{
			SoundWarning: {
				Wave: WaveSquare, Frequency: 880, SweepTo: 660,
				DurationMs: 120, AttackMs: 5, ReleaseMs: 60, Gain: 0.35,
			},
			SoundBomb: {
				Wave: WaveNoise, Frequency: 0,
				DurationMs: 700, AttackMs: 10, ReleaseMs: 550, Gain: 0.8,
			},
			SoundHit: {
				Wave: WaveSquare, Frequency: 220, SweepTo: 80,
				DurationMs: 250, AttackMs: 2, ReleaseMs: 180, Gain: 0.7,
			},
			SoundMenuNavigate: {
				Wave: WaveSine, Frequency: 660,
				DurationMs: 50, AttackMs: 2, ReleaseMs: 30, Gain: 0.4,
			},
			SoundMenuSelect: {
				Wave: WaveSine, Frequency: 990, SweepTo: 1320,
				DurationMs: 90, AttackMs: 2, ReleaseMs: 50, Gain: 0.5,
			},
		},
	}
}
