package config

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the optional TOML override file. Every field is a pointer so
// that an absent key keeps the compiled-in default.
type FileConfig struct {
	Screen     ScreenFile     `toml:"screen"`
	Player     PlayerFile     `toml:"player"`
	Projectile ProjectileFile `toml:"projectile"`
	Spinner    SpinnerFile    `toml:"spinner"`
	Bomb       BombFile       `toml:"bomb"`
	Loop       LoopFile       `toml:"loop"`
	Audio      AudioFile      `toml:"audio"`
	Debug      DebugFile      `toml:"debug"`
}

type ScreenFile struct {
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

type PlayerFile struct {
	Speed             *float64 `toml:"speed"`
	SlowSpeed         *float64 `toml:"slow_speed"`
	HitboxRadius      *float64 `toml:"hitbox_radius"`
	Lives             *int     `toml:"lives"`
	InvulnerabilityMs *int64   `toml:"invulnerability_ms"`
}

type ProjectileFile struct {
	Radius           *float64 `toml:"radius"`
	Speed            *float64 `toml:"speed"`
	Model            *string  `toml:"model"`
	TimeScaledFactor *float64 `toml:"time_scaled_factor"`
	SpinnerSpeed     *float64 `toml:"spinner_speed"`
}

type SpinnerFile struct {
	IntervalMs *int64   `toml:"interval_ms"`
	Count      *int     `toml:"count"`
	Step       *float64 `toml:"step"`
	Radius     *float64 `toml:"radius"`
}

type BombFile struct {
	Charges    *int   `toml:"charges"`
	DurationMs *int64 `toml:"duration_ms"`
}

type LoopFile struct {
	TPS   *int  `toml:"tps"`
	VSync *bool `toml:"vsync"`
}

type AudioFile struct {
	MusicVolume *float64 `toml:"music_volume"`
	SFXVolume   *float64 `toml:"sfx_volume"`
}

type DebugFile struct {
	Overlay *bool `toml:"overlay"`
}

// LoadFile reads and decodes a TOML override file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses TOML override data.
func Decode(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &fc, nil
}

// Apply copies every valid value onto the global configuration. Invalid
// values are logged and skipped.
func (fc *FileConfig) Apply() {
	setInt(&C.Width, fc.Screen.Width, "screen.width", positiveInt)
	setInt(&C.Height, fc.Screen.Height, "screen.height", positiveInt)

	setFloat(&Player.Speed, fc.Player.Speed, "player.speed", positive)
	setFloat(&Player.SlowSpeed, fc.Player.SlowSpeed, "player.slow_speed", positive)
	setFloat(&Player.HitboxRadius, fc.Player.HitboxRadius, "player.hitbox_radius", positive)
	setInt(&Player.Lives, fc.Player.Lives, "player.lives", positiveInt)
	setInt64(&Player.InvulnerabilityMs, fc.Player.InvulnerabilityMs, "player.invulnerability_ms", nonNegative64)

	setFloat(&Projectile.Radius, fc.Projectile.Radius, "projectile.radius", positive)
	setFloat(&Projectile.Speed, fc.Projectile.Speed, "projectile.speed", positive)
	setFloat(&Projectile.TimeScaledFactor, fc.Projectile.TimeScaledFactor, "projectile.time_scaled_factor", positive)
	setFloat(&Projectile.SpinnerSpeed, fc.Projectile.SpinnerSpeed, "projectile.spinner_speed", positive)
	if fc.Projectile.Model != nil {
		switch *fc.Projectile.Model {
		case "constant", "time-scaled":
			Projectile.Model = *fc.Projectile.Model
		default:
			log.Printf("Warning: ignoring projectile.model %q", *fc.Projectile.Model)
		}
	}

	setInt64(&Spinner.IntervalMs, fc.Spinner.IntervalMs, "spinner.interval_ms", positive64)
	setInt(&Spinner.Count, fc.Spinner.Count, "spinner.count", positiveInt)
	setFloat(&Spinner.Step, fc.Spinner.Step, "spinner.step", finite)
	setFloat(&Spinner.Radius, fc.Spinner.Radius, "spinner.radius", positive)

	setInt(&Bomb.Charges, fc.Bomb.Charges, "bomb.charges", nonNegativeInt)
	setInt64(&Bomb.DurationMs, fc.Bomb.DurationMs, "bomb.duration_ms", positive64)

	setInt(&Loop.TPS, fc.Loop.TPS, "loop.tps", positiveInt)
	if fc.Loop.VSync != nil {
		Loop.VSync = *fc.Loop.VSync
	}

	setFloat(&Audio.DefaultMusicVol, fc.Audio.MusicVolume, "audio.music_volume", unit)
	setFloat(&Audio.DefaultSFXVol, fc.Audio.SFXVolume, "audio.sfx_volume", unit)

	if fc.Debug.Overlay != nil {
		Debug.Enabled = *fc.Debug.Overlay
	}
}

// Volumes returns the audio volumes the file sets to a usable value, nil
// for any it leaves out or gets wrong.
func (fc *FileConfig) Volumes() (music, sfx *float64) {
	if v := fc.Audio.MusicVolume; v != nil && unit(*v) {
		music = v
	}
	if v := fc.Audio.SFXVolume; v != nil && unit(*v) {
		sfx = v
	}
	return music, sfx
}

func positive(v float64) bool    { return v > 0 }
func finite(v float64) bool      { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func unit(v float64) bool        { return v >= 0 && v <= 1 }
func positiveInt(v int) bool     { return v > 0 }
func nonNegativeInt(v int) bool  { return v >= 0 }
func positive64(v int64) bool    { return v > 0 }
func nonNegative64(v int64) bool { return v >= 0 }

func setFloat(dst *float64, v *float64, key string, valid func(float64) bool) {
	if v == nil {
		return
	}
	if !valid(*v) {
		log.Printf("Warning: ignoring %s = %v", key, *v)
		return
	}
	*dst = *v
}

func setInt(dst *int, v *int, key string, valid func(int) bool) {
	if v == nil {
		return
	}
	if !valid(*v) {
		log.Printf("Warning: ignoring %s = %v", key, *v)
		return
	}
	*dst = *v
}

func setInt64(dst *int64, v *int64, key string, valid func(int64) bool) {
	if v == nil {
		return
	}
	if !valid(*v) {
		log.Printf("Warning: ignoring %s = %v", key, *v)
		return
	}
	*dst = *v
}
