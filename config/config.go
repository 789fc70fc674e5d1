package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer; renderers run in registration order.
const Default ecs.LayerID = 0

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Body
	Size         float64 // drawn square, pixels
	HitboxRadius float64

	// Movement (px/s)
	Speed     float64
	SlowSpeed float64

	// Lives
	Lives             int
	InvulnerabilityMs int64

	// Spawn distance from the bottom edge
	SpawnBottomOffset float64

	Color         color.RGBA
	HitboxColor   color.RGBA
	BlinkPeriodMs int64 // flicker while invulnerable
}

// ProjectileConfig contains projectile spawn and pool configuration
type ProjectileConfig struct {
	Radius float64

	// Model is "constant" or "time-scaled"
	Model            string
	Speed            float64 // px/s for the constant model
	TimeScaledFactor float64 // multiplier for the time-scaled model
	SpinnerSpeed     float64 // px/s for spinner bursts

	InitialCapacity int

	NormalColor  color.RGBA
	SpinnerColor color.RGBA
}

// GridConfig contains spatial grid configuration
type GridConfig struct {
	// CellSize is raised to Projectile.Radius + Player.HitboxRadius if smaller
	CellSize float64
}

// PlayfieldConfig maps beatmap coordinates onto the screen
type PlayfieldConfig struct {
	SourceWidth  float64
	SourceHeight float64
}

// SpinnerConfig contains the radial burst pattern
type SpinnerConfig struct {
	IntervalMs int64
	Count      int
	Step       float64 // radians per burst
	Radius     float64
	Color      color.RGBA
}

// LaserConfig contains slider laser geometry and drawing values
type LaserConfig struct {
	CollisionWidth float64
	RenderWidth    float64
	CurveSteps     int // segments per smoothed curve when flattening
	CellSize       int // broad-phase cell size for the collision shape
	Color          color.RGBA
	DangerColor    color.RGBA
}

// BombConfig contains area-clear configuration
type BombConfig struct {
	Charges    int
	DurationMs int64
	MaxAlpha   float64
	FlashColor color.RGBA
}

// LoopConfig contains simulation loop configuration
type LoopConfig struct {
	TPS        int // frame-rate cap
	VSync      bool
	MaxStepMs  int64 // upper bound on one tick's dt
	EndGraceMs int64 // wait after the last event before the map counts as cleared
}

// HUDConfig contains HUD layout and colors
type HUDConfig struct {
	Margin      float64
	LineHeight  float64
	TextColor   color.RGBA
	AccentColor color.RGBA
	LifeColor   color.RGBA
	LostColor   color.RGBA
	LifeSize    float64
	LifeGap     float64
}

// MenuConfig contains map select screen configuration values
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	DetailColor       color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MaxVisible        int // rows shown before the list scrolls
}

// PauseConfig contains pause menu configuration values
type PauseConfig struct {
	OverlayColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// GameOverConfig contains game over screen configuration values
type GameOverConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	ClearedColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	StatsY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// DebugConfig contains debug overlay options
type DebugConfig struct {
	Enabled    bool // start with the overlay visible
	GridColor  color.RGBA
	ShapeColor color.RGBA
	BusyColor  color.RGBA
}

// Config holds general game configuration
type Config struct {
	Width      int
	Height     int
	Title      string
	Background color.RGBA
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Projectile ProjectileConfig
var Grid GridConfig
var Playfield PlayfieldConfig
var Spinner SpinnerConfig
var Laser LaserConfig
var Bomb BombConfig
var Loop LoopConfig
var HUD HUDConfig
var Pause PauseConfig
var GameOver GameOverConfig
var Menu MenuConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Cyan         = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Grey         = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255} // Selected menu items
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}  // Unselected menu items
)

func init() {
	C = &Config{
		Width:      800,
		Height:     600,
		Title:      "beatdodge",
		Background: color.RGBA{R: 12, G: 10, B: 24, A: 255},
	}

	Player = PlayerConfig{
		Size:              24,
		HitboxRadius:      10,
		Speed:             300,
		SlowSpeed:         120,
		Lives:             5,
		InvulnerabilityMs: 3000,
		SpawnBottomOffset: 80,
		Color:             White,
		HitboxColor:       LightRed,
		BlinkPeriodMs:     120,
	}

	Projectile = ProjectileConfig{
		Radius:           6,
		Model:            "constant",
		Speed:            240,
		TimeScaledFactor: 1,
		SpinnerSpeed:     180,
		InitialCapacity:  512,
		NormalColor:      Orange,
		SpinnerColor:     Magenta,
	}

	Grid = GridConfig{
		CellSize: 32,
	}

	Playfield = PlayfieldConfig{
		SourceWidth:  512,
		SourceHeight: 384,
	}

	Spinner = SpinnerConfig{
		IntervalMs: 100,
		Count:      11,
		Step:       0.2,
		Radius:     100,
		Color:      Magenta,
	}

	Laser = LaserConfig{
		CollisionWidth: 16,
		RenderWidth:    2,
		CurveSteps:     8,
		CellSize:       32,
		Color:          Cyan,
		DangerColor:    White,
	}

	Bomb = BombConfig{
		Charges:    5,
		DurationMs: 4000,
		MaxAlpha:   0.5,
		FlashColor: White,
	}

	Loop = LoopConfig{
		TPS:        60,
		VSync:      true,
		MaxStepMs:  100,
		EndGraceMs: 1000,
	}

	HUD = HUDConfig{
		Margin:      10,
		LineHeight:  18,
		TextColor:   White,
		AccentColor: Yellow,
		LifeColor:   LightRed,
		LostColor:   Grey,
		LifeSize:    10,
		LifeGap:     4,
	}

	Pause = PauseConfig{
		OverlayColor:      BlackOverlay,
		TextColorNormal:   DarkBlue,
		TextColorSelected: LightBlue,
		MenuItemHeight:    30,
		MenuItemGap:       10,
		MenuOptions:       []string{"RESUME", "MUSIC", "SFX", "RESTART", "EXIT"},
	}

	GameOver = GameOverConfig{
		BackgroundColor:   color.RGBA{R: 20, G: 0, B: 0, A: 255},
		TitleColor:        Red,
		ClearedColor:      LightGreen,
		TextColorNormal:   DarkBlue,
		TextColorSelected: LightBlue,
		TitleY:            180,
		StatsY:            240,
		MenuStartY:        320,
		MenuItemHeight:    30,
		MenuItemGap:       10,
		MenuOptions:       []string{"RETRY", "MAPS", "EXIT"},
	}

	Menu = MenuConfig{
		BackgroundColor:   color.RGBA{R: 10, G: 10, B: 30, A: 255},
		TitleColor:        Cyan,
		TextColorNormal:   DarkBlue,
		TextColorSelected: LightBlue,
		DetailColor:       Grey,
		TitleY:            100,
		MenuStartY:        150,
		MenuItemHeight:    24,
		MenuItemGap:       14,
		MaxVisible:        10,
	}

	Debug = DebugConfig{
		GridColor:  color.RGBA{R: 60, G: 60, B: 60, A: 255},
		ShapeColor: color.RGBA{R: 0, G: 255, B: 0, A: 160},
		BusyColor:  color.RGBA{R: 80, G: 40, B: 0, A: 255},
	}
}

// CellSize returns the grid cell size, never smaller than the largest
// possible projectile-to-player contact distance.
func CellSize() float64 {
	minSize := Projectile.Radius + Player.HitboxRadius
	if Grid.CellSize < minSize {
		return minSize
	}
	return Grid.CellSize
}
