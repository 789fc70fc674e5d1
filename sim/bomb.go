package sim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
)

// Resumer is anything with a time cursor that must skip what fell due while
// the bomb was active.
type Resumer interface {
	CatchUp(elapsed int64) int
}

// BombSettings configures a bomb controller.
type BombSettings struct {
	Charges    int
	DurationMs int64
	Radius     float64
	MaxAlpha   float64
}

// Bomb clears projectiles around a point and holds spawning and collision
// off for a fixed duration. When it ends, every registered resumer catches
// up to the current time so nothing due during the flash spawns late.
type Bomb struct {
	store    *Store
	resumers []Resumer
	settings BombSettings

	charges int
	active  bool
	started int64

	flashUp   *gween.Tween
	flashDown *gween.Tween
}

// NewBomb creates a controller with a full set of charges.
func NewBomb(store *Store, settings BombSettings, resumers ...Resumer) *Bomb {
	half := float32(settings.DurationMs) / 2
	return &Bomb{
		store:     store,
		resumers:  resumers,
		settings:  settings,
		charges:   settings.Charges,
		flashUp:   gween.New(0, float32(settings.MaxAlpha), half, ease.Linear),
		flashDown: gween.New(float32(settings.MaxAlpha), 0, half, ease.Linear),
	}
}

// AddResumer registers another cursor to catch up when the bomb ends.
func (b *Bomb) AddResumer(r Resumer) {
	b.resumers = append(b.resumers, r)
}

// Activate fires the bomb at center. It does nothing and returns false when
// no charges remain or a bomb is already active.
func (b *Bomb) Activate(center dmath.Vec2, now int64) bool {
	if b.active || b.charges <= 0 {
		return false
	}
	b.charges--
	b.active = true
	b.started = now
	b.store.RemoveWithin(center, b.settings.Radius)
	return true
}

// Update ends the bomb once its duration has passed. On that tick it
// returns ended=true along with how many scheduled spawns were skipped.
func (b *Bomb) Update(now int64) (ended bool, skipped int) {
	if !b.active || now-b.started < b.settings.DurationMs {
		return false, 0
	}
	b.active = false
	for _, r := range b.resumers {
		skipped += r.CatchUp(now)
	}
	return true, skipped
}

// Active reports whether the bomb is suppressing spawns and collisions.
func (b *Bomb) Active() bool { return b.active }

// Charges returns the remaining charges.
func (b *Bomb) Charges() int { return b.charges }

// Settings returns the controller's configuration.
func (b *Bomb) Settings() BombSettings { return b.settings }

// FlashAlpha is a triangle envelope over the bomb duration peaking at
// MaxAlpha halfway through. It is 0 while inactive.
func (b *Bomb) FlashAlpha(now int64) float64 {
	if !b.active || b.settings.DurationMs <= 0 {
		return 0
	}
	t := now - b.started
	half := b.settings.DurationMs / 2
	var v float32
	if t < half {
		v, _ = b.flashUp.Set(float32(t))
	} else {
		v, _ = b.flashDown.Set(float32(t - half))
	}
	return clamp01(float64(v))
}

// Reset restores every charge and clears any active flash.
func (b *Bomb) Reset() {
	b.charges = b.settings.Charges
	b.active = false
}
