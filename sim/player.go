package sim

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Player is the dodging body. Pos is its centre; only HitboxRadius counts
// for collisions, Size is the drawn square.
type Player struct {
	Pos               dmath.Vec2
	Size              float64
	HitboxRadius      float64
	Lives             int
	MaxLives          int
	InvulnerableUntil int64
}

// NewPlayer places a player with full lives.
func NewPlayer(pos dmath.Vec2, size, hitboxRadius float64, lives int) *Player {
	return &Player{
		Pos:          pos,
		Size:         size,
		HitboxRadius: hitboxRadius,
		Lives:        lives,
		MaxLives:     lives,
	}
}

// Invulnerable reports whether hits are ignored at now.
func (p *Player) Invulnerable(now int64) bool {
	return now < p.InvulnerableUntil
}

// Alive reports whether any lives remain.
func (p *Player) Alive() bool { return p.Lives > 0 }

// Damage costs a life unless the player is invulnerable at now, and starts
// a new invulnerability window of invMs. It reports whether a life was lost.
func (p *Player) Damage(now, invMs int64) bool {
	if p.Invulnerable(now) || p.Lives <= 0 {
		return false
	}
	p.Lives--
	p.InvulnerableUntil = now + invMs
	return true
}

// Move steps the player by an 8-way direction at speed px/s for dt seconds,
// keeping the whole body on screen.
func (p *Player) Move(dx, dy int, speed, dt float64, bounds Bounds) {
	if dx == 0 && dy == 0 {
		return
	}
	dir := normalize(dmath.Vec2{X: float64(dx), Y: float64(dy)})
	p.Pos.X += dir.X * speed * dt
	p.Pos.Y += dir.Y * speed * dt

	half := p.Size / 2
	p.Pos.X = math.Max(half, math.Min(bounds.W-half, p.Pos.X))
	p.Pos.Y = math.Max(half, math.Min(bounds.H-half, p.Pos.Y))
}

// Reset restores lives and clears invulnerability at pos.
func (p *Player) Reset(pos dmath.Vec2) {
	p.Pos = pos
	p.Lives = p.MaxLives
	p.InvulnerableUntil = 0
}
