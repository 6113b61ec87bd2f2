// Package bullet implements projectile kinematics: drag, the stop clamp and
// swept collision against wall rectangles with a stylised bounce.
package bullet

import (
	"github.com/google/uuid"

	"github.com/zeusync/tds/internal/core/geometry"
)

// HistoryLen is the number of past positions kept for trail rendering.
const HistoryLen = 3

// WallSource yields world-space wall rectangles. *grid.Grid implements it.
type WallSource interface {
	EachWallRect(fn func(x, y int, r geometry.Rect) bool)
}

// Random draws uniform values in [0, 1). *rand.Rand implements it.
type Random interface {
	Float32() float32
}

// TieBreak selects which of several simultaneous hits is resolved.
type TieBreak uint8

const (
	// TieBreakOrigin picks the hit point closest to the world origin.
	TieBreakOrigin TieBreak = iota
	// TieBreakBullet picks the hit point closest to the bullet.
	TieBreakBullet
)

// Params tunes one kind of projectile.
type Params struct {
	// Drag is subtracted from the speed each 1/60 s.
	Drag float32
	// StopThreshold is the speed at or below which velocity snaps to zero.
	StopThreshold float32
	// Bounciness is the upper bound of the per-hit energy retention draw.
	Bounciness float32
	// PushEpsilon moves a bounced bullet off the struck edge.
	PushEpsilon  float32
	ColliderSize float32
	TieBreak     TieBreak
}

// DefaultParams returns the rifle bullet tuning.
func DefaultParams() Params {
	return Params{
		Drag:          12,
		StopThreshold: 20,
		Bounciness:    0.3,
		PushEpsilon:   0.01,
		ColliderSize:  0.5,
		TieBreak:      TieBreakOrigin,
	}
}

// Bullet is a projectile. It is alive while its velocity is non-zero.
type Bullet struct {
	ID      uuid.UUID
	Pos     geometry.Vec2
	Vel     geometry.Vec2
	History [HistoryLen]geometry.Vec2
	Params  Params

	// Set by the last Update when a wall was struck.
	Collided   bool
	Reflection geometry.Vec2
	HitLine    *geometry.Line
}

// New creates a bullet at pos moving with vel.
func New(pos, vel geometry.Vec2, params Params) *Bullet {
	return &Bullet{
		ID:      uuid.New(),
		Pos:     pos,
		Vel:     vel,
		History: [HistoryLen]geometry.Vec2{pos, pos, pos},
		Params:  params,
	}
}

// Stopped reports whether the bullet has come to rest.
func (b *Bullet) Stopped() bool {
	return b.Vel == geometry.Zero
}

// Speed returns the velocity magnitude.
func (b *Bullet) Speed() float32 {
	return b.Vel.Len()
}

// Collider returns the bullet's small square footprint.
func (b *Bullet) Collider() geometry.Collider {
	return geometry.NewCollider(geometry.SquareAt(b.Pos, b.Params.ColliderSize))
}

// Update advances the bullet by one frame of dt seconds.
func (b *Bullet) Update(dt float32, walls WallSource, rng Random) {
	b.Collided = false
	b.Reflection = geometry.Zero
	b.HitLine = nil
	b.pushHistory()

	b.applyDrag(dt)

	if b.handleCollisions(dt, walls, rng) {
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

func (b *Bullet) pushHistory() {
	copy(b.History[1:], b.History[:HistoryLen-1])
	b.History[0] = b.Pos
}

// applyDrag slows the bullet linearly, normalised to 60 frames per second,
// and snaps it to rest below the stop threshold.
func (b *Bullet) applyDrag(dt float32) {
	if dir, ok := geometry.Normalize(b.Vel); ok {
		b.Vel = b.Vel.Sub(dir.Mul(b.Params.Drag * dt * 60))
	}
	if b.Vel.Len() <= b.Params.StopThreshold {
		b.Vel = geometry.Zero
	}
}
