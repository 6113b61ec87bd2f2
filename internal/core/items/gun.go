// Package items holds the player's equipment.
package items

import "math"

// Random draws uniform values in [0, 1).
type Random interface {
	Float32() float32
}

type Magazine struct {
	Bullets uint32
	Max     uint32
}

// Empty reports whether no rounds are left.
func (m Magazine) Empty() bool {
	return m.Bullets == 0
}

// Gun is a magazine-fed automatic weapon.
type Gun struct {
	Mag Magazine
	// Accuracy narrows the spread: a shot deviates at most Pi/Accuracy radians.
	Accuracy float32
	// FireInterval is the minimum time between shots in seconds.
	FireInterval float32
	// TimeSinceShot is in seconds.
	TimeSinceShot float32
}

// NewAssaultRifle returns a full 30 round rifle firing ten rounds a second.
func NewAssaultRifle() *Gun {
	return &Gun{
		Mag:           Magazine{Bullets: 30, Max: 30},
		Accuracy:      120,
		FireInterval:  0.1,
		TimeSinceShot: 0.1,
	}
}

// Update advances the cooldown timer.
func (g *Gun) Update(dt float32) {
	g.TimeSinceShot += dt
}

// Ready reports whether the gun can fire right now.
func (g *Gun) Ready() bool {
	return !g.Mag.Empty() && g.TimeSinceShot >= g.FireInterval
}

// TryFire consumes a round and resets the cooldown when the gun is ready.
func (g *Gun) TryFire() bool {
	if !g.Ready() {
		return false
	}
	g.Mag.Bullets--
	g.TimeSinceShot = 0
	return true
}

// Reload refills the magazine.
func (g *Gun) Reload() {
	g.Mag.Bullets = g.Mag.Max
}

// Spread returns a random aim deviation in radians within ±Pi/Accuracy.
func (g *Gun) Spread(rng Random) float32 {
	if g.Accuracy <= 0 {
		return 0
	}
	limit := float32(math.Pi) / g.Accuracy
	return (rng.Float32()*2 - 1) * limit
}
