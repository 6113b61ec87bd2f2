// Package world owns the map and every live bullet, and runs the bullet
// update-then-prune cycle.
package world

import (
	"math"
	"slices"

	"github.com/zeusync/tds/internal/core/bullet"
	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/grid"
	"github.com/zeusync/tds/internal/core/observability/log"
)

// Random draws uniform values in [0, 1). *rand.Rand implements it.
type Random interface {
	Float32() float32
}

// Params tunes spawning. Bullet is copied into every bullet spawned.
type Params struct {
	BulletSpeed  float32
	MuzzleOffset float32
	// SpawnCheckSize is the side of the square tested against walls at the
	// muzzle before a bullet is created.
	SpawnCheckSize float32
	Bullet         bullet.Params
	Shrapnel       ShrapnelParams
}

type ShrapnelParams struct {
	Even   int
	Random int
	Speed  float32
	// SpeedMargin scales each fragment's speed by a factor in
	// [1-SpeedMargin, 1+SpeedMargin).
	SpeedMargin float32
	Bullet      bullet.Params
}

func DefaultParams() Params {
	return Params{
		BulletSpeed:    200,
		MuzzleOffset:   15,
		SpawnCheckSize: 0.5,
		Bullet:         bullet.DefaultParams(),
		Shrapnel: ShrapnelParams{
			Even:        15,
			Random:      10,
			Speed:       600,
			SpeedMargin: 0.3,
			Bullet:      bullet.DefaultParams(),
		},
	}
}

type World struct {
	grid    *grid.Grid
	bullets []*bullet.Bullet
	params  Params
	rng     Random
	bus     bus.EventBus
	logger  log.Log
	frame   uint64
}

// New creates a world over g. eventBus may be nil.
func New(g *grid.Grid, params Params, rng Random, eventBus bus.EventBus, logger log.Log) *World {
	return &World{
		grid:   g,
		params: params,
		rng:    rng,
		bus:    eventBus,
		logger: logger.Named("world"),
	}
}

func (w *World) Grid() *grid.Grid {
	return w.grid
}

// Bullets returns a snapshot of the live bullets in spawn order. The bullets
// themselves are shared and must not be modified.
func (w *World) Bullets() []*bullet.Bullet {
	return slices.Clone(w.bullets)
}

func (w *World) BulletCount() int {
	return len(w.bullets)
}

// Frame returns the number of completed UpdateBullets calls.
func (w *World) Frame() uint64 {
	return w.frame
}

// SpawnBullet fires a bullet from origin in direction aim. The bullet starts
// MuzzleOffset ahead of origin and is not created when that point is inside a
// wall. It reports whether a bullet was added.
func (w *World) SpawnBullet(origin, aim geometry.Vec2) bool {
	dir, ok := geometry.Normalize(aim)
	if !ok {
		return false
	}

	muzzle := origin.Add(dir.Mul(w.params.MuzzleOffset))
	probe := geometry.NewCollider(geometry.SquareAt(muzzle, w.params.SpawnCheckSize))
	if _, blocked := w.grid.CollidesWithWall(probe); blocked {
		w.logger.Debug("bullet spawn blocked by wall", log.Point("muzzle", muzzle))
		w.publish(EventBulletRejected, BulletEvent{Pos: muzzle, Vel: dir.Mul(w.params.BulletSpeed)})
		return false
	}

	b := bullet.New(muzzle, dir.Mul(w.params.BulletSpeed), w.params.Bullet)
	w.bullets = append(w.bullets, b)
	w.publish(EventBulletSpawned, BulletEvent{ID: b.ID, Pos: b.Pos, Vel: b.Vel})
	return true
}

// UpdateBullets advances every bullet and only then drops the ones that have
// stopped, so a bullet stopping this frame is still updated with the rest.
func (w *World) UpdateBullets(dt float32) {
	for _, b := range w.bullets {
		b.Update(dt, w.grid, w.rng)
		if b.Collided {
			w.publish(EventBulletRicochet, BulletEvent{ID: b.ID, Pos: b.Pos, Vel: b.Vel, HitLine: b.HitLine})
		}
	}

	w.bullets = slices.DeleteFunc(w.bullets, func(b *bullet.Bullet) bool {
		if !b.Stopped() {
			return false
		}
		w.publish(EventBulletStopped, BulletEvent{ID: b.ID, Pos: b.Pos})
		return true
	})
	w.frame++
}

// Explode scatters shrapnel from at: Even fragments spaced evenly around the
// circle and Random fragments at random angles. Shrapnel is not checked
// against walls. It returns the number of fragments spawned.
func (w *World) Explode(at geometry.Vec2) int {
	sp := w.params.Shrapnel
	spawn := func(angle float32) {
		factor := 1 - sp.SpeedMargin + w.rng.Float32()*2*sp.SpeedMargin
		vel := geometry.FromAngle(angle).Mul(sp.Speed * factor)
		w.bullets = append(w.bullets, bullet.New(at, vel, sp.Bullet))
	}

	for i := 0; i < sp.Even; i++ {
		spawn(2 * math.Pi * float32(i) / float32(sp.Even))
	}
	for i := 0; i < sp.Random; i++ {
		spawn(w.rng.Float32() * 2 * math.Pi)
	}

	total := sp.Even + sp.Random
	w.logger.Info("explosion", log.Point("at", at), log.Int("shrapnel", total))
	w.publish(EventExplosion, ExplosionEvent{At: at, Shrapnel: total})
	return total
}
