// Package game wires the player, the world and the lighting into one frame
// step. It is the single owner of all simulation state and is not safe for
// concurrent use.
package game

import (
	"github.com/zeusync/tds/internal/core/daycycle"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/items"
	"github.com/zeusync/tds/internal/core/lighting"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
	"github.com/zeusync/tds/internal/core/world"
)

// Random draws uniform values in [0, 1).
type Random interface {
	Float32() float32
}

type Game struct {
	world  *world.World
	player *player.Player
	gun    *items.Gun
	lights *lighting.Engine
	day    *daycycle.DayCycle
	rng    Random
	logger log.Log

	frame  uint64
	frozen uint64
}

func New(
	w *world.World,
	p *player.Player,
	gun *items.Gun,
	lights *lighting.Engine,
	day *daycycle.DayCycle,
	rng Random,
	logger log.Log,
) *Game {
	return &Game{
		world:  w,
		player: p,
		gun:    gun,
		lights: lights,
		day:    day,
		rng:    rng,
		logger: logger.Named("game"),
	}
}

// Step advances the simulation by dt seconds. When in.FreezeTime is set the
// frame is counted but nothing moves.
func (g *Game) Step(dt float32, in player.Input) {
	g.frame++
	if in.FreezeTime {
		g.frozen++
		return
	}

	g.player.HandleMovement(in, dt, g.world.Grid())
	if err := g.player.UpdateFlashlight(in.Aim, g.lights); err != nil {
		g.logger.Error("flashlight update failed", log.Error(err))
	}

	g.handleShooting(dt, in)
	g.world.UpdateBullets(dt)

	if in.Explode {
		g.world.Explode(in.Aim)
	}

	if err := g.day.Update(dt, g.lights); err != nil {
		g.logger.Error("day cycle update failed", log.Error(err))
	}
}

// handleShooting fires at most one round per frame. A round is spent even when
// the muzzle is inside a wall and no bullet appears.
func (g *Game) handleShooting(dt float32, in player.Input) {
	g.gun.Update(dt)
	if in.Reload {
		g.gun.Reload()
	}
	if !in.Fire || !g.gun.TryFire() {
		return
	}

	dir, ok := g.player.AimDirection(in.Aim)
	if !ok {
		return
	}
	angle := geometry.Angle(dir) + g.gun.Spread(g.rng)
	g.world.SpawnBullet(g.player.Pos, geometry.FromAngle(angle))
}

func (g *Game) World() *world.World {
	return g.world
}

func (g *Game) Player() *player.Player {
	return g.player
}

func (g *Game) Gun() *items.Gun {
	return g.gun
}

func (g *Game) Lights() *lighting.Engine {
	return g.lights
}

func (g *Game) DayCycle() *daycycle.DayCycle {
	return g.day
}

// Stats is a snapshot for periodic logging.
type Stats struct {
	Frame       uint64
	FrozenFrame uint64
	Bullets     int
	Lights      int
	Ammo        uint32
	Player      geometry.Vec2
	Clock       string
}

func (g *Game) Stats() Stats {
	return Stats{
		Frame:       g.frame,
		FrozenFrame: g.frozen,
		Bullets:     g.world.BulletCount(),
		Lights:      g.lights.Count(),
		Ammo:        g.gun.Mag.Bullets,
		Player:      g.player.Pos,
		Clock:       g.day.Clock(),
	}
}

// Fields renders s for the logger.
func (s Stats) Fields() []log.Field {
	return []log.Field{
		log.Uint64("frame", s.Frame),
		log.Uint64("frozen", s.FrozenFrame),
		log.Int("bullets", s.Bullets),
		log.Int("lights", s.Lights),
		log.Int("ammo", int(s.Ammo)),
		log.Point("player", s.Player),
		log.String("clock", s.Clock),
	}
}
