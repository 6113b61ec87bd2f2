// Package player moves the player through the wall grid and aims the
// flashlight.
package player

import (
	"fmt"
	"math"

	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/lighting"
)

// WallSource yields world-space wall rectangles. *grid.Grid implements it.
type WallSource interface {
	EachWallRect(fn func(x, y int, r geometry.Rect) bool)
}

type Params struct {
	Size float32
	// Speed is in world units per second.
	Speed float32
	// Acceleration is the fraction of the gap to the desired velocity closed
	// per second. Values of 1/dt or more make movement instant.
	Acceleration     float32
	FlashlightRadius float32
	FlashlightAngle  float32
}

func DefaultParams() Params {
	return Params{
		Size:             12,
		Speed:            40,
		Acceleration:     15,
		FlashlightRadius: 250,
		FlashlightAngle:  math.Pi / 2,
	}
}

// Flashlight is a cone light held by the player.
type Flashlight struct {
	Handle lighting.Handle
	Active bool
}

// Player is the controllable character. Vel is a per-frame displacement.
type Player struct {
	Pos        geometry.Vec2
	Vel        geometry.Vec2
	Params     Params
	Flashlight Flashlight
}

// New places a player at pos and spawns its flashlight in engine.
func New(pos geometry.Vec2, params Params, engine *lighting.Engine) (*Player, error) {
	cone := lighting.DefaultCone()
	cone.Radius = params.FlashlightRadius
	cone.Angle = params.FlashlightAngle
	cone.Pos = pos

	h, err := engine.Spawn(cone)
	if err != nil {
		return nil, fmt.Errorf("spawn flashlight: %w", err)
	}

	return &Player{
		Pos:        pos,
		Params:     params,
		Flashlight: Flashlight{Handle: h, Active: true},
	}, nil
}

// Collider returns the Size x Size box centred on Pos.
func (p *Player) Collider() geometry.Collider {
	return geometry.NewCollider(geometry.SquareAt(p.Pos, p.Params.Size))
}

// HandleMovement steers towards the input direction, resolves walls and then
// moves exactly once.
func (p *Player) HandleMovement(in Input, dt float32, walls WallSource) {
	desired := geometry.Zero
	if dir, ok := geometry.Normalize(in.Move); ok {
		desired = dir.Mul(p.Params.Speed * dt)
	}

	blend := min(float32(1), p.Params.Acceleration*dt)
	p.Vel = p.Vel.Add(desired.Sub(p.Vel).Mul(blend))

	if in.ToggleFlashlight {
		p.Flashlight.Active = !p.Flashlight.Active
	}

	p.HandleCollisions(walls)
	p.Pos = p.Pos.Add(p.Vel)
}

// HandleCollisions tests each axis of the pending move on its own. A blocked
// axis loses its velocity and the player is snapped flush against the wall on
// that side, so motion along the free axis keeps sliding. Both axes are tested
// every frame, so a stationary player overlapping a wall is pushed out too.
func (p *Player) HandleCollisions(walls WallSource) {
	half := p.Params.Size / 2

	walls.EachWallRect(func(_, _ int, r geometry.Rect) bool {
		wall := geometry.NewCollider(r)
		center := r.Center()

		if _, hit := p.Collider().Translate(geometry.Vec2{0, p.Vel.Y()}).Overlaps(wall); hit {
			p.Vel[1] = 0
			if p.Pos.Y() < center.Y() {
				p.Pos[1] = r.Y - half
			} else {
				p.Pos[1] = r.Bottom() + half
			}
		}

		if _, hit := p.Collider().Translate(geometry.Vec2{p.Vel.X(), 0}).Overlaps(wall); hit {
			p.Vel[0] = 0
			if p.Pos.X() < center.X() {
				p.Pos[0] = r.X - half
			} else {
				p.Pos[0] = r.Right() + half
			}
		}
		return true
	})
}

// AimDirection returns the unit vector from the player to aim.
func (p *Player) AimDirection(aim geometry.Vec2) (geometry.Vec2, bool) {
	return geometry.Normalize(aim.Sub(p.Pos))
}

// UpdateFlashlight points the cone at aim. The rotation follows the shader's
// y-up convention and is offset by Pi.
func (p *Player) UpdateFlashlight(aim geometry.Vec2, engine *lighting.Engine) error {
	delta := aim.Sub(p.Pos)
	dir, _ := geometry.Normalize(delta)
	rotation := float32(math.Atan2(float64(-delta.Y()), float64(delta.X()))) + math.Pi

	color := lighting.Black
	if p.Flashlight.Active {
		color = lighting.Wheat
	}

	return engine.Update(p.Flashlight.Handle, lighting.Light{
		Kind:     lighting.Cone,
		Pos:      p.Pos.Add(dir.Mul(5)),
		Color:    color,
		Radius:   p.Params.FlashlightRadius,
		Angle:    p.Params.FlashlightAngle,
		Rotation: rotation,
	})
}
