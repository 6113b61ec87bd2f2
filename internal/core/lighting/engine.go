package lighting

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/tds/internal/core/geometry"
)

// MaxLights is the shader array size.
const MaxLights = 400

var (
	ErrLightLimit    = errors.New("light limit reached")
	ErrUnknownHandle = errors.New("unknown light handle")
)

// Handle identifies a spawned light. It stays valid until Remove and is never
// reissued to another light while the engine lives.
type Handle uint32

// maxHandles bounds the handle space. Removed lights keep their slot, so the
// record table grows with total spawns, not with live lights.
const maxHandles = math.MaxUint32

type record struct {
	light Light
	alive bool
}

// Engine owns every light in the scene. It is not safe for concurrent use.
type Engine struct {
	records []record
	alive   int
	limit   int
}

// NewEngine returns an engine that holds at most limit lights. A limit of zero
// or less means MaxLights.
func NewEngine(limit int) *Engine {
	if limit <= 0 || limit > MaxLights {
		limit = MaxLights
	}
	return &Engine{limit: limit}
}

// Spawn registers l and returns its handle.
func (e *Engine) Spawn(l Light) (Handle, error) {
	if e.alive >= e.limit {
		return 0, fmt.Errorf("spawn %s light: %w (%d)", l.Kind, ErrLightLimit, e.limit)
	}
	if uint64(len(e.records)) >= maxHandles {
		return 0, fmt.Errorf("spawn %s light: %w (handles exhausted)", l.Kind, ErrLightLimit)
	}
	e.records = append(e.records, record{light: l, alive: true})
	e.alive++
	return Handle(len(e.records) - 1), nil
}

func (e *Engine) Get(h Handle) (Light, bool) {
	if int(h) >= len(e.records) || !e.records[h].alive {
		return Light{}, false
	}
	return e.records[h].light, true
}

// Update replaces the light behind h.
func (e *Engine) Update(h Handle, l Light) error {
	if int(h) >= len(e.records) || !e.records[h].alive {
		return fmt.Errorf("update light %d: %w", h, ErrUnknownHandle)
	}
	e.records[h].light = l
	return nil
}

// Remove drops the light behind h. Removing twice is a no-op.
func (e *Engine) Remove(h Handle) {
	if int(h) >= len(e.records) || !e.records[h].alive {
		return
	}
	e.records[h] = record{}
	e.alive--
}

// Count returns the number of live lights.
func (e *Engine) Count() int {
	return e.alive
}

func (e *Engine) Limit() int {
	return e.limit
}

// Uniforms holds parallel per-light arrays in handle order, ready to upload.
type Uniforms struct {
	Positions []geometry.Vec2
	Colors    []geometry.Vec4
	Radii     []float32
	Angles    []float32
	Rotations []float32
	Kinds     []int32
}

// Len is the number of lights in the snapshot.
func (u Uniforms) Len() int {
	return len(u.Kinds)
}

// Uniforms snapshots every live light. Positions of non-ambient lights are
// shifted by offset, which is the camera offset in screen space.
func (e *Engine) Uniforms(offset geometry.Vec2) Uniforms {
	u := Uniforms{
		Positions: make([]geometry.Vec2, 0, e.alive),
		Colors:    make([]geometry.Vec4, 0, e.alive),
		Radii:     make([]float32, 0, e.alive),
		Angles:    make([]float32, 0, e.alive),
		Rotations: make([]float32, 0, e.alive),
		Kinds:     make([]int32, 0, e.alive),
	}
	for _, r := range e.records {
		if !r.alive {
			continue
		}
		l := r.light
		u.Positions = append(u.Positions, l.ShaderPos().Add(offset))
		u.Colors = append(u.Colors, l.Color)
		u.Radii = append(u.Radii, l.ShaderRadius())
		u.Angles = append(u.Angles, l.Angle)
		u.Rotations = append(u.Rotations, l.Rotation)
		u.Kinds = append(u.Kinds, int32(l.Kind))
	}
	return u
}
