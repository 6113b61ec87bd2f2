// Package lighting keeps the set of lights a renderer draws. The engine only
// stores state; shading is done elsewhere from the Uniforms snapshot.
package lighting

import (
	"math"

	"github.com/zeusync/tds/internal/core/geometry"
)

// Kind selects how a light is shaded. Values are passed to shaders as-is.
type Kind int32

const (
	Radial Kind = iota
	Ambient
	Cone
)

func (k Kind) String() string {
	switch k {
	case Radial:
		return "radial"
	case Ambient:
		return "ambient"
	case Cone:
		return "cone"
	default:
		return "unknown"
	}
}

// Light is a tagged union. Pos, Radius, Angle and Rotation are ignored for
// ambient lights; Angle and Rotation only apply to cones.
type Light struct {
	Kind     Kind
	Pos      geometry.Vec2
	Color    geometry.Vec4
	Radius   float32
	Angle    float32
	Rotation float32
}

var (
	White = geometry.Vec4{1, 1, 1, 1}
	Black = geometry.Vec4{0, 0, 0, 1}
	// Wheat is the flashlight beam colour.
	Wheat = geometry.Vec4{245.0 / 255, 222.0 / 255, 179.0 / 255, 1}
)

// Ambient presets.
var (
	AmbientNight    = Light{Kind: Ambient, Color: geometry.Vec4{0.7, 0.7, 1, 0.25}}
	AmbientMidnight = Light{Kind: Ambient, Color: geometry.Vec4{0.7, 0.7, 1, 0.08}}
	AmbientSunrise  = Light{Kind: Ambient, Color: geometry.Vec4{1, 0.7, 0.5, 0.5}}
	AmbientDay      = Light{Kind: Ambient, Color: geometry.Vec4{1, 1, 1, 1}}
)

func DefaultRadial() Light {
	return Light{Kind: Radial, Color: White, Radius: 350}
}

func DefaultAmbient() Light {
	return AmbientDay
}

func DefaultCone() Light {
	return Light{Kind: Cone, Color: Wheat, Radius: 250, Angle: math.Pi / 2}
}

// ShaderPos returns the position a shader sees: zero for ambient lights.
func (l Light) ShaderPos() geometry.Vec2 {
	if l.Kind == Ambient {
		return geometry.Zero
	}
	return l.Pos
}

// ShaderRadius returns the radius a shader sees: zero for ambient lights.
func (l Light) ShaderRadius() float32 {
	if l.Kind == Ambient {
		return 0
	}
	return l.Radius
}
