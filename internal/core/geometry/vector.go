// Package geometry holds the pure math the collision code is built on:
// vectors, rectangles, line segments and colliders. Nothing here keeps state.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a 2D world-space point or direction.
type Vec2 = mgl32.Vec2

// Vec4 is an RGBA colour with components in [0, 1].
type Vec4 = mgl32.Vec4

// ParallelEpsilon is the smallest |cross(r, s)| treated as non-parallel.
const ParallelEpsilon float32 = 1e-6

// Zero is the zero vector.
var Zero = Vec2{}

// Normalize returns the unit vector of v. The second result is false for the
// zero vector, in which case the returned vector is zero too.
func Normalize(v Vec2) (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return Zero, false
	}
	return Vec2{v[0] / l, v[1] / l}, true
}

// MulComponents scales each axis of a by the matching axis of b.
func MulComponents(a, b Vec2) Vec2 {
	return Vec2{a[0] * b[0], a[1] * b[1]}
}

// Cross is the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{float32(c), float32(s)}
}

// Angle returns the direction of v in radians.
func Angle(v Vec2) float32 {
	return float32(math.Atan2(float64(v[1]), float64(v[0])))
}
