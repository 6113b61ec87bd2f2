package tile

import "github.com/zeusync/tds/internal/core/geometry"

// wallThickness is the depth of a straight wall strip.
const wallThickness float32 = 8

// straight holds one literal strip per orientation: top, right, bottom, left.
var straight = [4]geometry.Rect{
	RotNone: {X: 0, Y: 0, Width: Size, Height: wallThickness},
	Rot90:   {X: Size - wallThickness, Y: 0, Width: wallThickness, Height: Size},
	Rot180:  {X: 0, Y: Size - wallThickness, Width: Size, Height: wallThickness},
	Rot270:  {X: 0, Y: 0, Width: wallThickness, Height: Size},
}

// center holds a strip through the middle of the tile, horizontal or vertical.
var center = [4]geometry.Rect{
	RotNone: {X: 0, Y: (Size - wallThickness) / 2, Width: Size, Height: wallThickness},
	Rot90:   {X: (Size - wallThickness) / 2, Y: 0, Width: wallThickness, Height: Size},
	Rot180:  {X: 0, Y: (Size - wallThickness) / 2, Width: Size, Height: wallThickness},
	Rot270:  {X: (Size - wallThickness) / 2, Y: 0, Width: wallThickness, Height: Size},
}

var pillar = geometry.Rect{X: Size / 4, Y: Size / 4, Width: Size / 2, Height: Size / 2}

var block = geometry.Rect{X: 0, Y: 0, Width: Size, Height: Size}

// Collider returns the local collider of a wall variant in unrotated
// 32x32 tile space. Elbows are the straight strip of r joined with the strip
// of the next orientation.
func Collider(v WallVariant, r Rotation) geometry.Collider {
	r %= 4
	switch v {
	case WallStraight:
		return geometry.NewCollider(straight[r])
	case WallElbow:
		return geometry.NewCollider(straight[r], straight[r.Next()])
	case WallPillar:
		return geometry.NewCollider(pillar)
	case WallCenter:
		return geometry.NewCollider(center[r])
	case WallBlock:
		return geometry.NewCollider(block)
	default:
		return geometry.Collider{}
	}
}

// Collider returns the wall's collider in local tile space.
func (w Wall) Collider() geometry.Collider {
	return Collider(w.Variant, w.Rotation)
}
