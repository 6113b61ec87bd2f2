// Package tile describes the typed contents of one map cell and the wall
// catalog that turns a wall variant and rotation into collider rectangles.
package tile

import (
	"errors"
	"fmt"
)

// Size is the edge length of one tile in world units.
const Size float32 = 32

var (
	ErrUnknownRotation = errors.New("unknown tile rotation flags")
	ErrUnknownVariant  = errors.New("unknown tile variant")
	ErrEmptyTile       = errors.New("empty tile code")
)

// Rotation is one of four quarter-turn orientations.
type Rotation uint8

const (
	RotNone Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Next returns the orientation a quarter turn clockwise from r.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() float32 {
	return float32(r) * 90
}

func (r Rotation) String() string {
	switch r {
	case RotNone:
		return "0"
	case Rot90:
		return "90"
	case Rot180:
		return "180"
	case Rot270:
		return "270"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Packed tile codes keep the 1-based tileset index in the low bits and the
// flip flags in the top nibble.
const (
	flagShift = 28
	indexMask = 1<<flagShift - 1
)

// DecodeRotation maps the flag nibble of a packed code to a rotation.
func DecodeRotation(raw uint32) (Rotation, error) {
	switch raw >> flagShift {
	case 0x0:
		return RotNone, nil
	case 0x6:
		return Rot90, nil
	case 0xA:
		return Rot180, nil
	case 0xC:
		return Rot270, nil
	default:
		return 0, fmt.Errorf("%w: %#x", ErrUnknownRotation, raw>>flagShift)
	}
}

// Index returns the 1-based tileset index of a packed code.
func Index(raw uint32) uint32 {
	return raw & indexMask
}
