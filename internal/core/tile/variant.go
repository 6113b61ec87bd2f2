package tile

import "fmt"

// WallVariant enumerates wall shapes. Values follow the wall tileset order.
type WallVariant uint8

const (
	WallStraight WallVariant = iota
	WallElbow
	WallPillar
	WallCenter
	WallBlock
	wallVariantCount
)

var wallNames = [...]string{"straight", "elbow", "pillar", "center", "block"}

func (v WallVariant) String() string {
	if v < wallVariantCount {
		return wallNames[v]
	}
	return fmt.Sprintf("WallVariant(%d)", uint8(v))
}

// GroundVariant enumerates floor tiles. Ground has no collider; the variant
// only selects a sprite.
type GroundVariant uint8

const (
	GroundConcrete GroundVariant = iota
	GroundTiles
	GroundWood
	GroundGrass
	GroundDirt
	GroundGravel
	GroundWater
	GroundCarpet
	groundVariantCount
)

// Wall is a collidable wall cell.
type Wall struct {
	Variant  WallVariant
	Rotation Rotation
	Raw      uint32
}

// Ground is a floor cell.
type Ground struct {
	Variant  GroundVariant
	Rotation Rotation
	Raw      uint32
}

// DecodeWall turns a packed wall-layer code into a Wall. A zero code means no
// wall and returns nil without error.
func DecodeWall(raw uint32) (*Wall, error) {
	if raw == 0 {
		return nil, nil
	}
	rot, err := DecodeRotation(raw)
	if err != nil {
		return nil, err
	}
	idx := Index(raw)
	if idx == 0 || idx > uint32(wallVariantCount) {
		return nil, fmt.Errorf("%w: wall index %d", ErrUnknownVariant, idx)
	}
	return &Wall{Variant: WallVariant(idx - 1), Rotation: rot, Raw: raw}, nil
}

// DecodeGround turns a packed ground-layer code into a Ground. Every ground
// cell must carry a tile.
func DecodeGround(raw uint32) (Ground, error) {
	if raw == 0 {
		return Ground{}, ErrEmptyTile
	}
	rot, err := DecodeRotation(raw)
	if err != nil {
		return Ground{}, err
	}
	idx := Index(raw)
	if idx == 0 || idx > uint32(groundVariantCount) {
		return Ground{}, fmt.Errorf("%w: ground index %d", ErrUnknownVariant, idx)
	}
	return Ground{Variant: GroundVariant(idx - 1), Rotation: rot, Raw: raw}, nil
}
