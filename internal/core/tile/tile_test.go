package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tds/internal/core/geometry"
)

func TestDecodeRotation(t *testing.T) {
	tests := []struct {
		raw  uint32
		want Rotation
	}{
		{0x00000003, RotNone},
		{0x60000003, Rot90},
		{0xA0000003, Rot180},
		{0xC0000003, Rot270},
	}
	for _, tt := range tests {
		got, err := DecodeRotation(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw %#x", tt.raw)
	}

	_, err := DecodeRotation(0x80000003)
	assert.ErrorIs(t, err, ErrUnknownRotation)
}

func TestDecodeWall(t *testing.T) {
	w, err := DecodeWall(0)
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = DecodeWall(0xA0000002)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, WallElbow, w.Variant)
	assert.Equal(t, Rot180, w.Rotation)

	_, err = DecodeWall(99)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = DecodeWall(0x30000001)
	assert.ErrorIs(t, err, ErrUnknownRotation)
}

func TestDecodeGround(t *testing.T) {
	g, err := DecodeGround(0x60000004)
	require.NoError(t, err)
	assert.Equal(t, GroundGrass, g.Variant)
	assert.Equal(t, Rot90, g.Rotation)

	_, err = DecodeGround(0)
	assert.ErrorIs(t, err, ErrEmptyTile)

	_, err = DecodeGround(0x60000000)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestRotationNextCycles(t *testing.T) {
	r := RotNone
	for i := 0; i < 4; i++ {
		r = r.Next()
	}
	assert.Equal(t, RotNone, r)
	assert.Equal(t, Rot270, Rot180.Next())
}

func TestCollider_StraightSitsOnEdge(t *testing.T) {
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 32, Height: 8}, Collider(WallStraight, RotNone).Rects[0])
	assert.Equal(t, geometry.Rect{X: 24, Y: 0, Width: 8, Height: 32}, Collider(WallStraight, Rot90).Rects[0])
	assert.Equal(t, geometry.Rect{X: 0, Y: 24, Width: 32, Height: 8}, Collider(WallStraight, Rot180).Rects[0])
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 8, Height: 32}, Collider(WallStraight, Rot270).Rects[0])
}

func TestCollider_ElbowIsTwoStraights(t *testing.T) {
	for r := RotNone; r <= Rot270; r++ {
		elbow := Collider(WallElbow, r)
		require.Len(t, elbow.Rects, 2)
		assert.Equal(t, Collider(WallStraight, r).Rects[0], elbow.Rects[0])
		assert.Equal(t, Collider(WallStraight, r.Next()).Rects[0], elbow.Rects[1])
	}
}

func TestCollider_InsideTile(t *testing.T) {
	tileBox := geometry.Rect{X: 0, Y: 0, Width: Size, Height: Size}
	for v := WallStraight; v < wallVariantCount; v++ {
		for r := RotNone; r <= Rot270; r++ {
			c := Wall{Variant: v, Rotation: r}.Collider()
			require.NotEmpty(t, c.Rects, "%s/%s", v, r)
			b := c.Bounds()
			assert.True(t, tileBox.Contains(geometry.Vec2{b.X, b.Y}), "%s/%s", v, r)
			assert.True(t, tileBox.Contains(geometry.Vec2{b.Right(), b.Bottom()}), "%s/%s", v, r)
		}
	}
}

func TestCollider_PillarIgnoresRotation(t *testing.T) {
	want := geometry.Rect{X: 8, Y: 8, Width: 16, Height: 16}
	for r := RotNone; r <= Rot270; r++ {
		assert.Equal(t, want, Collider(WallPillar, r).Rects[0])
	}
}
