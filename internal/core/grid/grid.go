// Package grid holds the immutable world grid of a level: a ground layer that
// only matters for rendering and a sparse wall layer that carries colliders.
package grid

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/tile"
)

// TileSize is the world-space edge length of one cell.
const TileSize = tile.Size

var (
	ErrMalformedMap = errors.New("malformed map")
	ErrEmptyMap     = errors.New("map has no cells")
)

// Grid is a row-major height x width array of cells. It is built once at load
// time and never mutated.
type Grid struct {
	width  int
	height int
	ground [][]tile.Ground
	walls  [][]*tile.Wall
}

// New decodes packed ground and wall codes into a grid. Both layers must be
// height rows of the same width.
func New(groundCodes, wallCodes [][]uint32) (*Grid, error) {
	height := len(groundCodes)
	if height == 0 || len(groundCodes[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(groundCodes[0])
	if len(wallCodes) != height {
		return nil, fmt.Errorf("%w: ground has %d rows, walls have %d", ErrMalformedMap, height, len(wallCodes))
	}

	g := &Grid{
		width:  width,
		height: height,
		ground: make([][]tile.Ground, height),
		walls:  make([][]*tile.Wall, height),
	}

	for y := 0; y < height; y++ {
		if len(groundCodes[y]) != width || len(wallCodes[y]) != width {
			return nil, fmt.Errorf("%w: row %d width mismatch (want %d, ground %d, walls %d)",
				ErrMalformedMap, y, width, len(groundCodes[y]), len(wallCodes[y]))
		}
		g.ground[y] = make([]tile.Ground, width)
		g.walls[y] = make([]*tile.Wall, width)
		for x := 0; x < width; x++ {
			ground, err := tile.DecodeGround(groundCodes[y][x])
			if err != nil {
				return nil, fmt.Errorf("%w: ground (%d,%d): %w", ErrMalformedMap, x, y, err)
			}
			g.ground[y][x] = ground

			wall, err := tile.DecodeWall(wallCodes[y][x])
			if err != nil {
				return nil, fmt.Errorf("%w: wall (%d,%d): %w", ErrMalformedMap, x, y, err)
			}
			g.walls[y][x] = wall
		}
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Bounds returns the world-space area covered by the grid.
func (g *Grid) Bounds() geometry.Rect {
	return geometry.Rect{Width: float32(g.width) * TileSize, Height: float32(g.height) * TileSize}
}

// Ground returns the floor tile at (x, y).
func (g *Grid) Ground(x, y int) (tile.Ground, bool) {
	if !g.inside(x, y) {
		return tile.Ground{}, false
	}
	return g.ground[y][x], true
}

// Wall returns the wall at (x, y), if any.
func (g *Grid) Wall(x, y int) (tile.Wall, bool) {
	if !g.inside(x, y) || g.walls[y][x] == nil {
		return tile.Wall{}, false
	}
	return *g.walls[y][x], true
}

// WallCount returns the number of populated wall cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, row := range g.walls {
		for _, w := range row {
			if w != nil {
				n++
			}
		}
	}
	return n
}

// WallColliderAt returns the catalog collider of the wall at (x, y) moved into
// world space.
func (g *Grid) WallColliderAt(x, y int) (geometry.Collider, bool) {
	w, ok := g.Wall(x, y)
	if !ok {
		return geometry.Collider{}, false
	}
	return w.Collider().Translate(cellOrigin(x, y)), true
}

// CollidesWithWall scans every wall cell and returns the first overlap with c.
func (g *Grid) CollidesWithWall(c geometry.Collider) (geometry.Rect, bool) {
	for y, row := range g.walls {
		for x, w := range row {
			if w == nil {
				continue
			}
			if hit, ok := w.Collider().Translate(cellOrigin(x, y)).Overlaps(c); ok {
				return hit, true
			}
		}
	}
	return geometry.Rect{}, false
}

// EachWallRect calls fn for every world-space wall rectangle in row-major
// order until fn returns false.
func (g *Grid) EachWallRect(fn func(x, y int, r geometry.Rect) bool) {
	for y, row := range g.walls {
		for x, w := range row {
			if w == nil {
				continue
			}
			origin := cellOrigin(x, y)
			for _, r := range w.Collider().Rects {
				if !fn(x, y, r.Translate(origin)) {
					return
				}
			}
		}
	}
}

// Fingerprint hashes the raw layer codes. Two grids loaded from the same data
// share a fingerprint.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(g.width))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], uint32(g.height))
	_, _ = d.Write(buf[:])
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			binary.LittleEndian.PutUint32(buf[:], g.ground[y][x].Raw)
			_, _ = d.Write(buf[:])
			var raw uint32
			if w := g.walls[y][x]; w != nil {
				raw = w.Raw
			}
			binary.LittleEndian.PutUint32(buf[:], raw)
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// CellAt returns the grid coordinates containing the world point p.
func (g *Grid) CellAt(p geometry.Vec2) (x, y int, ok bool) {
	if p[0] < 0 || p[1] < 0 {
		return 0, 0, false
	}
	x, y = int(p[0]/TileSize), int(p[1]/TileSize)
	return x, y, g.inside(x, y)
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func cellOrigin(x, y int) geometry.Vec2 {
	return geometry.Vec2{float32(x) * TileSize, float32(y) * TileSize}
}
