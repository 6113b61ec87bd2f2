package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gonutz/tiled"
)

// Layer names looked up in TMX files. Without them the first two tile layers
// are taken as ground and walls.
const (
	GroundLayer = "ground"
	WallLayer   = "walls"
)

// Line layout of a CSV-encoded Tiled export read without an XML parser: six
// header lines before the ground rows and four separator lines before the
// wall rows.
const (
	rawHeaderLines = 6
	rawLayerGap    = 4
)

// LoadFile loads a level from disk. Files ending in .tmx are decoded as Tiled
// maps; anything else is read as a raw line-oriented block of width x height
// cells per layer.
func LoadFile(path string, width, height int) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %q: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		return LoadTMX(f)
	}
	return LoadRaw(f, width, height)
}

// LoadTMX decodes a Tiled map whose tile layers use CSV encoding.
func LoadTMX(r io.Reader) (*Grid, error) {
	m, err := tiled.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode tmx: %w", ErrMalformedMap, err)
	}

	groundIdx, wallIdx := -1, -1
	for i := range m.Layers {
		switch m.Layers[i].Name {
		case GroundLayer:
			groundIdx = i
		case WallLayer:
			wallIdx = i
		}
	}
	if groundIdx < 0 || wallIdx < 0 {
		if len(m.Layers) < 2 {
			return nil, fmt.Errorf("%w: need ground and wall layers, found %d", ErrMalformedMap, len(m.Layers))
		}
		groundIdx, wallIdx = 0, 1
	}

	ground, err := parseRows(strings.Split(strings.TrimSpace(m.Layers[groundIdx].Data.Text), "\n"), m.Width)
	if err != nil {
		return nil, fmt.Errorf("ground layer: %w", err)
	}
	walls, err := parseRows(strings.Split(strings.TrimSpace(m.Layers[wallIdx].Data.Text), "\n"), m.Width)
	if err != nil {
		return nil, fmt.Errorf("wall layer: %w", err)
	}
	if len(ground) != m.Height {
		return nil, fmt.Errorf("%w: map declares %d rows, ground layer has %d", ErrMalformedMap, m.Height, len(ground))
	}

	return New(ground, walls)
}

// LoadRaw reads the ground block and then the wall block of a CSV tile map,
// skipping the fixed header and separator lines around them.
func LoadRaw(r io.Reader, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrMalformedMap, width, height)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if err := skipLines(sc, rawHeaderLines); err != nil {
		return nil, err
	}
	groundLines, err := readLines(sc, height)
	if err != nil {
		return nil, fmt.Errorf("ground layer: %w", err)
	}
	if err = skipLines(sc, rawLayerGap); err != nil {
		return nil, err
	}
	wallLines, err := readLines(sc, height)
	if err != nil {
		return nil, fmt.Errorf("wall layer: %w", err)
	}

	ground, err := parseRows(groundLines, width)
	if err != nil {
		return nil, fmt.Errorf("ground layer: %w", err)
	}
	walls, err := parseRows(wallLines, width)
	if err != nil {
		return nil, fmt.Errorf("wall layer: %w", err)
	}

	return New(ground, walls)
}

func skipLines(sc *bufio.Scanner, n int) error {
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return unexpectedEnd(sc)
		}
	}
	return nil
}

func readLines(sc *bufio.Scanner, n int) ([]string, error) {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, unexpectedEnd(sc)
		}
		lines = append(lines, sc.Text())
	}
	return lines, nil
}

func unexpectedEnd(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	return fmt.Errorf("%w: unexpected end of file", ErrMalformedMap)
}

// parseRows splits comma separated rows of packed codes. Empty fields from
// trailing commas are dropped.
func parseRows(lines []string, width int) ([][]uint32, error) {
	rows := make([][]uint32, 0, len(lines))
	for y, line := range lines {
		line = strings.TrimRight(line, "\r")
		row := make([]uint32, 0, width)
		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %q is not a tile code", ErrMalformedMap, y, field)
			}
			row = append(row, uint32(v))
		}
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedMap, y, len(row), width)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
