package tilegrid

import (
	"fmt"
	"strings"
)

// TileKind is the terrain stored in a grid cell.
type TileKind uint8

const (
	KindGrass TileKind = iota
	KindWater
	KindSand
	KindStone
)

var kindNames = [...]string{
	KindGrass: "grass",
	KindWater: "water",
	KindSand:  "sand",
	KindStone: "stone",
}

var kindGlyphs = [...]byte{
	KindGrass: '.',
	KindWater: '~',
	KindSand:  ':',
	KindStone: '#',
}

func (k TileKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Glyph returns the single-character form used by Grid.Snapshot.
func (k TileKind) Glyph() byte {
	if int(k) < len(kindGlyphs) {
		return kindGlyphs[k]
	}
	return '?'
}

// ParseTileKind is the inverse of TileKind.String.
func ParseTileKind(s string) (TileKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return TileKind(k), true
		}
	}
	return 0, false
}

// Flipped returns the kind a secondary-button mutation turns k into.
// Grass and water swap, as do sand and stone; unknown kinds stay put.
func (k TileKind) Flipped() TileKind {
	switch k {
	case KindGrass:
		return KindWater
	case KindWater:
		return KindGrass
	case KindSand:
		return KindStone
	case KindStone:
		return KindSand
	default:
		return k
	}
}

// Initializer decides the kind of cell (x, y). It is called exactly once per
// cell by NewGrid and Grid.Reset, in row-major order starting at (0,0).
type Initializer func(x, y int) TileKind

// Grid is a fixed-size rectangle of tiles. Cell (0,0) sits at the world
// origin (bottom-left) and every cell covers CellSize world units.
// Width and height never change after NewGrid.
type Grid struct {
	width, height int
	cellW, cellH  float64
	cells         []TileKind // row-major, len = width * height
}

// NewGrid allocates a width x height grid with the given cell size and fills
// it with init.
func NewGrid(width, height int, cellW, cellH float64, init Initializer) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, configError("grid size", float64(width), float64(height))
	}
	if !(cellW > 0) || !(cellH > 0) {
		return nil, configError("cell size", cellW, cellH)
	}
	g := &Grid{
		width:  width,
		height: height,
		cellW:  cellW,
		cellH:  cellH,
		cells:  make([]TileKind, width*height),
	}
	g.Reset(init)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the world size of one tile.
func (g *Grid) CellSize() (w, h float64) { return g.cellW, g.cellH }

// InBounds reports whether (x, y) names a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return &OutOfRangeError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return nil
}

// Get returns the kind of cell (x, y).
func (g *Grid) Get(x, y int) (TileKind, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return g.cells[y*g.width+x], nil
}

// Set replaces the kind of cell (x, y).
func (g *Grid) Set(x, y int, kind TileKind) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[y*g.width+x] = kind
	return nil
}

// Flip replaces cell (x, y) with its Flipped kind and returns the new kind.
func (g *Grid) Flip(x, y int) (TileKind, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	i := y*g.width + x
	g.cells[i] = g.cells[i].Flipped()
	return g.cells[i], nil
}

// Reset re-runs init over every cell in place. A nil init fills the grid
// with KindGrass. The backing storage is reused.
func (g *Grid) Reset(init Initializer) {
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			if init == nil {
				g.cells[row+x] = KindGrass
				continue
			}
			g.cells[row+x] = init(x, y)
		}
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, kind TileKind)) {
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[row+x])
		}
	}
}

// Count returns how many cells hold kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, k := range g.cells {
		if k == kind {
			n++
		}
	}
	return n
}

// TileOrigin returns the world position of the bottom-left corner of cell
// (x, y). It does not bounds-check.
func (g *Grid) TileOrigin(x, y int) Vec2 {
	return Vec2{X: float64(x) * g.cellW, Y: float64(y) * g.cellH}
}

// TileCenter returns the world position of the center of cell (x, y).
func (g *Grid) TileCenter(x, y int) Vec2 {
	o := g.TileOrigin(x, y)
	return Vec2{X: o.X + g.cellW/2, Y: o.Y + g.cellH/2}
}

// Bounds returns the world rectangle the grid covers.
func (g *Grid) Bounds() Rect {
	return Rect{Width: float64(g.width) * g.cellW, Height: float64(g.height) * g.cellH}
}

// Resolve maps a world point to the nearest cell. See ResolveTile.
func (g *Grid) Resolve(world Vec2) (x, y int) {
	return ResolveTile(world, g.cellW, g.cellH, g.width, g.height)
}

// Snapshot renders the grid as text, one line per row with the highest row
// first so the output reads the way the grid is drawn on screen.
func (g *Grid) Snapshot() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := g.height - 1; y >= 0; y-- {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			b.WriteByte(g.cells[row+x].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
