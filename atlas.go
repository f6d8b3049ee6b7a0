package tilegrid

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Region is a sub-rectangle of an atlas page in texture pixels. It is a
// value type: the asset loader hands regions out and nothing mutates them.
type Region struct {
	Page          uint16 // index into the batch's page list
	X, Y          uint16 // top-left corner on the page
	Width, Height uint16
}

// Rect returns the region as an image.Rectangle on its page.
func (r Region) Rect() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Atlas holds atlas page images and a map of named regions.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]Region
}

// NewAtlas builds an atlas from already-known regions.
func NewAtlas(pages []*ebiten.Image, regions map[string]Region) *Atlas {
	m := make(map[string]Region, len(regions))
	for k, v := range regions {
		m[k] = v
	}
	return &Atlas{Pages: pages, regions: m}
}

// Region looks up a named region.
func (a *Atlas) Region(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns the region names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for n := range a.regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("tilegrid: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{Pages: pages, regions: make(map[string]Region)}

	switch {
	case probe.Textures != nil:
		var textures []struct {
			Image  string               `json:"image"`
			Frames map[string]jsonFrame `json:"frames"`
		}
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("tilegrid: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			for name, f := range tex.Frames {
				atlas.regions[name] = f.region(uint16(i))
			}
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("tilegrid: failed to parse atlas frames: %w", err)
		}
		for name, f := range frames {
			atlas.regions[name] = f.region(0)
		}
	default:
		return nil, fmt.Errorf("tilegrid: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonFrame struct {
	Frame struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"frame"`
}

func (f jsonFrame) region(page uint16) Region {
	return Region{
		Page:   page,
		X:      uint16(f.Frame.X),
		Y:      uint16(f.Frame.Y),
		Width:  uint16(f.Frame.W),
		Height: uint16(f.Frame.H),
	}
}

// RegionSet is the fixed set of regions the grid renderer draws with: one
// per tile kind plus the selection marker.
type RegionSet struct {
	Tiles  map[TileKind]Region
	Marker Region
}

// Tile returns the region for kind, or false when none is registered.
func (s RegionSet) Tile(kind TileKind) (Region, bool) {
	r, ok := s.Tiles[kind]
	return r, ok
}

// RegionNames maps atlas region names onto a RegionSet.
type RegionNames struct {
	Tiles  map[TileKind]string
	Marker string
}

// DefaultRegionNames are the frame names the bundled layout and example
// atlases use.
func DefaultRegionNames() RegionNames {
	return RegionNames{
		Tiles: map[TileKind]string{
			KindGrass: "grass",
			KindWater: "water",
			KindSand:  "sand",
			KindStone: "stone",
		},
		Marker: "selection",
	}
}

// RegionSet resolves names against the atlas. Every named region must exist.
func (a *Atlas) RegionSet(names RegionNames) (RegionSet, error) {
	set := RegionSet{Tiles: make(map[TileKind]Region, len(names.Tiles))}
	for kind, name := range names.Tiles {
		r, ok := a.regions[name]
		if !ok {
			return RegionSet{}, fmt.Errorf("tilegrid: atlas has no region %q for %v", name, kind)
		}
		set.Tiles[kind] = r
	}
	r, ok := a.regions[names.Marker]
	if !ok {
		return RegionSet{}, fmt.Errorf("tilegrid: atlas has no marker region %q", names.Marker)
	}
	set.Marker = r
	return set, nil
}

// SheetLayout places square cells on a single page in rows, each cell
// surrounded by a 1-pixel gutter so linear sampling never bleeds into a
// neighbour. Cell i sits at (1 + col*(size+2), 1 + row*(size+2)).
type SheetLayout struct {
	CellSize int
	Columns  int
	Names    []string // in cell order
}

// DefaultSheetLayout reproduces the classic two-row sheet: grass at
// (1,1), water at (23,1) and the selection marker at (1,23) for 20px cells.
func DefaultSheetLayout(cellSize int) SheetLayout {
	return SheetLayout{
		CellSize: cellSize,
		Columns:  4,
		Names:    []string{"grass", "water", "sand", "stone", "selection"},
	}
}

// Regions computes the region of every named cell.
func (l SheetLayout) Regions() map[string]Region {
	out := make(map[string]Region, len(l.Names))
	stride := l.CellSize + 2
	for i, name := range l.Names {
		col, row := i%l.Columns, i/l.Columns
		out[name] = Region{
			X:      uint16(1 + col*stride),
			Y:      uint16(1 + row*stride),
			Width:  uint16(l.CellSize),
			Height: uint16(l.CellSize),
		}
	}
	return out
}

// Size returns the page size the layout needs.
func (l SheetLayout) Size() (w, h int) {
	rows := (len(l.Names) + l.Columns - 1) / l.Columns
	stride := l.CellSize + 2
	return l.Columns * stride, rows * stride
}

// sheetColors are the flat fills GenerateSheet paints per cell name.
var sheetColors = map[string]color.RGBA{
	"grass": colornames.Forestgreen,
	"water": colornames.Royalblue,
	"sand":  colornames.Khaki,
	"stone": colornames.Slategray,
}

// GenerateSheet paints the layout into a new page so the demo runs without
// image assets. Tiles get a flat fill with a darker 1px border; the marker
// is a hollow yellow frame.
func GenerateSheet(l SheetLayout) *Atlas {
	w, h := l.Size()
	page := ebiten.NewImage(w, h)
	regions := l.Regions()
	for name, r := range regions {
		cell := page.SubImage(r.Rect()).(*ebiten.Image)
		fill, ok := sheetColors[name]
		if !ok {
			paintFrame(cell, r.Rect(), colornames.Gold, 2)
			continue
		}
		cell.Fill(fill)
		paintFrame(cell, r.Rect(), darken(fill), 1)
	}
	return NewAtlas([]*ebiten.Image{page}, regions)
}

func paintFrame(img *ebiten.Image, r image.Rectangle, c color.Color, t int) {
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		img.SubImage(e).(*ebiten.Image).Fill(c)
	}
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R * 3 / 4, G: c.G * 3 / 4, B: c.B * 3 / 4, A: c.A}
}
