package tilegrid

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer is the draw surface the grid pass talks to. Regions are placed by
// their bottom-left corner in world units; the projection maps world space
// to the target.
type Renderer interface {
	BeginBatch()
	SetProjection(m Matrix)
	DrawRegion(r Region, worldX, worldY float64)
	EndBatch()
}

// Tinter is implemented by renderers that can modulate subsequent regions.
type Tinter interface {
	SetTint(c Color)
}

// BatchStats counts the work done by the last Begin/End pair.
type BatchStats struct {
	Regions int // DrawRegion calls
	Flushes int // DrawTriangles32 submissions
}

// SpriteBatch is an ebiten Renderer that coalesces consecutive regions on
// the same atlas page into a single DrawTriangles32 call.
type SpriteBatch struct {
	// Target receives the triangles. A nil target discards them.
	Target *ebiten.Image
	// Pages are the atlas page images indexed by Region.Page.
	Pages []*ebiten.Image

	projection Matrix
	tint       Color
	drawing    bool
	page       uint16

	verts []ebiten.Vertex
	inds  []uint32
	stats BatchStats
}

// NewSpriteBatch creates a batch drawing atlas pages onto target.
func NewSpriteBatch(target *ebiten.Image, atlas *Atlas) *SpriteBatch {
	b := &SpriteBatch{Target: target, projection: Identity, tint: ColorWhite}
	if atlas != nil {
		b.Pages = atlas.Pages
	}
	return b
}

// BeginBatch starts collecting regions and resets the tint and stats.
func (b *SpriteBatch) BeginBatch() {
	if b.drawing {
		panic("tilegrid: BeginBatch called twice without EndBatch")
	}
	b.drawing = true
	b.tint = ColorWhite
	b.stats = BatchStats{}
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// SetProjection sets the world-to-target matrix for subsequent regions.
// Regions already queued keep the projection they were added with.
func (b *SpriteBatch) SetProjection(m Matrix) {
	b.projection = m
}

// Projection returns the current world-to-target matrix.
func (b *SpriteBatch) Projection() Matrix {
	return b.projection
}

// SetTint sets the color applied to subsequent regions.
func (b *SpriteBatch) SetTint(c Color) {
	b.tint = c
}

// DrawRegion queues r with its bottom-left corner at (worldX, worldY).
func (b *SpriteBatch) DrawRegion(r Region, worldX, worldY float64) {
	if !b.drawing {
		panic("tilegrid: DrawRegion called outside BeginBatch")
	}
	b.stats.Regions++
	if r.Empty() {
		return
	}
	if len(b.verts) > 0 && r.Page != b.page {
		b.flush()
	}
	b.page = r.Page
	b.appendQuad(r, worldX, worldY)
}

// EndBatch submits whatever is queued.
func (b *SpriteBatch) EndBatch() {
	if !b.drawing {
		panic("tilegrid: EndBatch called without BeginBatch")
	}
	b.flush()
	b.drawing = false
}

// Stats returns the counters for the current or most recent batch.
func (b *SpriteBatch) Stats() BatchStats {
	return b.stats
}

// appendQuad appends 4 vertices and 6 indices. World space is y-up, so the
// texture's top edge sits at worldY+h.
func (b *SpriteBatch) appendQuad(r Region, wx, wy float64) {
	w, h := float64(r.Width), float64(r.Height)

	// TL, TR, BL, BR
	lx := [4]float64{wx, wx + w, wx, wx + w}
	ly := [4]float64{wy + h, wy + h, wy, wy}

	rx, ry := float32(r.X), float32(r.Y)
	rw, rh := float32(r.Width), float32(r.Height)
	sx := [4]float32{rx, rx + rw, rx, rx + rw}
	sy := [4]float32{ry, ry, ry + rh, ry + rh}

	// Premultiplied.
	ca := float32(b.tint.A)
	cr := float32(b.tint.R) * ca
	cg := float32(b.tint.G) * ca
	cb := float32(b.tint.B) * ca

	m := &b.projection
	base := uint32(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(m[0]*lx[i] + m[2]*ly[i] + m[4]),
			DstY:   float32(m[1]*lx[i] + m[3]*ly[i] + m[5]),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits queued vertices as a single DrawTriangles32 call.
func (b *SpriteBatch) flush() {
	if len(b.verts) == 0 {
		return
	}
	b.stats.Flushes++

	var page *ebiten.Image
	if int(b.page) < len(b.Pages) {
		page = b.Pages[b.page]
	}
	if b.Target != nil && page != nil {
		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		b.Target.DrawTriangles32(b.verts, b.inds, page, &op)
	}

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}
