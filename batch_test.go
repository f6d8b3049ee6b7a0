package tilegrid

import (
	"testing"
)

func TestSpriteBatchQuadCorners(t *testing.T) {
	v, _ := NewViewport(WorldExtent{Width: 320, Height: 180})
	_ = v.Refresh(640, 360)

	b := NewSpriteBatch(nil, nil)
	b.BeginBatch()
	b.SetProjection(v.Combined())
	b.DrawRegion(Region{X: 23, Y: 1, Width: 20, Height: 20}, 0, 160)

	if len(b.verts) != 4 || len(b.inds) != 6 {
		t.Fatalf("verts=%d inds=%d, want 4/6", len(b.verts), len(b.inds))
	}
	// Tile (0,8) spans world x 0..20, y 160..180 -> device x 0..40, y 0..40.
	want := [4][2]float32{{0, 0}, {40, 0}, {0, 40}, {40, 40}}
	for i, w := range want {
		if !approxEqual(float64(b.verts[i].DstX), float64(w[0]), 1e-4) ||
			!approxEqual(float64(b.verts[i].DstY), float64(w[1]), 1e-4) {
			t.Errorf("vertex %d = (%v,%v), want %v", i, b.verts[i].DstX, b.verts[i].DstY, w)
		}
	}
	src := [4][2]float32{{23, 1}, {43, 1}, {23, 21}, {43, 21}}
	for i, s := range src {
		if b.verts[i].SrcX != s[0] || b.verts[i].SrcY != s[1] {
			t.Errorf("src %d = (%v,%v), want %v", i, b.verts[i].SrcX, b.verts[i].SrcY, s)
		}
	}
	b.EndBatch()
	if len(b.verts) != 0 {
		t.Error("EndBatch left vertices queued")
	}
}

func TestSpriteBatchTintPremultiplied(t *testing.T) {
	b := NewSpriteBatch(nil, nil)
	b.BeginBatch()
	b.SetTint(Color{R: 1, G: 0.5, B: 0, A: 0.5})
	b.DrawRegion(Region{Width: 1, Height: 1}, 0, 0)
	vx := b.verts[0]
	if vx.ColorR != 0.5 || vx.ColorG != 0.25 || vx.ColorB != 0 || vx.ColorA != 0.5 {
		t.Errorf("color = (%v,%v,%v,%v)", vx.ColorR, vx.ColorG, vx.ColorB, vx.ColorA)
	}
	b.EndBatch()

	// BeginBatch restores white.
	b.BeginBatch()
	b.DrawRegion(Region{Width: 1, Height: 1}, 0, 0)
	if b.verts[0].ColorA != 1 || b.verts[0].ColorR != 1 {
		t.Error("tint survived BeginBatch")
	}
	b.EndBatch()
}

func TestSpriteBatchFlushesOnPageChange(t *testing.T) {
	b := NewSpriteBatch(nil, nil)
	b.BeginBatch()
	for i := 0; i < 10; i++ {
		b.DrawRegion(Region{Width: 20, Height: 20}, float64(i*20), 0)
	}
	b.DrawRegion(Region{Page: 1, Width: 20, Height: 20}, 0, 20)
	b.DrawRegion(Region{Page: 1, Width: 20, Height: 20}, 20, 20)
	b.DrawRegion(Region{Width: 20, Height: 20}, 40, 20)
	b.EndBatch()

	st := b.Stats()
	if st.Regions != 13 {
		t.Errorf("Regions = %d, want 13", st.Regions)
	}
	if st.Flushes != 3 {
		t.Errorf("Flushes = %d, want 3", st.Flushes)
	}
}

func TestSpriteBatchSkipsEmptyRegions(t *testing.T) {
	b := NewSpriteBatch(nil, nil)
	b.BeginBatch()
	b.DrawRegion(Region{}, 0, 0)
	if len(b.verts) != 0 {
		t.Error("empty region produced vertices")
	}
	b.EndBatch()
	if st := b.Stats(); st.Regions != 1 || st.Flushes != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestSpriteBatchMisusePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *SpriteBatch)
	}{
		{"draw outside", func(b *SpriteBatch) { b.DrawRegion(Region{Width: 1, Height: 1}, 0, 0) }},
		{"end without begin", func(b *SpriteBatch) { b.EndBatch() }},
		{"double begin", func(b *SpriteBatch) { b.BeginBatch(); b.BeginBatch() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewSpriteBatch(nil, nil))
		})
	}
}

func BenchmarkSpriteBatchGrid(b *testing.B) {
	sb := NewSpriteBatch(nil, nil)
	r := Region{X: 1, Y: 1, Width: 20, Height: 20}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sb.BeginBatch()
		for y := 0; y < 9; y++ {
			for x := 0; x < 16; x++ {
				sb.DrawRegion(r, float64(x*20), float64(y*20))
			}
		}
		sb.EndBatch()
	}
}
