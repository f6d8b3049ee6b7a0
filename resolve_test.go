package tilegrid

import (
	"math"
	"testing"
)

func TestResolveTileCenters(t *testing.T) {
	const c = 20.0
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			p := Vec2{X: float64(x)*c + c/2, Y: float64(y)*c + c/2}
			gx, gy := ResolveTile(p, c, c, 16, 9)
			if gx != x || gy != y {
				t.Errorf("ResolveTile(%v) = (%d,%d), want (%d,%d)", p, gx, gy, x, y)
			}
		}
	}
}

func TestResolveTileCellEdges(t *testing.T) {
	tests := []struct {
		p      Vec2
		wx, wy int
	}{
		{Vec2{0, 0}, 0, 0},
		{Vec2{19.999, 19.999}, 0, 0},
		{Vec2{20, 20}, 1, 1},
		{Vec2{319.9, 179.9}, 15, 8},
	}
	for _, tt := range tests {
		x, y := ResolveTile(tt.p, 20, 20, 16, 9)
		if x != tt.wx || y != tt.wy {
			t.Errorf("ResolveTile(%v) = (%d,%d), want (%d,%d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestResolveTileClampsAllEdges(t *testing.T) {
	offsets := []float64{0.001, 1, 19, 20, 21, 500, 1e6, 1e300, math.Inf(1)}
	for _, d := range offsets {
		tests := []struct {
			name   string
			p      Vec2
			wx, wy int
		}{
			{"left", Vec2{-d, 90}, 0, 4},
			{"right", Vec2{320 + d, 90}, 15, 4},
			{"bottom", Vec2{160, -d}, 8, 0},
			{"top", Vec2{160, 180 + d}, 8, 8},
			{"bottom-left", Vec2{-d, -d}, 0, 0},
			{"top-right", Vec2{320 + d, 180 + d}, 15, 8},
		}
		for _, tt := range tests {
			x, y := ResolveTile(tt.p, 20, 20, 16, 9)
			if x != tt.wx || y != tt.wy {
				t.Errorf("%s offset %g: ResolveTile(%v) = (%d,%d), want (%d,%d)", tt.name, d, tt.p, x, y, tt.wx, tt.wy)
			}
			if x < 0 || x > 15 || y < 0 || y > 8 {
				t.Errorf("%s offset %g: (%d,%d) out of range", tt.name, d, x, y)
			}
		}
	}
}

func TestResolveTileNaN(t *testing.T) {
	x, y := ResolveTile(Vec2{X: math.NaN(), Y: math.NaN()}, 20, 20, 16, 9)
	if x != 0 || y != 0 {
		t.Errorf("NaN resolved to (%d,%d), want (0,0)", x, y)
	}
}

func TestResolveTileNonSquareCells(t *testing.T) {
	x, y := ResolveTile(Vec2{X: 45, Y: 45}, 10, 30, 8, 8)
	if x != 4 || y != 1 {
		t.Errorf("ResolveTile = (%d,%d), want (4,1)", x, y)
	}
}

func TestGridResolve(t *testing.T) {
	g, _ := NewGrid(16, 9, 20, 20, nil)
	x, y := g.Resolve(Vec2{X: 15, Y: 160})
	if x != 0 || y != 8 {
		t.Errorf("Resolve = (%d,%d), want (0,8)", x, y)
	}
}
