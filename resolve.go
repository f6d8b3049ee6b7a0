package tilegrid

import "math"

// ResolveTile converts a world point into a tile index:
//
//	x = floor(p.X / cellW), y = floor(p.Y / cellH)
//
// each clamped independently into [0, gridW-1] and [0, gridH-1]. Points
// outside the grid map to the nearest edge tile instead of being rejected,
// so every click inside the viewport names a real cell. NaN coordinates
// resolve to 0.
func ResolveTile(p Vec2, cellW, cellH float64, gridW, gridH int) (x, y int) {
	return resolveAxis(p.X, cellW, gridW), resolveAxis(p.Y, cellH, gridH)
}

func resolveAxis(v, cell float64, n int) int {
	if n <= 0 {
		return 0
	}
	// Clamp in float space first: converting an out-of-range float to int is
	// implementation-defined in Go.
	f := math.Floor(v / cell)
	if !(f >= 0) {
		return 0
	}
	if f > float64(n-1) {
		return n - 1
	}
	return int(f)
}
