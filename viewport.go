package tilegrid

import "math"

// WorldExtent is the fixed logical size the scene is authored against,
// independent of the window's pixel size.
type WorldExtent struct {
	Width, Height float64
}

// Validate returns a *ConfigurationError unless both dimensions are positive.
func (e WorldExtent) Validate() error {
	if !(e.Width > 0) || !(e.Height > 0) {
		return configError("world extent", e.Width, e.Height)
	}
	return nil
}

// Center returns the midpoint of the extent in world space.
func (e WorldExtent) Center() Vec2 {
	return Vec2{X: e.Width / 2, Y: e.Height / 2}
}

// Viewport fits a WorldExtent into the window while preserving its aspect
// ratio and owns the orthographic camera looking at it. World space is y-up
// with the origin at the bottom-left; device space is y-down with the origin
// at the window's top-left.
//
// Refresh must run once per frame, before drawing or unprojecting, with the
// current window size. Between refreshes the transform is stable.
type Viewport struct {
	extent WorldExtent
	camera Vec2

	windowW, windowH int

	// screen is the letterboxed rectangle in device pixels.
	screen         Rect
	scaleX, scaleY float64

	combined Matrix // world -> device pixels
	inverse  Matrix // device pixels -> world
}

// NewViewport configures a viewport for extent and primes it as if the
// window were exactly the extent's size, so it is usable before the first
// Refresh.
func NewViewport(extent WorldExtent) (*Viewport, error) {
	v := &Viewport{}
	if err := v.Configure(extent); err != nil {
		return nil, err
	}
	w := int(math.Ceil(extent.Width))
	h := int(math.Ceil(extent.Height))
	if err := v.Refresh(w, h); err != nil {
		return nil, err
	}
	return v, nil
}

// Configure stores the world extent and recenters the camera on it.
// The screen rectangle is not recomputed until the next Refresh.
func (v *Viewport) Configure(extent WorldExtent) error {
	if err := extent.Validate(); err != nil {
		return err
	}
	v.extent = extent
	v.camera = extent.Center()
	if v.windowW > 0 && v.windowH > 0 {
		return v.Refresh(v.windowW, v.windowH)
	}
	return nil
}

// Refresh recomputes the fit rectangle and the camera transform for a window
// of the given pixel size. The scale is min(w/worldW, h/worldH); the scaled
// rectangle is rounded to whole pixels and centered, leaving the remainder
// blank. Rounding can leave the X and Y scales differing by a sub-pixel
// amount on odd window sizes. Refresh does not allocate.
func (v *Viewport) Refresh(windowW, windowH int) error {
	if !(v.extent.Width > 0 && v.extent.Height > 0) {
		return configError("world extent", v.extent.Width, v.extent.Height)
	}
	if windowW <= 0 || windowH <= 0 {
		return configError("window size", float64(windowW), float64(windowH))
	}
	v.windowW, v.windowH = windowW, windowH

	ww, wh := float64(windowW), float64(windowH)
	scale := math.Min(ww/v.extent.Width, wh/v.extent.Height)

	vw := math.Max(1, math.Round(v.extent.Width*scale))
	vh := math.Max(1, math.Round(v.extent.Height*scale))
	v.screen = Rect{
		X:      math.Floor((ww - vw) / 2),
		Y:      math.Floor((wh - vh) / 2),
		Width:  vw,
		Height: vh,
	}
	v.scaleX = vw / v.extent.Width
	v.scaleY = vh / v.extent.Height

	v.updateMatrices()
	return nil
}

// updateMatrices rebuilds the combined transform from the screen rectangle
// and camera position:
//
//	combined = Translate(screen center) * Scale(sx, -sy) * Translate(-camera)
func (v *Viewport) updateMatrices() {
	c := v.screen.Center()
	v.combined = Matrix{
		v.scaleX, 0,
		0, -v.scaleY,
		c.X - v.camera.X*v.scaleX,
		c.Y + v.camera.Y*v.scaleY,
	}
	v.inverse = v.combined.Invert()
}

// Unproject maps a device pixel point to world space. Points outside the
// screen rectangle extrapolate linearly; they are not clamped here.
func (v *Viewport) Unproject(device Vec2) Vec2 {
	x, y := v.inverse.Apply(device.X, device.Y)
	return Vec2{X: x, Y: y}
}

// Project maps a world point to device pixels.
func (v *Viewport) Project(world Vec2) Vec2 {
	x, y := v.combined.Apply(world.X, world.Y)
	return Vec2{X: x, Y: y}
}

// Combined returns the world-to-device-pixel transform. This is the matrix
// renderers drawing into an ebiten.Image expect.
func (v *Viewport) Combined() Matrix {
	return v.combined
}

// Clip returns the world-to-clip-space transform (x and y in [-1, 1], y-up)
// for renderers that work in normalized device coordinates.
func (v *Viewport) Clip() Matrix {
	toClip := Matrix{
		2 / float64(v.windowW), 0,
		0, -2 / float64(v.windowH),
		-1, 1,
	}
	return toClip.Mul(v.combined)
}

// ScreenRect returns the letterboxed rectangle in device pixels.
func (v *Viewport) ScreenRect() Rect {
	return v.screen
}

// Scale returns the device pixels per world unit on each axis.
func (v *Viewport) Scale() (sx, sy float64) {
	return v.scaleX, v.scaleY
}

// Extent returns the configured world extent.
func (v *Viewport) Extent() WorldExtent {
	return v.extent
}

// WindowSize returns the window size passed to the last Refresh.
func (v *Viewport) WindowSize() (w, h int) {
	return v.windowW, v.windowH
}

// Camera returns the world point the camera is centered on.
func (v *Viewport) Camera() Vec2 {
	return v.camera
}

// SetCamera moves the camera to the given world point.
func (v *Viewport) SetCamera(x, y float64) {
	v.camera = Vec2{X: x, Y: y}
	v.updateMatrices()
}

// CenterCamera moves the camera back to the center of the world extent.
func (v *Viewport) CenterCamera() {
	c := v.extent.Center()
	v.SetCamera(c.X, c.Y)
}

// VisibleBounds returns the world-space rectangle covered by the screen
// rectangle.
func (v *Viewport) VisibleBounds() Rect {
	tl := v.Unproject(Vec2{X: v.screen.X, Y: v.screen.Y})
	br := v.Unproject(Vec2{X: v.screen.X + v.screen.Width, Y: v.screen.Y + v.screen.Height})
	return Rect{X: tl.X, Y: br.Y, Width: br.X - tl.X, Height: tl.Y - br.Y}
}
