package tilegrid

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// ColorFrom converts any color.Color into a straight-alpha Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point or size. World-space points are y-up; device points
// are y-down.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. In device space the origin is the
// top-left corner of the window; in world space it is the bottom-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// EventType identifies a kind of raw input event.
type EventType uint8

const (
	EventPointerDown EventType = iota // pointer button pressed
	EventPointerUp                    // pointer button released
	EventPointerMove                  // pointer moved, any button state
	EventKeyDown                      // key pressed
	EventKeyUp                        // key released
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventPointerMove:
		return "pointer-move"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return "unknown"
	}
}

// MouseButton identifies a pointer button. Touches report MouseButtonLeft.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary: select / toggle
	MouseButtonRight                     // secondary: mutate selected tile
	MouseButtonMiddle                    // unused by the controller
)

// PointerEvent is one decoded input event in device pixels (origin top-left,
// y-down), as delivered by the input collaborator.
type PointerEvent struct {
	Type    EventType
	X, Y    float64
	Button  MouseButton
	Pointer int // 0 = mouse, 1-9 = touch slots
}
