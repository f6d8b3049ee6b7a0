package tilegrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxPointers is the number of tracked pointers: slot 0 is the mouse and
// slots 1-9 are touches.
const maxPointers = 10

// inputSource is the slice of ebiten's input API the frame driver polls.
// Tests substitute a scripted source.
type inputSource interface {
	CursorPosition() (x, y int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	AppendTouchIDs(buf []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	AppendJustPressedKeys(buf []ebiten.Key) []ebiten.Key
}

// ebitenInput reads the live ebiten input state.
type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenInput) AppendTouchIDs(buf []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(buf)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenInput) AppendJustPressedKeys(buf []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(buf)
}

type pointerState struct {
	down         bool
	button       MouseButton
	lastX, lastY float64
	seen         bool
}

// pointerTracker turns level-triggered button state into edge events.
type pointerTracker struct {
	pointers  [maxPointers]pointerState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID
	events    []PointerEvent
}

// poll reads src and returns this frame's pointer events. The slice is
// reused on the next call.
func (t *pointerTracker) poll(src inputSource) []PointerEvent {
	t.events = t.events[:0]
	t.pollMouse(src)
	t.pollTouches(src)
	return t.events
}

// pollMouse handles pointer 0. While a button is held the pointer keeps the
// button it went down with.
func (t *pointerTracker) pollMouse(src inputSource) {
	mx, my := src.CursorPosition()

	var pressed bool
	var button MouseButton
	left := src.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := src.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := src.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	t.track(0, float64(mx), float64(my), pressed, button)
}

// pollTouches handles pointers 1-9. Touches always report the left button.
func (t *pointerTracker) pollTouches(src inputSource) {
	t.touchIDs = src.AppendTouchIDs(t.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range t.touchIDs {
		slot := t.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := src.TouchPosition(tid)
		t.track(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release slots whose touch ended.
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && !active[i] {
			ps := &t.pointers[i]
			if ps.down {
				t.track(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			t.touchUsed[i] = false
			t.touchMap[i] = 0
			t.pointers[i] = pointerState{}
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (t *pointerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// track runs the per-pointer state machine: a move event when the position
// changes, then a down or up event on a button edge.
func (t *pointerTracker) track(slot int, x, y float64, pressed bool, button MouseButton) {
	ps := &t.pointers[slot]

	if ps.seen && (x != ps.lastX || y != ps.lastY) {
		b := button
		if ps.down {
			b = ps.button
		}
		t.events = append(t.events, PointerEvent{Type: EventPointerMove, X: x, Y: y, Button: b, Pointer: slot})
	}
	ps.lastX, ps.lastY = x, y
	ps.seen = true

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		t.events = append(t.events, PointerEvent{Type: EventPointerDown, X: x, Y: y, Button: button, Pointer: slot})
	case !pressed && ps.down:
		ps.down = false
		t.events = append(t.events, PointerEvent{Type: EventPointerUp, X: x, Y: y, Button: ps.button, Pointer: slot})
	}
}
