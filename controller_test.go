package tilegrid

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// newDemoController builds the 16x9 grid, cell 20, world 320x180 setup
// refreshed for a 640x360 window.
func newDemoController(t *testing.T) *Controller {
	t.Helper()
	v, err := NewViewport(WorldExtent{Width: 320, Height: 180})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Refresh(640, 360); err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(16, 9, 20, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewController(v, g, nil)
}

func TestControllerEndToEndSelect(t *testing.T) {
	c := newDemoController(t)

	world, x, y := c.Resolve(Vec2{X: 30, Y: 40})
	if !approxEqual(world.X, 15, epsilon) || !approxEqual(world.Y, 160, epsilon) {
		t.Errorf("world = %v, want (15,160)", world)
	}
	if x != 0 || y != 8 {
		t.Errorf("tile = (%d,%d), want (0,8)", x, y)
	}

	if consumed := c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft); consumed {
		t.Error("OnPointerDown reported consumed")
	}
	sx, sy, ok := c.Selection().Selected()
	if !ok || sx != 0 || sy != 8 {
		t.Errorf("selection = (%d,%d,%v), want (0,8,true)", sx, sy, ok)
	}
}

func TestControllerToggleAndMove(t *testing.T) {
	c := newDemoController(t)
	var events []TileEvent
	c.OnTileEvent(func(ev TileEvent) { events = append(events, ev) })

	// Tile (3,4) center is world (70,90) -> device (140,180).
	tile34 := PointerEvent{Type: EventPointerDown, X: 140, Y: 180, Button: MouseButtonLeft}
	// Tile (5,2) center is world (110,50) -> device (220,260).
	tile52 := PointerEvent{Type: EventPointerDown, X: 220, Y: 260, Button: MouseButtonLeft}

	c.HandlePointer(tile34)
	c.HandlePointer(tile34)
	c.HandlePointer(tile34)
	c.HandlePointer(tile52)

	want := []struct {
		typ  TileEventType
		x, y int
	}{
		{TileSelected, 3, 4},
		{TileDeselected, 3, 4},
		{TileSelected, 3, 4},
		{TileMoved, 5, 2},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		if events[i].Type != w.typ || events[i].X != w.x || events[i].Y != w.y {
			t.Errorf("event %d = %+v, want %v at (%d,%d)", i, events[i], w.typ, w.x, w.y)
		}
	}
	if events[3].PrevX != 3 || events[3].PrevY != 4 {
		t.Errorf("move prev = (%d,%d), want (3,4)", events[3].PrevX, events[3].PrevY)
	}
}

func TestControllerSecondaryMutatesSelected(t *testing.T) {
	c := newDemoController(t)
	// Select (2,2): world center (50,50) -> device (100,260).
	c.OnPointerDown(Vec2{X: 100, Y: 260}, MouseButtonLeft)

	// Right-click anywhere mutates the selected tile, not the clicked one.
	c.OnPointerDown(Vec2{X: 600, Y: 10}, MouseButtonRight)
	if k, _ := c.Grid().Get(2, 2); k != KindWater {
		t.Errorf("grid[2][2] = %v, want water", k)
	}
	if k, _ := c.Grid().Get(15, 8); k != KindGrass {
		t.Errorf("clicked tile changed to %v", k)
	}
	c.OnPointerDown(Vec2{X: 600, Y: 10}, MouseButtonRight)
	if k, _ := c.Grid().Get(2, 2); k != KindGrass {
		t.Errorf("grid[2][2] after second mutate = %v, want grass", k)
	}
}

func TestControllerSecondaryWhileUnselected(t *testing.T) {
	c := newDemoController(t)
	before := c.Grid().Snapshot()
	fired := false
	c.OnTileEvent(func(TileEvent) { fired = true })

	c.OnPointerDown(Vec2{X: 100, Y: 100}, MouseButtonRight)
	if c.Grid().Snapshot() != before {
		t.Error("grid changed while unselected")
	}
	if fired {
		t.Error("event fired for ignored mutate")
	}
}

func TestControllerIgnoresOtherEvents(t *testing.T) {
	c := newDemoController(t)
	before := c.Grid().Snapshot()

	events := []PointerEvent{
		{Type: EventPointerUp, X: 30, Y: 40, Button: MouseButtonLeft},
		{Type: EventPointerMove, X: 30, Y: 40},
		{Type: EventPointerDown, X: 30, Y: 40, Button: MouseButtonMiddle},
		{Type: EventKeyDown},
		{Type: EventKeyUp},
	}
	for _, ev := range events {
		if c.HandlePointer(ev) {
			t.Errorf("%v reported consumed", ev.Type)
		}
	}
	if c.OnKeyDown(ebiten.KeyR) || c.OnKeyUp(ebiten.KeyR) {
		t.Error("key handler reported consumed")
	}
	if _, _, ok := c.Selection().Selected(); ok {
		t.Error("selection changed")
	}
	if c.Grid().Snapshot() != before {
		t.Error("grid changed")
	}
}

func TestControllerClampsClicksInLetterbox(t *testing.T) {
	c := newDemoController(t)
	if err := c.Viewport().Refresh(640, 480); err != nil {
		t.Fatal(err)
	}
	// Top bar, left edge: extrapolated above the world -> top-left tile.
	c.OnPointerDown(Vec2{X: 0, Y: 5}, MouseButtonLeft)
	if !c.Selection().IsSelected(0, 8) {
		x, y, _ := c.Selection().Selected()
		t.Errorf("selected (%d,%d), want (0,8)", x, y)
	}
}

func TestControllerResetGridKeepsSelection(t *testing.T) {
	c := newDemoController(t)
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)

	var got []TileEventType
	c.OnTileEvent(func(ev TileEvent) { got = append(got, ev.Type) })
	c.ResetGrid(func(x, y int) TileKind { return KindWater })

	if n := c.Grid().Count(KindWater); n != 16*9 {
		t.Errorf("water cells = %d", n)
	}
	if !c.Selection().IsSelected(0, 8) {
		t.Error("reset cleared selection")
	}
	if len(got) != 1 || got[0] != GridReset {
		t.Errorf("events = %v, want [reset]", got)
	}
}

func TestControllerCallbackRemove(t *testing.T) {
	c := newDemoController(t)
	n := 0
	h := c.OnTileEvent(func(TileEvent) { n++ })
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	h.Remove()
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	if n != 1 {
		t.Errorf("callback fired %d times, want 1", n)
	}
	CallbackHandle{}.Remove() // zero handle is safe
}

func TestControllerCallbackRemovesItself(t *testing.T) {
	c := newDemoController(t)
	var first, second, third int
	var h CallbackHandle
	h = c.OnTileEvent(func(TileEvent) { first++; h.Remove() })
	c.OnTileEvent(func(TileEvent) { second++ })
	c.OnTileEvent(func(TileEvent) { third++ })

	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)

	if first != 1 || second != 2 || third != 2 {
		t.Errorf("calls = %d/%d/%d, want 1/2/2", first, second, third)
	}
}

func TestControllerCallbackRemovesAnother(t *testing.T) {
	c := newDemoController(t)
	var later CallbackHandle
	n := 0
	c.OnTileEvent(func(TileEvent) { later.Remove() })
	later = c.OnTileEvent(func(TileEvent) { n++ })

	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	if n > 1 {
		t.Errorf("removed callback fired %d times", n)
	}
}

func TestControllerResetGridReportsSelection(t *testing.T) {
	c := newDemoController(t)
	var got []TileEvent
	c.OnTileEvent(func(ev TileEvent) { got = append(got, ev) })

	c.ResetGrid(UniformInitializer(KindSand))
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	c.ResetGrid(UniformInitializer(KindStone))

	if len(got) != 3 {
		t.Fatalf("events = %d, want 3", len(got))
	}
	if ev := got[0]; ev.Type != GridReset || ev.Selected {
		t.Errorf("reset without selection = %+v", ev)
	}
	if ev := got[2]; ev.Type != GridReset || !ev.Selected || ev.X != 0 || ev.Y != 8 || ev.Kind != KindStone {
		t.Errorf("reset with selection = %+v", ev)
	}
}

func TestControllerSecondaryMutatesSelectedNotPointed(t *testing.T) {
	c := newDemoController(t)
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft) // tile (0,8)

	var got TileEvent
	c.OnTileEvent(func(ev TileEvent) { got = ev })
	// Bottom-right corner resolves to (15,0); the selected tile still flips.
	c.OnPointerDown(Vec2{X: 639, Y: 359}, MouseButtonRight)

	if k, _ := c.Grid().Get(0, 8); k != KindWater {
		t.Errorf("tile (0,8) = %v, want water", k)
	}
	if k, _ := c.Grid().Get(15, 0); k != KindGrass {
		t.Errorf("tile (15,0) = %v, want grass", k)
	}
	if got.Type != TileMutated || got.X != 0 || got.Y != 8 {
		t.Errorf("event = %+v", got)
	}
	if !approxEqual(got.World.X, 319.5, epsilon) || !approxEqual(got.World.Y, 0.5, epsilon) {
		t.Errorf("event world = %v, want (319.5,0.5)", got.World)
	}
}

type recordingSink struct{ events []TileEvent }

func (s *recordingSink) EmitTileEvent(ev TileEvent) { s.events = append(s.events, ev) }

func TestControllerEventSink(t *testing.T) {
	c := newDemoController(t)
	sink := &recordingSink{}
	c.SetEventSink(sink)

	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonLeft)
	c.OnPointerDown(Vec2{X: 30, Y: 40}, MouseButtonRight)

	if len(sink.events) != 2 {
		t.Fatalf("sink got %d events, want 2", len(sink.events))
	}
	if ev := sink.events[1]; ev.Type != TileMutated || ev.Kind != KindWater || ev.X != 0 || ev.Y != 8 {
		t.Errorf("mutate event = %+v", ev)
	}
}

func TestControllerErrorHandler(t *testing.T) {
	v, _ := NewViewport(WorldExtent{Width: 320, Height: 180})
	g, _ := NewGrid(16, 9, 20, 20, nil)
	sel := &Selection{}
	sel.Activate(40, 40) // bypasses resolution

	c := NewController(v, g, sel)
	var got error
	c.ErrorHandler = func(err error) { got = err }
	c.OnPointerDown(Vec2{}, MouseButtonRight)
	if !errors.Is(got, ErrOutOfRange) {
		t.Errorf("handler got %v, want ErrOutOfRange", got)
	}
}

func TestControllerPanicsWithoutErrorHandler(t *testing.T) {
	v, _ := NewViewport(WorldExtent{Width: 320, Height: 180})
	g, _ := NewGrid(16, 9, 20, 20, nil)
	sel := &Selection{}
	sel.Activate(-1, 3)
	c := NewController(v, g, sel)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c.OnPointerDown(Vec2{}, MouseButtonRight)
}
