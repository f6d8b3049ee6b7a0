package tilegrid

import "github.com/hajimehoshi/ebiten/v2"

// TileEventType identifies what happened to the grid or the selection.
type TileEventType uint8

const (
	TileSelected   TileEventType = iota // a tile became selected from Unselected
	TileMoved                           // the selection moved to another tile
	TileDeselected                      // the selected tile was toggled off
	TileMutated                         // the selected tile's kind was flipped
	GridReset                           // every cell was re-initialized
)

func (t TileEventType) String() string {
	switch t {
	case TileSelected:
		return "selected"
	case TileMoved:
		return "moved"
	case TileDeselected:
		return "deselected"
	case TileMutated:
		return "mutated"
	case GridReset:
		return "reset"
	default:
		return "unknown"
	}
}

// TileEvent describes one state change made by the Controller.
type TileEvent struct {
	Type TileEventType
	// X and Y are the tile the event concerns. For TileDeselected it is the
	// tile that was released; for GridReset it is the selected tile, if any.
	X, Y int
	// PrevX and PrevY hold the old tile for TileMoved.
	PrevX, PrevY int
	// Kind is the tile's kind after the event. For GridReset it is only set
	// when Selected is.
	Kind TileKind
	// Selected reports, for GridReset, whether a tile was selected.
	Selected bool
	// World is the unprojected pointer position that caused the event.
	World  Vec2
	Button MouseButton
}

// EventSink receives every TileEvent after the registered callbacks.
// The ecs package provides a Donburi-backed implementation.
type EventSink interface {
	EmitTileEvent(event TileEvent)
}

type tileHandler struct {
	id uint32
	fn func(TileEvent)
}

type handlerRegistry struct {
	tile   []tileHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters the callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.tile
	for i := range s {
		if s[i].id == h.id {
			// Fresh backing array: an emit in progress keeps iterating the old one.
			h.reg.tile = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// Controller turns raw pointer events into selection changes and grid
// mutations. Pointer-down with the primary button activates the resolved
// tile; with the secondary button it mutates the selected tile. Everything
// else is ignored.
//
// Every handler reports false ("not exclusively consumed") so hosts keep
// propagating events to other listeners.
type Controller struct {
	viewport  *Viewport
	grid      *Grid
	selection *Selection

	handlers handlerRegistry
	sink     EventSink

	// ErrorHandler receives grid access errors. A nil handler panics: an
	// out-of-range index here means resolution was bypassed.
	ErrorHandler func(error)
}

// NewController wires a controller to its collaborators. A nil selection
// allocates a fresh one.
func NewController(v *Viewport, g *Grid, sel *Selection) *Controller {
	if sel == nil {
		sel = &Selection{}
	}
	return &Controller{viewport: v, grid: g, selection: sel}
}

// Viewport returns the controller's viewport.
func (c *Controller) Viewport() *Viewport { return c.viewport }

// Grid returns the controller's grid.
func (c *Controller) Grid() *Grid { return c.grid }

// Selection returns the controller's selection state.
func (c *Controller) Selection() *Selection { return c.selection }

// SetEventSink installs an optional sink for tile events.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// OnTileEvent registers a callback for every tile event.
func (c *Controller) OnTileEvent(fn func(TileEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.tile = append(c.handlers.tile, tileHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers}
}

// Resolve maps a device point to world space and then to a tile index.
func (c *Controller) Resolve(device Vec2) (world Vec2, x, y int) {
	world = c.viewport.Unproject(device)
	x, y = c.grid.Resolve(world)
	return world, x, y
}

// HandlePointer dispatches a decoded event to the matching handler.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	p := Vec2{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case EventPointerDown:
		return c.OnPointerDown(p, ev.Button)
	case EventPointerUp:
		return c.OnPointerUp(p, ev.Button)
	case EventPointerMove:
		return c.OnPointerMove(p)
	}
	return false
}

// OnPointerDown handles a press at a device point.
func (c *Controller) OnPointerDown(device Vec2, button MouseButton) bool {
	switch button {
	case MouseButtonLeft:
		world, x, y := c.Resolve(device)
		c.activate(world, x, y)
	case MouseButtonRight:
		// Mutation applies to the selected tile, not the one under the pointer.
		world, _, _ := c.Resolve(device)
		c.mutate(world)
	}
	return false
}

func (c *Controller) activate(world Vec2, x, y int) {
	px, py, _ := c.selection.Selected()
	tr := c.selection.Activate(x, y)

	ev := TileEvent{X: x, Y: y, World: world, Button: MouseButtonLeft}
	switch tr {
	case TransitionSelected:
		ev.Type = TileSelected
	case TransitionMoved:
		ev.Type = TileMoved
		ev.PrevX, ev.PrevY = px, py
	case TransitionDeselected:
		ev.Type = TileDeselected
	default:
		return
	}
	kind, err := c.grid.Get(x, y)
	if err != nil {
		c.fail(err)
		return
	}
	ev.Kind = kind
	c.emit(ev)
}

func (c *Controller) mutate(world Vec2) {
	kind, changed, err := c.selection.Mutate(c.grid)
	if err != nil {
		c.fail(err)
		return
	}
	if !changed {
		return
	}
	x, y, _ := c.selection.Selected()
	c.emit(TileEvent{Type: TileMutated, X: x, Y: y, Kind: kind, World: world, Button: MouseButtonRight})
}

// OnPointerUp is a no-op.
func (c *Controller) OnPointerUp(device Vec2, button MouseButton) bool { return false }

// OnPointerMove is a no-op.
func (c *Controller) OnPointerMove(device Vec2) bool { return false }

// OnKeyDown is a no-op; the reset key is polled by the frame driver.
func (c *Controller) OnKeyDown(key ebiten.Key) bool { return false }

// OnKeyUp is a no-op.
func (c *Controller) OnKeyUp(key ebiten.Key) bool { return false }

// ResetGrid re-initializes the grid and announces it. The selection is left
// as it is; when a tile is selected the event carries it and its new kind.
func (c *Controller) ResetGrid(init Initializer) {
	c.grid.Reset(init)
	ev := TileEvent{Type: GridReset}
	if x, y, ok := c.selection.Selected(); ok {
		kind, err := c.grid.Get(x, y)
		if err != nil {
			c.fail(err)
		} else {
			ev.X, ev.Y, ev.Kind, ev.Selected = x, y, kind, true
		}
	}
	c.emit(ev)
}

func (c *Controller) emit(ev TileEvent) {
	for _, h := range c.handlers.tile {
		if h.fn != nil {
			h.fn(ev)
		}
	}
	if c.sink != nil {
		c.sink.EmitTileEvent(ev)
	}
}

func (c *Controller) fail(err error) {
	if c.ErrorHandler == nil {
		panic(err)
	}
	c.ErrorHandler(err)
}
