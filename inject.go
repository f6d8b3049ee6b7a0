package tilegrid

import "github.com/hajimehoshi/ebiten/v2"

// InjectPointer queues a synthetic pointer event in device pixels, the same
// coordinates a screenshot shows. One queued event is consumed per frame and
// real pointer input is skipped on that frame.
func (g *Game) InjectPointer(ev PointerEvent) {
	g.injectQueue = append(g.injectQueue, ev)
}

// InjectClick queues a press followed by a release of button at the given
// device coordinates. Consumes two frames.
func (g *Game) InjectClick(x, y float64, button MouseButton) {
	g.InjectPointer(PointerEvent{Type: EventPointerDown, X: x, Y: y, Button: button})
	g.InjectPointer(PointerEvent{Type: EventPointerUp, X: x, Y: y, Button: button})
}

// InjectKey queues a key press handled like a real one on the next frame.
func (g *Game) InjectKey(key ebiten.Key) {
	g.injectKeys = append(g.injectKeys, key)
}

// processInjectedInput pops one event from the queue and feeds it to the
// controller. Returns true if an event was consumed.
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	ev := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.controller.HandlePointer(ev)
	return true
}
