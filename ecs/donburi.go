package ecs

import (
	"github.com/phanxgames/tilegrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TileEventType is the Donburi event type for tile events.
var TileEventType = events.NewEventType[tilegrid.TileEvent]()

// SelectionData mirrors the controller's selection.
type SelectionData struct {
	X, Y     int
	Selected bool
	Kind     tilegrid.TileKind
}

// Selection is the component carried by the sink's selection entity.
var Selection = donburi.NewComponentType[SelectionData]()

// DonburiSink is a tilegrid.EventSink backed by a Donburi world.
type DonburiSink struct {
	world     donburi.World
	selection donburi.Entity
}

// NewDonburiSink creates a sink that publishes to TileEventType and keeps
// a single entity with a Selection component up to date. Published events
// are delivered by TileEventType.ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:     world,
		selection: world.Create(Selection),
	}
}

// SelectionEntity returns the entity holding the Selection component.
func (s *DonburiSink) SelectionEntity() donburi.Entity {
	return s.selection
}

// EmitTileEvent implements tilegrid.EventSink.
func (s *DonburiSink) EmitTileEvent(event tilegrid.TileEvent) {
	s.track(event)
	TileEventType.Publish(s.world, event)
}

// track applies the event to the selection entity immediately so systems
// reading the component see the new state before events are processed.
func (s *DonburiSink) track(ev tilegrid.TileEvent) {
	if !s.world.Valid(s.selection) {
		return
	}
	entry := s.world.Entry(s.selection)
	sel := Selection.Get(entry)
	switch ev.Type {
	case tilegrid.TileSelected, tilegrid.TileMoved:
		*sel = SelectionData{X: ev.X, Y: ev.Y, Selected: true, Kind: ev.Kind}
	case tilegrid.TileDeselected:
		*sel = SelectionData{}
	case tilegrid.TileMutated:
		if sel.Selected && sel.X == ev.X && sel.Y == ev.Y {
			sel.Kind = ev.Kind
		}
	case tilegrid.GridReset:
		if ev.Selected {
			*sel = SelectionData{X: ev.X, Y: ev.Y, Selected: true, Kind: ev.Kind}
		}
	}
}
