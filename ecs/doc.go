// Package ecs provides ECS adapters for tilegrid's tile events.
//
// The primary adapter is [NewDonburiSink], which publishes every
// [tilegrid.TileEvent] (select, move, deselect, mutate, reset) into a
// [Donburi] world as a typed event and mirrors the current selection onto a
// singleton entity. Subscribe to [TileEventType] in your ECS systems to
// receive the events.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	game.Controller().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
