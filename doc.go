// Package tilegrid is a small interactive tile grid for [Ebitengine]: a
// fixed-aspect world of square tiles that the player selects with the
// primary button and mutates with the secondary one.
//
// # Quick start
//
// [NewGame] builds everything from a [Config] and [Run] opens the window:
//
//	cfg := tilegrid.DefaultConfig()
//	g, err := tilegrid.NewGame(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(tilegrid.Run(g, cfg.RunConfig()))
//
// # Coordinate spaces
//
// The world is y-up with the origin at the bottom-left of the grid. Device
// pixels are y-down with the origin at the top-left of the window. A
// [Viewport] fits the world extent into the window, preserving aspect ratio
// and centring it with letterbox or pillarbox bars, and converts between the
// two spaces with [Viewport.Unproject] and [Viewport.Project]. Call
// [Viewport.Refresh] whenever the window size changes.
//
// [ResolveTile] maps a world point to the tile under it, clamping points
// outside the grid to the nearest edge tile.
//
// # Grid and selection
//
// A [Grid] stores one [TileKind] per cell in row-major order. An
// [Initializer] decides each cell's kind on creation and on [Grid.Reset];
// see [RandomInitializer], [CheckerInitializer] and [ScriptInitializer].
//
// [Selection] holds at most one selected tile. Activating the selected tile
// deselects it, activating another moves the selection, and [Selection.Mutate]
// flips the selected tile between its paired kinds.
//
// # Controller
//
// [Controller] ties the pieces together: a primary-button press resolves the
// pointer to a tile and activates it, a secondary-button press mutates the
// selected tile. Every change is reported to callbacks registered with
// [Controller.OnTileEvent] and to an optional [EventSink].
//
//	g.Controller().OnTileEvent(func(ev tilegrid.TileEvent) {
//		fmt.Println(ev.Type, ev.X, ev.Y, ev.Kind)
//	})
//
// # Rendering
//
// [RenderGrid] draws one atlas region per cell and the selection marker
// last through any [Renderer]. [SpriteBatch] is the ebiten implementation:
// it batches regions from the same atlas page into one DrawTriangles32 call.
// Regions come from a TexturePacker JSON [Atlas] or from [GenerateSheet].
//
// # Testing
//
// [Game.InjectClick] and [Game.InjectKey] queue synthetic input. A JSON
// script loaded with [LoadTestScript] drives clicks, resets and screenshots
// frame by frame for visual checks.
//
// [Ebitengine]: https://ebitengine.org
package tilegrid
