package tilegrid

// RenderGrid draws one region per cell and, when a tile is selected, the
// marker region on top of it. The projection is set once from the
// viewport's combined matrix. Cells whose kind has no region are skipped.
//
// markerAlpha tints the marker when r implements Tinter; values outside
// (0, 1] draw it opaque.
func RenderGrid(r Renderer, v *Viewport, g *Grid, sel *Selection, regions RegionSet, markerAlpha float64) {
	r.BeginBatch()
	r.SetProjection(v.Combined())

	g.Each(func(x, y int, kind TileKind) {
		reg, ok := regions.Tile(kind)
		if !ok {
			return
		}
		o := g.TileOrigin(x, y)
		r.DrawRegion(reg, o.X, o.Y)
	})

	if sel != nil {
		if x, y, ok := sel.Selected(); ok && g.InBounds(x, y) {
			tinter, canTint := r.(Tinter)
			if canTint && markerAlpha > 0 && markerAlpha < 1 {
				tinter.SetTint(Color{R: 1, G: 1, B: 1, A: markerAlpha})
			}
			o := g.TileOrigin(x, y)
			r.DrawRegion(regions.Marker, o.X, o.Y)
			if canTint {
				tinter.SetTint(ColorWhite)
			}
		}
	}

	r.EndBatch()
}
