package tilegrid

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"
)

// Game drives the tile grid demo: it implements ebiten.Game, polls input
// into the Controller, draws the grid through a SpriteBatch and handles the
// reset and copy keys.
//
// Game is the lenient host. A window with no area skips the frame and grid
// access errors are logged instead of panicking.
type Game struct {
	// ScreenshotDir is where Screenshot writes PNGs. Default "screenshots".
	ScreenshotDir string

	viewport   *Viewport
	grid       *Grid
	selection  *Selection
	controller *Controller
	init       Initializer

	atlas   *Atlas
	regions RegionSet
	batch   *SpriteBatch

	pulse       *MarkerPulse
	markerAlpha float32
	hud         *hud

	input    inputSource
	pointers pointerTracker
	keys     []ebiten.Key

	resetKey, copyKey ebiten.Key

	injectQueue     []PointerEvent
	injectKeys      []ebiten.Key
	testRunner      *TestRunner
	screenshotQueue []string

	watcher     *Watcher
	debug       bool
	frameEvents int
}

// NewGame builds a game from cfg: validates it, loads or generates the
// atlas, seeds the grid and, when cfg.Watch is set, watches the seed script.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	atlas, err := loadAtlas(cfg.Atlas, cfg.Grid.CellSize)
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, atlas, ebitenInput{})
	if err != nil {
		return nil, err
	}
	g.hud = newHUD()

	if cfg.Watch && cfg.SeedScript != "" {
		w, err := NewWatcher(cfg.SeedScript)
		if err != nil {
			return nil, fmt.Errorf("tilegrid: watch %s: %w", cfg.SeedScript, err)
		}
		g.watcher = w
	}
	return g, nil
}

// newGame wires everything except the parts that need a running ebiten:
// the HUD and the file watcher.
func newGame(cfg Config, atlas *Atlas, src inputSource) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	viewport, err := NewViewport(cfg.Extent())
	if err != nil {
		return nil, err
	}
	if err := viewport.Refresh(cfg.Window.Width, cfg.Window.Height); err != nil {
		return nil, err
	}

	init, err := seedInitializer(cfg)
	if err != nil {
		return nil, err
	}
	cell := cfg.Grid.CellSize
	grid, err := NewGrid(cfg.Grid.Width, cfg.Grid.Height, cell, cell, init)
	if err != nil {
		return nil, err
	}

	names, err := cfg.RegionNames()
	if err != nil {
		return nil, err
	}
	regions, err := atlas.RegionSet(names)
	if err != nil {
		return nil, err
	}
	resetKey, _ := cfg.ResetKey()
	copyKey, _ := cfg.CopyKey()

	g := &Game{
		ScreenshotDir: "screenshots",
		viewport:      viewport,
		grid:          grid,
		selection:     &Selection{},
		init:          init,
		atlas:         atlas,
		regions:       regions,
		batch:         NewSpriteBatch(nil, atlas),
		pulse:         NewMarkerPulse(float32(cfg.Marker.PulsePeriod), float32(cfg.Marker.MinAlpha), 1),
		markerAlpha:   1,
		input:         src,
		resetKey:      resetKey,
		copyKey:       copyKey,
		debug:         cfg.Debug,
	}
	g.controller = NewController(viewport, grid, g.selection)
	g.controller.ErrorHandler = func(err error) { warnf("%v", err) }
	g.controller.OnTileEvent(g.onTileEvent)
	return g, nil
}

// seedInitializer picks the script when one is configured, else the seeded
// random initializer.
func seedInitializer(cfg Config) (Initializer, error) {
	if cfg.SeedScript == "" {
		return RandomInitializer(cfg.Seed), nil
	}
	src, err := os.ReadFile(cfg.SeedScript)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: read seed script: %w", err)
	}
	return ScriptInitializer(src)
}

// loadAtlas reads the configured atlas or, with none configured, paints the
// default sheet at the cell size.
func loadAtlas(ac AtlasConfig, cellSize float64) (*Atlas, error) {
	if ac.JSON == "" {
		return GenerateSheet(DefaultSheetLayout(int(math.Round(cellSize)))), nil
	}
	data, err := os.ReadFile(ac.JSON)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: read atlas: %w", err)
	}
	page, _, err := ebitenutil.NewImageFromFile(ac.Image)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: load atlas image: %w", err)
	}
	return LoadAtlas(data, []*ebiten.Image{page})
}

// Controller returns the interaction controller.
func (g *Game) Controller() *Controller { return g.controller }

// Grid returns the tile grid.
func (g *Game) Grid() *Grid { return g.grid }

// Selection returns the selection state.
func (g *Game) Selection() *Selection { return g.selection }

// Viewport returns the viewport.
func (g *Game) Viewport() *Viewport { return g.viewport }

// Reset re-seeds the grid with the current initializer. The selection is
// kept.
func (g *Game) Reset() {
	g.controller.ResetGrid(g.init)
}

// Close stops the file watcher, if any.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// Update implements ebiten.Game. Order per tick: script reloads, test
// runner, one injected event or the polled pointer events, keys, then the
// marker pulse.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	g.reloadChanged()
	if g.testRunner != nil {
		g.testRunner.step(g)
	}

	g.frameEvents = 0
	if g.processInjectedInput() {
		g.frameEvents++
	} else {
		for _, ev := range g.pointers.poll(g.input) {
			g.controller.HandlePointer(ev)
			g.frameEvents++
		}
	}

	g.keys = g.input.AppendJustPressedKeys(g.keys[:0])
	g.keys = append(g.keys, g.injectKeys...)
	g.injectKeys = g.injectKeys[:0]
	for _, k := range g.keys {
		g.controller.OnKeyDown(k)
		switch k {
		case g.resetKey:
			g.Reset()
		case g.copyKey:
			if err := CopySnapshot(g.grid); err != nil {
				warnf("%v", err)
			} else {
				g.debugf("grid snapshot copied to clipboard")
			}
		}
	}

	g.markerAlpha = g.pulse.Update(dt)

	if g.hud != nil {
		g.hud.setText(hudText(g.grid, g.selection, g.resetKey, g.copyKey))
		g.hud.update()
	}
	return nil
}

// Draw implements ebiten.Game: refresh the viewport for the screen, clear
// to black, draw the grid and marker, then the HUD and screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	var stats debugStats
	stats.events = g.frameEvents

	start := time.Now()
	b := screen.Bounds()
	if err := g.viewport.Refresh(b.Dx(), b.Dy()); err != nil {
		g.debugf("skipping frame: %v", err)
		return
	}
	stats.refreshTime = time.Since(start)

	screen.Fill(colornames.Black)

	start = time.Now()
	g.batch.Target = screen
	RenderGrid(g.batch, g.viewport, g.grid, g.selection, g.regions, float64(g.markerAlpha))
	g.batch.Target = nil
	stats.renderTime = time.Since(start)
	bs := g.batch.Stats()
	stats.regions, stats.flushes = bs.Regions, bs.Flushes

	if g.hud != nil {
		g.hud.draw(screen, g.debug)
	}
	g.flushScreenshots(screen)
	g.debugLog(stats)
}

// Layout implements ebiten.Game. The screen always matches the window; the
// viewport does the fitting. ebiten needs a positive size, so a collapsed
// window is reported as 1x1.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		g.debugf("window has no area (%dx%d)", outsideWidth, outsideHeight)
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

func (g *Game) onTileEvent(ev TileEvent) {
	switch ev.Type {
	case TileSelected, TileMoved:
		g.pulse.Restart()
	}
	if ev.Type == GridReset {
		g.debugf("grid reset")
		return
	}
	g.debugf("%v (%d,%d) %v", ev.Type, ev.X, ev.Y, ev.Kind)
}

// reloadChanged recompiles the seed script after it changes on disk and
// resets the grid with it. A script that fails to compile keeps the old one.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			warnf("watch: %v", err)
		}
	default:
	}
	for _, name := range g.watcher.Poll() {
		if err := g.reloadScript(name); err != nil {
			warnf("%v", err)
			continue
		}
		g.debugf("reloaded %s", name)
	}
}

func (g *Game) reloadScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tilegrid: reload %s: %w", path, err)
	}
	init, err := ScriptInitializer(src)
	if err != nil {
		return err
	}
	g.init = init
	g.Reset()
	return nil
}
