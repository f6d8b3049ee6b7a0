package tilegrid

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	VSync         bool
	Resizable     bool
}

// RunConfig returns the window settings from c.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:     c.Window.Title,
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		VSync:     c.Window.VSync,
		Resizable: c.Window.Resizable,
	}
}

// Run opens a window and blocks until it closes. The game's watcher is
// closed on return.
func Run(g *Game, cfg RunConfig) error {
	defer g.Close()

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return configError("window size", float64(cfg.Width), float64(cfg.Height))
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetVsyncEnabled(cfg.VSync)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
