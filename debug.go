package tilegrid

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Game.debug is true.
type debugStats struct {
	refreshTime time.Duration
	renderTime  time.Duration
	regions     int
	flushes     int
	events      int
}

// debugLog prints timing and draw stats to stderr.
func (g *Game) debugLog(stats debugStats) {
	if !g.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilegrid] refresh: %v | render: %v | total: %v\n",
		stats.refreshTime, stats.renderTime, stats.refreshTime+stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilegrid] regions: %d | draw calls: %d | pointer events: %d\n",
		stats.regions, stats.flushes, stats.events)
}

// debugf prints a tagged line to stderr in debug mode.
func (g *Game) debugf(format string, args ...any) {
	if !g.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tilegrid] "+format+"\n", args...)
}

// warnf prints a tagged line to stderr regardless of debug mode.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tilegrid] warning: "+format+"\n", args...)
}
