package tilegrid

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests; headless machines have no
// clipboard provider.
var writeClipboard = clipboard.WriteAll

// CopySnapshot puts g.Snapshot() on the system clipboard.
func CopySnapshot(g *Grid) error {
	if err := writeClipboard(g.Snapshot()); err != nil {
		return fmt.Errorf("tilegrid: copy snapshot: %w", err)
	}
	return nil
}
