package tilegrid

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// hud is the one-line status panel anchored to the window's top-left
// corner. The FPS readout is only drawn in debug mode.
type hud struct {
	ui    *ebitenui.UI
	label *widget.Text
	shown string
}

func newHUD() *hud {
	var face text.Face = text.NewGoXFace(basicfont.Face7x13)

	label := widget.NewText(
		widget.TextOpts.Text("", &face, colornames.White),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 160})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &hud{ui: &ebitenui.UI{Container: root}, label: label}
}

// setText updates the label, requesting a relayout only when it changed.
func (h *hud) setText(s string) {
	if s == h.shown {
		return
	}
	h.shown = s
	h.label.Label = s
	h.ui.Container.RequestRelayout()
}

func (h *hud) update() {
	h.ui.Update()
}

func (h *hud) draw(screen *ebiten.Image, showFPS bool) {
	h.ui.Draw(screen)
	if showFPS {
		b := screen.Bounds()
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			b.Max.X-90, 4)
	}
}

// hudText describes the selection and the key bindings.
func hudText(g *Grid, sel *Selection, resetKey, copyKey ebiten.Key) string {
	status := "no tile selected"
	if x, y, ok := sel.Selected(); ok {
		kind, err := g.Get(x, y)
		if err == nil {
			status = fmt.Sprintf("tile (%d,%d) %s", x, y, kind)
		}
	}
	return fmt.Sprintf("%s | %s reset | %s copy", status, resetKey, copyKey)
}
