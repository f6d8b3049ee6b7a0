package tilegrid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MarkerPulse fades the selection marker between Min and Max alpha. Each
// half of the period is a separate tween; when one finishes the next runs
// in the opposite direction.
//
// There is no global animation manager; the frame driver calls Update.
type MarkerPulse struct {
	Min, Max float32

	half   float32
	ease   ease.TweenFunc
	tween  *gween.Tween
	rising bool
	alpha  float32
}

// NewMarkerPulse creates a pulse with the given full period in seconds.
// A non-positive period disables the pulse and Alpha stays at max.
func NewMarkerPulse(period, min, max float32) *MarkerPulse {
	p := &MarkerPulse{Min: min, Max: max, half: period / 2, ease: ease.InOutSine}
	p.Restart()
	return p
}

// Restart begins a new fade-out from Max. Called when the selection moves
// so the marker starts fully visible.
func (p *MarkerPulse) Restart() {
	p.alpha = p.Max
	p.rising = false
	if p.half <= 0 {
		p.tween = nil
		return
	}
	p.tween = gween.New(p.Max, p.Min, p.half, p.ease)
}

// Update advances the pulse by dt seconds and returns the current alpha.
func (p *MarkerPulse) Update(dt float32) float32 {
	if p.tween == nil {
		return p.alpha
	}
	val, done := p.tween.Update(dt)
	p.alpha = val
	if done {
		p.rising = !p.rising
		if p.rising {
			p.tween = gween.New(p.Min, p.Max, p.half, p.ease)
		} else {
			p.tween = gween.New(p.Max, p.Min, p.half, p.ease)
		}
	}
	return p.alpha
}

// Alpha returns the most recent alpha.
func (p *MarkerPulse) Alpha() float32 {
	return p.alpha
}
