package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefresh is how often the FPS label re-reads the counters, in seconds.
const fpsRefresh = 0.5

// fpsContent is a label that periodically shows Ebitengine's FPS and TPS.
type fpsContent struct {
	LabelContent
	elapsed float64
}

// NewFPSLabel creates a label that displays the current FPS and TPS,
// refreshed every half second.
func NewFPSLabel() *Component {
	c := NewComponent("fps-label")
	c.Content = &fpsContent{LabelContent: LabelContent{Text: "FPS: -\nTPS: -", Color: ColorWhite, Shadow: true}}
	c.Background = &Background{Fill: ColorFromARGB(0x80000000)}
	c.Padding = InsetsAll(2)
	c.Interactable = false
	return c
}

func (f *fpsContent) Update(c *Component, dt float64, _, _ int) {
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if text != f.Text {
		f.Text = text
		c.MarkDirty()
	}
}
