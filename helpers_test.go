package bramble

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// monoFont measures every rune as 6x10 pixels so sizes are easy to predict.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	return float64(6 * w), float64(10 * len(lines))
}

func (monoFont) LineHeight() float64 { return 10 }

func (monoFont) Face() text.Face { return nil }

func testLabel(s string) *Component {
	c := NewLabel(s)
	c.Label().Font = monoFont{}
	return c
}

func testBox(w, h int) *Component {
	return NewBox(Fixed(w), Fixed(h), ColorWhite, true)
}

// newTestScreen attaches root to a w x h screen and lays it out.
func newTestScreen(t *testing.T, w, h int, root *Component) *Screen {
	t.Helper()
	s := NewScreen()
	s.Resize(w, h)
	if err := s.SetRoot(root); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if err := s.Layout(); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return s
}

// runFrames advances s by n frames at 60 TPS, reading only injected input.
func runFrames(s *Screen, n int) {
	for range n {
		s.frame(1.0/60, false)
	}
}

func wantBounds(t *testing.T, c *Component, want Rect) {
	t.Helper()
	if got := c.Bounds(); got != want {
		t.Errorf("%s bounds = %+v, want %+v", c.Path(), got, want)
	}
}
