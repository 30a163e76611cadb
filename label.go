package bramble

import "math"

// LabelContent draws one or more lines of text.
type LabelContent struct {
	Text     string
	Font     Font
	Color    Color
	Shadow   bool
	Align    TextAlign
	MaxWidth int // wrap width in pixels; 0 wraps only to the offered space
}

// NewLabel creates a white text label using the default font.
func NewLabel(s string) *Component {
	c := NewComponent("label")
	c.Content = &LabelContent{Text: s, Color: ColorWhite}
	return c
}

// Label returns c's label content, or nil when c is not a label.
func (c *Component) Label() *LabelContent {
	l, _ := c.Content.(*LabelContent)
	return l
}

// SetText replaces the label text and schedules a relayout. No-op on
// components that are not labels.
func (c *Component) SetText(s string) {
	if l := c.Label(); l != nil && l.Text != s {
		l.Text = s
		c.MarkDirty()
	}
}

func (l *LabelContent) font() Font {
	if l.Font != nil {
		return l.Font
	}
	return DefaultFont()
}

func (l *LabelContent) wrapWidth(available int) int {
	w := l.MaxWidth
	if available != Unbounded && (w <= 0 || available < w) {
		w = available
	}
	return w
}

func (l *LabelContent) ContentSize(_ *Component, space Space) Size {
	f := l.font()
	w, h := measureLines(wrapText(l.Text, f, l.wrapWidth(space.Width)), f)
	if l.Shadow {
		w++
		h++
	}
	return Size{Width: w, Height: h}
}

func (l *LabelContent) Draw(c *Component, s Surface, _ *DrawContext) {
	l.drawIn(c.ContentRect(), s, l.Color)
}

func (l *LabelContent) drawIn(r Rect, s Surface, col Color) {
	f := l.font()
	lines := wrapText(l.Text, f, l.wrapWidth(r.Width))
	lh := f.LineHeight()
	for i, line := range lines {
		lw, _ := f.MeasureString(line)
		x := float64(r.X)
		switch l.Align {
		case TextAlignCenter:
			x += math.Floor((float64(r.Width) - lw) / 2)
		case TextAlignRight:
			x += float64(r.Width) - lw
		}
		y := float64(r.Y) + lh*float64(i)
		if l.Shadow {
			s.DrawText(line, f, x+1, y+1, Color{R: col.R * 0.25, G: col.G * 0.25, B: col.B * 0.25, A: col.A})
		}
		s.DrawText(line, f, x, y, col)
	}
}
