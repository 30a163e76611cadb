package bramble

// Content is the leaf behaviour of a component: its intrinsic size and how
// it draws inside its content rect.
type Content interface {
	// ContentSize returns the intrinsic size for the given space, which is
	// already reduced by the component's padding.
	ContentSize(c *Component, space Space) Size
	Draw(c *Component, s Surface, ctx *DrawContext)
}

// DrawContext is passed to every draw call of a frame.
type DrawContext struct {
	Screen         *Screen
	MouseX, MouseY int
	Delta          float64
}

// Updater is implemented by Layout and Content strategies that need a
// per-frame tick (scroll smoothing, caret blink, auto-closing dropdowns).
type Updater interface {
	Update(c *Component, dt float64, mouseX, mouseY int)
}

// Decorator is implemented by Layout strategies that draw on top of their
// children (scrollbars, collapsible arrows).
type Decorator interface {
	DrawDecorations(c *Component, s Surface, ctx *DrawContext)
}

// childContainer is implemented by wrappers whose template children belong
// to an inner component rather than the wrapper itself.
type childContainer interface {
	childTarget(c *Component) *Component
}

// BoxContent draws a filled or outlined rectangle over the content rect.
type BoxContent struct {
	Color  Color
	Filled bool
}

// NewBox creates a rectangle component.
func NewBox(horizontal, vertical Sizing, color Color, filled bool) *Component {
	c := NewComponent("box")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	c.Content = &BoxContent{Color: color, Filled: filled}
	return c
}

func (b *BoxContent) ContentSize(*Component, Space) Size { return Size{} }

func (b *BoxContent) Draw(c *Component, s Surface, _ *DrawContext) {
	r := c.ContentRect()
	if b.Filled {
		s.FillRect(r, b.Color)
		return
	}
	drawOutline(s, r, b.Color)
}
