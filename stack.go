package bramble

// StackLayout lays every child over the same content rect, aligned per the
// parent's alignment. Later children draw on top.
type StackLayout struct{}

// Stack creates a container whose children overlap.
func Stack(horizontal, vertical Sizing) *Component {
	c := NewComponent("stack-layout")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	c.Layout = StackLayout{}
	return c
}

// Measure returns the largest child extent along a.
func (StackLayout) Measure(c *Component, a Axis, space Space) (int, error) {
	return measureStacked(c, a, space)
}

// Arrange resolves each child against the whole content rect.
func (StackLayout) Arrange(c *Component, content Rect) error {
	return arrangeStacked(c, content)
}

func measureStacked(c *Component, a Axis, space Space) (int, error) {
	extent := 0
	for _, ch := range c.layoutChildren() {
		if ch.sizing(a).IsFill() {
			return 0, ambiguousFill(c, ch, a)
		}
		n, err := resolveAxis(ch, a, childSpace(ch, space))
		if err != nil {
			return 0, err
		}
		extent = max(extent, n+ch.Margins.axis(a))
	}
	return extent, nil
}

func arrangeStacked(c *Component, content Rect) error {
	for _, ch := range c.layoutChildren() {
		size, err := Resolve(ch, childSpace(ch, spaceOf(content)))
		if err != nil {
			return err
		}
		m := ch.Margins
		x := content.X + m.Left + c.HorizontalAlignment.offset(content.Width-m.Horizontal()-size.Width)
		y := content.Y + m.Top + c.VerticalAlignment.offset(content.Height-m.Vertical()-size.Height)
		r := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
		if !c.AllowOverflow {
			r = clampRect(r, content)
		}
		if err := placeComponent(ch, r); err != nil {
			return err
		}
	}
	return arrangePositioned(c, content)
}
