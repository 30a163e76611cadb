package bramble

// Layout arranges a component's children. A component with a nil Layout is a
// leaf whose extent comes from its Content.
type Layout interface {
	// Measure returns the extent along axis a that the children need, not
	// including c's own padding. space is the room inside c's padding.
	Measure(c *Component, a Axis, space Space) (int, error)
	// Arrange places every child of c inside content, recursing into the
	// children's own layouts.
	Arrange(c *Component, content Rect) error
}

// layoutOffsetter is implemented by layouts that shift their own component
// away from where the parent placed it (draggable containers).
type layoutOffsetter interface {
	layoutOffset() (dx, dy int)
}

// placeComponent assigns c its final rect and lays out its subtree.
func placeComponent(c *Component, r Rect) error {
	if o, ok := c.Layout.(layoutOffsetter); ok {
		dx, dy := o.layoutOffset()
		r = r.Translate(dx, dy)
	}
	c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.Width, r.Height
	if c.Layout == nil {
		return nil
	}
	return c.Layout.Arrange(c, c.ContentRect())
}

// childSpace is the space offered to child inside area, after its margins.
func childSpace(child *Component, area Space) Space {
	return area.shrink(child.Margins)
}

// arrangePositioned places the absolute and relative children of c. Layout
// children are handled by the caller.
func arrangePositioned(c *Component, content Rect) error {
	for _, ch := range c.children {
		if !ch.Visible || ch.Positioning.Type == PositionLayout {
			continue
		}
		size, err := Resolve(ch, childSpace(ch, spaceOf(content)))
		if err != nil {
			return err
		}
		var x, y int
		switch ch.Positioning.Type {
		case PositionAbsolute:
			x = content.X + ch.Positioning.X + ch.Margins.Left
			y = content.Y + ch.Positioning.Y + ch.Margins.Top
		case PositionRelative:
			freeX := content.Width - size.Width - ch.Margins.Horizontal()
			freeY := content.Height - size.Height - ch.Margins.Vertical()
			x = content.X + ch.Margins.Left + freeX*ch.Positioning.X/100
			y = content.Y + ch.Margins.Top + freeY*ch.Positioning.Y/100
		}
		r := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
		if !c.AllowOverflow {
			r = clampRect(r, content)
		}
		if err := placeComponent(ch, r); err != nil {
			return err
		}
	}
	return nil
}

// axisRect builds a rect from main/cross axis coordinates.
func axisRect(main Axis, mainPos, crossPos, mainSize, crossSize int) Rect {
	if main == AxisHorizontal {
		return Rect{X: mainPos, Y: crossPos, Width: mainSize, Height: crossSize}
	}
	return Rect{X: crossPos, Y: mainPos, Width: crossSize, Height: mainSize}
}

func rectPos(r Rect, a Axis) int {
	if a == AxisHorizontal {
		return r.X
	}
	return r.Y
}

func rectExtent(r Rect, a Axis) int {
	if a == AxisHorizontal {
		return r.Width
	}
	return r.Height
}
