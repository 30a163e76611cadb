package bramble

const defaultForeheadSize = 10

// DraggableLayout wraps one child below a forehead strip. Dragging the
// forehead moves the whole container; the accumulated offset survives
// relayouts.
type DraggableLayout struct {
	ForeheadSize int

	offsetX, offsetY int
	dragging         bool
}

// Draggable wraps child in a container that can be moved by its forehead.
func Draggable(horizontal, vertical Sizing, child *Component) *Component {
	c := NewComponent("draggable")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	l := &DraggableLayout{ForeheadSize: defaultForeheadSize}
	c.Layout = l
	c.Padding = Insets{Top: l.ForeheadSize}
	c.Cursor = CursorMove
	if child != nil {
		c.AddChild(child)
	}
	return c
}

// Offset returns the distance the container was dragged from its laid-out place.
func (l *DraggableLayout) Offset() (int, int) { return l.offsetX, l.offsetY }

// ResetOffset moves the container back to where its parent places it.
func (l *DraggableLayout) ResetOffset(c *Component) {
	c.translate(-l.offsetX, -l.offsetY)
	l.offsetX, l.offsetY = 0, 0
}

func (l *DraggableLayout) layoutOffset() (int, int) { return l.offsetX, l.offsetY }

// Measure returns the child's outer extent. The forehead is top padding, so
// sizing adds it on top.
func (l *DraggableLayout) Measure(c *Component, a Axis, space Space) (int, error) {
	return measureStacked(c, a, space)
}

// Arrange places the child in the content rect below the forehead. The drag
// offset is applied when the container itself is placed.
func (l *DraggableLayout) Arrange(c *Component, content Rect) error {
	return arrangeStacked(c, content)
}

func (l *DraggableLayout) forehead(c *Component) Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.Width, Height: min(l.ForeheadSize, c.Height)}
}

// HandleEvent moves the container while the forehead is dragged.
func (l *DraggableLayout) HandleEvent(c *Component, e *Event) bool {
	switch e.Type {
	case EventMouseDown:
		if l.forehead(c).Contains(e.X, e.Y) {
			l.dragging = true
			return true
		}
	case EventDrag:
		if !l.dragging {
			return false
		}
		dx, dy := int(e.DeltaX), int(e.DeltaY)
		l.offsetX += dx
		l.offsetY += dy
		c.translate(dx, dy)
		return true
	case EventDragEnd, EventMouseUp:
		if l.dragging {
			l.dragging = false
			return true
		}
	}
	return false
}

// DrawDecorations draws the forehead strip.
func (l *DraggableLayout) DrawDecorations(c *Component, s Surface, _ *DrawContext) {
	if c.hovered {
		s.FillRect(l.forehead(c), ColorFromARGB(0x40FFFFFF))
	}
}
