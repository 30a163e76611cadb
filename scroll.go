package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollDirection is the axis a scroll container moves along.
type ScrollDirection uint8

const (
	// ScrollVertical scrolls along the y axis.
	ScrollVertical ScrollDirection = iota
	// ScrollHorizontal scrolls along the x axis.
	ScrollHorizontal
)

func (d ScrollDirection) axis() Axis {
	if d == ScrollHorizontal {
		return AxisHorizontal
	}
	return AxisVertical
}

const scrollSmoothing = 0.15 // seconds to ease towards a new target

// ScrollLayout shows one child through a viewport. The child is laid out
// with unbounded space along the scroll axis and moved by the offset.
type ScrollLayout struct {
	Direction ScrollDirection
	// Step is the distance per wheel notch; 0 uses Screen.ScrollStep.
	Step               int
	ScrollbarThickness int
	ScrollbarColor     Color

	child       *Component
	offset      float64
	target      float64
	tween       *gween.Tween
	applied     int // offset currently baked into the child's position
	maxScroll   int
	viewport    int
	barDragging bool
}

// VerticalScroll wraps child in a vertically scrolling viewport.
func VerticalScroll(horizontal, vertical Sizing, child *Component) *Component {
	return newScroll(ScrollVertical, horizontal, vertical, child)
}

// HorizontalScroll wraps child in a horizontally scrolling viewport.
func HorizontalScroll(horizontal, vertical Sizing, child *Component) *Component {
	return newScroll(ScrollHorizontal, horizontal, vertical, child)
}

func newScroll(dir ScrollDirection, horizontal, vertical Sizing, child *Component) *Component {
	c := NewComponent("scroll")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	l := &ScrollLayout{
		Direction:          dir,
		ScrollbarThickness: 3,
		ScrollbarColor:     ColorFromARGB(0xA0FFFFFF),
	}
	c.Layout = l
	if child != nil {
		l.SetChild(c, child)
	}
	return c
}

// SetChild replaces the scrolled child and resets the offset.
func (l *ScrollLayout) SetChild(c, child *Component) {
	if l.child != nil && l.child.Parent == c {
		c.RemoveChild(l.child)
	}
	l.child = child
	l.offset, l.target, l.applied = 0, 0, 0
	l.tween = nil
	if child != nil {
		c.AddChild(child)
	}
}

// Child returns the scrolled child.
func (l *ScrollLayout) Child() *Component { return l.child }

// Offset returns the current scroll offset in pixels.
func (l *ScrollLayout) Offset() float64 { return l.offset }

// MaxScroll returns the largest valid offset from the last layout.
func (l *ScrollLayout) MaxScroll() int { return l.maxScroll }

func (l *ScrollLayout) unboundedAxis() (Axis, bool) { return l.Direction.axis(), true }

// attached reports whether the child is still a visible child of c.
func (l *ScrollLayout) attached(c *Component) bool {
	return l.child != nil && l.child.Parent == c && l.child.Visible
}

// Measure reports the child's extent along a. Along the scroll axis the
// child is measured unbounded, so a content-sized viewport grows to fit it.
func (l *ScrollLayout) Measure(c *Component, a Axis, space Space) (int, error) {
	if !l.attached(c) {
		return 0, nil
	}
	if l.child.sizing(a).IsFill() {
		return 0, ambiguousFill(c, l.child, a)
	}
	n, err := resolveAxis(l.child, a, childSpace(l.child, space.withAxis(l.Direction.axis(), Unbounded)))
	if err != nil {
		return 0, err
	}
	return n + l.child.Margins.axis(a), nil
}

// Arrange lays the child out at its full extent along the scroll axis,
// shifted by the current offset, and clamps the offset to the new range.
func (l *ScrollLayout) Arrange(c *Component, content Rect) error {
	if !l.attached(c) {
		l.maxScroll = 0
		return arrangePositioned(c, content)
	}
	main := l.Direction.axis()
	cross := main.other()
	space := childSpace(l.child, spaceOf(content).withAxis(main, Unbounded))
	size, err := Resolve(l.child, space)
	if err != nil {
		return err
	}
	m := l.child.Margins
	l.viewport = rectExtent(content, main)
	l.maxScroll = max(0, size.axis(main)+m.axis(main)-l.viewport)
	l.target = clampFloat(l.target, 0, float64(l.maxScroll))
	l.offset = clampFloat(l.offset, 0, float64(l.maxScroll))
	l.applied = int(math.Round(l.offset))

	crossExtent := size.axis(cross)
	if !c.AllowOverflow {
		crossExtent = min(crossExtent, rectExtent(content, cross)-m.axis(cross))
	}
	r := axisRect(main,
		rectPos(content, main)+m.leading(main)-l.applied,
		rectPos(content, cross)+m.leading(cross),
		size.axis(main), max(0, crossExtent))
	if err := placeComponent(l.child, r); err != nil {
		return err
	}
	return arrangePositioned(c, content)
}

// ScrollBy moves the target offset by delta pixels and eases towards it.
func (l *ScrollLayout) ScrollBy(delta float64) {
	l.ScrollTo(l.target + delta)
}

// ScrollTo eases towards the given offset, clamped to the valid range.
func (l *ScrollLayout) ScrollTo(offset float64) {
	l.target = clampFloat(offset, 0, float64(l.maxScroll))
	if l.target == l.offset {
		l.tween = nil
		return
	}
	l.tween = gween.New(float32(l.offset), float32(l.target), scrollSmoothing, ease.OutQuad)
}

// jumpTo sets the offset without easing.
func (l *ScrollLayout) jumpTo(c *Component, offset float64) {
	l.target = clampFloat(offset, 0, float64(l.maxScroll))
	l.tween = nil
	l.setOffset(c, l.target)
}

func (l *ScrollLayout) setOffset(c *Component, offset float64) {
	l.offset = offset
	px := int(math.Round(offset))
	if px == l.applied || l.child == nil {
		return
	}
	d := l.applied - px
	if l.Direction == ScrollHorizontal {
		l.child.translate(d, 0)
	} else {
		l.child.translate(0, d)
	}
	l.applied = px
}

// Update advances the eased scroll toward its target offset.
func (l *ScrollLayout) Update(c *Component, dt float64, _, _ int) {
	if l.tween == nil {
		return
	}
	v, done := l.tween.Update(float32(dt))
	l.setOffset(c, float64(v))
	if done {
		l.setOffset(c, l.target)
		l.tween = nil
	}
}

func (l *ScrollLayout) step(c *Component) float64 {
	if l.Step > 0 {
		return float64(l.Step)
	}
	if s := c.Screen(); s != nil && s.ScrollStep > 0 {
		return float64(s.ScrollStep)
	}
	return defaultScrollStep
}

// scrollbar returns the track and thumb rects; ok is false when everything fits.
func (l *ScrollLayout) scrollbar(c *Component) (track, thumb Rect, ok bool) {
	if l.maxScroll <= 0 || l.viewport <= 0 {
		return Rect{}, Rect{}, false
	}
	content := c.ContentRect()
	t := max(1, l.ScrollbarThickness)
	total := l.viewport + l.maxScroll
	length := max(t*2, l.viewport*l.viewport/total)
	pos := int(float64(l.viewport-length) * l.offset / float64(l.maxScroll))
	if l.Direction == ScrollHorizontal {
		track = Rect{X: content.X, Y: content.Bottom() - t, Width: content.Width, Height: t}
		thumb = Rect{X: content.X + pos, Y: track.Y, Width: length, Height: t}
	} else {
		track = Rect{X: content.Right() - t, Y: content.Y, Width: t, Height: content.Height}
		thumb = Rect{X: track.X, Y: content.Y + pos, Width: t, Height: length}
	}
	return track, thumb, true
}

// DrawDecorations draws the scrollbar when the child overflows.
func (l *ScrollLayout) DrawDecorations(c *Component, s Surface, _ *DrawContext) {
	_, thumb, ok := l.scrollbar(c)
	if !ok {
		return
	}
	s.FillRect(thumb, l.ScrollbarColor)
}

// HandleEvent scrolls on wheel, navigation keys and scrollbar presses and
// drags. Events are left to bubble when the content already fits.
func (l *ScrollLayout) HandleEvent(c *Component, e *Event) bool {
	switch e.Type {
	case EventMouseScroll:
		if l.maxScroll <= 0 {
			return false
		}
		delta := e.DeltaY
		if l.Direction == ScrollHorizontal && e.DeltaX != 0 {
			delta = e.DeltaX
		}
		l.ScrollBy(-delta * l.step(c))
		return true
	case EventMouseDown:
		track, _, ok := l.scrollbar(c)
		if !ok || !track.Contains(e.X, e.Y) {
			return false
		}
		l.barDragging = true
		l.dragBar(c, e.X, e.Y, track)
		return true
	case EventDrag:
		if !l.barDragging {
			return false
		}
		track, _, _ := l.scrollbar(c)
		l.dragBar(c, e.X, e.Y, track)
		return true
	case EventDragEnd, EventMouseUp:
		if l.barDragging {
			l.barDragging = false
			return true
		}
	case EventKeyPress:
		switch e.Key {
		case ebiten.KeyPageDown:
			l.ScrollBy(float64(l.viewport))
		case ebiten.KeyPageUp:
			l.ScrollBy(-float64(l.viewport))
		case ebiten.KeyHome:
			l.ScrollTo(0)
		case ebiten.KeyEnd:
			l.ScrollTo(float64(l.maxScroll))
		default:
			return false
		}
		return true
	}
	return false
}

// dragBar maps a pointer position on the track to an offset.
func (l *ScrollLayout) dragBar(c *Component, x, y int, track Rect) {
	pos, extent := y-track.Y, track.Height
	if l.Direction == ScrollHorizontal {
		pos, extent = x-track.X, track.Width
	}
	if extent <= 0 {
		return
	}
	l.jumpTo(c, float64(pos)/float64(extent)*float64(l.maxScroll))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
