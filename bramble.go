package bramble

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at submission time.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// ColorFromARGB converts a packed 0xAARRGGBB value into a Color.
func ColorFromARGB(argb uint32) Color {
	return Color{
		R: float64((argb>>16)&0xFF) / 255,
		G: float64((argb>>8)&0xFF) / 255,
		B: float64(argb&0xFF) / 255,
		A: float64((argb>>24)&0xFF) / 255,
	}
}

// ARGB packs the color back into 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(clampUnit(c.A)*255+0.5)<<24 |
		uint32(clampUnit(c.R)*255+0.5)<<16 |
		uint32(clampUnit(c.G)*255+0.5)<<8 |
		uint32(clampUnit(c.B)*255+0.5)
}

// Multiply returns the component-wise product of c and o.
func (c Color) Multiply(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Lerp interpolates between c and to by t in [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clampUnit(c.R*c.A) * 255),
		G: uint8(clampUnit(c.G*c.A) * 255),
		B: uint8(clampUnit(c.B*c.A) * 255),
		A: uint8(clampUnit(c.A) * 255),
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// whitePixel is a 1x1 white image used for solid fills. Created lazily so
// that packages importing bramble do not touch the graphics driver at init.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Rect is an axis-aligned rectangle in screen pixels. The origin is the
// top-left corner with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether (x, y) lies inside the rectangle. The left and top
// edges are inside, the right and bottom edges are outside, so adjacent
// siblings never both contain a point.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect reports whether other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Intersect returns the overlap of r and other, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Inset shrinks the rectangle by the given insets.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  max(0, r.Width-in.Horizontal()),
		Height: max(0, r.Height-in.Vertical()),
	}
}

// Outset grows the rectangle by the given insets.
func (r Rect) Outset(in Insets) Rect {
	return Rect{
		X:      r.X - in.Left,
		Y:      r.Y - in.Top,
		Width:  r.Width + in.Horizontal(),
		Height: r.Height + in.Vertical(),
	}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// clampRect confines r to bounds without moving the parts of r that already
// fit. A rect that lies completely outside collapses to zero size on the
// nearest edge of bounds.
func clampRect(r, bounds Rect) Rect {
	x := clampInt(r.X, bounds.X, bounds.Right())
	y := clampInt(r.Y, bounds.Y, bounds.Bottom())
	right := clampInt(r.Right(), x, bounds.Right())
	bottom := clampInt(r.Bottom(), y, bounds.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Axis selects the horizontal or vertical dimension.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) other() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Size is a resolved width and height.
type Size struct {
	Width, Height int
}

func (s Size) axis(a Axis) int {
	if a == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func sizeOf(a Axis, along, across int) Size {
	if a == AxisHorizontal {
		return Size{Width: along, Height: across}
	}
	return Size{Width: across, Height: along}
}

// Unbounded marks an axis of a Space that has no upper limit.
const Unbounded = -1

// Space is the room offered to a component on each axis. Either extent may be
// Unbounded.
type Space struct {
	Width, Height int
}

func (s Space) axis(a Axis) int {
	if a == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func (s Space) withAxis(a Axis, v int) Space {
	if a == AxisHorizontal {
		s.Width = v
	} else {
		s.Height = v
	}
	return s
}

// shrink removes in from both bounded axes; unbounded axes stay unbounded.
func (s Space) shrink(in Insets) Space {
	if s.Width != Unbounded {
		s.Width = max(0, s.Width-in.Horizontal())
	}
	if s.Height != Unbounded {
		s.Height = max(0, s.Height-in.Vertical())
	}
	return s
}

func spaceOf(r Rect) Space {
	return Space{Width: r.Width, Height: r.Height}
}

// Insets holds per-edge spacing used for margins and padding.
type Insets struct {
	Top, Bottom, Left, Right int
}

// InsetsAll returns insets with the same value on every edge.
func InsetsAll(n int) Insets { return Insets{n, n, n, n} }

// InsetsOf returns insets in top, bottom, left, right order.
func InsetsOf(top, bottom, left, right int) Insets {
	return Insets{Top: top, Bottom: bottom, Left: left, Right: right}
}

// InsetsVertical returns insets with only top and bottom set.
func InsetsVertical(n int) Insets { return Insets{Top: n, Bottom: n} }

// InsetsHorizontal returns insets with only left and right set.
func InsetsHorizontal(n int) Insets { return Insets{Left: n, Right: n} }

// Horizontal returns Left + Right.
func (in Insets) Horizontal() int { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() int { return in.Top + in.Bottom }

func (in Insets) axis(a Axis) int {
	if a == AxisHorizontal {
		return in.Horizontal()
	}
	return in.Vertical()
}

// leading returns the inset at the start of the axis (left or top).
func (in Insets) leading(a Axis) int {
	if a == AxisHorizontal {
		return in.Left
	}
	return in.Top
}

// Alignment positions content inside a larger extent.
type Alignment uint8

const (
	AlignStart  Alignment = iota // left or top
	AlignCenter                  // centered
	AlignEnd                     // right or bottom
)

// offset returns how far content should be shifted to honour the alignment
// when free pixels are available. Negative free space never shifts content.
func (a Alignment) offset(free int) int {
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// TextAlign controls horizontal alignment of label lines.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// EventType identifies a kind of interaction or lifecycle event.
type EventType uint8

const (
	EventMouseDown   EventType = iota // pointer button pressed
	EventMouseUp                      // pointer button released
	EventClick                        // press then release over the same component
	EventMouseScroll                  // wheel moved
	EventDragStart                    // movement past the drag dead zone
	EventDrag                         // each frame while dragging
	EventDragEnd                      // release after dragging
	EventMouseEnter                   // pointer entered the component
	EventMouseLeave                   // pointer left the component
	EventKeyPress                     // key pressed while focused
	EventCharTyped                    // text input while focused
	EventFocusGained                  // component became focused
	EventFocusLost                    // component lost focus
	EventMount                        // attached to a parent
	EventDismount                     // detached from its parent

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"mouse-down", "mouse-up", "click", "mouse-scroll", "drag-start", "drag",
	"drag-end", "mouse-enter", "mouse-leave", "key-press", "char-typed",
	"focus-gained", "focus-lost", "mount", "dismount",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// CursorStyle is the pointer shape shown while hovering a component.
type CursorStyle uint8

const (
	CursorDefault CursorStyle = iota
	CursorText
	CursorHand
	CursorMove
	CursorCrosshair
	CursorResizeEW
	CursorResizeNS
)

func (c CursorStyle) ebitenShape() ebiten.CursorShapeType {
	switch c {
	case CursorText:
		return ebiten.CursorShapeText
	case CursorHand:
		return ebiten.CursorShapePointer
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case CursorResizeEW:
		return ebiten.CursorShapeEWResize
	case CursorResizeNS:
		return ebiten.CursorShapeNSResize
	default:
		return ebiten.CursorShapeDefault
	}
}
