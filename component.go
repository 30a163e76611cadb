package bramble

import (
	"strconv"
	"strings"
)

// componentIDCounter is a plain counter (no atomic, bramble is single-threaded).
var componentIDCounter uint32

func nextComponentID() uint32 {
	componentIDCounter++
	return componentIDCounter
}

// PositioningType selects how a component is placed inside its parent.
type PositioningType uint8

const (
	// PositionLayout lets the parent's layout place the component.
	PositionLayout PositioningType = iota
	// PositionAbsolute places the component at a pixel offset from the
	// parent's content origin. It does not take part in flow.
	PositionAbsolute
	// PositionRelative places the component at a percentage of the parent's
	// free space on each axis (0 = start, 100 = end).
	PositionRelative
)

// Positioning is a placement intent together with its offsets.
type Positioning struct {
	Type PositioningType
	X, Y int
}

// Absolute returns an absolute positioning at (x, y).
func Absolute(x, y int) Positioning { return Positioning{Type: PositionAbsolute, X: x, Y: y} }

// Relative returns a relative positioning at (xPercent, yPercent).
func Relative(xPercent, yPercent int) Positioning {
	return Positioning{Type: PositionRelative, X: xPercent, Y: yPercent}
}

// Background is the surface painted behind a component's content.
type Background struct {
	Fill    Color
	Outline Color
}

var (
	// BackgroundPanel is the light framed panel look.
	BackgroundPanel = &Background{Fill: ColorFromARGB(0xFFC6C6C6), Outline: ColorFromARGB(0xFF373737)}
	// BackgroundDarkPanel is the dark framed panel look.
	BackgroundDarkPanel = &Background{Fill: ColorFromARGB(0xFF2B2B2B), Outline: ColorFromARGB(0xFF111111)}
	// BackgroundTooltip is used for tooltips and dropdown menus.
	BackgroundTooltip = &Background{Fill: ColorFromARGB(0xF0100010), Outline: ColorFromARGB(0x505000FF)}
)

// Component is the single node type of the UI tree. Containers carry a Layout,
// leaves carry a Content strategy; any combination is valid.
type Component struct {
	// Identity
	ID   uint32
	Name string
	Kind string

	// Hierarchy
	Parent   *Component
	children []*Component

	// Geometry computed by the last layout pass, in screen pixels.
	X, Y, Width, Height int

	// Sizing and placement intent
	HorizontalSizing Sizing
	VerticalSizing   Sizing
	Margins          Insets
	Padding          Insets
	Positioning      Positioning

	// Flags
	Visible       bool
	Interactable  bool
	Focusable     bool
	AllowOverflow bool
	ZIndex        int

	// Container configuration
	Layout              Layout
	Gap                 int
	HorizontalAlignment Alignment
	VerticalAlignment   Alignment
	Background          *Background

	// Leaf behaviour
	Content Content

	// Extras
	Tooltip  string
	Cursor   CursorStyle
	UserData any
	EntityID uint32

	listeners listenerSet

	// screen is set on layer roots only; see Screen().
	screen *Screen
	cell   gridCell

	hovered        bool
	focused        bool
	pendingRemoval bool
	disposed       bool
	childrenSorted bool
	sortedChildren []*Component
}

// NewComponent creates a bare component of the given kind. The component is
// visible, interactable and content-sized on both axes.
func NewComponent(kind string) *Component {
	return &Component{
		ID:               nextComponentID(),
		Kind:             kind,
		HorizontalSizing: Content(0),
		VerticalSizing:   Content(0),
		Visible:          true,
		Interactable:     true,
		childrenSorted:   true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this component's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this component (cycle).
func (c *Component) AddChild(child *Component) {
	c.AddChildAt(child, len(c.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (c *Component) AddChildAt(child *Component, index int) {
	if child == nil {
		panic("bramble: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(c, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, c) {
		panic("bramble: adding child would create a cycle")
	}
	if child.Parent != nil {
		if child.Parent == c && c.indexOf(child) < index {
			index--
		}
		child.Parent.detach(child)
	}
	if index < 0 || index > len(c.children) {
		panic("bramble: child index out of range")
	}
	child.Parent = c
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	c.childrenSorted = false
	c.MarkDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
	child.fireLifecycle(EventMount)
}

// RemoveChild detaches child from this component.
// Panics if child.Parent != c.
func (c *Component) RemoveChild(child *Component) {
	if child.Parent != c {
		panic("bramble: child's parent is not this component")
	}
	c.detach(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (c *Component) RemoveChildAt(index int) *Component {
	if index < 0 || index >= len(c.children) {
		panic("bramble: child index out of range")
	}
	child := c.children[index]
	c.detach(child)
	return child
}

// RemoveFromParent detaches this component from its parent.
// No-op if this component has no parent.
func (c *Component) RemoveFromParent() {
	if c.Parent == nil {
		return
	}
	c.Parent.detach(c)
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (c *Component) RemoveChildren() {
	for len(c.children) > 0 {
		c.detach(c.children[len(c.children)-1])
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (c *Component) Children() []*Component {
	return c.children
}

// NumChildren returns the number of children.
func (c *Component) NumChildren() int {
	return len(c.children)
}

// ChildAt returns the child at the given index.
func (c *Component) ChildAt(index int) *Component {
	return c.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (c *Component) SetChildIndex(child *Component, index int) {
	if child.Parent != c {
		panic("bramble: child's parent is not this component")
	}
	if index < 0 || index >= len(c.children) {
		panic("bramble: child index out of range")
	}
	old := c.indexOf(child)
	if old == index {
		return
	}
	if old < index {
		copy(c.children[old:], c.children[old+1:index+1])
	} else {
		copy(c.children[index+1:], c.children[index:old])
	}
	c.children[index] = child
	c.childrenSorted = false
	c.MarkDirty()
}

// SetZIndex sets the draw and hit-test order among siblings.
func (c *Component) SetZIndex(z int) {
	if c.ZIndex == z {
		return
	}
	c.ZIndex = z
	if c.Parent != nil {
		c.Parent.childrenSorted = false
	}
}

// --- Sizing and placement setters ---

// SetSizing sets both sizing intents and schedules a relayout.
func (c *Component) SetSizing(horizontal, vertical Sizing) {
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	c.MarkDirty()
}

// SetMargins sets the outer spacing and schedules a relayout.
func (c *Component) SetMargins(in Insets) {
	c.Margins = in
	c.MarkDirty()
}

// SetPadding sets the inner spacing and schedules a relayout.
func (c *Component) SetPadding(in Insets) {
	c.Padding = in
	c.MarkDirty()
}

// SetPositioning sets the placement intent and schedules a relayout.
func (c *Component) SetPositioning(p Positioning) {
	c.Positioning = p
	c.MarkDirty()
}

// SetVisible shows or hides the component. Hidden components take no space.
func (c *Component) SetVisible(v bool) {
	if c.Visible == v {
		return
	}
	c.Visible = v
	c.MarkDirty()
}

// MarkDirty schedules a relayout of the screen this component belongs to.
func (c *Component) MarkDirty() {
	if s := c.Screen(); s != nil {
		s.layoutDirty = true
	}
}

func (c *Component) sizing(a Axis) Sizing {
	if a == AxisHorizontal {
		return c.HorizontalSizing
	}
	return c.VerticalSizing
}

func (c *Component) alignment(a Axis) Alignment {
	if a == AxisHorizontal {
		return c.HorizontalAlignment
	}
	return c.VerticalAlignment
}

// --- Geometry queries ---

// Bounds returns the component's rectangle from the last layout pass.
func (c *Component) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// ContentRect returns the bounds minus padding.
func (c *Component) ContentRect() Rect {
	return c.Bounds().Inset(c.Padding)
}

// IsInBoundingBox reports whether (x, y) lies inside the component's bounds.
func (c *Component) IsInBoundingBox(x, y int) bool {
	return c.Bounds().Contains(x, y)
}

// Hovered reports whether the pointer is on this component's hover path.
func (c *Component) Hovered() bool { return c.hovered }

// Focused reports whether this component holds keyboard focus.
func (c *Component) Focused() bool { return c.focused }

// --- Lookup ---

// Root returns the topmost ancestor.
func (c *Component) Root() *Component {
	r := c
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Screen returns the screen this component is attached to, or nil.
func (c *Component) Screen() *Screen {
	return c.Root().screen
}

// FindByName returns the first descendant (including c) with the given name,
// searching depth-first in child order.
func (c *Component) FindByName(name string) *Component {
	if c.Name == name {
		return c
	}
	for _, child := range c.children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Path returns a slash-separated path from the root, e.g.
// "flow-layout/grid-layout[1]/label#title". Used in error messages.
func (c *Component) Path() string {
	var parts []string
	for n := c; n != nil; n = n.Parent {
		parts = append(parts, n.pathSegment())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (c *Component) pathSegment() string {
	kind := c.Kind
	if kind == "" {
		kind = "component"
	}
	if c.Name != "" {
		return kind + "#" + c.Name
	}
	if c.Parent != nil {
		return kind + "[" + strconv.Itoa(c.Parent.indexOf(c)) + "]"
	}
	return kind
}

// --- Deferred mutation ---

// Queue runs fn after the current input or draw pass. Components that are not
// attached to a screen run fn immediately.
func (c *Component) Queue(fn func()) {
	if s := c.Screen(); s != nil {
		s.enqueue(fn)
		return
	}
	fn()
}

// RemoveLater marks the component for removal and detaches it at the next
// flush. Until then it stays in the tree but receives no events and is not
// hit-tested.
func (c *Component) RemoveLater() {
	if c.Parent == nil || c.pendingRemoval {
		return
	}
	c.pendingRemoval = true
	c.Queue(func() {
		c.pendingRemoval = false
		c.RemoveFromParent()
	})
}

// IsPendingRemoval reports whether RemoveLater was called and the removal has
// not yet been applied.
func (c *Component) IsPendingRemoval() bool {
	return c.pendingRemoval
}

// --- Disposal ---

// Dispose removes this component from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.RemoveFromParent()
	c.dispose()
}

func (c *Component) dispose() {
	c.disposed = true
	c.ID = 0
	for _, child := range c.children {
		child.Parent = nil
		child.dispose()
	}
	c.children = nil
	c.sortedChildren = nil
	c.Parent = nil
	c.Layout = nil
	c.Content = nil
	c.Background = nil
	c.UserData = nil
	c.screen = nil
	c.listeners = listenerSet{}
}

// IsDisposed returns true if this component has been disposed.
func (c *Component) IsDisposed() bool {
	return c.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) c.
func isAncestor(candidate, c *Component) bool {
	for p := c; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (c *Component) indexOf(child *Component) int {
	for i, ch := range c.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// detach removes child from c.children and fires the dismount lifecycle.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (c *Component) detach(child *Component) {
	i := c.indexOf(child)
	if i < 0 {
		return
	}
	s := c.Screen()
	copy(c.children[i:], c.children[i+1:])
	c.children[len(c.children)-1] = nil
	c.children = c.children[:len(c.children)-1]
	c.childrenSorted = false
	child.fireLifecycle(EventDismount)
	child.Parent = nil
	if s != nil {
		s.layoutDirty = true
		s.forget(child)
	}
}

// paintOrder returns children sorted by ZIndex, stable in child order.
func (c *Component) paintOrder() []*Component {
	if !c.childrenSorted {
		c.rebuildSortedChildren()
	}
	return c.sortedChildren
}

// rebuildSortedChildren uses insertion sort: zero allocations, stable, and
// O(n) for the common case of children that are already in order.
func (c *Component) rebuildSortedChildren() {
	nc := len(c.children)
	if cap(c.sortedChildren) < nc {
		c.sortedChildren = make([]*Component, nc)
	}
	c.sortedChildren = c.sortedChildren[:nc]
	copy(c.sortedChildren, c.children)
	for i := 1; i < nc; i++ {
		key := c.sortedChildren[i]
		j := i - 1
		for j >= 0 && c.sortedChildren[j].ZIndex > key.ZIndex {
			c.sortedChildren[j+1] = c.sortedChildren[j]
			j--
		}
		c.sortedChildren[j+1] = key
	}
	c.childrenSorted = true
}

// layoutChildren returns the visible children placed by the layout, in child order.
func (c *Component) layoutChildren() []*Component {
	out := make([]*Component, 0, len(c.children))
	for _, ch := range c.children {
		if ch.Visible && ch.Positioning.Type == PositionLayout {
			out = append(out, ch)
		}
	}
	return out
}

// translate moves c and its whole subtree by (dx, dy) without a relayout.
func (c *Component) translate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	c.X += dx
	c.Y += dy
	for _, ch := range c.children {
		ch.translate(dx, dy)
	}
}
