package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState tracks the single mouse pointer between frames.
type pointerState struct {
	down     bool
	button   MouseButton // button captured at press time
	startX   int
	startY   int
	lastX    int
	lastY    int
	dragging bool

	// pressTarget is the deepest component hit at press time; a release over
	// the same component is a click. captured consumed the press and
	// receives the drag events.
	pressTarget *Component
	captured    *Component
}

// --- Hit testing ---

// hitTest returns the deepest visible, interactable component under (x, y),
// searching layers top-down and children in reverse paint order.
func (s *Screen) hitTest(x, y int) *Component {
	full := Rect{X: math.MinInt32 / 2, Y: math.MinInt32 / 2, Width: math.MaxInt32, Height: math.MaxInt32}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if h := hitTestComponent(s.layers[i].Root, x, y, full); h != nil {
			return h
		}
	}
	return nil
}

func hitTestComponent(c *Component, x, y int, clip Rect) *Component {
	if !c.Visible || c.pendingRemoval || c.disposed {
		return nil
	}
	if len(c.children) > 0 {
		childClip := clip
		if !c.AllowOverflow {
			childClip = clip.Intersect(c.ContentRect())
		}
		if !childClip.IsEmpty() {
			children := c.paintOrder()
			for i := len(children) - 1; i >= 0; i-- {
				if h := hitTestComponent(children[i], x, y, childClip); h != nil {
					return h
				}
			}
		}
	}
	if c.Interactable && clip.Contains(x, y) && c.Bounds().Contains(x, y) {
		return c
	}
	return nil
}

// --- Host input ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processHostInput reads Ebitengine's mouse, wheel and keyboard state and
// feeds it through the router.
func (s *Screen) processHostInput() {
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()

	var pressed bool
	button := s.pointer.button
	if !s.pointer.down {
		button = MouseButtonLeft
	}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if !s.pointer.down {
			switch {
			case left:
				button = MouseButtonLeft
			case right:
				button = MouseButtonRight
			default:
				button = MouseButtonMiddle
			}
		}
	}
	s.processPointer(mx, my, pressed, button, mods)

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		s.processScroll(mx, my, wx, wy, mods)
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		s.processKey(k, mods)
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		s.processChar(r, mods)
	}

	cursor := CursorDefault
	for _, c := range s.hoverPath {
		if c.Cursor != CursorDefault {
			cursor = c.Cursor
			break
		}
	}
	ebiten.SetCursorShape(cursor.ebitenShape())
}

// --- Router ---

// processPointer runs the pointer state machine for one frame.
func (s *Screen) processPointer(x, y int, pressed bool, button MouseButton, mods KeyModifiers) {
	s.mouseX, s.mouseY = x, y
	hit := s.hitTest(x, y)
	s.updateHover(hit, x, y, mods)

	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		ps.pressTarget = hit
		s.focusFor(hit)
		consumer := s.dispatch(hit, s.pointerEvent(EventMouseDown, x, y, button, mods))
		if consumer == nil {
			consumer = hit
		}
		ps.captured = consumer

	case !pressed && ps.down:
		if ps.dragging {
			e := s.pointerEvent(EventDragEnd, x, y, ps.button, mods)
			e.StartX, e.StartY = ps.startX, ps.startY
			e.DeltaX, e.DeltaY = float64(x-ps.lastX), float64(y-ps.lastY)
			s.deliverTo(ps.captured, e)
		} else if ps.pressTarget != nil && ps.pressTarget == hit {
			s.dispatch(hit, s.pointerEvent(EventClick, x, y, ps.button, mods))
		}
		s.dispatch(hit, s.pointerEvent(EventMouseUp, x, y, ps.button, mods))
		ps.down = false
		ps.dragging = false
		ps.pressTarget = nil
		ps.captured = nil

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := float64(x - ps.startX)
			dy := float64(y - ps.startY)
			if math.Sqrt(dx*dx+dy*dy) > s.DragDeadZone {
				ps.dragging = true
				e := s.pointerEvent(EventDragStart, x, y, ps.button, mods)
				e.StartX, e.StartY = ps.startX, ps.startY
				e.DeltaX, e.DeltaY = dx, dy
				s.deliverTo(ps.captured, e)
			}
		}
		if ps.dragging {
			e := s.pointerEvent(EventDrag, x, y, ps.button, mods)
			e.StartX, e.StartY = ps.startX, ps.startY
			e.DeltaX, e.DeltaY = float64(x-ps.lastX), float64(y-ps.lastY)
			s.deliverTo(ps.captured, e)
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// processScroll routes a wheel movement to the component under the pointer.
func (s *Screen) processScroll(x, y int, dx, dy float64, mods KeyModifiers) {
	s.mouseX, s.mouseY = x, y
	e := s.pointerEvent(EventMouseScroll, x, y, MouseButtonLeft, mods)
	e.DeltaX, e.DeltaY = dx, dy
	s.dispatch(s.hitTest(x, y), e)
}

// processKey routes a key press to the focused component. Tab and Shift-Tab
// move focus unless the focused component consumes them.
func (s *Screen) processKey(key ebiten.Key, mods KeyModifiers) {
	e := &Event{Type: EventKeyPress, Key: key, Modifiers: mods, X: s.mouseX, Y: s.mouseY}
	if s.dispatch(s.focused, e) != nil || e.consumed {
		return
	}
	if key == ebiten.KeyTab {
		s.FocusNext(mods&ModShift != 0)
	}
}

// processChar routes typed text to the focused component.
func (s *Screen) processChar(r rune, mods KeyModifiers) {
	s.dispatch(s.focused, &Event{Type: EventCharTyped, Char: r, Modifiers: mods, X: s.mouseX, Y: s.mouseY})
}

func (s *Screen) pointerEvent(t EventType, x, y int, button MouseButton, mods KeyModifiers) *Event {
	return &Event{Type: t, X: x, Y: y, Button: button, Modifiers: mods}
}

// updateHover fires leave events for components that dropped off the hover
// path (innermost first) and enter events for new ones (outermost first).
func (s *Screen) updateHover(hit *Component, x, y int, mods KeyModifiers) {
	var path []*Component
	for c := hit; c != nil; c = c.Parent {
		path = append(path, c)
	}
	for _, old := range s.hoverPath {
		if containsComponent(path, old) {
			continue
		}
		old.hovered = false
		s.deliverTo(old, s.pointerEvent(EventMouseLeave, x, y, MouseButtonLeft, mods))
	}
	for i := len(path) - 1; i >= 0; i-- {
		c := path[i]
		if c.hovered {
			continue
		}
		c.hovered = true
		s.deliverTo(c, s.pointerEvent(EventMouseEnter, x, y, MouseButtonLeft, mods))
	}
	s.hoverPath = path
}

func containsComponent(list []*Component, c *Component) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

// Hovered returns the deepest hovered component, or nil.
func (s *Screen) Hovered() *Component {
	if len(s.hoverPath) == 0 {
		return nil
	}
	return s.hoverPath[0]
}

// dispatch runs screen-level listeners, then offers e to target and its
// ancestors until one consumes it. Returns the consumer, or nil.
func (s *Screen) dispatch(target *Component, e *Event) *Component {
	e.Target = target
	e.Component = target
	s.handlers.fire(e)
	if e.consumed {
		return nil
	}
	for c := target; c != nil; c = c.Parent {
		if !c.Interactable && c != target {
			continue
		}
		if s.deliver(c, e) {
			return c
		}
	}
	return nil
}

// deliverTo sends e to c only, without bubbling. Used for hover, focus and
// drag events which always belong to one component.
func (s *Screen) deliverTo(c *Component, e *Event) {
	if c == nil {
		return
	}
	e.Target = c
	e.Component = c
	s.handlers.fire(e)
	if e.consumed {
		return
	}
	s.deliver(c, e)
}

// deliver runs c's strategy handlers and then its listeners. A component
// consumes the event when a strategy returns true or it has listeners for
// the event type. Panics are recovered and count as consumption so the
// event does not reach the parents of a broken component.
func (s *Screen) deliver(c *Component, e *Event) (consumed bool) {
	if c.pendingRemoval || c.disposed {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logRecovered("dispatch of "+e.Type.String(), c, r)
			consumed = true
		}
	}()
	e.Component = c
	e.LocalX, e.LocalY = e.X-c.X, e.Y-c.Y
	if h, ok := c.Layout.(EventHandler); ok && h.HandleEvent(c, e) {
		e.consumed = true
	}
	if h, ok := c.Content.(EventHandler); ok && h.HandleEvent(c, e) {
		e.consumed = true
	}
	if c.listeners.has(e.Type) {
		c.listeners.fire(e)
		e.consumed = true
	}
	if e.consumed {
		s.emitInteraction(c, e)
	}
	return e.consumed
}

// --- ECS bridge ---

func (s *Screen) emitInteraction(c *Component, e *Event) {
	if s.store == nil || c.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      e.Type,
		EntityID:  c.EntityID,
		Name:      c.Name,
		X:         e.X,
		Y:         e.Y,
		LocalX:    e.LocalX,
		LocalY:    e.LocalY,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		DeltaX:    e.DeltaX,
		DeltaY:    e.DeltaY,
		Key:       e.Key,
		Char:      e.Char,
	})
}
