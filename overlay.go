package bramble

import "github.com/hajimehoshi/ebiten/v2"

// OverlayLayout centers one child over a dimmed full-area background.
// Pressing outside the child or Escape closes the overlay.
type OverlayLayout struct {
	StackLayout
	CloseOnClick bool
	closed       []func()
}

// Overlay creates a full-area overlay around child. Add it to any container;
// it positions itself absolutely over the parent's content rect.
func Overlay(child *Component) *Component {
	c := NewComponent("overlay")
	c.HorizontalSizing = Fill(1)
	c.VerticalSizing = Fill(1)
	c.Positioning = Absolute(0, 0)
	c.HorizontalAlignment = AlignCenter
	c.VerticalAlignment = AlignCenter
	c.Background = &Background{Fill: ColorFromARGB(0x77000000)}
	c.Focusable = true
	c.ZIndex = 100
	c.Layout = &OverlayLayout{CloseOnClick: true}
	if child != nil {
		c.AddChild(child)
	}
	return c
}

// OnClosed registers fn to run when the overlay closes itself.
func (l *OverlayLayout) OnClosed(fn func()) {
	l.closed = append(l.closed, fn)
}

// Close removes the overlay at the end of the current pass.
func (l *OverlayLayout) Close(c *Component) {
	if c.IsPendingRemoval() || c.Parent == nil {
		return
	}
	c.RemoveLater()
	for _, fn := range l.closed {
		fn()
	}
}

// HandleEvent closes the overlay on a press outside its child or on Escape,
// and swallows every other pointer event so nothing below reacts.
func (l *OverlayLayout) HandleEvent(c *Component, e *Event) bool {
	switch e.Type {
	case EventMouseDown:
		// Presses inside the child only get here when the child ignored them.
		if e.Target == c && l.CloseOnClick {
			l.Close(c)
		}
		return true
	case EventKeyPress:
		if e.Key == ebiten.KeyEscape {
			l.Close(c)
			return true
		}
	case EventMouseScroll, EventClick:
		return true
	}
	return false
}
