package bramble

// Focused returns the component holding keyboard focus, or nil.
func (s *Screen) Focused() *Component {
	return s.focused
}

// Focus moves keyboard focus to c. Passing nil clears focus. The previous
// holder receives EventFocusLost before c receives EventFocusGained.
func (s *Screen) Focus(c *Component) {
	if c == s.focused {
		return
	}
	if old := s.focused; old != nil {
		old.focused = false
		s.focused = nil
		s.deliverTo(old, &Event{Type: EventFocusLost, X: s.mouseX, Y: s.mouseY})
	}
	if c == nil || c.Screen() != s {
		return
	}
	s.focused = c
	c.focused = true
	s.deliverTo(c, &Event{Type: EventFocusGained, X: s.mouseX, Y: s.mouseY})
}

// focusFor focuses the nearest focusable ancestor of a pressed component,
// or clears focus when the press landed elsewhere.
func (s *Screen) focusFor(hit *Component) {
	for c := hit; c != nil; c = c.Parent {
		if c.Focusable {
			s.Focus(c)
			return
		}
	}
	s.Focus(nil)
}

// FocusNext cycles focus through the focusable components of the topmost
// layer that has any, in tree order, backwards when reverse is set.
func (s *Screen) FocusNext(reverse bool) {
	var list []*Component
	for i := len(s.layers) - 1; i >= 0 && len(list) == 0; i-- {
		list = collectFocusable(s.layers[i].Root, nil)
	}
	if len(list) == 0 {
		return
	}
	idx := -1
	for i, c := range list {
		if c == s.focused {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && reverse:
		idx = len(list) - 1
	case idx < 0:
		idx = 0
	case reverse:
		idx = (idx - 1 + len(list)) % len(list)
	default:
		idx = (idx + 1) % len(list)
	}
	s.Focus(list[idx])
}

func collectFocusable(c *Component, buf []*Component) []*Component {
	if !c.Visible || c.pendingRemoval {
		return buf
	}
	if c.Focusable {
		buf = append(buf, c)
	}
	for _, ch := range c.children {
		buf = collectFocusable(ch, buf)
	}
	return buf
}
