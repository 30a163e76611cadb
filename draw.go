package bramble

import "strings"

// childDrawWrapper is implemented by layouts that transform the surface
// around their children (render effects). The screen brackets the calls
// with Push and Pop.
type childDrawWrapper interface {
	beforeChildren(c *Component, s Surface)
	afterChildren(c *Component, s Surface)
}

// DrawTo records every layer and the active tooltip into surf.
func (s *Screen) DrawTo(surf Surface) {
	ctx := &DrawContext{Screen: s, MouseX: s.mouseX, MouseY: s.mouseY}
	for _, l := range s.layers {
		surf.SetLayer(LayerUI)
		s.drawComponent(l.Root, surf, ctx)
	}
	s.drawTooltip(surf)
}

// drawComponent draws background, content, clipped children and
// decorations. A panic anywhere in the subtree is logged and the rest of
// the subtree is skipped for this frame.
func (s *Screen) drawComponent(c *Component, surf Surface, ctx *DrawContext) {
	if !c.Visible {
		return
	}
	var restore func()
	if cs, ok := surf.(*CommandSurface); ok {
		depth, clips := cs.mark()
		restore = func() { cs.restore(depth, clips) }
	}
	defer func() {
		if r := recover(); r != nil {
			if restore != nil {
				restore()
			}
			logRecovered("draw", c, r)
		}
	}()

	if b := c.Background; b != nil {
		surf.FillRect(c.Bounds(), b.Fill)
		if b.Outline.A > 0 {
			drawOutline(surf, c.Bounds(), b.Outline)
		}
	}
	if c.Content != nil {
		c.Content.Draw(c, surf, ctx)
	}
	if len(c.children) > 0 {
		w, wrapped := c.Layout.(childDrawWrapper)
		if wrapped {
			surf.Push()
			w.beforeChildren(c, surf)
		}
		clip := !c.AllowOverflow
		if clip {
			surf.PushClip(c.ContentRect())
		}
		for _, ch := range c.paintOrder() {
			s.drawComponent(ch, surf, ctx)
		}
		if clip {
			surf.PopClip()
		}
		if wrapped {
			w.afterChildren(c, surf)
			surf.Pop()
		}
	}
	if d, ok := c.Layout.(Decorator); ok {
		d.DrawDecorations(c, surf, ctx)
	}
}

// tooltipOffset is the distance between the pointer and the tooltip box.
const tooltipOffset = 12

// drawTooltip draws the tooltip of the innermost hovered component that has
// one, on the tooltip layer, kept inside the screen.
func (s *Screen) drawTooltip(surf Surface) {
	var tip string
	for _, c := range s.hoverPath {
		if c.Tooltip != "" {
			tip = c.Tooltip
			break
		}
	}
	if tip == "" {
		return
	}
	f := DefaultFont()
	lines := strings.Split(tip, "\n")
	w, h := measureLines(lines, f)
	box := Rect{X: s.mouseX + tooltipOffset, Y: s.mouseY - tooltipOffset, Width: w + 8, Height: h + 6}
	if s.width > 0 && box.Right() > s.width {
		box.X = max(0, s.mouseX-tooltipOffset-box.Width)
	}
	if s.height > 0 && box.Bottom() > s.height {
		box.Y = max(0, s.height-box.Height)
	}
	box.Y = max(0, box.Y)

	surf.Push()
	surf.SetLayer(LayerTooltip)
	surf.FillRect(box, BackgroundTooltip.Fill)
	drawOutline(surf, box, BackgroundTooltip.Outline)
	for i, line := range lines {
		surf.DrawText(line, f, float64(box.X+4), float64(box.Y+3)+f.LineHeight()*float64(i), ColorWhite)
	}
	surf.Pop()
}
