package bramble

import "github.com/hajimehoshi/ebiten/v2"

// ButtonContent is a clickable text button. It draws its own background,
// so the component Background is usually left nil.
type ButtonContent struct {
	LabelContent

	Normal   Color
	Hover    Color
	Pressed  Color
	Disabled Color
	Active   bool

	pressed bool
	onPress []func(c *Component)
}

// NewButton creates a button showing text. onPress may be nil.
func NewButton(text string, onPress func(c *Component)) *Component {
	c := NewComponent("button")
	b := &ButtonContent{
		LabelContent: LabelContent{Text: text, Color: ColorWhite, Shadow: true, Align: TextAlignCenter},
		Normal:       ColorFromARGB(0xFF555555),
		Hover:        ColorFromARGB(0xFF7777AA),
		Pressed:      ColorFromARGB(0xFF333366),
		Disabled:     ColorFromARGB(0xFF2A2A2A),
		Active:       true,
	}
	if onPress != nil {
		b.onPress = append(b.onPress, onPress)
	}
	c.Content = b
	c.Padding = InsetsOf(4, 4, 8, 8)
	c.Cursor = CursorHand
	c.Focusable = true
	return c
}

// Button returns c's button content, or nil when c is not a button.
func (c *Component) Button() *ButtonContent {
	b, _ := c.Content.(*ButtonContent)
	return b
}

// OnPress registers fn to run when the button is activated.
func (b *ButtonContent) OnPress(fn func(c *Component)) {
	b.onPress = append(b.onPress, fn)
}

// Press activates the button as if it were clicked.
func (b *ButtonContent) Press(c *Component) {
	if !b.Active {
		return
	}
	for _, fn := range b.onPress {
		fn(c)
	}
}

func (b *ButtonContent) background(c *Component) Color {
	switch {
	case !b.Active:
		return b.Disabled
	case b.pressed:
		return b.Pressed
	case c.hovered || c.focused:
		return b.Hover
	}
	return b.Normal
}

func (b *ButtonContent) Draw(c *Component, s Surface, _ *DrawContext) {
	r := c.Bounds()
	s.FillRect(r, b.background(c))
	drawOutline(s, r, ColorFromARGB(0xFF000000))
	col := b.Color
	if !b.Active {
		col = ColorFromARGB(0xFFA0A0A0)
	}
	b.drawIn(c.ContentRect(), s, col)
}

func (b *ButtonContent) HandleEvent(c *Component, e *Event) bool {
	switch e.Type {
	case EventMouseDown:
		if e.Button != MouseButtonLeft {
			return false
		}
		b.pressed = b.Active
		return true
	case EventMouseUp, EventDragEnd:
		b.pressed = false
	case EventMouseLeave:
		b.pressed = false
	case EventClick:
		if e.Button != MouseButtonLeft {
			return false
		}
		b.Press(c)
		return true
	case EventKeyPress:
		if e.Key == ebiten.KeyEnter || e.Key == ebiten.KeySpace || e.Key == ebiten.KeyNumpadEnter {
			b.Press(c)
			return true
		}
	}
	return false
}

const checkboxSize = 9

// CheckboxContent is a toggleable box with a label to its right.
type CheckboxContent struct {
	LabelContent
	Checked bool

	changed []func(checked bool)
}

// NewCheckbox creates a checkbox with the given label and initial state.
func NewCheckbox(text string, checked bool) *Component {
	c := NewComponent("checkbox")
	c.Content = &CheckboxContent{
		LabelContent: LabelContent{Text: text, Color: ColorWhite},
		Checked:      checked,
	}
	c.Cursor = CursorHand
	c.Focusable = true
	return c
}

// Checkbox returns c's checkbox content, or nil when c is not a checkbox.
func (c *Component) Checkbox() *CheckboxContent {
	cb, _ := c.Content.(*CheckboxContent)
	return cb
}

// OnChanged registers fn to run whenever the checked state flips.
func (cb *CheckboxContent) OnChanged(fn func(checked bool)) {
	cb.changed = append(cb.changed, fn)
}

// SetChecked sets the state and notifies listeners if it changed.
func (cb *CheckboxContent) SetChecked(checked bool) {
	if cb.Checked == checked {
		return
	}
	cb.Checked = checked
	for _, fn := range cb.changed {
		fn(checked)
	}
}

func (cb *CheckboxContent) ContentSize(c *Component, space Space) Size {
	if space.Width != Unbounded {
		space.Width = max(0, space.Width-checkboxSize-4)
	}
	sz := cb.LabelContent.ContentSize(c, space)
	if sz.Width > 0 {
		sz.Width += 4
	}
	return Size{Width: sz.Width + checkboxSize, Height: max(sz.Height, checkboxSize)}
}

func (cb *CheckboxContent) Draw(c *Component, s Surface, _ *DrawContext) {
	r := c.ContentRect()
	box := Rect{X: r.X, Y: r.Y + max(0, (r.Height-checkboxSize)/2), Width: checkboxSize, Height: checkboxSize}
	s.FillRect(box, ColorFromARGB(0xFF222222))
	outline := ColorFromARGB(0xFFA0A0A0)
	if c.hovered || c.focused {
		outline = ColorWhite
	}
	drawOutline(s, box, outline)
	if cb.Checked {
		s.FillRect(box.Inset(InsetsAll(2)), ColorWhite)
	}
	text := r
	text.X += checkboxSize + 4
	text.Width = max(0, text.Width-checkboxSize-4)
	cb.drawIn(text, s, cb.Color)
}

func (cb *CheckboxContent) HandleEvent(_ *Component, e *Event) bool {
	switch e.Type {
	case EventMouseDown:
		return e.Button == MouseButtonLeft
	case EventClick:
		if e.Button != MouseButtonLeft {
			return false
		}
		cb.SetChecked(!cb.Checked)
		return true
	case EventKeyPress:
		if e.Key == ebiten.KeySpace || e.Key == ebiten.KeyEnter {
			cb.SetChecked(!cb.Checked)
			return true
		}
	}
	return false
}
