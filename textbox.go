package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	caretBlinkPeriod  = 0.5
	defaultTextBoxMax = 32
)

// TextBoxContent is a single-line editable text field. It receives typed
// characters and editing keys while its component is focused.
type TextBoxContent struct {
	Font        Font
	Color       Color
	Placeholder string
	MaxLength   int // in runes; 0 means unlimited

	text    []rune
	caret   int
	blink   float64
	changed []func(text string)
}

// NewTextBox creates a focusable text field of the given width.
func NewTextBox(horizontal Sizing, text string) *Component {
	c := NewComponent("text-box")
	tb := &TextBoxContent{Color: ColorFromARGB(0xFFE0E0E0), MaxLength: defaultTextBoxMax}
	tb.text = []rune(text)
	tb.caret = len(tb.text)
	c.Content = tb
	c.HorizontalSizing = horizontal
	c.Padding = InsetsAll(3)
	c.Focusable = true
	c.Cursor = CursorText
	return c
}

// TextBox returns c's text box content, or nil when c is not a text box.
func (c *Component) TextBox() *TextBoxContent {
	tb, _ := c.Content.(*TextBoxContent)
	return tb
}

// Text returns the current contents.
func (tb *TextBoxContent) Text() string { return string(tb.text) }

// Caret returns the caret position in runes.
func (tb *TextBoxContent) Caret() int { return tb.caret }

// SetText replaces the contents, truncated to MaxLength, and moves the caret
// to the end. Change listeners run when the text differs.
func (tb *TextBoxContent) SetText(s string) {
	r := []rune(s)
	if tb.MaxLength > 0 && len(r) > tb.MaxLength {
		r = r[:tb.MaxLength]
	}
	tb.caret = len(r)
	if string(r) == string(tb.text) {
		return
	}
	tb.text = r
	tb.notify()
}

// OnChanged registers fn to run after every edit.
func (tb *TextBoxContent) OnChanged(fn func(text string)) {
	tb.changed = append(tb.changed, fn)
}

func (tb *TextBoxContent) notify() {
	s := string(tb.text)
	for _, fn := range tb.changed {
		fn(s)
	}
}

func (tb *TextBoxContent) font() Font {
	if tb.Font != nil {
		return tb.Font
	}
	return DefaultFont()
}

func (tb *TextBoxContent) insert(r rune) bool {
	if tb.MaxLength > 0 && len(tb.text) >= tb.MaxLength {
		return false
	}
	tb.text = append(tb.text, 0)
	copy(tb.text[tb.caret+1:], tb.text[tb.caret:])
	tb.text[tb.caret] = r
	tb.caret++
	return true
}

func (tb *TextBoxContent) ContentSize(_ *Component, _ Space) Size {
	f := tb.font()
	w, _ := f.MeasureString(string(tb.text))
	return Size{Width: int(math.Ceil(w)) + 1, Height: int(math.Ceil(f.LineHeight()))}
}

func (tb *TextBoxContent) Draw(c *Component, s Surface, _ *DrawContext) {
	b := c.Bounds()
	s.FillRect(b, ColorFromARGB(0xFF000000))
	outline := ColorFromARGB(0xFFA0A0A0)
	if c.focused {
		outline = ColorWhite
	}
	drawOutline(s, b, outline)

	r := c.ContentRect()
	f := tb.font()
	if len(tb.text) == 0 && !c.focused && tb.Placeholder != "" {
		s.DrawText(tb.Placeholder, f, float64(r.X), float64(r.Y), ColorFromARGB(0xFF707070))
		return
	}

	// Scroll the text left so the caret stays visible.
	caretX, _ := f.MeasureString(string(tb.text[:tb.caret]))
	shift := math.Max(0, caretX-float64(r.Width-1))
	s.PushClip(r)
	s.DrawText(string(tb.text), f, float64(r.X)-shift, float64(r.Y), tb.Color)
	if c.focused && math.Mod(tb.blink, caretBlinkPeriod*2) < caretBlinkPeriod {
		x := r.X + int(caretX-shift)
		s.FillRect(Rect{X: x, Y: r.Y, Width: 1, Height: int(f.LineHeight())}, tb.Color)
	}
	s.PopClip()
}

func (tb *TextBoxContent) Update(c *Component, dt float64, _, _ int) {
	if c.focused {
		tb.blink += dt
	} else {
		tb.blink = 0
	}
}

func (tb *TextBoxContent) HandleEvent(c *Component, e *Event) bool {
	switch e.Type {
	case EventMouseDown:
		tb.caret = tb.caretAt(c, e.X)
		tb.blink = 0
		return true
	case EventCharTyped:
		if e.Char < 0x20 || e.Char == 0x7F {
			return false
		}
		if tb.insert(e.Char) {
			tb.notify()
		}
		tb.blink = 0
		return true
	case EventKeyPress:
		return tb.handleKey(e)
	}
	return false
}

func (tb *TextBoxContent) handleKey(e *Event) bool {
	tb.blink = 0
	switch e.Key {
	case ebiten.KeyBackspace:
		if tb.caret > 0 {
			tb.text = append(tb.text[:tb.caret-1], tb.text[tb.caret:]...)
			tb.caret--
			tb.notify()
		}
	case ebiten.KeyDelete:
		if tb.caret < len(tb.text) {
			tb.text = append(tb.text[:tb.caret], tb.text[tb.caret+1:]...)
			tb.notify()
		}
	case ebiten.KeyArrowLeft:
		tb.caret = max(0, tb.caret-1)
	case ebiten.KeyArrowRight:
		tb.caret = min(len(tb.text), tb.caret+1)
	case ebiten.KeyHome:
		tb.caret = 0
	case ebiten.KeyEnd:
		tb.caret = len(tb.text)
	default:
		return false
	}
	return true
}

// caretAt maps a screen x coordinate to the nearest rune boundary.
func (tb *TextBoxContent) caretAt(c *Component, x int) int {
	f := tb.font()
	rel := float64(x - c.ContentRect().X)
	prev := 0.0
	for i := 1; i <= len(tb.text); i++ {
		w, _ := f.MeasureString(string(tb.text[:i]))
		if rel < (prev+w)/2 {
			return i - 1
		}
		prev = w
	}
	return len(tb.text)
}
