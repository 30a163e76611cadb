package bramble

// DropdownLayout is a horizontal flow holding a vertical list of entries and,
// while one is open, a nested dropdown to its right.
type DropdownLayout struct {
	FlowLayout

	// RequiresHover closes the dropdown as soon as the pointer leaves it.
	RequiresHover bool

	owner   *Component
	entries *Component
}

type dropdownEntryKind uint8

const (
	entryText dropdownEntryKind = iota
	entryButton
	entryCheckbox
	entryNested
)

// entryIconSpace is the width reserved on the right of checkbox and nested
// entries for their icon.
const entryIconSpace = 17

var (
	dropdownTextColor = ColorFromARGB(0xFFAAAAAA)
	dropdownHighlight = ColorFromARGB(0x44FFFFFF)
	dropdownLine      = ColorFromARGB(0x77FFFFFF)
)

// Dropdown creates an empty dropdown menu. Entries are added through the
// builder methods of its layout, see Component.Dropdown.
func Dropdown(horizontal Sizing) *Component {
	c := NewComponent("dropdown")
	l := &DropdownLayout{FlowLayout: FlowLayout{Direction: FlowHorizontal}, owner: c}
	c.Layout = l
	c.ZIndex = 50

	l.entries = VerticalFlow(horizontal, Content(0))
	l.entries.Kind = "dropdown-entries"
	l.entries.Padding = InsetsAll(2)
	l.entries.AllowOverflow = true
	l.entries.Background = &Background{Fill: ColorFromARGB(0x77000000), Outline: dropdownLine}
	c.AddChild(l.entries)
	return c
}

// Dropdown returns c's dropdown layout, or nil when c is not a dropdown.
func (c *Component) Dropdown() *DropdownLayout {
	d, _ := c.Layout.(*DropdownLayout)
	return d
}

// Entries returns the vertical list holding the entries.
func (d *DropdownLayout) Entries() *Component { return d.entries }

// Divider appends a horizontal separator line.
func (d *DropdownLayout) Divider() *DropdownLayout {
	c := NewComponent("dropdown-divider")
	c.HorizontalSizing = Fixed(1)
	c.VerticalSizing = Fixed(1)
	c.Interactable = false
	c.Content = dividerContent{}
	d.entries.AddChild(c)
	return d
}

// Text appends a non-interactive gray line of text.
func (d *DropdownLayout) Text(s string) *DropdownLayout {
	c := NewLabel(s)
	c.Label().Color = dropdownTextColor
	d.entries.AddChild(c)
	return d
}

// Button appends an entry that runs onClick with the dropdown component when
// pressed.
func (d *DropdownLayout) Button(text string, onClick func(dropdown *Component)) *DropdownLayout {
	e := d.newEntry(entryButton, text)
	e.onClick = onClick
	return d
}

// Checkbox appends a toggle entry. onChange receives the new state.
func (d *DropdownLayout) Checkbox(text string, checked bool, onChange func(checked bool)) *DropdownLayout {
	e := d.newEntry(entryCheckbox, text)
	e.checked = checked
	e.onChange = onChange
	return d
}

// Nested appends an entry that opens a sub-dropdown while hovered. build
// fills the sub-dropdown with entries.
func (d *DropdownLayout) Nested(text string, horizontal Sizing, build func(*DropdownLayout)) *DropdownLayout {
	sub := Dropdown(horizontal)
	if build != nil {
		build(sub.Dropdown())
	}
	e := d.newEntry(entryNested, text)
	e.nested = sub
	row := d.entries.ChildAt(d.entries.NumChildren() - 1)
	row.On(EventMouseEnter, func(*Event) {
		sub.Margins = Insets{Top: row.Y - d.owner.Y}
		d.owner.Queue(func() {
			if sub.Parent == d.owner {
				d.owner.RemoveChild(sub)
			}
			d.owner.AddChild(sub)
		})
	})
	return d
}

func (d *DropdownLayout) newEntry(kind dropdownEntryKind, text string) *dropdownEntry {
	c := NewComponent("dropdown-" + [...]string{"text", "button", "checkbox", "nested"}[kind])
	e := &dropdownEntry{
		LabelContent: LabelContent{Text: text, Color: ColorWhite},
		kind:         kind,
		dropdown:     d.owner,
	}
	c.Content = e
	c.Margins = InsetsVertical(1)
	if kind == entryButton || kind == entryCheckbox {
		c.Cursor = CursorHand
	}
	d.entries.AddChild(c)
	return e
}

// Update closes a dropdown that requires hover once the pointer leaves it.
func (d *DropdownLayout) Update(c *Component, _ float64, mouseX, mouseY int) {
	if d.RequiresHover && !c.IsInBoundingBox(mouseX, mouseY) {
		d.RequiresHover = false
		c.RemoveLater()
	}
}

type dividerContent struct{}

func (dividerContent) ContentSize(*Component, Space) Size { return Size{} }

func (dividerContent) Draw(c *Component, s Surface, _ *DrawContext) {
	width := c.Width
	if p := c.Parent; p != nil {
		width = p.ContentRect().Width
	}
	s.FillRect(Rect{X: c.X - 1, Y: c.Y + c.Height/2, Width: width + 2, Height: 1}, dropdownLine)
}

// dropdownEntry is the content of button, checkbox and nested entries.
type dropdownEntry struct {
	LabelContent

	kind     dropdownEntryKind
	dropdown *Component
	checked  bool
	nested   *Component
	onClick  func(dropdown *Component)
	onChange func(checked bool)
}

// row is the entry's full-width strip inside the entry list.
func (e *dropdownEntry) row(c *Component) Rect {
	r := c.Bounds()
	if p := c.Parent; p != nil {
		cr := p.ContentRect()
		r.X, r.Width = cr.X, cr.Width
	}
	return r
}

func (e *dropdownEntry) ContentSize(c *Component, space Space) Size {
	sz := e.LabelContent.ContentSize(c, space)
	if e.kind == entryCheckbox || e.kind == entryNested {
		sz.Width += entryIconSpace
	}
	return sz
}

func (e *dropdownEntry) Draw(c *Component, s Surface, ctx *DrawContext) {
	row := e.row(c)
	if e.kind != entryNested && c.hovered {
		s.FillRect(row.Outset(Insets{Top: 1, Bottom: c.Margins.Bottom}), dropdownHighlight)
	}
	e.drawIn(c.ContentRect(), s, e.Color)

	icon := Rect{X: row.Right() - 10, Y: c.Y, Width: 9, Height: 9}
	switch e.kind {
	case entryCheckbox:
		drawOutline(s, icon, ColorWhite)
		if e.checked {
			s.FillRect(icon.Inset(InsetsAll(2)), ColorWhite)
		}
	case entryNested:
		s.DrawText(">", e.font(), float64(icon.X+2), float64(icon.Y), ColorWhite)
	}
}

func (e *dropdownEntry) HandleEvent(c *Component, ev *Event) bool {
	if ev.Type != EventMouseDown || e.kind == entryNested {
		return false
	}
	switch e.kind {
	case entryButton:
		if e.onClick != nil {
			e.onClick(e.dropdown)
		}
	case entryCheckbox:
		e.checked = !e.checked
		if e.onChange != nil {
			e.onChange(e.checked)
		}
	}
	return true
}

// Update keeps the nested dropdown open only while the pointer is on this
// entry's row or inside the nested dropdown itself.
func (e *dropdownEntry) Update(c *Component, _ float64, mouseX, mouseY int) {
	if e.kind != entryNested || e.nested == nil {
		return
	}
	if l := e.nested.Dropdown(); l != nil && e.nested.Parent != nil {
		l.RequiresHover = !e.row(c).Contains(mouseX, mouseY)
	}
}
