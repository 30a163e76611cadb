package bramble

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func center(c *Component) (int, int) {
	return c.X + c.Width/2, c.Y + c.Height/2
}

// widgetScreen places every widget in a vertical flow on a 200x200 screen.
func widgetScreen(t *testing.T, widgets ...*Component) *Screen {
	t.Helper()
	root := VerticalFlow(Fixed(200), Fixed(200))
	root.Gap = 2
	for _, w := range widgets {
		root.AddChild(w)
	}
	return newTestScreen(t, 200, 200, root)
}

func TestButton_ClickAndKeys(t *testing.T) {
	presses := 0
	btn := NewButton("OK", func(*Component) { presses++ })
	btn.Button().Font = monoFont{}
	s := widgetScreen(t, btn)

	x, y := center(btn)
	s.InjectPress(x, y)
	runFrames(s, 1)
	if !btn.Button().pressed {
		t.Error("button not in pressed state while held")
	}
	if presses != 0 {
		t.Fatal("button fired on press")
	}
	s.InjectRelease(x, y)
	runFrames(s, 1)
	if presses != 1 || btn.Button().pressed {
		t.Fatalf("presses = %d, pressed = %v, want 1 and false", presses, btn.Button().pressed)
	}
	if s.Focused() != btn {
		t.Fatal("click did not focus the button")
	}

	for _, k := range []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyA} {
		s.InjectKey(k, 0)
	}
	runFrames(s, 3)
	if presses != 3 {
		t.Errorf("presses = %d, want 3", presses)
	}
}

func TestButton_Inactive(t *testing.T) {
	presses := 0
	btn := NewButton("OK", func(*Component) { presses++ })
	btn.Button().Active = false
	s := widgetScreen(t, btn)

	s.InjectClick(center(btn))
	runFrames(s, 2)
	if presses != 0 {
		t.Errorf("inactive button fired %d times", presses)
	}
}

func TestButton_OnPressAddsListeners(t *testing.T) {
	var order []string
	btn := NewButton("OK", nil)
	btn.Button().OnPress(func(*Component) { order = append(order, "a") })
	btn.Button().OnPress(func(*Component) { order = append(order, "b") })
	btn.Button().Press(btn)
	if !equalStrings(order, []string{"a", "b"}) {
		t.Errorf("order = %v, want [a b]", order)
	}
}

func TestCheckbox_Toggles(t *testing.T) {
	cb := NewCheckbox("Enable", false)
	cb.Checkbox().Font = monoFont{}
	var changes []bool
	cb.Checkbox().OnChanged(func(v bool) { changes = append(changes, v) })
	s := widgetScreen(t, cb)

	s.InjectClick(center(cb))
	runFrames(s, 2)
	if !cb.Checkbox().Checked {
		t.Fatal("click did not check the box")
	}
	s.InjectKey(ebiten.KeySpace, 0)
	runFrames(s, 1)
	if cb.Checkbox().Checked {
		t.Error("space did not uncheck the box")
	}
	cb.Checkbox().SetChecked(false) // unchanged, no notification
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("changes = %v, want [true false]", changes)
	}
}

func TestCheckbox_Size(t *testing.T) {
	cb := NewCheckbox("ab", false)
	cb.Checkbox().Font = monoFont{}
	size, err := Resolve(cb, Space{Width: 200, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	// 9px box, 4px gap, two 6px runes.
	if size.Width != 25 || size.Height != 10 {
		t.Errorf("size = %+v, want 25x10", size)
	}
}

func textBoxScene(t *testing.T, initial string) (*Screen, *Component, *TextBoxContent) {
	t.Helper()
	tb := NewTextBox(Fixed(100), initial)
	tb.TextBox().Font = monoFont{}
	s := widgetScreen(t, tb)
	s.Focus(tb)
	return s, tb, tb.TextBox()
}

func TestTextBox_Typing(t *testing.T) {
	s, _, tb := textBoxScene(t, "")
	var last string
	edits := 0
	tb.OnChanged(func(text string) {
		last = text
		edits++
	})

	s.InjectChars("héllo")
	runFrames(s, 5)
	if tb.Text() != "héllo" || tb.Caret() != 5 {
		t.Fatalf("text = %q caret = %d, want %q and 5", tb.Text(), tb.Caret(), "héllo")
	}

	tests := []struct {
		key      ebiten.Key
		wantText string
		caret    int
	}{
		{ebiten.KeyBackspace, "héll", 4},
		{ebiten.KeyHome, "héll", 0},
		{ebiten.KeyDelete, "éll", 0},
		{ebiten.KeyArrowRight, "éll", 1},
		{ebiten.KeyEnd, "éll", 3},
		{ebiten.KeyArrowLeft, "éll", 2},
	}
	for _, tt := range tests {
		s.InjectKey(tt.key, 0)
		runFrames(s, 1)
		if tb.Text() != tt.wantText || tb.Caret() != tt.caret {
			t.Errorf("after %v: text = %q caret = %d, want %q and %d",
				tt.key, tb.Text(), tb.Caret(), tt.wantText, tt.caret)
		}
	}
	if last != "éll" || edits != 7 {
		t.Errorf("last = %q edits = %d, want %q and 7", last, edits, "éll")
	}
}

func TestTextBox_MaxLengthAndControlChars(t *testing.T) {
	s, _, tb := textBoxScene(t, "")
	tb.MaxLength = 3
	s.InjectChars("ab\x01cdef")
	runFrames(s, 7)
	if tb.Text() != "abc" {
		t.Errorf("text = %q, want %q", tb.Text(), "abc")
	}
	tb.SetText("wxyz")
	if tb.Text() != "wxy" || tb.Caret() != 3 {
		t.Errorf("SetText: text = %q caret = %d, want %q and 3", tb.Text(), tb.Caret(), "wxy")
	}
}

func TestTextBox_ClickPlacesCaret(t *testing.T) {
	s, c, tb := textBoxScene(t, "abcd")
	x := c.ContentRect().X
	tests := []struct {
		dx   int
		want int
	}{
		{1, 0},
		{4, 1},
		{10, 2},
		{90, 4},
	}
	for _, tt := range tests {
		s.InjectClick(x+tt.dx, c.Y+5)
		runFrames(s, 2)
		if tb.Caret() != tt.want {
			t.Errorf("click at +%d: caret = %d, want %d", tt.dx, tb.Caret(), tt.want)
		}
	}
}

func TestTextBox_TabLeaves(t *testing.T) {
	a := NewTextBox(Fixed(50), "")
	b := NewTextBox(Fixed(50), "")
	s := widgetScreen(t, a, b)
	s.Focus(a)
	s.InjectKey(ebiten.KeyTab, 0)
	runFrames(s, 1)
	if s.Focused() != b {
		t.Error("Tab did not move focus out of the text box")
	}
}

func dropdownScene(t *testing.T) (*Screen, *Component, *Component) {
	t.Helper()
	dd := Dropdown(Content(0))
	root := Stack(Fixed(200), Fixed(200))
	root.AddChild(dd)
	return newTestScreen(t, 200, 200, root), dd, root
}

func TestDropdown_Entries(t *testing.T) {
	var clicked *Component
	var checks []bool
	dd := Dropdown(Content(0))
	dd.Dropdown().
		Text("header").
		Button("Go", func(d *Component) { clicked = d }).
		Divider().
		Checkbox("Opt", false, func(v bool) { checks = append(checks, v) })
	root := Stack(Fixed(200), Fixed(200))
	root.AddChild(dd)
	s := newTestScreen(t, 200, 200, root)

	entries := dd.Dropdown().Entries()
	if n := entries.NumChildren(); n != 4 {
		t.Fatalf("entries = %d, want 4", n)
	}
	kinds := []string{"label", "dropdown-button", "dropdown-divider", "dropdown-checkbox"}
	for i, want := range kinds {
		if got := entries.ChildAt(i).Kind; got != want {
			t.Errorf("entry %d kind = %q, want %q", i, got, want)
		}
	}

	// Entries fire on press, not on release.
	s.InjectPress(center(entries.ChildAt(1)))
	runFrames(s, 1)
	if clicked != dd {
		t.Error("button entry did not fire on press with the dropdown")
	}
	s.InjectRelease(center(entries.ChildAt(1)))
	s.InjectPress(center(entries.ChildAt(3)))
	s.InjectRelease(center(entries.ChildAt(3)))
	s.InjectPress(center(entries.ChildAt(3)))
	runFrames(s, 4)
	if len(checks) != 2 || !checks[0] || checks[1] {
		t.Errorf("checks = %v, want [true false]", checks)
	}
}

func TestDropdown_NestedOpensOnHover(t *testing.T) {
	s, dd, _ := dropdownScene(t)
	var sub *Component
	dd.Dropdown().Button("First", nil).Nested("More", Content(0), func(d *DropdownLayout) {
		d.Button("Deep", nil)
	})
	if err := s.Layout(); err != nil {
		t.Fatal(err)
	}
	row := dd.Dropdown().Entries().ChildAt(1)

	s.InjectHover(center(row))
	runFrames(s, 1)
	if dd.NumChildren() != 2 {
		t.Fatalf("dropdown children = %d, want 2 after hovering the nested entry", dd.NumChildren())
	}
	sub = dd.ChildAt(1)
	if sub.Dropdown() == nil {
		t.Fatal("second child is not a dropdown")
	}
	if sub.X < row.X+row.Width {
		t.Errorf("nested dropdown X = %d, want right of the entry list", sub.X)
	}

	s.InjectHover(190, 190)
	runFrames(s, 1)
	if sub.Parent != nil {
		t.Error("nested dropdown still open after the pointer left")
	}
}
