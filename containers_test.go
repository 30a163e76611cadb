package bramble

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func scrollScene(t *testing.T) (*Screen, *Component, *ScrollLayout, *Component) {
	t.Helper()
	list := VerticalFlow(Content(0), Content(0))
	for range 10 {
		list.AddChild(testBox(20, 20))
	}
	sc := VerticalScroll(Fixed(50), Fixed(50), list)
	root := VerticalFlow(Fixed(100), Fixed(100))
	root.AddChild(sc)
	s := newTestScreen(t, 100, 100, root)
	return s, sc, sc.Layout.(*ScrollLayout), list
}

func TestScroll_MaxScroll(t *testing.T) {
	_, _, l, list := scrollScene(t)
	if got := l.MaxScroll(); got != 150 {
		t.Errorf("MaxScroll = %d, want 150", got)
	}
	wantBounds(t, list, Rect{X: 0, Y: 0, Width: 20, Height: 200})
}

func TestScroll_WheelEasesOneStep(t *testing.T) {
	s, _, l, list := scrollScene(t)
	s.InjectScroll(10, 10, -1)
	runFrames(s, 2)
	if off := l.Offset(); off <= 0 || off >= 15 {
		t.Errorf("offset mid-ease = %v, want between 0 and 15", off)
	}
	runFrames(s, 20)
	if off := l.Offset(); off != 15 {
		t.Errorf("offset = %v, want 15", off)
	}
	if list.Y != -15 {
		t.Errorf("child Y = %d, want -15", list.Y)
	}
	if first := list.ChildAt(0); first.Y != -15 {
		t.Errorf("first row Y = %d, want -15", first.Y)
	}
}

func TestScroll_RelayoutKeepsOffset(t *testing.T) {
	s, _, l, list := scrollScene(t)
	l.ScrollTo(40)
	runFrames(s, 20)
	if err := s.Layout(); err != nil {
		t.Fatal(err)
	}
	if list.Y != -40 {
		t.Errorf("child Y after relayout = %d, want -40", list.Y)
	}
}

func TestScroll_Clamped(t *testing.T) {
	s, _, l, _ := scrollScene(t)
	l.ScrollBy(1000)
	runFrames(s, 20)
	if off := l.Offset(); off != 150 {
		t.Errorf("offset = %v, want 150", off)
	}
	l.ScrollBy(-5000)
	runFrames(s, 20)
	if off := l.Offset(); off != 0 {
		t.Errorf("offset = %v, want 0", off)
	}
}

func TestScroll_Keys(t *testing.T) {
	s, sc, l, _ := scrollScene(t)
	s.Focus(sc)

	tests := []struct {
		key  ebiten.Key
		want float64
	}{
		{ebiten.KeyEnd, 150},
		{ebiten.KeyPageUp, 100},
		{ebiten.KeyHome, 0},
		{ebiten.KeyPageDown, 50},
	}
	for _, tt := range tests {
		s.InjectKey(tt.key, 0)
		runFrames(s, 20)
		if off := l.Offset(); off != tt.want {
			t.Errorf("after %v offset = %v, want %v", tt.key, off, tt.want)
		}
	}
}

func TestScroll_ScrollbarDragJumps(t *testing.T) {
	s, _, l, _ := scrollScene(t)
	// The track runs down the right edge of the 50x50 viewport.
	s.InjectPress(48, 25)
	runFrames(s, 1)
	if off := l.Offset(); math.Abs(off-75) > 0.001 {
		t.Errorf("offset = %v, want 75", off)
	}
	s.InjectRelease(48, 25)
	runFrames(s, 1)
}

func TestScroll_ContentFitsIgnoresWheel(t *testing.T) {
	inner := testBox(20, 20)
	sc := VerticalScroll(Fixed(50), Fixed(50), inner)
	root := VerticalFlow(Fixed(100), Fixed(100))
	root.AddChild(sc)
	bubbled := false
	root.On(EventMouseScroll, func(*Event) { bubbled = true })
	s := newTestScreen(t, 100, 100, root)

	s.InjectScroll(10, 10, -1)
	runFrames(s, 1)
	if !bubbled {
		t.Error("wheel over a scroll container that fits should bubble")
	}
}

func TestCollapsible_ToggleIsDeferred(t *testing.T) {
	col := Collapsible(Content(0), Content(0), "Section", false)
	l := col.Layout.(*CollapsibleLayout)
	l.Content().AddChild(testBox(10, 10))
	root := VerticalFlow(Fixed(100), Fixed(100))
	root.AddChild(col)
	s := newTestScreen(t, 100, 100, root)

	var toggles []bool
	l.OnToggled(func(expanded bool) { toggles = append(toggles, expanded) })

	if l.Content().Parent != nil {
		t.Fatal("collapsed content is attached")
	}
	s.InjectClick(2, 2)
	runFrames(s, 2)
	if !l.Expanded() || l.Content().Parent != col {
		t.Fatal("click on the title did not expand")
	}

	l.SetExpanded(false)
	if l.Content().Parent != col {
		t.Error("collapse applied before the queue flushed")
	}
	s.Flush()
	if l.Content().Parent != nil {
		t.Error("collapse not applied at flush")
	}
	if len(toggles) != 2 || !toggles[0] || toggles[1] {
		t.Errorf("toggles = %v, want [true false]", toggles)
	}
}

func TestCollapsible_ChildrenGoToContent(t *testing.T) {
	col := Collapsible(Content(0), Content(0), "Section", true)
	l := col.Layout.(*CollapsibleLayout)
	target := col.Layout.(childContainer).childTarget(col)
	if target != l.Content() {
		t.Error("child target is not the content container")
	}
}

func overlayScene(t *testing.T) (*Screen, *Component, *Component, *OverlayLayout) {
	t.Helper()
	root := Stack(Fixed(100), Fixed(100))
	dialog := testBox(20, 20)
	ov := Overlay(dialog)
	root.AddChild(ov)
	s := newTestScreen(t, 100, 100, root)
	return s, ov, dialog, ov.Layout.(*OverlayLayout)
}

func TestOverlay_Layout(t *testing.T) {
	_, ov, dialog, _ := overlayScene(t)
	wantBounds(t, ov, Rect{X: 0, Y: 0, Width: 100, Height: 100})
	wantBounds(t, dialog, Rect{X: 40, Y: 40, Width: 20, Height: 20})
}

func TestOverlay_ClosesOnOutsidePress(t *testing.T) {
	s, ov, _, l := overlayScene(t)
	closed := 0
	l.OnClosed(func() { closed++ })

	s.InjectClick(45, 45)
	runFrames(s, 2)
	if ov.Parent == nil || closed != 0 {
		t.Fatal("press inside the child closed the overlay")
	}

	s.InjectClick(5, 5)
	runFrames(s, 2)
	if ov.Parent != nil {
		t.Error("overlay still attached after an outside press")
	}
	if closed != 1 {
		t.Errorf("closed callbacks = %d, want 1", closed)
	}
}

func TestOverlay_EscapeCloses(t *testing.T) {
	s, ov, _, _ := overlayScene(t)
	s.Focus(ov)
	s.InjectKey(ebiten.KeyEscape, 0)
	runFrames(s, 1)
	if ov.Parent != nil {
		t.Error("Escape did not close the overlay")
	}
}

func TestOverlay_BlocksClicksBelow(t *testing.T) {
	s, _, _, _ := overlayScene(t)
	below := false
	s.Root().OnClick(func(*Event) { below = true })
	s.InjectClick(45, 45)
	runFrames(s, 2)
	if below {
		t.Error("click leaked through the overlay")
	}
}

func TestDraggable_MovesByForehead(t *testing.T) {
	root := Stack(Fixed(200), Fixed(200))
	body := testBox(40, 20)
	drag := Draggable(Content(0), Content(0), body)
	root.AddChild(drag)
	s := newTestScreen(t, 200, 200, root)
	wantBounds(t, drag, Rect{X: 0, Y: 0, Width: 40, Height: 30})

	s.InjectPress(5, 5)
	s.InjectMove(25, 15)
	s.InjectRelease(25, 15)
	runFrames(s, 3)

	wantBounds(t, drag, Rect{X: 20, Y: 10, Width: 40, Height: 30})
	wantBounds(t, body, Rect{X: 20, Y: 20, Width: 40, Height: 20})

	if err := s.Layout(); err != nil {
		t.Fatal(err)
	}
	wantBounds(t, drag, Rect{X: 20, Y: 10, Width: 40, Height: 30})

	l := drag.Layout.(*DraggableLayout)
	l.ResetOffset(drag)
	wantBounds(t, drag, Rect{X: 0, Y: 0, Width: 40, Height: 30})
}

func TestDraggable_BodyDoesNotDrag(t *testing.T) {
	root := Stack(Fixed(200), Fixed(200))
	drag := Draggable(Content(0), Content(0), testBox(40, 20))
	root.AddChild(drag)
	s := newTestScreen(t, 200, 200, root)

	s.InjectPress(5, 20)
	s.InjectMove(25, 40)
	s.InjectRelease(25, 40)
	runFrames(s, 3)

	if dx, dy := drag.Layout.(*DraggableLayout).Offset(); dx != 0 || dy != 0 {
		t.Errorf("offset = (%d, %d), want (0, 0)", dx, dy)
	}
}
