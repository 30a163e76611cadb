package bramble

import "testing"

func names(cs []*Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func named(kind, name string) *Component {
	c := NewComponent(kind)
	c.Name = name
	return c
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddChild_Order(t *testing.T) {
	root := named("stack", "root")
	a, b, c := named("x", "a"), named("x", "b"), named("x", "c")
	root.AddChild(a)
	root.AddChild(c)
	root.AddChildAt(b, 1)

	if got := names(root.Children()); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("children = %v, want [a b c]", got)
	}
	if b.Parent != root {
		t.Error("b.Parent not set")
	}
}

func TestAddChild_Reparents(t *testing.T) {
	p1, p2 := named("x", "p1"), named("x", "p2")
	child := named("x", "child")
	p1.AddChild(child)
	p2.AddChild(child)

	if p1.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", p1.NumChildren())
	}
	if child.Parent != p2 {
		t.Error("child.Parent != p2")
	}
}

func TestAddChildAt_SameParentMovesForward(t *testing.T) {
	root := named("x", "root")
	a, b, c := named("x", "a"), named("x", "b"), named("x", "c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	root.AddChildAt(a, 3)

	if got := names(root.Children()); !equalStrings(got, []string{"b", "c", "a"}) {
		t.Errorf("children = %v, want [b c a]", got)
	}
}

func TestAddChild_CyclePanics(t *testing.T) {
	root := named("x", "root")
	child := named("x", "child")
	root.AddChild(child)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	child.AddChild(root)
}

func TestRemoveChild(t *testing.T) {
	root := named("x", "root")
	a, b := named("x", "a"), named("x", "b")
	root.AddChild(a)
	root.AddChild(b)

	if got := root.RemoveChildAt(0); got != a {
		t.Errorf("RemoveChildAt(0) = %v, want a", got.Name)
	}
	b.RemoveFromParent()
	if root.NumChildren() != 0 || a.Parent != nil || b.Parent != nil {
		t.Error("children not detached")
	}
	b.RemoveFromParent() // no-op without a parent
}

func TestSetChildIndex(t *testing.T) {
	root := named("x", "root")
	for _, n := range []string{"a", "b", "c", "d"} {
		root.AddChild(named("x", n))
	}
	root.SetChildIndex(root.ChildAt(3), 0)
	if got := names(root.Children()); !equalStrings(got, []string{"d", "a", "b", "c"}) {
		t.Errorf("children = %v, want [d a b c]", got)
	}
	root.SetChildIndex(root.ChildAt(0), 2)
	if got := names(root.Children()); !equalStrings(got, []string{"a", "b", "d", "c"}) {
		t.Errorf("children = %v, want [a b d c]", got)
	}
}

func TestPaintOrder_ZIndexStable(t *testing.T) {
	root := named("x", "root")
	a, b, c := named("x", "a"), named("x", "b"), named("x", "c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	a.SetZIndex(5)

	if got := names(root.paintOrder()); !equalStrings(got, []string{"b", "c", "a"}) {
		t.Errorf("paint order = %v, want [b c a]", got)
	}
}

func TestPathAndFind(t *testing.T) {
	root := VerticalFlow(Content(0), Content(0))
	row := HorizontalFlow(Content(0), Content(0))
	title := testLabel("hi")
	title.Name = "title"
	root.AddChild(testBox(1, 1))
	root.AddChild(row)
	row.AddChild(title)

	if got, want := row.Path(), "flow-layout/flow-layout[1]"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if got, want := title.Path(), "flow-layout/flow-layout[1]/label#title"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if root.FindByName("title") != title {
		t.Error("FindByName(title) failed")
	}
	if root.FindByName("missing") != nil {
		t.Error("FindByName(missing) should be nil")
	}
	if title.Root() != root {
		t.Error("Root() mismatch")
	}
}

func TestMountDismountEvents(t *testing.T) {
	parent := named("x", "parent")
	child := named("x", "child")
	grandchild := named("x", "grandchild")
	child.AddChild(grandchild)

	var log []string
	record := func(who string) Listener {
		return func(e *Event) { log = append(log, who+":"+e.Type.String()) }
	}
	child.On(EventMount, record("child"))
	grandchild.On(EventMount, record("grandchild"))
	child.On(EventDismount, record("child"))

	parent.AddChild(child)
	child.RemoveFromParent()

	want := []string{"child:mount", "grandchild:mount", "child:dismount"}
	if !equalStrings(log, want) {
		t.Errorf("events = %v, want %v", log, want)
	}
}

func TestRemoveLater_Deferred(t *testing.T) {
	root := VerticalFlow(Fixed(100), Fixed(100))
	doomed := testBox(10, 10)
	root.AddChild(doomed)
	s := newTestScreen(t, 100, 100, root)

	doomed.RemoveLater()
	if doomed.Parent != root || !doomed.IsPendingRemoval() {
		t.Fatal("RemoveLater removed immediately")
	}
	if s.hitTest(5, 5) == doomed {
		t.Error("pending removal component was hit-tested")
	}
	s.Flush()
	if doomed.Parent != nil || doomed.IsPendingRemoval() {
		t.Error("component not removed at flush")
	}
}

func TestQueue_DetachedRunsImmediately(t *testing.T) {
	c := named("x", "loose")
	ran := false
	c.Queue(func() { ran = true })
	if !ran {
		t.Error("Queue on a detached component did not run")
	}
}

func TestQueue_WorkQueuedDuringFlushWaits(t *testing.T) {
	root := Stack(Fixed(10), Fixed(10))
	s := newTestScreen(t, 10, 10, root)
	var order []int
	root.Queue(func() {
		order = append(order, 1)
		root.Queue(func() { order = append(order, 2) })
	})
	s.Flush()
	if len(order) != 1 {
		t.Fatalf("after first flush order = %v, want [1]", order)
	}
	s.Flush()
	if len(order) != 2 {
		t.Errorf("after second flush order = %v, want [1 2]", order)
	}
}

func TestDispose(t *testing.T) {
	root := named("x", "root")
	child := named("x", "child")
	gc := named("x", "gc")
	root.AddChild(child)
	child.AddChild(gc)
	child.Dispose()

	if !child.IsDisposed() || !gc.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed child still attached")
	}
	child.Dispose() // idempotent
}

func TestSubscriptionRemove(t *testing.T) {
	c := named("x", "c")
	n := 0
	sub := c.OnClick(func(*Event) { n++ })
	c.listeners.fire(&Event{Type: EventClick})
	sub.Remove()
	c.listeners.fire(&Event{Type: EventClick})
	if n != 1 {
		t.Errorf("listener ran %d times, want 1", n)
	}
	if c.listeners.has(EventClick) {
		t.Error("listener still registered")
	}
}
