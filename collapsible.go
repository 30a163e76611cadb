package bramble

// CollapsibleLayout is a vertical flow holding a clickable title row and a
// content container. Collapsing removes the content from the tree; expanding
// puts it back. Both go through the deferred queue.
type CollapsibleLayout struct {
	FlowLayout

	owner    *Component
	title    *Component
	arrow    *Component
	content  *Component
	expanded bool
	toggled  []func(expanded bool)
}

// Collapsible creates a titled container whose content can be hidden.
func Collapsible(horizontal, vertical Sizing, title string, expanded bool) *Component {
	c := NewComponent("collapsible")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	l := &CollapsibleLayout{FlowLayout: FlowLayout{Direction: FlowVertical}, owner: c, expanded: expanded}
	c.Layout = l

	l.title = HorizontalFlow(Content(0), Content(0))
	l.title.Kind = "collapsible-title"
	l.title.Gap = 4
	l.title.Cursor = CursorHand
	l.title.Padding = InsetsVertical(2)
	l.arrow = NewLabel(arrowText(expanded))
	l.title.AddChild(l.arrow)
	l.title.AddChild(NewLabel(title))
	l.title.OnClick(func(*Event) { l.Toggle() })

	l.content = VerticalFlow(Content(0), Content(0))
	l.content.Kind = "collapsible-content"
	l.content.Padding = Insets{Left: 10}

	c.AddChild(l.title)
	if expanded {
		c.AddChild(l.content)
	}
	return c
}

func arrowText(expanded bool) string {
	if expanded {
		return "v"
	}
	return ">"
}

// Content returns the container that holds the collapsible children.
func (l *CollapsibleLayout) Content() *Component { return l.content }

// Title returns the title row.
func (l *CollapsibleLayout) Title() *Component { return l.title }

// Expanded reports whether the content is shown.
func (l *CollapsibleLayout) Expanded() bool { return l.expanded }

// OnToggled registers fn to run whenever the container expands or collapses.
func (l *CollapsibleLayout) OnToggled(fn func(expanded bool)) {
	l.toggled = append(l.toggled, fn)
}

// Toggle flips the expanded state.
func (l *CollapsibleLayout) Toggle() {
	l.SetExpanded(!l.expanded)
}

// SetExpanded shows or hides the content. The tree change is deferred until
// the current pass finishes; listeners run immediately.
func (l *CollapsibleLayout) SetExpanded(expanded bool) {
	if l.expanded == expanded {
		return
	}
	l.expanded = expanded
	l.arrow.SetText(arrowText(expanded))
	l.owner.Queue(func() {
		if l.expanded && l.content.Parent != l.owner {
			l.owner.AddChild(l.content)
		} else if !l.expanded && l.content.Parent == l.owner {
			l.owner.RemoveChild(l.content)
		}
	})
	for _, fn := range l.toggled {
		fn(expanded)
	}
}

func (l *CollapsibleLayout) childTarget(*Component) *Component { return l.content }
