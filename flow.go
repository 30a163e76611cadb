package bramble

// FlowDirection is the main axis of a FlowLayout.
type FlowDirection uint8

const (
	// FlowVertical stacks children top to bottom.
	FlowVertical FlowDirection = iota
	// FlowHorizontal places children left to right.
	FlowHorizontal
)

func (d FlowDirection) axis() Axis {
	if d == FlowHorizontal {
		return AxisHorizontal
	}
	return AxisVertical
}

// FlowLayout stacks children along one axis. Children advance a cursor by
// their extent plus margins plus the parent's Gap. Along the cross axis each
// child is aligned inside the content rect.
type FlowLayout struct {
	Direction FlowDirection
}

// VerticalFlow creates a container that stacks children top to bottom.
func VerticalFlow(horizontal, vertical Sizing) *Component {
	return newFlow("flow-layout", FlowVertical, horizontal, vertical)
}

// HorizontalFlow creates a container that stacks children left to right.
func HorizontalFlow(horizontal, vertical Sizing) *Component {
	return newFlow("flow-layout", FlowHorizontal, horizontal, vertical)
}

func newFlow(kind string, dir FlowDirection, horizontal, vertical Sizing) *Component {
	c := NewComponent(kind)
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	c.Layout = &FlowLayout{Direction: dir}
	return c
}

// Measure sums child extents (plus gaps) along the main axis and takes the
// largest child along the cross axis.
func (f *FlowLayout) Measure(c *Component, a Axis, space Space) (int, error) {
	main := f.Direction.axis()
	total, count := 0, 0
	for _, ch := range c.layoutChildren() {
		if ch.sizing(a).IsFill() {
			return 0, ambiguousFill(c, ch, a)
		}
		n, err := resolveAxis(ch, a, childSpace(ch, space))
		if err != nil {
			return 0, err
		}
		n += ch.Margins.axis(a)
		if a == main {
			total += n
			count++
		} else {
			total = max(total, n)
		}
	}
	if a == main && count > 1 {
		total += c.Gap * (count - 1)
	}
	return total, nil
}

// Arrange resolves every child, hands the leftover main-axis space to Fill
// children and places the run according to the parent's alignment.
func (f *FlowLayout) Arrange(c *Component, content Rect) error {
	main := f.Direction.axis()
	cross := main.other()
	children := c.layoutChildren()
	area := spaceOf(content)

	sizes := make([]Size, len(children))
	var fillIdx, weights []int
	used := 0
	for i, ch := range children {
		space := childSpace(ch, area)
		used += ch.Margins.axis(main)
		if ch.sizing(main).IsFill() {
			fillIdx = append(fillIdx, i)
			weights = append(weights, ch.sizing(main).weight())
			continue
		}
		sz, err := Resolve(ch, space)
		if err != nil {
			return err
		}
		sizes[i] = sz
		used += sz.axis(main)
	}
	if len(children) > 1 {
		used += c.Gap * (len(children) - 1)
	}

	if len(fillIdx) > 0 {
		shares := DistributeFill(max(0, rectExtent(content, main)-used), weights)
		// Fill children resolve their cross axis against the share they received.
		for j, i := range fillIdx {
			ch := children[i]
			space := childSpace(ch, area).withAxis(main, shares[j])
			crossExtent, err := resolveAxis(ch, cross, space)
			if err != nil {
				return err
			}
			sizes[i] = sizeOf(main, shares[j], crossExtent)
			used += shares[j]
		}
	}

	cursor := rectPos(content, main) + c.alignment(main).offset(rectExtent(content, main)-used)
	crossStart := rectPos(content, cross)
	for i, ch := range children {
		m := ch.Margins
		mainExtent := sizes[i].axis(main)
		crossExtent := sizes[i].axis(cross)
		slot := rectExtent(content, cross) - m.axis(cross)
		crossPos := crossStart + m.leading(cross) + c.alignment(cross).offset(slot-crossExtent)

		r := axisRect(main, cursor+m.leading(main), crossPos, mainExtent, crossExtent)
		if !c.AllowOverflow {
			r = clampRect(r, content)
		}
		if err := placeComponent(ch, r); err != nil {
			return err
		}
		cursor += mainExtent + m.axis(main) + c.Gap
	}
	return arrangePositioned(c, content)
}
