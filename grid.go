package bramble

import "fmt"

type gridCell struct {
	row, column int
	set         bool
}

// GridLayout places each child in a (row, column) cell. A track's extent is
// its Sizing: Fixed tracks use their pixel value, Content tracks take the
// largest cell in the track and Fill tracks share what is left.
// Track sizings default to Content.
type GridLayout struct {
	Rows, Columns int
	RowSizing     []Sizing
	ColumnSizing  []Sizing
}

// Grid creates a container with a rows x columns grid layout.
func Grid(horizontal, vertical Sizing, rows, columns int) *Component {
	if rows < 1 || columns < 1 {
		panic("bramble: grid needs at least one row and one column")
	}
	c := NewComponent("grid-layout")
	c.HorizontalSizing = horizontal
	c.VerticalSizing = vertical
	c.Layout = &GridLayout{Rows: rows, Columns: columns}
	return c
}

// SetCell places child in the given cell of grid, replacing any component
// already in that cell. Panics if grid has no GridLayout or the cell is out
// of range.
func SetCell(grid, child *Component, row, column int) {
	g, ok := grid.Layout.(*GridLayout)
	if !ok {
		panic("bramble: SetCell on a component without a grid layout")
	}
	if row < 0 || row >= g.Rows || column < 0 || column >= g.Columns {
		panic(fmt.Sprintf("bramble: grid cell (%d, %d) out of range %dx%d", row, column, g.Rows, g.Columns))
	}
	if old := g.childAt(grid, row, column); old != nil && old != child {
		grid.RemoveChild(old)
	}
	child.cell = gridCell{row: row, column: column, set: true}
	if child.Parent != grid {
		grid.AddChild(child)
	} else {
		grid.MarkDirty()
	}
}

// CellChild returns the component explicitly placed in the given cell, or nil.
func (g *GridLayout) CellChild(grid *Component, row, column int) *Component {
	return g.childAt(grid, row, column)
}

func (g *GridLayout) childAt(grid *Component, row, column int) *Component {
	for _, ch := range grid.children {
		if ch.cell.set && ch.cell.row == row && ch.cell.column == column {
			return ch
		}
	}
	return nil
}

// cellOf returns the cell of a child. Children added without SetCell fill
// the grid row by row in child order.
func (g *GridLayout) cellOf(grid *Component, child *Component) (int, int, bool) {
	if child.cell.set {
		return child.cell.row, child.cell.column, true
	}
	i := 0
	for _, ch := range grid.children {
		if ch == child {
			break
		}
		if !ch.cell.set {
			i++
		}
	}
	if i >= g.Rows*g.Columns {
		return 0, 0, false
	}
	return i / g.Columns, i % g.Columns, true
}

func (g *GridLayout) tracks(a Axis) (int, []Sizing) {
	if a == AxisHorizontal {
		return g.Columns, g.ColumnSizing
	}
	return g.Rows, g.RowSizing
}

func (g *GridLayout) trackSizing(a Axis, i int) Sizing {
	_, sizings := g.tracks(a)
	if i < len(sizings) {
		return sizings[i]
	}
	return Content(0)
}

func (g *GridLayout) trackIndex(grid, child *Component, a Axis) (int, bool) {
	row, col, ok := g.cellOf(grid, child)
	if a == AxisHorizontal {
		return col, ok
	}
	return row, ok
}

// contentTrack returns the largest outer extent of the children in track i.
// Fill cells do not size the track; they stretch to whatever the other cells
// in it need.
func (g *GridLayout) contentTrack(grid *Component, a Axis, i int, space Space) (int, error) {
	extent := 0
	for _, ch := range grid.layoutChildren() {
		t, ok := g.trackIndex(grid, ch, a)
		if !ok || t != i || ch.sizing(a).IsFill() {
			continue
		}
		n, err := resolveAxis(ch, a, childSpace(ch, space))
		if err != nil {
			return 0, err
		}
		extent = max(extent, n+ch.Margins.axis(a))
	}
	return extent, nil
}

// Measure sums the track extents along a. Fill tracks have no intrinsic
// extent, so measuring one is ambiguous.
func (g *GridLayout) Measure(c *Component, a Axis, space Space) (int, error) {
	n, _ := g.tracks(a)
	total := 0
	for i := 0; i < n; i++ {
		sz := g.trackSizing(a, i)
		switch sz.Method {
		case SizingFixed:
			total += sz.Value
		case SizingFill:
			return 0, fillTrackError(c, a, i)
		default:
			e, err := g.contentTrack(c, a, i, space.withAxis(a, Unbounded))
			if err != nil {
				return 0, err
			}
			total += e + sz.Value
		}
	}
	if n > 1 {
		total += c.Gap * (n - 1)
	}
	return total, nil
}

func fillTrackError(c *Component, a Axis, i int) error {
	return &ConfigError{
		Path: c.Path(),
		Err:  fmt.Errorf("%w: fill %s track %d in a content-sized grid", ErrAmbiguousSizing, a, i),
	}
}

// validate rejects Fill tracks along an axis where the grid itself is sized
// by its content.
func (g *GridLayout) validate(c *Component) error {
	for _, a := range [2]Axis{AxisHorizontal, AxisVertical} {
		if !c.sizing(a).IsContent() {
			continue
		}
		n, _ := g.tracks(a)
		for i := 0; i < n; i++ {
			if g.trackSizing(a, i).IsFill() {
				return fillTrackError(c, a, i)
			}
		}
	}
	return nil
}

// trackExtents resolves every track along a against the content extent.
func (g *GridLayout) trackExtents(c *Component, a Axis, content Rect) ([]int, error) {
	n, _ := g.tracks(a)
	extents := make([]int, n)
	var fillIdx, weights []int
	used := c.Gap * max(0, n-1)
	space := spaceOf(content).withAxis(a, Unbounded)
	for i := 0; i < n; i++ {
		sz := g.trackSizing(a, i)
		switch sz.Method {
		case SizingFixed:
			extents[i] = sz.Value
		case SizingFill:
			fillIdx = append(fillIdx, i)
			weights = append(weights, sz.weight())
			continue
		default:
			e, err := g.contentTrack(c, a, i, space)
			if err != nil {
				return nil, err
			}
			extents[i] = e + sz.Value
		}
		used += extents[i]
	}
	shares := DistributeFill(max(0, rectExtent(content, a)-used), weights)
	for j, i := range fillIdx {
		extents[i] = shares[j]
	}
	return extents, nil
}

// Arrange sizes the tracks and places each child inside its cell, aligned
// per the grid's alignment.
func (g *GridLayout) Arrange(c *Component, content Rect) error {
	cols, err := g.trackExtents(c, AxisHorizontal, content)
	if err != nil {
		return err
	}
	rows, err := g.trackExtents(c, AxisVertical, content)
	if err != nil {
		return err
	}
	colPos := trackPositions(content.X, cols, c.Gap)
	rowPos := trackPositions(content.Y, rows, c.Gap)

	for _, ch := range c.layoutChildren() {
		row, col, ok := g.cellOf(c, ch)
		if !ok {
			// More children than cells: collapse to nothing.
			if err := placeComponent(ch, Rect{X: content.X, Y: content.Y}); err != nil {
				return err
			}
			continue
		}
		cell := Rect{X: colPos[col], Y: rowPos[row], Width: cols[col], Height: rows[row]}
		size, err := Resolve(ch, childSpace(ch, spaceOf(cell)))
		if err != nil {
			return err
		}
		m := ch.Margins
		x := cell.X + m.Left + c.HorizontalAlignment.offset(cell.Width-m.Horizontal()-size.Width)
		y := cell.Y + m.Top + c.VerticalAlignment.offset(cell.Height-m.Vertical()-size.Height)
		r := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
		if !c.AllowOverflow {
			r = clampRect(r, content)
		}
		if err := placeComponent(ch, r); err != nil {
			return err
		}
	}
	return arrangePositioned(c, content)
}

func trackPositions(start int, extents []int, gap int) []int {
	pos := make([]int, len(extents))
	p := start
	for i, e := range extents {
		pos[i] = p
		p += e + gap
	}
	return pos
}
