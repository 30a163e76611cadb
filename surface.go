package bramble

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Layers used by the screen when drawing. Commands are sorted by layer first,
// so everything on LayerTooltip draws above every UI layer.
const (
	LayerUI      uint8 = 0
	LayerTooltip uint8 = 250
	LayerDebug   uint8 = 255
)

// Surface is the drawing seam between components and the rendering host.
// Coordinates are in screen pixels transformed by the current matrix.
type Surface interface {
	// Push saves the transform, tint and layer; Pop restores them.
	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(radians float64)
	// MultiplyTint multiplies the color applied to all later draws.
	MultiplyTint(c Color)
	SetLayer(layer uint8)

	// PushClip intersects the scissor region with r (in current
	// coordinates); PopClip restores the previous region.
	PushClip(r Rect)
	PopClip()

	FillRect(r Rect, c Color)
	DrawImage(img *ebiten.Image, src image.Rectangle, dst Rect, tint Color)
	DrawText(s string, f Font, x, y float64, c Color)
}

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandFill  CommandType = iota // solid rectangle
	CommandImage                    // textured quad
	CommandText                     // text run
)

// DrawCommand is a single draw instruction recorded by a CommandSurface.
type DrawCommand struct {
	Type      CommandType
	Transform [6]float64
	Layer     uint8

	// Rect is the destination in local (pre-transform) coordinates.
	Rect  Rect
	Color Color

	// Clip is the scissor rect in screen space, valid when Clipped is set.
	Clip    Rect
	Clipped bool

	Image *ebiten.Image
	Src   image.Rectangle

	Text string
	Font Font
	TX   float64
	TY   float64

	treeOrder int
}

type surfaceState struct {
	transform [6]float64
	tint      Color
	layer     uint8
}

// CommandSurface records draw commands for later sorting and submission.
// It never touches the GPU until Submit, which makes it suitable for tests.
type CommandSurface struct {
	commands []DrawCommand
	sortBuf  []DrawCommand
	state    surfaceState
	stack    []surfaceState
	clips    []Rect
	order    int
}

// NewCommandSurface creates an empty surface with an identity transform.
func NewCommandSurface() *CommandSurface {
	s := &CommandSurface{}
	s.Reset()
	return s
}

// Reset clears recorded commands and all state stacks.
func (s *CommandSurface) Reset() {
	s.commands = s.commands[:0]
	s.stack = s.stack[:0]
	s.clips = s.clips[:0]
	s.state = surfaceState{transform: identityTransform, tint: ColorWhite}
	s.order = 0
}

// Commands returns the recorded commands. The slice is reused between frames.
func (s *CommandSurface) Commands() []DrawCommand {
	return s.commands
}

// Push saves the current transform, tint and layer.
func (s *CommandSurface) Push() {
	s.stack = append(s.stack, s.state)
}

// Pop restores the state saved by the matching Push. An unbalanced Pop is
// ignored.
func (s *CommandSurface) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate moves the origin of later draws by (x, y).
func (s *CommandSurface) Translate(x, y float64) {
	s.state.transform = multiplyAffine(s.state.transform, translateMatrix(x, y))
}

// Scale scales later draws about the current origin.
func (s *CommandSurface) Scale(sx, sy float64) {
	s.state.transform = multiplyAffine(s.state.transform, scaleMatrix(sx, sy))
}

// Rotate rotates later draws about the current origin.
func (s *CommandSurface) Rotate(radians float64) {
	s.state.transform = multiplyAffine(s.state.transform, rotateMatrix(radians))
}

// MultiplyTint multiplies the tint of later draws by c.
func (s *CommandSurface) MultiplyTint(c Color) {
	s.state.tint = s.state.tint.Multiply(c)
}

// SetLayer sets the sort layer of later draws.
func (s *CommandSurface) SetLayer(layer uint8) {
	s.state.layer = layer
}

// PushClip intersects the scissor with r transformed to screen space.
func (s *CommandSurface) PushClip(r Rect) {
	r = transformRect(s.state.transform, r)
	if n := len(s.clips); n > 0 {
		r = s.clips[n-1].Intersect(r)
	}
	s.clips = append(s.clips, r)
}

// PopClip restores the scissor saved by PushClip.
func (s *CommandSurface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

// mark and restore let the screen rebalance the stacks after a component
// panics halfway through drawing.
func (s *CommandSurface) mark() (int, int) {
	return len(s.stack), len(s.clips)
}

func (s *CommandSurface) restore(stackDepth, clipDepth int) {
	for len(s.stack) > stackDepth {
		s.Pop()
	}
	if len(s.clips) > clipDepth {
		s.clips = s.clips[:clipDepth]
	}
}

func (s *CommandSurface) emit(cmd DrawCommand) {
	if n := len(s.clips); n > 0 {
		cmd.Clip = s.clips[n-1]
		cmd.Clipped = true
		if cmd.Clip.IsEmpty() {
			return
		}
	}
	cmd.Transform = s.state.transform
	cmd.Layer = s.state.layer
	cmd.treeOrder = s.order
	s.order++
	s.commands = append(s.commands, cmd)
}

// FillRect records a solid rectangle.
func (s *CommandSurface) FillRect(r Rect, c Color) {
	if r.IsEmpty() {
		return
	}
	c = c.Multiply(s.state.tint)
	if c.A <= 0 {
		return
	}
	s.emit(DrawCommand{Type: CommandFill, Rect: r, Color: c})
}

// DrawImage records the src region of img stretched over dst.
func (s *CommandSurface) DrawImage(img *ebiten.Image, src image.Rectangle, dst Rect, tint Color) {
	if img == nil || dst.IsEmpty() || src.Empty() {
		return
	}
	s.emit(DrawCommand{Type: CommandImage, Image: img, Src: src, Rect: dst, Color: tint.Multiply(s.state.tint)})
}

// DrawText records str with its top-left corner at (x, y).
func (s *CommandSurface) DrawText(str string, f Font, x, y float64, c Color) {
	if str == "" || f == nil {
		return
	}
	s.emit(DrawCommand{Type: CommandText, Text: str, Font: f, TX: x, TY: y, Color: c.Multiply(s.state.tint)})
}

// --- Sorting ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b *DrawCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.treeOrder <= b.treeOrder
}

// Sort orders commands by layer, keeping recording order within a layer.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *CommandSurface) Sort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]DrawCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []DrawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Submission ---

// Submit sorts the recorded commands and plays them onto target.
func (s *CommandSurface) Submit(target *ebiten.Image) {
	s.Sort()
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		dst := target
		if cmd.Clipped {
			dst = target.SubImage(image.Rect(cmd.Clip.X, cmd.Clip.Y, cmd.Clip.Right(), cmd.Clip.Bottom())).(*ebiten.Image)
		}
		switch cmd.Type {
		case CommandFill:
			op.GeoM.Reset()
			op.GeoM.Scale(float64(cmd.Rect.Width), float64(cmd.Rect.Height))
			op.GeoM.Translate(float64(cmd.Rect.X), float64(cmd.Rect.Y))
			op.GeoM.Concat(geoM(cmd.Transform))
			setColorScale(&op.ColorScale, cmd.Color)
			dst.DrawImage(ensureWhitePixel(), &op)
		case CommandImage:
			op.GeoM.Reset()
			op.GeoM.Scale(float64(cmd.Rect.Width)/float64(cmd.Src.Dx()), float64(cmd.Rect.Height)/float64(cmd.Src.Dy()))
			op.GeoM.Translate(float64(cmd.Rect.X), float64(cmd.Rect.Y))
			op.GeoM.Concat(geoM(cmd.Transform))
			setColorScale(&op.ColorScale, cmd.Color)
			dst.DrawImage(cmd.Image.SubImage(cmd.Src).(*ebiten.Image), &op)
		case CommandText:
			face := cmd.Font.Face()
			if face == nil {
				continue
			}
			var top text.DrawOptions
			top.GeoM.Translate(cmd.TX, cmd.TY)
			top.GeoM.Concat(geoM(cmd.Transform))
			setColorScale(&top.ColorScale, cmd.Color)
			top.LineSpacing = cmd.Font.LineHeight()
			text.Draw(dst, cmd.Text, face, &top)
		}
	}
}

// setColorScale applies a non-premultiplied color as a premultiplied scale.
func setColorScale(cs *ebiten.ColorScale, c Color) {
	cs.Reset()
	a := float32(c.A)
	cs.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

// drawOutline strokes a one-pixel border inside r.
func drawOutline(s Surface, r Rect, c Color) {
	if r.IsEmpty() {
		return
	}
	s.FillRect(Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, c)
	s.FillRect(Rect{X: r.X, Y: r.Bottom() - 1, Width: r.Width, Height: 1}, c)
	s.FillRect(Rect{X: r.X, Y: r.Y + 1, Width: 1, Height: r.Height - 2}, c)
	s.FillRect(Rect{X: r.Right() - 1, Y: r.Y + 1, Width: 1, Height: r.Height - 2}, c)
}
