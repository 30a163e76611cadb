package bramble

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone = 3.0
	defaultScrollStep   = 15
	defaultCommandCap   = 1024
)

// Screen is the top-level object that owns the layer stack, the event router,
// focus, animations and the deferred mutation queue.
type Screen struct {
	layers        []*LayerInstance
	width, height int
	layoutDirty   bool
	lastLayoutErr string

	// pending is the deferred mutation log flushed after input and draw.
	pending []func()

	// Router state
	handlers    listenerSet
	pointer     pointerState
	hoverPath   []*Component
	focused     *Component
	injectQueue []syntheticEvent
	mouseX      int
	mouseY      int

	// DragDeadZone is the distance in pixels the pointer must travel while
	// pressed before a drag starts.
	DragDeadZone float64
	// ScrollStep is the default distance scroll containers move per wheel notch.
	ScrollStep int
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	animations      []*Animation
	surface         *CommandSurface
	store           EntityStore
	debug           bool
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScreen creates an empty screen. Add content with SetRoot or PushLayer.
func NewScreen() *Screen {
	s := &Screen{
		DragDeadZone:  defaultDragDeadZone,
		ScrollStep:    defaultScrollStep,
		ScreenshotDir: "screenshots",
		surface:       NewCommandSurface(),
	}
	s.surface.commands = make([]DrawCommand, 0, defaultCommandCap)
	return s
}

// Size returns the logical screen size used for layout.
func (s *Screen) Size() (int, int) { return s.width, s.height }

// Resize sets the logical screen size and schedules a relayout.
func (s *Screen) Resize(width, height int) {
	if s.width == width && s.height == height {
		return
	}
	s.width, s.height = width, height
	s.layoutDirty = true
}

// SetEntityStore sets the optional ECS bridge.
func (s *Screen) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-component
// access panics, tree depth and child count warnings are printed, and per-frame
// timing stats are logged to stderr.
func (s *Screen) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Screen debug flag so that
// component operations (which lack a Screen pointer) can check it cheaply.
var globalDebug bool

// On registers a screen-level listener. Screen-level listeners see every
// routed event before the components do and may consume it.
func (s *Screen) On(t EventType, fn Listener) Subscription {
	return s.handlers.add(t, fn)
}

// --- Layout ---

// Layout lays out every layer against the screen size. Errors are logged
// once per distinct message and the first one is returned.
func (s *Screen) Layout() error {
	s.layoutDirty = false
	var first error
	for _, l := range s.layers {
		if err := s.layoutLayer(l); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		if msg := first.Error(); msg != s.lastLayoutErr {
			log.Printf("bramble: layout failed: %v", first)
			s.lastLayoutErr = msg
		}
	} else {
		s.lastLayoutErr = ""
	}
	return first
}

func (s *Screen) ensureLayout() {
	if s.layoutDirty {
		_ = s.Layout()
	}
}

func (s *Screen) layoutLayer(l *LayerInstance) error {
	root := l.Root
	if !root.Visible {
		return nil
	}
	bounds := Rect{Width: s.width, Height: s.height}
	size, err := Resolve(root, childSpace(root, spaceOf(bounds)))
	if err != nil {
		return err
	}
	r := Rect{X: root.Margins.Left, Y: root.Margins.Top, Width: size.Width, Height: size.Height}
	switch root.Positioning.Type {
	case PositionAbsolute:
		r.X += root.Positioning.X
		r.Y += root.Positioning.Y
	case PositionRelative:
		r.X += (s.width - size.Width - root.Margins.Horizontal()) * root.Positioning.X / 100
		r.Y += (s.height - size.Height - root.Margins.Vertical()) * root.Positioning.Y / 100
	}
	return placeComponent(root, r)
}

// --- Frame loop ---

// Update reads host input, dispatches events, ticks components and
// animations, then flushes deferred mutations.
func (s *Screen) Update() error {
	s.frame(1.0/float64(ebiten.TPS()), true)
	return nil
}

// frame runs one update. When readHost is false only injected input is
// processed, which keeps tests independent of a running game loop.
func (s *Screen) frame(dt float64, readHost bool) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.ensureLayout()
	if s.debug {
		stats.layoutTime = time.Since(t0)
		t0 = time.Now()
	}

	if !s.processInjectedInput() && readHost {
		s.processHostInput()
	}
	s.Flush()
	s.ensureLayout()
	if s.debug {
		stats.dispatchTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, l := range s.layers {
		s.updateComponent(l.Root, dt)
	}
	s.updateAnimations(dt)
	s.Flush()
	if s.debug {
		stats.updateTime = time.Since(t0)
		s.debugLogUpdate(stats)
	}
}

func (s *Screen) updateComponent(c *Component, dt float64) {
	if !c.Visible || c.pendingRemoval {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logRecovered("update", c, r)
		}
	}()
	if u, ok := c.Layout.(Updater); ok {
		u.Update(c, dt, s.mouseX, s.mouseY)
	}
	if u, ok := c.Content.(Updater); ok {
		u.Update(c, dt, s.mouseX, s.mouseY)
	}
	for _, ch := range c.children {
		s.updateComponent(ch, dt)
	}
}

// Draw lays out if needed, records every layer into the command surface,
// submits it to target and flushes deferred mutations.
func (s *Screen) Draw(target *ebiten.Image) {
	b := target.Bounds()
	s.Resize(b.Dx(), b.Dy())
	s.ensureLayout()

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.surface.Reset()
	s.DrawTo(s.surface)
	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.commandCount = len(s.surface.commands)
		t0 = time.Now()
	}
	s.surface.Submit(target)
	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLogDraw(stats)
	}
	s.Flush()
	s.captureScreenshots(target)
}

// --- Deferred mutation ---

func (s *Screen) enqueue(fn func()) {
	s.pending = append(s.pending, fn)
}

// Flush runs the queued mutations in order. Work queued while flushing runs
// at the next flush.
func (s *Screen) Flush() {
	if len(s.pending) == 0 {
		return
	}
	batch := s.pending
	s.pending = nil
	for _, fn := range batch {
		fn()
	}
}

// forget drops router references into a subtree that left the screen.
func (s *Screen) forget(c *Component) {
	if s.focused != nil && isAncestor(c, s.focused) {
		s.focused.focused = false
		s.focused = nil
	}
	kept := s.hoverPath[:0]
	for _, h := range s.hoverPath {
		if isAncestor(c, h) {
			h.hovered = false
			continue
		}
		kept = append(kept, h)
	}
	s.hoverPath = kept
	if s.pointer.pressTarget != nil && isAncestor(c, s.pointer.pressTarget) {
		s.pointer.pressTarget = nil
	}
	if s.pointer.captured != nil && isAncestor(c, s.pointer.captured) {
		s.pointer.captured = nil
	}
}

func logRecovered(phase string, c *Component, r any) {
	log.Printf("bramble: recovered panic during %s of %s: %v", phase, c.Path(), r)
}
