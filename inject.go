package bramble

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticScroll
	syntheticKey
	syntheticChar
)

// syntheticEvent is one queued input event. Screen coordinates are used,
// identical to real mouse input.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    int
	pressed bool
	button  MouseButton
	dx, dy  float64
	key     ebiten.Key
	char    rune
	mods    KeyModifiers
}

// InjectHover queues a pointer move with no button held.
func (s *Screen) InjectHover(x, y int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y})
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next frame.
func (s *Screen) InjectPress(x, y int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Screen) InjectMove(x, y int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Screen) InjectRelease(x, y int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (s *Screen) InjectClick(x, y int) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (s *Screen) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		s.InjectMove(fromX+(toX-fromX)*i/(steps+1), fromY+(toY-fromY)*i/(steps+1))
	}
	s.InjectRelease(toX, toY)
}

// InjectScroll queues a wheel movement at the given coordinates. Positive dy
// scrolls up, matching ebiten.Wheel.
func (s *Screen) InjectScroll(x, y int, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, x: x, y: y, dy: dy})
}

// InjectKey queues a key press delivered to the focused component.
func (s *Screen) InjectKey(key ebiten.Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: key, mods: mods})
}

// InjectChars queues one char-typed event per rune of text.
func (s *Screen) InjectChars(text string) {
	for _, r := range text {
		s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticChar, char: r})
	}
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the router. Returns true if an event was consumed (host input is
// skipped for that frame).
func (s *Screen) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.processPointer(evt.x, evt.y, evt.pressed, evt.button, evt.mods)
	case syntheticScroll:
		s.processScroll(evt.x, evt.y, evt.dx, evt.dy, evt.mods)
	case syntheticKey:
		s.processKey(evt.key, evt.mods)
	case syntheticChar:
		s.processChar(evt.char, evt.mods)
	}
	return true
}
