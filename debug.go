package bramble

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timings. Only populated when Screen.debug is true.
type debugStats struct {
	layoutTime   time.Duration
	dispatchTime time.Duration
	updateTime   time.Duration
	drawTime     time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLogUpdate prints the update-side timings to stderr.
func (s *Screen) debugLogUpdate(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.layoutTime + stats.dispatchTime + stats.updateTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] layout: %v | dispatch: %v | update: %v | total: %v | pending: %d\n",
		stats.layoutTime, stats.dispatchTime, stats.updateTime, total, len(s.pending))
}

// debugLogDraw prints the draw-side timings and command count to stderr.
func (s *Screen) debugLogDraw(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] draw: %v | submit: %v | commands: %d\n",
		stats.drawTime, stats.submitTime, stats.commandCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// component is used in a tree operation.
func debugCheckDisposed(c *Component, op string) {
	if c.disposed {
		panic(fmt.Sprintf("bramble debug: %s on disposed %s %q", op, c.Kind, c.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c *Component) {
	depth := 0
	for p := c; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: tree depth %d exceeds %d (%s)\n",
			depth, debugMaxTreeDepth, c.Path())
	}
}

// debugCheckChildCount warns on stderr if a component has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Component) {
	if len(c.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: %s has %d children (threshold %d)\n",
			c.Path(), len(c.children), debugMaxChildCount)
	}
}

// countComponents returns the number of components in the subtree rooted at c.
func countComponents(c *Component) int {
	n := 1
	for _, ch := range c.children {
		n += countComponents(ch)
	}
	return n
}

// DebugSummary returns a one-line description of the screen's layers, used by
// the debug overlay and in test failure messages.
func (s *Screen) DebugSummary() string {
	total := 0
	for _, l := range s.layers {
		total += countComponents(l.Root)
	}
	focused := "none"
	if s.focused != nil {
		focused = s.focused.Path()
	}
	hovered := "none"
	if h := s.Hovered(); h != nil {
		hovered = h.Path()
	}
	return fmt.Sprintf("layers: %d | components: %d | hovered: %s | focused: %s",
		len(s.layers), total, hovered, focused)
}
