// Package bramble is a retained-mode UI toolkit for [Ebitengine].
//
// Bramble provides a component tree with flex-style layout, event routing
// with hover and focus tracking, scroll and drag containers, dropdowns,
// overlays, render effects, tweened animations (via [gween]) and XML
// templates.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// a [Screen]:
//
//	screen := bramble.NewScreen()
//	root := bramble.VerticalFlow(bramble.Fill(1), bramble.Fill(1))
//	root.AddChild(bramble.NewLabel("Hello"))
//	screen.SetRoot(root)
//	bramble.Run(screen, bramble.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Screen.Update] and [Screen.Draw] directly:
//
//	type Game struct{ screen *bramble.Screen }
//
//	func (g *Game) Update() error { return g.screen.Update() }
//	func (g *Game) Draw(s *ebiten.Image) { g.screen.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.screen.Resize(w, h)
//		return w, h
//	}
//
// # Components and layout
//
// Every element is a [Component]. A component's Layout arranges its
// children and its Content draws leaf visuals such as text or a texture.
// Each axis is sized with [Fixed], [Content] or [Fill]:
//
//	row := bramble.HorizontalFlow(bramble.Fill(1), bramble.Content(0))
//	row.Gap = 4
//	row.AddChild(bramble.NewButton("OK", onOK))
//	row.AddChild(bramble.NewBox(bramble.Fill(1), bramble.Fixed(2), bramble.ColorWhite, true))
//
// Fill children split the parent's leftover space by weight. A
// content-sized parent cannot hold a fill-sized child on the same axis;
// [Validate] and [Screen.SetRoot] report that as a [*ConfigError].
//
// Tree mutations made while events are dispatched should go through
// [Component.Queue] or [Component.RemoveLater]; they run when the frame
// flushes.
//
// # Events
//
// Pointer events are delivered to the topmost component under the cursor
// and bubble toward the root until a handler consumes them. Keyboard
// events go to the focused component; Tab cycles focus. Screen listeners
// registered with [Screen.On] see every event first.
//
// # Templates
//
// [ParseModel] builds a tree from XML. Component tags map to factories in a
// [Registry]; attributes and child elements map to properties. Templates
// declared under <templates> are expanded with {{param}} substitution.
//
// # Serialization
//
// The packet subpackage encodes structs for network payloads, and the ecs
// subpackage forwards interaction events to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bramble
