// Package ecs bridges bramble interaction events into an ECS world.
//
// [NewDonburiStore] publishes every event consumed by a component with a
// non-zero EntityID to a [Donburi] world. Systems subscribe to
// [InteractionEventType] to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	screen.SetEntityStore(store)
//	button.EntityID = 7
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
