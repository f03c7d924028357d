// Package ecs provides ECS adapters for backdrop's input tracker.
//
// The primary adapter is [NewDonburiStore], which bridges tracker updates
// (pointer move, pointer leave, scroll, resize) into a [Donburi] world as
// typed events. Subscribe to [InputEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	tracker.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
