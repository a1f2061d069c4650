// Package ecs provides ECS adapters for bough's transition events.
//
// The primary adapter is [NewDonburiStore], which bridges applied phase
// events (load, exit, enter completions) into a [Donburi] world as typed
// events. Subscribe to [PhaseEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
