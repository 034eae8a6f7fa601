// Package ecs provides ECS adapters for arbor's growth event stream.
//
// The primary adapter is [NewDonburiSink], which bridges arbor scene
// events (branch and leaf spawns and removals) into a [Donburi] world as
// typed events. Subscribe to [GrowthEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
