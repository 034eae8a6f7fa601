// Package ecs provides ECS adapters for arbor.
package ecs

import (
	"github.com/groveworks/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GrowthEventType is the Donburi event type for arbor growth events.
// Subscribe to this in your ECS systems to receive branch and leaf
// spawns and removals.
var GrowthEventType = events.NewEventType[arbor.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Growth
// events are published to GrowthEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) arbor.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event arbor.Event) {
	GrowthEventType.Publish(s.world, event)
}
