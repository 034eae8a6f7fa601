package arbor

// EventKind classifies what an entity asked the scene to do after a tick.
type EventKind int

const (
	EventNone   EventKind = iota // nothing to apply
	EventSpawn                   // add Entity to its bucket
	EventRemove                  // delete Entity from its bucket
)

// String returns the lowercase name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventSpawn:
		return "spawn"
	case EventRemove:
		return "remove"
	}
	return "unknown"
}

// Event is an entity's structural request to the scene. Entities return at
// most one per tick; the scene collects them during traversal and applies
// them afterwards, so a spawn or removal never mutates a bucket while it
// is being iterated.
type Event struct {
	Kind   EventKind
	Entity Entity
}

// EventSink receives every structural change after the scene applies it.
// Install one with [Scene.SetEventSink]. The ecs subpackage republishes
// events into a donburi world through this interface.
type EventSink interface {
	EmitEvent(Event)
}
