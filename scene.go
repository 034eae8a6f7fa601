package arbor

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const defaultEventCap = 256

// defaultCameraPosition places a fresh scene's viewpoint a few trunk
// lengths back from the origin, at canopy height.
var defaultCameraPosition = mgl32.Vec3{-10, 0, 4}

// Scene is the registry that owns every entity, the camera, and the
// growth tuning. It advances the whole world one tick at a time and is
// the only place entities are added or removed.
//
// A Scene is not safe for concurrent use. The intended shape is one
// goroutine calling Update, with the renderer reading transforms between
// ticks on that same goroutine.
type Scene struct {
	entities map[ObjectType][]Entity
	camera   *Camera
	leafFall *LeafFall

	cfg *GrowthConfig
	rng *rand.Rand

	// events is the per-tick buffer of structural changes. It is
	// collected during traversal and drained afterwards, reusing the
	// same backing array across ticks.
	events []Event

	// sink, when set, receives every applied event.
	sink EventSink

	tick  uint64
	debug bool
}

// NewScene creates an empty scene with a camera at the default viewpoint.
// A nil cfg uses DefaultGrowthConfig. A nil rng seeds a fresh PCG source
// from the clock; pass a seeded one for reproducible runs.
func NewScene(cfg *GrowthConfig, rng *rand.Rand) *Scene {
	if cfg == nil {
		cfg = DefaultGrowthConfig()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Scene{
		entities: make(map[ObjectType][]Entity),
		camera:   NewCamera(defaultCameraPosition),
		leafFall: newLeafFall(DefaultFallConfig(), rng),
		cfg:      cfg,
		rng:      rng,
		events:   make([]Event, 0, defaultEventCap),
	}
}

// Camera returns the scene's viewpoint.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Particles returns the falling-leaf flake pool.
func (s *Scene) Particles() *LeafFall {
	return s.leafFall
}

// SetEventSink installs a sink that receives every applied event. A nil
// sink turns publishing off.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Config returns the live growth tuning shared by every branch.
func (s *Scene) Config() *GrowthConfig {
	return s.cfg
}

// SetGrowthConfig retunes the scene in place. Every branch shares the
// scene's config instance, so the new values take effect on the next
// tick without touching the existing tree.
func (s *Scene) SetGrowthConfig(cfg *GrowthConfig) {
	if cfg == nil {
		return
	}
	*s.cfg = *cfg
}

// Tick returns how many times Update has run.
func (s *Scene) Tick() uint64 {
	return s.tick
}

// Count returns the number of live entities in a bucket.
func (s *Scene) Count(t ObjectType) int {
	return len(s.entities[t])
}

// Entities returns a bucket's contents. The returned slice is the
// scene's own storage and MUST NOT be mutated.
func (s *Scene) Entities(t ObjectType) []Entity {
	return s.entities[t]
}

// --- Population ---

// PlantTree seeds a new root branch at position with the given euler
// angles and returns it. The root starts at SeedRadius with no height
// and grows from the next tick on.
func (s *Scene) PlantTree(position, eulers mgl32.Vec3) *Branch {
	root := newBranch(position, eulers, nil)
	root.Depth = 1
	root.Radius = s.cfg.SeedRadius
	root.cfg = s.cfg
	root.rng = s.rng
	s.entities[ObjectBranch] = append(s.entities[ObjectBranch], root)
	return root
}

// Add places an entity in its bucket immediately, outside the event
// flow. Use it for props set up before the run starts.
func (s *Scene) Add(e Entity) {
	t := e.Type()
	s.entities[t] = append(s.entities[t], e)
}

// --- Tick ---

// Update advances the world one tick. Every bucket is traversed in a
// fixed order and each entity's event is collected; only after the full
// traversal are spawns and removals applied, so the set of entities
// visited this tick is exactly the set that existed when it began. The
// camera advances last.
func (s *Scene) Update(rate float32) {
	s.tick++
	s.events = s.events[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	for _, t := range bucketOrder {
		for _, e := range s.entities[t] {
			if ev := e.Update(rate); ev.Kind != EventNone {
				s.events = append(s.events, ev)
			}
		}
	}

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, ev := range s.events {
		s.apply(ev)
	}

	s.leafFall.update(rate / referenceTPS)
	s.camera.update(rate / referenceTPS)

	if s.debug {
		stats.applyTime = time.Since(t0)
		stats.tick = s.tick
		stats.eventCount = len(s.events)
		stats.branchCount = len(s.entities[ObjectBranch])
		stats.leafCount = len(s.entities[ObjectLeaf])
		stats.flakeCount = s.leafFall.alive
		s.debugLog(stats)
	}
}

// apply executes one queued structural change.
func (s *Scene) apply(ev Event) {
	switch ev.Kind {
	case EventSpawn:
		if s.debug {
			if b, ok := ev.Entity.(*Branch); ok {
				debugCheckDepth(b)
			}
		}
		s.Add(ev.Entity)
	case EventRemove:
		if l, ok := ev.Entity.(*Leaf); ok {
			s.leafFall.Burst(l.Transform().Col(3).Vec3())
		}
		s.remove(ev.Entity)
	}
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

// remove deletes an entity from its bucket by identity. Removing an
// entity that is not present is a no-op, so a doubled removal event
// cannot corrupt the bucket.
func (s *Scene) remove(e Entity) {
	bucket := s.entities[e.Type()]
	for i, got := range bucket {
		if got == e {
			copy(bucket[i:], bucket[i+1:])
			bucket[len(bucket)-1] = nil
			s.entities[e.Type()] = bucket[:len(bucket)-1]
			return
		}
	}
}

// --- Camera control ---

// MoveCamera offsets the camera position by d, interrupting any glide.
func (s *Scene) MoveCamera(d mgl32.Vec3) {
	s.camera.Move(d)
}

// SpinCamera adjusts the camera's euler angles by d degrees. Pitch is
// clamped short of the poles and yaw wraps.
func (s *Scene) SpinCamera(d mgl32.Vec3) {
	s.camera.Spin(d)
}

// --- Rendering boundary ---

// AppendTransforms appends the model matrix of every entity in a bucket
// to dst and returns it, in bucket order. The renderer is expected to
// reuse dst across frames.
func (s *Scene) AppendTransforms(t ObjectType, dst []mgl32.Mat4) []mgl32.Mat4 {
	for _, e := range s.entities[t] {
		dst = append(dst, e.Transform())
	}
	return dst
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick
// phase timings and bucket sizes are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}
