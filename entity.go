package arbor

import "github.com/go-gl/mathgl/mgl32"

// Entity is anything the scene registry tracks and the renderer can place
// in the world. Implementations report their bucket type, produce a model
// transform, and advance their own state once per simulation tick.
type Entity interface {
	// Type reports which registry bucket the entity belongs to.
	Type() ObjectType

	// Transform returns the entity's model matrix for this tick.
	Transform() mgl32.Mat4

	// Update advances the entity by one tick. rate scales continuous
	// growth so a simulation running slower than the reference 60 ticks
	// per second still grows at the same wall-clock pace. Structural
	// changes are not applied directly; they are described by the
	// returned event and applied by the scene after the full traversal.
	Update(rate float32) Event
}

// Object is the common state embedded by every concrete entity: a world
// position and an euler orientation, both in the z-up world frame.
// Eulers are degrees, applied x then y then z.
type Object struct {
	Position mgl32.Vec3
	Eulers   mgl32.Vec3

	objectType ObjectType
}

func newObject(t ObjectType, position, eulers mgl32.Vec3) Object {
	return Object{Position: position, Eulers: eulers, objectType: t}
}

// Type reports which registry bucket the object belongs to.
func (o *Object) Type() ObjectType {
	return o.objectType
}

// Transform returns the object's unscaled model matrix.
func (o *Object) Transform() mgl32.Mat4 {
	return eulerTransform(o.Position, o.Eulers)
}

// Cube is a static prop. It never grows and never emits events.
type Cube struct {
	Object
}

// NewCube returns a cube prop at position with the given euler angles.
func NewCube(position, eulers mgl32.Vec3) *Cube {
	return &Cube{Object: newObject(ObjectCube, position, eulers)}
}

// Update is a no-op: cubes are inert scenery.
func (c *Cube) Update(rate float32) Event {
	return Event{}
}
