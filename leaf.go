package arbor

import "github.com/go-gl/mathgl/mgl32"

// Leaf scale grows linearly with age, reaching leafMaxScale after
// leafFullAge ticks and staying there.
const (
	leafFullAge  = 1000
	leafMaxScale = 0.2
)

// Leaf is foliage attached to a branch. A leaf ages while it grows, and
// once it falls off it ages backwards; when the age reaches zero the leaf
// asks the scene to remove it. Position and euler angles are branch-local:
// the leaf rides its branch's transform, so it follows the branch as the
// tree sways and thickens.
type Leaf struct {
	Object

	// Age counts growth ticks. New leaves start at 1 so they are visible
	// on their first frame.
	Age int

	// Dying is set by FallOff. A dying leaf shrinks back to nothing
	// instead of growing.
	Dying bool

	branch *Branch
}

func newLeaf(position, eulers mgl32.Vec3, branch *Branch) *Leaf {
	return &Leaf{
		Object: newObject(ObjectLeaf, position, eulers),
		Age:    1,
		branch: branch,
	}
}

// Branch returns the branch this leaf grew on.
func (l *Leaf) Branch() *Branch {
	return l.branch
}

// Transform returns the leaf's model matrix. The leaf's own placement is
// composed onto the owning branch's full transform, then scaled by the
// age-derived size, so the leaf stays pinned to the branch rim however
// the branch is posed and stretched.
func (l *Leaf) Transform() mgl32.Mat4 {
	s := min(leafMaxScale, float32(l.Age)/leafFullAge)
	return l.branch.Transform().
		Mul4(l.Object.Transform()).
		Mul4(mgl32.Scale3D(s, s, s))
}

// FallOff starts the leaf dying. Calling it again has no effect; the
// leaf keeps shrinking from wherever its age already is.
func (l *Leaf) FallOff() {
	l.Dying = true
}

// Update ages the leaf one tick: up while growing, down while dying. The
// removal event fires exactly once, on the tick the age reaches zero.
func (l *Leaf) Update(rate float32) Event {
	if !l.Dying {
		l.Age++
		return Event{}
	}
	l.Age--
	if l.Age == 0 {
		return Event{Kind: EventRemove, Entity: l}
	}
	return Event{}
}
