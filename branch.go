package arbor

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// splitYawStep quantizes the yaw of split children and leaves. Both draw
// an angle of splitYawStep * [0, 20) degrees.
const splitYawStep = 18

// Branch is one segment of a tree: the root trunk or any limb above it.
// A branch thickens over time, extends upward exactly once, may fork one
// sideways split, and grows leaves on its upper rim while it is young.
//
// Radius, Height, Age and Depth are exposed for inspection; the scene's
// update loop owns them and they should not be written from outside.
type Branch struct {
	Object

	// Radius is the trunk thickness. Roots widen every tick; every other
	// branch is retuned from its parent as the parent thickens.
	Radius float32

	// Height grows from 0 to 1 and is pinned at 1 when the branch
	// extends. The rendered length is Height * BranchHeight.
	Height float32

	// Age counts ticks since the branch was created.
	Age uint

	// Depth is the branch's generation. Roots are 1.
	Depth int

	parent *Branch
	above  *Branch
	split  *Branch

	// splitRejected marks a failed split draw so the branch does not
	// re-roll every tick. Deep branches clear it again and retry.
	splitRejected bool

	leaves []*Leaf

	cfg *GrowthConfig
	rng *rand.Rand
}

// newBranch creates a branch at position with the given euler angles.
// Children inherit depth, tuning and randomness from their parent; roots
// get theirs from the scene in PlantTree.
func newBranch(position, eulers mgl32.Vec3, parent *Branch) *Branch {
	b := &Branch{
		Object: newObject(ObjectBranch, position, eulers),
		parent: parent,
	}
	if parent != nil {
		b.Depth = parent.Depth + 1
		b.cfg = parent.cfg
		b.rng = parent.rng
	}
	return b
}

// Transform returns the branch's model matrix: the euler placement scaled
// by (radius, radius, height). The trunk mesh is modeled at unit radius
// and BranchHeight length, so the scale stretches it to the live size.
func (b *Branch) Transform() mgl32.Mat4 {
	return b.Object.Transform().Mul4(mgl32.Scale3D(b.Radius, b.Radius, b.Height))
}

// Parent returns the branch this one grew from, or nil for a root.
func (b *Branch) Parent() *Branch {
	return b.parent
}

// Above returns the upward extension child, or nil before extension.
func (b *Branch) Above() *Branch {
	return b.above
}

// Split returns the sideways fork child, or nil if none has grown.
func (b *Branch) Split() *Branch {
	return b.split
}

// Leaves returns the attached leaves, oldest first. The returned slice is
// the branch's own storage and must not be modified.
func (b *Branch) Leaves() []*Leaf {
	return b.leaves
}

// LeafCount returns the number of leaves still attached.
func (b *Branch) LeafCount() int {
	return len(b.leaves)
}

// --- Growth ---

// Update advances the branch by one tick. The phases run in a fixed
// order and the first one that changes the branch wins the tick, so a
// branch never emits more than one event per update:
//
//	thicken  always runs, never emits
//	extend   grow toward full height, then spawn the upward child
//	split    roll for a sideways fork
//	foliate  grow a leaf on the rim
func (b *Branch) Update(rate float32) Event {
	b.Age++
	b.thicken(rate)
	if ev, fired := b.extend(rate); fired {
		return ev
	}
	if ev, fired := b.trySplit(); fired {
		return ev
	}
	return b.foliate()
}

// thicken widens a root and pushes the new radius down the tree. A branch
// grown past LeafGrowingMaxRadius is old bark; it sheds one leaf per tick
// until none are left. Shed leaves keep rendering while they die, so the
// branch forgets them here and the scene removes them when they expire.
func (b *Branch) thicken(rate float32) {
	if b.parent == nil {
		b.Radius += b.cfg.RadiusGrowth * rate
	}
	if b.Radius > b.cfg.LeafGrowingMaxRadius && len(b.leaves) > 0 {
		oldest := b.leaves[0]
		oldest.FallOff()
		copy(b.leaves, b.leaves[1:])
		b.leaves[len(b.leaves)-1] = nil
		b.leaves = b.leaves[:len(b.leaves)-1]
	}
	if b.split != nil {
		b.split.Radius = b.Radius * b.cfg.SplitRadius
	}
	if b.above != nil {
		b.above.Radius = b.Radius * b.cfg.TopRadius
	}
}

// extend grows a juvenile branch toward full height and, once height
// reaches 1, spawns the upward extension child at the branch's tip. The
// same tick that completes the height can also spawn, so the child
// appears exactly when the branch matures. Extension happens at most
// once, and only while the branch is thick enough and not at max depth.
func (b *Branch) extend(rate float32) (Event, bool) {
	grew := false
	if b.Height < 1 {
		b.Height += b.cfg.HeightGrowth * rate
		grew = true
		if b.Height < 1 {
			return Event{}, true
		}
	}
	if b.above != nil || b.Radius <= b.cfg.MinExtendRadius || b.Depth >= b.cfg.MaxDepth {
		return Event{}, grew
	}
	b.Height = 1
	tip := b.Transform().Mul4x1(mgl32.Vec4{0, 0, b.cfg.BranchHeight, 1})
	b.above = newBranch(tip.Vec3(), b.Eulers, b)
	return Event{Kind: EventSpawn, Entity: b.above}, true
}

// trySplit rolls once for a sideways fork. The chance rises with depth,
// depth/10, so trunks almost never fork and twigs usually do. A failed
// roll is remembered and the branch stops rolling, except close to the
// canopy (depth beyond 3/4 of MaxDepth) where the rejection is cleared
// so a later tick rolls again.
func (b *Branch) trySplit() (Event, bool) {
	if b.splitRejected {
		if float32(b.Depth) > 0.75*float32(b.cfg.MaxDepth) {
			b.splitRejected = false
		}
		return Event{}, false
	}
	if b.split != nil || b.Depth >= b.cfg.MaxDepth {
		return Event{}, false
	}
	if b.rng.Float32() >= float32(b.Depth)/10 {
		b.splitRejected = true
		return Event{}, true
	}
	position := b.Position.Add(mgl32.Vec3{
		0,
		b.cfg.SplitY * b.Radius,
		b.cfg.SplitZ * b.Height,
	})
	eulers := mgl32.Vec3{
		b.Eulers.X() + b.cfg.SplitPitch,
		b.Eulers.Y(),
		b.Eulers.Z() + splitYawStep*float32(b.rng.IntN(20)),
	}
	b.split = newBranch(position, eulers, b)
	return Event{Kind: EventSpawn, Entity: b.split}, true
}

// foliate grows one leaf on the branch's top rim. Only young branches
// (radius under LeafGrowingMaxRadius) that have already extended grow
// leaves, and thicker branches hold fewer: the cap is 1/radius.
func (b *Branch) foliate() Event {
	if b.Radius >= b.cfg.LeafGrowingMaxRadius || b.above == nil {
		return Event{}
	}
	if float32(len(b.leaves)) >= 1/b.Radius {
		return Event{}
	}
	return Event{Kind: EventSpawn, Entity: b.growLeaf()}
}

// growLeaf attaches a new leaf on the trunk mesh's top rim. The leaf
// sits at a quantized angle around the rim, in branch-local space, and
// yaws to face outward.
func (b *Branch) growLeaf() *Leaf {
	theta := float32(splitYawStep * b.rng.IntN(20))
	sin, cos := math32.Sincos(mgl32.DegToRad(theta))
	position := mgl32.Vec3{branchRimRadius * sin, branchRimRadius * cos, b.cfg.BranchHeight}
	leaf := newLeaf(position, mgl32.Vec3{0, 0, theta}, b)
	b.leaves = append(b.leaves, leaf)
	return leaf
}
