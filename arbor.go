package arbor

import "github.com/go-gl/mathgl/mgl32"

// Version is the current arbor release.
const Version = "0.3.0"

// referenceTPS is the tick rate the growth increments are tuned for. An
// update with rate 1 advances the world by one reference tick; a viewer
// running at a different tick rate passes referenceTPS/TPS to keep
// wall-clock growth speed unchanged.
const referenceTPS = 60

// ObjectType identifies which registry bucket an entity belongs to and
// which mesh the renderer instances for it.
type ObjectType int

const (
	ObjectCube   ObjectType = iota // static prop
	ObjectLeaf                     // foliage growing on a branch
	ObjectBranch                   // trunk or limb segment of a tree
	ObjectCamera                   // the scene's viewpoint, never bucketed
	ObjectSky                      // background dome, drawn by the renderer
)

// String returns the lowercase name of the object type.
func (t ObjectType) String() string {
	switch t {
	case ObjectCube:
		return "cube"
	case ObjectLeaf:
		return "leaf"
	case ObjectBranch:
		return "branch"
	case ObjectCamera:
		return "camera"
	case ObjectSky:
		return "sky"
	}
	return "unknown"
}

// bucketOrder fixes the bucket traversal sequence for updates and for
// the renderer. Branches run before the leaves they shed, and keeping
// the order constant means a seeded run always replays the same way.
var bucketOrder = []ObjectType{ObjectBranch, ObjectLeaf, ObjectCube}

// worldUp is the global up axis. The world is z-up, x/y is the ground plane.
var worldUp = mgl32.Vec3{0, 0, 1}
