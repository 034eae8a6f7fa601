package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float32 fields in lockstep. Create one
// via the convenience constructors (TweenVec3, TweenScalar) and call
// Update(dt) each tick; the group writes the tweened values straight
// into the bound fields and sets Done once every tween has finished.
//
// There is no global animation manager; owners call Update themselves.
// The camera's glide is a TweenGroup over its position.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float32
	count  int
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// bound fields. After the group is done further calls are no-ops, so the
// fields keep whatever was last written to them.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVec3 creates a TweenGroup that animates the components of v to
// the target vector over duration seconds using the easing function.
// The group writes through the pointer, so v must outlive the group.
func TweenVec3(v *mgl32.Vec3, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(v[i], to[i], duration, fn)
		g.fields[i] = &v[i]
	}
	return g
}

// TweenScalar creates a TweenGroup that animates a single field to the
// target value over duration seconds using the easing function.
func TweenScalar(f *float32, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(*f, to, duration, fn)
	g.fields[0] = f
	return g
}
