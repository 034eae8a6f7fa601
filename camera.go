package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// maxPitch keeps the camera short of straight up or down, where the
// look-at basis would collapse onto the world up axis.
const maxPitch = 89

// Camera is the scene's viewpoint. Orientation lives in the euler
// angles: Eulers.Y is pitch in degrees, positive up, clamped short of
// the poles; Eulers.Z is yaw in degrees, counterclockwise from +x,
// wrapped to [0, 360). Eulers.X is unused.
//
// The basis vectors derived from yaw and pitch refresh once per tick in
// update, after events have been applied.
type Camera struct {
	Object

	forwards mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3

	glide *TweenGroup
}

// NewCamera creates a camera at position, level and looking down +x.
func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{Object: newObject(ObjectCamera, position, mgl32.Vec3{})}
	c.calculateVectors()
	return c
}

// Move offsets the camera position by d and interrupts any glide.
func (c *Camera) Move(d mgl32.Vec3) {
	c.glide = nil
	c.Position = c.Position.Add(d)
}

// Spin adjusts the euler angles by d degrees, clamping pitch to
// [-maxPitch, maxPitch] and wrapping yaw onto [0, 360).
func (c *Camera) Spin(d mgl32.Vec3) {
	c.Eulers = c.Eulers.Add(d)
	c.Eulers[1] = clampDegrees(c.Eulers[1], -maxPitch, maxPitch)
	c.Eulers[2] = wrapDegrees(c.Eulers[2])
}

// GlideTo animates the camera to the given world position over duration
// seconds. A manual Move cancels the glide.
func (c *Camera) GlideTo(target mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.glide = TweenVec3(&c.Position, target, duration, easeFn)
}

// update advances any glide and refreshes the orientation basis. Called
// from Scene.Update with the tick duration in seconds.
func (c *Camera) update(dt float32) {
	if c.glide != nil {
		c.glide.Update(dt)
		if c.glide.Done {
			c.glide = nil
		}
	}

	c.calculateVectors()
}

// calculateVectors rebuilds the orthonormal basis from yaw and pitch.
//
//	forwards = (cos yaw * cos pitch, sin yaw * cos pitch, sin pitch)
//	right    = normalize(forwards x worldUp)
//	up       = normalize(right x forwards)
func (c *Camera) calculateVectors() {
	sinYaw, cosYaw := math32.Sincos(mgl32.DegToRad(c.Eulers.Z()))
	sinPitch, cosPitch := math32.Sincos(mgl32.DegToRad(c.Eulers.Y()))

	c.forwards = mgl32.Vec3{
		cosYaw * cosPitch,
		sinYaw * cosPitch,
		sinPitch,
	}
	c.right = c.forwards.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forwards).Normalize()
}

// Forwards returns the view direction from the last basis refresh.
func (c *Camera) Forwards() mgl32.Vec3 {
	return c.forwards
}

// Right returns the rightward basis vector from the last basis refresh.
func (c *Camera) Right() mgl32.Vec3 {
	return c.right
}

// Up returns the upward basis vector from the last basis refresh.
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

// ViewTransform returns the world-to-view matrix for the current
// position and basis.
func (c *Camera) ViewTransform() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.forwards), c.up)
}

// Gliding reports whether a GlideTo animation is still running.
func (c *Camera) Gliding() bool {
	return c.glide != nil
}
