package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	comboW = 1 << iota
	comboA
	comboS
	comboD
)

// walkSpeed is the camera's ground speed in world units per reference
// tick, so walking pace matches at any simulation TPS.
const walkSpeed = 0.1

// defaultMouseSensitivity is the look speed in degrees per pixel of
// cursor travel.
const defaultMouseSensitivity = 0.25

// walkOffsets maps a held WASD bitmask to the walk heading's offset from
// the camera yaw, in degrees. Yaw is counterclockwise, so A (strafe
// left) is +90. Combinations whose keys cancel, like W+S or A+D, have no
// entry and produce no movement.
var walkOffsets = map[int]float32{
	comboW:                   0,
	comboA:                   90,
	comboW | comboA:          45,
	comboS:                   180,
	comboA | comboS:          135,
	comboW | comboA | comboS: 90,
	comboD:                   270,
	comboW | comboD:          315,
	comboW | comboA | comboD: 0,
	comboS | comboD:          225,
	comboW | comboS | comboD: 270,
	comboA | comboS | comboD: 180,
}

// --- Pointer and key state ---

// controls tracks the captured cursor between ticks for mouse look.
// The first sample after capture only primes the position, so the jump
// from wherever the OS cursor was does not whip the camera.
type controls struct {
	sensitivity float32
	cursorX     int
	cursorY     int
	cursorReady bool
}

func newControls(sensitivity float32) controls {
	if sensitivity <= 0 {
		sensitivity = defaultMouseSensitivity
	}
	return controls{sensitivity: sensitivity}
}

// walkStep converts a held WASD bitmask to the world-space step for one
// tick. The heading combines the camera yaw with the combo's offset; the
// step is horizontal, walking never changes altitude. ok is false when
// the combo's keys cancel out.
func walkStep(combo int, yaw, rate float32) (mgl32.Vec3, bool) {
	offset, ok := walkOffsets[combo]
	if !ok {
		return mgl32.Vec3{}, false
	}
	sin, cos := math32.Sincos(mgl32.DegToRad(yaw + offset))
	step := walkSpeed * rate
	return mgl32.Vec3{step * cos, step * sin, 0}, true
}

// lookSpin converts cursor travel to a camera spin. dx and dy are pixels
// of rightward and downward travel; moving right turns clockwise
// (negative yaw) and moving down pitches down.
func lookSpin(sensitivity, dx, dy float32) mgl32.Vec3 {
	return mgl32.Vec3{0, -sensitivity * dy, -sensitivity * dx}
}

// readWalk polls WASD and returns the world-space step for this tick.
func (ct *controls) readWalk(yaw, rate float32) (mgl32.Vec3, bool) {
	combo := 0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		combo |= comboW
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		combo |= comboA
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		combo |= comboS
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		combo |= comboD
	}
	return walkStep(combo, yaw, rate)
}

// readLook returns the spin from cursor travel since the last tick.
func (ct *controls) readLook() (mgl32.Vec3, bool) {
	x, y := ebiten.CursorPosition()
	if !ct.cursorReady {
		ct.cursorReady = true
		ct.cursorX, ct.cursorY = x, y
		return mgl32.Vec3{}, false
	}
	dx := float32(x - ct.cursorX)
	dy := float32(y - ct.cursorY)
	ct.cursorX, ct.cursorY = x, y
	if dx == 0 && dy == 0 {
		return mgl32.Vec3{}, false
	}
	return lookSpin(ct.sensitivity, dx, dy), true
}
