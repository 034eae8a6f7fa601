package arbor

import "strings"

// syntheticInputEvent is one tick of scripted input: a held WASD bitmask
// plus cursor travel in pixels. Events queue up through the Inject
// methods and are consumed one per tick in place of real input.
type syntheticInputEvent struct {
	combo        int
	lookX, lookY float32
}

// parseKeys converts a string of WASD letters to a key bitmask. Other
// characters are ignored.
func parseKeys(keys string) int {
	combo := 0
	for _, r := range strings.ToLower(keys) {
		switch r {
		case 'w':
			combo |= comboW
		case 'a':
			combo |= comboA
		case 's':
			combo |= comboS
		case 'd':
			combo |= comboD
		}
	}
	return combo
}

// InjectWalk queues the given WASD keys held for a number of ticks. The
// events are consumed on subsequent Update calls, moving the camera
// exactly as real key input would.
func (v *Viewer) InjectWalk(keys string, ticks int) {
	combo := parseKeys(keys)
	for i := 0; i < ticks; i++ {
		v.injectQueue = append(v.injectQueue, syntheticInputEvent{combo: combo})
	}
}

// InjectLook queues a single tick of cursor travel: dx pixels rightward
// and dy pixels downward.
func (v *Viewer) InjectLook(dx, dy float32) {
	v.injectQueue = append(v.injectQueue, syntheticInputEvent{lookX: dx, lookY: dy})
}

// InjectSweep queues cursor travel spread evenly over a number of ticks,
// for a smooth scripted pan.
func (v *Viewer) InjectSweep(dx, dy float32, ticks int) {
	if ticks < 1 {
		ticks = 1
	}
	sx := dx / float32(ticks)
	sy := dy / float32(ticks)
	for i := 0; i < ticks; i++ {
		v.injectQueue = append(v.injectQueue, syntheticInputEvent{lookX: sx, lookY: sy})
	}
}

// applyInjected pops one event from the inject queue and applies it to
// the camera through the same paths as real input. Returns true if an
// event was consumed (real input should be skipped this tick).
func (v *Viewer) applyInjected(rate float32) bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.lookX != 0 || evt.lookY != 0 {
		v.scene.SpinCamera(lookSpin(v.controls.sensitivity, evt.lookX, evt.lookY))
	}
	if step, ok := walkStep(evt.combo, v.scene.Camera().Eulers.Z(), rate); ok {
		v.scene.MoveCamera(step)
	}
	return true
}
