package arbor

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// flightStep represents a single action in a flight script.
type flightStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Keys    string  `json:"keys,omitempty"`
	X       float32 `json:"x,omitempty"`
	Y       float32 `json:"y,omitempty"`
	Z       float32 `json:"z,omitempty"`
	Yaw     float32 `json:"yaw,omitempty"`
	Pitch   float32 `json:"pitch,omitempty"`
	Ticks   int     `json:"ticks,omitempty"`
	Seconds float32 `json:"seconds,omitempty"`
}

// flightScript is the top-level JSON structure for a flight script.
type flightScript struct {
	Steps []flightStep `json:"steps"`
}

// FlightScript sequences camera motion, planting and screenshots across
// ticks, for unattended capture runs of a growing scene. Attach to a
// Viewer via SetFlightScript. The walk and look actions go through the
// synthetic input queue, so they exercise the exact paths real input
// takes; the script holds at such a step until the queue drains.
//
// Supported actions:
//
//	wait        pause for Ticks ticks
//	move        offset the camera by (x, y, z)
//	spin        adjust the camera by yaw and pitch degrees
//	glide       fly the camera to (x, y, z) over Seconds
//	walk        hold Keys (WASD letters) for Ticks ticks
//	look        sweep the view by yaw and pitch degrees over Ticks ticks
//	plant       plant a tree at (x, y, 0)
//	screenshot  capture the frame under Label
type FlightScript struct {
	steps     []flightStep
	cursor    int
	waitCount int
	done      bool
}

// LoadFlightScript parses a JSON flight script.
func LoadFlightScript(jsonData []byte) (*FlightScript, error) {
	var script flightScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse flight script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse flight script: no steps")
	}
	return &FlightScript{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (f *FlightScript) Done() bool {
	return f.done
}

// step advances the script by one tick. Called from Viewer.Update.
func (f *FlightScript) step(v *Viewer) {
	if f.done {
		return
	}
	// Queued synthetic input plays out before the next step.
	if len(v.injectQueue) > 0 {
		return
	}
	if f.waitCount > 0 {
		f.waitCount--
		return
	}
	if f.cursor >= len(f.steps) {
		f.done = true
		return
	}

	st := f.steps[f.cursor]
	f.cursor++

	switch st.Action {
	case "wait":
		if st.Ticks > 0 {
			f.waitCount = st.Ticks - 1 // this tick counts as one
		}
	case "move":
		v.scene.MoveCamera(mgl32.Vec3{st.X, st.Y, st.Z})
	case "spin":
		v.scene.SpinCamera(mgl32.Vec3{0, st.Pitch, st.Yaw})
	case "glide":
		seconds := st.Seconds
		if seconds <= 0 {
			seconds = glideDuration
		}
		v.scene.Camera().GlideTo(mgl32.Vec3{st.X, st.Y, st.Z}, seconds, ease.InOutQuad)
	case "walk":
		ticks := st.Ticks
		if ticks < 1 {
			ticks = 1
		}
		v.InjectWalk(st.Keys, ticks)
	case "look":
		ticks := st.Ticks
		if ticks < 1 {
			ticks = 1
		}
		s := v.controls.sensitivity
		v.InjectSweep(-st.Yaw/s, -st.Pitch/s, ticks)
	case "plant":
		v.scene.PlantTree(mgl32.Vec3{st.X, st.Y, 0}, mgl32.Vec3{10, 0, 0})
	case "screenshot":
		v.Screenshot(st.Label)
	}

	if f.cursor >= len(f.steps) && f.waitCount == 0 && len(v.injectQueue) == 0 {
		f.done = true
	}
}
