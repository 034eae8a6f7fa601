package arbor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often the overlay text re-renders, in seconds.
const hudRefresh = 0.5

// HUD is the debug overlay: frame and tick rates, population counts and
// the camera pose, re-rendered every ~0.5 seconds onto a small backing
// image and drawn in the top-left corner.
type HUD struct {
	visible     bool
	img         *ebiten.Image
	sinceUpdate float64
}

// NewHUD creates the overlay, initially hidden.
func NewHUD() *HUD {
	return &HUD{}
}

// Toggle flips the overlay's visibility.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the overlay is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Update refreshes the overlay text at the refresh interval. dt is the
// tick duration in seconds.
func (h *HUD) Update(scene *Scene, dt float64) {
	if !h.visible {
		return
	}
	h.sinceUpdate += dt
	if h.img != nil && h.sinceUpdate < hudRefresh {
		return
	}
	h.sinceUpdate = 0

	if h.img == nil {
		// 320x84 fits five lines of the debug font.
		h.img = ebiten.NewImage(320, 84)
	}
	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})

	cam := scene.Camera()
	ebitenutil.DebugPrint(h.img, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\ntick: %d\nbranches: %d  leaves: %d  cubes: %d  flakes: %d\ncam: (%.1f, %.1f, %.1f)\nyaw: %.1f  pitch: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		scene.Tick(),
		scene.Count(ObjectBranch), scene.Count(ObjectLeaf), scene.Count(ObjectCube),
		scene.Particles().AliveCount(),
		cam.Position.X(), cam.Position.Y(), cam.Position.Z(),
		cam.Eulers.Z(), cam.Eulers.Y(),
	))
}

// Draw blits the overlay if it is visible.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible || h.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(h.img, op)
}
