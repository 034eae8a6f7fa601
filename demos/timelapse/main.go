// timelapse runs an unattended capture flight over a growing grove and
// exits when the script finishes. The flight plants two trees, waits
// while they grow, and banks a few screenshots along the way; captures
// land in timelapse_frames/.
//
// Demonstrates: flight scripts, the synthetic input queue (walk and look
// steps replay through the same path real input takes), accelerated
// growth tuning, and embedding a script with go:embed.
package main

import (
	_ "embed"
	"log"
	"math/rand/v2"

	"github.com/groveworks/arbor"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed flight.json
var flightJSON []byte

const (
	screenW = 1280
	screenH = 720

	// growthBoost scales the default tuning so the flight's minute of
	// wall clock shows a full tree instead of a seedling.
	growthBoost = 10
)

// timelapse wraps the viewer so the run ends with the flight instead of
// waiting for a keypress.
type timelapse struct {
	*arbor.Viewer
	script *arbor.FlightScript
}

func (t *timelapse) Update() error {
	if err := t.Viewer.Update(); err != nil {
		return err
	}
	if t.script.Done() {
		return ebiten.Termination
	}
	return nil
}

func main() {
	script, err := arbor.LoadFlightScript(flightJSON)
	if err != nil {
		log.Fatal(err)
	}

	cfg := arbor.DefaultGrowthConfig()
	cfg.RadiusGrowth *= growthBoost
	cfg.HeightGrowth *= growthBoost

	scene := arbor.NewScene(cfg, rand.New(rand.NewPCG(2026, 8)))

	v := arbor.NewViewer(scene, arbor.RunConfig{
		Width:         screenW,
		Height:        screenH,
		ShowHUD:       true,
		ScreenshotDir: "timelapse_frames",
	})
	v.SetFlightScript(script)

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("arbor timelapse")

	if err := ebiten.RunGame(&timelapse{Viewer: v, script: script}); err != nil {
		log.Fatal(err)
	}
}
