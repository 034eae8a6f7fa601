// viewer opens an interactive window on a freshly seeded scene. One tree
// is planted ahead of the camera; walk up to it with WASD and watch it
// grow out of the ground.
//
// Controls: WASD walks, the mouse looks around, G glides back to the
// starting viewpoint, T plants another tree ahead, F3 toggles the HUD,
// F12 captures a screenshot and Escape quits.
//
// An optional argument names a TOML growth config. The file is reloaded
// live whenever it changes, retuning the whole forest mid-run:
//
//	go run . tuning.toml
package main

import (
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/groveworks/arbor"
)

const (
	screenW = 1280
	screenH = 720
)

func main() {
	scene := arbor.NewScene(nil, nil)
	scene.PlantTree(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 0, 0})

	cfg := arbor.RunConfig{
		Title:   "arbor viewer",
		Width:   screenW,
		Height:  screenH,
		ShowHUD: true,
	}
	if len(os.Args) > 1 {
		cfg.ConfigPath = os.Args[1]
	}

	if err := arbor.Run(scene, cfg); err != nil {
		log.Fatal(err)
	}
}
