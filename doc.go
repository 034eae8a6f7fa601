// Package arbor is an interactive 3D viewer for procedurally growing
// trees, built on [Ebitengine].
//
// Arbor provides the growth simulation (branches that thicken, extend,
// fork and shed leaves), the scene registry that ticks it, a first-person
// camera, and a software painter's renderer that draws the whole scene
// as depth-sorted triangles, with no GPU pipeline beyond Ebitengine's 2D
// drawing.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop for you:
//
//	scene := arbor.NewScene(nil, nil)
//	scene.PlantTree(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 0, 0})
//	arbor.Run(scene, arbor.RunConfig{
//		Title: "Arbor", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and drive
// [Scene.Update] and [Renderer.Draw] directly:
//
//	type Game struct {
//		scene    *arbor.Scene
//		renderer *arbor.Renderer
//	}
//
//	func (g *Game) Update() error        { g.scene.Update(1); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.renderer.Draw(s, g.scene) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Growth model
//
// Every tree is a graph of [Branch] values. Each tick a branch thickens,
// then takes at most one growth action: extend upward, fork sideways, or
// grow a [Leaf]. Structural changes are returned as [Event] values and
// applied by the [Scene] after the full traversal, so ticks are
// two-phase and deterministic under a seeded random source.
//
// Growth tuning lives in [GrowthConfig], loadable from TOML with
// [LoadGrowthConfig] and hot-reloadable through [WatchConfig].
//
// # Key features
//
// Arbor includes a first-person camera with glide-to animation (via
// [gween]), WASD and mouse-look input, TOML growth configs with live
// reload (via [fsnotify]), an on-screen HUD, timestamped screenshots,
// JSON flight scripts for unattended capture runs, and an [EventSink]
// hook that streams every applied spawn and removal to observers such
// as the donburi bridge in the ecs subpackage.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [fsnotify]: https://github.com/fsnotify/fsnotify
package arbor
