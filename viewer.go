package arbor

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	defaultWidth  = 800
	defaultHeight = 600

	// glideDuration is how long the G key's flight home takes, seconds.
	glideDuration = 2.0

	// plantDistance is how far ahead of the camera the T key plants.
	plantDistance = 8
)

// RunConfig configures a viewer window. The zero value is usable: an
// 800x600 window at 60 ticks per second with default growth tuning.
type RunConfig struct {
	// Title is the window title. Empty falls back to "arbor".
	Title string

	// Width and Height are the window size in pixels.
	Width  int
	Height int

	// TPS is the simulation rate in ticks per second. Growth speed per
	// tick is rescaled so wall-clock speed stays the same. 0 keeps the
	// ebiten default of 60.
	TPS int

	// MouseSensitivity is look speed in degrees per pixel. 0 uses the
	// default.
	MouseSensitivity float32

	// ShowHUD starts with the overlay visible. F3 toggles it either way.
	ShowHUD bool

	// Debug logs per-tick scene stats to stderr.
	Debug bool

	// ConfigPath, when set, loads the growth config from this TOML file
	// and reloads it live whenever the file changes.
	ConfigPath string

	// ScreenshotDir is where F12 captures land. Empty means
	// "screenshots".
	ScreenshotDir string
}

// Viewer is the interactive window around a Scene: it runs the
// simulation at the configured tick rate, applies first-person input to
// the camera, and draws sky, world and overlay in that order.
//
// Controls: WASD walks, the mouse looks, G glides back to the starting
// viewpoint, T plants a tree ahead, F3 toggles the HUD, F12 captures a
// screenshot and Escape quits.
type Viewer struct {
	scene    *Scene
	renderer *Renderer
	sky      *Sky
	hud      *HUD
	controls controls

	watcher *ConfigWatcher
	flight  *FlightScript

	// injectQueue holds scripted input events, consumed one per tick in
	// place of real input.
	injectQueue []syntheticInputEvent

	width  int
	height int

	// home is the camera position at startup, the G key's glide target.
	home mgl32.Vec3

	screenshotDir   string
	screenshotQueue []string
}

// NewViewer wraps a scene for the given window config without starting
// it. Most callers want Run instead.
func NewViewer(scene *Scene, cfg RunConfig) *Viewer {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	scene.SetDebugMode(cfg.Debug)
	v := &Viewer{
		scene:         scene,
		renderer:      NewRenderer(cfg.Width, cfg.Height, scene.Config()),
		sky:           NewSky(),
		hud:           NewHUD(),
		controls:      newControls(cfg.MouseSensitivity),
		width:         cfg.Width,
		height:        cfg.Height,
		home:          scene.Camera().Position,
		screenshotDir: cfg.ScreenshotDir,
	}
	if cfg.ShowHUD {
		v.hud.Toggle()
	}
	return v
}

// Scene returns the scene the viewer runs.
func (v *Viewer) Scene() *Scene {
	return v.scene
}

// SetFlightScript attaches a scripted camera flight, advanced one step
// per tick ahead of input.
func (v *Viewer) SetFlightScript(f *FlightScript) {
	v.flight = f
}

// Run opens a window and runs the scene until the player quits. When
// cfg.ConfigPath is set the growth config is loaded from it up front and
// reloaded live on every file change.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.ConfigPath != "" {
		loaded, err := LoadGrowthConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		scene.SetGrowthConfig(loaded)
	}

	v := NewViewer(scene, cfg)

	if cfg.ConfigPath != "" {
		watcher, err := WatchConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		v.watcher = watcher
	}

	title := cfg.Title
	if title == "" {
		title = "arbor"
	}
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle(title)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	return ebiten.RunGame(v)
}

// Update advances one tick: input, config reload, simulation, overlay.
func (v *Viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	rate := referenceTPS / float32(ebiten.TPS())

	if v.watcher != nil {
		if cfg, ok := v.watcher.Poll(); ok {
			v.scene.SetGrowthConfig(cfg)
			fmt.Fprintf(os.Stderr, "[arbor] growth config reloaded\n")
		}
	}

	cam := v.scene.Camera()
	if !v.applyInjected(rate) {
		if spin, ok := v.controls.readLook(); ok {
			v.scene.SpinCamera(spin)
		}
		if step, ok := v.controls.readWalk(cam.Eulers.Z(), rate); ok {
			v.scene.MoveCamera(step)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		cam.GlideTo(v.home, glideDuration, ease.OutQuad)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.plantAhead()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		v.hud.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.Screenshot("viewer")
	}

	if v.flight != nil {
		v.flight.step(v)
	}

	v.scene.Update(rate)
	v.hud.Update(v.scene, float64(rate)/referenceTPS)
	return nil
}

// plantAhead seeds a new tree on the ground ahead of the camera, leaning
// slightly the way every sapling does.
func (v *Viewer) plantAhead() {
	cam := v.scene.Camera()
	f := cam.Forwards()
	ahead := mgl32.Vec3{f.X(), f.Y(), 0}.Normalize().Mul(plantDistance)
	spot := cam.Position.Add(ahead)
	spot[2] = 0
	v.scene.PlantTree(spot, mgl32.Vec3{10, 0, 0})
}

// Draw renders sky, world and overlay, then flushes queued screenshots.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.sky.Draw(screen, v.scene.Camera())
	v.renderer.Draw(screen, v.scene)
	v.hud.Draw(screen)
	v.flushScreenshots(screen)
}

// Layout reports the fixed logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}
