package arbor

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sky colors, top to bottom: zenith above, haze at the horizon line,
// dusk below it. The ground plane paints over most of the dusk band.
var (
	skyZenith  = [3]float32{0.22, 0.42, 0.72}
	skyHorizon = [3]float32{0.69, 0.78, 0.88}
	skyDusk    = [3]float32{0.3, 0.32, 0.3}
)

// Sky is the screen-space backdrop drawn before any geometry: a vertical
// gradient whose horizon line slides with the camera's pitch, so looking
// up fills the screen with zenith and looking down with dusk.
type Sky struct {
	verts   []ebiten.Vertex
	indices []uint16
}

// NewSky creates the backdrop.
func NewSky() *Sky {
	return &Sky{
		verts:   make([]ebiten.Vertex, 0, 8),
		indices: []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7},
	}
}

// Draw fills the screen with the gradient for the camera's current
// pitch. Pitch is mapped linearly over the field of view; at the clamp
// limits the horizon is far off screen and one band covers everything.
func (s *Sky) Draw(screen *ebiten.Image, cam *Camera) {
	bounds := screen.Bounds()
	w := float32(bounds.Dx())
	h := float32(bounds.Dy())

	// One degree of pitch moves the horizon by the same share of the
	// screen as one degree of field of view.
	horizon := h * (0.5 + cam.Eulers.Y()/renderFOV)
	horizon = math32.Min(math32.Max(horizon, -h), 2*h)

	s.verts = s.verts[:0]
	s.quad(0, horizon, w, skyZenith, skyHorizon)
	s.quad(horizon, h, w, skyHorizon, skyDusk)
	screen.DrawTriangles(s.verts, s.indices, ensureWhitePixel(), nil)
}

// quad appends a full-width band from y0 to y1 with a top and bottom
// color.
func (s *Sky) quad(y0, y1, w float32, top, bottom [3]float32) {
	s.verts = append(s.verts,
		skyVertex(0, y0, top),
		skyVertex(w, y0, top),
		skyVertex(w, y1, bottom),
		skyVertex(0, y1, bottom),
	)
}

func skyVertex(x, y float32, col [3]float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: col[0],
		ColorG: col[1],
		ColorB: col[2],
		ColorA: 1,
	}
}
