package arbor

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// branchRimRadius is the trunk mesh's top rim radius at unit scale. The
// bottom rim is 1, so segments taper as they rise, and leaves spawn on
// the top rim circle.
const branchRimRadius = 0.8

// branchSides is the number of wall segments around a trunk tube.
const branchSides = 12

// Vertex3 is a mesh vertex: a model-space position and an RGB color.
// Meshes are untextured; the renderer shades the color per face.
type Vertex3 struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Mesh is a triangle soup in model space. Verts holds three vertices per
// face and its length is always a multiple of three.
type Mesh struct {
	Verts []Vertex3
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Verts) / 3
}

// face appends one triangle with a single flat color.
func (m *Mesh) face(a, b, c mgl32.Vec3, col mgl32.Vec3) {
	m.Verts = append(m.Verts,
		Vertex3{Position: a, Color: col},
		Vertex3{Position: b, Color: col},
		Vertex3{Position: c, Color: col},
	)
}

// BranchMesh builds the trunk tube: an open tapered cylinder from z=0 to
// z=height, radius 1 at the base and branchRimRadius at the top. Wall
// columns alternate two bark tones so the taper reads even without
// texturing. Branch entities scale this mesh by (radius, radius, height).
func BranchMesh(height float32) *Mesh {
	m := &Mesh{Verts: make([]Vertex3, 0, branchSides*6)}
	bark := mgl32.Vec3{0.46, 0.33, 0.22}
	dark := bark.Mul(0.82)
	for i := 0; i < branchSides; i++ {
		a0 := 2 * math32.Pi * float32(i) / branchSides
		a1 := 2 * math32.Pi * float32(i+1) / branchSides
		sin0, cos0 := math32.Sincos(a0)
		sin1, cos1 := math32.Sincos(a1)

		b0 := mgl32.Vec3{sin0, cos0, 0}
		b1 := mgl32.Vec3{sin1, cos1, 0}
		t0 := mgl32.Vec3{branchRimRadius * sin0, branchRimRadius * cos0, height}
		t1 := mgl32.Vec3{branchRimRadius * sin1, branchRimRadius * cos1, height}

		col := bark
		if i%2 == 1 {
			col = dark
		}
		m.face(b0, b1, t1, col)
		m.face(b0, t1, t0, col)
	}
	return m
}

// LeafMesh builds a single leaf blade: a diamond pointing along +y with
// a slight upward curl, colored darker at the stem and lighter at the
// tip. Leaf entities scale it by their age-derived size.
func LeafMesh() *Mesh {
	stem := mgl32.Vec3{0.16, 0.38, 0.12}
	tip := mgl32.Vec3{0.36, 0.62, 0.22}

	v0 := Vertex3{Position: mgl32.Vec3{0, 0, 0}, Color: stem}
	v1 := Vertex3{Position: mgl32.Vec3{0.5, 1, 0.15}, Color: tip}
	v2 := Vertex3{Position: mgl32.Vec3{0, 2, 0.3}, Color: tip}
	v3 := Vertex3{Position: mgl32.Vec3{-0.5, 1, 0.15}, Color: tip}

	return &Mesh{Verts: []Vertex3{v0, v1, v2, v0, v2, v3}}
}

// CubeMesh builds a unit cube centered on the origin. Each side gets its
// own shade of the base tone so edges stay visible under flat lighting.
func CubeMesh() *Mesh {
	m := &Mesh{Verts: make([]Vertex3, 0, 36)}
	base := mgl32.Vec3{0.55, 0.42, 0.3}

	// Corner layout: bit 0 = +x, bit 1 = +y, bit 2 = +z.
	var p [8]mgl32.Vec3
	for i := range p {
		p[i] = mgl32.Vec3{
			float32(i&1) - 0.5,
			float32(i>>1&1) - 0.5,
			float32(i>>2&1) - 0.5,
		}
	}

	quads := []struct {
		a, b, c, d int
		shade      float32
	}{
		{1, 3, 7, 5, 1.0},    // +x
		{2, 0, 4, 6, 0.78},   // -x
		{3, 2, 6, 7, 0.9},    // +y
		{0, 1, 5, 4, 0.84},   // -y
		{4, 5, 7, 6, 1.05},   // +z
		{0, 2, 3, 1, 0.7},    // -z
	}
	for _, q := range quads {
		col := base.Mul(q.shade)
		m.face(p[q.a], p[q.b], p[q.c], col)
		m.face(p[q.a], p[q.c], p[q.d], col)
	}
	return m
}

// GroundMesh builds a flat square at z=0 reaching extent in every
// direction, so the trees have something to stand on.
func GroundMesh(extent float32) *Mesh {
	m := &Mesh{Verts: make([]Vertex3, 0, 6)}
	grass := mgl32.Vec3{0.16, 0.3, 0.14}
	a := mgl32.Vec3{-extent, -extent, 0}
	b := mgl32.Vec3{extent, -extent, 0}
	c := mgl32.Vec3{extent, extent, 0}
	d := mgl32.Vec3{-extent, extent, 0}
	m.face(a, b, c, grass)
	m.face(a, c, d, grass)
	return m
}

// --- White pixel singleton (no sync.Once; arbor is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Every mesh face is drawn against it with vertex colors doing the work.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
