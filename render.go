package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Projection constants for the perspective camera.
const (
	renderFOV  = 45  // vertical field of view, degrees
	renderNear = 0.1 // near clip distance
	renderFar  = 50  // far clip distance
)

// lambertAmbient is the shade floor; faces pointing away from the light
// keep this fraction of their color.
const lambertAmbient = 0.35

// lightDir points from the world toward the sun.
var lightDir = mgl32.Vec3{0.35, -0.5, 0.8}.Normalize()

// groundExtent is how far the ground plane reaches from the origin.
const groundExtent = 40

// faceCommand is a single projected triangle awaiting depth sorting.
type faceCommand struct {
	// depth is the face's mean distance along the view axis; farther
	// faces draw first.
	depth float32
	verts [3]ebiten.Vertex
}

// Renderer draws a scene with the painter's algorithm: every entity's
// mesh is instanced by its model transform, projected, depth sorted back
// to front, and submitted as one triangle batch against a white pixel.
// There is no depth buffer; the sort is the whole story.
type Renderer struct {
	width  int
	height int
	proj   mgl32.Mat4

	meshes map[ObjectType]*Mesh
	ground *Mesh

	// Reused per-frame buffers, grown to high-water mark and kept.
	transforms  []mgl32.Mat4
	commands    []faceCommand
	sortBuf     []faceCommand
	flatVerts   []ebiten.Vertex
	flatIndices []uint16
}

// NewRenderer creates a renderer for a width x height viewport. The
// trunk mesh is sized from the config's BranchHeight so branch entities
// land exactly where the growth model puts their children; a nil cfg
// uses the defaults.
func NewRenderer(width, height int, cfg *GrowthConfig) *Renderer {
	if cfg == nil {
		cfg = DefaultGrowthConfig()
	}
	return &Renderer{
		width:  width,
		height: height,
		proj: mgl32.Perspective(
			mgl32.DegToRad(renderFOV),
			float32(width)/float32(height),
			renderNear,
			renderFar,
		),
		meshes: map[ObjectType]*Mesh{
			ObjectBranch: BranchMesh(cfg.BranchHeight),
			ObjectLeaf:   LeafMesh(),
			ObjectCube:   CubeMesh(),
		},
		ground: GroundMesh(groundExtent),
	}
}

// Draw renders the scene's entities and the ground plane onto screen.
// The sky is expected to be drawn first by the caller.
func (r *Renderer) Draw(screen *ebiten.Image, scene *Scene) {
	viewProj := r.proj.Mul4(scene.Camera().ViewTransform())

	r.commands = r.commands[:0]
	r.emitMesh(viewProj, mgl32.Ident4(), r.ground)
	for _, t := range bucketOrder {
		mesh := r.meshes[t]
		if mesh == nil {
			continue
		}
		r.transforms = scene.AppendTransforms(t, r.transforms[:0])
		for _, model := range r.transforms {
			r.emitMesh(viewProj, model, mesh)
		}
	}
	r.emitParticles(viewProj, scene.Particles())

	r.mergeSort()
	r.submit(screen)
}

// emitMesh projects every face of one mesh instance into the command
// buffer.
func (r *Renderer) emitMesh(viewProj, model mgl32.Mat4, mesh *Mesh) {
	for f := 0; f+2 < len(mesh.Verts); f += 3 {
		r.emitFace(viewProj, model, mesh.Verts[f], mesh.Verts[f+1], mesh.Verts[f+2], 1)
	}
}

// emitParticles projects every alive flake as a small tilted quad. The
// quad spins with the flake's flutter angle and leans off the ground
// plane so it catches light; color and alpha come from the flake's
// lifetime interpolation.
func (r *Renderer) emitParticles(viewProj mgl32.Mat4, lf *LeafFall) {
	ident := mgl32.Ident4()
	for i := 0; i < lf.alive; i++ {
		p := &lf.particles[i]
		sin, cos := math32.Sincos(mgl32.DegToRad(p.spin))
		u := mgl32.Vec3{cos, sin, 0}.Mul(p.scale)
		w := mgl32.Vec3{-sin, cos, 0.5}.Normalize().Mul(p.scale)

		a := Vertex3{Position: p.pos.Add(u), Color: p.color}
		b := Vertex3{Position: p.pos.Add(w), Color: p.color}
		c := Vertex3{Position: p.pos.Sub(u), Color: p.color}
		d := Vertex3{Position: p.pos.Sub(w), Color: p.color}
		r.emitFace(viewProj, ident, a, b, c, p.alpha)
		r.emitFace(viewProj, ident, a, c, d, p.alpha)
	}
}

// emitFace transforms, lights and projects a single triangle. Faces with
// any vertex on the camera side of the near plane are dropped whole
// rather than clipped, as are faces entirely off screen and degenerate
// faces such as a zero-height trunk wall.
func (r *Renderer) emitFace(viewProj, model mgl32.Mat4, a, b, c Vertex3, alpha float32) {
	wa := model.Mul4x1(a.Position.Vec4(1)).Vec3()
	wb := model.Mul4x1(b.Position.Vec4(1)).Vec3()
	wc := model.Mul4x1(c.Position.Vec4(1)).Vec3()

	normal := wb.Sub(wa).Cross(wc.Sub(wa))
	if normal.Len() < 1e-12 {
		return
	}
	// Walls are visible from both sides, so light by the unsigned angle.
	shade := lambertAmbient + (1-lambertAmbient)*math32.Abs(normal.Normalize().Dot(lightDir))

	var cmd faceCommand
	w := float32(r.width)
	h := float32(r.height)
	for i, vert := range [3]struct {
		world mgl32.Vec3
		color mgl32.Vec3
	}{{wa, a.Color}, {wb, b.Color}, {wc, c.Color}} {
		sx, sy, depth, ok := projectVertex(viewProj, w, h, vert.world)
		if !ok {
			return
		}
		cmd.depth += depth / 3
		cmd.verts[i] = ebiten.Vertex{
			DstX:   sx,
			DstY:   sy,
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: vert.color.X() * shade,
			ColorG: vert.color.Y() * shade,
			ColorB: vert.color.Z() * shade,
			ColorA: alpha,
		}
	}

	if offscreen(cmd.verts, w, h) {
		return
	}
	r.commands = append(r.commands, cmd)
}

// projectVertex maps a world-space point through viewProj onto a
// width x height screen. ok is false when the point is not safely in
// front of the near plane.
func projectVertex(viewProj mgl32.Mat4, width, height float32, p mgl32.Vec3) (sx, sy, depth float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= renderNear {
		return 0, 0, 0, false
	}
	sx = (clip.X()/clip.W() + 1) * 0.5 * width
	sy = (1 - clip.Y()/clip.W()) * 0.5 * height
	return sx, sy, clip.W(), true
}

// offscreen reports whether a projected triangle lies entirely outside
// the screen rectangle.
func offscreen(verts [3]ebiten.Vertex, width, height float32) bool {
	minX, minY := verts[0].DstX, verts[0].DstY
	maxX, maxY := minX, minY
	for _, v := range verts[1:] {
		minX = math32.Min(minX, v.DstX)
		maxX = math32.Max(maxX, v.DstX)
		minY = math32.Min(minY, v.DstY)
		maxY = math32.Max(maxY, v.DstY)
	}
	return maxX < 0 || minX > width || maxY < 0 || minY > height
}

// --- Merge sort ---

// faceLessOrEqual orders faces far to near. Using >= on equal depths
// keeps the emission order, which makes the sort stable.
func faceLessOrEqual(a, b faceCommand) bool {
	return a.depth >= b.depth
}

// mergeSort sorts r.commands in place using r.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches
// its high-water mark.
func (r *Renderer) mergeSort() {
	n := len(r.commands)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]faceCommand, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.commands
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := lo + width
			if mid > n {
				mid = n
			}
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.commands, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []faceCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if faceLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Submission ---

// maxFacesPerDraw keeps each DrawTriangles call within uint16 indices.
const maxFacesPerDraw = 65535 / 3

// submit flattens the sorted commands and draws them. The index buffer
// is just 0..n-1 since every face carries its own vertices, so it grows
// once and is resliced forever after.
func (r *Renderer) submit(screen *ebiten.Image) {
	if len(r.commands) == 0 {
		return
	}
	white := ensureWhitePixel()
	op := &ebiten.DrawTrianglesOptions{}

	for start := 0; start < len(r.commands); start += maxFacesPerDraw {
		end := min(start+maxFacesPerDraw, len(r.commands))
		chunk := r.commands[start:end]

		r.flatVerts = r.flatVerts[:0]
		for i := range chunk {
			r.flatVerts = append(r.flatVerts, chunk[i].verts[0], chunk[i].verts[1], chunk[i].verts[2])
		}
		need := len(chunk) * 3
		for len(r.flatIndices) < need {
			r.flatIndices = append(r.flatIndices, uint16(len(r.flatIndices)))
		}
		screen.DrawTriangles(r.flatVerts, r.flatIndices[:need], white, op)
	}
}
