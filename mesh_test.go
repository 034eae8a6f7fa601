package arbor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// meshBounds returns the axis-aligned bounds of a mesh's vertices.
func meshBounds(m *Mesh) (lo, hi mgl32.Vec3) {
	lo = mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi = lo.Mul(-1)
	for _, v := range m.Verts {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

func TestMeshFace(t *testing.T) {
	m := &Mesh{}
	col := mgl32.Vec3{1, 0, 0}
	m.face(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, col)

	if m.FaceCount() != 1 {
		t.Fatalf("face count = %d, want 1", m.FaceCount())
	}
	for i, v := range m.Verts {
		if v.Color != col {
			t.Errorf("vert %d color = %v, want %v", i, v.Color, col)
		}
	}
}

func TestBranchMeshShape(t *testing.T) {
	m := BranchMesh(1)
	if m.FaceCount() != branchSides*2 {
		t.Fatalf("face count = %d, want %d", m.FaceCount(), branchSides*2)
	}
	if len(m.Verts)%3 != 0 {
		t.Fatalf("vert count %d is not a multiple of 3", len(m.Verts))
	}

	// Every vertex sits on one of the two rims: radius 1 at the base,
	// branchRimRadius at the top.
	for i, v := range m.Verts {
		r := math.Hypot(float64(v.Position.X()), float64(v.Position.Y()))
		switch {
		case math.Abs(float64(v.Position.Z())) < epsilon:
			if math.Abs(r-1) > epsilon {
				t.Errorf("vert %d: base radius = %v, want 1", i, r)
			}
		case math.Abs(float64(v.Position.Z())-1) < epsilon:
			if math.Abs(r-branchRimRadius) > epsilon {
				t.Errorf("vert %d: top radius = %v, want %v", i, r, branchRimRadius)
			}
		default:
			t.Errorf("vert %d: z = %v, want 0 or 1", i, v.Position.Z())
		}
	}
}

func TestBranchMeshHeight(t *testing.T) {
	m := BranchMesh(2.5)
	lo, hi := meshBounds(m)
	assertNear(t, "top z", hi.Z(), 2.5)
	assertNear(t, "base z", lo.Z(), 0)
}

func TestLeafMeshShape(t *testing.T) {
	m := LeafMesh()
	if m.FaceCount() != 2 {
		t.Fatalf("face count = %d, want 2", m.FaceCount())
	}

	// The blade points along +y from the stem at the origin, with a
	// slight upward curl.
	assertVec3(t, "stem", m.Verts[0].Position, mgl32.Vec3{0, 0, 0})
	lo, hi := meshBounds(m)
	assertNear(t, "reach", hi.Y(), 2)
	assertNear(t, "stem y", lo.Y(), 0)
	if hi.Z() <= 0 {
		t.Error("blade has no upward curl")
	}
	if m.Verts[0].Color == m.Verts[1].Color {
		t.Error("stem and tip share a color")
	}
}

func TestCubeMeshShape(t *testing.T) {
	m := CubeMesh()
	if m.FaceCount() != 12 {
		t.Fatalf("face count = %d, want 12", m.FaceCount())
	}

	lo, hi := meshBounds(m)
	assertVec3(t, "min corner", lo, mgl32.Vec3{-0.5, -0.5, -0.5})
	assertVec3(t, "max corner", hi, mgl32.Vec3{0.5, 0.5, 0.5})

	// Flat shading: all three vertices of a face share one color.
	for f := 0; f < m.FaceCount(); f++ {
		a, b, c := m.Verts[f*3], m.Verts[f*3+1], m.Verts[f*3+2]
		if a.Color != b.Color || a.Color != c.Color {
			t.Errorf("face %d not flat shaded", f)
		}
	}
}

func TestGroundMeshShape(t *testing.T) {
	m := GroundMesh(40)
	if m.FaceCount() != 2 {
		t.Fatalf("face count = %d, want 2", m.FaceCount())
	}
	lo, hi := meshBounds(m)
	assertVec3(t, "min corner", lo, mgl32.Vec3{-40, -40, 0})
	assertVec3(t, "max corner", hi, mgl32.Vec3{40, 40, 0})
}

func TestEnsureWhitePixelSingleton(t *testing.T) {
	a := ensureWhitePixel()
	b := ensureWhitePixel()
	if a != b {
		t.Error("ensureWhitePixel should return the same image")
	}
	bounds := a.Bounds()
	if bounds.Dx() != 1 || bounds.Dy() != 1 {
		t.Errorf("white pixel size = %dx%d, want 1x1", bounds.Dx(), bounds.Dy())
	}
}
