package arbor

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// fixedSource feeds the rng a constant stream. Zero drives Float32 to 0
// and IntN to 0, so every split roll succeeds at the lowest yaw; all
// ones drives Float32 to just under 1 and IntN(20) to 19, so every
// split roll is rejected.
type fixedSource struct{ v uint64 }

func (s fixedSource) Uint64() uint64 { return s.v }

func alwaysSplit() *rand.Rand { return rand.New(fixedSource{0}) }
func neverSplit() *rand.Rand  { return rand.New(fixedSource{^uint64(0)}) }

// --- Transform ---

func TestBranchTransform(t *testing.T) {
	s := NewScene(nil, neverSplit())
	b := s.PlantTree(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 90})
	b.Radius = 2
	b.Height = 0.5

	// Local (1, 0, BranchHeight) scales to (2, 0, 2), yaws onto +y,
	// then translates.
	got := applyPoint(b.Transform(), mgl32.Vec3{1, 0, s.Config().BranchHeight})
	assertVec3(t, "scaled tip", got, mgl32.Vec3{1, 4, 5})
}

// --- Construction ---

func TestNewBranchInheritsFromParent(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	child := newBranch(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{}, root)

	if child.Depth != root.Depth+1 {
		t.Errorf("child depth = %d, want %d", child.Depth, root.Depth+1)
	}
	if child.cfg != root.cfg {
		t.Error("child does not share its parent's config")
	}
	if child.rng != root.rng {
		t.Error("child does not share its parent's rng")
	}
	if child.Parent() != root {
		t.Error("child does not point back at its parent")
	}
}

func TestPlantTreeDefaults(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{10, 0, 0})

	if root.Depth != 1 {
		t.Errorf("root depth = %d, want 1", root.Depth)
	}
	assertNear(t, "root radius", root.Radius, s.Config().SeedRadius)
	assertNear(t, "root height", root.Height, 0)
	if root.Parent() != nil {
		t.Error("root has a parent")
	}
	if s.Count(ObjectBranch) != 1 {
		t.Errorf("branch count = %d, want 1", s.Count(ObjectBranch))
	}
}

// --- Extension ---

func TestBranchGrowsToFullHeightThenExtends(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0})

	ticks := 0
	var ev Event
	for ev.Kind != EventSpawn {
		if ticks > 1100 {
			t.Fatalf("no extension spawn after %d ticks", ticks)
		}
		ev = root.Update(1)
		ticks++
	}

	// Default HeightGrowth is 0.001, so full height takes about a
	// thousand ticks, and the spawn lands on the same tick the height
	// crosses 1.
	if ticks < 1000 {
		t.Errorf("extension after %d ticks, want at least 1000", ticks)
	}
	assertNear(t, "height pinned", root.Height, 1)
	if root.Above() == nil {
		t.Fatal("no upward child after extension")
	}
	if ev.Entity != Entity(root.Above()) {
		t.Error("spawn event does not carry the upward child")
	}
	if root.splitRejected {
		t.Error("split rolled during height growth")
	}

	// The child sits at the tilted trunk's tip.
	sin10 := float32(math.Sin(10 * math.Pi / 180))
	cos10 := float32(math.Cos(10 * math.Pi / 180))
	assertVec3(t, "child position", root.Above().Position, mgl32.Vec3{0, -4 * sin10, 4 * cos10})
	assertVec3(t, "child eulers", root.Above().Eulers, root.Eulers)
	if root.Above().Depth != 2 {
		t.Errorf("child depth = %d, want 2", root.Above().Depth)
	}
}

func TestBranchExtendsOnlyOnce(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Height = 1

	ev := root.Update(1)
	if ev.Kind != EventSpawn {
		t.Fatalf("first update = %v, want spawn", ev.Kind)
	}
	above := root.Above()
	for i := 0; i < 100; i++ {
		if ev := root.Update(1); ev.Kind == EventSpawn {
			if _, ok := ev.Entity.(*Branch); ok {
				t.Fatalf("second branch spawn on tick %d", i+2)
			}
		}
	}
	if root.Above() != above {
		t.Error("upward child replaced")
	}
}

func TestBranchExtendBlockedWhileThin(t *testing.T) {
	cfg := DefaultGrowthConfig()
	cfg.MinExtendRadius = 1
	cfg.HeightGrowth = 0.5
	s := NewScene(cfg, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})

	for i := 0; i < 10; i++ {
		if ev := root.Update(1); ev.Kind != EventNone {
			t.Fatalf("tick %d emitted %v, want none", i+1, ev.Kind)
		}
	}
	assertNear(t, "height", root.Height, 1)
	if root.Above() != nil {
		t.Error("thin branch extended")
	}
}

func TestBranchExtendBlockedAtMaxDepth(t *testing.T) {
	cfg := DefaultGrowthConfig()
	cfg.MaxDepth = 1
	cfg.HeightGrowth = 0.5
	s := NewScene(cfg, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})

	for i := 0; i < 10; i++ {
		root.Update(1)
	}
	if root.Above() != nil {
		t.Error("branch at max depth extended")
	}
}

// --- Splitting ---

func TestBranchSplitSpawn(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Height = 1

	ev, fired := root.trySplit()
	if !fired {
		t.Fatal("winning roll did not fire")
	}
	if ev.Kind != EventSpawn {
		t.Fatalf("event = %v, want spawn", ev.Kind)
	}
	split := root.Split()
	if split == nil {
		t.Fatal("no split child")
	}
	if ev.Entity != Entity(split) {
		t.Error("spawn event does not carry the split child")
	}

	cfg := s.Config()
	assertVec3(t, "split position", split.Position, mgl32.Vec3{
		0,
		cfg.SplitY * root.Radius,
		cfg.SplitZ * root.Height,
	})
	assertVec3(t, "split eulers", split.Eulers, mgl32.Vec3{cfg.SplitPitch, 0, 0})
	if split.Depth != 2 {
		t.Errorf("split depth = %d, want 2", split.Depth)
	}

	// A branch forks at most once.
	if _, fired := root.trySplit(); fired {
		t.Error("second roll fired after a split already grew")
	}
}

func TestBranchSplitRejectionRemembered(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Height = 1

	ev, fired := root.trySplit()
	if !fired {
		t.Fatal("rejecting roll did not count as the tick's action")
	}
	if ev.Kind != EventNone {
		t.Errorf("rejecting roll emitted %v", ev.Kind)
	}
	if !root.splitRejected {
		t.Error("rejection not remembered")
	}
	for i := 0; i < 10; i++ {
		if _, fired := root.trySplit(); fired {
			t.Fatalf("re-roll fired on call %d at depth 1", i+2)
		}
	}
}

func TestBranchSplitRetriesNearCanopy(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Depth = 8 // past 3/4 of the default MaxDepth of 10
	root.Height = 1

	if _, fired := root.trySplit(); !fired {
		t.Fatal("first roll did not fire")
	}
	// The clearing pass is silent, then the branch rolls again.
	if _, fired := root.trySplit(); fired {
		t.Error("clearing pass fired")
	}
	if root.splitRejected {
		t.Error("rejection not cleared near the canopy")
	}
	if _, fired := root.trySplit(); !fired {
		t.Error("re-roll did not fire")
	}
}

func TestBranchSplitBlockedAtMaxDepth(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Depth = s.Config().MaxDepth
	root.Height = 1

	if _, fired := root.trySplit(); fired {
		t.Error("branch at max depth rolled for a split")
	}
	if root.Split() != nil {
		t.Error("branch at max depth split")
	}
}

// --- Foliage ---

// extendNow forces the upward child so foliate's extension gate is open.
func extendNow(t *testing.T, b *Branch) {
	t.Helper()
	b.Height = 1
	if ev, _ := b.extend(1); ev.Kind != EventSpawn {
		t.Fatalf("forced extension did not spawn: %v", ev.Kind)
	}
}

func TestBranchFoliateCapacity(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Radius = 0.05
	extendNow(t, root)

	// Capacity is 1/radius: 20 leaves at radius 0.05.
	for i := 0; i < 20; i++ {
		if ev := root.foliate(); ev.Kind != EventSpawn {
			t.Fatalf("leaf %d: event = %v, want spawn", i+1, ev.Kind)
		}
	}
	if root.LeafCount() != 20 {
		t.Fatalf("leaf count = %d, want 20", root.LeafCount())
	}
	if ev := root.foliate(); ev.Kind != EventNone {
		t.Errorf("leaf past capacity: event = %v, want none", ev.Kind)
	}

	// IntN pinned to 0 puts every leaf at angle 0 on the rim.
	leaf := root.Leaves()[0]
	assertVec3(t, "leaf position", leaf.Position, mgl32.Vec3{0, branchRimRadius, s.Config().BranchHeight})
	assertVec3(t, "leaf eulers", leaf.Eulers, mgl32.Vec3{})
	if leaf.Branch() != root {
		t.Error("leaf does not point back at its branch")
	}
}

func TestBranchFoliateRequiresExtension(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Radius = 0.05

	if ev := root.foliate(); ev.Kind != EventNone {
		t.Errorf("unextended branch grew a leaf: %v", ev.Kind)
	}
}

func TestBranchFoliateStopsWhenThick(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Radius = 0.05
	extendNow(t, root)

	root.Radius = s.Config().LeafGrowingMaxRadius
	if ev := root.foliate(); ev.Kind != EventNone {
		t.Errorf("old bark grew a leaf: %v", ev.Kind)
	}
}

func TestBranchShedsOneLeafPerTick(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Radius = 0.05
	extendNow(t, root)

	first := root.growLeaf()
	second := root.growLeaf()
	third := root.growLeaf()

	// Grown past the leafy radius, the branch sheds oldest first.
	root.Radius = 0.2
	root.Update(1)
	if !first.Dying {
		t.Error("oldest leaf did not fall off")
	}
	if second.Dying || third.Dying {
		t.Error("younger leaves fell off early")
	}
	if root.LeafCount() != 2 {
		t.Fatalf("leaf count = %d, want 2", root.LeafCount())
	}
	if root.Leaves()[0] != second {
		t.Error("shed did not preserve leaf order")
	}

	root.Update(1)
	root.Update(1)
	if root.LeafCount() != 0 {
		t.Fatalf("leaf count = %d, want 0", root.LeafCount())
	}
	root.Update(1) // no leaves left, nothing to shed
}

// --- Thickening ---

func TestBranchThickenPropagatesRadius(t *testing.T) {
	s := NewScene(nil, alwaysSplit())
	cfg := s.Config()
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	extendNow(t, root)
	if _, fired := root.trySplit(); !fired {
		t.Fatal("split roll did not fire")
	}

	before := root.Radius
	root.thicken(1)
	assertNear(t, "root radius", root.Radius, before+cfg.RadiusGrowth)
	assertNear(t, "above radius", root.Above().Radius, root.Radius*cfg.TopRadius)
	assertNear(t, "split radius", root.Split().Radius, root.Radius*cfg.SplitRadius)

	// Children do not widen on their own.
	above := root.Above()
	got := above.Radius
	above.thicken(1)
	assertNear(t, "child radius", above.Radius, got)
}

func TestBranchThickenScalesWithRate(t *testing.T) {
	s := NewScene(nil, neverSplit())
	cfg := s.Config()
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})

	before := root.Radius
	root.thicken(10)
	assertNear(t, "root radius", root.Radius, before+10*cfg.RadiusGrowth)
}

// --- Phase ordering ---

func TestBranchOneEventPerTick(t *testing.T) {
	cfg := DefaultGrowthConfig()
	cfg.RadiusGrowth = 0
	s := NewScene(cfg, alwaysSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	root.Radius = 0.05
	root.Height = 1

	// Extension wins the first tick even though the split roll would
	// also land, then the split, then the first leaf.
	ev := root.Update(1)
	if ev.Kind != EventSpawn || ev.Entity != Entity(root.Above()) {
		t.Fatalf("tick 1 = %v %T, want upward branch spawn", ev.Kind, ev.Entity)
	}
	if root.Split() != nil {
		t.Fatal("split grew on the extension tick")
	}

	ev = root.Update(1)
	if ev.Kind != EventSpawn || ev.Entity != Entity(root.Split()) {
		t.Fatalf("tick 2 = %v %T, want split spawn", ev.Kind, ev.Entity)
	}
	if root.LeafCount() != 0 {
		t.Fatal("leaf grew on the split tick")
	}

	ev = root.Update(1)
	if ev.Kind != EventSpawn {
		t.Fatalf("tick 3 = %v, want leaf spawn", ev.Kind)
	}
	if _, ok := ev.Entity.(*Leaf); !ok {
		t.Fatalf("tick 3 spawned %T, want *Leaf", ev.Entity)
	}
}

func TestBranchAgeCounts(t *testing.T) {
	s := NewScene(nil, neverSplit())
	root := s.PlantTree(mgl32.Vec3{}, mgl32.Vec3{})
	for i := 0; i < 5; i++ {
		root.Update(1)
	}
	if root.Age != 5 {
		t.Errorf("age = %d, want 5", root.Age)
	}
}
