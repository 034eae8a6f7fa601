package arbor

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GrowthConfig holds every tunable of the growth model. All branches of a
// scene share one instance, so overwriting it mid-run retunes the whole
// forest on the next tick.
//
// Distances are world units, angles degrees. The growth increments are
// per tick at the reference rate of 60 ticks per second.
type GrowthConfig struct {
	// MaxDepth is the deepest branch generation a tree may reach. Roots
	// are depth 1; extension and splitting stop at MaxDepth.
	MaxDepth int `toml:"max_depth"`

	// MinExtendRadius is the radius a branch must exceed before it may
	// extend upward with a child branch.
	MinExtendRadius float32 `toml:"min_extend_radius"`

	// LeafGrowingMaxRadius is the radius at which a branch stops growing
	// leaves and begins shedding the ones it has, oldest first.
	LeafGrowingMaxRadius float32 `toml:"leaf_growing_max_radius"`

	// TopRadius scales a branch's radius onto its upward extension child.
	TopRadius float32 `toml:"top_radius"`

	// SplitRadius scales a branch's radius onto its sideways split child.
	SplitRadius float32 `toml:"split_radius"`

	// SplitY offsets a split child along y by SplitY * radius.
	SplitY float32 `toml:"split_y"`

	// SplitZ offsets a split child along z by SplitZ * height.
	SplitZ float32 `toml:"split_z"`

	// SplitPitch tilts a split child away from its parent, in degrees
	// about the x axis.
	SplitPitch float32 `toml:"split_pitch"`

	// BranchHeight is the length of a fully grown branch segment before
	// scaling, matching the trunk mesh. A child extension appears at
	// (0, 0, BranchHeight) in its parent's local space.
	BranchHeight float32 `toml:"branch_height"`

	// SeedRadius is the starting radius of a freshly planted root.
	SeedRadius float32 `toml:"seed_radius"`

	// RadiusGrowth is the per-tick radius increment of a root branch.
	RadiusGrowth float32 `toml:"radius_growth"`

	// HeightGrowth is the per-tick height increment of a juvenile branch.
	HeightGrowth float32 `toml:"height_growth"`
}

// DefaultGrowthConfig returns the built-in tuning. It grows a tree that
// fills the default camera's view after a few minutes at 60 ticks per
// second.
func DefaultGrowthConfig() *GrowthConfig {
	return &GrowthConfig{
		MaxDepth:             10,
		MinExtendRadius:      0.02,
		LeafGrowingMaxRadius: 0.1,
		TopRadius:            0.85,
		SplitRadius:          0.6,
		SplitY:               0.8,
		SplitZ:               2.0,
		SplitPitch:           30,
		BranchHeight:         4,
		SeedRadius:           0.1,
		RadiusGrowth:         0.0001,
		HeightGrowth:         0.001,
	}
}

// LoadGrowthConfig reads a TOML file and overlays it on the defaults, so a
// file only needs the keys it wants to change. Unknown keys are ignored.
func LoadGrowthConfig(path string) (*GrowthConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read growth config: %w", err)
	}
	cfg := DefaultGrowthConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse growth config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("growth config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects tunings the growth model cannot run on. Zero or
// negative lengths and increments would stall or invert growth, and a
// MaxDepth below 1 leaves no room for a root.
func (c *GrowthConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	positives := []struct {
		name  string
		value float32
	}{
		{"min_extend_radius", c.MinExtendRadius},
		{"leaf_growing_max_radius", c.LeafGrowingMaxRadius},
		{"top_radius", c.TopRadius},
		{"split_radius", c.SplitRadius},
		{"branch_height", c.BranchHeight},
		{"seed_radius", c.SeedRadius},
		{"radius_growth", c.RadiusGrowth},
		{"height_growth", c.HeightGrowth},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", p.name, p.value)
		}
	}
	return nil
}
