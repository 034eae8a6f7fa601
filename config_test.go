package arbor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "growth.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultGrowthConfigValid(t *testing.T) {
	cfg := DefaultGrowthConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if cfg.MaxDepth != 10 {
		t.Errorf("MaxDepth = %d, want 10", cfg.MaxDepth)
	}
	assertNear(t, "BranchHeight", cfg.BranchHeight, 4)
	assertNear(t, "SeedRadius", cfg.SeedRadius, 0.1)
}

func TestLoadGrowthConfigOverlaysDefaults(t *testing.T) {
	path := writeConfigFile(t, "max_depth = 4\nheight_growth = 0.5\n")
	cfg, err := LoadGrowthConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", cfg.MaxDepth)
	}
	assertNear(t, "HeightGrowth", cfg.HeightGrowth, 0.5)

	// Every key the file does not mention keeps its default.
	def := DefaultGrowthConfig()
	cfg.MaxDepth = def.MaxDepth
	cfg.HeightGrowth = def.HeightGrowth
	if *cfg != *def {
		t.Errorf("untouched keys drifted from the defaults: %+v", cfg)
	}
}

func TestLoadGrowthConfigIgnoresUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, "max_depth = 4\nwind_speed = 12.5\n")
	cfg, err := LoadGrowthConfig(path)
	if err != nil {
		t.Fatalf("unknown key rejected: %v", err)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", cfg.MaxDepth)
	}
}

func TestLoadGrowthConfigMissingFile(t *testing.T) {
	_, err := LoadGrowthConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("missing file did not error")
	}
}

func TestLoadGrowthConfigMalformed(t *testing.T) {
	path := writeConfigFile(t, "max_depth = = 3\n")
	if _, err := LoadGrowthConfig(path); err == nil {
		t.Fatal("malformed file did not error")
	}
}

func TestLoadGrowthConfigRejectsInvalid(t *testing.T) {
	path := writeConfigFile(t, "seed_radius = -1.0\n")
	if _, err := LoadGrowthConfig(path); err == nil {
		t.Fatal("invalid tuning did not error")
	}
}

func TestGrowthConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GrowthConfig)
	}{
		{"zero max depth", func(c *GrowthConfig) { c.MaxDepth = 0 }},
		{"negative max depth", func(c *GrowthConfig) { c.MaxDepth = -2 }},
		{"zero min extend radius", func(c *GrowthConfig) { c.MinExtendRadius = 0 }},
		{"negative seed radius", func(c *GrowthConfig) { c.SeedRadius = -0.1 }},
		{"zero branch height", func(c *GrowthConfig) { c.BranchHeight = 0 }},
		{"zero radius growth", func(c *GrowthConfig) { c.RadiusGrowth = 0 }},
		{"zero height growth", func(c *GrowthConfig) { c.HeightGrowth = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultGrowthConfig()
		tt.mutate(cfg)
		if cfg.Validate() == nil {
			t.Errorf("%s passed validation", tt.name)
		}
	}
}

func TestGrowthConfigValidateAllowsLooseSplits(t *testing.T) {
	// Split placement and pitch may be zero or negative; a tree with
	// drooping or unshifted forks is odd but runnable.
	cfg := DefaultGrowthConfig()
	cfg.SplitY = 0
	cfg.SplitZ = -1
	cfg.SplitPitch = -15
	if err := cfg.Validate(); err != nil {
		t.Errorf("loose split tuning rejected: %v", err)
	}
}
