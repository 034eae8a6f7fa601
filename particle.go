package arbor

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// fallParticle holds per-flake simulation state. Unexported; managed by LeafFall.
type fallParticle struct {
	pos        mgl32.Vec3
	vel        mgl32.Vec3
	spin       float32 // current flutter angle in degrees
	spinRate   float32 // degrees per second
	life       float32 // remaining lifetime in seconds
	maxLife    float32 // initial lifetime (for computing t)
	scale      float32
	alpha      float32
	color      mgl32.Vec3
	startColor mgl32.Vec3
	endColor   mgl32.Vec3
}

// Span is an inclusive [Min, Max] interval sampled uniformly.
type Span struct {
	Min float32
	Max float32
}

// random returns a uniform sample from the span using the scene's generator.
func (s Span) random(rng *rand.Rand) float32 {
	if s.Min == s.Max {
		return s.Min
	}
	return s.Min + rng.Float32()*(s.Max-s.Min)
}

// FallConfig controls how shed leaves tumble to the ground.
type FallConfig struct {
	// MaxParticles is the pool size. New flakes are silently dropped when full.
	MaxParticles int
	// BurstCount is the number of flakes released per shed leaf.
	BurstCount int
	// Lifetime is the range of flake lifetimes in seconds.
	Lifetime Span
	// Drift is the range of initial horizontal speeds in world units per second.
	Drift Span
	// SpinRate is the range of flutter speeds in degrees per second.
	SpinRate Span
	// Scale is the range of flake sizes in world units.
	Scale Span
	// Gravity is the constant downward acceleration in world units per second squared.
	Gravity float32
	// StartColor is the tint at release, interpolated to EndColor over lifetime.
	StartColor mgl32.Vec3
	// EndColor is the tint on the ground.
	EndColor mgl32.Vec3
}

// DefaultFallConfig returns the flake tuning used by NewScene.
func DefaultFallConfig() FallConfig {
	return FallConfig{
		MaxParticles: 256,
		BurstCount:   6,
		Lifetime:     Span{2, 4},
		Drift:        Span{0.2, 0.8},
		SpinRate:     Span{180, 540},
		Scale:        Span{0.05, 0.12},
		Gravity:      2.5,
		StartColor:   mgl32.Vec3{0.36, 0.62, 0.22},
		EndColor:     mgl32.Vec3{0.42, 0.30, 0.18},
	}
}

// LeafFall manages a pool of falling-leaf flakes with CPU-based simulation.
// The scene releases a burst whenever a leaf finishes dropping off; flakes
// flutter down under gravity and fade out where they land.
type LeafFall struct {
	config    FallConfig
	particles []fallParticle
	alive     int
	rng       *rand.Rand
}

// newLeafFall creates a LeafFall with a preallocated pool.
func newLeafFall(cfg FallConfig, rng *rand.Rand) *LeafFall {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	return &LeafFall{
		config:    cfg,
		particles: make([]fallParticle, max),
		rng:       rng,
	}
}

// Burst releases BurstCount flakes at a world position. Flakes beyond the
// pool size are silently dropped.
func (lf *LeafFall) Burst(at mgl32.Vec3) {
	for n := 0; n < lf.config.BurstCount; n++ {
		if lf.alive >= len(lf.particles) {
			return
		}
		lf.spawnFlake(at)
	}
}

// Reset kills all alive flakes.
func (lf *LeafFall) Reset() {
	lf.alive = 0
}

// AliveCount returns the number of alive flakes.
func (lf *LeafFall) AliveCount() int {
	return lf.alive
}

// Config returns a pointer to the config for live tuning.
func (lf *LeafFall) Config() *FallConfig {
	return &lf.config
}

// update advances flake simulation by dt seconds.
func (lf *LeafFall) update(dt float32) {
	gz := lf.config.Gravity * dt

	// Update existing flakes, swap-remove dead ones.
	i := 0
	for i < lf.alive {
		p := &lf.particles[i]
		p.life -= dt
		if p.life <= 0 {
			// Swap with last alive flake.
			lf.alive--
			lf.particles[i] = lf.particles[lf.alive]
			continue
		}

		p.vel[2] -= gz
		p.pos = p.pos.Add(p.vel.Mul(dt))
		p.spin += p.spinRate * dt

		// Landed flakes rest on the ground and fade in place.
		if p.pos[2] <= 0 {
			p.pos[2] = 0
			p.vel = mgl32.Vec3{}
			p.spinRate = 0
		}

		t := 1 - p.life/p.maxLife
		p.alpha = 1 - t
		p.color = mgl32.Vec3{
			lerp32(p.startColor[0], p.endColor[0], t),
			lerp32(p.startColor[1], p.endColor[1], t),
			lerp32(p.startColor[2], p.endColor[2], t),
		}

		i++
	}
}

// spawnFlake initializes the flake at slot lf.alive and increments alive.
func (lf *LeafFall) spawnFlake(at mgl32.Vec3) {
	p := &lf.particles[lf.alive]

	sin, cos := math32.Sincos(lf.rng.Float32() * 2 * math32.Pi)
	drift := lf.config.Drift.random(lf.rng)
	p.vel = mgl32.Vec3{cos * drift, sin * drift, 0}
	p.pos = at

	p.life = lf.config.Lifetime.random(lf.rng)
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.spin = lf.rng.Float32() * 360
	p.spinRate = lf.config.SpinRate.random(lf.rng)
	p.scale = lf.config.Scale.random(lf.rng)
	p.alpha = 1

	p.startColor = lf.config.StartColor
	p.endColor = lf.config.EndColor
	p.color = p.startColor

	lf.alive++
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}
