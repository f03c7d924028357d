package backdrop

import (
	"math"
	"math/rand/v2"
)

const (
	// particleDrift is the amplitude of the periodic offset on each axis.
	particleDrift = 0.02
	// particleSpin is the base rotation per tick in radians.
	particleSpin = 0.01
	// particleSpinScroll scales how much scroll velocity speeds up the spin.
	particleSpinScroll = 0.001

	particleSaturation = 0.7
	particleLightness  = 0.7
	particleMinSize    = 0.1
	particleSizeRange  = 0.2
)

// ParticleFieldMode is a cloud of points on a sphere that drift in place,
// spin faster while the page scrolls, and are observed through a CameraRig
// that leans toward the pointer.
type ParticleFieldMode struct {
	state  modeState
	radius float64
	// base holds the original positions; the rendered positions are derived
	// from them every tick and never fed back.
	base   []float32
	bufs   PointBuffers
	camera *CameraRig
	frame  Frame
}

// Kind returns ModeParticleField.
func (m *ParticleFieldMode) Kind() ModeKind { return ModeParticleField }

// Activate generates cfg.Count particles on a sphere of cfg.Radius.
func (m *ParticleFieldMode) Activate(cfg Config) error {
	if m.state == stateDisposed {
		return &ConfigError{Field: "mode", Value: m.Kind().String(), Reason: "mode already disposed"}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	rng := newRand(cfg.Seed)
	n := cfg.Count
	m.radius = cfg.Radius
	m.base = make([]float32, n*3)
	m.bufs = PointBuffers{
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
		Sizes:     make([]float32, n),
		Rotations: make([]float32, n),
	}

	for i := 0; i < n; i++ {
		i3 := i * 3
		// Inverse transform sampling gives a uniform density over the surface.
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		sinPhi, cosPhi := math.Sincos(phi)
		sinTheta, cosTheta := math.Sincos(theta)
		m.base[i3] = float32(cfg.Radius * sinPhi * cosTheta)
		m.base[i3+1] = float32(cfg.Radius * sinPhi * sinTheta)
		m.base[i3+2] = float32(cfg.Radius * cosPhi)

		col := ColorFromHSL(rng.Float64(), particleSaturation, particleLightness)
		m.bufs.Colors[i3] = float32(col.R)
		m.bufs.Colors[i3+1] = float32(col.G)
		m.bufs.Colors[i3+2] = float32(col.B)

		m.bufs.Sizes[i] = float32(rng.Float64()*particleSizeRange + particleMinSize)
		m.bufs.Rotations[i] = float32(rng.Float64() * math.Pi)
	}
	copy(m.bufs.Positions, m.base)

	if m.camera == nil {
		m.camera = NewCameraRig()
	} else {
		m.camera.Reset()
	}
	m.frame = Frame{
		Kind:     FramePoints,
		Mode:     ModeParticleField,
		Viewport: Vec2{X: cfg.ViewportWidth, Y: cfg.ViewportHeight},
		Points:   &m.bufs,
		Camera:   m.camera,
		Blend:    BlendAdd,
	}
	m.state = stateActive
	return nil
}

// newRand returns a PCG source seeded with seed, or randomly when seed is zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Resize changes the viewport the camera projects onto.
func (m *ParticleFieldMode) Resize(width, height float64) {
	if m.state != stateActive || !positiveFinite(width) || !positiveFinite(height) {
		return
	}
	m.frame.Viewport = Vec2{X: width, Y: height}
}

// Radius returns the configured sphere radius.
func (m *ParticleFieldMode) Radius() float64 { return m.radius }

// Base returns the original position of particle i.
func (m *ParticleFieldMode) Base(i int) Vec3 {
	i3 := i * 3
	return Vec3{float64(m.base[i3]), float64(m.base[i3+1]), float64(m.base[i3+2])}
}

// Buffers returns the live point buffers.
func (m *ParticleFieldMode) Buffers() *PointBuffers { return &m.bufs }

// Camera returns the mode's camera rig.
func (m *ParticleFieldMode) Camera() *CameraRig { return m.camera }

// Tick recomputes every rendered position from elapsed time, advances the
// rotations by the scroll-modulated spin and moves the camera.
func (m *ParticleFieldMode) Tick(s Sample, c Clock) *Frame {
	if m.state != stateActive {
		return nil
	}
	t := c.Elapsed.Seconds()
	m.drift(t)

	spin := float32(particleSpin * (1 + s.ScrollVelocity*particleSpinScroll))
	for i := range m.bufs.Rotations {
		m.bufs.Rotations[i] += spin
	}

	m.camera.Aim(s.Normalized)
	m.camera.Update()

	m.frame.Seq++
	return &m.frame
}

// drift writes base + offset(t, i) into the rendered positions. The result
// depends only on t, so replaying a timestamp reproduces the same positions.
func (m *ParticleFieldMode) drift(t float64) {
	n := len(m.bufs.Sizes)
	for i := 0; i < n; i++ {
		i3 := i * 3
		fi := float64(i)
		m.bufs.Positions[i3] = m.base[i3] + float32(math.Sin(t*0.5+fi)*particleDrift)
		m.bufs.Positions[i3+1] = m.base[i3+1] + float32(math.Cos(t*0.5+fi)*particleDrift)
		m.bufs.Positions[i3+2] = m.base[i3+2] + float32(math.Sin(t*0.3+fi)*particleDrift)
	}
}

// Dispose releases the buffers. Further ticks return nil.
func (m *ParticleFieldMode) Dispose() {
	m.state = stateDisposed
	m.base = nil
	m.bufs = PointBuffers{}
	m.frame = Frame{}
}
