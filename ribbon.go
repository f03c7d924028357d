package backdrop

// ribbonSegments is the number of polyline segments sampled per ribbon for
// surfaces that stroke geometry instead of path descriptions.
const ribbonSegments = 48

// ribbonWaveHeight is the curve amplitude as a fraction of viewport height.
const ribbonWaveHeight = 0.08

// Ribbon keyframe tracks. Offset and rotation scale with the ribbon index.
var (
	ribbonOffsetTrack   = Keyframes{Stops: []float64{0, 1}, Values: []float64{0, -60}}
	ribbonOpacityTrack  = Keyframes{Stops: []float64{0, 0.2, 0.8, 1}, Values: []float64{0.1, 0.6, 0.6, 0.1}}
	ribbonRotationTrack = Keyframes{Stops: []float64{0, 1}, Values: []float64{0, 8}}
	ribbonScaleTrack    = Keyframes{Stops: []float64{0, 1}, Values: []float64{1, 1.15}}
	ribbonRevealTrack   = Keyframes{Stops: []float64{0, 0.5, 1}, Values: []float64{0, 1, 1}}
)

// RibbonSpec describes one ribbon. Specs are fixed for an activation.
type RibbonSpec struct {
	Color       Color
	BaseY       float64
	StrokeWidth float64
}

// RibbonTransform is the scroll-derived state of one ribbon.
type RibbonTransform struct {
	OffsetY  float64 // pixels, negative is up
	Opacity  float64
	Rotation float64 // degrees
	Scale    float64
	Reveal   float64 // drawn fraction of the path
}

// RibbonTransformAt evaluates the keyframe tracks for ribbon i at the given
// scroll progress. It depends on nothing else.
func RibbonTransformAt(i int, progress float64) RibbonTransform {
	sign := 1.0
	if i%2 == 1 {
		sign = -1
	}
	return RibbonTransform{
		OffsetY:  ribbonOffsetTrack.At(progress) * float64(i+1),
		Opacity:  ribbonOpacityTrack.At(progress),
		Rotation: ribbonRotationTrack.At(progress) * sign,
		Scale:    ribbonScaleTrack.At(progress),
		Reveal:   ribbonRevealTrack.At(progress),
	}
}

// RibbonMode draws a fixed set of wave curves whose transform is a pure
// function of scroll progress. Only the rendered transform changes between
// ticks; the curves themselves are built once at activation.
type RibbonMode struct {
	state  modeState
	specs  []RibbonSpec
	width  float64
	height float64
	frame  Frame
}

// Kind returns ModeRibbon.
func (m *RibbonMode) Kind() ModeKind { return ModeRibbon }

// Activate builds one ribbon per configured color.
func (m *RibbonMode) Activate(cfg Config) error {
	if m.state == stateDisposed {
		return &ConfigError{Field: "mode", Value: m.Kind().String(), Reason: "mode already disposed"}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Mode = ModeRibbon
	pal, err := cfg.palette()
	if err != nil {
		return err
	}
	m.build(pal, cfg.ViewportWidth, cfg.ViewportHeight)
	m.state = stateActive
	return nil
}

// Resize rebuilds the curves for a new viewport.
func (m *RibbonMode) Resize(width, height float64) {
	if m.state != stateActive || !positiveFinite(width) || !positiveFinite(height) {
		return
	}
	pal := make([]Color, len(m.specs))
	for i, spec := range m.specs {
		pal[i] = spec.Color
	}
	seq := m.frame.Seq
	m.build(pal, width, height)
	m.frame.Seq = seq
}

// build lays out one ribbon per palette entry across the viewport.
func (m *RibbonMode) build(pal []Color, width, height float64) {
	m.width = width
	m.height = height

	total := len(pal)
	m.specs = make([]RibbonSpec, total)
	m.frame = Frame{
		Kind:      FramePaths,
		Mode:      ModeRibbon,
		Viewport:  Vec2{X: m.width, Y: m.height},
		Transform: identityTransform,
		Paths:     make([]Path, total),
	}
	var pb pathBuilder
	for i, col := range pal {
		spec := RibbonSpec{
			Color:       col,
			BaseY:       m.height * float64(i+1) / float64(total+1),
			StrokeWidth: 2 + float64(i%3),
		}
		m.specs[i] = spec

		amp := m.height * ribbonWaveHeight
		if i%2 == 1 {
			amp = -amp
		}
		x0, y0 := 0.0, spec.BaseY
		x1, y1 := m.width*0.25, spec.BaseY-amp
		x2, y2 := m.width*0.75, spec.BaseY+amp
		x3, y3 := m.width, spec.BaseY

		pb.reset()
		pb.moveTo(x0, y0)
		pb.cubicTo(x1, y1, x2, y2, x3, y3)

		pts := make([]Vec2, ribbonSegments+1)
		for s := range pts {
			t := float64(s) / ribbonSegments
			u := 1 - t
			pts[s] = Vec2{
				X: u*u*u*x0 + 3*u*u*t*x1 + 3*u*t*t*x2 + t*t*t*x3,
				Y: u*u*u*y0 + 3*u*u*t*y1 + 3*u*t*t*y2 + t*t*t*y3,
			}
		}
		m.frame.Paths[i] = Path{
			D:           pb.String(),
			Points:      pts,
			Stroke:      col,
			StrokeWidth: spec.StrokeWidth,
		}
	}
}

// Specs returns the ribbon specs. The slice must not be mutated.
func (m *RibbonMode) Specs() []RibbonSpec {
	return m.specs
}

// Tick applies the scroll-derived transform to every ribbon.
func (m *RibbonMode) Tick(s Sample, _ Clock) *Frame {
	if m.state != stateActive {
		return nil
	}
	for i, spec := range m.specs {
		rt := RibbonTransformAt(i, s.ScrollProgress)
		p := &m.frame.Paths[i]
		local := pivotTransform(m.width/2, spec.BaseY, rt.Rotation*degToRad, rt.Scale)
		p.Transform = multiplyAffine([6]float64{1, 0, 0, 1, 0, rt.OffsetY}, local)
		p.Opacity = rt.Opacity
		p.Reveal = rt.Reveal
	}
	m.frame.Seq++
	return &m.frame
}

// Dispose releases the ribbons. Further ticks return nil.
func (m *RibbonMode) Dispose() {
	m.state = stateDisposed
	m.specs = nil
	m.frame = Frame{}
}
