package backdrop

import (
	"strconv"
	"time"
)

// Clock is the time information handed to a mode on every tick.
type Clock struct {
	// Elapsed is the time since the mode was activated.
	Elapsed time.Duration
	// Delta is the time since the previous tick (zero on the first tick).
	Delta time.Duration
}

// Mode is a visual mode driven by the render loop. Exactly one mode is active
// per Loop. Activate is called once before the first Tick, Dispose once after
// the last; Tick after Dispose returns nil.
type Mode interface {
	Kind() ModeKind
	Activate(cfg Config) error
	Tick(s Sample, c Clock) *Frame
	Dispose()
}

// NewMode returns an idle instance of the built-in mode for kind, or nil if
// kind is unknown.
func NewMode(kind ModeKind) Mode {
	switch kind {
	case ModeGridWarp:
		return &GridWarpMode{}
	case ModeRibbon:
		return &RibbonMode{}
	case ModeParticleField:
		return &ParticleFieldMode{}
	}
	return nil
}

// modeState tracks the Idle -> Active -> Disposed lifecycle shared by the
// built-in modes.
type modeState uint8

const (
	stateIdle modeState = iota
	stateActive
	stateDisposed
)

// FrameKind distinguishes the renderable representation carried by a Frame.
type FrameKind uint8

const (
	FramePaths  FrameKind = iota // vector path descriptions
	FramePoints                  // parallel point buffers for a 3-D point surface
)

// Path is one vector shape of a FramePaths frame.
type Path struct {
	// D is the path description ("M x,y L x,y ... Z").
	D string
	// Points are the vertices D was built from, in local coordinates.
	Points []Vec2
	// Closed reports whether the shape is closed and filled.
	Closed bool
	// Fill is used for closed shapes, Stroke for open ones.
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	// Opacity multiplies the fill or stroke alpha.
	Opacity float64
	// Reveal is the drawn fraction of the path length, in [0, 1].
	Reveal float64
	// Transform is applied to Points before the frame transform.
	Transform [6]float64
}

// PointBuffers are the parallel per-particle arrays of a FramePoints frame.
// Positions and Colors hold 3 components per particle.
type PointBuffers struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32
	Rotations []float32
}

// Count returns the number of points.
func (b *PointBuffers) Count() int {
	return len(b.Sizes)
}

// Frame is the renderable output of one tick. Frames are owned by the mode
// and reused: the contents are valid until the mode's next Tick.
type Frame struct {
	Kind FrameKind
	Mode ModeKind
	// Seq counts ticks since activation, starting at 1.
	Seq uint64
	// Viewport is the drawing area in device pixels.
	Viewport Vec2
	// Alpha is the whole-frame opacity (mount fade-in), set by the loop.
	Alpha float64
	// Transform is applied to every path (FramePaths).
	Transform [6]float64
	Paths     []Path
	// Points, Camera and Blend are set for FramePoints.
	Points *PointBuffers
	Camera *CameraRig
	Blend  BlendMode
}

// pathBuilder appends path commands into a reusable byte buffer.
type pathBuilder struct {
	buf []byte
}

func (b *pathBuilder) reset() { b.buf = b.buf[:0] }

func (b *pathBuilder) cmd(c byte, x, y float64) {
	if len(b.buf) > 0 {
		b.buf = append(b.buf, ' ')
	}
	b.buf = append(b.buf, c, ' ')
	b.buf = strconv.AppendFloat(b.buf, x, 'f', -1, 64)
	b.buf = append(b.buf, ',')
	b.buf = strconv.AppendFloat(b.buf, y, 'f', -1, 64)
}

func (b *pathBuilder) pt(x, y float64) {
	b.buf = append(b.buf, ' ')
	b.buf = strconv.AppendFloat(b.buf, x, 'f', -1, 64)
	b.buf = append(b.buf, ',')
	b.buf = strconv.AppendFloat(b.buf, y, 'f', -1, 64)
}

func (b *pathBuilder) moveTo(x, y float64) { b.cmd('M', x, y) }
func (b *pathBuilder) lineTo(x, y float64) { b.cmd('L', x, y) }

// cubicTo appends a cubic Bézier segment with control points (x1, y1) and
// (x2, y2) ending at (x, y).
func (b *pathBuilder) cubicTo(x1, y1, x2, y2, x, y float64) {
	b.cmd('C', x1, y1)
	b.pt(x2, y2)
	b.pt(x, y)
}

func (b *pathBuilder) close() {
	b.buf = append(b.buf, ' ', 'Z')
}

func (b *pathBuilder) String() string {
	return string(b.buf)
}
