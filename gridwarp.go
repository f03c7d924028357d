package backdrop

import "math"

const (
	// gridInfluenceRadius is the pointer distance in pixels beyond which a
	// point feels no force.
	gridInfluenceRadius = 200.0
	// gridRelaxRate is the fraction of the remaining displacement recovered
	// per tick when no force applies.
	gridRelaxRate = 0.1
	// gridQuadOpacity is the opacity of every quad fill.
	gridQuadOpacity = 0.1
	// gridMaxRotation and gridMaxZoom are the scroll-linked transform at
	// progress 1 (degrees and added scale).
	gridMaxRotation = 10.0
	gridMaxZoom     = 0.2
)

// GridPoint is one lattice vertex. Origin is fixed at activation; X and Y
// move every tick.
type GridPoint struct {
	OriginX, OriginY float64
	X, Y             float64
}

// GridWarpMode is a lattice of points spanning the viewport that is pushed
// away from the pointer and relaxes back to rest otherwise. Every 2×2 block
// of points renders as one closed quad.
type GridWarpMode struct {
	state     modeState
	cfg       Config
	fill      Color
	amplitude float64
	width     float64
	height    float64
	cellSize  float64
	rows      int
	cols      int
	points    []GridPoint
	scrub     *scrubber
	frame     Frame
	pb        pathBuilder
}

// Kind returns ModeGridWarp.
func (g *GridWarpMode) Kind() ModeKind { return ModeGridWarp }

// Activate builds the lattice for cfg's density and viewport.
func (g *GridWarpMode) Activate(cfg Config) error {
	if g.state == stateDisposed {
		return &ConfigError{Field: "mode", Value: g.Kind().String(), Reason: "mode already disposed"}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	pal, err := cfg.palette()
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.fill = pal[0]
	g.amplitude = cfg.Amplitude
	g.scrub = newScrubber(cfg.Scrub)
	g.build(cfg.ViewportWidth, cfg.ViewportHeight)
	g.state = stateActive
	return nil
}

// Resize regenerates the lattice for a new viewport. Displacements are lost.
func (g *GridWarpMode) Resize(width, height float64) {
	if g.state != stateActive || !positiveFinite(width) || !positiveFinite(height) {
		return
	}
	g.build(width, height)
}

// build generates ceil(height/cellSize) rows of density+1 points.
func (g *GridWarpMode) build(width, height float64) {
	density := g.cfg.Density
	g.width = width
	g.height = height
	g.cellSize = width / float64(density)
	g.cols = density + 1
	g.rows = int(math.Ceil(height / g.cellSize))

	n := g.rows * g.cols
	if cap(g.points) < n {
		g.points = make([]GridPoint, n)
	}
	g.points = g.points[:n]
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			x := float64(c) * g.cellSize
			y := float64(r) * g.cellSize
			g.points[r*g.cols+c] = GridPoint{OriginX: x, OriginY: y, X: x, Y: y}
		}
	}

	quads := g.QuadCount()
	if cap(g.frame.Paths) < quads {
		g.frame.Paths = make([]Path, quads)
		for i := range g.frame.Paths {
			g.frame.Paths[i].Points = make([]Vec2, 4)
		}
	}
	g.frame.Paths = g.frame.Paths[:quads]
	g.frame.Seq = 0
}

// Points returns the lattice in row-major order. The slice is owned by the
// mode and mutated every tick.
func (g *GridWarpMode) Points() []GridPoint {
	return g.points
}

// Rows returns the number of lattice rows.
func (g *GridWarpMode) Rows() int { return g.rows }

// Cols returns the number of lattice columns (density+1).
func (g *GridWarpMode) Cols() int { return g.cols }

// CellSize returns the rest spacing between adjacent points in pixels.
func (g *GridWarpMode) CellSize() float64 { return g.cellSize }

// QuadCount returns the number of quads rendered per tick.
func (g *GridWarpMode) QuadCount() int {
	if g.rows < 2 {
		return 0
	}
	return (g.rows - 1) * (g.cols - 1)
}

// Tick applies the pointer force field, relaxes untouched points and
// rebuilds the quad paths.
func (g *GridWarpMode) Tick(s Sample, c Clock) *Frame {
	if g.state != stateActive {
		return nil
	}
	g.step(s)

	g.scrub.Set(s.ScrollProgress)
	progress := g.scrub.Update(c.Delta.Seconds())
	g.frame.Kind = FramePaths
	g.frame.Mode = ModeGridWarp
	g.frame.Seq++
	g.frame.Viewport = Vec2{X: g.width, Y: g.height}
	g.frame.Transform = pivotTransform(g.width/2, g.height/2,
		progress*gridMaxRotation*degToRad, 1+progress*gridMaxZoom)
	g.buildPaths()
	return &g.frame
}

// step advances every point by one tick.
func (g *GridWarpMode) step(s Sample) {
	px, py := s.Pointer.X, s.Pointer.Y
	for i := range g.points {
		p := &g.points[i]
		if s.HasPointer {
			dx := p.X - px
			dy := p.Y - py
			d := math.Sqrt(dx*dx + dy*dy)
			if d < gridInfluenceRadius {
				force := (1 - d/gridInfluenceRadius) * g.amplitude
				ux, uy := 1.0, 0.0 // zero distance: push along +x
				if d > 0 {
					ux, uy = dx/d, dy/d
				}
				p.X = p.OriginX + ux*force
				p.Y = p.OriginY + uy*force
				continue
			}
		}
		p.X = approach(p.X, p.OriginX, gridRelaxRate)
		p.Y = approach(p.Y, p.OriginY, gridRelaxRate)
	}
}

// buildPaths writes one closed quad per cell: top-left, top-right,
// bottom-right, bottom-left.
func (g *GridWarpMode) buildPaths() {
	i := 0
	for r := 0; r < g.rows-1; r++ {
		row := g.points[r*g.cols : (r+1)*g.cols]
		next := g.points[(r+1)*g.cols : (r+2)*g.cols]
		for c := 0; c < g.cols-1; c++ {
			p1, p2 := row[c], row[c+1]
			p3, p4 := next[c], next[c+1]

			path := &g.frame.Paths[i]
			path.Points[0] = Vec2{p1.X, p1.Y}
			path.Points[1] = Vec2{p2.X, p2.Y}
			path.Points[2] = Vec2{p4.X, p4.Y}
			path.Points[3] = Vec2{p3.X, p3.Y}

			g.pb.reset()
			g.pb.moveTo(p1.X, p1.Y)
			g.pb.lineTo(p2.X, p2.Y)
			g.pb.lineTo(p4.X, p4.Y)
			g.pb.lineTo(p3.X, p3.Y)
			g.pb.close()
			path.D = g.pb.String()
			path.Closed = true
			path.Fill = g.fill
			path.Opacity = gridQuadOpacity
			path.Reveal = 1
			path.Transform = identityTransform
			i++
		}
	}
}

// Dispose releases the lattice. Further ticks return nil.
func (g *GridWarpMode) Dispose() {
	g.state = stateDisposed
	g.points = nil
	g.frame = Frame{}
	g.pb = pathBuilder{}
}
