package backdrop

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps a batch addressable by uint16 indices.
const maxBatchVertices = 65535 - 256

// EbitenSurface draws frames onto an ebiten screen. Present only keeps a
// reference to the frame; Draw renders it. Frames are produced in Update and
// drawn in the following Draw, before the next tick can touch them.
type EbitenSurface struct {
	// ClearColor fills the screen before each frame. A zero alpha leaves the
	// screen as it is.
	ClearColor Color

	frame *Frame

	path     vector.Path
	local    []ebiten.Vertex
	verts    []ebiten.Vertex
	inds     []uint16
	revealed []Vec2
}

// NewEbitenSurface creates a surface that clears to clear before drawing.
func NewEbitenSurface(clear Color) *EbitenSurface {
	return &EbitenSurface{ClearColor: clear}
}

// Present keeps f for the next Draw.
func (s *EbitenSurface) Present(f *Frame) {
	s.frame = f
}

// Frame returns the frame that the next Draw renders, or nil.
func (s *EbitenSurface) Frame() *Frame {
	return s.frame
}

// Draw renders the last presented frame onto screen.
func (s *EbitenSurface) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	f := s.frame
	if f == nil || f.Alpha <= 0 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	switch f.Kind {
	case FramePaths:
		s.drawPaths(screen, f)
	case FramePoints:
		s.drawPoints(screen, f)
	}
}

func (s *EbitenSurface) drawPaths(screen *ebiten.Image, f *Frame) {
	for i := range f.Paths {
		p := &f.Paths[i]
		if len(p.Points) < 2 || p.Opacity <= 0 {
			continue
		}
		local := p.Transform
		if local == ([6]float64{}) {
			local = identityTransform
		}
		m := multiplyAffine(f.Transform, local)

		tint := p.Stroke
		if p.Closed {
			tint = p.Fill
		} else {
			s.revealed = revealPolyline(p.Points, p.Reveal, s.revealed[:0])
			if len(s.revealed) < 2 {
				continue
			}
		}
		tint.A *= p.Opacity * f.Alpha
		s.appendPathVertices(screen, m, tint, p)
	}
	s.flush(screen, BlendNormal)
}

// appendPathVertices tessellates p in local space, then transforms the
// vertices by m and tints them into the batch. Open paths use s.revealed.
func (s *EbitenSurface) appendPathVertices(screen *ebiten.Image, m [6]float64, tint Color, p *Path) {
	var inds []uint16
	s.path = vector.Path{}
	if p.Closed {
		s.path.MoveTo(float32(p.Points[0].X), float32(p.Points[0].Y))
		for _, pt := range p.Points[1:] {
			s.path.LineTo(float32(pt.X), float32(pt.Y))
		}
		s.path.Close()
		s.local, inds = s.path.AppendVerticesAndIndicesForFilling(s.local[:0], nil)
	} else {
		s.path.MoveTo(float32(s.revealed[0].X), float32(s.revealed[0].Y))
		for _, pt := range s.revealed[1:] {
			s.path.LineTo(float32(pt.X), float32(pt.Y))
		}
		s.local, inds = s.path.AppendVerticesAndIndicesForStroke(s.local[:0], nil, &vector.StrokeOptions{
			Width:    float32(p.StrokeWidth),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
	}
	if len(s.verts)+len(s.local) > maxBatchVertices {
		s.flush(screen, BlendNormal)
	}
	base := len(s.verts)
	s.verts = slices.Grow(s.verts, len(s.local))[:base+len(s.local)]
	transformVertices(s.local, s.verts[base:], m, tint)
	for _, idx := range inds {
		s.inds = append(s.inds, uint16(base)+idx)
	}
}

func (s *EbitenSurface) drawPoints(screen *ebiten.Image, f *Frame) {
	b := f.Points
	if b == nil || f.Camera == nil {
		return
	}
	w, h := f.Viewport.X, f.Viewport.Y
	alpha := float32(f.Alpha)
	for i := 0; i < b.Count(); i++ {
		i3 := i * 3
		p := Vec3{float64(b.Positions[i3]), float64(b.Positions[i3+1]), float64(b.Positions[i3+2])}
		sx, sy, depth, ok := f.Camera.Project(p, w, h)
		if !ok {
			continue
		}
		half := float64(b.Sizes[i]) * particleSizeScale * f.Camera.PixelScale(depth, h)
		if half <= 0 {
			continue
		}
		if len(s.verts)+4 > maxBatchVertices {
			s.flush(screen, f.Blend)
		}
		r, g, bl := b.Colors[i3]*alpha, b.Colors[i3+1]*alpha, b.Colors[i3+2]*alpha
		s.verts, s.inds = appendParticleQuad(s.verts, s.inds, sx, sy, half, float64(b.Rotations[i]), r, g, bl, alpha)
	}
	s.flush(screen, f.Blend)
}

// appendParticleQuad appends a square of half-size half centered on (cx, cy)
// and rotated by rot radians. Colors are premultiplied.
func appendParticleQuad(verts []ebiten.Vertex, inds []uint16, cx, cy, half, rot float64, r, g, b, a float32) ([]ebiten.Vertex, []uint16) {
	sin, cos := math.Sincos(rot)
	base := uint16(len(verts))
	corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	for _, c := range corners {
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(cx + c[0]*cos - c[1]*sin),
			DstY:   float32(cy + c[0]*sin + c[1]*cos),
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

func (s *EbitenSurface) flush(screen *ebiten.Image, blend BlendMode) {
	if len(s.inds) == 0 {
		s.verts = s.verts[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{Blend: blend.EbitenBlend(), AntiAlias: true}
	screen.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// revealPolyline appends to dst the leading part of pts that covers frac of
// the polyline's total length. The last point is interpolated so the drawn
// length is exact.
func revealPolyline(pts []Vec2, frac float64, dst []Vec2) []Vec2 {
	if len(pts) < 2 || frac <= 0 {
		return dst
	}
	if frac >= 1 {
		return append(dst, pts...)
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	want := total * frac
	dst = append(dst, pts[0])
	run := 0.0
	for i := 1; i < len(pts); i++ {
		seg := math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
		if run+seg >= want {
			t := 0.0
			if seg > 0 {
				t = (want - run) / seg
			}
			return append(dst, Vec2{
				X: Lerp(pts[i-1].X, pts[i].X, t),
				Y: Lerp(pts[i-1].Y, pts[i].Y, t),
			})
		}
		run += seg
		dst = append(dst, pts[i])
	}
	return dst
}
