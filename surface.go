package backdrop

import (
	"bytes"
	"io"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface consumes the frames produced by a Loop. Present is called once per
// tick with a frame that stays valid until the next tick; surfaces that need
// the data later must render or copy it before returning.
type Surface interface {
	Present(f *Frame)
}

// particleSizeScale converts a particle size in world units to a radius in
// world units.
const particleSizeScale = 0.5

// SVGSurface renders every presented frame to an SVG document. Path frames
// are written as path elements; point frames are projected through the
// frame's camera and written as circles.
type SVGSurface struct {
	buf      bytes.Buffer
	num      []byte
	presents int
}

// NewSVGSurface creates an empty SVG surface.
func NewSVGSurface() *SVGSurface {
	return &SVGSurface{}
}

// Presents returns the number of frames rendered.
func (s *SVGSurface) Presents() int {
	return s.presents
}

// Bytes returns the document of the last presented frame. The slice is
// reused by the next Present.
func (s *SVGSurface) Bytes() []byte {
	return s.buf.Bytes()
}

// WriteTo writes the document of the last presented frame to w.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.buf.Bytes())
	return int64(n), err
}

// Present renders f into the surface's buffer, replacing the previous
// document.
func (s *SVGSurface) Present(f *Frame) {
	s.presents++
	s.buf.Reset()
	w, h := f.Viewport.X, f.Viewport.Y

	s.buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	s.writeNum(w)
	s.buf.WriteString(`" height="`)
	s.writeNum(h)
	s.buf.WriteString(`" viewBox="0 0 `)
	s.writeNum(w)
	s.buf.WriteByte(' ')
	s.writeNum(h)
	s.buf.WriteString(`" opacity="`)
	s.writeNum(f.Alpha)
	s.buf.WriteString("\">\n")

	switch f.Kind {
	case FramePaths:
		s.writePaths(f)
	case FramePoints:
		s.writePoints(f)
	}
	s.buf.WriteString("</svg>\n")
}

func (s *SVGSurface) writePaths(f *Frame) {
	s.buf.WriteString(`<g transform="`)
	s.writeMatrix(f.Transform)
	s.buf.WriteString("\">\n")
	for i := range f.Paths {
		p := &f.Paths[i]
		s.buf.WriteString(`<path d="`)
		s.buf.WriteString(p.D)
		s.buf.WriteByte('"')
		if p.Closed {
			s.buf.WriteString(` fill="`)
			s.buf.WriteString(colorHex(p.Fill))
			s.buf.WriteString(`" fill-opacity="`)
			s.writeNum(p.Opacity * p.Fill.A)
			s.buf.WriteByte('"')
		} else {
			s.buf.WriteString(` fill="none" stroke="`)
			s.buf.WriteString(colorHex(p.Stroke))
			s.buf.WriteString(`" stroke-width="`)
			s.writeNum(p.StrokeWidth)
			s.buf.WriteString(`" stroke-opacity="`)
			s.writeNum(p.Opacity * p.Stroke.A)
			s.buf.WriteString(`" stroke-linecap="round" pathLength="1" stroke-dasharray="1" stroke-dashoffset="`)
			s.writeNum(1 - Clamp(p.Reveal, 0, 1))
			s.buf.WriteByte('"')
		}
		if p.Transform != identityTransform && p.Transform != ([6]float64{}) {
			s.buf.WriteString(` transform="`)
			s.writeMatrix(p.Transform)
			s.buf.WriteByte('"')
		}
		s.buf.WriteString("/>\n")
	}
	s.buf.WriteString("</g>\n")
}

func (s *SVGSurface) writePoints(f *Frame) {
	if f.Points == nil || f.Camera == nil {
		return
	}
	if f.Blend == BlendAdd {
		s.buf.WriteString(`<g style="mix-blend-mode:plus-lighter">` + "\n")
	} else {
		s.buf.WriteString("<g>\n")
	}
	b := f.Points
	w, h := f.Viewport.X, f.Viewport.Y
	for i := 0; i < b.Count(); i++ {
		i3 := i * 3
		p := Vec3{float64(b.Positions[i3]), float64(b.Positions[i3+1]), float64(b.Positions[i3+2])}
		sx, sy, depth, ok := f.Camera.Project(p, w, h)
		if !ok {
			continue
		}
		r := float64(b.Sizes[i]) * particleSizeScale * f.Camera.PixelScale(depth, h)
		col := Color{float64(b.Colors[i3]), float64(b.Colors[i3+1]), float64(b.Colors[i3+2]), 1}
		s.buf.WriteString(`<circle cx="`)
		s.writeNum(sx)
		s.buf.WriteString(`" cy="`)
		s.writeNum(sy)
		s.buf.WriteString(`" r="`)
		s.writeNum(r)
		s.buf.WriteString(`" fill="`)
		s.buf.WriteString(colorHex(col))
		s.buf.WriteString("\"/>\n")
	}
	s.buf.WriteString("</g>\n")
}

func (s *SVGSurface) writeMatrix(m [6]float64) {
	s.buf.WriteString("matrix(")
	for i, v := range m {
		if i > 0 {
			s.buf.WriteByte(' ')
		}
		s.writeNum(v)
	}
	s.buf.WriteByte(')')
}

func (s *SVGSurface) writeNum(v float64) {
	s.num = strconv.AppendFloat(s.num[:0], v, 'f', -1, 64)
	s.buf.Write(s.num)
}

// colorHex formats the RGB channels of c as #rrggbb.
func colorHex(c Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RecordingSurface counts presented frames and keeps the most recent one.
// The kept frame is owned by the mode and changes on the next tick.
type RecordingSurface struct {
	Presents int
	Last     *Frame
	Seqs     []uint64
}

// Present records f.
func (r *RecordingSurface) Present(f *Frame) {
	r.Presents++
	r.Last = f
	r.Seqs = append(r.Seqs, f.Seq)
}
