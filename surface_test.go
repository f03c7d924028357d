package backdrop

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSVGSurfaceGridPaths(t *testing.T) {
	s := NewSVGSurface()
	f := &Frame{
		Kind:      FramePaths,
		Viewport:  Vec2{100, 50},
		Alpha:     0.5,
		Transform: identityTransform,
		Paths: []Path{{
			D:         "M 0,0 L 1,0 L 1,1 Z",
			Closed:    true,
			Fill:      Color{1, 0, 0, 1},
			Opacity:   0.25,
			Transform: identityTransform,
		}},
	}
	s.Present(f)
	doc := string(s.Bytes())
	for _, want := range []string{
		`width="100" height="50" viewBox="0 0 100 50" opacity="0.5"`,
		`<g transform="matrix(1 0 0 1 0 0)">`,
		`<path d="M 0,0 L 1,0 L 1,1 Z" fill="#ff0000" fill-opacity="0.25"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if s.Presents() != 1 {
		t.Errorf("Presents = %d", s.Presents())
	}
}

func TestSVGSurfaceRibbonStroke(t *testing.T) {
	s := NewSVGSurface()
	s.Present(&Frame{
		Kind:      FramePaths,
		Viewport:  Vec2{100, 100},
		Alpha:     1,
		Transform: identityTransform,
		Paths: []Path{{
			D:           "M 0,50 C 25,40 75,60 100,50",
			Stroke:      Color{0, 0, 1, 1},
			StrokeWidth: 2,
			Opacity:     0.5,
			Reveal:      0.25,
			Transform:   [6]float64{1, 0, 0, 1, 0, -60},
		}},
	})
	doc := string(s.Bytes())
	for _, want := range []string{
		`fill="none" stroke="#0000ff" stroke-width="2" stroke-opacity="0.5"`,
		`pathLength="1" stroke-dasharray="1" stroke-dashoffset="0.75"`,
		`transform="matrix(1 0 0 1 0 -60)"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestSVGSurfaceReplacesDocument(t *testing.T) {
	s := NewSVGSurface()
	f := &Frame{Kind: FramePaths, Viewport: Vec2{10, 10}, Transform: identityTransform}
	s.Present(f)
	s.Present(f)
	if n := strings.Count(string(s.Bytes()), "<svg"); n != 1 {
		t.Errorf("document has %d svg elements, want 1", n)
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil || !bytes.Equal(buf.Bytes(), s.Bytes()) {
		t.Errorf("WriteTo = %q, %v", buf.String(), err)
	}
}

func TestSVGSurfacePoints(t *testing.T) {
	cam := NewCameraRig()
	b := &PointBuffers{
		// One particle at the origin, one behind the camera.
		Positions: []float32{0, 0, 0, 0, 0, 10},
		Colors:    []float32{1, 0.5, 0, 1, 1, 1},
		Sizes:     []float32{0.2, 0.2},
		Rotations: []float32{0, 0},
	}
	s := NewSVGSurface()
	s.Present(&Frame{
		Kind:     FramePoints,
		Viewport: Vec2{100, 50},
		Alpha:    1,
		Points:   b,
		Camera:   cam,
		Blend:    BlendAdd,
	})
	doc := string(s.Bytes())
	if strings.Count(doc, "<circle") != 1 {
		t.Fatalf("circles = %d, want 1:\n%s", strings.Count(doc, "<circle"), doc)
	}
	if !strings.Contains(doc, `cx="50" cy="25"`) || !strings.Contains(doc, `fill="#ff8000"`) {
		t.Errorf("unexpected circle:\n%s", doc)
	}
	if !strings.Contains(doc, "plus-lighter") {
		t.Error("additive blend not marked")
	}
}

func TestSVGSurfacePointsWithoutCamera(t *testing.T) {
	s := NewSVGSurface()
	s.Present(&Frame{Kind: FramePoints, Viewport: Vec2{10, 10}, Points: &PointBuffers{}})
	if strings.Contains(string(s.Bytes()), "<circle") {
		t.Error("circles drawn without a camera")
	}
}

func TestColorHex(t *testing.T) {
	if got := colorHex(Color{1, 0.5, 0, 1}); got != "#ff8000" {
		t.Errorf("colorHex = %q", got)
	}
	if got := colorHex(Color{2, -1, 0, 1}); got != "#ff0000" {
		t.Errorf("out-of-range colorHex = %q", got)
	}
}

func TestRecordingSurface(t *testing.T) {
	var r RecordingSurface
	a := &Frame{Seq: 1}
	b := &Frame{Seq: 2}
	r.Present(a)
	r.Present(b)
	if r.Presents != 2 || r.Last != b || len(r.Seqs) != 2 || r.Seqs[1] != 2 {
		t.Errorf("recording = %+v", r)
	}
}

func TestEbitenSurfaceKeepsFrame(t *testing.T) {
	s := NewEbitenSurface(Color{})
	if s.Frame() != nil {
		t.Error("new surface has a frame")
	}
	f := &Frame{Seq: 3}
	s.Present(f)
	if s.Frame() != f {
		t.Error("Frame does not return the presented frame")
	}
}

func TestRevealPolyline(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 0}, {10, 10}}
	if got := revealPolyline(pts, 0, nil); len(got) != 0 {
		t.Errorf("frac 0 = %v, want empty", got)
	}
	if got := revealPolyline(pts, 1, nil); len(got) != 3 {
		t.Errorf("frac 1 = %v, want all points", got)
	}
	got := revealPolyline(pts, 0.5, nil)
	if len(got) != 2 || got[1] != (Vec2{10, 0}) {
		t.Errorf("frac 0.5 = %v", got)
	}
	got = revealPolyline(pts, 0.75, nil)
	if len(got) != 3 || got[2] != (Vec2{10, 5}) {
		t.Errorf("frac 0.75 = %v", got)
	}
	if got := revealPolyline(pts[:1], 0.5, nil); len(got) != 0 {
		t.Errorf("single point = %v", got)
	}
}

func TestAppendParticleQuad(t *testing.T) {
	verts, inds := appendParticleQuad(nil, nil, 10, 10, 2, 0, 1, 1, 1, 1)
	want := [4][2]float32{{8, 8}, {12, 8}, {12, 12}, {8, 12}}
	for i, w := range want {
		if verts[i].DstX != w[0] || verts[i].DstY != w[1] {
			t.Errorf("vertex %d = (%v, %v), want %v", i, verts[i].DstX, verts[i].DstY, w)
		}
	}
	verts, inds = appendParticleQuad(verts, inds, 0, 0, 1, math.Pi/2, 1, 0, 0, 1)
	if len(verts) != 8 || len(inds) != 12 {
		t.Fatalf("lengths = %d/%d", len(verts), len(inds))
	}
	if inds[6] != 4 || inds[11] != 7 {
		t.Errorf("second quad indices = %v", inds[6:])
	}
	// A quarter turn maps the (-1, -1) corner to (1, -1).
	if !approxEqual(float64(verts[4].DstX), 1, 1e-6) || !approxEqual(float64(verts[4].DstY), -1, 1e-6) {
		t.Errorf("rotated corner = (%v, %v)", verts[4].DstX, verts[4].DstY)
	}
}

func TestTransformVertices(t *testing.T) {
	src := []ebiten.Vertex{{DstX: 1, DstY: 2, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}}
	dst := make([]ebiten.Vertex, 1)
	transformVertices(src, dst, [6]float64{2, 0, 0, 2, 10, 20}, Color{1, 0.5, 0, 0.5})
	v := dst[0]
	if v.DstX != 12 || v.DstY != 24 {
		t.Errorf("position = (%v, %v), want (12, 24)", v.DstX, v.DstY)
	}
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = %v %v %v %v, want premultiplied 0.5 0.25 0 0.5", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}
