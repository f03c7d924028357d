package backdrop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := Clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(Clamp(c.R, 0, 1)*a*255 + 0.5),
		G: uint8(Clamp(c.G, 0, 1)*a*255 + 0.5),
		B: uint8(Clamp(c.B, 0, 1)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for pointer positions and path vertices.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used by the particle field and its camera.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return v
	}
	return v.Scale(1 / l)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// ModeKind selects one of the built-in visual modes.
type ModeKind uint8

const (
	ModeGridWarp      ModeKind = iota // lattice deformed by the pointer
	ModeRibbon                        // scroll-linked ribbons
	ModeParticleField                 // drifting point cloud with a pointer camera
)

var modeNames = [...]string{
	ModeGridWarp:      "gridwarp",
	ModeRibbon:        "ribbon",
	ModeParticleField: "particles",
}

// String returns the configuration name of the mode.
func (k ModeKind) String() string {
	if int(k) < len(modeNames) {
		return modeNames[k]
	}
	return "unknown"
}

// ParseModeKind maps a configuration name to a ModeKind.
func ParseModeKind(name string) (ModeKind, bool) {
	for i, n := range modeNames {
		if n == name {
			return ModeKind(i), true
		}
	}
	return 0, false
}

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // fires when the pointer moves
	EventPointerLeave                  // fires when the pointer signal is lost
	EventScroll                        // fires when the scroll offset changes
	EventResize                        // fires when the viewport size changes
)
