package backdrop

import "math"

// DefaultCameraPosition is the viewpoint a CameraRig starts from.
var DefaultCameraPosition = Vec3{X: 0, Y: 0, Z: 5}

const (
	defaultCameraLerp = 0.05
	defaultCameraFOV  = 75.0 // degrees, vertical
	cameraNear        = 0.1
)

// CameraRig is a virtual viewpoint that leans toward the pointer. It always
// looks at the world origin and moves toward its target by exponential
// smoothing, so motion is continuous and never overshoots.
type CameraRig struct {
	// Position is the current viewpoint. Always defined.
	Position Vec3
	// Target is where Position is heading.
	Target Vec3
	// Lerp is the fraction of the remaining distance covered per Update.
	// A lerp of 1.0 snaps immediately.
	Lerp float64
	// FOV is the vertical field of view in degrees used by Project.
	FOV float64
}

// NewCameraRig creates a rig at DefaultCameraPosition.
func NewCameraRig() *CameraRig {
	return &CameraRig{
		Position: DefaultCameraPosition,
		Target:   DefaultCameraPosition,
		Lerp:     defaultCameraLerp,
		FOV:      defaultCameraFOV,
	}
}

// Reset puts the rig back at the default viewpoint with no pending motion.
func (c *CameraRig) Reset() {
	c.Position = DefaultCameraPosition
	c.Target = DefaultCameraPosition
}

// Aim sets the target from a normalized pointer (nx, ny in [-0.5, 0.5]):
// (nx*2, ny*2, 5 - |nx*ny|*2).
func (c *CameraRig) Aim(n Vec2) {
	c.Target = Vec3{
		X: n.X * 2,
		Y: n.Y * 2,
		Z: DefaultCameraPosition.Z - math.Abs(n.X*n.Y)*2,
	}
}

// Update moves Position a Lerp fraction of the way to Target.
func (c *CameraRig) Update() {
	c.Position = Vec3{
		X: approach(c.Position.X, c.Target.X, c.Lerp),
		Y: approach(c.Position.Y, c.Target.Y, c.Lerp),
		Z: approach(c.Position.Z, c.Target.Z, c.Lerp),
	}
}

// basis returns the right, up and forward unit vectors of a camera at
// Position looking at the origin with world +Y up.
func (c *CameraRig) basis() (right, up, forward Vec3) {
	forward = c.Position.Scale(-1).Normalize()
	right = forward.Cross(Vec3{Y: 1})
	if right.Len() < 1e-9 {
		// Looking straight up or down: any horizontal right vector works.
		right = Vec3{X: 1}
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// Project maps a world point to screen pixels for a viewport of the given
// size. depth is the distance along the view direction; ok is false for
// points behind the near plane.
func (c *CameraRig) Project(p Vec3, width, height float64) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.basis()
	rel := p.Sub(c.Position)
	z := rel.Dot(forward)
	if z <= cameraNear || height <= 0 {
		return 0, 0, z, false
	}
	focal := (height / 2) / math.Tan(c.FOV*degToRad/2)
	sx = width/2 + rel.Dot(right)*focal/z
	sy = height/2 - rel.Dot(up)*focal/z
	return sx, sy, z, true
}

// PixelScale returns how many pixels one world unit spans at the given depth.
func (c *CameraRig) PixelScale(depth, height float64) float64 {
	if depth <= cameraNear {
		return 0
	}
	return (height / 2) / math.Tan(c.FOV*degToRad/2) / depth
}
