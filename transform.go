package backdrop

import "math"

// degToRad converts degrees to radians.
const degToRad = math.Pi / 180

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// pivotTransform builds the affine matrix that rotates by rot radians and
// scales uniformly by scale around the pivot (px, py). Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-px, -py) -> Scale -> Rotate -> Translate(px, py)
func pivotTransform(px, py, rot, scale float64) [6]float64 {
	sin, cos := math.Sincos(rot)
	a := cos * scale
	b := sin * scale
	c := -sin * scale
	d := cos * scale
	return [6]float64{a, b, c, d, px - (a*px + c*py), py - (b*px + d*py)}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
