package thicket

import "math"

// Matrix is a 2D affine transform.
//
//	Layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// identityMatrix is the identity affine matrix.
var identityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Mul returns parent * child.
func (p Matrix) Mul(c Matrix) Matrix {
	return Matrix{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse matrix, or the identity if the matrix is
// singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// composeMatrix builds a local affine matrix from transform properties.
//
// Composition order:
//
//	Translate(-pivot) -> Scale -> Skew -> Rotate -> Translate(x, y)
func composeMatrix(x, y, sx, sy, rotation, skewX, skewY, px, py float64) Matrix {
	sin, cos := math.Sincos(rotation)

	var tanSkewX, tanSkewY float64
	if skewX != 0 {
		tanSkewX = math.Tan(skewX)
	}
	if skewY != 0 {
		tanSkewY = math.Tan(skewY)
	}

	// After Scale * Translate(-pivot), then Skew:
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(x, y):
	return Matrix{ra, rb, rc, rd, rtx + x, rty + y}
}
