package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat4 is a 4x4 affine transform stored row-major: M[row*4+col]. Points are column
// vectors, so the translation lives in the last column.
type Mat4 [16]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix
func Translate(offset Vec3) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = offset.X, offset.Y, offset.Z
	return m
}

// Scale returns a non-uniform scale matrix
func Scale(factors Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = factors.X, factors.Y, factors.Z
	return m
}

// RotateX returns a rotation around the X axis by angle radians
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation around the Y axis by angle radians
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation around the Z axis by angle radians
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromBasis builds a transform whose columns are right, up, forward and origin
func FromBasis(right, up, forward, origin Vec3) Mat4 {
	return Mat4{
		right.X, up.X, forward.X, origin.X,
		right.Y, up.Y, forward.Y, origin.Y,
		right.Z, up.Z, forward.Z, origin.Z,
		0, 0, 0, 1,
	}
}

// Mul returns m * other, i.e. other is applied first
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// MulPoint transforms a point (homogeneous w = 1)
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// MulDirection transforms a direction (homogeneous w = 0); the result is not normalized
func (m Mat4) MulDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// MulNormalTransposed transforms a surface normal with the transpose of m. Called on a
// world-to-local matrix it maps local normals to world space (inverse transpose of the
// local-to-world matrix) so non-uniform scale keeps normals perpendicular.
func (m Mat4) MulNormalTransposed(n Vec3) Vec3 {
	return Vec3{
		m[0]*n.X + m[4]*n.Y + m[8]*n.Z,
		m[1]*n.X + m[5]*n.Y + m[9]*n.Z,
		m[2]*n.X + m[6]*n.Y + m[10]*n.Z,
	}
}

// Column returns the first three entries of column col
func (m Mat4) Column(col int) Vec3 {
	return Vec3{m[col], m[4+col], m[8+col]}
}

// Inverse returns the inverse matrix, or an error if m is singular
func (m Mat4) Inverse() (Mat4, error) {
	dense := mat.NewDense(4, 4, m[:])
	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		return Mat4{}, fmt.Errorf("invert transform: %w", err)
	}

	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = inv.At(row, col)
		}
	}
	return out, nil
}
