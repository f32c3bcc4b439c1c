package geometry

import "math"

// Transformation is a 4x4 homogeneous transformation matrix in row-major
// order. The zero value is NOT the identity; use Identity.
//
// Transformation is a comparable value type: two transformations are equal
// under == iff their matrices are identical.
type Transformation struct {
	m [4][4]float64
}

// Identity returns the identity transformation.
func Identity() Transformation {
	var t Transformation
	t.m[0][0] = 1
	t.m[1][1] = 1
	t.m[2][2] = 1
	t.m[3][3] = 1
	return t
}

// FromMatrix builds a transformation from a row-major 4x4 matrix.
func FromMatrix(m [4][4]float64) Transformation {
	return Transformation{m: m}
}

// FromTranslation returns a translation by v.
func FromTranslation(v Vector) Transformation {
	t := Identity()
	t.m[0][3] = v.X
	t.m[1][3] = v.Y
	t.m[2][3] = v.Z
	return t
}

// FromScale returns a uniform scaling about the origin.
func FromScale(s float64) Transformation {
	t := Identity()
	t.m[0][0] = s
	t.m[1][1] = s
	t.m[2][2] = s
	return t
}

// FromAxisAngle returns a rotation of angle radians about the given axis
// through the origin (Rodrigues form).
func FromAxisAngle(axis Vector, angle float64) Transformation {
	u := axis.Unitized()
	c := math.Cos(angle)
	s := math.Sin(angle)
	ic := 1 - c

	t := Identity()
	t.m[0][0] = c + u.X*u.X*ic
	t.m[0][1] = u.X*u.Y*ic - u.Z*s
	t.m[0][2] = u.X*u.Z*ic + u.Y*s
	t.m[1][0] = u.Y*u.X*ic + u.Z*s
	t.m[1][1] = c + u.Y*u.Y*ic
	t.m[1][2] = u.Y*u.Z*ic - u.X*s
	t.m[2][0] = u.Z*u.X*ic - u.Y*s
	t.m[2][1] = u.Z*u.Y*ic + u.X*s
	t.m[2][2] = c + u.Z*u.Z*ic
	return t
}

// Mul returns t * o, the transformation that applies o first and t second.
func (t Transformation) Mul(o Transformation) Transformation {
	var r Transformation
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t.m[i][k] * o.m[k][j]
			}
			r.m[i][j] = sum
		}
	}
	return r
}

// ApplyPoint transforms a point position.
func (t Transformation) ApplyPoint(v Vector) Vector {
	return Vector{
		t.m[0][0]*v.X + t.m[0][1]*v.Y + t.m[0][2]*v.Z + t.m[0][3],
		t.m[1][0]*v.X + t.m[1][1]*v.Y + t.m[1][2]*v.Z + t.m[1][3],
		t.m[2][0]*v.X + t.m[2][1]*v.Y + t.m[2][2]*v.Z + t.m[2][3],
	}
}

// ApplyVector transforms a direction, ignoring translation.
func (t Transformation) ApplyVector(v Vector) Vector {
	return Vector{
		t.m[0][0]*v.X + t.m[0][1]*v.Y + t.m[0][2]*v.Z,
		t.m[1][0]*v.X + t.m[1][1]*v.Y + t.m[1][2]*v.Z,
		t.m[2][0]*v.X + t.m[2][1]*v.Y + t.m[2][2]*v.Z,
	}
}

// Matrix returns the row-major 4x4 matrix.
func (t Transformation) Matrix() [4][4]float64 {
	return t.m
}

// Translation returns the translation component.
func (t Transformation) Translation() Vector {
	return Vector{t.m[0][3], t.m[1][3], t.m[2][3]}
}
