package geometry

// Frame is a local coordinate system defined by an origin and two in-plane
// axes. The Z axis is derived as the cross product of X and Y.
type Frame struct {
	Origin Vector
	XAxis  Vector
	YAxis  Vector
}

// NewFrame creates a frame with unitized axes.
func NewFrame(origin, xaxis, yaxis Vector) Frame {
	return Frame{Origin: origin, XAxis: xaxis.Unitized(), YAxis: yaxis.Unitized()}
}

// WorldXY returns the world coordinate frame.
func WorldXY() Frame {
	return Frame{
		XAxis: Vector{X: 1},
		YAxis: Vector{Y: 1},
	}
}

// ZAxis returns the frame normal, XAxis x YAxis.
func (f Frame) ZAxis() Vector {
	return f.XAxis.Cross(f.YAxis).Unitized()
}

// ToTransformation returns the change-of-basis transformation from frame
// coordinates to world coordinates: the frame axes become the matrix
// columns and the origin the translation.
func (f Frame) ToTransformation() Transformation {
	z := f.ZAxis()
	t := Identity()
	m := t.Matrix()
	m[0][0], m[1][0], m[2][0] = f.XAxis.X, f.XAxis.Y, f.XAxis.Z
	m[0][1], m[1][1], m[2][1] = f.YAxis.X, f.YAxis.Y, f.YAxis.Z
	m[0][2], m[1][2], m[2][2] = z.X, z.Y, z.Z
	m[0][3], m[1][3], m[2][3] = f.Origin.X, f.Origin.Y, f.Origin.Z
	return FromMatrix(m)
}
