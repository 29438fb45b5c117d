package graphics

import "math"

// Matrix is a 2D affine transform mapping (x, y) to
// (A*x + C*y + E, B*x + D*y + F).
//
// Translate, Rotate and Scale concatenate on the local side, matching canvas
// semantics: the most recently appended operation is applied to points first.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// TranslateMatrix returns a pure translation.
func TranslateMatrix(dx, dy float64) Matrix {
	return Matrix{A: 1, D: 1, E: dx, F: dy}
}

// RotateMatrix returns a rotation by radians about the origin.
func RotateMatrix(radians float64) Matrix {
	sin, cos := math.Sincos(radians)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// ScaleMatrix returns a scale about the origin.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Multiply returns m × other; other is applied to points first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// Translate appends a translation.
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Multiply(TranslateMatrix(dx, dy))
}

// Rotate appends a rotation by radians.
func (m Matrix) Rotate(radians float64) Matrix {
	return m.Multiply(RotateMatrix(radians))
}

// Scale appends a scale.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(ScaleMatrix(sx, sy))
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Matrix{}, false
	}
	inv = Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
	inv.E = -(inv.A*m.E + inv.C*m.F)
	inv.F = -(inv.B*m.E + inv.D*m.F)
	return inv, true
}

// TransformPoint maps p through the transform.
func (m Matrix) TransformPoint(p Offset) Offset {
	return Offset{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// TransformRect returns the axis-aligned bounds of r after transformation.
func (m Matrix) TransformRect(r Rect) Rect {
	p0 := m.TransformPoint(Offset{X: r.Left, Y: r.Top})
	out := Rect{Left: p0.X, Top: p0.Y, Right: p0.X, Bottom: p0.Y}
	for _, c := range [3]Offset{
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	} {
		p := m.TransformPoint(c)
		out.Left = math.Min(out.Left, p.X)
		out.Top = math.Min(out.Top, p.Y)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Max(out.Bottom, p.Y)
	}
	return out
}

// TranslationOnly reports whether the linear part is the identity.
func (m Matrix) TranslationOnly() bool {
	return floatEqual(m.A, 1) && floatEqual(m.B, 0) && floatEqual(m.C, 0) && floatEqual(m.D, 1)
}

// ApproxEqual compares all six coefficients within tolerance.
func (m Matrix) ApproxEqual(other Matrix) bool {
	return floatEqual(m.A, other.A) && floatEqual(m.B, other.B) &&
		floatEqual(m.C, other.C) && floatEqual(m.D, other.D) &&
		floatEqual(m.E, other.E) && floatEqual(m.F, other.F)
}

// decompose splits the linear part into rotation, x-shear and scale so that
// the matrix equals Translate(E, F) · Rotate(theta) · ShearX(k) · Scale(sx, sy).
func (m Matrix) decompose() (theta, k, sx, sy float64) {
	sx = math.Hypot(m.A, m.B)
	if sx == 0 {
		return 0, 0, 0, 0
	}
	theta = math.Atan2(m.B, m.A)
	sin, cos := math.Sincos(theta)
	c := cos*m.C + sin*m.D
	sy = -sin*m.C + cos*m.D
	if sy != 0 {
		k = c / sy
	}
	return theta, k, sx, sy
}
