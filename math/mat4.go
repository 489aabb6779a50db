package math

import "math"

// Mat4 is a 4x4 homogeneous transform in row-vector convention: a point p is
// transformed as p · M and translation lives in row 3. A.Mul(B) applies A
// first, then B.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// TransformPoint maps a position (w = 1) through m and divides by the
// resulting w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec(p.ToVec4(1)).ToVec3DivW()
}

// TransformVector maps a direction (w = 0) through m. No divide.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(0)).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Mat4Translation builds a matrix that displaces points by translation.
func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

// Mat4Scale builds a matrix that scales each axis independently.
func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

// Mat4RotationAxis is the closed-form rotation of angle radians about axis.
func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0},
		{t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0},
		{t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// singularEpsilon bounds the smallest usable pivot during inversion.
const singularEpsilon = 1e-12

// Inverse returns the inverse of m. ok is false when m is singular or contains
// non-finite values; the returned matrix is then the zero matrix.
//
// Gauss-Jordan elimination with partial pivoting, carried out in float64.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	var a [4][8]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v := float64(m[i][j])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Mat4{}, false
			}
			a[i][j] = v
		}
		a[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < singularEpsilon {
			return Mat4{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		p := a[col][col]
		for j := 0; j < 8; j++ {
			a[col][j] /= p
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 8; j++ {
				a[row][j] -= f * a[col][j]
			}
		}
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = float32(a[i][4+j])
		}
	}
	return inv, true
}

// ApproxEqual reports whether all entries of m are within eps of other.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if abs32(m[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
