package math

import "github.com/go-gl/mathgl/mgl32"

// GL returns m as an mgl32 matrix. A row-vector Mat4 flattened row-major is
// exactly the column-major layout OpenGL and mgl32 expect, so p · m here equals
// m.GL().Mul4x1(p) there.
func (m Mat4) GL() mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m[i][j]
		}
	}
	return out
}

// Mat4FromGL is the inverse of Mat4.GL.
func Mat4FromGL(g mgl32.Mat4) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = g[i*4+j]
		}
	}
	return m
}

func (v Vec3) GL() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func Vec3FromGL(v mgl32.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
