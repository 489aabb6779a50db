package editor

import (
	"cell-modeller/math"
)

// TrackballSensitivity is the rotation in degrees per pixel of drag.
const TrackballSensitivity = 0.5

// Trackball turns mouse drags into an accumulated camera orientation.
// The quaternion is renormalized after every drag and the matrix is always
// derived from it.
type Trackball struct {
	rotation math.Quaternion
	matrix   math.Mat4
}

func NewTrackball() *Trackball {
	return &Trackball{
		rotation: math.QuaternionIdentity(),
		matrix:   math.Mat4Identity(),
	}
}

// Drag pitches by dy and yaws by dx. The yaw is composed outermost:
// q = yaw ⊗ pitch ⊗ q.
func (t *Trackball) Drag(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	pitch := math.QuaternionFromAxisAngle(math.Vec3Right, math.DegToRad(dy*TrackballSensitivity))
	yaw := math.QuaternionFromAxisAngle(math.Vec3Up, math.DegToRad(dx*TrackballSensitivity))

	t.rotation = yaw.Mul(pitch).Mul(t.rotation).Normalize()
	t.matrix = t.rotation.ToMat4()
}

func (t *Trackball) Rotation() math.Quaternion { return t.rotation }

// Matrix is the rotation as a row-vector transform.
func (t *Trackball) Matrix() math.Mat4 { return t.matrix }

// Reset returns to the initial orientation.
func (t *Trackball) Reset() {
	t.rotation = math.QuaternionIdentity()
	t.matrix = math.Mat4Identity()
}
