package editor

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"cell-modeller/math"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < eps
}

func TestTrackballStartsAtIdentity(t *testing.T) {
	tb := NewTrackball()
	if tb.Rotation() != math.QuaternionIdentity() || tb.Matrix() != math.Mat4Identity() {
		t.Error("new trackball should have no rotation")
	}
}

func TestTrackballZeroDragIsNoOp(t *testing.T) {
	tb := NewTrackball()
	tb.Drag(12, -7)
	q, m := tb.Rotation(), tb.Matrix()
	tb.Drag(0, 0)
	if tb.Rotation() != q || tb.Matrix() != m {
		t.Error("a zero drag changed the trackball")
	}
}

func TestTrackballStaysUnit(t *testing.T) {
	tb := NewTrackball()
	for i := 0; i < 5000; i++ {
		tb.Drag(float32(i%17)-8, float32(i%11)-5)
		if n := tb.Rotation().Length(); stdmath.Abs(float64(n-1)) > 1e-6 {
			t.Fatalf("drag %d: quaternion norm %v", i, n)
		}
	}
	if !tb.Matrix().ApproxEqual(tb.Rotation().ToMat4(), 1e-6) {
		t.Error("matrix out of sync with quaternion")
	}
}

func TestTrackballYaw(t *testing.T) {
	tb := NewTrackball()
	// 180 px at half a degree per pixel is a quarter turn about +Y
	tb.Drag(180, 0)

	want := mgl32.QuatRotate(stdmath.Pi/2, mgl32.Vec3{0, 1, 0}).Mat4()
	if !tb.Matrix().ApproxEqual(math.Mat4FromGL(want), eps) {
		t.Errorf("expected\n%v\ngot\n%v", want, tb.Matrix().GL())
	}
	// row vector: +X rotates onto -Z
	if got := tb.Matrix().TransformVector(math.Vec3Right); !got.ApproxEqual(math.Vec3Back, eps) {
		t.Errorf("expected +X to map to -Z, got %v", got)
	}
}

func TestTrackballComposesYawOutsidePitch(t *testing.T) {
	tb := NewTrackball()
	tb.Drag(30, 50)
	tb.Drag(-10, 20)

	pitch1 := mgl32.QuatRotate(mgl32.DegToRad(25), mgl32.Vec3{1, 0, 0})
	yaw1 := mgl32.QuatRotate(mgl32.DegToRad(15), mgl32.Vec3{0, 1, 0})
	pitch2 := mgl32.QuatRotate(mgl32.DegToRad(10), mgl32.Vec3{1, 0, 0})
	yaw2 := mgl32.QuatRotate(mgl32.DegToRad(-5), mgl32.Vec3{0, 1, 0})
	want := yaw2.Mul(pitch2).Mul(yaw1.Mul(pitch1)).Normalize()

	got := tb.Rotation()
	if !approx(got.X, want.V[0]) || !approx(got.Y, want.V[1]) || !approx(got.Z, want.V[2]) || !approx(got.W, want.W) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTrackballReset(t *testing.T) {
	tb := NewTrackball()
	tb.Drag(40, 40)
	tb.Reset()
	if tb.Rotation() != math.QuaternionIdentity() || tb.Matrix() != math.Mat4Identity() {
		t.Error("reset should restore identity")
	}
}

func BenchmarkTrackballDrag(b *testing.B) {
	tb := NewTrackball()
	for i := 0; i < b.N; i++ {
		tb.Drag(3, -2)
	}
}
