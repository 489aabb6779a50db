package scene

import (
	stdmath "math"

	"github.com/pkg/errors"

	"cell-modeller/math"
)

// ErrInvalidScale is returned for non-positive or non-finite scale factors.
var ErrInvalidScale = errors.New("scale factor must be positive")

// AABB is an axis-aligned box in a node's local space. Size holds the
// half-extents and is never negative.
type AABB struct {
	Center math.Vec3
	Size   math.Vec3
}

func NewAABB(center, size math.Vec3) AABB {
	return AABB{Center: center, Size: size}
}

func (b AABB) Min() math.Vec3 { return b.Center.Sub(b.Size) }
func (b AABB) Max() math.Vec3 { return b.Center.Add(b.Size) }

// Scale multiplies the half-extents by factor. The center is unchanged.
func (b *AABB) Scale(factor float32) error {
	if !(factor > 0) || stdmath.IsInf(float64(factor), 0) {
		return errors.Wrapf(ErrInvalidScale, "got %v", factor)
	}
	b.scale(factor)
	return nil
}

func (b *AABB) scale(factor float32) {
	b.Size = b.Size.Mul(factor)
}

// Intersect tests a ray given in eye space against the box. localToEye maps
// the box's local frame to eye space; the ray is carried back through its
// inverse and the direction renormalized there, so the returned distance is
// measured in local units. A singular transform or a direction that collapses
// to zero is reported as a miss.
func (b AABB) Intersect(origin, direction math.Vec3, localToEye math.Mat4) (hit bool, distance float32) {
	eyeToLocal, ok := localToEye.Inverse()
	if !ok {
		return false, 0
	}

	start := eyeToLocal.TransformPoint(origin)
	dir := eyeToLocal.TransformVector(direction)
	norm := dir.Length()
	if norm == 0 || stdmath.IsNaN(float64(norm)) {
		return false, 0
	}
	dir = dir.Mul(1 / norm)

	tMin := float32(stdmath.Inf(-1))
	tMax := float32(stdmath.Inf(1))
	lo, hi := b.Min(), b.Max()

	for i := 0; i < 3; i++ {
		d, s := dir.Axis(i), start.Axis(i)
		if d != 0 {
			t1 := (lo.Axis(i) - s) / d
			t2 := (hi.Axis(i) - s) / d
			tMin = max(tMin, min(t1, t2))
			tMax = min(tMax, max(t1, t2))
		} else if s < lo.Axis(i) || s > hi.Axis(i) {
			return false, 0
		}
	}

	if tMax >= tMin && tMax >= 0 {
		if tMin > 0 {
			return true, tMin
		}
		return true, tMax
	}
	return false, 0
}
