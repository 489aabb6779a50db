package scene

import (
	stdmath "math"

	"github.com/pkg/errors"

	"cell-modeller/geometry"
	"cell-modeller/math"
)

// CellOptions shapes a cell composite.
type CellOptions struct {
	Bumps     int     // number of bump spheres on the body surface
	BumpScale float32 // size of each bump relative to the body
}

func DefaultCellOptions() CellOptions {
	return CellOptions{Bumps: 15, BumpScale: 0.3}
}

const (
	cellBodyRadius = 0.5
	cellHalfExtent = 0.7
)

// Cell builds a group of one body sphere with bump spheres scattered over its
// surface. The group's box encloses the body plus the bumps.
func (b *Builder) Cell(opts CellOptions) (*Group, error) {
	if opts.Bumps < 0 {
		return nil, errors.Errorf("negative bump count %d", opts.Bumps)
	}
	if !(opts.BumpScale > 0) {
		return nil, errors.Wrapf(ErrInvalidScale, "bump scale %v", opts.BumpScale)
	}

	cell := b.Group("cell")

	body, err := b.Primitive(geometry.KindSphere)
	if err != nil {
		return nil, errors.Wrap(err, "cell body")
	}
	if err := cell.Add(body); err != nil {
		return nil, err
	}

	for i := 0; i < opts.Bumps; i++ {
		bump, err := b.Primitive(geometry.KindSphere)
		if err != nil {
			return nil, errors.Wrapf(err, "cell bump %d", i)
		}
		p := b.surfacePoint(cellBodyRadius)
		bump.Translate(p.X, p.Y, p.Z)
		bump.applyScale(opts.BumpScale)
		if err := cell.Add(bump); err != nil {
			return nil, err
		}
	}

	cell.SetBounds(NewAABB(math.Vec3Zero, math.Splat(cellHalfExtent)))
	return cell, nil
}

// surfacePoint draws spherical angles uniformly and returns the matching
// point on a sphere of the given radius.
func (b *Builder) surfacePoint(radius float64) math.Vec3 {
	theta := b.rng.Float64() * 2 * stdmath.Pi
	phi := b.rng.Float64() * stdmath.Pi
	return math.NewVec3(
		float32(radius*stdmath.Sin(phi)*stdmath.Cos(theta)),
		float32(radius*stdmath.Sin(phi)*stdmath.Sin(theta)),
		float32(radius*stdmath.Cos(phi)),
	)
}
