package geometry

import (
	stdmath "math"

	"cell-modeller/math"
)

// CreateSphere generates a UV-sphere as an indexed triangle list.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			sinTheta := float32(stdmath.Sin(theta))
			cosTheta := float32(stdmath.Cos(theta))

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			vertices = append(vertices, Vertex{Position: normal.Mul(radius), Normal: normal})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return NewMesh("Sphere", vertices, indices, DrawTriangles)
}

// CreateCube generates an axis-aligned cube of the given edge length centered
// on the origin, one quad per face with outward normals.
func CreateCube(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.NewVec3(0, 0, 1), [4]math.Vec3{math.NewVec3(-h, -h, h), math.NewVec3(h, -h, h), math.NewVec3(h, h, h), math.NewVec3(-h, h, h)}},
		{math.NewVec3(0, 0, -1), [4]math.Vec3{math.NewVec3(-h, -h, -h), math.NewVec3(-h, h, -h), math.NewVec3(h, h, -h), math.NewVec3(h, -h, -h)}},
		{math.NewVec3(0, 1, 0), [4]math.Vec3{math.NewVec3(-h, h, -h), math.NewVec3(-h, h, h), math.NewVec3(h, h, h), math.NewVec3(h, h, -h)}},
		{math.NewVec3(0, -1, 0), [4]math.Vec3{math.NewVec3(-h, -h, -h), math.NewVec3(h, -h, -h), math.NewVec3(h, -h, h), math.NewVec3(-h, -h, h)}},
		{math.NewVec3(1, 0, 0), [4]math.Vec3{math.NewVec3(h, -h, -h), math.NewVec3(h, h, -h), math.NewVec3(h, h, h), math.NewVec3(h, -h, h)}},
		{math.NewVec3(-1, 0, 0), [4]math.Vec3{math.NewVec3(-h, -h, -h), math.NewVec3(-h, -h, h), math.NewVec3(-h, h, h), math.NewVec3(-h, h, -h)}},
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 24)
	for _, f := range faces {
		for _, c := range f.corners {
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, Vertex{Position: c, Normal: f.normal})
		}
	}
	return NewMesh("Cube", vertices, indices, DrawQuads)
}

// CreateGrid builds line pairs on the XZ plane at every integer offset in
// [-extent, extent].
func CreateGrid(extent int) *Mesh {
	if extent < 1 {
		extent = 1
	}
	e := float32(extent)

	var vertices []Vertex
	var indices []uint32

	addLine := func(a, b math.Vec3) {
		base := uint32(len(vertices))
		vertices = append(vertices,
			Vertex{Position: a, Normal: math.Vec3Up},
			Vertex{Position: b, Normal: math.Vec3Up},
		)
		indices = append(indices, base, base+1)
	}

	for i := -extent; i <= extent; i++ {
		f := float32(i)
		addLine(math.Vec3{X: f, Z: -e}, math.Vec3{X: f, Z: e})
		addLine(math.Vec3{X: -e, Z: f}, math.Vec3{X: e, Z: f})
	}

	return NewMesh("Grid", vertices, indices, DrawLines)
}
