package geometry

import (
	"cell-modeller/math"
)

// DrawMode selects the primitive type a renderer uses for a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawQuads
	DrawLines
)

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds CPU-side geometry. Meshes in a Registry are shared by every node
// of that kind and must not be modified.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	DrawMode DrawMode

	Min, Max math.Vec3
}

// NewMesh builds a Mesh and computes its local-space bounds.
func NewMesh(name string, vertices []Vertex, indices []uint32, mode DrawMode) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		DrawMode: mode,
	}
	if len(vertices) > 0 {
		m.Min, m.Max = vertices[0].Position, vertices[0].Position
		for _, v := range vertices[1:] {
			m.Min = m.Min.MinComponent(v.Position)
			m.Max = m.Max.MaxComponent(v.Position)
		}
	}
	return m
}

// Bounds returns the center and half-extents of the mesh's bounding box.
func (m *Mesh) Bounds() (center, halfExtents math.Vec3) {
	center = m.Min.Add(m.Max).Mul(0.5)
	halfExtents = m.Max.Sub(m.Min).Mul(0.5)
	return center, halfExtents
}

// TriangleIndices returns the index list with quads split into two triangles
// each. Triangle and line meshes are returned unchanged.
func (m *Mesh) TriangleIndices() []uint32 {
	if m.DrawMode != DrawQuads {
		return m.Indices
	}
	out := make([]uint32, 0, len(m.Indices)/4*6)
	for i := 0; i+3 < len(m.Indices); i += 4 {
		a, b, c, d := m.Indices[i], m.Indices[i+1], m.Indices[i+2], m.Indices[i+3]
		out = append(out, a, b, c, a, c, d)
	}
	return out
}
