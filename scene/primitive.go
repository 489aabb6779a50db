package scene

import (
	"cell-modeller/geometry"
)

// Primitive is a leaf node drawn from a shared registry mesh.
type Primitive struct {
	nodeBase
	kind geometry.Kind
	mesh *geometry.Mesh
}

func (p *Primitive) Kind() geometry.Kind  { return p.kind }
func (p *Primitive) Mesh() *geometry.Mesh { return p.mesh }
