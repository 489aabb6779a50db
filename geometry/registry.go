package geometry

import (
	"sort"

	"cell-modeller/math"
)

// Kind names a shape in the Registry.
type Kind string

const (
	KindSphere Kind = "sphere"
	KindCube   Kind = "cube"
	KindGrid   Kind = "grid"
)

// Entry is one registered shape: its mesh and nominal local bounds.
type Entry struct {
	Kind        Kind
	Mesh        *Mesh
	Center      math.Vec3
	HalfExtents math.Vec3
}

// Registry maps shape kinds to shared geometry. It is built once, before any
// scene exists, and is read-only afterwards.
type Registry struct {
	entries map[Kind]Entry
}

// Option adds shapes to a Registry under construction.
type Option func(map[Kind]Entry)

// WithMesh registers mesh under kind, bounded by the mesh's own extents.
// A built-in kind of the same name is replaced.
func WithMesh(kind Kind, mesh *Mesh) Option {
	return func(entries map[Kind]Entry) {
		center, half := mesh.Bounds()
		entries[kind] = Entry{Kind: kind, Mesh: mesh, Center: center, HalfExtents: half}
	}
}

// NewRegistry builds the built-in sphere, cube and grid shapes plus any extra
// shapes supplied as options. Sphere and cube both span [-0.5, 0.5] on every
// axis.
func NewRegistry(opts ...Option) *Registry {
	unit := math.Splat(0.5)
	entries := map[Kind]Entry{
		KindSphere: {Kind: KindSphere, Mesh: CreateSphere(0.5, 30, 30), HalfExtents: unit},
		KindCube:   {Kind: KindCube, Mesh: CreateCube(1), HalfExtents: unit},
		KindGrid:   {Kind: KindGrid, Mesh: CreateGrid(20), HalfExtents: math.NewVec3(20, 0, 20)},
	}
	for _, opt := range opts {
		opt(entries)
	}
	return &Registry{entries: entries}
}

// Lookup returns the entry registered for kind.
func (r *Registry) Lookup(kind Kind) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Placeable reports whether kind can be instantiated as a scene primitive.
// The grid is scenery only.
func (r *Registry) Placeable(kind Kind) bool {
	_, ok := r.entries[kind]
	return ok && kind != KindGrid
}

// Kinds lists registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
