package scene

import (
	"github.com/google/uuid"

	"cell-modeller/core"
	"cell-modeller/math"
)

// Per-step factors applied by Node.Scale.
const (
	GrowFactor   = 1.1
	ShrinkFactor = 0.9
)

// Node is an element of the scene graph. The two variants are *Primitive and
// *Group; renderers switch on the concrete type.
//
// A node's transform is its scaling followed by its translation. Children of a
// Group live in the frame that transform establishes.
type Node interface {
	ID() uuid.UUID
	Name() string

	ColorIndex() int
	Color() core.Color
	RotateColor(forward bool)

	Selected() bool
	Select(selected bool)
	ToggleSelected()

	Translate(dx, dy, dz float32)
	Scale(up bool)
	TranslationMatrix() math.Mat4
	ScalingMatrix() math.Mat4
	Transform() math.Mat4
	Position() math.Vec3
	Bounds() AABB

	// Pick tests the ray against the node's bounding box. ancestor maps the
	// node's parent frame to eye space.
	Pick(origin, direction math.Vec3, ancestor math.Mat4) (hit bool, distance float32)

	base() *nodeBase
}

// nodeBase carries the state shared by every variant.
type nodeBase struct {
	id         uuid.UUID
	name       string
	colorIndex int
	selected   bool
	aabb       AABB

	translation math.Mat4
	scaling     math.Mat4

	parent Node
}

func newNodeBase(id uuid.UUID, name string, colorIndex int) nodeBase {
	return nodeBase{
		id:          id,
		name:        name,
		colorIndex:  colorIndex,
		aabb:        NewAABB(math.Vec3Zero, math.Splat(0.5)),
		translation: math.Mat4Identity(),
		scaling:     math.Mat4Identity(),
	}
}

func (n *nodeBase) base() *nodeBase { return n }

func (n *nodeBase) ID() uuid.UUID  { return n.id }
func (n *nodeBase) Name() string   { return n.name }
func (n *nodeBase) Selected() bool { return n.selected }
func (n *nodeBase) Bounds() AABB   { return n.aabb }

func (n *nodeBase) ColorIndex() int   { return n.colorIndex }
func (n *nodeBase) Color() core.Color { return core.PaletteColor(n.colorIndex) }

// RotateColor steps through the palette, wrapping at either end.
func (n *nodeBase) RotateColor(forward bool) {
	if forward {
		n.colorIndex++
	} else {
		n.colorIndex--
	}
	if n.colorIndex > core.MaxColorIndex {
		n.colorIndex = core.MinColorIndex
	}
	if n.colorIndex < core.MinColorIndex {
		n.colorIndex = core.MaxColorIndex
	}
}

func (n *nodeBase) Select(selected bool) { n.selected = selected }
func (n *nodeBase) ToggleSelected()      { n.selected = !n.selected }

// Translate accumulates a displacement onto the node's translation.
func (n *nodeBase) Translate(dx, dy, dz float32) {
	n.translation = n.translation.Mul(math.Mat4Translation(math.NewVec3(dx, dy, dz)))
}

// Scale grows or shrinks the node by one step. Steps compound.
func (n *nodeBase) Scale(up bool) {
	s := float32(ShrinkFactor)
	if up {
		s = GrowFactor
	}
	n.applyScale(s)
}

func (n *nodeBase) applyScale(s float32) {
	n.scaling = n.scaling.Mul(math.Mat4Scale(math.Splat(s)))
	n.aabb.scale(s)
}

func (n *nodeBase) TranslationMatrix() math.Mat4 { return n.translation }
func (n *nodeBase) ScalingMatrix() math.Mat4     { return n.scaling }

// Transform maps the node's local frame into its parent's frame.
func (n *nodeBase) Transform() math.Mat4 {
	return n.scaling.Mul(n.translation)
}

// Position is the node's origin in its parent's frame.
func (n *nodeBase) Position() math.Vec3 {
	return math.NewVec3(n.translation[3][0], n.translation[3][1], n.translation[3][2])
}

// Pick composes the node's translation with ancestor and tests the bounding
// box in that frame. Scaling is already folded into the box's extents.
func (n *nodeBase) Pick(origin, direction math.Vec3, ancestor math.Mat4) (bool, float32) {
	return n.aabb.Intersect(origin, direction, n.translation.Mul(ancestor))
}
