package scene

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"cell-modeller/geometry"
	"cell-modeller/math"
)

// DefaultPlaceDepth is how far along the ray new primitives are placed.
const DefaultPlaceDepth = 15.0

// Scene is an ordered list of root nodes plus the current selection.
// Insertion order is draw order and breaks ties when picking.
type Scene struct {
	PlaceDepth float32

	builder  *Builder
	nodes    []Node
	selected Node

	// Where the selection ray hit, kept so drags stay at a constant depth.
	pickDepth float32
	pickPoint math.Vec3
}

func New(builder *Builder) *Scene {
	return &Scene{
		PlaceDepth: DefaultPlaceDepth,
		builder:    builder,
		nodes:      make([]Node, 0),
	}
}

func (s *Scene) Builder() *Builder { return s.builder }

// Add appends a root node. Duplicates are not checked.
func (s *Scene) Add(node Node) {
	s.nodes = append(s.nodes, node)
}

// Nodes returns the root nodes in draw order. The slice must not be modified.
func (s *Scene) Nodes() []Node { return s.nodes }

func (s *Scene) Len() int { return len(s.nodes) }

// Selected returns the selected node, or nil.
func (s *Scene) Selected() Node { return s.selected }

// PickDepth is the ray distance at which the current selection was hit.
func (s *Scene) PickDepth() float32 { return s.pickDepth }

// Pick selects the root node nearest along the ray, replacing any previous
// selection. camera maps world to eye space. When nothing is hit the
// selection is cleared and nil is returned.
func (s *Scene) Pick(origin, direction math.Vec3, camera math.Mat4) Node {
	if s.selected != nil {
		s.selected.Select(false)
		s.selected = nil
	}

	var closest Node
	var minDist float32
	for _, node := range s.nodes {
		hit, dist := node.Pick(origin, direction, camera)
		if hit && (closest == nil || dist < minDist) {
			closest, minDist = node, dist
		}
	}
	if closest == nil {
		return nil
	}

	closest.Select(true)
	s.selected = closest
	s.pickDepth = minDist
	s.pickPoint = origin.Add(direction.Mul(minDist))
	return closest
}

// MoveSelected drags the selection so the point under the ray stays at the
// recorded pick depth. inverseCamera maps eye to world space.
func (s *Scene) MoveSelected(origin, direction math.Vec3, inverseCamera math.Mat4) {
	if s.selected == nil {
		return
	}
	newPoint := origin.Add(direction.Mul(s.pickDepth))
	delta := inverseCamera.TransformVector(newPoint.Sub(s.pickPoint))
	s.selected.Translate(delta.X, delta.Y, delta.Z)
	s.pickPoint = newPoint
}

func (s *Scene) RotateSelectedColor(forward bool) {
	if s.selected == nil {
		return
	}
	s.selected.RotateColor(forward)
}

func (s *Scene) ScaleSelected(up bool) {
	if s.selected == nil {
		return
	}
	s.selected.Scale(up)
}

// Place builds a primitive of the given kind PlaceDepth along the ray and adds
// it to the scene. On error the scene is unchanged.
func (s *Scene) Place(kind geometry.Kind, origin, direction math.Vec3, inverseCamera math.Mat4) (Node, error) {
	node, err := s.builder.Primitive(kind)
	if err != nil {
		return nil, errors.Wrap(err, "place")
	}
	at := inverseCamera.TransformPoint(origin.Add(direction.Mul(s.PlaceDepth)))
	node.Translate(at.X, at.Y, at.Z)
	s.Add(node)
	return node, nil
}

// NewSampleScene adds one cell at each position.
func NewSampleScene(builder *Builder, positions []math.Vec3, opts CellOptions) (*Scene, error) {
	s := New(builder)
	for i, pos := range positions {
		cell, err := builder.Cell(opts)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", i)
		}
		cell.Translate(pos.X, pos.Y, pos.Z)
		s.Add(cell)
	}
	return s, nil
}

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type nodeSummary struct {
	Name       string
	Kind       string
	Position   math.Vec3
	Scale      float32
	ColorIndex int
	Selected   bool
	Children   []nodeSummary
}

func summarize(n Node) nodeSummary {
	sum := nodeSummary{
		Name:       n.Name(),
		Position:   n.Position(),
		Scale:      n.ScalingMatrix()[0][0],
		ColorIndex: n.ColorIndex(),
		Selected:   n.Selected(),
	}
	switch v := n.(type) {
	case *Primitive:
		sum.Kind = string(v.Kind())
	case *Group:
		sum.Kind = "group"
		for _, c := range v.Children() {
			sum.Children = append(sum.Children, summarize(c))
		}
	}
	return sum
}

// Dump renders the node tree for debugging.
func (s *Scene) Dump() string {
	roots := make([]nodeSummary, 0, len(s.nodes))
	for _, n := range s.nodes {
		roots = append(roots, summarize(n))
	}
	return spewConfig.Sdump(roots)
}
