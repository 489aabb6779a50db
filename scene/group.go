package scene

import (
	"github.com/pkg/errors"
)

// ErrHasParent is returned when adding a node that already belongs to a group.
var ErrHasParent = errors.New("node already has a parent")

// ErrCycle is returned when adding a group to itself or to one of its own
// descendants.
var ErrCycle = errors.New("node would contain itself")

// Group is a composite node. Its children are drawn in the group's frame, but
// picking only ever tests the group's own box: a hit selects the whole group.
type Group struct {
	nodeBase
	children []Node
}

// Children returns the children in draw order. The slice must not be modified.
func (g *Group) Children() []Node {
	return g.children
}

// Add appends child. A node belongs to at most one group and never sits
// below itself.
func (g *Group) Add(child Node) error {
	b := child.base()
	if b.parent != nil {
		return errors.Wrapf(ErrHasParent, "add %q to %q", b.name, g.name)
	}
	for p := Node(g); p != nil; p = p.base().parent {
		if p == child {
			return errors.Wrapf(ErrCycle, "add %q to %q", b.name, g.name)
		}
	}
	b.parent = g
	g.children = append(g.children, child)
	return nil
}

// SetBounds replaces the group's bounding box, usually to enclose its children.
func (g *Group) SetBounds(b AABB) {
	g.aabb = b
}
