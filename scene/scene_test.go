package scene

import (
	stdmath "math"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"cell-modeller/geometry"
	"cell-modeller/math"
)

func TestPickSingleSphere(t *testing.T) {
	b := newTestBuilder(1)
	s := New(b)
	sphere := mustPrimitive(t, b, geometry.KindSphere)
	s.Add(sphere)

	got := s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())
	if got != Node(sphere) {
		t.Fatalf("expected the sphere to be picked, got %v", got)
	}
	if !sphere.Selected() || s.Selected() != Node(sphere) {
		t.Error("sphere should be selected")
	}
	if !approx(s.PickDepth(), 4.5) {
		t.Errorf("expected pick depth 4.5, got %v", s.PickDepth())
	}

	if got := s.Pick(math.NewVec3(2, 0, 5), math.Vec3Back, math.Mat4Identity()); got != nil {
		t.Errorf("expected a miss, got %v", got.Name())
	}
	if sphere.Selected() || s.Selected() != nil {
		t.Error("a miss should clear the selection")
	}
}

// twoNodes returns a scene with a sphere at the origin and a cube at z=1,
// nearer to a camera looking down -z.
func twoNodes(t *testing.T) (*Scene, *Primitive, *Primitive) {
	b := newTestBuilder(2)
	s := New(b)
	sphere := mustPrimitive(t, b, geometry.KindSphere)
	cube := mustPrimitive(t, b, geometry.KindCube)
	cube.Translate(0, 0, 1)
	s.Add(sphere)
	s.Add(cube)
	return s, sphere, cube
}

func TestPickNearestAndDeselectPrevious(t *testing.T) {
	s, sphere, cube := twoNodes(t)

	// from below at z=0 only the sphere is in the way
	if got := s.Pick(math.NewVec3(0, -5, 0), math.Vec3Up, math.Mat4Identity()); got != Node(sphere) {
		t.Fatalf("expected sphere, got %v", got)
	}

	if got := s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity()); got != Node(cube) {
		t.Fatalf("expected the nearer cube, got %v", got)
	}
	if sphere.Selected() {
		t.Error("previous selection should be cleared")
	}
	if !cube.Selected() || !approx(s.PickDepth(), 3.5) {
		t.Errorf("expected cube selected at depth 3.5, got %v at %v", cube.Selected(), s.PickDepth())
	}
}

func TestPickTieGoesToFirst(t *testing.T) {
	b := newTestBuilder(3)
	s := New(b)
	first := mustPrimitive(t, b, geometry.KindCube)
	second := mustPrimitive(t, b, geometry.KindCube)
	s.Add(first)
	s.Add(second)
	if got := s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity()); got != Node(first) {
		t.Errorf("expected the first node on a tie")
	}
}

func TestRepickSameNodeStaysSelected(t *testing.T) {
	s, _, cube := twoNodes(t)
	s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())
	s.Pick(math.NewVec3(0.1, 0, 5), math.Vec3Back, math.Mat4Identity())
	if !cube.Selected() || s.Selected() != Node(cube) {
		t.Error("picking the selected node again should keep it selected")
	}
}

func TestMoveSelected(t *testing.T) {
	s, sphere, cube := twoNodes(t)
	s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())

	s.MoveSelected(math.NewVec3(1, 0, 5), math.Vec3Back, math.Mat4Identity())
	if want := math.NewVec3(1, 0, 1); !cube.Position().ApproxEqual(want, eps) {
		t.Errorf("expected cube at %v, got %v", want, cube.Position())
	}

	// moves are relative to the last drag point, not the first pick
	s.MoveSelected(math.NewVec3(3, 0.5, 5), math.Vec3Back, math.Mat4Identity())
	if want := math.NewVec3(3, 0.5, 1); !cube.Position().ApproxEqual(want, eps) {
		t.Errorf("expected cube at %v, got %v", want, cube.Position())
	}
	if sphere.Position() != math.Vec3Zero {
		t.Error("unselected node should not move")
	}
}

func TestMoveSelectedThroughRotatedCamera(t *testing.T) {
	b := newTestBuilder(4)
	s := New(b)
	sphere := mustPrimitive(t, b, geometry.KindSphere)
	s.Add(sphere)

	camera := math.Mat4RotationAxis(math.Vec3Up, stdmath.Pi/2)
	inverse, ok := camera.Inverse()
	if !ok {
		t.Fatal("rotation should be invertible")
	}
	if s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, camera) == nil {
		t.Fatal("expected a hit")
	}
	// eye +X is world +Z under this camera
	s.MoveSelected(math.NewVec3(1, 0, 5), math.Vec3Back, inverse)
	if want := math.NewVec3(0, 0, 1); !sphere.Position().ApproxEqual(want, eps) {
		t.Errorf("expected %v, got %v", want, sphere.Position())
	}
}

func TestOperationsWithoutSelectionAreNoOps(t *testing.T) {
	s, sphere, cube := twoNodes(t)
	colors := []int{sphere.ColorIndex(), cube.ColorIndex()}

	s.MoveSelected(math.NewVec3(1, 0, 5), math.Vec3Back, math.Mat4Identity())
	s.RotateSelectedColor(true)
	s.ScaleSelected(true)

	if sphere.Position() != math.Vec3Zero || cube.Position() != math.NewVec3(0, 0, 1) {
		t.Error("nodes moved without a selection")
	}
	if sphere.ColorIndex() != colors[0] || cube.ColorIndex() != colors[1] {
		t.Error("colors changed without a selection")
	}
	if sphere.ScalingMatrix() != math.Mat4Identity() || cube.ScalingMatrix() != math.Mat4Identity() {
		t.Error("scale changed without a selection")
	}
}

func TestSelectedColorAndScale(t *testing.T) {
	s, sphere, cube := twoNodes(t)
	s.Pick(math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())

	before := cube.ColorIndex()
	s.RotateSelectedColor(false)
	s.RotateSelectedColor(false)
	s.RotateSelectedColor(true)
	if want := (before + 7) % 8; cube.ColorIndex() != want {
		t.Errorf("expected color %d, got %d", want, cube.ColorIndex())
	}

	s.ScaleSelected(false)
	if got := cube.Bounds().Size.X; !approx(got, 0.45) {
		t.Errorf("expected half-extent 0.45, got %v", got)
	}
	if sphere.ScalingMatrix() != math.Mat4Identity() {
		t.Error("only the selection should scale")
	}
}

func TestPlace(t *testing.T) {
	s := New(newTestBuilder(5))
	s.PlaceDepth = 10

	node, err := s.Place(geometry.KindCube, math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 || s.Nodes()[0] != node {
		t.Fatalf("expected exactly one new node, got %d", s.Len())
	}
	p, ok := node.(*Primitive)
	if !ok || p.Kind() != geometry.KindCube {
		t.Fatalf("expected a cube primitive, got %T", node)
	}
	if want := math.NewVec3(0, 0, -5); !p.Position().ApproxEqual(want, eps) {
		t.Errorf("expected %v, got %v", want, p.Position())
	}
}

func TestPlaceThroughCamera(t *testing.T) {
	s := New(newTestBuilder(6))
	// eye space sits 15 units in front of the world origin
	inverse := math.Mat4Translation(math.NewVec3(0, 0, 15))
	node, err := s.Place(geometry.KindSphere, math.Vec3Zero, math.Vec3Back, inverse)
	if err != nil {
		t.Fatal(err)
	}
	if !node.Position().ApproxEqual(math.Vec3Zero, eps) {
		t.Errorf("expected the world origin, got %v", node.Position())
	}
}

func TestPlaceUnknownKind(t *testing.T) {
	s := New(newTestBuilder(7))
	node, err := s.Place("torus", math.NewVec3(0, 0, 5), math.Vec3Back, math.Mat4Identity())
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if node != nil || s.Len() != 0 {
		t.Error("the scene should be unchanged")
	}
}

func TestSampleScene(t *testing.T) {
	positions := []math.Vec3{{}, {Y: 1}, {Z: 1}, {Z: 2}}
	s, err := NewSampleScene(newTestBuilder(8), positions, DefaultCellOptions())
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(positions) {
		t.Fatalf("expected %d cells, got %d", len(positions), s.Len())
	}
	for i, n := range s.Nodes() {
		if n.Position() != positions[i] {
			t.Errorf("cell %d: expected %v, got %v", i, positions[i], n.Position())
		}
		if _, ok := n.(*Group); !ok {
			t.Errorf("cell %d: expected a group, got %T", i, n)
		}
	}

	// the cell at z=2 is nearest a camera on +z
	if got := s.Pick(math.NewVec3(0, 0, 10), math.Vec3Back, math.Mat4Identity()); got != s.Nodes()[3] {
		t.Error("expected the nearest cell to be picked")
	}
}

func TestDump(t *testing.T) {
	s, sphere, cube := twoNodes(t)
	out := s.Dump()
	for _, name := range []string{sphere.Name(), cube.Name(), "cube"} {
		if !strings.Contains(out, name) {
			t.Errorf("dump is missing %q:\n%s", name, out)
		}
	}
}
