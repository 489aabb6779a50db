package editor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"cell-modeller/geometry"
	"cell-modeller/math"
	"cell-modeller/scene"
)

// Window depths at which rays are unprojected.
const (
	rayNearDepth = 0.001
	rayFarDepth  = 0.999
)

// Camera describes the fixed projection. The eye sits Distance units in front
// of the scene origin before trackball rotation and panning are applied.
type Camera struct {
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
	Distance float32
}

func DefaultCamera() Camera {
	return Camera{FOV: 70, Near: 0.1, Far: 1000, Distance: 15}
}

// Viewer connects window input to a Scene. It owns the camera state and
// converts window coordinates into eye space rays.
type Viewer struct {
	Scene       *scene.Scene
	Interaction *Interaction
	Camera      Camera

	width, height int

	modelView        math.Mat4
	inverseModelView math.Mat4

	// LastError is the most recent failed placement, if any.
	LastError error
}

// NewViewer creates a viewer for a window of the given size and binds the
// interaction callbacks to the scene.
func NewViewer(s *scene.Scene, camera Camera, width, height int) *Viewer {
	v := &Viewer{
		Scene:            s,
		Interaction:      NewInteraction(height),
		Camera:           camera,
		width:            width,
		height:           height,
		modelView:        math.Mat4Identity(),
		inverseModelView: math.Mat4Identity(),
	}
	v.Interaction.Callbacks = Callbacks{
		Pick:        v.Pick,
		Move:        v.Move,
		Place:       v.placeCallback,
		RotateColor: v.Scene.RotateSelectedColor,
		Scale:       v.Scene.ScaleSelected,
	}
	return v
}

// Resize records the new framebuffer size.
func (v *Viewer) Resize(width, height int) {
	v.width, v.height = width, height
	v.Interaction.SetHeight(height)
}

func (v *Viewer) Size() (int, int) { return v.width, v.height }

func (v *Viewer) aspect() float32 {
	if v.height <= 0 {
		return 1
	}
	return float32(v.width) / float32(v.height)
}

// Projection is the perspective followed by the pull back to Distance, in
// OpenGL layout.
func (v *Viewer) Projection() mgl32.Mat4 {
	c := v.Camera
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), v.aspect(), c.Near, c.Far).
		Mul4(mgl32.Translate3D(0, 0, -c.Distance))
}

// UpdateCamera recomputes the model-view from the trackball and pan. The
// renderer calls it once per frame; queries call it before use.
func (v *Viewer) UpdateCamera() {
	v.modelView = v.Interaction.Trackball.Matrix().
		Mul(math.Mat4Translation(v.Interaction.Translation))
	if inv, ok := v.modelView.Inverse(); ok {
		v.inverseModelView = inv
	}
}

// ModelView maps world space into eye space.
func (v *Viewer) ModelView() math.Mat4 { return v.modelView }

// InverseModelView maps eye space back to world space.
func (v *Viewer) InverseModelView() math.Mat4 { return v.inverseModelView }

// Ray builds the eye space ray under window position (x, y), origin bottom
// left. The direction is zero when the projection cannot be inverted.
func (v *Viewer) Ray(x, y float32) (origin, direction math.Vec3) {
	proj := v.Projection()
	ident := mgl32.Ident4()
	near, err := mgl32.UnProject(mgl32.Vec3{x, y, rayNearDepth}, ident, proj, 0, 0, v.width, v.height)
	if err != nil {
		return math.Vec3Zero, math.Vec3Zero
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, y, rayFarDepth}, ident, proj, 0, 0, v.width, v.height)
	if err != nil {
		return math.Vec3Zero, math.Vec3Zero
	}
	origin = math.Vec3FromGL(near)
	direction = math.Vec3FromGL(far).Sub(origin).Normalize()
	return origin, direction
}

// Pick selects the node under the cursor.
func (v *Viewer) Pick(x, y float32) {
	v.UpdateCamera()
	origin, direction := v.Ray(x, y)
	v.Scene.Pick(origin, direction, v.modelView)
}

// Move drags the selection to follow the cursor.
func (v *Viewer) Move(x, y float32) {
	v.UpdateCamera()
	origin, direction := v.Ray(x, y)
	v.Scene.MoveSelected(origin, direction, v.inverseModelView)
}

// Place adds a primitive under the cursor.
func (v *Viewer) Place(kind geometry.Kind, x, y float32) (scene.Node, error) {
	v.UpdateCamera()
	origin, direction := v.Ray(x, y)
	node, err := v.Scene.Place(kind, origin, direction, v.inverseModelView)
	if err != nil {
		return nil, errors.Wrapf(err, "place at (%g, %g)", x, y)
	}
	return node, nil
}

func (v *Viewer) placeCallback(kind geometry.Kind, x, y float32) {
	_, v.LastError = v.Place(kind, x, y)
}
