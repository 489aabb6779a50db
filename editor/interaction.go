package editor

import (
	"cell-modeller/geometry"
	"cell-modeller/math"
)

// MouseButton identifies a pointer button independently of the windowing
// library.
type MouseButton int

const (
	MouseNone MouseButton = iota - 1
	MouseLeft
	MouseRight
	MouseMiddle
)

// Key is the subset of the keyboard the modeller responds to.
type Key int

const (
	KeyUnknown Key = iota
	KeyS
	KeyC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyP
)

// PanSpeed is how many pixels of middle-button drag move the camera one unit.
const PanSpeed = 60

// Callbacks receive the actions an Interaction decodes. Coordinates are in
// window space with the origin at the bottom left. Nil entries are skipped.
type Callbacks struct {
	Pick        func(x, y float32)
	Move        func(x, y float32)
	Place       func(kind geometry.Kind, x, y float32)
	RotateColor func(forward bool)
	Scale       func(up bool)
}

// Interaction turns raw window events into camera motion and scene actions.
// Events must be fed in arrival order from a single goroutine.
type Interaction struct {
	Callbacks Callbacks

	// Trackball holds the camera orientation; Translation is the camera pan.
	Trackball   *Trackball
	Translation math.Vec3

	// ExtraKind is placed by KeyP, typically a mesh loaded from a file.
	ExtraKind geometry.Kind

	height  float64
	pressed MouseButton

	lastX, lastY float64
}

// NewInteraction creates an interaction for a window of the given height.
func NewInteraction(height int) *Interaction {
	return &Interaction{
		Trackball: NewTrackball(),
		height:    float64(height),
		pressed:   MouseNone,
	}
}

// SetHeight records a new window height, used to flip the y axis.
func (in *Interaction) SetHeight(height int) {
	in.height = float64(height)
}

// Pressed returns the button currently held, or MouseNone.
func (in *Interaction) Pressed() MouseButton { return in.pressed }

// Translate moves the camera pan by the given amount.
func (in *Interaction) Translate(dx, dy, dz float32) {
	in.Translation = in.Translation.Add(math.NewVec3(dx, dy, dz))
}

// flip converts a window y (origin top left) to the bottom left origin.
func (in *Interaction) flip(y float64) float64 {
	return in.height - y
}

// MouseButton handles a press or release at screen position (x, y).
func (in *Interaction) MouseButton(button MouseButton, down bool, x, y float64) {
	y = in.flip(y)
	in.lastX, in.lastY = x, y

	if !down {
		in.pressed = MouseNone
		return
	}
	in.pressed = button
	if button == MouseLeft && in.Callbacks.Pick != nil {
		in.Callbacks.Pick(float32(x), float32(y))
	}
}

// Scroll dollies the camera one unit per wheel notch direction.
func (in *Interaction) Scroll(yoff float64) {
	switch {
	case yoff > 0:
		in.Translate(0, 0, 1)
	case yoff < 0:
		in.Translate(0, 0, -1)
	}
}

// MouseMove handles pointer motion to screen position (x, y).
func (in *Interaction) MouseMove(x, y float64) {
	y = in.flip(y)
	dx := float32(x - in.lastX)
	dy := float32(y - in.lastY)
	in.lastX, in.lastY = x, y

	switch in.pressed {
	case MouseRight:
		in.Trackball.Drag(dx, dy)
	case MouseLeft:
		if in.Callbacks.Move != nil {
			in.Callbacks.Move(float32(x), float32(y))
		}
	case MouseMiddle:
		in.Translate(dx/PanSpeed, dy/PanSpeed, 0)
	}
}

// KeyPress handles a key with the pointer at screen position (x, y).
func (in *Interaction) KeyPress(key Key, x, y float64) {
	fx, fy := float32(x), float32(in.flip(y))
	cb := in.Callbacks

	switch key {
	case KeyS:
		if cb.Place != nil {
			cb.Place(geometry.KindSphere, fx, fy)
		}
	case KeyC:
		if cb.Place != nil {
			cb.Place(geometry.KindCube, fx, fy)
		}
	case KeyP:
		if cb.Place != nil && in.ExtraKind != "" {
			cb.Place(in.ExtraKind, fx, fy)
		}
	case KeyUp, KeyDown:
		if cb.Scale != nil {
			cb.Scale(key == KeyUp)
		}
	case KeyLeft, KeyRight:
		if cb.RotateColor != nil {
			cb.RotateColor(key == KeyLeft)
		}
	}
}
