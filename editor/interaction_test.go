package editor

import (
	"testing"

	"cell-modeller/geometry"
	"cell-modeller/math"
)

type call struct {
	name string
	x, y float32
	kind geometry.Kind
	flag bool
}

type recorder struct {
	calls []call
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Pick: func(x, y float32) {
			r.calls = append(r.calls, call{name: "pick", x: x, y: y})
		},
		Move: func(x, y float32) {
			r.calls = append(r.calls, call{name: "move", x: x, y: y})
		},
		Place: func(k geometry.Kind, x, y float32) {
			r.calls = append(r.calls, call{name: "place", x: x, y: y, kind: k})
		},
		RotateColor: func(forward bool) {
			r.calls = append(r.calls, call{name: "color", flag: forward})
		},
		Scale: func(up bool) {
			r.calls = append(r.calls, call{name: "scale", flag: up})
		},
	}
}

func newRecordedInteraction() (*Interaction, *recorder) {
	r := &recorder{}
	in := NewInteraction(480)
	in.Callbacks = r.callbacks()
	return in, r
}

func TestLeftButtonPicksAndDrags(t *testing.T) {
	in, r := newRecordedInteraction()

	in.MouseButton(MouseLeft, true, 10, 100)
	in.MouseMove(20, 90)
	in.MouseButton(MouseLeft, false, 20, 90)
	in.MouseMove(30, 80)

	want := []call{
		{name: "pick", x: 10, y: 380},
		{name: "move", x: 20, y: 390},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), r.calls)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], r.calls[i])
		}
	}
	if in.Pressed() != MouseNone {
		t.Error("release should clear the pressed button")
	}
}

func TestRightButtonRotatesCamera(t *testing.T) {
	in, r := newRecordedInteraction()

	in.MouseButton(MouseRight, true, 100, 100)
	in.MouseMove(100, 100)
	if in.Trackball.Rotation() != math.QuaternionIdentity() {
		t.Error("a move without displacement should not rotate")
	}
	in.MouseMove(280, 100)

	if len(r.calls) != 0 {
		t.Errorf("right drag should not reach the scene, got %+v", r.calls)
	}
	got := in.Trackball.Matrix().TransformVector(math.Vec3Right)
	if !got.ApproxEqual(math.Vec3Back, eps) {
		t.Errorf("expected a quarter turn about Y, +X maps to %v", got)
	}
}

func TestMiddleButtonPans(t *testing.T) {
	in, _ := newRecordedInteraction()

	in.MouseButton(MouseMiddle, true, 0, 240)
	// screen y grows downward, so moving up the screen is +y
	in.MouseMove(60, 180)
	if want := math.NewVec3(1, 1, 0); !in.Translation.ApproxEqual(want, eps) {
		t.Errorf("expected pan %v, got %v", want, in.Translation)
	}
}

func TestScrollDollies(t *testing.T) {
	in, _ := newRecordedInteraction()
	in.Scroll(1)
	in.Scroll(2.5)
	in.Scroll(-1)
	in.Scroll(0)
	if want := math.NewVec3(0, 0, 1); in.Translation != want {
		t.Errorf("expected %v, got %v", want, in.Translation)
	}
}

func TestKeys(t *testing.T) {
	in, r := newRecordedInteraction()

	in.KeyPress(KeyS, 5, 470)
	in.KeyPress(KeyC, 6, 0)
	in.KeyPress(KeyUp, 0, 0)
	in.KeyPress(KeyDown, 0, 0)
	in.KeyPress(KeyLeft, 0, 0)
	in.KeyPress(KeyRight, 0, 0)
	in.KeyPress(KeyUnknown, 0, 0)

	want := []call{
		{name: "place", kind: geometry.KindSphere, x: 5, y: 10},
		{name: "place", kind: geometry.KindCube, x: 6, y: 480},
		{name: "scale", flag: true},
		{name: "scale", flag: false},
		{name: "color", flag: true},
		{name: "color", flag: false},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), r.calls)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], r.calls[i])
		}
	}
}

func TestExtraKind(t *testing.T) {
	in, r := newRecordedInteraction()
	in.KeyPress(KeyP, 1, 1)
	if len(r.calls) != 0 {
		t.Fatalf("no extra kind configured, got %+v", r.calls)
	}
	in.ExtraKind = "virus"
	in.KeyPress(KeyP, 1, 1)
	if len(r.calls) != 1 || r.calls[0].kind != "virus" {
		t.Errorf("expected a virus placement, got %+v", r.calls)
	}
}

func TestNilCallbacksAreSkipped(t *testing.T) {
	in := NewInteraction(100)
	in.MouseButton(MouseLeft, true, 1, 1)
	in.MouseMove(2, 2)
	in.KeyPress(KeyS, 0, 0)
	in.KeyPress(KeyUp, 0, 0)
	in.KeyPress(KeyLeft, 0, 0)
}

func TestSetHeightChangesFlip(t *testing.T) {
	in, r := newRecordedInteraction()
	in.SetHeight(100)
	in.MouseButton(MouseLeft, true, 0, 25)
	if r.calls[0].y != 75 {
		t.Errorf("expected y 75, got %v", r.calls[0].y)
	}
}
