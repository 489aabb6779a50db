package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"cell-modeller/editor"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     640,
		Height:    480,
		Title:     "Cancer Cell Modeller",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize GLFW")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "failed to create window")
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

// Bind forwards window events to in. onResize receives window sizes, the
// space cursor positions are reported in. Escape closes the window.
func (w *Window) Bind(in *editor.Interaction, onResize func(width, height int)) {
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := mouseButtons[button]
		if !ok || action == glfw.Repeat {
			return
		}
		x, y := win.GetCursorPos()
		in.MouseButton(b, action == glfw.Press, x, y)
	})
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		in.MouseMove(x, y)
	})
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		in.Scroll(yoff)
	})
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			win.SetShouldClose(true)
			return
		}
		if k, ok := keys[key]; ok {
			x, y := win.GetCursorPos()
			in.KeyPress(k, x, y)
		}
	})
	w.Handle.SetSizeCallback(func(win *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		if onResize != nil {
			onResize(width, height)
		}
	})
}

var mouseButtons = map[glfw.MouseButton]editor.MouseButton{
	glfw.MouseButtonLeft:   editor.MouseLeft,
	glfw.MouseButtonRight:  editor.MouseRight,
	glfw.MouseButtonMiddle: editor.MouseMiddle,
}

var keys = map[glfw.Key]editor.Key{
	glfw.KeyS:     editor.KeyS,
	glfw.KeyC:     editor.KeyC,
	glfw.KeyUp:    editor.KeyUp,
	glfw.KeyDown:  editor.KeyDown,
	glfw.KeyLeft:  editor.KeyLeft,
	glfw.KeyRight: editor.KeyRight,
	glfw.KeyP:     editor.KeyP,
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
