package app

import (
	"github.com/gekko3d/spinny/rt/core"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwToKey = map[glfw.Key]core.Key{
	glfw.KeySpace: core.KeySpace,
	glfw.Key1:     core.Key1,
	glfw.KeyKP1:   core.Key1,
	glfw.Key2:     core.Key2,
	glfw.KeyKP2:   core.Key2,
}

func translateKey(key glfw.Key) core.Key {
	if k, ok := glfwToKey[key]; ok {
		return k
	}
	return core.KeyUnknown
}

func translateButton(button glfw.MouseButton) int {
	if button == glfw.MouseButtonLeft {
		return core.MouseButtonPrimary
	}
	return int(button) + 1
}

// cursorCapture is the glfw version of pointer lock: a hidden cursor with
// unbounded virtual position.
type cursorCapture struct {
	window *glfw.Window
}

func (c cursorCapture) Capture() {
	c.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		c.window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
}

func (c cursorCapture) Release() {
	if glfw.RawMouseMotionSupported() {
		c.window.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	c.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// pointerTracker turns absolute cursor positions into relative motion.
type pointerTracker struct {
	x, y  float64
	valid bool
}

func (t *pointerTracker) delta(x, y float64) (dx, dy float64, ok bool) {
	if t.valid {
		dx, dy, ok = x-t.x, y-t.y, true
	}
	t.x, t.y, t.valid = x, y, true
	return dx, dy, ok
}

// windowInput holds the glfw callback bodies so they can run without a window.
type windowInput struct {
	ic      *core.InputController
	tracker pointerTracker
	close   func()
}

func (wi *windowInput) mouseButton(button glfw.MouseButton, action glfw.Action) {
	switch action {
	case glfw.Press:
		wi.ic.OnPointerDown(translateButton(button))
	case glfw.Release:
		wi.ic.OnPointerUp(translateButton(button))
	}
}

func (wi *windowInput) cursorPos(x, y float64) {
	if dx, dy, ok := wi.tracker.delta(x, y); ok {
		wi.ic.OnPointerMove(dx, dy)
	}
}

func (wi *windowInput) focus(focused bool) {
	if !focused {
		wi.ic.OnBlur()
	}
}

// key handles presses only. Escape closes the window.
func (wi *windowInput) key(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		wi.close()
		return
	}
	wi.ic.OnKeyDown(translateKey(key))
}

// bindWindowInput routes glfw callbacks into the controller.
func bindWindowInput(w *glfw.Window, ic *core.InputController) {
	wi := &windowInput{ic: ic, close: func() { w.SetShouldClose(true) }}

	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		wi.mouseButton(button, action)
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		wi.cursorPos(xpos, ypos)
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		wi.focus(focused)
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		wi.key(key, action)
	})
}
