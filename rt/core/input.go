package core

// Key identifies the keys the controller reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	Key1
	Key2
)

// MouseButtonPrimary is the only button that starts a drag.
const MouseButtonPrimary = 0

// Touch is one active touch point in window coordinates.
type Touch struct {
	X, Y float64
}

// PointerCapture hides the cursor and switches to relative motion while dragging.
type PointerCapture interface {
	Capture()
	Release()
}

type nopCapture struct{}

func (nopCapture) Capture() {}
func (nopCapture) Release() {}

// InputController turns pointer, touch and key events into camera and draw mode changes.
// Handlers are called from the same goroutine as the render loop.
type InputController struct {
	Camera  *CameraState
	Mode    DrawMode
	Capture PointerCapture

	touchX, touchY float64
}

func NewInputController(camera *CameraState, capture PointerCapture) *InputController {
	if capture == nil {
		capture = nopCapture{}
	}
	return &InputController{
		Camera:  camera,
		Mode:    DrawFull,
		Capture: capture,
	}
}

func (ic *InputController) OnPointerDown(button int) {
	if button != MouseButtonPrimary {
		return
	}
	ic.Camera.Dragging = true
	ic.Capture.Capture()
}

func (ic *InputController) OnPointerUp(button int) {
	if button != MouseButtonPrimary {
		return
	}
	ic.Camera.Dragging = false
	ic.Capture.Release()
}

func (ic *InputController) OnBlur() {
	ic.Camera.Dragging = false
	ic.Capture.Release()
}

// OnPointerMove takes relative motion since the previous move event.
func (ic *InputController) OnPointerMove(dx, dy float64) {
	if !ic.Camera.Dragging {
		return
	}
	ic.Camera.RotateBy(dx, dy, PointerDivisor)
}

func (ic *InputController) OnTouchStart(touches []Touch) {
	if len(touches) == 0 {
		return
	}
	ic.Camera.Dragging = true
	ic.touchX, ic.touchY = touches[0].X, touches[0].Y
}

// OnTouchMove rotates by the distance from the last recorded touch and reports
// whether the host should suppress its default scroll and zoom handling.
func (ic *InputController) OnTouchMove(touches []Touch) bool {
	if !ic.Camera.Dragging || len(touches) == 0 {
		return false
	}
	t := touches[0]
	ic.Camera.RotateBy(t.X-ic.touchX, t.Y-ic.touchY, TouchDivisor)
	ic.touchX, ic.touchY = t.X, t.Y
	return true
}

func (ic *InputController) OnTouchEnd(remaining int) {
	if remaining == 0 {
		ic.Camera.Dragging = false
	}
}

func (ic *InputController) OnKeyDown(key Key) {
	switch key {
	case KeySpace:
		ic.Camera.AutoSpin = !ic.Camera.AutoSpin
	case Key1:
		ic.Mode = ic.Mode.Toggle(DrawTriangleSweep)
	case Key2:
		ic.Mode = ic.Mode.Toggle(DrawSingleTriangle)
	}
}
