package core

import (
	"math"

	"github.com/gekko3d/spinny"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	TiltMin = -math.Pi
	TiltMax = 0.0

	PointerDivisor = 500.0
	TouchDivisor   = 200.0
)

// depthRemap maps OpenGL clip depth [-1,1] onto the WebGPU range [0,1].
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type CameraState struct {
	Spin      float64 // radians, unbounded
	Tilt      float64 // radians, kept in [TiltMin, TiltMax]
	Dragging  bool
	LastFrame float64 // ms
	AutoSpin  bool

	Projection mgl32.Mat4
	Initial    mgl32.Mat4
	TiltMode   spinny.TiltMode
}

func NewCameraState(cfg spinny.Config, now float64) *CameraState {
	c := &CameraState{
		Tilt:       clampTilt(cfg.InitialTilt),
		LastFrame:  now,
		AutoSpin:   cfg.AutoSpin,
		Projection: PerspectiveProjection(float32(cfg.FovY), 1, float32(cfg.Near), float32(cfg.Far)),
		Initial:    mgl32.Translate3D(0, 0, -5),
		TiltMode:   cfg.TiltMode,
	}
	if c.TiltMode == spinny.TiltPreApplied {
		c.Initial = c.Initial.Mul4(mgl32.HomogRotate3DX(float32(c.Tilt)))
	}
	return c
}

// PerspectiveProjection is a right-handed perspective with WebGPU depth range.
func PerspectiveProjection(fovY, aspect, near, far float32) mgl32.Mat4 {
	return depthRemap.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Update advances the idle spin by the wall-clock time since the last frame,
// one revolution every 4 seconds.
func (c *CameraState) Update(now float64) {
	if !c.Dragging && c.AutoSpin {
		c.Spin += math.Pi * (now - c.LastFrame) / 2000
	}
	c.LastFrame = now
}

// Matrix returns projection × rotateZ(rotateX(initial, tilt), spin).
// With TiltPreApplied the tilt already lives in Initial.
func (c *CameraState) Matrix() mgl32.Mat4 {
	model := c.Initial
	if c.TiltMode != spinny.TiltPreApplied {
		model = model.Mul4(mgl32.HomogRotate3DX(float32(c.Tilt)))
	}
	model = model.Mul4(mgl32.HomogRotate3DZ(float32(c.Spin)))
	return c.Projection.Mul4(model)
}

// RotateBy applies a drag delta scaled down by divisor.
func (c *CameraState) RotateBy(dx, dy, divisor float64) {
	c.Spin += dx / divisor
	c.Tilt = clampTilt(c.Tilt + dy/divisor)
}

func clampTilt(t float64) float64 {
	return math.Max(TiltMin, math.Min(t, TiltMax))
}
