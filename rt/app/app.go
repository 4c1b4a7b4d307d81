package app

import (
	"github.com/gekko3d/spinny"
	"github.com/gekko3d/spinny/rt/core"
	"github.com/gekko3d/spinny/rt/gpu"
	"github.com/gekko3d/spinny/rt/shaders"

	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type App struct {
	// RunID tags GPU object labels. Optional.
	RunID    string
	Window   *glfw.Window
	Config   spinny.Config
	Camera   *core.CameraState
	Input    *core.InputController
	Mesh     gpu.Mesh
	Backend  gpu.Backend
	Profiler *Profiler

	gpu *gpu.Context
	log spinny.Logger
}

// NewApp builds the camera, input and mesh for cfg. No GPU work happens until Init.
func NewApp(cfg spinny.Config, logger spinny.Logger) *App {
	camera := core.NewCameraState(cfg, 0)
	return &App{
		Config:   cfg,
		Camera:   camera,
		Input:    core.NewInputController(camera, nil),
		Mesh:     gpu.Mesh{Data: core.Flatten(core.CubeStrip(cfg.Vertices), cfg.VertexStride), Stride: cfg.VertexStride},
		Profiler: NewProfiler(),
		log:      spinny.OrNop(logger),
	}
}

// Init negotiates the device for window, builds the pipeline and hooks up input.
// Every failure is a *spinny.SetupError.
func (a *App) Init(window *glfw.Window) error {
	a.Window = window

	ctx, err := gpu.NewContext(wgpuglfw.GetSurfaceDescriptor(window), a.RunID, a.log)
	if err != nil {
		return asSetupError(err)
	}
	if err := ctx.Setup(a.Mesh, shaders.CubeWGSL); err != nil {
		ctx.Release()
		return asSetupError(err)
	}
	a.gpu = ctx

	a.attach(ctx, cursorCapture{window: window}, NowMs())
	bindWindowInput(window, a.Input)
	return nil
}

// attach makes b the render target and starts the clock at now.
func (a *App) attach(b gpu.Backend, capture core.PointerCapture, now float64) {
	a.Backend = b
	a.Input.Capture = capture
	a.Camera.LastFrame = now
}

func asSetupError(err error) error {
	if err == nil || spinny.IsSetup(err) {
		return err
	}
	errs := &spinny.SetupError{}
	errs.Add(err)
	return errs.Err()
}

// Frame is one iteration of the render loop. It returns only after the GPU has
// finished the frame, so at most one frame is ever in flight.
func (a *App) Frame(now float64) error {
	a.Profiler.BeginScope("update")
	a.Camera.Update(now)
	matrix := a.Camera.Matrix()
	a.Profiler.EndScope("update")

	if err := a.Backend.WriteTransform(matrix); err != nil {
		return &spinny.RuntimeError{Stage: "upload", Err: err}
	}

	a.Profiler.BeginScope("encode")
	call := a.Input.Mode.DrawCall(a.Mesh.VertexCount(), now)
	if err := a.Backend.RenderPass(call); err != nil {
		return &spinny.RuntimeError{Stage: "encode", Err: err}
	}
	a.Profiler.EndScope("encode")

	a.Profiler.BeginScope("wait")
	if err := a.Backend.WaitSubmittedWork(); err != nil {
		return &spinny.RuntimeError{Stage: "wait", Err: err}
	}
	a.Profiler.EndScope("wait")
	a.Backend.Present()

	if a.Profiler.Frame(now) && a.log.DebugEnabled() {
		a.log.Debugf("%s mode=%s spin=%.3f tilt=%.3f", a.Profiler.GetStatsString(), a.Input.Mode, a.Camera.Spin, a.Camera.Tilt)
	}
	return nil
}

// Run drives Frame until the scheduler stops. A frame error ends the loop.
func (a *App) Run(s Scheduler) error {
	err := s.Run(a.Frame)
	if err != nil {
		a.log.Errorf("Render loop stopped: %v", err)
	}
	return err
}

func (a *App) Release() {
	if a.gpu != nil {
		a.gpu.Release()
		a.gpu = nil
	}
}
