package app

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gekko3d/spinny"
	"github.com/gekko3d/spinny/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records every call in order.
type fakeBackend struct {
	events   []string
	matrices []mgl32.Mat4
	draws    []core.DrawCall

	failDrawAt int // 1-based draw index, 0 disables
	failWait   error
}

func (f *fakeBackend) WriteTransform(m mgl32.Mat4) error {
	f.events = append(f.events, "write")
	f.matrices = append(f.matrices, m)
	return nil
}

func (f *fakeBackend) RenderPass(call core.DrawCall) error {
	f.draws = append(f.draws, call)
	if f.failDrawAt == len(f.draws) {
		return errors.New("surface lost")
	}
	f.events = append(f.events, fmt.Sprintf("draw(%d,%d,%d)", call.VertexCount, call.InstanceCount, call.FirstVertex))
	return nil
}

func (f *fakeBackend) WaitSubmittedWork() error {
	f.events = append(f.events, "wait")
	return f.failWait
}

func (f *fakeBackend) Present() {
	f.events = append(f.events, "present")
}

func newTestApp(t *testing.T, preset string) (*App, *fakeBackend) {
	t.Helper()
	cfg, err := spinny.PresetConfig(preset)
	require.NoError(t, err)
	a := NewApp(cfg, spinny.NewNopLogger())
	backend := &fakeBackend{}
	a.Backend = backend
	return a, backend
}

func timestamps(from, to, step float64) []float64 {
	var ts []float64
	for now := from; now < to; now += step {
		ts = append(ts, now)
	}
	return append(ts, to)
}

func TestIdleFourSecondsIsOneTurn(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset14)
	start := a.Camera.Spin

	err := a.Run(&ManualScheduler{Timestamps: timestamps(0, 4000, 16)})
	require.NoError(t, err)

	assert.InDelta(t, start+2*math.Pi, a.Camera.Spin, 1e-9)
	require.NotEmpty(t, backend.draws)
	assert.Equal(t, core.DrawCall{VertexCount: 14, InstanceCount: 1}, backend.draws[len(backend.draws)-1])
	assert.Equal(t, a.Camera.Matrix(), backend.matrices[len(backend.matrices)-1])
}

func TestUploadPrecedesEachDraw(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset14)

	require.NoError(t, a.Run(&ManualScheduler{Timestamps: timestamps(0, 200, 20)}))

	writes := 0
	frames := 0
	for _, e := range backend.events {
		switch {
		case e == "write":
			writes++
		case e == "wait" || e == "present":
		default:
			assert.Equal(t, 1, writes, "exactly one upload before draw %d", frames)
			writes = 0
			frames++
		}
	}
	assert.Equal(t, 11, frames)
	assert.Equal(t, []string{"write", "draw(14,1,0)", "wait", "present"}, backend.events[:4])
}

func TestDrawModeFollowsKeys(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset14)
	sched := &ManualScheduler{
		Timestamps: []float64{0, 500, 1000, 1500},
		BeforeFrame: func(i int) {
			switch i {
			case 1:
				a.Input.OnKeyDown(core.Key1)
			case 2:
				a.Input.OnKeyDown(core.Key2)
			case 3:
				a.Input.OnKeyDown(core.Key2)
			}
		},
	}
	require.NoError(t, a.Run(sched))

	assert.Equal(t, []core.DrawCall{
		{VertexCount: 14, InstanceCount: 1},
		{VertexCount: 4, InstanceCount: 1},
		{VertexCount: 3, InstanceCount: 1, FirstVertex: 2},
		{VertexCount: 14, InstanceCount: 1},
	}, backend.draws)
}

func TestDragStopsSpin(t *testing.T) {
	a, _ := newTestApp(t, spinny.Preset14)
	sched := &ManualScheduler{
		Timestamps: []float64{0, 1000, 2000},
		BeforeFrame: func(i int) {
			if i == 1 {
				a.Input.OnPointerDown(core.MouseButtonPrimary)
				a.Input.OnPointerMove(100, 0)
			}
		},
	}
	require.NoError(t, a.Run(sched))
	assert.InDelta(t, 100.0/500, a.Camera.Spin, 1e-12)
}

func TestFrameErrorStopsLoop(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset14)
	backend.failDrawAt = 3

	err := a.Run(&ManualScheduler{Timestamps: timestamps(0, 1000, 100)})
	require.Error(t, err)

	var re *spinny.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "encode", re.Stage)
	assert.Len(t, backend.draws, 3)
	assert.False(t, spinny.IsSetup(err))
}

func TestWaitErrorIsRuntimeError(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset13)
	backend.failWait = errors.New("device lost")

	err := a.Frame(10)
	var re *spinny.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "wait", re.Stage)
	assert.ErrorContains(t, err, "device lost")
	assert.NotContains(t, backend.events, "present")
}

func TestPreset13Mesh(t *testing.T) {
	a, backend := newTestApp(t, spinny.Preset13)
	assert.Equal(t, 13, a.Mesh.VertexCount())
	assert.Equal(t, 3, a.Mesh.Stride)

	require.NoError(t, a.Frame(1000))
	assert.Zero(t, a.Camera.Spin, "preset 13 starts without auto-spin")
	assert.Equal(t, core.DrawCall{VertexCount: 13, InstanceCount: 1}, backend.draws[0])
}

func TestAttachStartsClockAndCapture(t *testing.T) {
	cfg, err := spinny.PresetConfig(spinny.Preset14)
	require.NoError(t, err)
	a := NewApp(cfg, nil)
	backend := &fakeBackend{}
	capture := &countingCapture{}

	a.attach(backend, capture, 5000)
	assert.Same(t, backend, a.Backend)

	start := a.Camera.Spin
	require.NoError(t, a.Frame(7000))
	assert.InDelta(t, start+math.Pi, a.Camera.Spin, 1e-9, "spin counts from the attach time, not from zero")

	a.Input.OnPointerDown(core.MouseButtonPrimary)
	assert.Equal(t, 1, capture.captures)
}

func TestAsSetupError(t *testing.T) {
	assert.NoError(t, asSetupError(nil))

	wrapped := asSetupError(errors.New("GPU adapter is not available"))
	assert.True(t, spinny.IsSetup(wrapped))
	assert.EqualError(t, wrapped, "GPU adapter is not available")

	errs := &spinny.SetupError{}
	errs.Addf("bad stride")
	errs.Addf("bad shader")
	already := errs.Err()
	assert.Same(t, already, asSetupError(already))
}
