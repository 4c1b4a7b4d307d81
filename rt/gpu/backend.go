package gpu

import (
	"github.com/gekko3d/spinny/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Backend is what the render loop needs from the device each frame.
// Context implements it on top of wgpu.
type Backend interface {
	// WriteTransform overwrites the whole uniform buffer at offset 0.
	WriteTransform(m mgl32.Mat4) error
	// RenderPass acquires the current surface image, records one pass with a
	// single draw and submits it.
	RenderPass(call core.DrawCall) error
	// WaitSubmittedWork blocks until the queue reports all submitted work done.
	WaitSubmittedWork() error
	Present()
}
