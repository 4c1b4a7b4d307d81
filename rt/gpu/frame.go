package gpu

import (
	"fmt"

	"github.com/gekko3d/spinny/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var _ Backend = (*Context)(nil)

func (c *Context) WriteTransform(m mgl32.Mat4) error {
	if err := c.Queue.WriteBuffer(c.UniformBuffer, 0, mat4ToBytes(m)); err != nil {
		return fmt.Errorf("write transform: %w", err)
	}
	return nil
}

// RenderPass targets the surface image current for this frame. The image can
// change between frames, so the color attachment is rebuilt every time; the
// depth attachment is fixed.
func (c *Context) RenderPass(call core.DrawCall) error {
	c.releaseFrame()

	texture, err := c.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	c.frameTexture = texture

	c.frameView, err = texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	encoder, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: c.label("Cube frame")})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(renderPassDescriptor(c.frameView, c.DepthView))
	err = c.encodeDraw(pass, call)
	pass.Release()
	if err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	c.Queue.Submit(cmd)
	return nil
}

// passEncoder is what one cube draw needs from *wgpu.RenderPassEncoder.
type passEncoder interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64, size uint64)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}

func (c *Context) encodeDraw(pass passEncoder, call core.DrawCall) error {
	pass.SetPipeline(c.Pipeline)
	pass.SetVertexBuffer(0, c.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetBindGroup(0, c.BindGroup, nil)
	pass.Draw(call.VertexCount, call.InstanceCount, call.FirstVertex, call.FirstInstance)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	return nil
}

type workDoneNotifier interface {
	OnSubmittedWorkDone(callback wgpu.QueueWorkDoneCallback)
}

type devicePoller interface {
	Poll(wait bool, wrappedSubmissionIndex *wgpu.WrappedSubmissionIndex) (queueEmpty bool)
}

// WaitSubmittedWork polls the device until the queue callback fires. There is
// no timeout.
func (c *Context) WaitSubmittedWork() error {
	return waitForQueue(c.Queue, c.Device)
}

func waitForQueue(queue workDoneNotifier, device devicePoller) error {
	done := false
	var status wgpu.QueueWorkDoneStatus
	queue.OnSubmittedWorkDone(func(s wgpu.QueueWorkDoneStatus) {
		status = s
		done = true
	})
	for !done {
		device.Poll(true, nil)
	}
	if status != wgpu.QueueWorkDoneStatusSuccess {
		return fmt.Errorf("submitted work finished with status %v", status)
	}
	return nil
}

func (c *Context) Present() {
	if c.frameTexture == nil {
		return
	}
	c.Surface.Present()
	c.releaseFrame()
}

func (c *Context) releaseFrame() {
	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}
	if c.frameTexture != nil {
		c.frameTexture.Release()
		c.frameTexture = nil
	}
}

func renderPassDescriptor(target, depth *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: "Cube pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	}
}
