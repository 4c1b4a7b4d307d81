package gpu

import (
	"fmt"

	"github.com/gekko3d/spinny"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context owns the device, the surface and every resource the cube needs.
type Context struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration
	Limits   wgpu.Limits

	VertexBuffer    *wgpu.Buffer
	UniformBuffer   *wgpu.Buffer
	BindGroupLayout *wgpu.BindGroupLayout
	BindGroup       *wgpu.BindGroup
	PipelineLayout  *wgpu.PipelineLayout
	Pipeline        *wgpu.RenderPipeline
	DepthTexture    *wgpu.Texture
	DepthView       *wgpu.TextureView

	// Surface image of the frame in flight, released by Present.
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView

	runID string
	log   spinny.Logger
}

// NewContext negotiates adapter and device for the given surface and configures
// the swap chain at the fixed resolution. runID is appended to every GPU object
// label so validation messages can be matched to a log.
func NewContext(surfaceDesc *wgpu.SurfaceDescriptor, runID string, logger spinny.Logger) (*Context, error) {
	c := &Context{runID: runID, log: spinny.OrNop(logger)}
	fail := func(err error) (*Context, error) {
		c.Release()
		return nil, err
	}

	c.Instance = wgpu.CreateInstance(nil)
	c.Surface = c.Instance.CreateSurface(surfaceDesc)
	if c.Surface == nil {
		return fail(fmt.Errorf("WebGPU surface is not available"))
	}

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fail(fmt.Errorf("GPU adapter is not available: %w", err))
	}
	c.Adapter = adapter

	supported := adapter.GetLimits()
	c.log.Debugf("Adapter max limits %+v", supported.Limits)

	limits := wgpu.DefaultLimits()
	limits.MaxBufferSize = supported.Limits.MaxBufferSize
	limits.MaxStorageBufferBindingSize = supported.Limits.MaxStorageBufferBindingSize

	c.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          c.label("Cube Device"),
		RequiredLimits: &wgpu.RequiredLimits{Limits: limits},
	})
	if err != nil {
		return fail(fmt.Errorf("request device: %w", err))
	}
	c.Queue = c.Device.GetQueue()
	c.Limits = c.Device.GetLimits().Limits
	c.log.Debugf("GPU limits %+v", c.Limits)

	caps := c.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fail(fmt.Errorf("surface reports no usable formats"))
	}
	alpha := caps.AlphaModes[0]
	for _, m := range caps.AlphaModes {
		if m == wgpu.CompositeAlphaModePremultiplied {
			alpha = m
			break
		}
	}

	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       spinny.Resolution,
		Height:      spinny.Resolution,
		PresentMode: wgpu.PresentModeFifo, // vsync paces the loop
		AlphaMode:   alpha,
	}
	c.Surface.Configure(adapter, c.Device, c.Config)
	c.log.Infof("Surface configured %dx%d format=%v", c.Config.Width, c.Config.Height, c.Config.Format)

	return c, nil
}

func (c *Context) label(name string) string {
	if c.runID == "" {
		return name
	}
	return name + " " + c.runID
}

// Release frees every object the context created. Safe on a partly built context.
func (c *Context) Release() {
	c.releaseFrame()
	if c.DepthView != nil {
		c.DepthView.Release()
	}
	if c.DepthTexture != nil {
		c.DepthTexture.Release()
	}
	if c.Pipeline != nil {
		c.Pipeline.Release()
	}
	if c.PipelineLayout != nil {
		c.PipelineLayout.Release()
	}
	if c.BindGroup != nil {
		c.BindGroup.Release()
	}
	if c.BindGroupLayout != nil {
		c.BindGroupLayout.Release()
	}
	if c.UniformBuffer != nil {
		c.UniformBuffer.Release()
	}
	if c.VertexBuffer != nil {
		c.VertexBuffer.Release()
	}
	if c.Queue != nil {
		c.Queue.Release()
	}
	if c.Device != nil {
		c.Device.Release()
	}
	if c.Adapter != nil {
		c.Adapter.Release()
	}
	if c.Surface != nil {
		c.Surface.Release()
	}
	if c.Instance != nil {
		c.Instance.Release()
	}
	*c = Context{runID: c.runID, log: c.log}
}
