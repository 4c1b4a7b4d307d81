package gpu

import (
	"fmt"

	"github.com/gekko3d/spinny"
	"github.com/gekko3d/spinny/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// Mesh is the vertex data handed to Setup, already flattened.
type Mesh struct {
	Data   []float32
	Stride int // floats per vertex, 3 or 4
}

func (m Mesh) VertexCount() int {
	if m.Stride == 0 {
		return 0
	}
	return len(m.Data) / m.Stride
}

func (m Mesh) ByteSize() uint64 {
	return uint64(len(m.Data) * 4)
}

// Setup builds buffers, bindings, the pipeline and the depth buffer in order.
// Checks that do not need the device run first and are reported together.
func (c *Context) Setup(mesh Mesh, shaderSource string) error {
	errs := &spinny.SetupError{}
	if mesh.Stride != 3 && mesh.Stride != 4 {
		errs.Addf("vertex stride must be 3 or 4 floats, got %d", mesh.Stride)
	}
	if mesh.VertexCount() < 3 {
		errs.Addf("mesh needs at least 3 vertices, got %d", mesh.VertexCount())
	}
	if limit := c.Limits.MaxBufferSize; limit != 0 && mesh.ByteSize() > limit {
		errs.Addf("vertex buffer of %d bytes exceeds device limit %d", mesh.ByteSize(), limit)
	}
	errs.Add(ValidateShader(shaderSource, VertexEntry(shaders.CubeVertexEntry), FragmentEntry(shaders.CubeFragmentEntry)))
	if err := errs.Err(); err != nil {
		return err
	}

	// Each step depends on the previous one.
	steps := []func() error{
		func() error { return c.createBuffers(mesh) },
		c.createBindings,
		func() error { return c.createPipeline(mesh.Stride, shaderSource) },
		c.createDepthBuffer,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			errs.Add(err)
			return errs.Err()
		}
	}
	c.log.Infof("Pipeline ready: %d vertices, stride %d", mesh.VertexCount(), mesh.Stride)
	return nil
}

func (c *Context) createBuffers(mesh Mesh) error {
	var err error
	c.VertexBuffer, err = c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: c.label("Cube vertices"),
		Size:  mesh.ByteSize(),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	if err := c.Queue.WriteBuffer(c.VertexBuffer, 0, floatsToBytes(mesh.Data)); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}

	c.UniformBuffer, err = c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: c.label("Uniform projection buffer"),
		Size:  MatrixSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	return nil
}

func (c *Context) createBindings() error {
	var err error
	c.BindGroupLayout, err = c.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   c.label("Cube projection BGL"),
		Entries: bindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}

	c.BindGroup, err = c.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  c.label("Cube projection BG"),
		Layout: c.BindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: c.UniformBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	return nil
}

func (c *Context) createPipeline(stride int, shaderSource string) error {
	module, err := c.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          c.label("Cube shader"),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderSource},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	defer module.Release()

	c.PipelineLayout, err = c.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            c.label("Cube pipeline layout"),
		BindGroupLayouts: []*wgpu.BindGroupLayout{c.BindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	desc := pipelineDescriptor(module, c.PipelineLayout, stride, c.Config.Format)
	desc.Label = c.label(desc.Label)
	c.Pipeline, err = c.Device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	return nil
}

func (c *Context) createDepthBuffer() error {
	var err error
	desc := depthTextureDescriptor()
	desc.Label = c.label(desc.Label)
	c.DepthTexture, err = c.Device.CreateTexture(desc)
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	c.DepthView, err = c.DepthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}
	return nil
}

func bindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: MatrixSize,
			},
		},
	}
}

func vertexBufferLayout(stride int) wgpu.VertexBufferLayout {
	format := wgpu.VertexFormatFloat32x4
	if stride == 3 {
		format = wgpu.VertexFormatFloat32x3
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(stride * 4),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: format, Offset: 0, ShaderLocation: 0},
		},
	}
}

// pipelineDescriptor draws the strip without culling: its winding is not
// consistent, so back-face culling would drop faces.
func pipelineDescriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, stride int, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	return &wgpu.RenderPipelineDescriptor{
		Label:  "Cube pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: shaders.CubeVertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(stride)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: shaders.CubeFragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

func depthTextureDescriptor() *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label:         "Cube depth",
		Size:          wgpu.Extent3D{Width: spinny.Resolution, Height: spinny.Resolution, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	}
}
