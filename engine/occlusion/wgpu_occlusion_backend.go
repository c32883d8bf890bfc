package occlusion

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuDepthTarget is the wgpu implementation of the shadow.DepthTarget
// interface.
type wgpuDepthTarget struct {
	view *wgpu.TextureView
	tex  *wgpu.Texture
}

func (t *wgpuDepthTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *wgpuDepthTarget) Destroy() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// wgpuOcclusionTarget is the wgpu implementation of the OcclusionTarget
// interface.
type wgpuOcclusionTarget struct {
	queue  *wgpu.Queue
	view   *wgpu.TextureView
	tex    *wgpu.Texture
	width  int
	height int
	pixels []byte
}

func (t *wgpuOcclusionTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *wgpuOcclusionTarget) Upload(values []float32) {
	n := t.width * t.height
	if len(values) < n || t.tex == nil {
		return
	}
	for i := 0; i < n; i++ {
		v := values[i]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		t.pixels[i] = byte(v*255 + 0.5)
	}

	t.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   wgpu.TextureAspectAll,
		},
		t.pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.width),
			RowsPerImage: uint32(t.height),
		},
		&wgpu.Extent3D{
			Width:              uint32(t.width),
			Height:             uint32(t.height),
			DepthOrArrayLayers: 1,
		},
	)
}

func (t *wgpuOcclusionTarget) Destroy() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// wgpuOcclusionBackendImpl wraps a host renderer's device and queue. Shadow
// passes use their own command encoder, a Depth32Float texture (no color),
// and sample count 1.
type wgpuOcclusionBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	shadowFrameEncoder *wgpu.CommandEncoder
	shadowPass         *wgpu.RenderPassEncoder
}

var _ Backend = &wgpuOcclusionBackendImpl{}

// NewWGPUBackend creates the production backend on top of a host renderer's
// device and queue. The backend does not own either; the host remains
// responsible for their lifetime.
//
// Parameters:
//   - device: the host wgpu device
//   - queue: the host wgpu queue
//
// Returns:
//   - Backend: the wgpu-backed implementation
func NewWGPUBackend(device *wgpu.Device, queue *wgpu.Queue) Backend {
	return &wgpuOcclusionBackendImpl{
		mu:     &sync.Mutex{},
		device: device,
		queue:  queue,
	}
}

func (b *wgpuOcclusionBackendImpl) CreateDepthTarget(label string, width, height int) (shadow.DepthTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cascade depth texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create cascade depth texture view: %w", err)
	}

	return &wgpuDepthTarget{view: view, tex: tex}, nil
}

func (b *wgpuOcclusionBackendImpl) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	return samp, nil
}

func (b *wgpuOcclusionBackendImpl) CreateOcclusionTarget(width, height int) (OcclusionTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Occlusion Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create occlusion texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create occlusion texture view: %w", err)
	}

	return &wgpuOcclusionTarget{
		queue:  b.queue,
		view:   view,
		tex:    tex,
		width:  width,
		height: height,
		pixels: make([]byte, width*height),
	}, nil
}

func (b *wgpuOcclusionBackendImpl) BeginShadowFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.shadowFrameEncoder = encoder
	return nil
}

func (b *wgpuOcclusionBackendImpl) BeginShadowPass(depthView *wgpu.TextureView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowFrameEncoder == nil {
		return
	}

	pass := b.shadowFrameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		// Depth-only pass, no color attachments.
		ColorAttachments: nil,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore, // must store, this is the shadow map
			DepthClearValue: 1.0,
		},
	})
	b.shadowPass = pass
}

func (b *wgpuOcclusionBackendImpl) EndShadowPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowPass == nil {
		return
	}

	b.shadowPass.End()
	b.shadowPass = nil
}

func (b *wgpuOcclusionBackendImpl) EndShadowFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowFrameEncoder == nil {
		return
	}

	commandBuffer, err := b.shadowFrameEncoder.Finish(nil)
	if err != nil {
		b.shadowFrameEncoder.Release()
		b.shadowFrameEncoder = nil
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.shadowFrameEncoder.Release()
	b.shadowFrameEncoder = nil
}
