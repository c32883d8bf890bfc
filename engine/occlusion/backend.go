// Package occlusion ties the cascade planner, the shadow cascade array, the
// screen-space AO engine and the voxel AO cache into one per-frame pipeline
// behind a single GPU backend boundary.
package occlusion

import (
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/shadow"
	"github.com/cogentcore/webgpu/wgpu"
)

// OcclusionTarget is the owned R8Unorm texture the resolved AO buffer is
// uploaded into each frame, sampled by the main shading pass.
type OcclusionTarget interface {
	// View returns the sampleable texture view.
	//
	// Returns:
	//   - *wgpu.TextureView: the occlusion texture view
	View() *wgpu.TextureView

	// Upload writes a [0, 1] occlusion buffer into the texture as single
	// channel bytes.
	//
	// Parameters:
	//   - values: width*height occlusion values
	Upload(values []float32)

	// Destroy releases the view and its backing texture.
	Destroy()
}

// Backend is the pipeline's GPU boundary. The wgpu implementation wraps a
// host renderer's device and queue; tests substitute a fake so the pipeline
// logic runs headless.
type Backend interface {
	shadow.TargetDevice

	// CreateOcclusionTarget allocates the screen-sized R8Unorm AO texture.
	// Called at construction and again on every resize.
	//
	// Parameters:
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//
	// Returns:
	//   - OcclusionTarget: the owned texture
	//   - error: an error if allocation fails
	CreateOcclusionTarget(width, height int) (OcclusionTarget, error)

	// BeginShadowFrame creates a command encoder for batching all cascade
	// depth passes within a frame. Must be paired with EndShadowFrame.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginShadowFrame() error

	// BeginShadowPass starts a depth-only render pass targeting a cascade's
	// depth view. Must be called between BeginShadowFrame and EndShadowFrame.
	//
	// Parameters:
	//   - depthView: the cascade depth view to render into
	BeginShadowPass(depthView *wgpu.TextureView)

	// EndShadowPass ends the current cascade depth pass.
	EndShadowPass()

	// EndShadowFrame finishes the shadow command encoder and submits to the
	// GPU queue.
	EndShadowFrame()
}
