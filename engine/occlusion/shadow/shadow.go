// Package shadow owns the GPU-side resources of the cascade shadow pipeline:
// the per-cascade depth targets, the comparison sampler, and the filtering
// parameters applied when the lit pass samples them. Cascade layout planning
// lives in the cascade package; this package only holds what the planner's
// output is rendered into.
package shadow

import (
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultResolution is the default width and height of each cascade depth map
// in texels.
const DefaultResolution = 2048

// DefaultBias is the default constant depth bias applied during shadow
// comparison to suppress shadow acne.
const DefaultBias float32 = 0.001

// DefaultNormalBiasScale is the default multiplier on the per-texel world size
// used to derive the normal-offset bias.
const DefaultNormalBiasScale float32 = 3.0

// DefaultPCFRadius is the default PCF sampling radius in texels.
const DefaultPCFRadius float32 = 1.0

// FilterMode selects how the lit pass filters shadow map lookups.
type FilterMode int

const (
	// FilterNone performs a single hardware comparison per fragment.
	FilterNone FilterMode = iota

	// FilterPCF averages several comparison taps in a grid around the
	// fragment's shadow UV for soft penumbra edges.
	FilterPCF
)

// DepthTarget is one owned depth attachment. Implementations wrap the
// backing texture so Destroy can release both the view and the texture.
type DepthTarget interface {
	// View returns the attachment view rendered into by the depth pass and
	// sampled by the lit pass.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view
	View() *wgpu.TextureView

	// Destroy releases the view and its backing texture.
	Destroy()
}

// TargetDevice abstracts the GPU calls the cascade array needs so the array
// logic can be exercised without a live adapter.
type TargetDevice interface {
	// CreateDepthTarget allocates a Depth32Float render-attachment texture.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - width: texture width in texels
	//   - height: texture height in texels
	//
	// Returns:
	//   - DepthTarget: the owned depth attachment
	//   - error: an error if allocation fails
	CreateDepthTarget(label string, width, height int) (DepthTarget, error)

	// CreateComparisonSampler creates the less-than comparison sampler shared
	// by every cascade lookup.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	//   - error: an error if creation fails
	CreateComparisonSampler() (*wgpu.Sampler, error)
}

// Binding is a scoped handle to one cascade's depth resources. The holder
// must call Release when the pass that uses it has been encoded; the array
// refuses teardown while bindings are outstanding.
type Binding struct {
	// Cascade is the index of the bound cascade.
	Cascade int

	// View is the cascade's depth view, nil if the cascade is disabled.
	View *wgpu.TextureView

	// Sampler is the shared comparison sampler.
	Sampler *wgpu.Sampler

	released atomic.Bool
	owner    *cascadeArray
}

// Release ends the binding's scope. Safe to call more than once; only the
// first call is counted.
func (b *Binding) Release() {
	if b == nil || b.released.Swap(true) {
		return
	}
	b.owner.outstanding.Add(-1)
}
