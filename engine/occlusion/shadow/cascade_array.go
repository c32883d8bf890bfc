package shadow

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/cascade"
	"github.com/Carmen-Shannon/umbra-go/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// cascadeArray is the implementation of the CascadeArray interface.
type cascadeArray struct {
	log    logger.Logger
	device TargetDevice

	resolution int
	bias       float32

	filter     FilterMode
	pcfSamples int
	pcfRadius  float32

	targets []DepthTarget
	enabled []bool
	sampler *wgpu.Sampler

	outstanding atomic.Int32
	destroyed   bool
}

// CascadeArray owns the depth map per cascade plus the shared comparison
// sampler, and exposes scoped bindings for pass encoding. Depth targets are
// allocated once at construction and survive screen resizes; only Destroy
// releases them.
type CascadeArray interface {
	// Count returns the number of cascade slots, enabled or not.
	//
	// Returns:
	//   - int: the cascade count
	Count() int

	// Resolution returns the per-cascade depth map resolution in texels.
	//
	// Returns:
	//   - int: the resolution (width and height)
	Resolution() int

	// Enabled reports whether the cascade's depth target was allocated
	// successfully. Disabled cascades are skipped by the depth pass and
	// treated as fully lit by the lit pass.
	//
	// Parameters:
	//   - i: the cascade index
	//
	// Returns:
	//   - bool: true if the cascade has a usable depth target
	Enabled(i int) bool

	// View returns the cascade's depth view, or nil if the index is out of
	// range or the cascade is disabled.
	//
	// Parameters:
	//   - i: the cascade index
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view
	View(i int) *wgpu.TextureView

	// Bind acquires a scoped binding for one cascade. Out-of-range indices
	// are clamped into the valid range. The caller must Release the binding
	// once its pass is encoded.
	//
	// Parameters:
	//   - i: the cascade index
	//
	// Returns:
	//   - *Binding: the scoped binding
	Bind(i int) *Binding

	// ComparisonSampler returns the shared less-than comparison sampler.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	ComparisonSampler() *wgpu.Sampler

	// Filter returns the active shadow filtering mode.
	//
	// Returns:
	//   - FilterMode: the filter mode
	Filter() FilterMode

	// PCFSamples returns the number of comparison taps per fragment when
	// Filter is FilterPCF, 1 otherwise.
	//
	// Returns:
	//   - int: the tap count
	PCFSamples() int

	// PCFRadius returns the PCF sampling radius in texels.
	//
	// Returns:
	//   - float32: the radius
	PCFRadius() float32

	// Bias returns the constant depth comparison bias.
	//
	// Returns:
	//   - float32: the bias
	Bias() float32

	// TexelSize returns 1 / resolution, the UV size of one shadow texel.
	//
	// Returns:
	//   - float32: the texel size
	TexelSize() float32

	// Destroy releases every depth target. Teardown is refused while scoped
	// bindings are outstanding.
	//
	// Returns:
	//   - error: an error if bindings are still held
	Destroy() error
}

var _ CascadeArray = &cascadeArray{}

// NewCascadeArray allocates the depth targets and comparison sampler for a
// cascade set. A cascade whose depth target cannot be allocated is disabled
// and logged rather than failing the whole array; sampler creation failure is
// fatal because every cascade lookup shares it.
//
// Parameters:
//   - device: the target device used for GPU allocations
//   - opts: variadic list of CascadeArrayBuilderOption functions to configure the array
//
// Returns:
//   - CascadeArray: the constructed array
//   - error: an error if the comparison sampler cannot be created
func NewCascadeArray(device TargetDevice, opts ...CascadeArrayBuilderOption) (CascadeArray, error) {
	a := &cascadeArray{
		log:        logger.Nop(),
		device:     device,
		resolution: DefaultResolution,
		bias:       DefaultBias,
		filter:     FilterPCF,
		pcfSamples: 9,
		pcfRadius:  DefaultPCFRadius,
		targets:    make([]DepthTarget, cascade.DefaultCascadeCount),
		enabled:    make([]bool, cascade.DefaultCascadeCount),
	}
	for _, opt := range opts {
		opt(a)
	}

	sampler, err := device.CreateComparisonSampler()
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow comparison sampler: %w", err)
	}
	a.sampler = sampler

	for i := range a.targets {
		label := fmt.Sprintf("Shadow Cascade %d", i)
		target, err := device.CreateDepthTarget(label, a.resolution, a.resolution)
		if err != nil {
			a.log.Printf("cascade %d: depth target allocation failed, disabling cascade: %v", i, err)
			continue
		}
		a.targets[i] = target
		a.enabled[i] = true
	}
	return a, nil
}

func (a *cascadeArray) Count() int {
	return len(a.targets)
}

func (a *cascadeArray) Resolution() int {
	return a.resolution
}

func (a *cascadeArray) Enabled(i int) bool {
	return i >= 0 && i < len(a.enabled) && a.enabled[i]
}

func (a *cascadeArray) View(i int) *wgpu.TextureView {
	if !a.Enabled(i) {
		return nil
	}
	return a.targets[i].View()
}

func (a *cascadeArray) Bind(i int) *Binding {
	if i < 0 {
		i = 0
	}
	if i >= len(a.targets) {
		i = len(a.targets) - 1
	}
	b := &Binding{
		Cascade: i,
		View:    a.View(i),
		Sampler: a.sampler,
		owner:   a,
	}
	a.outstanding.Add(1)
	return b
}

func (a *cascadeArray) ComparisonSampler() *wgpu.Sampler {
	return a.sampler
}

func (a *cascadeArray) Filter() FilterMode {
	return a.filter
}

func (a *cascadeArray) PCFSamples() int {
	if a.filter == FilterNone {
		return 1
	}
	return a.pcfSamples
}

func (a *cascadeArray) PCFRadius() float32 {
	return a.pcfRadius
}

func (a *cascadeArray) Bias() float32 {
	return a.bias
}

func (a *cascadeArray) TexelSize() float32 {
	return 1.0 / float32(a.resolution)
}

func (a *cascadeArray) Destroy() error {
	if n := a.outstanding.Load(); n > 0 {
		return fmt.Errorf("cannot destroy cascade array: %d bindings outstanding", n)
	}
	if a.destroyed {
		return nil
	}
	a.destroyed = true
	for i, t := range a.targets {
		if t != nil {
			t.Destroy()
			a.targets[i] = nil
		}
		a.enabled[i] = false
	}
	if a.sampler != nil {
		a.sampler.Release()
		a.sampler = nil
	}
	return nil
}
