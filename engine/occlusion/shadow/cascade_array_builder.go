package shadow

import (
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/cascade"
	"github.com/Carmen-Shannon/umbra-go/logger"
)

// CascadeArrayBuilderOption is a function that configures a CascadeArray
// during construction.
type CascadeArrayBuilderOption func(*cascadeArray)

// WithArrayCount is an option builder that sets the number of cascade depth
// targets to allocate. Values are clamped to [1, cascade.MaxCascades].
//
// Parameters:
//   - count: the cascade count
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the count option to a cascade array
func WithArrayCount(count int) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		if count < 1 {
			count = 1
		}
		if count > cascade.MaxCascades {
			count = cascade.MaxCascades
		}
		a.targets = make([]DepthTarget, count)
		a.enabled = make([]bool, count)
	}
}

// WithResolution is an option builder that sets the per-cascade depth map
// resolution. Non-positive values are ignored.
//
// Parameters:
//   - resolution: the depth map width and height in texels
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the resolution option to a cascade array
func WithResolution(resolution int) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		if resolution > 0 {
			a.resolution = resolution
		}
	}
}

// WithBias is an option builder that sets the constant depth comparison bias.
//
// Parameters:
//   - bias: the comparison bias
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the bias option to a cascade array
func WithBias(bias float32) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		if bias >= 0 {
			a.bias = bias
		}
	}
}

// WithFilter is an option builder that sets the shadow filtering mode.
//
// Parameters:
//   - mode: the filter mode
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the filter option to a cascade array
func WithFilter(mode FilterMode) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		a.filter = mode
	}
}

// WithPCFSamples is an option builder that sets the PCF tap count. Only the
// square kernel sizes 1, 4, 9 and 16 are valid; other values snap to the
// nearest kernel below.
//
// Parameters:
//   - samples: the requested tap count
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the tap count option to a cascade array
func WithPCFSamples(samples int) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		switch {
		case samples >= 16:
			a.pcfSamples = 16
		case samples >= 9:
			a.pcfSamples = 9
		case samples >= 4:
			a.pcfSamples = 4
		default:
			a.pcfSamples = 1
		}
	}
}

// WithPCFRadius is an option builder that sets the PCF sampling radius in
// texels.
//
// Parameters:
//   - radius: the radius in texels
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the radius option to a cascade array
func WithPCFRadius(radius float32) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		if radius > 0 {
			a.pcfRadius = radius
		}
	}
}

// WithArrayLogger is an option builder that sets the logger used for disabled
// cascade warnings.
//
// Parameters:
//   - log: the logger to inject
//
// Returns:
//   - CascadeArrayBuilderOption: a function that applies the logger option to a cascade array
func WithArrayLogger(log logger.Logger) CascadeArrayBuilderOption {
	return func(a *cascadeArray) {
		if log != nil {
			a.log = log
		}
	}
}
