package occlusion

import (
	"time"

	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/ao"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/shadow"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/voxelao"
	"github.com/Carmen-Shannon/umbra-go/logger"
)

// PipelineBuilderOption is a function that configures a Pipeline during
// construction.
type PipelineBuilderOption func(*pipeline)

// WithCascades is an option builder that sets the cascade count.
//
// Parameters:
//   - count: the cascade count (clamped downstream)
//
// Returns:
//   - PipelineBuilderOption: a function that applies the cascade count option to a pipeline
func WithCascades(count int) PipelineBuilderOption {
	return func(p *pipeline) {
		if count > 0 {
			p.cascadeCount = count
		}
	}
}

// WithShadowDistance is an option builder that sets the far bound of the last
// cascade in world units.
//
// Parameters:
//   - distance: the shadow distance
//
// Returns:
//   - PipelineBuilderOption: a function that applies the distance option to a pipeline
func WithShadowDistance(distance float32) PipelineBuilderOption {
	return func(p *pipeline) {
		if distance > 0 {
			p.shadowDistance = distance
		}
	}
}

// WithSplitLambda is an option builder that sets the uniform/logarithmic
// split blend factor.
//
// Parameters:
//   - lambda: the blend factor (clamped downstream)
//
// Returns:
//   - PipelineBuilderOption: a function that applies the lambda option to a pipeline
func WithSplitLambda(lambda float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.lambda = lambda
	}
}

// WithShadowResolution is an option builder that sets the per-cascade depth
// map resolution.
//
// Parameters:
//   - resolution: the depth map width and height in texels
//
// Returns:
//   - PipelineBuilderOption: a function that applies the resolution option to a pipeline
func WithShadowResolution(resolution int) PipelineBuilderOption {
	return func(p *pipeline) {
		if resolution > 0 {
			p.shadowResolution = resolution
		}
	}
}

// WithShadowFilter is an option builder that sets the shadow filtering mode.
//
// Parameters:
//   - mode: nearest comparison or PCF
//
// Returns:
//   - PipelineBuilderOption: a function that applies the filter option to a pipeline
func WithShadowFilter(mode shadow.FilterMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.filter = mode
	}
}

// WithAOQuality is an option builder that sets the quality tier driving both
// the AO kernel size and the PCF tap count.
//
// Parameters:
//   - quality: the tier (clamped)
//
// Returns:
//   - PipelineBuilderOption: a function that applies the quality option to a pipeline
func WithAOQuality(quality ao.Quality) PipelineBuilderOption {
	return func(p *pipeline) {
		p.quality = quality.Clamp()
	}
}

// WithAOTechnique is an option builder that sets the initial AO technique.
//
// Parameters:
//   - t: the technique
//
// Returns:
//   - PipelineBuilderOption: a function that applies the technique option to a pipeline
func WithAOTechnique(t ao.Technique) PipelineBuilderOption {
	return func(p *pipeline) {
		p.technique = t
	}
}

// WithResolveMode is an option builder that sets the AO resolve filter mode.
//
// Parameters:
//   - mode: box or bilateral
//
// Returns:
//   - PipelineBuilderOption: a function that applies the resolve mode option to a pipeline
func WithResolveMode(mode ao.ResolveMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.resolveMode = mode
	}
}

// WithOccupancy is an option builder that enables the voxel AO cache backed
// by a world occupancy callback.
//
// Parameters:
//   - occupancy: the world solidity query
//
// Returns:
//   - PipelineBuilderOption: a function that applies the occupancy option to a pipeline
func WithOccupancy(occupancy voxelao.OccupancyFunc) PipelineBuilderOption {
	return func(p *pipeline) {
		p.occupancy = occupancy
	}
}

// WithVoxelCapacity is an option builder that sets the voxel cache's entry
// limit.
//
// Parameters:
//   - capacity: the entry limit
//
// Returns:
//   - PipelineBuilderOption: a function that applies the capacity option to a pipeline
func WithVoxelCapacity(capacity int) PipelineBuilderOption {
	return func(p *pipeline) {
		if capacity > 0 {
			p.voxelCapacity = capacity
		}
	}
}

// WithProfiling is an option builder that enables the pass-timing profiler.
//
// Parameters:
//   - interval: how often per-pass averages are logged
//
// Returns:
//   - PipelineBuilderOption: a function that applies the profiling option to a pipeline
func WithProfiling(interval time.Duration) PipelineBuilderOption {
	return func(p *pipeline) {
		if interval > 0 {
			p.profileInterval = interval
		}
	}
}

// WithPipelineLogger is an option builder that sets the logger injected into
// every component the pipeline builds.
//
// Parameters:
//   - log: the logger to inject
//
// Returns:
//   - PipelineBuilderOption: a function that applies the logger option to a pipeline
func WithPipelineLogger(log logger.Logger) PipelineBuilderOption {
	return func(p *pipeline) {
		if log != nil {
			p.log = log
		}
	}
}
