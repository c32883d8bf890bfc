package voxelao

import "github.com/Carmen-Shannon/umbra-go/logger"

// CacheBuilderOption is a function that configures a Cache during
// construction.
type CacheBuilderOption func(*cache)

// WithCapacity is an option builder that sets the maximum number of cached
// entries. Non-positive values are ignored.
//
// Parameters:
//   - capacity: the entry limit
//
// Returns:
//   - CacheBuilderOption: a function that applies the capacity option to a cache
func WithCapacity(capacity int) CacheBuilderOption {
	return func(c *cache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithIntensity is an option builder that sets the occlusion strength
// multiplier. Values are clamped to be non-negative.
//
// Parameters:
//   - intensity: the multiplier applied to the solid-neighbor ratio
//
// Returns:
//   - CacheBuilderOption: a function that applies the intensity option to a cache
func WithIntensity(intensity float32) CacheBuilderOption {
	return func(c *cache) {
		if intensity >= 0 {
			c.intensity = intensity
		}
	}
}

// WithCacheLogger is an option builder that sets the logger used by the
// cache and its baker.
//
// Parameters:
//   - log: the logger to inject
//
// Returns:
//   - CacheBuilderOption: a function that applies the logger option to a cache
func WithCacheLogger(log logger.Logger) CacheBuilderOption {
	return func(c *cache) {
		if log != nil {
			c.log = log
		}
	}
}
