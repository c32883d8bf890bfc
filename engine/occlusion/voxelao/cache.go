// Package voxelao estimates world-space ambient occlusion for voxel faces at
// mesh-build time. Results are memoized in a bounded cache keyed by voxel
// position; the world supplies solidity through an occupancy callback.
package voxelao

import (
	"sync"

	"github.com/Carmen-Shannon/umbra-go/logger"
)

// DefaultCapacity is the default maximum number of cached entries.
const DefaultCapacity = 65536

// DefaultIntensity is the default occlusion strength multiplier.
const DefaultIntensity float32 = 1.0

// MinAO is the darkest value a voxel face can receive. Fully enclosed faces
// clamp here instead of going black.
const MinAO float32 = 0.1

// OccupancyFunc reports whether the voxel at a world coordinate is solid.
// The loaded flag is false when the voxel's chunk is not resident; queries
// touching unloaded chunks return neutral AO and are not cached.
type OccupancyFunc func(x, y, z int) (solid, loaded bool)

// Face identifies which side of a voxel is being shaded.
type Face int

const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
)

// cache is the implementation of the Cache interface.
type cache struct {
	mu  sync.Mutex
	log logger.Logger

	occupancy OccupancyFunc
	intensity float32
	capacity  int

	entries map[[3]int]float32
}

// Cache memoizes voxel AO values up to a fixed capacity. Entries are created
// lazily on first query and never re-validated against world mutation; use
// Invalidate when voxels change or Clear on world reload. At capacity, new
// values are still computed and returned but not persisted. Safe for
// concurrent use by mesh-building workers.
type Cache interface {
	// Query returns the AO factor for a voxel face, computing and caching it
	// on first access. Queries whose stencil touches an unloaded chunk
	// return 1.0 without caching.
	//
	// Parameters:
	//   - x: voxel x coordinate
	//   - y: voxel y coordinate
	//   - z: voxel z coordinate
	//   - face: the face being shaded
	//
	// Returns:
	//   - float32: AO in [MinAO, 1.0], 1 = fully lit
	Query(x, y, z int, face Face) float32

	// Len returns the number of cached entries.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// Capacity returns the maximum number of cached entries.
	//
	// Returns:
	//   - int: the capacity
	Capacity() int

	// Invalidate drops every cached entry whose stencil can observe the
	// voxel at the given coordinate, i.e. the 3x3x3 neighborhood around it.
	// Call after placing or removing a voxel.
	//
	// Parameters:
	//   - x: voxel x coordinate
	//   - y: voxel y coordinate
	//   - z: voxel z coordinate
	Invalidate(x, y, z int)

	// Clear drops every cached entry, e.g. on world reload.
	Clear()
}

var _ Cache = &cache{}

// NewCache creates a voxel AO cache backed by the given occupancy callback.
//
// Parameters:
//   - occupancy: the world solidity query, must not be nil
//   - opts: variadic list of CacheBuilderOption functions to configure the cache
//
// Returns:
//   - Cache: the constructed cache
func NewCache(occupancy OccupancyFunc, opts ...CacheBuilderOption) Cache {
	c := &cache{
		log:       logger.Nop(),
		occupancy: occupancy,
		intensity: DefaultIntensity,
		capacity:  DefaultCapacity,
		entries:   make(map[[3]int]float32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cache) Query(x, y, z int, face Face) float32 {
	key := [3]int{x, y, z}

	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	// Compute outside the lock; the occupancy callback may be slow.
	solidCount := 0
	for _, offset := range stencilFor(face) {
		solid, loaded := c.occupancy(x+offset[0], y+offset[1], z+offset[2])
		if !loaded {
			return 1.0
		}
		if solid {
			solidCount++
		}
	}

	ratio := float32(solidCount) / 8.0
	ao := 1.0 - ratio*c.intensity
	if ao < MinAO {
		ao = MinAO
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		// Another worker computed the same voxel first; its value wins so
		// the entry stays immutable.
		return v
	}
	if len(c.entries) < c.capacity {
		c.entries[key] = ao
	}
	return ao
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *cache) Capacity() int {
	return c.capacity
}

func (c *cache) Invalidate(x, y, z int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				delete(c.entries, [3]int{x + dx, y + dy, z + dz})
			}
		}
	}
}

func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[[3]int]float32)
}
