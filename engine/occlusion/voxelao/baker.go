package voxelao

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// maxBakeTasks caps the number of tasks submitted per bake.
const maxBakeTasks = 128

// Baker warms a voxel AO cache for a world region ahead of mesh building, so
// the mesh pipeline's queries all hit. Slabs of the region fan out across a
// persistent worker pool; the cache's own locking keeps the workers safe.
type Baker struct {
	pool    worker.DynamicWorkerPool
	workers int
	taskID  int
}

// NewBaker creates a baker with one worker per CPU.
//
// Parameters:
//   - workers: the worker count, or <= 0 for one per CPU
//
// Returns:
//   - *Baker: the baker
func NewBaker(workers int) *Baker {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Baker{
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
	}
}

// Bake computes and caches the AO value of every voxel in the inclusive
// region [min, max], one x-slab per task. Blocks until the region is done.
//
// Parameters:
//   - c: the cache to warm
//   - min: the region's minimum corner (inclusive)
//   - max: the region's maximum corner (inclusive)
func (b *Baker) Bake(c Cache, min, max [3]int) {
	if c == nil || min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return
	}

	// Cap the task count so the submit queue never fills on large regions.
	span := max[0] - min[0] + 1
	stride := (span + maxBakeTasks - 1) / maxBakeTasks

	var wg sync.WaitGroup
	for x := min[0]; x <= max[0]; x += stride {
		end := x + stride - 1
		if end > max[0] {
			end = max[0]
		}

		wg.Add(1)
		startCap, endCap := x, end // capture for closure
		b.taskID++
		b.pool.SubmitTask(worker.Task{
			ID: b.taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for sx := startCap; sx <= endCap; sx++ {
					for y := min[1]; y <= max[1]; y++ {
						for z := min[2]; z <= max[2]; z++ {
							c.Query(sx, y, z, FaceTop)
						}
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}
