package ao

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/umbra-go/logger"
)

// maxRowTasks caps the number of tasks submitted per frame so the worker
// queue never fills regardless of screen height.
const maxRowTasks = 128

// engine is the implementation of the Engine interface.
type engine struct {
	log logger.Logger

	width  int
	height int

	kernel    *Kernel
	technique Technique
	resolver  *Resolver

	raw      []float32
	resolved []float32

	// pool manages a bounded set of reusable goroutines for the per-frame
	// row fan-out. Workers persist across frames.
	pool    worker.DynamicWorkerPool
	workers int
	taskID  int
}

// Engine runs the screen-space occlusion pass on the CPU: it fans the
// G-buffer's rows out across a worker pool, evaluates the active technique
// per pixel into the raw buffer, and resolves the raw buffer into the final
// AO term. The buffers are reused between frames and reallocated only on
// Resize.
type Engine interface {
	// Evaluate fills the raw occlusion buffer for one frame. The geometry
	// buffer must match the engine's resolution; call Resize first if the
	// screen changed.
	//
	// Parameters:
	//   - gb: the geometry buffer for this frame
	//   - proj: the camera projection matrix (column-major)
	Evaluate(gb *GBuffer, proj [16]float32)

	// Resolve filters the raw buffer into the resolved buffer using the
	// engine's resolver.
	//
	// Parameters:
	//   - gb: the geometry buffer, used by the bilateral mode
	Resolve(gb *GBuffer)

	// Raw returns the unfiltered occlusion buffer, width*height values in
	// [0, 1]. Owned by the engine, overwritten by the next Evaluate.
	//
	// Returns:
	//   - []float32: the raw buffer
	Raw() []float32

	// Resolved returns the filtered occlusion buffer. Owned by the engine,
	// overwritten by the next Resolve.
	//
	// Returns:
	//   - []float32: the resolved buffer
	Resolved() []float32

	// Width returns the engine's buffer width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the engine's buffer height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int

	// Resize reallocates the occlusion buffers for a new screen resolution.
	// The kernel and technique are untouched.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetQuality switches the quality tier, regenerating the kernel only if
	// the tier changed.
	//
	// Parameters:
	//   - quality: the new tier (clamped)
	SetQuality(quality Quality)

	// Quality returns the active tier.
	//
	// Returns:
	//   - Quality: the tier
	Quality() Quality

	// SetTechnique swaps the occlusion technique. Nil is ignored.
	//
	// Parameters:
	//   - t: the technique to use
	SetTechnique(t Technique)

	// Technique returns the active technique.
	//
	// Returns:
	//   - Technique: the technique
	Technique() Technique

	// Kernel returns the engine's sample kernel.
	//
	// Returns:
	//   - *Kernel: the kernel
	Kernel() *Kernel

	// Resolver returns the engine's resolver for mode and tuning changes.
	//
	// Returns:
	//   - *Resolver: the resolver
	Resolver() *Resolver
}

var _ Engine = &engine{}

// NewEngine creates an occlusion engine at the given resolution with SSAO,
// medium quality and box resolve unless options say otherwise.
//
// Parameters:
//   - width: screen width in pixels
//   - height: screen height in pixels
//   - opts: variadic list of EngineBuilderOption functions to configure the engine
//
// Returns:
//   - Engine: the constructed engine
func NewEngine(width, height int, opts ...EngineBuilderOption) Engine {
	e := &engine{
		log:       logger.Nop(),
		kernel:    NewKernel(QualityMedium),
		technique: NewSSAO(),
		resolver:  NewResolver(),
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Resize(width, height)

	// Queue size of 256 accommodates the capped row-task count with headroom.
	e.pool = worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
	return e
}

func (e *engine) Evaluate(gb *GBuffer, proj [16]float32) {
	if gb.Width() != e.width || gb.Height() != e.height {
		e.log.Printf("occlusion engine: geometry buffer %dx%d does not match engine %dx%d, resizing",
			gb.Width(), gb.Height(), e.width, e.height)
		e.Resize(gb.Width(), gb.Height())
	}

	ctx := &EvalContext{GBuffer: gb, Kernel: e.kernel, Proj: proj}
	tech := e.technique
	w := e.width

	rowsPerTask := (e.height + maxRowTasks - 1) / maxRowTasks
	var wg sync.WaitGroup
	for start := 0; start < e.height; start += rowsPerTask {
		end := start + rowsPerTask
		if end > e.height {
			end = e.height
		}

		wg.Add(1)
		startCap, endCap := start, end // capture for closure
		e.taskID++
		e.pool.SubmitTask(worker.Task{
			ID: e.taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for y := startCap; y < endCap; y++ {
					row := y * w
					for x := 0; x < w; x++ {
						e.raw[row+x] = tech.Evaluate(ctx, x, y)
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (e *engine) Resolve(gb *GBuffer) {
	e.resolver.Apply(e.raw, gb, e.resolved)
}

func (e *engine) Raw() []float32 {
	return e.raw
}

func (e *engine) Resolved() []float32 {
	return e.resolved
}

func (e *engine) Width() int {
	return e.width
}

func (e *engine) Height() int {
	return e.height
}

func (e *engine) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	e.width = width
	e.height = height
	e.raw = make([]float32, width*height)
	e.resolved = make([]float32, width*height)
}

func (e *engine) SetQuality(quality Quality) {
	if e.kernel.SetQuality(quality) {
		e.log.Printf("occlusion engine: quality set to %s (%d samples)", quality.Clamp(), e.kernel.Size())
	}
}

func (e *engine) Quality() Quality {
	return e.kernel.Quality()
}

func (e *engine) SetTechnique(t Technique) {
	if t != nil {
		e.technique = t
	}
}

func (e *engine) Technique() Technique {
	return e.technique
}

func (e *engine) Kernel() *Kernel {
	return e.kernel
}

func (e *engine) Resolver() *Resolver {
	return e.resolver
}
