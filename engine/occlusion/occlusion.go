package occlusion

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/ao"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/cascade"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/shadow"
	"github.com/Carmen-Shannon/umbra-go/engine/occlusion/voxelao"
	"github.com/Carmen-Shannon/umbra-go/engine/profiler"
	"github.com/Carmen-Shannon/umbra-go/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	log     logger.Logger
	backend Backend

	planner cascade.Planner
	array   shadow.CascadeArray
	gpuData cascade.GPUCascadeData

	engine ao.Engine
	target OcclusionTarget

	voxels voxelao.Cache

	prof *profiler.Profiler

	cascades       []cascade.Cascade
	shadowsEnabled bool
	aoEnabled      bool

	// Construction inputs replayed by the builder before resources exist.
	width, height    int
	quality          ao.Quality
	technique        ao.Technique
	resolveMode      ao.ResolveMode
	cascadeCount     int
	lambda           float32
	shadowDistance   float32
	shadowResolution int
	filter           shadow.FilterMode
	occupancy        voxelao.OccupancyFunc
	voxelCapacity    int
	profileInterval  time.Duration
}

// Pipeline sequences the per-frame occlusion work: cascade planning, the
// depth passes the host encodes through it, and the AO evaluate/resolve/
// upload chain. The voxel cache hangs off the side for mesh-build queries.
type Pipeline interface {
	// PlanShadows recomputes the cascade layout and the GPU cascade data for
	// this frame. Returns nil when shadows are disabled.
	//
	// Parameters:
	//   - cam: the camera state for this frame
	//   - lightDir: the directional light's unit direction
	//
	// Returns:
	//   - []cascade.Cascade: the planned cascades, nearest first
	PlanShadows(cam *common.CameraState, lightDir [3]float32) []cascade.Cascade

	// EncodeShadowPasses walks the planned cascades and encodes one
	// depth-only pass per enabled cascade, invoking draw inside each pass so
	// the host can submit its casters. Bindings are scoped to the callback.
	// No-op when shadows are disabled or nothing was planned.
	//
	// Parameters:
	//   - draw: called once per enabled cascade inside its open depth pass
	//
	// Returns:
	//   - error: an error if the shadow command encoder could not be created
	EncodeShadowPasses(draw func(c cascade.Cascade, b *shadow.Binding)) error

	// CascadeData returns the GPU-aligned cascade uniform for the lit pass,
	// valid after PlanShadows.
	//
	// Returns:
	//   - *cascade.GPUCascadeData: the cascade uniform
	CascadeData() *cascade.GPUCascadeData

	// ShadowArray returns the owned cascade depth targets.
	//
	// Returns:
	//   - shadow.CascadeArray: the cascade array
	ShadowArray() shadow.CascadeArray

	// RenderAO evaluates, resolves and uploads the AO term for this frame.
	// With AO disabled the occlusion texture is filled fully lit instead.
	//
	// Parameters:
	//   - gb: the geometry buffer for this frame
	//   - cam: the camera state for this frame
	RenderAO(gb *ao.GBuffer, cam *common.CameraState)

	// OcclusionView returns the sampleable resolved AO texture view.
	//
	// Returns:
	//   - *wgpu.TextureView: the occlusion texture view
	OcclusionView() *wgpu.TextureView

	// AOEngine returns the screen-space occlusion engine for inspection and
	// tuning.
	//
	// Returns:
	//   - ao.Engine: the engine
	AOEngine() ao.Engine

	// QueryVoxelAO returns the baked AO factor for a voxel face, or 1.0 when
	// no occupancy callback was configured.
	//
	// Parameters:
	//   - x: voxel x coordinate
	//   - y: voxel y coordinate
	//   - z: voxel z coordinate
	//   - face: the face being shaded
	//
	// Returns:
	//   - float32: AO in [0.1, 1.0]
	QueryVoxelAO(x, y, z int, face voxelao.Face) float32

	// InvalidateVoxel drops cached voxel AO around a mutated voxel.
	//
	// Parameters:
	//   - x: voxel x coordinate
	//   - y: voxel y coordinate
	//   - z: voxel z coordinate
	InvalidateVoxel(x, y, z int)

	// Resize recreates the screen-space resources for a new resolution. The
	// shadow targets (fixed resolution) and the voxel cache (world space)
	// are untouched.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the occlusion texture could not be recreated
	Resize(width, height int) error

	// SetQuality switches the AO quality tier at runtime.
	//
	// Parameters:
	//   - quality: the new tier (clamped)
	SetQuality(quality ao.Quality)

	// SetTechnique swaps the AO technique at runtime. Nil is ignored.
	//
	// Parameters:
	//   - t: the technique
	SetTechnique(t ao.Technique)

	// SetShadowsEnabled toggles cascade planning and depth pass encoding.
	//
	// Parameters:
	//   - enabled: whether shadows run
	SetShadowsEnabled(enabled bool)

	// SetAOEnabled toggles AO evaluation; disabled frames upload a fully lit
	// buffer.
	//
	// Parameters:
	//   - enabled: whether AO runs
	SetAOEnabled(enabled bool)

	// Tick advances the pipeline's profiler by one frame. No-op without
	// profiling enabled.
	Tick()

	// Destroy releases the occlusion texture and the cascade depth targets.
	//
	// Returns:
	//   - error: an error if shadow bindings are still outstanding
	Destroy() error
}

var _ Pipeline = &pipeline{}

// NewPipeline builds the occlusion pipeline on a backend. The zero
// configuration gives four 2048px cascades, medium-quality SSAO with box
// resolve, and no voxel cache; options override each piece.
//
// Parameters:
//   - backend: the GPU boundary, must not be nil
//   - width: screen width in pixels
//   - height: screen height in pixels
//   - opts: variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the constructed pipeline
//   - error: an error if GPU resource creation fails
func NewPipeline(backend Backend, width, height int, opts ...PipelineBuilderOption) (Pipeline, error) {
	if backend == nil {
		return nil, fmt.Errorf("occlusion pipeline requires a backend")
	}

	p := &pipeline{
		log:              logger.Nop(),
		backend:          backend,
		shadowsEnabled:   true,
		aoEnabled:        true,
		width:            width,
		height:           height,
		quality:          ao.QualityMedium,
		resolveMode:      ao.ResolveBox,
		cascadeCount:     cascade.DefaultCascadeCount,
		lambda:           cascade.DefaultLambda,
		shadowDistance:   cascade.DefaultShadowDistance,
		shadowResolution: shadow.DefaultResolution,
		filter:           shadow.FilterPCF,
		voxelCapacity:    voxelao.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.planner = cascade.NewPlanner(
		cascade.WithCascadeCount(p.cascadeCount),
		cascade.WithLambda(p.lambda),
		cascade.WithShadowDistance(p.shadowDistance),
		cascade.WithLogger(p.log),
	)

	array, err := shadow.NewCascadeArray(backend,
		shadow.WithArrayCount(p.cascadeCount),
		shadow.WithResolution(p.shadowResolution),
		shadow.WithFilter(p.filter),
		shadow.WithPCFSamples(p.quality.PCFSamples()),
		shadow.WithArrayLogger(p.log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build shadow cascade array: %w", err)
	}
	p.array = array

	engineOpts := []ao.EngineBuilderOption{
		ao.WithQuality(p.quality),
		ao.WithResolveMode(p.resolveMode),
		ao.WithEngineLogger(p.log),
	}
	if p.technique != nil {
		engineOpts = append(engineOpts, ao.WithTechnique(p.technique))
	}
	p.engine = ao.NewEngine(width, height, engineOpts...)

	target, err := backend.CreateOcclusionTarget(width, height)
	if err != nil {
		p.array.Destroy()
		return nil, fmt.Errorf("failed to create occlusion target: %w", err)
	}
	p.target = target

	if p.occupancy != nil {
		p.voxels = voxelao.NewCache(p.occupancy,
			voxelao.WithCapacity(p.voxelCapacity),
			voxelao.WithCacheLogger(p.log),
		)
	}

	if p.profileInterval > 0 {
		p.prof = profiler.NewProfiler(p.log)
		p.prof.SetInterval(p.profileInterval)
	}
	return p, nil
}

func (p *pipeline) PlanShadows(cam *common.CameraState, lightDir [3]float32) []cascade.Cascade {
	if !p.shadowsEnabled {
		p.cascades = nil
		return nil
	}

	plan := func() {
		p.cascades = p.planner.Update(cam, lightDir)

		p.gpuData = cascade.GPUCascadeData{}
		for i := range p.cascades {
			p.gpuData.SetCascade(&p.cascades[i])
		}
		texel := p.array.TexelSize()
		p.gpuData.TexelSize = [2]float32{texel, texel}
		p.gpuData.Bias = p.array.Bias()
		p.gpuData.ComputeNormalBias(p.planner.ShadowDistance(), shadow.DefaultNormalBiasScale, p.array.Resolution())
	}
	if p.prof != nil {
		p.prof.Track("cascade plan", plan)
	} else {
		plan()
	}
	return p.cascades
}

func (p *pipeline) EncodeShadowPasses(draw func(c cascade.Cascade, b *shadow.Binding)) error {
	if !p.shadowsEnabled || len(p.cascades) == 0 {
		return nil
	}

	if err := p.backend.BeginShadowFrame(); err != nil {
		return fmt.Errorf("failed to begin shadow frame: %w", err)
	}
	for i := range p.cascades {
		if !p.array.Enabled(i) {
			continue
		}
		b := p.array.Bind(i)
		p.backend.BeginShadowPass(b.View)
		draw(p.cascades[i], b)
		p.backend.EndShadowPass()
		b.Release()
	}
	p.backend.EndShadowFrame()
	return nil
}

func (p *pipeline) CascadeData() *cascade.GPUCascadeData {
	return &p.gpuData
}

func (p *pipeline) ShadowArray() shadow.CascadeArray {
	return p.array
}

func (p *pipeline) RenderAO(gb *ao.GBuffer, cam *common.CameraState) {
	if !p.aoEnabled {
		lit := p.engine.Resolved()
		for i := range lit {
			lit[i] = 1
		}
		p.target.Upload(lit)
		return
	}

	if p.prof != nil {
		p.prof.Track("ao evaluate", func() { p.engine.Evaluate(gb, cam.Proj) })
		p.prof.Track("ao resolve", func() { p.engine.Resolve(gb) })
		p.prof.Track("ao upload", func() { p.target.Upload(p.engine.Resolved()) })
		return
	}
	p.engine.Evaluate(gb, cam.Proj)
	p.engine.Resolve(gb)
	p.target.Upload(p.engine.Resolved())
}

func (p *pipeline) OcclusionView() *wgpu.TextureView {
	return p.target.View()
}

func (p *pipeline) AOEngine() ao.Engine {
	return p.engine
}

func (p *pipeline) QueryVoxelAO(x, y, z int, face voxelao.Face) float32 {
	if p.voxels == nil {
		return 1.0
	}
	return p.voxels.Query(x, y, z, face)
}

func (p *pipeline) InvalidateVoxel(x, y, z int) {
	if p.voxels != nil {
		p.voxels.Invalidate(x, y, z)
	}
}

func (p *pipeline) Resize(width, height int) error {
	if width == p.width && height == p.height {
		return nil
	}
	p.width = width
	p.height = height
	p.engine.Resize(width, height)

	p.target.Destroy()
	target, err := p.backend.CreateOcclusionTarget(width, height)
	if err != nil {
		return fmt.Errorf("failed to recreate occlusion target: %w", err)
	}
	p.target = target
	return nil
}

func (p *pipeline) SetQuality(quality ao.Quality) {
	p.engine.SetQuality(quality)
}

func (p *pipeline) SetTechnique(t ao.Technique) {
	p.engine.SetTechnique(t)
}

func (p *pipeline) SetShadowsEnabled(enabled bool) {
	p.shadowsEnabled = enabled
}

func (p *pipeline) SetAOEnabled(enabled bool) {
	p.aoEnabled = enabled
}

func (p *pipeline) Tick() {
	if p.prof != nil {
		p.prof.Tick()
	}
}

func (p *pipeline) Destroy() error {
	p.target.Destroy()
	if err := p.array.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy cascade array: %w", err)
	}
	return nil
}
