// Package cascade plans the shadow cascade layout for a directional light:
// where to split the camera frustum into distance bands and how to fit a
// tight, stable light-space orthographic volume around each band.
package cascade

import (
	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/logger"
)

// MaxCascades is the maximum number of cascades the planner and the GPU-side
// cascade data support. Requests beyond this are clamped.
const MaxCascades = 4

// DefaultCascadeCount is the default number of shadow cascades.
const DefaultCascadeCount = 4

// DefaultLambda is the default uniform/logarithmic blend factor for the
// practical split scheme.
const DefaultLambda float32 = 0.5

// DefaultShadowDistance is the default far bound of the last cascade in world
// units. Geometry beyond this distance receives no directional shadowing.
const DefaultShadowDistance float32 = 200.0

// DefaultEyeDistance is the default distance the light eye is pulled back from
// the cascade centroid when building the light view. Must be large enough to
// place the eye outside all shadow-casting geometry.
const DefaultEyeDistance float32 = 50.0

// DefaultZPadding is the default fraction of the light-space Z range added in
// front of the orthographic near plane so casters just outside the visible
// slice are not clipped out of the depth map.
const DefaultZPadding float32 = 0.5

// Cascade is one distance band of the directional shadow frustum, paired with
// the light-space matrix that bounds it. Matrices are rebuilt every frame;
// the associated depth targets persist in the shadow package.
type Cascade struct {
	// Index is the cascade's position in the array, 0 = nearest the camera.
	Index int

	// NearSplit and FarSplit bound the band in camera view depth. For i > 0,
	// NearSplit equals the previous cascade's FarSplit.
	NearSplit float32
	FarSplit  float32

	// LightViewProj transforms world space into the cascade's light clip
	// space (column-major, WebGPU Z in [0, 1]).
	LightViewProj [16]float32
}

// Frustum extracts the cascade's light-space culling volume. Renderers use
// this to skip casters that cannot affect the cascade's depth map.
//
// Returns:
//   - common.Frustum: the orthographic light volume as six planes
func (c *Cascade) Frustum() common.Frustum {
	return common.ExtractFrustumFromMatrix(c.LightViewProj[:])
}

// planner is the implementation of the Planner interface.
type planner struct {
	log logger.Logger

	count          int
	lambda         float32
	shadowDistance float32
	eyeDistance    float32
	zPadding       float32

	// Cached split distances, invalidated when any input they depend on
	// changes (lambda, count, shadow distance, camera near plane).
	splits     []float32
	splitsNear float32
	dirty      bool

	cascades []Cascade
}

// Planner recomputes the cascade layout each frame. Split distances are cached
// and only recomputed when a tuning parameter or the camera near plane
// changes; the light-space matrices are rebuilt on every Update because they
// depend on the full camera pose.
type Planner interface {
	// Update recomputes the cascade array for the current camera and light.
	// The returned slice is owned by the planner and valid until the next
	// Update call. Cascades whose bounds could not be fit (singular camera
	// matrix or degenerate light direction) keep an identity light matrix;
	// the per-frame pipeline treats those as fully lit.
	//
	// Parameters:
	//   - cam: the camera state for this frame
	//   - lightDir: the directional light's unit direction
	//
	// Returns:
	//   - []Cascade: the planned cascades, nearest first
	Update(cam *common.CameraState, lightDir [3]float32) []Cascade

	// Splits returns the current split distances (count+1 entries), computing
	// them from the last known camera near plane if necessary.
	//
	// Returns:
	//   - []float32: the split distances, strictly increasing
	Splits() []float32

	// Count returns the configured cascade count.
	//
	// Returns:
	//   - int: the cascade count
	Count() int

	// Lambda returns the uniform/logarithmic blend factor.
	//
	// Returns:
	//   - float32: the blend factor in [0, 1]
	Lambda() float32

	// ShadowDistance returns the far bound of the last cascade.
	//
	// Returns:
	//   - float32: the shadow distance in world units
	ShadowDistance() float32

	// SetLambda changes the blend factor and invalidates the cached splits.
	//
	// Parameters:
	//   - lambda: the new blend factor (clamped to [0, 1])
	SetLambda(lambda float32)

	// SetShadowDistance changes the far bound of the last cascade and
	// invalidates the cached splits.
	//
	// Parameters:
	//   - distance: the new shadow distance in world units
	SetShadowDistance(distance float32)
}

var _ Planner = &planner{}

// NewPlanner creates a cascade Planner with the default layout and any
// provided options applied.
//
// Parameters:
//   - opts: variadic list of PlannerBuilderOption functions to configure the planner
//
// Returns:
//   - Planner: a new Planner instance
func NewPlanner(opts ...PlannerBuilderOption) Planner {
	p := &planner{
		log:            logger.Nop(),
		count:          DefaultCascadeCount,
		lambda:         DefaultLambda,
		shadowDistance: DefaultShadowDistance,
		eyeDistance:    DefaultEyeDistance,
		zPadding:       DefaultZPadding,
		dirty:          true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cascades = make([]Cascade, p.count)
	return p
}

func (p *planner) Update(cam *common.CameraState, lightDir [3]float32) []Cascade {
	if cam.Near != p.splitsNear {
		p.dirty = true
	}
	if p.dirty {
		p.splits = ComputeSplits(cam.Near, p.shadowDistance, p.count, p.lambda)
		p.splitsNear = cam.Near
		p.dirty = false
	}

	for i := 0; i < p.count; i++ {
		c := &p.cascades[i]
		c.Index = i
		c.NearSplit = p.splits[i]
		c.FarSplit = p.splits[i+1]

		corners, ok := SliceCorners(cam, c.NearSplit, c.FarSplit)
		if ok {
			c.LightViewProj, ok = FitLightSpace(corners, lightDir, p.eyeDistance, p.zPadding)
		}
		if !ok {
			p.log.Printf("cascade %d: degenerate camera or light, leaving identity light matrix", i)
			common.Identity(c.LightViewProj[:])
		}
	}
	return p.cascades
}

func (p *planner) Splits() []float32 {
	if p.dirty {
		near := p.splitsNear
		if near <= 0 {
			near = 0.1
		}
		p.splits = ComputeSplits(near, p.shadowDistance, p.count, p.lambda)
		p.splitsNear = near
		p.dirty = false
	}
	return p.splits
}

func (p *planner) Count() int {
	return p.count
}

func (p *planner) Lambda() float32 {
	return p.lambda
}

func (p *planner) ShadowDistance() float32 {
	return p.shadowDistance
}

func (p *planner) SetLambda(lambda float32) {
	lambda = common.Clamp(lambda, 0, 1)
	if lambda != p.lambda {
		p.lambda = lambda
		p.dirty = true
	}
}

func (p *planner) SetShadowDistance(distance float32) {
	if distance != p.shadowDistance {
		p.shadowDistance = distance
		p.dirty = true
	}
}
