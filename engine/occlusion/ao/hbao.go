package ao

import "math"

// HBAO is the horizon-based technique: for several azimuthal directions it
// marches outward in view space tracking the highest elevation angle any
// sampled surface subtends above the tangent plane, then averages the
// per-direction horizons into an occlusion term.
type HBAO struct {
	// Radius is the maximum march distance in view units; surfaces beyond it
	// cannot raise the horizon.
	Radius float32

	// Directions is the number of azimuthal march directions.
	Directions int

	// Steps is the number of samples taken along each direction.
	Steps int

	// AngleBias is the minimum elevation (radians) a surface must subtend
	// before it counts as a horizon, suppressing self-occlusion noise on
	// rough geometry.
	AngleBias float32
}

var _ Technique = &HBAO{}

// NewHBAO creates the horizon-based technique with its standard tuning.
//
// Returns:
//   - *HBAO: the technique
func NewHBAO() *HBAO {
	return &HBAO{
		Radius:     0.5,
		Directions: 8,
		Steps:      6,
		AngleBias:  float32(math.Pi / 6),
	}
}

func (h *HBAO) Name() string {
	return "hbao"
}

func (h *HBAO) Evaluate(ctx *EvalContext, x, y int) float32 {
	center := ctx.GBuffer.Sample(x, y)
	if degenerateNormal(center.Normal) {
		return 1.0
	}

	rotation := ctx.Kernel.Rotation(x, y)
	noiseAngle := math.Atan2(float64(rotation[1]), float64(rotation[0]))
	sinBias := float32(math.Sin(float64(h.AngleBias)))

	var occlusion float32
	for d := 0; d < h.Directions; d++ {
		azimuth := noiseAngle + 2*math.Pi*float64(d)/float64(h.Directions)
		dirX := float32(math.Cos(azimuth))
		dirY := float32(math.Sin(azimuth))

		// Track the highest elevation seen along this direction.
		var maxSin float32 = -1
		for s := 1; s <= h.Steps; s++ {
			dist := h.Radius * float32(s) / float32(h.Steps)
			probe := [3]float32{
				center.Position[0] + dirX*dist,
				center.Position[1] + dirY*dist,
				center.Position[2],
			}
			sx, sy, ok := projectToScreen(ctx, probe)
			if !ok {
				continue
			}
			stored := ctx.GBuffer.Sample(sx, sy)
			if degenerateNormal(stored.Normal) {
				continue
			}

			hv := [3]float32{
				stored.Position[0] - center.Position[0],
				stored.Position[1] - center.Position[1],
				stored.Position[2] - center.Position[2],
			}
			length := float32(math.Sqrt(float64(hv[0]*hv[0] + hv[1]*hv[1] + hv[2]*hv[2])))
			if length < 1e-6 || length > h.Radius {
				continue
			}
			sinElev := (hv[0]*center.Normal[0] + hv[1]*center.Normal[1] + hv[2]*center.Normal[2]) / length
			if sinElev > maxSin {
				maxSin = sinElev
			}
		}

		if maxSin > sinBias {
			occlusion += maxSin - sinBias
		}
	}

	lit := 1.0 - occlusion/float32(h.Directions)
	if lit < 0 {
		return 0
	}
	if lit > 1 {
		return 1
	}
	return lit
}
