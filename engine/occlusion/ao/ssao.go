package ao

import (
	"math"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// SSAO is the kernel-vote technique: each hemisphere sample is projected back
// onto the screen and votes occluded when the surface stored there is closer
// to the camera than the sample itself, with a smooth range falloff so
// distant surfaces do not cast contact shadows.
type SSAO struct {
	// Radius is the sampling hemisphere radius in view units.
	Radius float32

	// Bias is the depth comparison offset that suppresses self-occlusion on
	// flat surfaces.
	Bias float32

	// Intensity scales the accumulated occlusion before the contrast power.
	Intensity float32

	// Power is the contrast exponent applied to the final term.
	Power float32
}

var _ Technique = &SSAO{}

// NewSSAO creates the kernel-vote technique with its standard tuning.
//
// Returns:
//   - *SSAO: the technique
func NewSSAO() *SSAO {
	return &SSAO{
		Radius:    0.5,
		Bias:      0.025,
		Intensity: 1.0,
		Power:     1.5,
	}
}

func (s *SSAO) Name() string {
	return "ssao"
}

func (s *SSAO) Evaluate(ctx *EvalContext, x, y int) float32 {
	center := ctx.GBuffer.Sample(x, y)
	if degenerateNormal(center.Normal) {
		return 1.0
	}

	n := center.Normal
	tangent, bitangent := tangentBasis(n, ctx.Kernel.Rotation(x, y))

	samples := ctx.Kernel.Samples()
	var occlusion float32
	for _, offset := range samples {
		// Tangent space to view space, scaled by the hemisphere radius.
		sample := [3]float32{
			center.Position[0] + (tangent[0]*offset[0]+bitangent[0]*offset[1]+n[0]*offset[2])*s.Radius,
			center.Position[1] + (tangent[1]*offset[0]+bitangent[1]*offset[1]+n[1]*offset[2])*s.Radius,
			center.Position[2] + (tangent[2]*offset[0]+bitangent[2]*offset[1]+n[2]*offset[2])*s.Radius,
		}

		sx, sy, ok := projectToScreen(ctx, sample)
		if !ok {
			continue
		}
		stored := ctx.GBuffer.Sample(sx, sy)
		if degenerateNormal(stored.Normal) {
			continue
		}

		// View space looks down -Z, so a larger Z is closer to the camera.
		storedDepth := stored.Position[2]
		if storedDepth >= sample[2]+s.Bias {
			depthDelta := absF32(center.Position[2] - storedDepth)
			rangeCheck := common.SmoothStep(0, 1, s.Radius/maxF32(depthDelta, 1e-6))
			occlusion += rangeCheck
		}
	}

	occlusion = occlusion / float32(len(samples)) * s.Intensity
	lit := common.Clamp(1.0-occlusion, 0, 1)
	return float32(math.Pow(float64(lit), float64(s.Power)))
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
