package ao

import "math"

// GTAO is the ground-truth approximation: like HBAO it marches azimuthal
// slices, but instead of a binary horizon test it integrates the occluded
// angular arc per slice, sin(maxAngle) - sin(-pi/2), which tracks the true
// visibility integral much more closely.
type GTAO struct {
	// Radius is the maximum march distance in view units.
	Radius float32

	// Slices is the number of azimuthal slices.
	Slices int

	// Steps is the number of samples taken along each slice.
	Steps int
}

var _ Technique = &GTAO{}

// NewGTAO creates the ground-truth technique with its standard tuning.
//
// Returns:
//   - *GTAO: the technique
func NewGTAO() *GTAO {
	return &GTAO{
		Radius: 0.5,
		Slices: 4,
		Steps:  8,
	}
}

func (g *GTAO) Name() string {
	return "gtao"
}

func (g *GTAO) Evaluate(ctx *EvalContext, x, y int) float32 {
	center := ctx.GBuffer.Sample(x, y)
	if degenerateNormal(center.Normal) {
		return 1.0
	}

	rotation := ctx.Kernel.Rotation(x, y)
	noiseAngle := math.Atan2(float64(rotation[1]), float64(rotation[0]))

	var occlusion float32
	for slice := 0; slice < g.Slices; slice++ {
		azimuth := noiseAngle + math.Pi*float64(slice)/float64(g.Slices)
		dirX := float32(math.Cos(azimuth))
		dirY := float32(math.Sin(azimuth))

		// Each slice integrates both of its horizons, one march per side.
		// An empty side stays at the tangent plane's lower bound.
		h1 := g.marchHorizon(ctx, &center, dirX, dirY)
		h2 := g.marchHorizon(ctx, &center, -dirX, -dirY)

		// Occluded arc of the slice, sin(h) - sin(-pi/2) per side,
		// normalized so a fully raised horizon on both sides reads 1.
		arc := (float32(math.Sin(float64(h1))) + 1 + float32(math.Sin(float64(h2))) + 1) / 4
		occlusion += arc
	}

	lit := 1.0 - occlusion/float32(g.Slices)
	if lit < 0 {
		return 0
	}
	if lit > 1 {
		return 1
	}
	return lit
}

// marchHorizon walks one side of a slice and returns the highest elevation
// angle any in-radius surface subtends above the tangent plane.
func (g *GTAO) marchHorizon(ctx *EvalContext, center *GBufferSample, dirX, dirY float32) float32 {
	maxAngle := float32(-math.Pi / 2)
	for s := 1; s <= g.Steps; s++ {
		dist := g.Radius * float32(s) / float32(g.Steps)
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
		if length < 1e-6 || length > g.Radius {
			continue
		}
		sinElev := (hv[0]*center.Normal[0] + hv[1]*center.Normal[1] + hv[2]*center.Normal[2]) / length
		if sinElev < -1 {
			sinElev = -1
		}
		if sinElev > 1 {
			sinElev = 1
		}
		angle := float32(math.Asin(float64(sinElev)))
		if angle > maxAngle {
			maxAngle = angle
		}
	}
	return maxAngle
}
