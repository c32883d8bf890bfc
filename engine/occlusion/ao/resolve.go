package ao

import "math"

// ResolveMode selects how the raw occlusion buffer is smoothed.
type ResolveMode int

const (
	// ResolveBox is a fixed 5-tap separable box blur.
	ResolveBox ResolveMode = iota

	// ResolveBilateral weights taps by depth and normal similarity so
	// occlusion does not bleed across geometric discontinuities.
	ResolveBilateral
)

// Resolver smooths the raw occlusion buffer into the final AO term. The box
// mode is cheap and adequate at high sample counts; the bilateral mode keeps
// thin silhouettes crisp against distant backdrops.
type Resolver struct {
	// Mode selects box or bilateral filtering.
	Mode ResolveMode

	// DepthThreshold controls the bilateral depth falloff exp(-dz/threshold).
	DepthThreshold float32

	// NormalExponent controls the bilateral normal weight dot(nC, nS)^exp.
	NormalExponent float32

	scratch []float32
}

// NewResolver creates a Resolver in box mode with the standard bilateral
// tuning ready if the mode is switched.
//
// Returns:
//   - *Resolver: the resolver
func NewResolver() *Resolver {
	return &Resolver{
		Mode:           ResolveBox,
		DepthThreshold: 0.5,
		NormalExponent: 8,
	}
}

// Apply filters raw into out. Both slices must hold width*height values; the
// geometry buffer provides the depth/normal planes for the bilateral mode and
// must match the same resolution.
//
// Parameters:
//   - raw: the unfiltered occlusion buffer
//   - gb: the geometry buffer at the same resolution
//   - out: the destination buffer
func (r *Resolver) Apply(raw []float32, gb *GBuffer, out []float32) {
	w := gb.Width()
	h := gb.Height()
	if len(raw) < w*h || len(out) < w*h {
		return
	}
	if r.Mode == ResolveBilateral {
		r.applyBilateral(raw, gb, out, w, h)
		return
	}
	r.applyBox(raw, out, w, h)
}

func (r *Resolver) applyBox(raw, out []float32, w, h int) {
	if len(r.scratch) < w*h {
		r.scratch = make([]float32, w*h)
	}

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sum float32
			for o := -2; o <= 2; o++ {
				sum += raw[row+clampInt(x+o, 0, w-1)]
			}
			r.scratch[row+x] = sum / 5
		}
	}

	// Vertical pass.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for o := -2; o <= 2; o++ {
				sum += r.scratch[clampInt(y+o, 0, h-1)*w+x]
			}
			out[y*w+x] = sum / 5
		}
	}
}

func (r *Resolver) applyBilateral(raw []float32, gb *GBuffer, out []float32, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := gb.Sample(x, y)
			if degenerateNormal(center.Normal) {
				out[y*w+x] = raw[y*w+x]
				continue
			}

			var sum, weightSum float32
			for oy := -2; oy <= 2; oy++ {
				for ox := -2; ox <= 2; ox++ {
					sx := clampInt(x+ox, 0, w-1)
					sy := clampInt(y+oy, 0, h-1)
					s := gb.Sample(sx, sy)
					if degenerateNormal(s.Normal) {
						continue
					}

					dz := absF32(center.Position[2] - s.Position[2])
					dn := center.Normal[0]*s.Normal[0] + center.Normal[1]*s.Normal[1] + center.Normal[2]*s.Normal[2]
					if dn < 0 {
						dn = 0
					}
					weight := float32(math.Exp(float64(-dz/r.DepthThreshold))) *
						float32(math.Pow(float64(dn), float64(r.NormalExponent)))
					sum += raw[sy*w+sx] * weight
					weightSum += weight
				}
			}

			if weightSum > 1e-6 {
				out[y*w+x] = sum / weightSum
			} else {
				out[y*w+x] = raw[y*w+x]
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
