// Package ao implements the screen-space ambient occlusion pipeline: kernel
// generation, the SSAO/HBAO/GTAO technique variants, the per-frame evaluation
// engine, and the edge-aware resolve that smooths the raw occlusion buffer.
package ao

import (
	"math"
	"math/rand"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// NoiseSize is the width and height of the tileable rotation-noise pattern.
const NoiseSize = 4

// kernelSeed fixes the sample pattern so two runs at the same quality produce
// identical kernels. The pattern itself is arbitrary; stability is what
// matters for comparing captures across runs.
const kernelSeed = 0x5ee0

// Kernel is the hemisphere sample set plus the tileable rotation noise used
// to decorrelate banding across neighboring pixels. Regenerated only when the
// quality tier changes; otherwise immutable and shared by every frame.
type Kernel struct {
	quality Quality
	samples [][3]float32
	noise   [NoiseSize * NoiseSize][2]float32
}

// NewKernel generates the sample kernel and noise pattern for a quality tier.
//
// Parameters:
//   - quality: the tier selecting the sample count
//
// Returns:
//   - *Kernel: the generated kernel
func NewKernel(quality Quality) *Kernel {
	k := &Kernel{quality: quality.Clamp()}
	k.generate()
	return k
}

// SetQuality switches the kernel to a new tier, regenerating samples only
// when the tier actually changes.
//
// Parameters:
//   - quality: the new tier (clamped)
//
// Returns:
//   - bool: true if the kernel was regenerated
func (k *Kernel) SetQuality(quality Quality) bool {
	quality = quality.Clamp()
	if quality == k.quality {
		return false
	}
	k.quality = quality
	k.generate()
	return true
}

// Quality returns the kernel's current tier.
//
// Returns:
//   - Quality: the tier
func (k *Kernel) Quality() Quality {
	return k.quality
}

// Size returns the number of hemisphere samples.
//
// Returns:
//   - int: the sample count
func (k *Kernel) Size() int {
	return len(k.samples)
}

// Samples returns the hemisphere offsets in tangent space (z >= 0), scaled so
// samples cluster toward the origin. The slice is owned by the kernel and
// must not be mutated.
//
// Returns:
//   - [][3]float32: the sample offsets
func (k *Kernel) Samples() [][3]float32 {
	return k.samples
}

// Rotation returns the in-plane rotation vector for a screen pixel, tiling
// the noise pattern across the screen.
//
// Parameters:
//   - x: the pixel x coordinate
//   - y: the pixel y coordinate
//
// Returns:
//   - [2]float32: the (cos, sin) rotation vector
func (k *Kernel) Rotation(x, y int) [2]float32 {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return k.noise[(y%NoiseSize)*NoiseSize+(x%NoiseSize)]
}

// generate builds the cosine-weighted hemisphere kernel and the rotation
// noise. Cosine weighting (phi = acos(sqrt(u2))) concentrates samples toward
// the normal where they contribute most to the occlusion integral.
func (k *Kernel) generate() {
	rng := rand.New(rand.NewSource(kernelSeed))
	count := k.quality.KernelSize()
	k.samples = make([][3]float32, count)

	for i := 0; i < count; i++ {
		u1 := rng.Float64()
		u2 := rng.Float64()
		theta := 2 * math.Pi * u1
		phi := math.Acos(math.Sqrt(u2))

		sinPhi := math.Sin(phi)
		x := float32(sinPhi * math.Cos(theta))
		y := float32(sinPhi * math.Sin(theta))
		z := float32(math.Cos(phi))
		if z < 0 {
			z = -z
		}

		// Scale samples toward the origin so nearby occluders dominate.
		t := float32(i) / float32(count)
		scale := common.Lerp(0.1, 1.0, t*t)
		k.samples[i] = [3]float32{x * scale, y * scale, z * scale}
	}

	for i := range k.noise {
		angle := 2 * math.Pi * rng.Float64()
		k.noise[i] = [2]float32{float32(math.Cos(angle)), float32(math.Sin(angle))}
	}
}
