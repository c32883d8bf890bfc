package ao

import (
	"math"
	"testing"
)

func TestBoxResolvePreservesConstantField(t *testing.T) {
	gb := flatBuffer()
	raw := make([]float32, testSize*testSize)
	out := make([]float32, testSize*testSize)
	for i := range raw {
		raw[i] = 0.7
	}

	NewResolver().Apply(raw, gb, out)
	for i, v := range out {
		if math.Abs(float64(v-0.7)) > 1e-5 {
			t.Fatalf("constant field changed at %d: %v", i, v)
		}
	}
}

func TestBoxResolveSpreadsImpulse(t *testing.T) {
	gb := flatBuffer()
	raw := make([]float32, testSize*testSize)
	out := make([]float32, testSize*testSize)
	for i := range raw {
		raw[i] = 1
	}
	raw[32*testSize+32] = 0 // single dark pixel

	NewResolver().Apply(raw, gb, out)

	center := out[32*testSize+32]
	if center <= raw[32*testSize+32] || center >= 1 {
		t.Errorf("impulse center = %v, want strictly between 0 and 1", center)
	}
	neighbor := out[32*testSize+34]
	if neighbor >= 1 {
		t.Errorf("neighbor within the 5-tap radius = %v, want < 1", neighbor)
	}
	far := out[32*testSize+40]
	if far != 1 {
		t.Errorf("pixel outside the blur radius = %v, want untouched 1", far)
	}
}

func TestBilateralResolveStopsAtDepthEdge(t *testing.T) {
	// Occlusion aligned with the depth step: dark on the near slab, bright on
	// the far plane. The bilateral filter must not drag darkness across the
	// edge the way the box filter does.
	gb := stepBuffer()
	raw := make([]float32, testSize*testSize)
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			if x >= wallStart {
				raw[y*testSize+x] = 0.2
			} else {
				raw[y*testSize+x] = 1
			}
		}
	}

	boxOut := make([]float32, testSize*testSize)
	box := NewResolver()
	box.Apply(raw, gb, boxOut)

	bilateralOut := make([]float32, testSize*testSize)
	bilateral := NewResolver()
	bilateral.Mode = ResolveBilateral
	bilateral.DepthThreshold = 0.05
	bilateral.Apply(raw, gb, bilateralOut)

	// One pixel on the far side of the edge.
	i := 32*testSize + wallStart - 1
	if bilateralOut[i] <= boxOut[i] {
		t.Errorf("bilateral edge pixel = %v, box = %v; bilateral should bleed less",
			bilateralOut[i], boxOut[i])
	}
	if bilateralOut[i] < 0.95 {
		t.Errorf("bilateral edge pixel = %v, want nearly unmixed 1.0", bilateralOut[i])
	}
}

func TestBilateralResolveSmoothsWithinSurface(t *testing.T) {
	gb := flatBuffer()
	raw := make([]float32, testSize*testSize)
	out := make([]float32, testSize*testSize)
	for i := range raw {
		raw[i] = 1
	}
	raw[32*testSize+32] = 0

	r := NewResolver()
	r.Mode = ResolveBilateral
	r.Apply(raw, gb, out)

	if out[32*testSize+32] >= 0.99 || out[32*testSize+32] <= 0 {
		t.Errorf("bilateral on a flat surface should still blur: center = %v", out[32*testSize+32])
	}
}
