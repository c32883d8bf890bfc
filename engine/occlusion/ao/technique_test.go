package ao

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"
)

const (
	testSize  = 64
	testDepth = 5.0
	wallDepth = 4.7
	wallStart = 40 // wall occupies pixels x >= wallStart
)

func testProj() [16]float32 {
	var proj [16]float32
	// 90 degree fov at aspect 1: view x/y extent equals depth.
	common.Perspective(proj[:], 3.14159265/2, 1, 0.1, 100)
	return proj
}

// pixelView returns the view-space position of a pixel center on a plane at
// the given depth, consistent with the engine's screen projection.
func pixelView(x, y int, depth float32) [3]float32 {
	ndcX := (float32(x)+0.5)/testSize*2 - 1
	ndcY := 1 - 2*(float32(y)+0.5)/testSize
	return [3]float32{ndcX * depth, ndcY * depth, -depth}
}

// flatBuffer is a camera-facing plane filling the screen.
func flatBuffer() *GBuffer {
	gb := NewGBuffer(testSize, testSize)
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			gb.SetSample(x, y, pixelView(x, y, testDepth), [3]float32{0, 0, 1})
		}
	}
	return gb
}

// stepBuffer is the flat plane with a closer wall slab on its right side.
func stepBuffer() *GBuffer {
	gb := NewGBuffer(testSize, testSize)
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			depth := float32(testDepth)
			if x >= wallStart {
				depth = wallDepth
			}
			gb.SetSample(x, y, pixelView(x, y, depth), [3]float32{0, 0, 1})
		}
	}
	return gb
}

func evalCtx(gb *GBuffer) *EvalContext {
	return &EvalContext{GBuffer: gb, Kernel: NewKernel(QualityHigh), Proj: testProj()}
}

func TestTechniquesFullyLitOnDegenerateNormal(t *testing.T) {
	gb := flatBuffer()
	gb.SetSample(32, 32, [3]float32{0, 0, -testDepth}, [3]float32{0, 0, 0})
	ctx := evalCtx(gb)

	for _, tech := range []Technique{NewSSAO(), NewHBAO(), NewGTAO()} {
		if got := tech.Evaluate(ctx, 32, 32); got != 1.0 {
			t.Errorf("%s on degenerate normal = %v, want exactly 1.0", tech.Name(), got)
		}
	}
}

func TestSSAOFlatSurfaceMostlyLit(t *testing.T) {
	ctx := evalCtx(flatBuffer())
	if got := NewSSAO().Evaluate(ctx, 32, 32); got < 0.85 {
		t.Errorf("flat surface occlusion = %v, want >= 0.85 (open sky above the probe)", got)
	}
}

func TestHBAOFlatSurfaceFullyLit(t *testing.T) {
	// Coplanar neighbors sit below the angle bias, so a flat plane raises no
	// horizon at all.
	ctx := evalCtx(flatBuffer())
	if got := NewHBAO().Evaluate(ctx, 32, 32); got < 0.999 {
		t.Errorf("flat surface HBAO = %v, want 1.0", got)
	}
}

func TestStepOccludesNearbyPixels(t *testing.T) {
	ctx := evalCtx(stepBuffer())

	for _, tech := range []Technique{NewSSAO(), NewHBAO(), NewGTAO()} {
		nearWall := tech.Evaluate(ctx, wallStart-1, 32)
		open := tech.Evaluate(ctx, 10, 32)
		if nearWall >= open {
			t.Errorf("%s: pixel beside the step (%v) should be darker than the open pixel (%v)",
				tech.Name(), nearWall, open)
		}
	}
}

func TestTechniquesBounded(t *testing.T) {
	ctx := evalCtx(stepBuffer())

	for _, tech := range []Technique{NewSSAO(), NewHBAO(), NewGTAO()} {
		for _, x := range []int{0, 10, wallStart - 1, wallStart, testSize - 1} {
			for _, y := range []int{0, 32, testSize - 1} {
				got := tech.Evaluate(ctx, x, y)
				if got < 0 || got > 1 {
					t.Errorf("%s at (%d,%d) = %v, outside [0, 1]", tech.Name(), x, y, got)
				}
			}
		}
	}
}

func TestTechniquesDeterministic(t *testing.T) {
	ctx := evalCtx(stepBuffer())
	for _, tech := range []Technique{NewSSAO(), NewHBAO(), NewGTAO()} {
		a := tech.Evaluate(ctx, wallStart-1, 32)
		b := tech.Evaluate(ctx, wallStart-1, 32)
		if a != b {
			t.Errorf("%s is not deterministic: %v then %v", tech.Name(), a, b)
		}
	}
}
