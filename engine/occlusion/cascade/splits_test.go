package cascade

import (
	"math"
	"testing"
)

func TestComputeSplitsEndpoints(t *testing.T) {
	splits := ComputeSplits(0.1, 512, 4, 0.5)
	if len(splits) != 5 {
		t.Fatalf("expected 5 splits, got %d", len(splits))
	}
	if splits[0] != 0.1 {
		t.Errorf("split[0] = %v, want exactly near (0.1)", splits[0])
	}
	if splits[4] != 512 {
		t.Errorf("split[4] = %v, want exactly far (512)", splits[4])
	}
}

func TestComputeSplitsMonotonic(t *testing.T) {
	lambdas := []float32{0, 0.25, 0.5, 0.75, 1}
	counts := []int{1, 2, 3, 4, 6, 8}
	for _, lambda := range lambdas {
		for _, count := range counts {
			splits := ComputeSplits(0.5, 300, count, lambda)
			if len(splits) != count+1 {
				t.Fatalf("lambda=%v count=%d: got %d splits", lambda, count, len(splits))
			}
			for i := 1; i < len(splits); i++ {
				if splits[i] <= splits[i-1] {
					t.Errorf("lambda=%v count=%d: split[%d]=%v not greater than split[%d]=%v",
						lambda, count, i, splits[i], i-1, splits[i-1])
				}
			}
		}
	}
}

func TestComputeSplitsPracticalBlend(t *testing.T) {
	// near=0.1, far=512, 4 cascades, lambda=0.5: each interior split is the
	// arithmetic mean of the uniform and logarithmic schemes.
	splits := ComputeSplits(0.1, 512, 4, 0.5)
	want := []float64{0.1, 64.4605, 131.6027, 222.2790, 512}
	for i := range want {
		if math.Abs(float64(splits[i])-want[i]) > 0.05 {
			t.Errorf("split[%d] = %v, want ≈ %v", i, splits[i], want[i])
		}
	}
}

func TestComputeSplitsPureSchemes(t *testing.T) {
	// lambda=1 is fully uniform.
	uniform := ComputeSplits(1, 101, 4, 1)
	for i, want := range []float32{1, 26, 51, 76, 101} {
		if math.Abs(float64(uniform[i]-want)) > 1e-3 {
			t.Errorf("uniform split[%d] = %v, want %v", i, uniform[i], want)
		}
	}

	// lambda=0 is fully logarithmic: constant ratio between splits.
	logSplits := ComputeSplits(1, 256, 4, 0)
	for i := 1; i < len(logSplits); i++ {
		ratio := logSplits[i] / logSplits[i-1]
		if math.Abs(float64(ratio-4)) > 1e-3 {
			t.Errorf("log split ratio [%d] = %v, want 4", i, ratio)
		}
	}
}

func TestComputeSplitsClampsInputs(t *testing.T) {
	splits := ComputeSplits(1, 100, 0, -2)
	if len(splits) != 2 {
		t.Fatalf("count clamped to 1 should yield 2 splits, got %d", len(splits))
	}
	if splits[0] != 1 || splits[1] != 100 {
		t.Errorf("got %v, want [1 100]", splits)
	}

	// far <= near must still produce an increasing sequence.
	bad := ComputeSplits(10, 5, 3, 0.5)
	for i := 1; i < len(bad); i++ {
		if bad[i] <= bad[i-1] {
			t.Errorf("degenerate far: split[%d]=%v not increasing", i, bad[i])
		}
	}
}
