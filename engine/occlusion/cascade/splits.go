package cascade

import (
	"math"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// ComputeSplits calculates cascade split distances using the practical split
// scheme: each interior split blends a uniform split and a logarithmic split.
// Pure uniform splitting wastes shadow resolution on distant geometry; pure
// logarithmic splitting under-allocates it far away; the lambda blend balances
// both.
//
// The returned slice has count+1 entries with splits[0] == near and
// splits[count] == far, and is strictly increasing. Inputs are clamped: count
// to at least 1, lambda to [0, 1], and far to a value above near.
//
// Parameters:
//   - near: camera near plane distance
//   - far: shadow distance (far bound of the last cascade)
//   - count: number of cascades
//   - lambda: blend factor, 0 = fully logarithmic, 1 = fully uniform
//
// Returns:
//   - []float32: count+1 split distances
func ComputeSplits(near, far float32, count int, lambda float32) []float32 {
	if count < 1 {
		count = 1
	}
	lambda = common.Clamp(lambda, 0, 1)
	if far <= near {
		far = near + 1
	}

	splits := make([]float32, count+1)
	splits[0] = near
	splits[count] = far

	ratio := float64(far / near)
	for i := 1; i < count; i++ {
		t := float64(i) / float64(count)
		uniform := near + (far-near)*float32(t)
		logarithmic := near * float32(math.Pow(ratio, t))
		splits[i] = lambda*uniform + (1-lambda)*logarithmic
	}
	return splits
}
