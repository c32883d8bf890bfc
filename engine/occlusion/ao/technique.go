package ao

import (
	"math"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// EvalContext carries the per-frame inputs shared by every technique: the
// geometry buffer, the sample kernel, and the camera projection used to map
// view-space probe positions back onto the screen.
type EvalContext struct {
	GBuffer *GBuffer
	Kernel  *Kernel

	// Proj is the camera projection matrix (column-major, WebGPU clip space).
	Proj [16]float32
}

// Technique evaluates one screen pixel's ambient occlusion. Implementations
// are stateless apart from their tuning parameters, so one instance can be
// shared across the row workers of a frame.
type Technique interface {
	// Name returns the technique's short identifier.
	//
	// Returns:
	//   - string: "ssao", "hbao" or "gtao"
	Name() string

	// Evaluate computes the occlusion term for one pixel.
	//
	// Parameters:
	//   - ctx: the shared frame inputs
	//   - x: the pixel x coordinate
	//   - y: the pixel y coordinate
	//
	// Returns:
	//   - float32: occlusion in [0, 1], 1 = fully lit
	Evaluate(ctx *EvalContext, x, y int) float32
}

// degenerateNormal reports whether a G-buffer normal is unusable (near-zero
// length, e.g. sky pixels). Techniques return fully lit for these.
func degenerateNormal(n [3]float32) bool {
	return n[0]*n[0]+n[1]*n[1]+n[2]*n[2] < 1e-6
}

// tangentBasis builds an orthonormal tangent/bitangent pair around the normal
// using the pixel's noise rotation vector, Gram-Schmidt style. The rotation
// decorrelates the kernel orientation between neighboring pixels.
func tangentBasis(normal [3]float32, rotation [2]float32) (tangent, bitangent [3]float32) {
	rv := [3]float32{rotation[0], rotation[1], 0}
	d := rv[0]*normal[0] + rv[1]*normal[1] + rv[2]*normal[2]
	tangent = [3]float32{rv[0] - normal[0]*d, rv[1] - normal[1]*d, rv[2] - normal[2]*d}

	length := float32(math.Sqrt(float64(tangent[0]*tangent[0] + tangent[1]*tangent[1] + tangent[2]*tangent[2])))
	if length < 1e-6 {
		// Noise vector parallel to the normal; fall back to a fixed axis.
		axis := [3]float32{1, 0, 0}
		if normal[0] > 0.9 || normal[0] < -0.9 {
			axis = [3]float32{0, 1, 0}
		}
		d = axis[0]*normal[0] + axis[1]*normal[1] + axis[2]*normal[2]
		tangent = [3]float32{axis[0] - normal[0]*d, axis[1] - normal[1]*d, axis[2] - normal[2]*d}
		length = float32(math.Sqrt(float64(tangent[0]*tangent[0] + tangent[1]*tangent[1] + tangent[2]*tangent[2])))
	}
	tangent[0] /= length
	tangent[1] /= length
	tangent[2] /= length

	bitangent = [3]float32{
		normal[1]*tangent[2] - normal[2]*tangent[1],
		normal[2]*tangent[0] - normal[0]*tangent[2],
		normal[0]*tangent[1] - normal[1]*tangent[0],
	}
	return tangent, bitangent
}

// projectToScreen maps a view-space position to pixel coordinates through the
// camera projection. Returns false when the position projects behind the
// camera or outside the screen.
func projectToScreen(ctx *EvalContext, pos [3]float32) (int, int, bool) {
	clip := common.TransformVec4(ctx.Proj[:], pos[0], pos[1], pos[2], 1)
	if clip[3] <= 1e-6 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	w := ctx.GBuffer.Width()
	h := ctx.GBuffer.Height()
	sx := int((ndcX*0.5 + 0.5) * float32(w))
	sy := int((0.5 - ndcY*0.5) * float32(h))
	if sx < 0 || sx >= w || sy < 0 || sy >= h {
		return 0, 0, false
	}
	return sx, sy, true
}
