package cascade

import (
	"math"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// SliceCorners computes the 8 world-space corners of the camera frustum slice
// bounded by [nearSplit, farSplit]. The canonical NDC corners are unprojected
// through the inverse of the camera's combined view-projection matrix, then
// each of the 4 corner rays is rescaled from the camera's near/far toward the
// slice's near/far distances. Because the corners are always re-derived from
// the split distances rather than from cached geometry bounds, the result is
// deterministic for a static camera, which is the anti-shimmer property the
// cascade fit depends on.
//
// Corners are ordered in 4 near/far pairs: index 2i is the near corner of ray
// i and index 2i+1 its far corner.
//
// Parameters:
//   - cam: the camera state (matrices plus near/far planes)
//   - nearSplit: near bound of the slice in view depth
//   - farSplit: far bound of the slice in view depth
//
// Returns:
//   - [8][3]float32: the slice corners in world space
//   - bool: false if the camera view-projection matrix is singular
func SliceCorners(cam *common.CameraState, nearSplit, farSplit float32) ([8][3]float32, bool) {
	var corners [8][3]float32

	vp := cam.ViewProj()
	var invVP [16]float32
	if !common.Invert4(invVP[:], vp[:]) {
		return corners, false
	}

	// Interpolation factors along each corner ray. View depth is linear in the
	// ray parameter, so the slice bounds map to simple fractions of near→far.
	denom := cam.Far - cam.Near
	if denom <= 0 {
		return corners, false
	}
	tn := common.Clamp((nearSplit-cam.Near)/denom, 0, 1)
	tf := common.Clamp((farSplit-cam.Near)/denom, 0, 1)

	ndcXY := [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for i, xy := range ndcXY {
		// WebGPU clip space: Z = 0 at the near plane, 1 at the far plane.
		nearC, ok := unproject(invVP[:], xy[0], xy[1], 0)
		if !ok {
			return corners, false
		}
		farC, ok := unproject(invVP[:], xy[0], xy[1], 1)
		if !ok {
			return corners, false
		}

		for axis := 0; axis < 3; axis++ {
			ray := farC[axis] - nearC[axis]
			corners[i*2][axis] = nearC[axis] + ray*tn
			corners[i*2+1][axis] = nearC[axis] + ray*tf
		}
	}
	return corners, true
}

// FitLightSpace builds a light-space view-projection matrix that tightly
// bounds the given frustum slice corners. The light view looks from
// center - lightDir*eyeDistance toward the corner centroid, with the up axis
// switched away from +Y when the light points nearly straight up or down. The
// orthographic volume is the axis-aligned min/max of the corners in light view
// space, with the near side of the Z range padded so casters between the
// light and the visible slice still land in the depth map.
//
// Parameters:
//   - corners: the 8 world-space slice corners from SliceCorners
//   - lightDir: direction the light points (normalized internally)
//   - eyeDistance: distance to pull the light eye back from the centroid
//   - zPadding: fraction of the Z range added in front of the near plane (~0.5)
//
// Returns:
//   - [16]float32: the light view-projection matrix, column-major
//   - bool: false if lightDir is degenerate (near-zero length)
func FitLightSpace(corners [8][3]float32, lightDir [3]float32, eyeDistance, zPadding float32) ([16]float32, bool) {
	var out [16]float32

	dir, ok := normalize3(lightDir)
	if !ok {
		return out, false
	}

	var center [3]float32
	for _, c := range corners {
		center[0] += c[0]
		center[1] += c[1]
		center[2] += c[2]
	}
	center[0] /= 8
	center[1] /= 8
	center[2] /= 8

	// Choose a stable up vector that isn't parallel to the light direction.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	if absF32(dir[1]) > 0.99 {
		upX, upY, upZ = 1, 0, 0
	}

	var view [16]float32
	common.LookAt(view[:],
		center[0]-dir[0]*eyeDistance,
		center[1]-dir[1]*eyeDistance,
		center[2]-dir[2]*eyeDistance,
		center[0], center[1], center[2],
		upX, upY, upZ,
	)

	minV := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxV := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, c := range corners {
		lv := common.TransformVec4(view[:], c[0], c[1], c[2], 1)
		for axis := 0; axis < 3; axis++ {
			if lv[axis] < minV[axis] {
				minV[axis] = lv[axis]
			}
			if lv[axis] > maxV[axis] {
				maxV[axis] = lv[axis]
			}
		}
	}

	// Light view looks down -Z, so the corner nearest the light has the
	// largest Z. Pad the near side toward the light for off-slice casters.
	near := -maxV[2]
	far := -minV[2]
	near -= (far - near) * zPadding

	var proj [16]float32
	common.Ortho(proj[:], minV[0], maxV[0], minV[1], maxV[1], near, far)
	common.Mul4(out[:], proj[:], view[:])
	return out, true
}

// unproject transforms an NDC point back to world space through the inverse
// view-projection matrix, performing the perspective divide.
func unproject(invVP []float32, x, y, z float32) ([3]float32, bool) {
	v := common.TransformVec4(invVP, x, y, z, 1)
	if absF32(v[3]) < 1e-8 {
		return [3]float32{}, false
	}
	inv := 1.0 / v[3]
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}, true
}

// normalize3 returns the unit-length copy of v, or ok=false when v is too
// short to normalize safely.
func normalize3(v [3]float32) ([3]float32, bool) {
	lenSq := float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if lenSq < 1e-12 {
		return v, false
	}
	inv := float32(1.0 / math.Sqrt(lenSq))
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}, true
}

// absF32 returns the absolute value of a float32.
func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
