package common

// CameraState is a snapshot of the camera parameters the occlusion subsystem
// consumes each frame. Matrices are column-major, WebGPU clip-space
// conventions (X/Y in [-1, 1], Z in [0, 1]). The owning renderer fills this
// in; the occlusion passes read it and never mutate it.
type CameraState struct {
	// View is the world-to-view matrix (16 elements, column-major).
	View [16]float32

	// Proj is the view-to-clip projection matrix (16 elements, column-major).
	Proj [16]float32

	// Near is the near clipping plane distance in world units.
	Near float32

	// Far is the far clipping plane distance in world units.
	Far float32
}

// ViewProj computes the combined view-projection matrix for this camera state.
//
// Returns:
//   - [16]float32: Proj * View, column-major
func (c *CameraState) ViewProj() [16]float32 {
	var out [16]float32
	Mul4(out[:], c.Proj[:], c.View[:])
	return out
}
