package voxelao

// The three fixed neighbor stencils, one per face axis. Each lists the 8
// voxels in the plane perpendicular to the face normal; a solid neighbor
// there shadows the face.
var (
	stencilY = [8][3]int{
		{-1, 0, -1}, {0, 0, -1}, {1, 0, -1},
		{-1, 0, 0}, {1, 0, 0},
		{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
	}
	stencilX = [8][3]int{
		{0, -1, -1}, {0, 0, -1}, {0, 1, -1},
		{0, -1, 0}, {0, 1, 0},
		{0, -1, 1}, {0, 0, 1}, {0, 1, 1},
	}
	stencilZ = [8][3]int{
		{-1, -1, 0}, {0, -1, 0}, {1, -1, 0},
		{-1, 0, 0}, {1, 0, 0},
		{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
	}
)

// stencilFor selects the neighbor stencil for a face orientation.
func stencilFor(face Face) *[8][3]int {
	switch face {
	case FaceTop, FaceBottom:
		return &stencilY
	case FaceLeft, FaceRight:
		return &stencilX
	default:
		return &stencilZ
	}
}
