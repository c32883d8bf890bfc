package ao

// GBufferSample is one pixel of the geometry buffer: view-space position and
// normal, produced by an external geometry pass and consumed read-only.
type GBufferSample struct {
	Position [3]float32
	Normal   [3]float32
}

// GBuffer holds the view-space position and normal planes at screen
// resolution. The occlusion engine reads it; the geometry pass (or a test
// fixture) writes it.
type GBuffer struct {
	width  int
	height int

	// Tightly packed xyz triples, row-major.
	positions []float32
	normals   []float32
}

// NewGBuffer allocates a geometry buffer at the given resolution.
//
// Parameters:
//   - width: buffer width in pixels
//   - height: buffer height in pixels
//
// Returns:
//   - *GBuffer: the allocated buffer with zeroed planes
func NewGBuffer(width, height int) *GBuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &GBuffer{
		width:     width,
		height:    height,
		positions: make([]float32, width*height*3),
		normals:   make([]float32, width*height*3),
	}
}

// Width returns the buffer width in pixels.
//
// Returns:
//   - int: the width
func (g *GBuffer) Width() int {
	return g.width
}

// Height returns the buffer height in pixels.
//
// Returns:
//   - int: the height
func (g *GBuffer) Height() int {
	return g.height
}

// SetSample writes one pixel of the buffer. Out-of-range coordinates are
// ignored.
//
// Parameters:
//   - x: the pixel x coordinate
//   - y: the pixel y coordinate
//   - position: the view-space position
//   - normal: the view-space normal
func (g *GBuffer) SetSample(x, y int, position, normal [3]float32) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	i := (y*g.width + x) * 3
	g.positions[i] = position[0]
	g.positions[i+1] = position[1]
	g.positions[i+2] = position[2]
	g.normals[i] = normal[0]
	g.normals[i+1] = normal[1]
	g.normals[i+2] = normal[2]
}

// Sample reads one pixel, clamping coordinates to the buffer edge so
// screen-space marches never index out of range.
//
// Parameters:
//   - x: the pixel x coordinate
//   - y: the pixel y coordinate
//
// Returns:
//   - GBufferSample: the position and normal at the clamped coordinate
func (g *GBuffer) Sample(x, y int) GBufferSample {
	if x < 0 {
		x = 0
	}
	if x >= g.width {
		x = g.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.height {
		y = g.height - 1
	}
	i := (y*g.width + x) * 3
	return GBufferSample{
		Position: [3]float32{g.positions[i], g.positions[i+1], g.positions[i+2]},
		Normal:   [3]float32{g.normals[i], g.normals[i+1], g.normals[i+2]},
	}
}
