package cascade

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCascadeDataSource is the canonical WGSL definition of the CascadeData
// struct. Matches GPUCascadeData layout exactly (304 bytes, std430 aligned).
//
//go:embed assets/cascade_data.wgsl
var GPUCascadeDataSource string

// GPUCascadeData is the GPU-aligned representation of the full cascade set
// consumed by the lit fragment shader for cascade-select-by-view-depth
// sampling. Matches the WGSL CascadeData struct layout exactly (see
// GPUCascadeDataSource). Size: 304 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	array<mat4x4<f32>, 4> light_vp       (256 bytes, offset   0)
//	vec4<f32>             splits         ( 16 bytes, offset 256)
//	vec2<f32>             texel_size     (  8 bytes, offset 272)
//	f32                   bias           (  4 bytes, offset 280)
//	f32                   normal_bias    (  4 bytes, offset 284)
//	u32                   cascade_count  (  4 bytes, offset 288)
//	3 × u32               _pad           ( 12 bytes, offset 292)
type GPUCascadeData struct {
	LightVP      [MaxCascades][16]float32 // per-cascade light view-projection matrices
	Splits       [MaxCascades]float32     // far split view-depth per cascade
	TexelSize    [2]float32               // 1.0 / shadow_map_resolution for PCF offsets
	Bias         float32                  // depth comparison bias to reduce shadow acne
	NormalBias   float32                  // world-space normal-offset distance
	CascadeCount uint32                   // number of active cascades (≤ MaxCascades)
	_pad         [3]uint32                // padding to 304-byte alignment
}

// Size returns the size of the GPUCascadeData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (304)
func (d *GPUCascadeData) Size() int {
	return int(unsafe.Sizeof(*d))
}

// SetCascade stores one cascade's light matrix and far split into the GPU
// data, raising CascadeCount as needed. Out-of-range indices are ignored.
//
// Parameters:
//   - c: the cascade to store
func (d *GPUCascadeData) SetCascade(c *Cascade) {
	if c.Index < 0 || c.Index >= MaxCascades {
		return
	}
	d.LightVP[c.Index] = c.LightViewProj
	d.Splits[c.Index] = c.FarSplit
	if uint32(c.Index+1) > d.CascadeCount {
		d.CascadeCount = uint32(c.Index + 1)
	}
}

// ComputeNormalBias derives the world-space normal-offset bias from the
// widest cascade's orthographic extent and stores it in the receiver. The
// result is the distance fragment positions are shifted along their surface
// normal before projecting into light clip space, which suppresses
// self-shadowing on concave geometry.
//
// Parameters:
//   - worstCaseExtent: orthographic extent of the last cascade in world units
//   - scale: multiplier on the per-texel world size (typically 2.0–4.0)
//   - resolution: shadow map resolution in texels (width and height)
func (d *GPUCascadeData) ComputeNormalBias(worstCaseExtent, scale float32, resolution int) {
	if resolution <= 0 {
		return
	}
	texelWorldSize := worstCaseExtent / float32(resolution)
	d.NormalBias = texelWorldSize * scale
}

// Marshal serializes the GPUCascadeData struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 304-byte buffer ready for GPU upload
func (d *GPUCascadeData) Marshal() []byte {
	buf := make([]byte, 304)
	off := 0
	for c := 0; c < MaxCascades; c++ {
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.LightVP[c][i]))
			off += 4
		}
	}
	for c := 0; c < MaxCascades; c++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(d.Splits[c]))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[272:276], math.Float32bits(d.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[276:280], math.Float32bits(d.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[280:284], math.Float32bits(d.Bias))
	binary.LittleEndian.PutUint32(buf[284:288], math.Float32bits(d.NormalBias))
	binary.LittleEndian.PutUint32(buf[288:292], d.CascadeCount)
	return buf
}
