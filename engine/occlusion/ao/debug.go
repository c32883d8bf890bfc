package ao

import (
	"fmt"
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
)

// EncodeWebP writes an occlusion buffer as a grayscale WebP image, black =
// fully occluded, white = fully lit. Intended for offline inspection of raw
// or resolved buffers from tooling.
//
// Parameters:
//   - w: the destination writer
//   - values: the occlusion buffer, width*height values in [0, 1]
//   - width: buffer width in pixels
//   - height: buffer height in pixels
//
// Returns:
//   - error: an error if the buffer is undersized or encoding fails
func EncodeWebP(w io.Writer, values []float32, width, height int) error {
	if len(values) < width*height {
		return fmt.Errorf("occlusion buffer has %d values, need %d", len(values), width*height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := values[y*width+x]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.Pix[y*img.Stride+x] = uint8(v*255 + 0.5)
		}
	}

	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("failed to encode occlusion buffer: %w", err)
	}
	return nil
}
